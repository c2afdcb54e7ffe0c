// Package cmd holds the startup plumbing shared by companion commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/fightfantasy/internal/platform/config"
	"github.com/louisbranch/fightfantasy/internal/platform/otel"
)

// ServiceCompanion names the companion process in telemetry and logs.
const ServiceCompanion = "companion"

const telemetryFlushTimeout = 5 * time.Second

// Load fills cfg from FIGHTFANTASY_ environment variables and then lets
// command-line flags registered by bind override them.
func Load[T any](cfg *T, fs *flag.FlagSet, args []string, bind func(*flag.FlagSet, *T)) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag set is required")
	}
	if err := config.ParseEnv(cfg); err != nil {
		return err
	}
	if bind != nil {
		bind(fs, cfg)
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// Service describes one long-running process.
type Service struct {
	Name      string
	Telemetry otel.Options
	// FlushTimeout bounds the telemetry flush after the run returns.
	FlushTimeout time.Duration
}

// Run installs the tracer provider, runs fn and flushes traces on the way out.
func (s Service) Run(ctx context.Context, fn func(context.Context) error) error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return errors.New("service name is required")
	}
	if fn == nil {
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	flush, err := otel.Setup(ctx, name, s.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer s.flush(name, flush)
	return fn(ctx)
}

func (s Service) flush(name string, flush func(context.Context) error) {
	timeout := s.FlushTimeout
	if timeout <= 0 {
		timeout = telemetryFlushTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := flush(ctx); err != nil {
		log.Printf("telemetry flush service=%s err=%v", name, err)
	}
}
