// Package app serves the companion pages and table sessions.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/fightfantasy/internal/core/dice"
	"github.com/louisbranch/fightfantasy/internal/platform/schedule"
	"github.com/louisbranch/fightfantasy/internal/platform/timeouts"
	"github.com/louisbranch/fightfantasy/internal/services/companion/fight"
	"github.com/louisbranch/fightfantasy/internal/services/companion/i18n"
	"github.com/louisbranch/fightfantasy/internal/services/companion/theme"
	"golang.org/x/sync/errgroup"
)

// DefaultHero is used when neither configuration nor the join request
// supplies hero stats.
var DefaultHero = fight.Stats{Skill: 10, Health: 20, Luck: 9}

// DefaultMonster opens every new table.
var DefaultMonster = fight.Stats{Skill: 8, Health: 10, Luck: 6}

// Config defines the inputs for the companion HTTP process.
type Config struct {
	HTTPAddr  string
	Hero      fight.Stats
	Monster   fight.Stats
	Rules     fight.Rules
	Theme     *theme.Manager
	Localizer *i18n.Localizer
	Logger    *log.Logger

	// RollDelay overrides the roll animation time.
	RollDelay time.Duration
	// RollScheduler drives roll timers. Defaults to wall-clock timers.
	RollScheduler schedule.Scheduler
	// NewRoller builds the dice source for each table.
	NewRoller func() (fight.Roller, error)

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

func (c Config) withDefaults() (Config, error) {
	if c.Theme == nil {
		return c, errors.New("theme manager is required")
	}
	if c.Localizer == nil {
		return c, errors.New("localizer is required")
	}
	if !c.Hero.ValidHero() {
		c.Hero = DefaultHero
	}
	if !c.Monster.Valid() {
		c.Monster = DefaultMonster
	}
	if c.Rules == (fight.Rules{}) {
		c.Rules = fight.DefaultRules()
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.NewRoller == nil {
		c.NewRoller = func() (fight.Roller, error) {
			roller, err := dice.NewSeededRoller()
			if err != nil {
				return nil, err
			}
			return roller, nil
		}
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = timeouts.Shutdown
	}
	return c, nil
}

// Server hosts the companion HTTP/WebSocket process.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	tables          *tableRegistry
	logger          *log.Logger
}

// NewServer builds a configured companion server.
func NewServer(config Config) (*Server, error) {
	if strings.TrimSpace(config.HTTPAddr) == "" {
		return nil, errors.New("http address is required")
	}
	config, err := config.withDefaults()
	if err != nil {
		return nil, err
	}
	h := newHandler(config)
	return &Server{
		httpAddr:        strings.TrimSpace(config.HTTPAddr),
		shutdownTimeout: config.ShutdownTimeout,
		httpServer: &http.Server{
			Addr:              strings.TrimSpace(config.HTTPAddr),
			Handler:           h.routes(),
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
		tables: h.tables,
		logger: config.Logger,
	}, nil
}

// NewHandler builds the companion routes without a listener.
func NewHandler(config Config) (http.Handler, error) {
	config, err := config.withDefaults()
	if err != nil {
		return nil, err
	}
	return newHandler(config).routes(), nil
}

// ListenAndServe binds the configured address and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("companion server is nil")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx ends, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil {
		return errors.New("companion server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if listener == nil {
		return errors.New("listener is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	s.logger.Printf("companion server listening on %s", listener.Addr())
	g.Go(func() error {
		defer cancel()
		err := s.httpServer.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer stop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Close ends every open table session.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if n := s.tables.closeAll(); n > 0 {
		s.logger.Printf("closed open tables count=%d", n)
	}
}
