// Package companion parses companion command flags and composes the server.
package companion

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/fightfantasy/internal/platform/cmd"
	"github.com/louisbranch/fightfantasy/internal/platform/i18n/catalog"
	"github.com/louisbranch/fightfantasy/internal/platform/otel"
	"github.com/louisbranch/fightfantasy/internal/services/companion/app"
	"github.com/louisbranch/fightfantasy/internal/services/companion/fight"
	"github.com/louisbranch/fightfantasy/internal/services/companion/i18n"
	"github.com/louisbranch/fightfantasy/internal/services/companion/storage"
	"github.com/louisbranch/fightfantasy/internal/services/companion/storage/sqlite"
	"github.com/louisbranch/fightfantasy/internal/services/companion/theme"
	"github.com/louisbranch/fightfantasy/internal/services/companion/theme/palettes"
)

// Config holds companion command configuration.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8090"`
	// DBPath is the SQLite preference database. Empty keeps preferences in
	// memory for the life of the process.
	DBPath string `env:"DB_PATH" envDefault:"data/companion.db"`

	HeroSkill  int `env:"HERO_SKILL"  envDefault:"10"`
	HeroHealth int `env:"HERO_HEALTH" envDefault:"20"`
	HeroLuck   int `env:"HERO_LUCK"   envDefault:"9"`

	Damage          int `env:"DAMAGE"            envDefault:"2"`
	LuckWinLucky    int `env:"LUCK_WIN_LUCKY"    envDefault:"2"`
	LuckWinUnlucky  int `env:"LUCK_WIN_UNLUCKY"  envDefault:"1"`
	LuckLossLucky   int `env:"LUCK_LOSS_LUCKY"   envDefault:"1"`
	LuckLossUnlucky int `env:"LUCK_LOSS_UNLUCKY" envDefault:"1"`

	Telemetry otel.Options
}

// Hero returns the configured hero stats.
func (c Config) Hero() fight.Stats {
	return fight.Stats{Skill: c.HeroSkill, Health: c.HeroHealth, Luck: c.HeroLuck}
}

// Rules returns the configured combat rules.
func (c Config) Rules() fight.Rules {
	return fight.Rules{
		Damage: fight.DamageRules{Base: c.Damage},
		Luck: fight.LuckRules{
			WinLucky:    c.LuckWinLucky,
			WinUnlucky:  c.LuckWinUnlucky,
			LossLucky:   c.LuckLossLucky,
			LossUnlucky: c.LuckLossUnlucky,
		},
	}
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.Load(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	if !cfg.Hero().ValidHero() {
		return Config{}, fmt.Errorf("hero skill and health must be positive and luck not negative: %+v", cfg.Hero())
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "companion HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite preference database path (empty for in-memory)")
	fs.IntVar(&cfg.HeroSkill, "hero-skill", cfg.HeroSkill, "hero skill")
	fs.IntVar(&cfg.HeroHealth, "hero-health", cfg.HeroHealth, "hero health")
	fs.IntVar(&cfg.HeroLuck, "hero-luck", cfg.HeroLuck, "hero luck")
	fs.IntVar(&cfg.Damage, "damage", cfg.Damage, "health lost by the loser of a round")
	fs.IntVar(&cfg.LuckWinLucky, "luck-win-lucky", cfg.LuckWinLucky, "extra damage dealt on a lucky won round")
	fs.IntVar(&cfg.LuckWinUnlucky, "luck-win-unlucky", cfg.LuckWinUnlucky, "damage refunded to the monster on an unlucky won round")
	fs.IntVar(&cfg.LuckLossLucky, "luck-loss-lucky", cfg.LuckLossLucky, "damage refunded to the hero on a lucky lost round")
	fs.IntVar(&cfg.LuckLossUnlucky, "luck-loss-unlucky", cfg.LuckLossUnlucky, "extra damage taken on an unlucky lost round")
}

// Run builds the companion and serves until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	service := entrypoint.Service{Name: entrypoint.ServiceCompanion, Telemetry: cfg.Telemetry}
	return service.Run(ctx, func(ctx context.Context) error {
		appCfg, closeDeps, err := buildApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeDeps()

		srv, err := app.NewServer(appCfg)
		if err != nil {
			return fmt.Errorf("new companion server: %w", err)
		}
		defer srv.Close()
		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve companion: %w", err)
		}
		return nil
	})
}

// buildApp opens storage, restores the theme and loads translations. The
// returned func releases what was opened.
func buildApp(ctx context.Context, cfg Config) (app.Config, func(), error) {
	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return app.Config{}, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Printf("close preference store: %v", err)
		}
	}

	loader := theme.FSLoader{FS: palettes.FS}
	names, err := loader.Names()
	if err != nil {
		closeStore()
		return app.Config{}, nil, fmt.Errorf("list palettes: %w", err)
	}
	manager, err := theme.NewManager(theme.Options{
		Store:    store,
		Loader:   loader,
		Palettes: names,
	})
	if err != nil {
		closeStore()
		return app.Config{}, nil, fmt.Errorf("new theme manager: %w", err)
	}
	if err := manager.Init(ctx); err != nil {
		closeStore()
		return app.Config{}, nil, fmt.Errorf("init theme: %w", err)
	}
	state := manager.State()
	log.Printf("theme restored mode=%s palette=%s", state.Mode, state.Palette)

	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		closeStore()
		return app.Config{}, nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, locale := range bundle.Locales() {
		if missing := bundle.MissingKeys(locale); len(missing) > 0 {
			log.Printf("catalog untranslated locale=%s count=%d", locale, len(missing))
		}
	}
	localizer, err := i18n.NewLocalizer(bundle)
	if err != nil {
		closeStore()
		return app.Config{}, nil, fmt.Errorf("new localizer: %w", err)
	}

	closeDeps := func() {
		manager.Wait()
		closeStore()
	}
	return app.Config{
		HTTPAddr:  cfg.HTTPAddr,
		Hero:      cfg.Hero(),
		Rules:     cfg.Rules(),
		Theme:     manager,
		Localizer: localizer,
		Logger:    log.Default(),
	}, closeDeps, nil
}

func openStore(ctx context.Context, path string) (storage.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return storage.NewMemory(), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	return store, nil
}
