package app

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/fightfantasy/internal/core/dice"
	"github.com/louisbranch/fightfantasy/internal/platform/i18n/catalog"
	"github.com/louisbranch/fightfantasy/internal/platform/schedule/scheduletest"
	"github.com/louisbranch/fightfantasy/internal/platform/timeouts"
	"github.com/louisbranch/fightfantasy/internal/services/companion/fight"
	"github.com/louisbranch/fightfantasy/internal/services/companion/i18n"
	"github.com/louisbranch/fightfantasy/internal/services/companion/storage"
	"github.com/louisbranch/fightfantasy/internal/services/companion/theme"
	"github.com/louisbranch/fightfantasy/internal/services/companion/theme/palettes"
)

// scriptedRoller returns queued faces in order, then ones.
type scriptedRoller struct {
	mu    sync.Mutex
	faces []int
}

func (s *scriptedRoller) RollOne() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.faces) == 0 {
		return 1
	}
	v := s.faces[0]
	s.faces = s.faces[1:]
	return v
}

func (s *scriptedRoller) RollTwo() dice.Pair {
	return dice.NewPair(s.RollOne(), s.RollOne())
}

type appFixture struct {
	cfg        Config
	handler    *handler
	rollClock  *scheduletest.Manual
	themeClock *scheduletest.Manual
	store      *storage.Memory
	logs       *syncBuffer
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLocalizer(t *testing.T) *i18n.Localizer {
	t.Helper()
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	loc, err := i18n.NewLocalizer(bundle)
	if err != nil {
		t.Fatalf("new localizer: %v", err)
	}
	return loc
}

// newAppFixture wires the companion with virtual clocks. faces feed every
// table's dice in order.
func newAppFixture(t *testing.T, faces ...int) *appFixture {
	t.Helper()
	fx := &appFixture{
		rollClock:  scheduletest.NewManual(),
		themeClock: scheduletest.NewManual(),
		store:      storage.NewMemory(),
		logs:       &syncBuffer{},
	}
	logger := log.New(fx.logs, "", 0)
	manager, err := theme.NewManager(theme.Options{
		Store:     fx.store,
		Loader:    theme.FSLoader{FS: palettes.FS},
		Palettes:  []string{"default", "beach", "midnight", "forest", "parchment"},
		Scheduler: fx.themeClock,
		Logger:    logger,
		Go:        func(fn func()) { fn() },
	})
	if err != nil {
		t.Fatalf("new theme manager: %v", err)
	}
	if err := manager.Init(context.Background()); err != nil {
		t.Fatalf("init theme: %v", err)
	}
	roller := &scriptedRoller{faces: faces}
	cfg, err := Config{
		Hero:          fight.Stats{Skill: 10, Health: 20, Luck: 9},
		Monster:       fight.Stats{Skill: 8, Health: 10, Luck: 6},
		Theme:         manager,
		Localizer:     newTestLocalizer(t),
		Logger:        logger,
		RollScheduler: fx.rollClock,
		NewRoller: func() (fight.Roller, error) {
			return roller, nil
		},
	}.withDefaults()
	if err != nil {
		t.Fatalf("config defaults: %v", err)
	}
	fx.cfg = cfg
	fx.handler = newHandler(cfg)
	return fx
}

func (fx *appFixture) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(fx.handler.routes())
	t.Cleanup(srv.Close)
	return srv
}

func (fx *appFixture) serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	fx.handler.routes().ServeHTTP(rr, req)
	return rr
}

func (fx *appFixture) settleRoll() {
	fx.rollClock.Advance(timeouts.RollAnimation)
}

// settleTheme waits for the palette load to reach its settle timer, then
// fires it.
func (fx *appFixture) settleTheme(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for fx.themeClock.Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("palette load never scheduled its settle timer")
		}
		time.Sleep(time.Millisecond)
	}
	fx.themeClock.Advance(timeouts.PaletteSettle)
	fx.cfg.Theme.Wait()
}
