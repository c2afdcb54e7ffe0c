package theme

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/louisbranch/fightfantasy/internal/platform/schedule"
	"github.com/louisbranch/fightfantasy/internal/platform/timeouts"
	"github.com/louisbranch/fightfantasy/internal/services/companion/storage"
)

// Mode is the light/dark display variant.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Valid reports whether m is a recognized mode.
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

// DefaultPalette is loaded when a requested palette cannot be.
const DefaultPalette = "default"

// State is the persisted theme selection.
type State struct {
	Mode    Mode   `json:"mode"`
	Palette string `json:"palette"`
}

// Variants records which mode variants the active palette supports.
type Variants struct {
	HasLight bool `json:"has_light"`
	HasDark  bool `json:"has_dark"`
}

// Single returns the only supported mode, if exactly one is supported.
func (v Variants) Single() (Mode, bool) {
	switch {
	case v.HasLight && !v.HasDark:
		return ModeLight, true
	case v.HasDark && !v.HasLight:
		return ModeDark, true
	default:
		return "", false
	}
}

// Snapshot is what subscribers receive.
type Snapshot struct {
	State    State    `json:"state"`
	Variants Variants `json:"variants"`
	Valid    bool     `json:"valid"`
	Loading  bool     `json:"loading"`
}

// Subscription identifies a registered listener.
type Subscription struct {
	id uint64
}

type subscriber struct {
	id uint64
	fn func(Snapshot)
}

// Options configures a Manager.
type Options struct {
	Store    storage.PreferenceStore
	Loader   Loader
	Palettes []string

	Scheduler   schedule.Scheduler
	SettleDelay time.Duration
	LoadTimeout time.Duration
	Logger      *log.Logger
	// Go runs palette loads. Defaults to a new goroutine per load.
	Go func(func())
}

// Manager holds the theme state for the whole process. It is safe for
// concurrent use; subscribers are notified outside the lock in
// registration order.
type Manager struct {
	store     storage.PreferenceStore
	loader    Loader
	palettes  []string
	scheduler schedule.Scheduler
	settle    time.Duration
	timeout   time.Duration
	logger    *log.Logger
	goFn      func(func())

	mu       sync.Mutex
	state    State
	manifest *Manifest
	variants Variants
	gen      uint64
	loading  bool
	subs     []subscriber
	nextSub  uint64

	inflight sync.WaitGroup
}

// NewManager builds a Manager in the default state. Call Init before
// serving pages.
func NewManager(opts Options) (*Manager, error) {
	if opts.Loader == nil {
		return nil, errors.New("palette loader is required")
	}
	palettes := slices.Clone(opts.Palettes)
	if len(palettes) == 0 {
		palettes = []string{DefaultPalette}
	}
	if !slices.Contains(palettes, DefaultPalette) {
		return nil, fmt.Errorf("palette set must include %q", DefaultPalette)
	}
	m := &Manager{
		store:     opts.Store,
		loader:    opts.Loader,
		palettes:  palettes,
		scheduler: schedule.OrReal(opts.Scheduler),
		settle:    opts.SettleDelay,
		timeout:   opts.LoadTimeout,
		logger:    opts.Logger,
		goFn:      opts.Go,
		state:     State{Mode: ModeLight, Palette: DefaultPalette},
	}
	if m.store == nil {
		m.store = storage.NewMemory()
	}
	if m.settle <= 0 {
		m.settle = timeouts.PaletteSettle
	}
	if m.timeout <= 0 {
		m.timeout = timeouts.PaletteLoad
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.goFn == nil {
		m.goFn = func(fn func()) { go fn() }
	}
	return m, nil
}

// Init restores the persisted mode and palette and loads the palette
// manifest synchronously. It fails only when the default palette cannot be
// loaded either.
func (m *Manager) Init(ctx context.Context) error {
	state := State{Mode: ModeLight, Palette: DefaultPalette}
	if mode, err := m.store.LoadPreference(ctx, storage.KeyThemeMode); err == nil {
		if Mode(mode).Valid() {
			state.Mode = Mode(mode)
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		m.logger.Printf("theme init: load mode failed err=%v", err)
	}
	if palette, err := m.store.LoadPreference(ctx, storage.KeyThemePalette); err == nil {
		if m.known(palette) {
			state.Palette = palette
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		m.logger.Printf("theme init: load palette failed err=%v", err)
	}

	loaded, manifest, err := m.loadWithFallback(ctx, state.Palette)
	if err != nil {
		return fmt.Errorf("load palette: %w", err)
	}
	state.Palette = loaded
	variants := manifest.Variants()
	if only, ok := variants.Single(); ok {
		state.Mode = only
	}

	m.mu.Lock()
	m.state = state
	m.manifest = manifest
	m.variants = variants
	m.mu.Unlock()
	return nil
}

// Palettes returns the known palette names.
func (m *Manager) Palettes() []string {
	return slices.Clone(m.palettes)
}

// State returns the current selection.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Mode returns the current display mode.
func (m *Manager) Mode() Mode {
	return m.State().Mode
}

// Palette returns the current palette name.
func (m *Manager) Palette() string {
	return m.State().Palette
}

// DataTheme is the value of the document-level data-theme attribute.
func (m *Manager) DataTheme() string {
	return string(m.Mode())
}

// Snapshot returns the state as subscribers see it.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		State:    m.state,
		Variants: m.variants,
		Valid:    m.manifest.Valid(),
		Loading:  m.loading,
	}
}

// CheckPaletteVariants reports which variants the active palette supports.
func (m *Manager) CheckPaletteVariants() Variants {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.manifest.Variants()
}

// ValidatePalette reports whether the active palette defines every required
// variable in some block.
func (m *Manager) ValidatePalette() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.manifest.Valid()
}

// SetMode switches the display mode. Unrecognized modes are ignored and
// false is returned.
func (m *Manager) SetMode(mode Mode) bool {
	if !mode.Valid() {
		return false
	}
	m.mu.Lock()
	m.state.Mode = mode
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.persist(storage.KeyThemeMode, string(mode))
	m.notify(snap)
	return true
}

// SetPalette switches palettes. Unknown names are ignored and false is
// returned. The manifest loads asynchronously; once it settles the manager
// forces a single-variant palette's mode and notifies again. A newer call
// supersedes any load still in flight.
func (m *Manager) SetPalette(name string) bool {
	if !m.known(name) {
		return false
	}
	m.mu.Lock()
	m.state.Palette = name
	m.gen++
	gen := m.gen
	m.loading = true
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.persist(storage.KeyThemePalette, name)
	m.notify(snap)

	m.inflight.Add(1)
	m.goFn(func() {
		m.load(gen, name)
	})
	return true
}

// Stylesheet renders the CSS for a known palette.
func (m *Manager) Stylesheet(ctx context.Context, name string) (string, error) {
	if !m.known(name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	manifest, err := m.loader.Load(ctx, name)
	if err != nil {
		return "", err
	}
	return manifest.Stylesheet(), nil
}

// Subscribe registers fn for change notifications.
func (m *Manager) Subscribe(fn func(Snapshot)) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSub++
	m.subs = append(m.subs, subscriber{id: m.nextSub, fn: fn})
	return Subscription{id: m.nextSub}
}

// Unsubscribe removes a listener. Unknown subscriptions are ignored.
func (m *Manager) Unsubscribe(sub Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = slices.DeleteFunc(m.subs, func(s subscriber) bool { return s.id == sub.id })
}

// Wait blocks until every started palette load has settled or been discarded.
func (m *Manager) Wait() {
	m.inflight.Wait()
}

func (m *Manager) load(gen uint64, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	loaded, manifest, err := m.loadWithFallback(ctx, name)
	if err != nil {
		m.logger.Printf("theme: palette fallback failed palette=%s err=%v", name, err)
		m.mu.Lock()
		if m.gen == gen {
			m.loading = false
		}
		m.mu.Unlock()
		m.inflight.Done()
		return
	}
	m.scheduler.AfterFunc(m.settle, func() {
		defer m.inflight.Done()
		m.apply(gen, loaded, manifest)
	})
}

// apply installs a settled manifest unless a newer SetPalette superseded it.
func (m *Manager) apply(gen uint64, name string, manifest *Manifest) {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return
	}
	m.state.Palette = name
	m.manifest = manifest
	m.variants = manifest.Variants()
	m.loading = false
	forced := false
	if only, ok := m.variants.Single(); ok {
		m.state.Mode = only
		forced = true
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if forced {
		m.persist(storage.KeyThemeMode, string(snap.State.Mode))
	}
	m.notify(snap)
}

// loadWithFallback loads name, then the default palette if that fails.
func (m *Manager) loadWithFallback(ctx context.Context, name string) (string, *Manifest, error) {
	manifest, err := m.loader.Load(ctx, name)
	if err == nil {
		return name, manifest, nil
	}
	m.logger.Printf("theme: palette load failed palette=%s err=%v", name, err)
	if name == DefaultPalette {
		return "", nil, err
	}
	manifest, err = m.loader.Load(ctx, DefaultPalette)
	if err != nil {
		return "", nil, err
	}
	return DefaultPalette, manifest, nil
}

func (m *Manager) known(name string) bool {
	return slices.Contains(m.palettes, name)
}

func (m *Manager) persist(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	if err := m.store.SavePreference(ctx, key, value); err != nil {
		m.logger.Printf("theme: persist failed key=%s err=%v", key, err)
	}
}

func (m *Manager) notify(snap Snapshot) {
	m.mu.Lock()
	subs := slices.Clone(m.subs)
	m.mu.Unlock()
	for _, s := range subs {
		if s.fn != nil {
			s.fn(snap)
		}
	}
}
