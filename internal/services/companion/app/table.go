package app

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/louisbranch/fightfantasy/internal/core/dice"
	apperrors "github.com/louisbranch/fightfantasy/internal/platform/errors"
	"github.com/louisbranch/fightfantasy/internal/random"
	"github.com/louisbranch/fightfantasy/internal/services/companion/fight"
	"github.com/louisbranch/fightfantasy/internal/services/companion/i18n"
	"github.com/louisbranch/fightfantasy/internal/services/companion/templates"
	"github.com/louisbranch/fightfantasy/internal/services/companion/theme"
)

// table is one connected companion screen: its own fight, dice and roll
// timer, plus a theme subscription. Frame handlers and roll callbacks both
// take mu so a table behaves like a single event loop.
type table struct {
	id       string
	conn     io.Closer
	peer     *wsPeer
	printer  *i18n.Printer
	resolver *fight.Resolver
	theme    *theme.Manager
	themeSub theme.Subscription

	mu     sync.Mutex
	closed bool
}

func newTable(conn io.Closer, peer *wsPeer, printer *i18n.Printer, resolver *fight.Resolver, manager *theme.Manager) *table {
	return &table{
		id:       uuid.NewString(),
		conn:     conn,
		peer:     peer,
		printer:  printer,
		resolver: resolver,
		theme:    manager,
	}
}

// open subscribes to theme changes and sends the initial snapshots.
func (t *table) open() {
	t.themeSub = t.theme.Subscribe(func(snap theme.Snapshot) {
		t.sendTheme(snap)
	})
	t.mu.Lock()
	t.sendStateLocked("")
	t.mu.Unlock()
	t.sendTheme(t.theme.Snapshot())
}

// close tears the table down: the pending roll timer is cancelled and the
// theme subscription released. Safe to call more than once.
func (t *table) close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()
	t.resolver.Close()
	t.theme.Unsubscribe(t.themeSub)
}

// hangUp closes the table and its connection, which ends the frame loop
// blocked on the client.
func (t *table) hangUp() {
	t.close()
	if t.conn != nil {
		_ = t.conn.Close()
	}
}

func (t *table) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// startRoll runs one dice action. Rejected actions answer with
// FAILED_PRECONDITION and leave the table untouched.
func (t *table) startRoll(requestID string, action func(done func(fight.Event)) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	started := action(func(ev fight.Event) {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed {
			return
		}
		_ = t.peer.writeFrame(wsFrame{
			Type:      frameRollResolved,
			RequestID: requestID,
			Payload:   mustJSON(rollResolvedPayload{TableID: t.id, Event: ev}),
		})
		t.sendStateLocked(requestID)
	})
	if !started {
		_ = t.writeError(requestID, apperrors.CodeFailedPrecondition)
		return
	}
	st := t.resolver.State()
	_ = t.peer.writeFrame(wsFrame{
		Type:      frameRollStarted,
		RequestID: requestID,
		Payload:   mustJSON(rollStartedPayload{TableID: t.id, Kind: st.Rolling}),
	})
	t.sendStateLocked(requestID)
}

func (t *table) setMonster(requestID string, stats fight.Stats) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if err := t.resolver.SetMonster(stats); err != nil {
		_ = t.writeError(requestID, apperrors.CategoryOf(err))
		return
	}
	t.sendStateLocked(requestID)
}

func (t *table) reset(requestID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if err := t.resolver.Reset(); err != nil {
		_ = t.writeError(requestID, apperrors.CategoryOf(err))
		return
	}
	t.sendStateLocked(requestID)
}

// freeRoll answers a free-form NdS roll immediately. It does not touch the
// fight or the rolling slot. Without a seed a fresh one is drawn.
func (t *table) freeRoll(requestID string, req freeRollPayload) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	seed, err := random.SeedOr(req.Seed)
	if err != nil {
		_ = t.writeError(requestID, apperrors.CodeInternal)
		return
	}
	result, err := dice.RollDice(dice.Request{Dice: req.Dice, Seed: seed})
	if err != nil {
		_ = t.writeError(requestID, apperrors.CategoryOf(err))
		return
	}
	_ = t.peer.writeFrame(wsFrame{
		Type:      frameDiceRolled,
		RequestID: requestID,
		Payload:   mustJSON(diceRolledPayload{TableID: t.id, Result: result}),
	})
}

func (t *table) sendStateLocked(requestID string) {
	st := t.resolver.State()
	_ = t.peer.writeFrame(wsFrame{
		Type:      frameTableState,
		RequestID: requestID,
		Payload: mustJSON(tableStatePayload{
			TableID: t.id,
			State:   st,
			HTML:    t.renderTable(st),
		}),
	})
}

// renderTable renders the table sections for the connection's language so
// the browser can swap them in place.
func (t *table) renderTable(st fight.State) string {
	var buf bytes.Buffer
	ctx := context.Background()
	if err := templates.DiceRollsSection(st, t.printer).Render(ctx, &buf); err != nil {
		return ""
	}
	if err := templates.FightSection(st, t.printer).Render(ctx, &buf); err != nil {
		return ""
	}
	return buf.String()
}

func (t *table) sendTheme(snap theme.Snapshot) {
	if t.isClosed() {
		return
	}
	_ = t.peer.writeFrame(wsFrame{
		Type:    frameThemeChanged,
		Payload: mustJSON(themeChangedPayload{Theme: snap}),
	})
}

func (t *table) writeError(requestID string, code apperrors.Code) error {
	return writeWSError(t.peer, requestID, code, t.printer.T(code.MessageKey()))
}

// heroFromQuery reads hero stats supplied when joining a table. All three
// values must be present and positive, otherwise fallback is used.
func heroFromQuery(query url.Values, fallback fight.Stats) fight.Stats {
	read := func(name string) (int, bool) {
		v, err := strconv.Atoi(query.Get(name))
		return v, err == nil
	}
	skill, okSkill := read("hero_skill")
	health, okHealth := read("hero_health")
	luck, okLuck := read("hero_luck")
	if !okSkill || !okHealth || !okLuck {
		return fallback
	}
	hero := fight.Stats{Skill: skill, Health: health, Luck: luck}
	if !hero.ValidHero() {
		return fallback
	}
	return hero
}

// tableRegistry tracks open tables so the server can end them on close.
type tableRegistry struct {
	mu     sync.Mutex
	tables map[string]*table
}

func newTableRegistry() *tableRegistry {
	return &tableRegistry{tables: make(map[string]*table)}
}

func (r *tableRegistry) add(t *table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[t.id] = t
}

func (r *tableRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tables, id)
}

func (r *tableRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tables)
}

func (r *tableRegistry) closeAll() int {
	r.mu.Lock()
	open := make([]*table, 0, len(r.tables))
	for id, t := range r.tables {
		open = append(open, t)
		delete(r.tables, id)
	}
	r.mu.Unlock()
	for _, t := range open {
		t.hangUp()
	}
	return len(open)
}
