// Package scheduletest provides a virtual-time Scheduler for tests.
package scheduletest

import (
	"sort"
	"sync"
	"time"

	"github.com/louisbranch/fightfantasy/internal/platform/schedule"
)

// Manual is a Scheduler whose clock only moves when Advance is called.
// Due callbacks run on the goroutine calling Advance, in deadline order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	nextSeq int
	tasks   []*task
}

type task struct {
	owner   *Manual
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewManual returns a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

var _ schedule.Scheduler = (*Manual)(nil)

// AfterFunc registers fn to run once the virtual clock passes d from now.
func (m *Manual) AfterFunc(d time.Duration, fn func()) schedule.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSeq++
	t := &task{owner: m, due: m.now + d, seq: m.nextSeq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every callback that became due,
// including callbacks scheduled by earlier callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		next.fired = true
		m.mu.Unlock()
		next.fn()
	}
}

// Pending reports how many callbacks are scheduled and not yet fired or stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, t := range m.tasks {
		if !t.fired && !t.stopped {
			count++
		}
	}
	return count
}

func (m *Manual) nextDueLocked(target time.Duration) *task {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	m.tasks = live
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due == m.tasks[j].due {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].due < m.tasks[j].due
	})
	if len(m.tasks) == 0 || m.tasks[0].due > target {
		return nil
	}
	return m.tasks[0]
}

func (t *task) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
