// Package roll sequences dice animations for one table.
//
// An Orchestrator owns a single "rolling" slot. Starting a roll claims the
// slot and schedules resolution after the animation delay; any other start
// request is refused until the pending roll resolves.
package roll

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/fightfantasy/internal/platform/schedule"
	"github.com/louisbranch/fightfantasy/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/fightfantasy/internal/services/companion/roll"

// Orchestrator serializes rolls. It is safe for concurrent use.
type Orchestrator struct {
	scheduler schedule.Scheduler
	delay     time.Duration
	tracer    trace.Tracer

	mu      sync.Mutex
	rolling Kind
	last    *Result
	timer   schedule.Timer
	gen     uint64
	closed  bool
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithScheduler replaces the real-time scheduler.
func WithScheduler(s schedule.Scheduler) Option {
	return func(o *Orchestrator) {
		o.scheduler = schedule.OrReal(s)
	}
}

// WithDelay overrides the animation delay.
func WithDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.delay = d
		}
	}
}

// New returns an idle Orchestrator.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		scheduler: schedule.Real(),
		delay:     timeouts.RollAnimation,
		tracer:    otel.Tracer(tracerName),
		rolling:   KindNone,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Start claims the rolling slot for kind.
//
// It returns false and does nothing when a roll is already pending, when
// precondition is false, or after Close. Otherwise the previous result is
// cleared and rollFn runs once the delay elapses; its dice become the stored
// result and onResolved receives them after the slot is released.
func (o *Orchestrator) Start(kind Kind, rollFn func() []int, precondition bool, onResolved func(Result)) bool {
	if kind == KindNone || !kind.Valid() || rollFn == nil {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.rolling != KindNone || !precondition {
		return false
	}
	o.rolling = kind
	o.last = nil
	o.gen++
	gen := o.gen

	o.timer = o.scheduler.AfterFunc(o.delay, func() {
		o.resolve(gen, kind, rollFn, onResolved)
	})
	return true
}

func (o *Orchestrator) resolve(gen uint64, kind Kind, rollFn func() []int, onResolved func(Result)) {
	_, span := o.tracer.Start(context.Background(), "roll.resolve",
		trace.WithAttributes(attribute.String("roll.kind", string(kind))))
	defer span.End()

	o.mu.Lock()
	// Cancelled or superseded timers must not touch state.
	if o.closed || o.gen != gen || o.rolling != kind {
		o.mu.Unlock()
		span.SetAttributes(attribute.Bool("roll.discarded", true))
		return
	}
	result := newResult(kind, rollFn())
	o.last = &result
	o.rolling = KindNone
	o.timer = nil
	o.mu.Unlock()

	span.SetAttributes(attribute.Int("roll.sum", result.Sum))
	if onResolved != nil {
		onResolved(result)
	}
}

// Rolling returns the kind currently owning the slot, or KindNone.
func (o *Orchestrator) Rolling() Kind {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rolling
}

// IsRolling reports whether a roll is pending.
func (o *Orchestrator) IsRolling() bool {
	return o.Rolling() != KindNone
}

// Last returns the most recent resolved roll, if it has not been cleared.
func (o *Orchestrator) Last() (Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return Result{}, false
	}
	return newResult(o.last.Kind, o.last.Dice), true
}

// Close cancels any pending roll. Later Start calls are refused.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.rolling = KindNone
}
