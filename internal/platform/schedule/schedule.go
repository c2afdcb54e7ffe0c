// Package schedule abstracts one-shot delayed callbacks.
//
// Components that animate or settle state after a fixed delay take a
// Scheduler so tests can advance virtual time instead of sleeping.
package schedule

import "time"

// Timer is a handle to a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the
	// timer before it fired.
	Stop() bool
}

// Scheduler runs fn once after d elapses.
//
// Implementations must not run fn synchronously inside AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Func adapts a function to Scheduler.
type Func func(d time.Duration, fn func()) Timer

// AfterFunc calls f(d, fn).
func (f Func) AfterFunc(d time.Duration, fn func()) Timer {
	return f(d, fn)
}

// Real returns a Scheduler backed by time.AfterFunc.
func Real() Scheduler {
	return Func(func(d time.Duration, fn func()) Timer {
		return time.AfterFunc(d, fn)
	})
}

// OrReal returns s, or the real scheduler when s is nil.
func OrReal(s Scheduler) Scheduler {
	if s == nil {
		return Real()
	}
	return s
}
