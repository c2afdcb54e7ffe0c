package schedule

import (
	"testing"
	"time"
)

func TestRealRunsCallback(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not run")
	}
}

func TestRealStopCancelsCallback(t *testing.T) {
	fired := make(chan struct{}, 1)
	timer := Real().AfterFunc(time.Hour, func() { fired <- struct{}{} })
	if !timer.Stop() {
		t.Fatal("expected Stop to cancel a pending timer")
	}
	select {
	case <-fired:
		t.Fatal("stopped callback fired")
	default:
	}
}

func TestOrRealFallsBack(t *testing.T) {
	if OrReal(nil) == nil {
		t.Fatal("expected real scheduler")
	}
}
