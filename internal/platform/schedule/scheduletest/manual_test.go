package scheduletest

import (
	"testing"
	"time"
)

func TestManualRunsDueCallbacksInOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.AfterFunc(200*time.Millisecond, func() { order = append(order, "late") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "early") })

	m.Advance(150 * time.Millisecond)
	if len(order) != 1 || order[0] != "early" {
		t.Fatalf("order after 150ms = %v", order)
	}
	m.Advance(50 * time.Millisecond)
	if len(order) != 2 || order[1] != "late" {
		t.Fatalf("order after 200ms = %v", order)
	}
}

func TestManualStopPreventsCallback(t *testing.T) {
	m := NewManual()
	fired := false
	timer := m.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("expected stop to succeed")
	}
	if timer.Stop() {
		t.Fatal("expected second stop to report false")
	}
	m.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped callback fired")
	}
	if m.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", m.Pending())
	}
}

func TestManualRunsChainedCallbacksWithinWindow(t *testing.T) {
	m := NewManual()
	count := 0
	m.AfterFunc(10*time.Millisecond, func() {
		count++
		m.AfterFunc(10*time.Millisecond, func() { count++ })
	})
	m.Advance(25 * time.Millisecond)
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}
