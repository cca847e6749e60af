package host

import (
	"testing"
	"time"
)

func TestManualClockOrdering(t *testing.T) {
	var c ManualClock
	var order []int

	c.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, 3) })

	if got := c.Advance(15 * time.Millisecond); got != 1 {
		t.Errorf("Advance(15ms) fired %d, want 1", got)
	}
	if got := c.Advance(5 * time.Millisecond); got != 2 {
		t.Errorf("Advance(5ms) fired %d, want 2", got)
	}

	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if c.Now() != 20*time.Millisecond {
		t.Errorf("Now() = %v, want 20ms", c.Now())
	}
}

func TestManualClockStop(t *testing.T) {
	var c ManualClock
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if c.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", c.Pending())
	}
	if !timer.Stop() {
		t.Error("Stop() on a pending timer should return true")
	}
	if timer.Stop() {
		t.Error("second Stop() should return false")
	}

	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer should not fire")
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestManualClockChainedTimers(t *testing.T) {
	var c ManualClock
	count := 0
	c.AfterFunc(10*time.Millisecond, func() {
		count++
		c.AfterFunc(10*time.Millisecond, func() { count++ })
	})

	if got := c.Advance(25 * time.Millisecond); got != 2 {
		t.Errorf("Advance fired %d, want 2", got)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestManualClockStopAfterFire(t *testing.T) {
	var c ManualClock
	timer := c.AfterFunc(0, func() {})
	c.Advance(0)
	if timer.Stop() {
		t.Error("Stop() after firing should return false")
	}
}

func TestHeadlessResize(t *testing.T) {
	h := NewHeadless(200)
	events := 0
	h.AddResizeListener(func() { events++ })

	h.Resize(320)
	if h.Body.ClientWidth() != 320 {
		t.Errorf("ClientWidth() = %v, want 320", h.Body.ClientWidth())
	}
	if events != 1 {
		t.Errorf("events = %d, want 1", events)
	}
}
