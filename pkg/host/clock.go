package host

import (
	"slices"
	"time"
)

// ManualClock is a [Scheduler] whose time only moves when Advance is called.
// Callbacks run synchronously inside Advance, ordered by due time and then by
// scheduling order.
type ManualClock struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	due   time.Duration
	seq   uint64
	fn    func()
	done  bool
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.seq++
	t := &manualTimer{clock: c, due: c.now + max(d, 0), seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Stop implements [Timer].
func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.timers = slices.DeleteFunc(t.clock.timers, func(x *manualTimer) bool { return x == t })
	return true
}

// Advance moves the clock forward by d and runs every callback that became
// due, including callbacks scheduled by earlier callbacks within the window.
// It returns the number of callbacks run.
func (c *ManualClock) Advance(d time.Duration) int {
	target := c.now + d
	fired := 0
	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		c.now = t.due
		t.done = true
		c.timers = slices.DeleteFunc(c.timers, func(x *manualTimer) bool { return x == t })
		t.fn()
		fired++
	}
	c.now = target
	return fired
}

func (c *ManualClock) nextDue(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range c.timers {
		if t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

// Now returns the time elapsed since the clock was created.
func (c *ManualClock) Now() time.Duration { return c.now }

// Pending returns the number of scheduled callbacks that have not run.
func (c *ManualClock) Pending() int { return len(c.timers) }
