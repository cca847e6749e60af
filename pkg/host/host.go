// Package host models the environment a widget is embedded in: a source of
// resize events, deferred scheduling, and a container element whose measured
// width changes when the layout does.
//
// Three hosts are provided:
//
//   - [Headless] runs on the caller's goroutine with a [ManualClock]. Time only
//     moves when Advance is called. It is used for one-shot rendering and tests.
//   - [Window] runs an event loop goroutine. Posted closures, resize events and
//     timer callbacks all execute on that goroutine, one at a time.
//   - Hosts defined elsewhere (for example a terminal program whose update loop
//     is the event thread) implement [Env] directly.
//
// Whatever the host, widgets are single-threaded: every call into a widget and
// every callback a host delivers happens on the host's event thread.
package host

import "time"

// ListenerID identifies a registered resize listener.
type ListenerID uint64

// ResizeSource emits an event whenever the layout-affecting size of the host
// changes.
type ResizeSource interface {
	AddResizeListener(fn func()) ListenerID
	RemoveResizeListener(id ListenerID)
}

// Timer is a handle to a deferred callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Scheduler defers callbacks onto the host's event thread.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Env is everything a widget needs from its host.
type Env interface {
	ResizeSource
	Scheduler
}
