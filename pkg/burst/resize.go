package burst

import (
	"time"

	"github.com/matzehuels/burst/pkg/host"
	"github.com/matzehuels/burst/pkg/observability"
)

// ResizeState is the state of a chart's resize debouncer.
type ResizeState int

const (
	// ResizeIdle means no re-render is scheduled.
	ResizeIdle ResizeState = iota
	// ResizePending means a re-render is scheduled and further resize events
	// are coalesced into it.
	ResizePending
)

func (s ResizeState) String() string {
	switch s {
	case ResizeIdle:
		return "idle"
	case ResizePending:
		return "pending"
	}
	return "unknown"
}

// resizeCoordinator turns bursts of host resize events into one deferred
// callback. pending is nil exactly when the coordinator is idle.
type resizeCoordinator struct {
	chartID    string
	env        host.Env
	delay      time.Duration
	fire       func()
	listener   host.ListenerID
	subscribed bool
	pending    host.Timer
}

func newResizeCoordinator(chartID string, env host.Env, delay time.Duration, fire func()) *resizeCoordinator {
	r := &resizeCoordinator{chartID: chartID, env: env, delay: delay, fire: fire}
	r.listener = env.AddResizeListener(r.onResize)
	r.subscribed = true
	return r
}

func (r *resizeCoordinator) onResize() {
	if r.pending != nil {
		observability.Chart().OnResizeCoalesced(r.chartID)
		return
	}
	r.pending = r.env.AfterFunc(r.delay, r.flush)
	observability.Chart().OnResizeScheduled(r.chartID, r.delay)
}

func (r *resizeCoordinator) flush() {
	r.pending = nil
	r.fire()
}

func (r *resizeCoordinator) state() ResizeState {
	if r.pending != nil {
		return ResizePending
	}
	return ResizeIdle
}

// stop unsubscribes and cancels a pending callback. It reports whether a
// pending callback was cancelled.
func (r *resizeCoordinator) stop() bool {
	if r.subscribed {
		r.env.RemoveResizeListener(r.listener)
		r.subscribed = false
	}
	if r.pending == nil {
		return false
	}
	cancelled := r.pending.Stop()
	r.pending = nil
	return cancelled
}
