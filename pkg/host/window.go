package host

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/burst/pkg/scene"
)

// ErrClosed is returned when work is posted to a window whose loop has exited.
var ErrClosed = errors.New("host: window closed")

// Window is an [Env] backed by an event loop goroutine started with Run.
//
// Listener registration, Resize, AfterFunc and Timer.Stop must be called on the
// loop (inside a closure passed to Post or Do, or from a callback the window
// delivers). Post and Do are safe to call from any goroutine.
type Window struct {
	// Body is the container element widgets are mounted in.
	Body *scene.Element

	emitter Emitter
	queue   chan func()
	done    chan struct{}
	once    sync.Once
	logger  *log.Logger
}

// NewWindow creates a window whose body measures width. A nil logger
// discards log output.
func NewWindow(width float64, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Window{
		Body:   scene.New("body").SetClientWidth(width),
		queue:  make(chan func(), 64),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run executes posted work until ctx is cancelled. It returns ctx.Err().
func (w *Window) Run(ctx context.Context) error {
	defer w.once.Do(func() { close(w.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-w.queue:
			fn()
		}
	}
}

// Post queues fn to run on the loop. It returns false if the loop has exited.
func (w *Window) Post(fn func()) bool {
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case w.queue <- fn:
		return true
	case <-w.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
func (w *Window) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !w.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-w.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddResizeListener implements [ResizeSource].
func (w *Window) AddResizeListener(fn func()) ListenerID {
	return w.emitter.AddResizeListener(fn)
}

// RemoveResizeListener implements [ResizeSource].
func (w *Window) RemoveResizeListener(id ListenerID) {
	w.emitter.RemoveResizeListener(id)
}

// Listeners returns the number of registered resize listeners.
func (w *Window) Listeners() int { return w.emitter.Listeners() }

// Resize changes the body width and emits a resize event.
func (w *Window) Resize(width float64) {
	w.logger.Debug("window resized", "width", width, "listeners", w.emitter.Listeners())
	w.Body.SetClientWidth(width)
	w.emitter.Emit()
}

// AfterFunc implements [Scheduler]. fn runs on the loop.
func (w *Window) AfterFunc(d time.Duration, fn func()) Timer {
	t := &windowTimer{}
	t.timer = time.AfterFunc(d, func() {
		w.Post(func() {
			if t.done {
				return
			}
			t.done = true
			fn()
		})
	})
	return t
}

type windowTimer struct {
	timer *time.Timer
	done  bool // only touched on the loop
}

func (t *windowTimer) Stop() bool {
	t.timer.Stop()
	if t.done {
		return false
	}
	t.done = true
	return true
}

var _ Env = (*Window)(nil)
