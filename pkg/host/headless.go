package host

import "github.com/matzehuels/burst/pkg/scene"

// Headless is an [Env] without a real event loop. Everything runs on the
// caller's goroutine, and deferred callbacks only run when the clock is
// advanced.
type Headless struct {
	Emitter
	ManualClock

	// Body is the container element widgets are mounted in.
	Body *scene.Element
}

// NewHeadless creates a headless host whose body measures width.
func NewHeadless(width float64) *Headless {
	return &Headless{Body: scene.New("body").SetClientWidth(width)}
}

// Resize changes the body width and emits a resize event.
func (h *Headless) Resize(width float64) {
	h.Body.SetClientWidth(width)
	h.Emit()
}

var _ Env = (*Headless)(nil)
