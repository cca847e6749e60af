package host

import "slices"

// Emitter is a [ResizeSource] that fans an event out to its listeners in
// registration order. The zero value is ready to use.
type Emitter struct {
	next ListenerID
	ids  []ListenerID
	fns  map[ListenerID]func()
}

// AddResizeListener registers fn and returns its id.
func (e *Emitter) AddResizeListener(fn func()) ListenerID {
	if e.fns == nil {
		e.fns = make(map[ListenerID]func())
	}
	e.next++
	e.fns[e.next] = fn
	e.ids = append(e.ids, e.next)
	return e.next
}

// RemoveResizeListener unregisters a listener. Unknown ids are ignored.
func (e *Emitter) RemoveResizeListener(id ListenerID) {
	if _, ok := e.fns[id]; !ok {
		return
	}
	delete(e.fns, id)
	e.ids = slices.DeleteFunc(e.ids, func(x ListenerID) bool { return x == id })
}

// Listeners returns the number of registered listeners.
func (e *Emitter) Listeners() int { return len(e.fns) }

// Emit calls every listener registered when Emit starts. Listeners removed
// by an earlier listener during the same emit are skipped.
func (e *Emitter) Emit() {
	for _, id := range slices.Clone(e.ids) {
		if fn, ok := e.fns[id]; ok {
			fn()
		}
	}
}
