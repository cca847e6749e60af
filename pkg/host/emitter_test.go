package host

import "testing"

func TestEmitter(t *testing.T) {
	var e Emitter
	var calls []string

	a := e.AddResizeListener(func() { calls = append(calls, "a") })
	e.AddResizeListener(func() { calls = append(calls, "b") })

	if e.Listeners() != 2 {
		t.Fatalf("Listeners() = %d, want 2", e.Listeners())
	}

	e.Emit()
	e.RemoveResizeListener(a)
	e.Emit()

	want := []string{"a", "b", "b"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}

	if e.Listeners() != 1 {
		t.Errorf("Listeners() = %d, want 1", e.Listeners())
	}
}

func TestEmitterRemoveUnknown(t *testing.T) {
	var e Emitter
	e.RemoveResizeListener(42)
	if e.Listeners() != 0 {
		t.Errorf("Listeners() = %d, want 0", e.Listeners())
	}
}

func TestEmitterRemoveDuringEmit(t *testing.T) {
	var e Emitter
	var second ListenerID
	calledSecond := false

	e.AddResizeListener(func() { e.RemoveResizeListener(second) })
	second = e.AddResizeListener(func() { calledSecond = true })

	e.Emit()
	if calledSecond {
		t.Error("a listener removed earlier in the same emit should be skipped")
	}
}
