package emulator

// Host delivers mouse events to listeners.
type Host interface {
	// AddEventListener registers fn for events of type t. Capture listeners
	// run before the event reaches its target.
	AddEventListener(t MouseEventType, capture bool, fn func(*MouseEvent))
}

// TouchCapable is implemented by hosts that can report native touch support.
type TouchCapable interface {
	HasTouchSupport() bool
}

// Attach subscribes b to host at the capture phase. Nothing is installed on a
// host with native touch support; the return value reports whether the
// bridge was attached.
func Attach(host Host, b *Bridge) bool {
	if tc, ok := host.(TouchCapable); ok && tc.HasTouchSupport() {
		return false
	}

	for _, t := range []MouseEventType{MouseDown, MouseMove, MouseUp} {
		host.AddEventListener(t, true, b.HandleMouse)
	}
	for _, t := range []MouseEventType{MouseEnter, MouseLeave, MouseOut, MouseOver} {
		host.AddEventListener(t, true, Suppress)
	}

	return true
}
