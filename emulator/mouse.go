package emulator

import "github.com/mobile-next/touchemu/touch"

type MouseEventType string

const (
	MouseDown  MouseEventType = "mousedown"
	MouseMove  MouseEventType = "mousemove"
	MouseUp    MouseEventType = "mouseup"
	MouseEnter MouseEventType = "mouseenter"
	MouseLeave MouseEventType = "mouseleave"
	MouseOut   MouseEventType = "mouseout"
	MouseOver  MouseEventType = "mouseover"
)

// PrimaryButton is the Which value reported while the main button is pressed.
const PrimaryButton = 1

// MouseEvent is a pointer sample delivered by the host.
type MouseEvent struct {
	Type   MouseEventType
	Target touch.Element

	// Path is the composed dispatch path, deepest element first. May be empty.
	Path []touch.Element
	touch.Position

	Which int

	AltKey   bool
	CtrlKey  bool
	MetaKey  bool
	ShiftKey bool

	defaultPrevented   bool
	propagationStopped bool
}

func (e *MouseEvent) PreventDefault() {
	e.defaultPrevented = true
}

func (e *MouseEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

func (e *MouseEvent) StopPropagation() {
	e.propagationStopped = true
}

func (e *MouseEvent) PropagationStopped() bool {
	return e.propagationStopped
}

// deepestTarget returns the first element of the composed path, or the direct
// target when no path is available.
func (e *MouseEvent) deepestTarget() touch.Element {
	if len(e.Path) > 0 && e.Path[0] != nil {
		return e.Path[0]
	}
	return e.Target
}

func (e *MouseEvent) targetTag() string {
	if e.Target == nil {
		return ""
	}
	return e.Target.TagName()
}
