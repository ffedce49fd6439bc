package surface

import (
	"strings"

	"github.com/mobile-next/touchemu/touch"
)

// Element is a node of a Surface.
type Element struct {
	id      string
	tag     string
	parent  *Element
	surface *Surface
	removed bool
}

func (e *Element) ID() string {
	return e.id
}

func (e *Element) TagName() string {
	return e.tag
}

func (e *Element) Parent() *Element {
	return e.parent
}

// Connected reports whether the element and all its ancestors are still
// attached to the surface.
func (e *Element) Connected() bool {
	for n := e; n != nil; n = n.parent {
		if n.removed {
			return false
		}
	}
	return true
}

// Path returns the element followed by its ancestors up to the root.
func (e *Element) Path() []touch.Element {
	var path []touch.Element
	for n := e; n != nil; n = n.parent {
		path = append(path, n)
	}
	return path
}

// DispatchTouch delivers ev to the element and bubbles it to its ancestors
// until propagation is stopped.
func (e *Element) DispatchTouch(ev *touch.Event) {
	if e.surface == nil {
		return
	}
	for n := e; n != nil; n = n.parent {
		for _, h := range e.surface.touchHandlers {
			h(n, ev)
		}
		if ev.PropagationStopped() {
			return
		}
	}
}

func normalizeTag(tag string) string {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" {
		return "DIV"
	}
	return tag
}
