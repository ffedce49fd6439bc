// Package surface is an in-memory element tree that delivers mouse events
// the way a browser window does: capture listeners first, then the target
// and its ancestors unless propagation was stopped.
package surface

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/touchemu/emulator"
	"github.com/mobile-next/touchemu/touch"
)

const (
	// DefaultCapacity bounds the number of live elements; the least recently
	// used element is detached when it is exceeded.
	DefaultCapacity = 1024

	RootID = "body"
)

// TouchHandler observes touch events reaching an element.
type TouchHandler func(current *Element, ev *touch.Event)

// MouseHandler observes mouse events that reached an element natively.
type MouseHandler func(current *Element, ev *emulator.MouseEvent)

type listener struct {
	capture bool
	fn      func(*emulator.MouseEvent)
}

// Surface is not safe for concurrent use.
type Surface struct {
	root          *Element
	elements      *lru.Cache[string, *Element]
	listeners     map[emulator.MouseEventType][]listener
	touchHandlers []TouchHandler
	mouseHandlers []MouseHandler
	touchSupport  bool
}

func New(capacity int) (*Surface, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	s := &Surface{
		listeners: make(map[emulator.MouseEventType][]listener),
	}
	s.root = &Element{id: RootID, tag: "BODY", surface: s}

	cache, err := lru.NewWithEvict[string, *Element](capacity, func(_ string, el *Element) {
		el.removed = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create element registry: %w", err)
	}
	s.elements = cache

	return s, nil
}

func (s *Surface) Root() *Element {
	return s.root
}

// SetTouchSupport marks the surface as natively touch capable.
func (s *Surface) SetTouchSupport(v bool) {
	s.touchSupport = v
}

func (s *Surface) HasTouchSupport() bool {
	return s.touchSupport
}

func (s *Surface) AddEventListener(t emulator.MouseEventType, capture bool, fn func(*emulator.MouseEvent)) {
	s.listeners[t] = append(s.listeners[t], listener{capture: capture, fn: fn})
}

func (s *Surface) OnTouch(h TouchHandler) {
	s.touchHandlers = append(s.touchHandlers, h)
}

func (s *Surface) OnMouse(h MouseHandler) {
	s.mouseHandlers = append(s.mouseHandlers, h)
}

// CreateElement adds an element under parentID, or under the root when
// parentID is empty.
func (s *Surface) CreateElement(id, tag, parentID string) (*Element, error) {
	if id == "" {
		return nil, fmt.Errorf("element id is required")
	}
	if id == RootID {
		return nil, fmt.Errorf("element id %q is reserved", id)
	}
	if s.elements.Contains(id) {
		return nil, fmt.Errorf("element %q already exists", id)
	}

	parent := s.root
	if parentID != "" {
		p, ok := s.Element(parentID)
		if !ok {
			return nil, fmt.Errorf("parent element not found: %s", parentID)
		}
		parent = p
	}

	el := &Element{id: id, tag: normalizeTag(tag), parent: parent, surface: s}
	s.elements.Add(id, el)
	return el, nil
}

// Element looks up a connected element by id.
func (s *Surface) Element(id string) (*Element, bool) {
	if id == "" || id == RootID {
		return s.root, true
	}
	el, ok := s.elements.Get(id)
	if !ok || !el.Connected() {
		return nil, false
	}
	return el, true
}

// Remove detaches an element and, through it, all its descendants.
func (s *Surface) Remove(id string) bool {
	el, ok := s.elements.Peek(id)
	if !ok {
		return false
	}
	s.elements.Remove(id)
	el.removed = true
	return true
}

// Len returns the number of registered elements, not counting the root.
func (s *Surface) Len() int {
	return s.elements.Len()
}

// Dispatch delivers ev through capture listeners and, unless one of them
// stopped propagation, to the target and its ancestors.
func (s *Surface) Dispatch(ev *emulator.MouseEvent) {
	if ev.Target == nil {
		ev.Target = s.root
	}
	if len(ev.Path) == 0 {
		if el, ok := ev.Target.(*Element); ok {
			ev.Path = el.Path()
		}
	}

	for _, l := range s.listeners[ev.Type] {
		if l.capture {
			l.fn(ev)
		}
	}
	if ev.PropagationStopped() {
		return
	}

	for _, node := range ev.Path {
		el, ok := node.(*Element)
		if !ok {
			continue
		}
		for _, h := range s.mouseHandlers {
			h(el, ev)
		}
		if ev.PropagationStopped() {
			return
		}
	}

	for _, l := range s.listeners[ev.Type] {
		if !l.capture {
			l.fn(ev)
		}
	}
}
