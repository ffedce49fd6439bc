// Package session ties a surface, an input bridge and the optional overlay
// into one emulated touch screen.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mobile-next/touchemu/emulator"
	"github.com/mobile-next/touchemu/overlay"
	"github.com/mobile-next/touchemu/surface"
	"github.com/mobile-next/touchemu/touch"
)

// Sample is one recorded or remote mouse event. Page coordinates are the
// client position plus the scroll offset, screen coordinates the client
// position plus the window origin.
type Sample struct {
	Type    string  `json:"type" plist:"type"`
	Target  string  `json:"target,omitempty" plist:"target,omitempty"`
	X       float64 `json:"x" plist:"x"`
	Y       float64 `json:"y" plist:"y"`
	ScrollX float64 `json:"scrollX,omitempty" plist:"scrollX,omitempty"`
	ScrollY float64 `json:"scrollY,omitempty" plist:"scrollY,omitempty"`
	WindowX float64 `json:"windowX,omitempty" plist:"windowX,omitempty"`
	WindowY float64 `json:"windowY,omitempty" plist:"windowY,omitempty"`
	Which   int     `json:"which" plist:"which"`
	Alt     bool    `json:"alt,omitempty" plist:"alt,omitempty"`
	Ctrl    bool    `json:"ctrl,omitempty" plist:"ctrl,omitempty"`
	Meta    bool    `json:"meta,omitempty" plist:"meta,omitempty"`
	Shift   bool    `json:"shift,omitempty" plist:"shift,omitempty"`
}

// Position returns the sample location in all coordinate spaces.
func (s Sample) Position() touch.Position {
	return touch.Position{
		ClientX: s.X,
		ClientY: s.Y,
		PageX:   s.X + s.ScrollX,
		PageY:   s.Y + s.ScrollY,
		ScreenX: s.X + s.WindowX,
		ScreenY: s.Y + s.WindowY,
	}
}

// MouseResult reports what one sample produced. Suppressed is true when
// native mouse handling was blocked, Native when the mouse event still
// reached the target element.
type MouseResult struct {
	Suppressed bool           `json:"suppressed"`
	Native     bool           `json:"native"`
	Events     []*touch.Event `json:"events"`
}

type Option func(*options)

type options struct {
	observers    []emulator.Observer
	touchSupport bool
	capacity     int
}

// WithObserver adds an observer that sees every dispatched touch event.
func WithObserver(o emulator.Observer) Option {
	return func(opts *options) {
		opts.observers = append(opts.observers, o)
	}
}

// WithTouchSupport makes the surface report native touch support, so the
// bridge is never attached.
func WithTouchSupport() Option {
	return func(opts *options) {
		opts.touchSupport = true
	}
}

// WithCapacity bounds the number of elements kept by the surface.
func WithCapacity(n int) Option {
	return func(opts *options) {
		opts.capacity = n
	}
}

type Session struct {
	ID string

	mu       sync.Mutex
	surface  *surface.Surface
	bridge   *emulator.Bridge
	overlay  *overlay.Overlay
	attached bool

	// filled while a sample is dispatched
	events []*touch.Event
	native bool
}

func New(cfg emulator.Config, opts ...Option) (*Session, error) {
	o := options{capacity: surface.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}

	surf, err := surface.New(o.capacity)
	if err != nil {
		return nil, err
	}
	surf.SetTouchSupport(o.touchSupport)

	s := &Session{
		ID:      uuid.NewString(),
		surface: surf,
		bridge:  emulator.NewBridge(cfg, emulator.NewState()),
	}

	if cfg.ShowTouches {
		s.overlay = overlay.New()
		s.bridge.AddObserver(s.overlay)
	}
	for _, obs := range o.observers {
		s.bridge.AddObserver(obs)
	}

	surf.OnTouch(func(current *surface.Element, ev *touch.Event) {
		if current == ev.Target {
			s.events = append(s.events, ev)
		}
	})
	surf.OnMouse(func(current *surface.Element, ev *emulator.MouseEvent) {
		s.native = true
	})

	s.attached = emulator.Attach(surf, s.bridge)
	return s, nil
}

// Attached reports whether mouse input is translated into touch events.
func (s *Session) Attached() bool {
	return s.attached
}

func (s *Session) Bridge() *emulator.Bridge {
	return s.bridge
}

func (s *Session) CreateElement(id, tag, parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.surface.CreateElement(id, tag, parentID)
	return err
}

func (s *Session) RemoveElement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.surface.Remove(id) {
		return fmt.Errorf("element not found: %s", id)
	}
	return nil
}

// Mouse dispatches one sample and returns the touch events it caused.
func (s *Session) Mouse(sample Sample) (*MouseResult, error) {
	t, err := parseMouseType(sample.Type)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.surface.Element(sample.Target)
	if !ok {
		return nil, fmt.Errorf("element not found: %s", sample.Target)
	}

	ev := &emulator.MouseEvent{
		Type:     t,
		Target:   target,
		Path:     target.Path(),
		Position: sample.Position(),
		Which:    sample.Which,
		AltKey:   sample.Alt,
		CtrlKey:  sample.Ctrl,
		MetaKey:  sample.Meta,
		ShiftKey: sample.Shift,
	}

	s.events = nil
	s.native = false
	s.surface.Dispatch(ev)

	events := s.events
	if events == nil {
		events = []*touch.Event{}
	}
	s.events = nil

	return &MouseResult{
		Suppressed: ev.DefaultPrevented(),
		Native:     s.native,
		Events:     events,
	}, nil
}

func (s *Session) State() emulator.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bridge.State().Snapshot()
}

// Markers returns the overlay markers, or nil when the overlay is disabled.
func (s *Session) Markers() []overlay.Marker {
	if s.overlay == nil {
		return nil
	}
	return s.overlay.Markers()
}

// Reset abandons the current gesture and clears the overlay.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bridge.Reset()
	if s.overlay != nil {
		s.overlay.Clear()
	}
}

func parseMouseType(s string) (emulator.MouseEventType, error) {
	switch t := emulator.MouseEventType(s); t {
	case emulator.MouseDown, emulator.MouseMove, emulator.MouseUp,
		emulator.MouseEnter, emulator.MouseLeave, emulator.MouseOut, emulator.MouseOver:
		return t, nil
	default:
		return "", fmt.Errorf("unknown mouse event type %q", s)
	}
}
