package touch

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	Start  EventType = "touchstart"
	Move   EventType = "touchmove"
	End    EventType = "touchend"
	Cancel EventType = "touchcancel"
)

// Event is a synthetic touch event. It always bubbles and is cancelable.
type Event struct {
	Type           EventType
	Target         Element
	Touches        List
	TargetTouches  List
	ChangedTouches List

	AltKey   bool
	CtrlKey  bool
	MetaKey  bool
	ShiftKey bool

	TimeStamp time.Time

	defaultPrevented   bool
	propagationStopped bool
}

func (e *Event) Bubbles() bool    { return true }
func (e *Event) Cancelable() bool { return true }

func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

type eventJSON struct {
	Type           EventType `json:"type"`
	Target         string    `json:"target,omitempty"`
	Touches        List      `json:"touches"`
	TargetTouches  List      `json:"targetTouches"`
	ChangedTouches List      `json:"changedTouches"`
	AltKey         bool      `json:"altKey"`
	CtrlKey        bool      `json:"ctrlKey"`
	MetaKey        bool      `json:"metaKey"`
	ShiftKey       bool      `json:"shiftKey"`
	Bubbles        bool      `json:"bubbles"`
	Cancelable     bool      `json:"cancelable"`
	TimeStamp      int64     `json:"timeStamp"`
}

func (e *Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		Type:           e.Type,
		Touches:        e.Touches,
		TargetTouches:  e.TargetTouches,
		ChangedTouches: e.ChangedTouches,
		AltKey:         e.AltKey,
		CtrlKey:        e.CtrlKey,
		MetaKey:        e.MetaKey,
		ShiftKey:       e.ShiftKey,
		Bubbles:        e.Bubbles(),
		Cancelable:     e.Cancelable(),
		TimeStamp:      e.TimeStamp.UnixMilli(),
	}
	if e.Target != nil {
		out.Target = e.Target.ID()
	}
	return json.Marshal(out)
}
