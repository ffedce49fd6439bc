package emulator

import "github.com/mobile-next/touchemu/touch"

// Collections are the three touch lists carried by one synthetic event.
type Collections struct {
	Touches        touch.List
	TargetTouches  touch.List
	ChangedTouches touch.List
}

// Synthesizer builds touch lists from pointer samples.
type Synthesizer struct {
	offset float64
}

func NewSynthesizer(offset float64) *Synthesizer {
	return &Synthesizer{offset: offset}
}

// Contacts returns every simulated contact for the sample. In Multi mode the
// two contacts mirror each other around the anchor, each pushed away by the
// offset in opposite directions.
func (s *Synthesizer) Contacts(state *State, ev *MouseEvent) touch.List {
	target := state.Target()

	anchor, ok := state.Anchor()
	if state.Mode() != Multi || !ok {
		return touch.NewList(touch.NewPoint(target, touch.PrimaryID, ev.Position, 0, 0))
	}

	f := s.offset
	deltaX := anchor.PageX - ev.PageX
	deltaY := anchor.PageY - ev.PageY

	return touch.NewList(
		touch.NewPoint(target, touch.PrimaryID, anchor, -deltaX-f, -deltaY+f),
		touch.NewPoint(target, touch.SecondaryID, anchor, deltaX+f, deltaY-f),
	)
}

// Synthesize produces the lists for an event of the given kind. The state must
// already reflect any transition caused by the sample.
func (s *Synthesizer) Synthesize(state *State, ev *MouseEvent, kind touch.EventType) Collections {
	contacts := s.Contacts(state, ev)
	released := ev.Type == MouseUp
	multi := state.Mode() == Multi

	// nothing stays in contact once the button is released
	var active touch.List
	if !released {
		active = contacts
		if multi && kind == touch.End {
			active = contacts.Without(touch.SecondaryID)
		}
	}

	// the secondary contact is the only one added or removed while the
	// pointer is down; a release reports every contact
	changed := contacts
	if multi && !released && (kind == touch.Start || kind == touch.End) {
		changed = contacts.Only(touch.SecondaryID)
	}

	return Collections{
		Touches:        active,
		TargetTouches:  active,
		ChangedTouches: changed,
	}
}

// Lift produces the lists for the secondary contact leaving while the primary
// one stays down, whatever the sample type.
func (s *Synthesizer) Lift(state *State, ev *MouseEvent) Collections {
	contacts := s.Contacts(state, ev)
	active := contacts.Without(touch.SecondaryID)

	return Collections{
		Touches:        active,
		TargetTouches:  active,
		ChangedTouches: contacts.Only(touch.SecondaryID),
	}
}
