package emulator

import "github.com/mobile-next/touchemu/touch"

type Mode int

const (
	Single Mode = iota
	Multi
)

func (m Mode) String() string {
	if m == Multi {
		return "multi"
	}
	return "single"
}

// State tracks how many contacts are simulated and where the current gesture
// is targeted. The anchor is set if and only if the mode is Multi. It is owned
// by a single Bridge and is not safe for concurrent use.
type State struct {
	mode   Mode
	anchor *touch.Position
	target touch.Element
}

func NewState() *State {
	return &State{mode: Single}
}

func (s *State) Mode() Mode {
	return s.mode
}

// Anchor returns the pointer position recorded when Multi mode was entered.
func (s *State) Anchor() (touch.Position, bool) {
	if s.anchor == nil {
		return touch.Position{}, false
	}
	return *s.anchor, true
}

// Target returns the element the current gesture started on, or nil.
func (s *State) Target() touch.Element {
	return s.target
}

// InGesture reports whether a gesture is in progress.
func (s *State) InGesture() bool {
	return s.target != nil
}

// Capture fixes the gesture target. A target is taken from ev on pointer-down,
// or on any sample when no live target is held.
func (s *State) Capture(ev *MouseEvent) {
	if ev.Type != MouseDown && s.target != nil && s.target.Connected() {
		return
	}
	if t := ev.deepestTarget(); t != nil {
		s.target = t
	}
}

// EnterMulti switches from Single to Multi and records the anchor. It reports
// whether a transition happened.
func (s *State) EnterMulti(pos touch.Position) bool {
	if s.mode != Single {
		return false
	}
	s.mode = Multi
	s.anchor = &pos
	return true
}

// LeaveMulti switches from Multi back to Single.
func (s *State) LeaveMulti() bool {
	if s.mode != Multi {
		return false
	}
	s.mode = Single
	s.anchor = nil
	return true
}

// Reset ends the gesture: Single mode, no anchor, no target.
func (s *State) Reset() {
	s.mode = Single
	s.anchor = nil
	s.target = nil
}

// Snapshot is a serializable view of State.
type Snapshot struct {
	Mode   string          `json:"mode"`
	Anchor *touch.Position `json:"anchor"`
	Target string          `json:"target,omitempty"`
}

func (s *State) Snapshot() Snapshot {
	snap := Snapshot{Mode: s.mode.String()}
	if a, ok := s.Anchor(); ok {
		snap.Anchor = &a
	}
	if s.target != nil {
		snap.Target = s.target.ID()
	}
	return snap
}
