package emulator

import (
	"time"

	"github.com/mobile-next/touchemu/touch"
	"github.com/mobile-next/touchemu/utils"
)

// Observer sees every synthetic touch event before its target does.
// Observers must not modify the event.
type Observer interface {
	ObserveTouch(ev *touch.Event)
}

// Bridge turns host mouse events into synthetic touch events.
type Bridge struct {
	cfg       Config
	state     *State
	synth     *Synthesizer
	observers []Observer
	now       func() time.Time
}

// NewBridge creates a bridge that owns state.
func NewBridge(cfg Config, state *State) *Bridge {
	if state == nil {
		state = NewState()
	}
	return &Bridge{
		cfg:   cfg,
		state: state,
		synth: NewSynthesizer(cfg.MultiTouchOffset),
		now:   time.Now,
	}
}

func (b *Bridge) Config() Config {
	return b.cfg
}

func (b *Bridge) State() *State {
	return b.state
}

func (b *Bridge) AddObserver(o Observer) {
	b.observers = append(b.observers, o)
}

// SetClock replaces the time source used for event timestamps.
func (b *Bridge) SetClock(now func() time.Time) {
	b.now = now
}

// Reset drops the current gesture without emitting any event.
func (b *Bridge) Reset() {
	b.state.Reset()
}

// HandleMouse processes one host mouse event.
func (b *Bridge) HandleMouse(ev *MouseEvent) {
	switch ev.Type {
	case MouseDown:
		b.handle(ev, touch.Start)
	case MouseMove:
		b.handle(ev, touch.Move)
	case MouseUp:
		b.handle(ev, touch.End)
	default:
		Suppress(ev)
	}
}

func (b *Bridge) handle(ev *MouseEvent, kind touch.EventType) {
	if !b.cfg.Ignores(ev.targetTag()) {
		Suppress(ev)
	}

	if ev.Which != PrimaryButton {
		return
	}

	b.state.Capture(ev)

	// the modifier was let go: lift the secondary contact first
	held := b.cfg.Modifier.Held(ev)
	if b.state.Mode() == Multi && !held {
		b.dispatch(touch.End, ev, b.synth.Lift(b.state, ev))
		b.state.LeaveMulti()
	}

	b.trigger(kind, ev)

	if held && ev.Type != MouseUp && b.state.InGesture() && b.state.EnterMulti(ev.Position) {
		b.trigger(touch.Start, ev)
	}

	if ev.Type == MouseUp {
		b.state.Reset()
	}
}

func (b *Bridge) trigger(kind touch.EventType, ev *MouseEvent) {
	b.dispatch(kind, ev, b.synth.Synthesize(b.state, ev, kind))
}

func (b *Bridge) dispatch(kind touch.EventType, ev *MouseEvent, lists Collections) {
	target := b.state.Target()
	if target == nil {
		utils.Verbose("no touch target captured, dropping %s", kind)
		return
	}

	tev := &touch.Event{
		Type:           kind,
		Target:         target,
		Touches:        lists.Touches,
		TargetTouches:  lists.TargetTouches,
		ChangedTouches: lists.ChangedTouches,
		AltKey:         ev.AltKey,
		CtrlKey:        ev.CtrlKey,
		MetaKey:        ev.MetaKey,
		ShiftKey:       ev.ShiftKey,
		TimeStamp:      b.now(),
	}

	for _, o := range b.observers {
		o.ObserveTouch(tev)
	}
	target.DispatchTouch(tev)
}

// Suppress blocks the native default action and propagation of ev.
func Suppress(ev *MouseEvent) {
	ev.PreventDefault()
	ev.StopPropagation()
}
