package devices

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/mobile-next/touchemu/devices/wda"
	"github.com/mobile-next/touchemu/touch"
	"github.com/mobile-next/touchemu/utils"
)

// ActionPerformer executes a W3C actions request on a device.
type ActionPerformer interface {
	PerformActions(req wda.ActionsRequest) error
	Close() error
}

// TouchForwarder replays synthesized gestures on a device. Each contact
// becomes one touch pointer; the collected actions are sent once the gesture
// has no contacts left.
type TouchForwarder struct {
	device ActionPerformer

	mu      sync.Mutex
	fingers map[int]*wda.Pointer
	ticks   int
	last    time.Time
	lastErr error
	wg      sync.WaitGroup

	// closed once the previously flushed gesture was delivered
	tail chan struct{}
}

func NewTouchForwarder(device ActionPerformer) *TouchForwarder {
	return &TouchForwarder{
		device:  device,
		fingers: make(map[int]*wda.Pointer),
	}
}

// ObserveTouch records the actions for ev and sends the gesture when it ends.
func (f *TouchForwarder) ObserveTouch(ev *touch.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	duration := 0
	if !f.last.IsZero() && !ev.TimeStamp.IsZero() {
		duration = int(ev.TimeStamp.Sub(f.last).Milliseconds())
		if duration < 0 {
			duration = 0
		}
	}
	f.last = ev.TimeStamp

	groups := make(map[int][]wda.TapAction)
	width := 0
	for _, p := range ev.ChangedTouches.Points() {
		actions := pointerActions(ev.Type, p, duration)
		groups[p.Identifier] = actions
		if len(actions) > width {
			width = len(actions)
		}
	}
	if width == 0 {
		return
	}

	for id := range groups {
		f.finger(id)
	}

	// every pointer advances by the same number of ticks
	for id, finger := range f.fingers {
		actions := groups[id]
		if len(actions) == 0 {
			actions = append(actions, wda.TapAction{Type: "pause", Duration: duration})
		}
		for len(actions) < width {
			actions = append(actions, wda.TapAction{Type: "pause"})
		}
		finger.Actions = append(finger.Actions, actions...)
	}
	f.ticks += width

	if ev.Touches.Len() == 0 && (ev.Type == touch.End || ev.Type == touch.Cancel) {
		f.flush()
	}
}

func (f *TouchForwarder) finger(id int) *wda.Pointer {
	if p, ok := f.fingers[id]; ok {
		return p
	}

	p := &wda.Pointer{
		Type: "pointer",
		ID:   fmt.Sprintf("finger%d", id),
		Parameters: wda.PointerParameters{
			PointerType: "touch",
		},
	}
	// a contact joining mid-gesture waits out the ticks it missed
	for i := 0; i < f.ticks; i++ {
		p.Actions = append(p.Actions, wda.TapAction{Type: "pause"})
	}
	f.fingers[id] = p
	return p
}

func (f *TouchForwarder) flush() {
	ids := make([]int, 0, len(f.fingers))
	for id := range f.fingers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	req := wda.ActionsRequest{}
	for _, id := range ids {
		req.Actions = append(req.Actions, *f.fingers[id])
	}

	f.fingers = make(map[int]*wda.Pointer)
	f.ticks = 0
	f.last = time.Time{}

	prev := f.tail
	done := make(chan struct{})
	f.tail = done

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer close(done)

		// gestures reach the device in the order they ended
		if prev != nil {
			<-prev
		}

		err := f.device.PerformActions(req)
		if err != nil {
			utils.Warn("failed to forward gesture: %v", err)
		}

		f.mu.Lock()
		f.lastErr = err
		f.mu.Unlock()
	}()
}

// Wait blocks until every gesture sent so far has been delivered.
func (f *TouchForwarder) Wait() {
	f.wg.Wait()
}

// Err returns the result of the most recent delivery.
func (f *TouchForwarder) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Cleanup waits for pending deliveries and releases the device session.
func (f *TouchForwarder) Cleanup() error {
	f.Wait()
	return f.device.Close()
}

func pointerActions(kind touch.EventType, p touch.Point, duration int) []wda.TapAction {
	move := wda.TapAction{
		Type:     "pointerMove",
		Duration: duration,
		X:        int(math.Round(p.ClientX)),
		Y:        int(math.Round(p.ClientY)),
	}

	switch kind {
	case touch.Start:
		return []wda.TapAction{move, {Type: "pointerDown"}}
	case touch.Move:
		return []wda.TapAction{move}
	case touch.End, touch.Cancel:
		return []wda.TapAction{move, {Type: "pointerUp"}}
	}
	return nil
}
