package session

import (
	"testing"

	"github.com/mobile-next/touchemu/emulator"
	"github.com/mobile-next/touchemu/touch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := New(emulator.DefaultConfig(), opts...)
	require.NoError(t, err)
	require.NoError(t, s.CreateElement("canvas", "canvas", ""))
	return s
}

func TestSample_Position(t *testing.T) {
	s := Sample{X: 10, Y: 20, ScrollX: 5, ScrollY: 100, WindowX: 300, WindowY: 400}
	assert.Equal(t, touch.Position{ClientX: 10, ClientY: 20, PageX: 15, PageY: 120, ScreenX: 310, ScreenY: 420}, s.Position())
}

func TestSession_Gesture(t *testing.T) {
	s := newTestSession(t)
	assert.NotEmpty(t, s.ID)
	assert.True(t, s.Attached())

	res, err := s.Mouse(Sample{Type: "mousedown", Target: "canvas", X: 100, Y: 100, Which: 1})
	require.NoError(t, err)
	assert.True(t, res.Suppressed)
	assert.False(t, res.Native)
	require.Len(t, res.Events, 1)
	assert.Equal(t, touch.Start, res.Events[0].Type)

	res, err = s.Mouse(Sample{Type: "mousemove", Target: "canvas", X: 120, Y: 130, Which: 1, Shift: true})
	require.NoError(t, err)
	require.Len(t, res.Events, 2)
	assert.Equal(t, []int{2}, res.Events[1].ChangedTouches.Identifiers())

	state := s.State()
	assert.Equal(t, "multi", state.Mode)
	assert.Equal(t, "canvas", state.Target)
	assert.Len(t, s.Markers(), 2)

	res, err = s.Mouse(Sample{Type: "mouseup", Target: "canvas", X: 140, Y: 150, Which: 1, Shift: true})
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, 0, res.Events[0].Touches.Len())
	assert.Equal(t, []int{1, 2}, res.Events[0].ChangedTouches.Identifiers())

	assert.Equal(t, "single", s.State().Mode)
	assert.Empty(t, s.Markers())
}

func TestSession_HoverProducesNoEvents(t *testing.T) {
	s := newTestSession(t)

	res, err := s.Mouse(Sample{Type: "mouseover", Target: "canvas"})
	require.NoError(t, err)
	assert.True(t, res.Suppressed)
	assert.Empty(t, res.Events)
}

func TestSession_Errors(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Mouse(Sample{Type: "click", Target: "canvas"})
	assert.Error(t, err)

	_, err = s.Mouse(Sample{Type: "mousedown", Target: "missing", Which: 1})
	assert.Error(t, err)

	assert.Error(t, s.RemoveElement("missing"))
	assert.Error(t, s.CreateElement("canvas", "div", ""))
}

func TestSession_RemovedTargetIsRecaptured(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.CreateElement("other", "div", ""))

	_, err := s.Mouse(Sample{Type: "mousedown", Target: "canvas", Which: 1})
	require.NoError(t, err)
	require.NoError(t, s.RemoveElement("canvas"))

	res, err := s.Mouse(Sample{Type: "mousemove", Target: "other", X: 1, Which: 1})
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "other", res.Events[0].Target.ID())
}

func TestSession_NativeTouchHost(t *testing.T) {
	s := newTestSession(t, WithTouchSupport())
	assert.False(t, s.Attached())

	res, err := s.Mouse(Sample{Type: "mousedown", Target: "canvas", Which: 1})
	require.NoError(t, err)
	assert.False(t, res.Suppressed)
	assert.True(t, res.Native)
	assert.Empty(t, res.Events)
}

type countingObserver struct{ n int }

func (o *countingObserver) ObserveTouch(*touch.Event) { o.n++ }

func TestSession_ObserverAndReset(t *testing.T) {
	obs := &countingObserver{}
	cfg := emulator.DefaultConfig()
	cfg.ShowTouches = false

	s, err := New(cfg, WithObserver(obs), WithCapacity(8))
	require.NoError(t, err)
	require.NoError(t, s.CreateElement("canvas", "canvas", ""))

	_, err = s.Mouse(Sample{Type: "mousedown", Target: "canvas", Which: 1, Shift: true})
	require.NoError(t, err)
	assert.Equal(t, 2, obs.n)
	assert.Nil(t, s.Markers())

	s.Reset()
	assert.Equal(t, "single", s.State().Mode)
	assert.Empty(t, s.State().Target)
}
