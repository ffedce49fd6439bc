package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Transitions(t *testing.T) {
	s := NewState()
	assert.Equal(t, Single, s.Mode())
	assert.False(t, s.LeaveMulti(), "cannot leave multi from single")

	require.True(t, s.EnterMulti(pos(1, 2)))
	assert.Equal(t, Multi, s.Mode())
	anchor, ok := s.Anchor()
	require.True(t, ok)
	assert.Equal(t, pos(1, 2), anchor)

	assert.False(t, s.EnterMulti(pos(9, 9)), "already in multi")
	anchor, _ = s.Anchor()
	assert.Equal(t, pos(1, 2), anchor, "anchor is not moved")

	require.True(t, s.LeaveMulti())
	_, ok = s.Anchor()
	assert.False(t, ok)
}

func TestState_Capture(t *testing.T) {
	a := newTestElement("a", "DIV")
	b := newTestElement("b", "DIV")
	s := NewState()

	s.Capture(&MouseEvent{Type: MouseMove, Target: a})
	assert.Equal(t, a, s.Target(), "captures when nothing is held")

	s.Capture(&MouseEvent{Type: MouseMove, Target: b})
	assert.Equal(t, a, s.Target(), "keeps the live target")

	// every pointer-down recaptures, even while a live target is held
	s.Capture(&MouseEvent{Type: MouseDown, Target: b})
	assert.Equal(t, b, s.Target(), "pointer-down starts a new gesture")

	s.Capture(&MouseEvent{Type: MouseMove})
	assert.Equal(t, b, s.Target(), "an event without target changes nothing")
}

func TestState_ResetAndSnapshot(t *testing.T) {
	el := newTestElement("canvas", "CANVAS")
	s := NewState()
	s.Capture(&MouseEvent{Type: MouseDown, Target: el})
	s.EnterMulti(pos(3, 4))

	snap := s.Snapshot()
	assert.Equal(t, "multi", snap.Mode)
	assert.Equal(t, "canvas", snap.Target)
	require.NotNil(t, snap.Anchor)
	assert.Equal(t, 3.0, snap.Anchor.PageX)

	s.Reset()
	assert.Equal(t, Snapshot{Mode: "single"}, s.Snapshot())
}

func TestParseModifier(t *testing.T) {
	m, err := ParseModifier(" CTRL ")
	require.NoError(t, err)
	assert.Equal(t, ModifierCtrl, m)

	m, err = ParseModifier("")
	require.NoError(t, err)
	assert.Equal(t, ModifierShift, m)

	_, err = ParseModifier("super")
	assert.Error(t, err)
}

func TestConfig_Ignores(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Ignores("textarea"))
	assert.True(t, cfg.Ignores("SELECT"))
	assert.False(t, cfg.Ignores("DIV"))
	assert.False(t, cfg.Ignores(""))
}
