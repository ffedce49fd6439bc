package emulator

import (
	"fmt"
	"strings"
)

// DefaultMultiTouchOffset is the distance of each simulated contact from the
// anchor when multi-touch mode is entered.
const DefaultMultiTouchOffset = 75.0

// DefaultIgnoreTags lists elements that keep native mouse handling.
var DefaultIgnoreTags = []string{"TEXTAREA", "INPUT", "SELECT"}

// Modifier is the keyboard modifier that switches on multi-touch simulation.
type Modifier string

const (
	ModifierShift Modifier = "shift"
	ModifierAlt   Modifier = "alt"
	ModifierCtrl  Modifier = "ctrl"
	ModifierMeta  Modifier = "meta"
)

// ParseModifier accepts shift, alt, ctrl or meta, case-insensitive.
func ParseModifier(s string) (Modifier, error) {
	switch m := Modifier(strings.ToLower(strings.TrimSpace(s))); m {
	case ModifierShift, ModifierAlt, ModifierCtrl, ModifierMeta:
		return m, nil
	case "":
		return ModifierShift, nil
	default:
		return "", fmt.Errorf("unknown modifier %q, expected one of: shift, alt, ctrl, meta", s)
	}
}

// Held reports whether the modifier is pressed in ev.
func (m Modifier) Held(ev *MouseEvent) bool {
	switch m {
	case ModifierAlt:
		return ev.AltKey
	case ModifierCtrl:
		return ev.CtrlKey
	case ModifierMeta:
		return ev.MetaKey
	default:
		return ev.ShiftKey
	}
}

// Config is set once at startup.
type Config struct {
	ShowTouches      bool     `json:"showTouches"`
	MultiTouchOffset float64  `json:"multiTouchOffset"`
	IgnoreTags       []string `json:"ignoreTags"`
	Modifier         Modifier `json:"modifier"`
}

func DefaultConfig() Config {
	tags := make([]string, len(DefaultIgnoreTags))
	copy(tags, DefaultIgnoreTags)

	return Config{
		ShowTouches:      true,
		MultiTouchOffset: DefaultMultiTouchOffset,
		IgnoreTags:       tags,
		Modifier:         ModifierShift,
	}
}

// Ignores reports whether mouse events on elements with this tag keep their
// native behavior.
func (c Config) Ignores(tag string) bool {
	for _, t := range c.IgnoreTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
