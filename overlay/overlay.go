// Package overlay keeps one on-screen marker per active simulated contact.
package overlay

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mobile-next/touchemu/touch"
)

// MarkerSize is the diameter of a marker.
const MarkerSize = 30

// Style is the set of CSS properties applied to a marker.
type Style map[string]string

// Template returns the marker style for a contact, centered on its client
// position.
func Template(p touch.Point) Style {
	half := float64(MarkerSize) / 2
	transform := fmt.Sprintf("translate(%gpx, %gpx)", p.ClientX-half, p.ClientY-half)

	return Style{
		"position":         "fixed",
		"left":             "0",
		"top":              "0",
		"background":       "#fff",
		"border":           "solid 1px #999",
		"opacity":          ".6",
		"borderRadius":     "100%",
		"height":           fmt.Sprintf("%dpx", MarkerSize),
		"width":            fmt.Sprintf("%dpx", MarkerSize),
		"padding":          "0",
		"margin":           "0",
		"display":          "block",
		"overflow":         "hidden",
		"pointerEvents":    "none",
		"webkitUserSelect": "none",
		"mozUserSelect":    "none",
		"userSelect":       "none",
		"webkitTransform":  transform,
		"mozTransform":     transform,
		"transform":        transform,
		"zIndex":           "100",
	}
}

// Marker is the rendered indicator of one contact.
type Marker struct {
	Identifier int     `json:"identifier"`
	ClientX    float64 `json:"clientX"`
	ClientY    float64 `json:"clientY"`
	Style      Style   `json:"style"`
}

// Overlay tracks markers from observed touch events. It reads events and
// never modifies them.
type Overlay struct {
	mu      sync.Mutex
	markers map[int]Marker
}

func New() *Overlay {
	return &Overlay{markers: make(map[int]Marker)}
}

// ObserveTouch updates markers for every touch still on the surface and
// removes markers for contacts that ended.
func (o *Overlay) ObserveTouch(ev *touch.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, p := range ev.Touches.Points() {
		o.markers[p.Identifier] = Marker{
			Identifier: p.Identifier,
			ClientX:    p.ClientX,
			ClientY:    p.ClientY,
			Style:      Template(p),
		}
	}

	if ev.Type == touch.End || ev.Type == touch.Cancel {
		for _, id := range ev.ChangedTouches.Identifiers() {
			delete(o.markers, id)
		}
	}
}

// Markers returns the visible markers ordered by identifier.
func (o *Overlay) Markers() []Marker {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Marker, 0, len(o.markers))
	for _, m := range o.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}

// Clear removes every marker.
func (o *Overlay) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.markers = make(map[int]Marker)
}
