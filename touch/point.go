package touch

// Contact identifiers. They are reused by every gesture, not globally unique.
const (
	PrimaryID   = 1
	SecondaryID = 2
)

// Element is a handle to something that can receive synthetic touch events.
type Element interface {
	ID() string
	TagName() string
	// Connected reports whether the element can still receive events
	Connected() bool
	DispatchTouch(ev *Event)
}

// Position is a pointer location in the three coordinate spaces a host reports.
type Position struct {
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
	ScreenX float64 `json:"screenX"`
	ScreenY float64 `json:"screenY"`
	PageX   float64 `json:"pageX"`
	PageY   float64 `json:"pageY"`
}

// Offset returns the position moved by dx, dy on every axis pair.
func (p Position) Offset(dx, dy float64) Position {
	return Position{
		ClientX: p.ClientX + dx,
		ClientY: p.ClientY + dy,
		ScreenX: p.ScreenX + dx,
		ScreenY: p.ScreenY + dy,
		PageX:   p.PageX + dx,
		PageY:   p.PageY + dy,
	}
}

// Point is one simulated contact. A new Point is built for every synthesized
// event; values are never updated in place.
type Point struct {
	Identifier int     `json:"identifier"`
	Target     Element `json:"-"`
	Position
}

// NewPoint creates a contact at pos displaced by dx, dy.
func NewPoint(target Element, identifier int, pos Position, dx, dy float64) Point {
	return Point{
		Identifier: identifier,
		Target:     target,
		Position:   pos.Offset(dx, dy),
	}
}
