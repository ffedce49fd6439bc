package touch

import (
	"encoding/json"
	"slices"
)

// List is an ordered collection of contacts, primary first.
type List struct {
	points []Point
}

// NewList builds a list from points. A point whose identifier is already
// present is dropped.
func NewList(points ...Point) List {
	l := List{}
	for _, p := range points {
		if _, ok := l.Identified(p.Identifier); ok {
			continue
		}
		l.points = append(l.points, p)
	}
	return l
}

// Len returns the number of contacts.
func (l List) Len() int {
	return len(l.points)
}

// Item returns the contact at index i.
func (l List) Item(i int) (Point, bool) {
	if i < 0 || i >= len(l.points) {
		return Point{}, false
	}
	return l.points[i], true
}

// Identified returns the contact with the given identifier.
func (l List) Identified(id int) (Point, bool) {
	for _, p := range l.points {
		if p.Identifier == id {
			return p, true
		}
	}
	return Point{}, false
}

// Points returns a copy of the contacts.
func (l List) Points() []Point {
	out := make([]Point, len(l.points))
	copy(out, l.points)
	return out
}

// Identifiers returns the identifiers in list order.
func (l List) Identifiers() []int {
	ids := make([]int, len(l.points))
	for i, p := range l.points {
		ids[i] = p.Identifier
	}
	return ids
}

// Only returns the contacts whose identifier is one of ids.
func (l List) Only(ids ...int) List {
	out := List{}
	for _, p := range l.points {
		if slices.Contains(ids, p.Identifier) {
			out.points = append(out.points, p)
		}
	}
	return out
}

// Without returns the contacts whose identifier is not one of ids.
func (l List) Without(ids ...int) List {
	out := List{}
	for _, p := range l.points {
		if !slices.Contains(ids, p.Identifier) {
			out.points = append(out.points, p)
		}
	}
	return out
}

func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Points())
}
