package tiles

import (
	"fmt"
	"sort"
)

// Coord identifies one slippy-map tile.
type Coord struct {
	Zoom int
	X    int
	Y    int
}

// ID returns the "z/x/y" identifier used in logs and reports.
func (c Coord) ID() string {
	return fmt.Sprintf("%d/%d/%d", c.Zoom, c.X, c.Y)
}

// Key returns the storage key of the tile blob.
func (c Coord) Key() string {
	return fmt.Sprintf("%d/%d/%d.png", c.Zoom, c.X, c.Y)
}

// Set is a set of unique tile coordinates.
type Set map[Coord]struct{}

// NewSet returns an empty set.
func NewSet() Set {
	return make(Set)
}

// Add inserts c into the set.
func (s Set) Add(c Coord) {
	s[c] = struct{}{}
}

// Contains reports whether c is in the set.
func (s Set) Contains(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Union adds all coordinates from other into s.
func (s Set) Union(other Set) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Zooms returns the distinct zoom levels present in the set, ascending.
func (s Set) Zooms() []int {
	seen := make(map[int]bool)
	for c := range s {
		seen[c.Zoom] = true
	}
	zooms := make([]int, 0, len(seen))
	for z := range seen {
		zooms = append(zooms, z)
	}
	sort.Ints(zooms)
	return zooms
}

// Sorted returns the coordinates ordered by zoom, then x, then y.
// Sets have no inherent order; sorting makes dispatch and reports stable.
func (s Set) Sorted() []Coord {
	coords := make([]Coord, 0, len(s))
	for c := range s {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		a, b := coords[i], coords[j]
		if a.Zoom != b.Zoom {
			return a.Zoom < b.Zoom
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return coords
}
