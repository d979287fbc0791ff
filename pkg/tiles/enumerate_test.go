package tiles

import "testing"

// Los Angeles area, the reference region used throughout the tests.
var laBBox = BoundingBox{MinLat: 33.70, MinLon: -118.67, MaxLat: 34.34, MaxLon: -118.15}

func TestExpectedTilesCountInvariant(t *testing.T) {
	for zoom := 0; zoom <= MaxZoom; zoom++ {
		set := ExpectedTiles(laBBox, zoom)
		b := TileBounds(laBBox, zoom)
		if len(set) != b.Total() {
			t.Errorf("zoom %d: set size %d != width*height %d", zoom, len(set), b.Total())
		}
	}
}

func TestExpectedTilesFixtureZ10(t *testing.T) {
	b := TileBounds(laBBox, 10)
	if b.MinX != 174 || b.MaxX != 175 || b.MinY != 407 || b.MaxY != 410 {
		t.Fatalf("bounds = x[%d,%d] y[%d,%d], want x[174,175] y[407,410]",
			b.MinX, b.MaxX, b.MinY, b.MaxY)
	}

	set := ExpectedTiles(laBBox, 10)
	if len(set) != 8 {
		t.Fatalf("expected 8 tiles, got %d", len(set))
	}
	for x := 174; x <= 175; x++ {
		for y := 407; y <= 410; y++ {
			if !set.Contains(Coord{Zoom: 10, X: x, Y: y}) {
				t.Errorf("missing tile 10/%d/%d", x, y)
			}
		}
	}
}

// Callers that inspect the rectangle (e.g. for the Swapped diagnostic) reuse
// it for enumeration; both paths must agree.
func TestBoundsTilesMatchesExpectedTiles(t *testing.T) {
	for zoom := 0; zoom <= MaxZoom; zoom++ {
		b := TileBounds(laBBox, zoom)
		fromBounds := b.Tiles()
		direct := ExpectedTiles(laBBox, zoom)

		if len(fromBounds) != len(direct) || len(fromBounds) != b.Total() {
			t.Fatalf("zoom %d: Tiles() %d, ExpectedTiles %d, Total %d",
				zoom, len(fromBounds), len(direct), b.Total())
		}
		for c := range direct {
			if !fromBounds.Contains(c) {
				t.Errorf("zoom %d: Tiles() missing %s", zoom, c.ID())
			}
		}
	}
}

func TestExpectedTilesRootZoom(t *testing.T) {
	set := ExpectedTiles(laBBox, 0)
	if len(set) != 1 || !set.Contains(Coord{Zoom: 0, X: 0, Y: 0}) {
		t.Fatalf("zoom 0 should yield only the root tile, got %v", set.Sorted())
	}
}

func TestExpectedTilesGrowWithZoom(t *testing.T) {
	prev := len(ExpectedTiles(laBBox, 4))
	for zoom := 5; zoom <= 14; zoom++ {
		count := len(ExpectedTiles(laBBox, zoom))
		if count < prev {
			t.Errorf("zoom %d: count %d shrank from %d", zoom, count, prev)
		}
		// Each zoom step quadruples tile density; for a box spanning several
		// tiles the covering set should roughly keep up.
		if prev >= 4 && count < 2*prev {
			t.Errorf("zoom %d: count %d did not roughly quadruple from %d", zoom, count, prev)
		}
		prev = count
	}
}

// Boxes crossing the antimeridian produce inverted x bounds. The enumerator
// swaps rather than rejects, so the result is the wrapped rectangle; this
// locks in the lenient behavior.
func TestExpectedTilesSwapsInvertedBounds(t *testing.T) {
	crossing := BoundingBox{MinLat: -10, MinLon: 170, MaxLat: 10, MaxLon: -170}

	b := TileBounds(crossing, 4)
	if !b.Swapped {
		t.Fatal("expected Swapped to be set for an antimeridian-crossing box")
	}
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		t.Fatalf("bounds not normalized: x[%d,%d] y[%d,%d]", b.MinX, b.MaxX, b.MinY, b.MaxY)
	}

	set := ExpectedTiles(crossing, 4)
	if len(set) == 0 {
		t.Fatal("swap should yield a non-empty tile set, not an abort")
	}
	if len(set) != b.Total() {
		t.Errorf("set size %d != bounds total %d", len(set), b.Total())
	}
}

func TestSetSorted(t *testing.T) {
	set := NewSet()
	set.Add(Coord{Zoom: 3, X: 2, Y: 1})
	set.Add(Coord{Zoom: 2, X: 9, Y: 9})
	set.Add(Coord{Zoom: 3, X: 2, Y: 0})
	set.Add(Coord{Zoom: 3, X: 1, Y: 5})

	got := set.Sorted()
	want := []Coord{
		{Zoom: 2, X: 9, Y: 9},
		{Zoom: 3, X: 1, Y: 5},
		{Zoom: 3, X: 2, Y: 0},
		{Zoom: 3, X: 2, Y: 1},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
