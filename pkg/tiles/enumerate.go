package tiles

// Bounds describes the tile-index rectangle covering a bounding box at one
// zoom level.
type Bounds struct {
	Zoom int
	MinX int
	MaxX int
	MinY int
	MaxY int

	// Swapped is set when the computed min index exceeded the max index on
	// either axis and the bounds were swapped to proceed. This happens for
	// boxes crossing the antimeridian, where the resulting tile set may be
	// the wrapped complement of what the caller intended.
	Swapped bool
}

// Width returns the number of tile columns.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of tile rows.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Total returns the number of tiles in the rectangle.
func (b Bounds) Total() int { return b.Width() * b.Height() }

// TileBounds computes the tile-index rectangle for bbox at the given zoom.
// The north-west corner (maxLat, minLon) gives (minX, minY) and the
// south-east corner (minLat, maxLon) gives (maxX, maxY); y grows southward.
// Inverted bounds are swapped rather than rejected, with Bounds.Swapped set
// so callers can surface a diagnostic.
func TileBounds(bbox BoundingBox, zoom int) Bounds {
	minX, minY := ToTileIndex(bbox.MaxLat, bbox.MinLon, zoom)
	maxX, maxY := ToTileIndex(bbox.MinLat, bbox.MaxLon, zoom)

	b := Bounds{Zoom: zoom, MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
	if b.MinX > b.MaxX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
		b.Swapped = true
	}
	if b.MinY > b.MaxY {
		b.MinY, b.MaxY = b.MaxY, b.MinY
		b.Swapped = true
	}
	return b
}

// Tiles enumerates every coordinate in the rectangle. The result always
// contains exactly Total coordinates.
func (b Bounds) Tiles() Set {
	set := make(Set, b.Total())
	for x := b.MinX; x <= b.MaxX; x++ {
		for y := b.MinY; y <= b.MaxY; y++ {
			set.Add(Coord{Zoom: b.Zoom, X: x, Y: y})
		}
	}
	return set
}

// ExpectedTiles returns the set of tiles whose extent intersects bbox at the
// given zoom level. Callers that also need the rectangle itself should call
// TileBounds once and Tiles on the result.
func ExpectedTiles(bbox BoundingBox, zoom int) Set {
	return TileBounds(bbox, zoom).Tiles()
}
