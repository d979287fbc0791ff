package tiles

import (
	"math"
	"testing"
)

func TestToTileIndexKnown(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		zoom     int
		x, y     int
	}{
		{"la nw corner z10", 34.34, -118.67, 10, 174, 407},
		{"la se corner z10", 33.70, -118.15, 10, 175, 410},
		{"root tile", 51.5, -0.1, 0, 0, 0},
		{"origin z1", 0, 0, 1, 1, 1},
		{"greenwich equator z4", 0, 0, 4, 8, 8},
	}

	for _, tc := range cases {
		x, y := ToTileIndex(tc.lat, tc.lon, tc.zoom)
		if x != tc.x || y != tc.y {
			t.Errorf("%s: ToTileIndex(%v, %v, %d) = (%d, %d), want (%d, %d)",
				tc.name, tc.lat, tc.lon, tc.zoom, x, y, tc.x, tc.y)
		}
	}
}

func TestToLatLonNorthWestCorner(t *testing.T) {
	lat, lon := ToLatLon(0, 0, 0)
	if math.Abs(lat-85.05112878) > 1e-6 {
		t.Errorf("expected top of Mercator pyramid ~85.05112878, got %v", lat)
	}
	if lon != -180 {
		t.Errorf("expected lon -180, got %v", lon)
	}

	lat, lon = ToLatLon(1, 1, 1)
	if lat != 0 || lon != 0 {
		t.Errorf("ToLatLon(1, 1, 1) = (%v, %v), want (0, 0)", lat, lon)
	}
}

// The round trip through tile indices is lossy (the index truncates), but
// the original point must fall within the tile it mapped to.
func TestRoundTripWithinTile(t *testing.T) {
	points := []struct {
		lat, lon float64
	}{
		{34.05, -118.25},
		{51.5074, -0.1278},
		{-33.8688, 151.2093},
		{64.1466, -21.9426},
		{0.01, 0.01},
	}

	for _, p := range points {
		for zoom := 1; zoom <= MaxZoom; zoom += 2 {
			x, y := ToTileIndex(p.lat, p.lon, zoom)

			north, west := ToLatLon(x, y, zoom)
			south, east := ToLatLon(x+1, y+1, zoom)

			if p.lon < west || p.lon >= east {
				t.Errorf("z%d (%v, %v): lon outside tile [%v, %v)", zoom, p.lat, p.lon, west, east)
			}
			if p.lat > north || p.lat <= south {
				t.Errorf("z%d (%v, %v): lat outside tile (%v, %v]", zoom, p.lat, p.lon, south, north)
			}
		}
	}
}

func TestHigherLatitudeSmallerY(t *testing.T) {
	_, yNorth := ToTileIndex(60, 10, 8)
	_, ySouth := ToTileIndex(-60, 10, 8)
	if yNorth >= ySouth {
		t.Errorf("expected y(%d) at lat 60 to be smaller than y(%d) at lat -60", yNorth, ySouth)
	}
}
