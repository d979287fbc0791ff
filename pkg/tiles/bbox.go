package tiles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxZoom is the deepest zoom level the tile source provides.
const MaxZoom = 15

// Common validation errors.
var (
	ErrBadBoundingBox = errors.New("tiles: bounding box must be min_lon,min_lat,max_lon,max_lat")
	ErrBadZoomRange   = errors.New("tiles: zoom range must be min_zoom,max_zoom")
)

// BoundingBox is a geographic bounding box in degrees.
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// ParseBoundingBox parses a "min_lon,min_lat,max_lon,max_lat" string and
// validates coordinate ranges and ordering.
func ParseBoundingBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: got %d values", ErrBadBoundingBox, len(parts))
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("%w: %q is not a number", ErrBadBoundingBox, p)
		}
		vals[i] = v
	}

	bbox := BoundingBox{
		MinLon: vals[0],
		MinLat: vals[1],
		MaxLon: vals[2],
		MaxLat: vals[3],
	}
	if err := bbox.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return bbox, nil
}

// Validate checks coordinate ranges and ordering.
func (b BoundingBox) Validate() error {
	if b.MinLon < -180 || b.MinLon > 180 || b.MaxLon < -180 || b.MaxLon > 180 {
		return fmt.Errorf("%w: longitude out of [-180,180]", ErrBadBoundingBox)
	}
	if b.MinLat < -90 || b.MinLat > 90 || b.MaxLat < -90 || b.MaxLat > 90 {
		return fmt.Errorf("%w: latitude out of [-90,90]", ErrBadBoundingBox)
	}
	if b.MinLon >= b.MaxLon || b.MinLat >= b.MaxLat {
		return fmt.Errorf("%w: min coordinates must be less than max coordinates", ErrBadBoundingBox)
	}
	return nil
}

// Center returns the box's center point as (lat, lon).
func (b BoundingBox) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// String renders the box in the same order ParseBoundingBox accepts.
func (b BoundingBox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// ZoomRange is an inclusive range of zoom levels.
type ZoomRange struct {
	Min int
	Max int
}

// ParseZoomRange parses a "min_zoom,max_zoom" string and validates bounds.
func ParseZoomRange(s string) (ZoomRange, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return ZoomRange{}, fmt.Errorf("%w: got %d values", ErrBadZoomRange, len(parts))
	}

	minZoom, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ZoomRange{}, fmt.Errorf("%w: %q is not an integer", ErrBadZoomRange, parts[0])
	}
	maxZoom, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ZoomRange{}, fmt.Errorf("%w: %q is not an integer", ErrBadZoomRange, parts[1])
	}

	zr := ZoomRange{Min: minZoom, Max: maxZoom}
	if err := zr.Validate(); err != nil {
		return ZoomRange{}, err
	}
	return zr, nil
}

// Validate checks zoom bounds and ordering.
func (z ZoomRange) Validate() error {
	if z.Min < 0 || z.Min > MaxZoom || z.Max < 0 || z.Max > MaxZoom {
		return fmt.Errorf("%w: zoom levels must be between 0 and %d", ErrBadZoomRange, MaxZoom)
	}
	if z.Min > z.Max {
		return fmt.Errorf("%w: min zoom cannot be greater than max zoom", ErrBadZoomRange)
	}
	return nil
}

// Levels returns the zoom levels in the range, ascending.
func (z ZoomRange) Levels() []int {
	levels := make([]int, 0, z.Max-z.Min+1)
	for l := z.Min; l <= z.Max; l++ {
		levels = append(levels, l)
	}
	return levels
}

// String renders the range in the same order ParseZoomRange accepts.
func (z ZoomRange) String() string {
	return fmt.Sprintf("%d,%d", z.Min, z.Max)
}
