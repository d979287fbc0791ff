package tiles

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"gocloud.dev/blob"
)

// TileJSONKey is the storage key of the tile-service descriptor.
const TileJSONKey = "tiles.json"

// TileJSON is a TileJSON-style descriptor for a downloaded tile set.
type TileJSON struct {
	TileJSON    string     `json:"tilejson"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Version     string     `json:"version"`
	Attribution string     `json:"attribution"`
	Scheme      string     `json:"scheme"`
	Tiles       []string   `json:"tiles"`
	MinZoom     int        `json:"minzoom"`
	MaxZoom     int        `json:"maxzoom"`
	Bounds      [4]float64 `json:"bounds"`
	Center      [3]float64 `json:"center"`
	Format      string     `json:"format"`
	Encoding    string     `json:"encoding"`
}

// NewTileJSON builds the descriptor for a tile set covering bbox across the
// given zoom range. Bounds and center are rounded to 6 decimals; the center
// zoom is the middle of the range.
func NewTileJSON(name string, bbox BoundingBox, zooms ZoomRange) *TileJSON {
	centerLat, centerLon := bbox.Center()
	centerZoom := (zooms.Min + zooms.Max) / 2

	return &TileJSON{
		TileJSON:    "2.2.0",
		Name:        fmt.Sprintf("Terrain Tiles %s", name),
		Description: fmt.Sprintf("Terrarium encoded terrain tiles for the specified region (%s)", name),
		Version:     "1.0.0",
		Attribution: "Mapzen, OpenStreetMap, AWS Terrain Tiles",
		Scheme:      "xyz",
		Tiles:       []string{"{z}/{x}/{y}.png"},
		MinZoom:     zooms.Min,
		MaxZoom:     zooms.Max,
		Bounds: [4]float64{
			round6(bbox.MinLon),
			round6(bbox.MinLat),
			round6(bbox.MaxLon),
			round6(bbox.MaxLat),
		},
		Center:   [3]float64{round6(centerLon), round6(centerLat), float64(centerZoom)},
		Format:   "png",
		Encoding: "terrarium",
	}
}

// WriteTileJSON writes the descriptor as tiles.json at the bucket root.
func WriteTileJSON(ctx context.Context, bucket *blob.Bucket, doc *TileJSON) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("tiles: marshal tiles.json: %w", err)
	}
	if err := bucket.WriteAll(ctx, TileJSONKey, data, nil); err != nil {
		return fmt.Errorf("tiles: write tiles.json: %w", err)
	}
	return nil
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
