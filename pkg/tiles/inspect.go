package tiles

import (
	"context"
	"fmt"
	"image"
	"io"
	"strconv"

	"gocloud.dev/blob"

	_ "image/png"
)

// TileDimension is the pixel width and height of a valid tile.
const TileDimension = 256

// Scan is the result of classifying an expected tile set against a store.
// The three sets partition the expected set: every expected coordinate lands
// in exactly one of them.
type Scan struct {
	Existing Set
	Missing  Set
	Corrupt  Set
}

// ScanMissing reports which expected tiles are absent from the store.
// It only lists keys, never opens tile contents, so it is the fast path for
// missing-only downloads. A zoom level with no stored tiles at all costs a
// single empty listing.
func ScanMissing(ctx context.Context, bucket *blob.Bucket, expected Set) (Set, error) {
	missing := NewSet()

	for _, zoom := range expected.Zooms() {
		present, err := listZoom(ctx, bucket, zoom)
		if err != nil {
			return nil, err
		}
		for c := range expected {
			if c.Zoom == zoom && !present[c.Key()] {
				missing.Add(c)
			}
		}
	}
	return missing, nil
}

// ScanFull classifies every expected tile as existing, missing, or corrupt.
// A tile is corrupt when it is present but its contents do not decode as a
// PNG header or its dimensions are not TileDimension square. Opening every
// present tile makes this the slow path.
func ScanFull(ctx context.Context, bucket *blob.Bucket, expected Set) (*Scan, error) {
	scan := &Scan{
		Existing: NewSet(),
		Missing:  NewSet(),
		Corrupt:  NewSet(),
	}

	for _, zoom := range expected.Zooms() {
		present, err := listZoom(ctx, bucket, zoom)
		if err != nil {
			return nil, err
		}
		for c := range expected {
			if c.Zoom != zoom {
				continue
			}
			if !present[c.Key()] {
				scan.Missing.Add(c)
				continue
			}
			if validTile(ctx, bucket, c.Key()) {
				scan.Existing.Add(c)
			} else {
				scan.Corrupt.Add(c)
			}
		}
	}
	return scan, nil
}

// listZoom returns the set of stored keys under one zoom prefix.
func listZoom(ctx context.Context, bucket *blob.Bucket, zoom int) (map[string]bool, error) {
	present := make(map[string]bool)

	iter := bucket.List(&blob.ListOptions{Prefix: strconv.Itoa(zoom) + "/"})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tiles: list zoom %d: %w", zoom, err)
		}
		present[obj.Key] = true
	}
	return present, nil
}

// validTile reports whether the stored tile decodes as a PNG of the expected
// dimensions. Read or decode failures classify the tile as invalid rather
// than aborting the scan.
func validTile(ctx context.Context, bucket *blob.Bucket, key string) bool {
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return false
	}
	defer r.Close()

	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return false
	}
	return cfg.Width == TileDimension && cfg.Height == TileDimension
}
