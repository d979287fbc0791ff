// Package testutils provides shared test infrastructure: PNG tile fixtures,
// a fake tile server, and pre-seeded in-memory buckets.
package testutils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"

	"github.com/terrapull/terrapull/pkg/tiles"
)

// PNG encodes a blank PNG image with the given dimensions.
func PNG(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// ValidTile encodes a PNG of the dimensions the inspector accepts.
func ValidTile(t *testing.T) []byte {
	t.Helper()
	return PNG(t, tiles.TileDimension, tiles.TileDimension)
}

// OpenMemBucket opens an in-memory bucket and closes it on test cleanup.
func OpenMemBucket(t *testing.T) *blob.Bucket {
	t.Helper()

	bucket, err := blob.OpenBucket(context.Background(), "mem://")
	if err != nil {
		t.Fatalf("open mem bucket: %v", err)
	}
	t.Cleanup(func() { bucket.Close() })
	return bucket
}

// SeedTiles writes data under every coordinate's key in the bucket.
func SeedTiles(t *testing.T, bucket *blob.Bucket, set tiles.Set, data []byte) {
	t.Helper()

	ctx := context.Background()
	for c := range set {
		if err := bucket.WriteAll(ctx, c.Key(), data, nil); err != nil {
			t.Fatalf("seed tile %s: %v", c.ID(), err)
		}
	}
}

// TileServer starts an HTTP server that answers every "/{z}/{x}/{y}.png"
// request with tile bytes, except paths listed in missing which return 404.
func TileServer(t *testing.T, tile []byte, missing map[string]bool) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if missing[r.URL.Path] {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(tile)
	}))
	t.Cleanup(server.Close)
	return server
}
