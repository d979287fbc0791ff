// Package tiles provides slippy-map tile geometry and tile-store inspection.
//
// The package converts between geographic coordinates and Web-Mercator tile
// indices, enumerates the tile set covering a bounding box at a zoom level,
// and classifies an expected tile set against a store as existing, missing,
// or corrupt. Storage is abstracted via gocloud.dev/blob, so tile sets can
// live on a local directory (fileblob) or in object storage.
//
// # Coordinates
//
// A [Coord] identifies one tile as {Zoom, X, Y} under the standard XYZ
// scheme: x grows eastward, y grows southward, so a higher latitude maps to
// a smaller y index. Tiles are stored under the key "{z}/{x}/{y}.png".
//
// # Enumeration
//
//	bbox, _ := tiles.ParseBoundingBox("-118.67,33.70,-118.15,34.34")
//	set := tiles.ExpectedTiles(bbox, 10)
//
// The set is the full inclusive rectangle between the tile containing the
// box's north-west corner and the tile containing its south-east corner.
//
// # Inspection
//
// [ScanMissing] reports which expected tiles are absent using prefix
// listings only (no per-tile reads). [ScanFull] additionally opens each
// present tile and verifies it decodes as a 256x256 PNG; anything else is
// classified corrupt.
package tiles
