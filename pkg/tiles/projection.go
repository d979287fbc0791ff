package tiles

import "math"

// ToTileIndex converts a latitude/longitude pair to the tile indices
// containing it at the given zoom level. Longitude maps linearly; latitude
// uses the Web-Mercator transform, so a higher latitude yields a smaller y.
func ToTileIndex(lat, lon float64, zoom int) (x, y int) {
	latRad := lat * math.Pi / 180
	n := math.Exp2(float64(zoom))
	x = int(math.Floor((lon + 180) / 360 * n))
	y = int(math.Floor((1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * n))
	return x, y
}

// ToLatLon converts tile indices to the latitude/longitude of the tile's
// north-west corner. It is the inverse of ToTileIndex up to the truncation
// ToTileIndex performs.
func ToLatLon(x, y, zoom int) (lat, lon float64) {
	n := math.Exp2(float64(zoom))
	lon = float64(x)/n*360 - 180
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*float64(y)/n)))
	lat = latRad * 180 / math.Pi
	return lat, lon
}
