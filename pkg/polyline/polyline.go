// Package polyline implements Google's encoded polyline format at the
// standard precision of 5 decimal places, as produced by OSRM and similar
// routing engines.
package polyline

import "math"

const precision = 1e5

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Decode expands an encoded polyline into its coordinate sequence.
func Decode(encoded string) []Coordinate {
	if encoded == "" {
		return nil
	}

	coords := make([]Coordinate, 0, len(encoded)/4)
	var lat, lon, pos int

	for pos < len(encoded) {
		var delta int
		delta, pos = decodeDelta(encoded, pos)
		lat += delta
		delta, pos = decodeDelta(encoded, pos)
		lon += delta

		coords = append(coords, Coordinate{
			Lat: float64(lat) / precision,
			Lon: float64(lon) / precision,
		})
	}
	return coords
}

// decodeDelta reads one zigzag-encoded delta starting at pos and returns it
// with the position after the last consumed byte.
func decodeDelta(encoded string, pos int) (int, int) {
	var value, shift int
	for pos < len(encoded) {
		chunk := int(encoded[pos]) - 63
		pos++
		value |= (chunk & 0x1f) << shift
		shift += 5
		if chunk < 0x20 {
			break
		}
	}
	if value&1 != 0 {
		return ^(value >> 1), pos
	}
	return value >> 1, pos
}

// Encode packs a coordinate sequence into the encoded polyline format.
func Encode(coords []Coordinate) string {
	if len(coords) == 0 {
		return ""
	}

	buf := make([]byte, 0, len(coords)*4)
	var prevLat, prevLon int

	for _, c := range coords {
		lat := int(math.Round(c.Lat * precision))
		lon := int(math.Round(c.Lon * precision))
		buf = appendDelta(buf, lat-prevLat)
		buf = appendDelta(buf, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return string(buf)
}

func appendDelta(buf []byte, value int) []byte {
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}
	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	return append(buf, byte(value)+63)
}
