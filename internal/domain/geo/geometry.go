// Package geo validates and normalizes WKT geometries used in shape filters.
package geo

import (
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

const linearRingTag = "LINEARRING"

// UnsupportedTypeError reports a syntactically valid geometry of a type
// that shape filters cannot use.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return e.Type + " shape is not supported"
}

// Normalize parses a WKT string and re-serializes its normalized form.
// Supported: POINT, LINESTRING, LINEARRING (returned as LINESTRING),
// POLYGON (with holes) and MULTIPOLYGON.
func Normalize(s string) (string, error) {
	g, err := Parse(s)
	if err != nil {
		return "", err
	}
	out, err := wkt.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode wkt: %w", err)
	}
	return out, nil
}

// Parse decodes a WKT string into a normalized geometry: coordinates equal
// to their immediate predecessor are dropped, the first point of every
// sequence is kept and ring closure points survive.
func Parse(s string) (geom.T, error) {
	src := promoteLinearRing(strings.TrimSpace(s))

	g, err := wkt.Unmarshal(src)
	if err != nil {
		return nil, fmt.Errorf("parse wkt %q: %w", s, err)
	}

	switch t := g.(type) {
	case *geom.Point:
		return t, nil
	case *geom.LineString:
		return geom.NewLineString(t.Layout()).SetCoords(dedupe(t.Coords()))
	case *geom.LinearRing:
		return geom.NewLineString(t.Layout()).SetCoords(dedupe(t.Coords()))
	case *geom.Polygon:
		return geom.NewPolygon(t.Layout()).SetCoords(dedupeRings(t.Coords()))
	case *geom.MultiPolygon:
		polys := t.Coords()
		out := make([][][]geom.Coord, len(polys))
		for i, rings := range polys {
			out[i] = dedupeRings(rings)
		}
		return geom.NewMultiPolygon(t.Layout()).SetCoords(out)
	default:
		return nil, &UnsupportedTypeError{Type: typeName(g)}
	}
}

// promoteLinearRing rewrites a LINEARRING tag to LINESTRING so the decoder accepts it.
func promoteLinearRing(s string) string {
	if len(s) >= len(linearRingTag) && strings.EqualFold(s[:len(linearRingTag)], linearRingTag) {
		return "LINESTRING" + s[len(linearRingTag):]
	}
	return s
}

func dedupeRings(rings [][]geom.Coord) [][]geom.Coord {
	out := make([][]geom.Coord, len(rings))
	for i, r := range rings {
		out[i] = dedupe(r)
	}
	return out
}

func dedupe(coords []geom.Coord) []geom.Coord {
	if len(coords) == 0 {
		return coords
	}
	out := make([]geom.Coord, 0, len(coords))
	out = append(out, coords[0])
	for _, c := range coords[1:] {
		if !sameCoord(c, out[len(out)-1]) {
			out = append(out, c)
		}
	}
	return out
}

func sameCoord(a, b geom.Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func typeName(g geom.T) string {
	switch g.(type) {
	case *geom.MultiPoint:
		return "MULTIPOINT"
	case *geom.MultiLineString:
		return "MULTILINESTRING"
	case *geom.GeometryCollection:
		return "GEOMETRYCOLLECTION"
	default:
		return fmt.Sprintf("%T", g)
	}
}
