package geo

import (
	"errors"
	"testing"

	"github.com/twpayne/go-geom"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"point", "POINT(10 20)", "POINT (10 20)"},
		{"linestring dedupe", "LINESTRING (0 0, 0 0, 1 1, 1 1, 2 2)", "LINESTRING (0 0, 1 1, 2 2)"},
		{"linearring promoted", "LINEARRING (0 0, 1 0, 1 1, 0 0)", "LINESTRING (0 0, 1 0, 1 1, 0 0)"},
		{"polygon keeps closure", "POLYGON ((0 0, 1 0, 1 0, 1 1, 0 1, 0 0))", "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))"},
		{
			"polygon with hole",
			"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 2 2, 3 2, 3 3, 2 2))",
			"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 3 2, 3 3, 2 2))",
		},
		{
			"multipolygon",
			"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 5, 6 6, 5 5)))",
			"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))",
		},
		{"decimals", "POINT (-70.5 12.25)", "POINT (-70.5 12.25)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"POLYGON ((0 0, 1 0, 1 0, 1 1, 0 1, 0 0))",
		"LINESTRING (3 3, 3 3, 4 4)",
		"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)))",
	}
	for _, in := range inputs {
		once, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent: %q -> %q", once, twice)
		}
	}
}

func TestNormalize_Unsupported(t *testing.T) {
	tests := map[string]string{
		"MULTIPOINT ((0 0), (1 1))":        "MULTIPOINT shape is not supported",
		"MULTILINESTRING ((0 0, 1 1))":     "MULTILINESTRING shape is not supported",
		"GEOMETRYCOLLECTION (POINT (1 1))": "GEOMETRYCOLLECTION shape is not supported",
	}
	for in, msg := range tests {
		_, err := Normalize(in)
		var ute *UnsupportedTypeError
		if !errors.As(err, &ute) {
			t.Fatalf("Normalize(%q): expected UnsupportedTypeError, got %v", in, err)
		}
		if err.Error() != msg {
			t.Errorf("Normalize(%q) error = %q, want %q", in, err.Error(), msg)
		}
	}
}

func TestNormalize_Malformed(t *testing.T) {
	for _, in := range []string{"", "POLYGON ((0 0, 1 1", "CIRCLE (0 0, 5)", "POINT (a b)"} {
		if _, err := Normalize(in); err == nil {
			t.Errorf("Normalize(%q): expected error", in)
		}
	}
}

func TestParse_ReturnsTypedGeometry(t *testing.T) {
	g, err := Parse("LINEARRING (0 0, 1 0, 1 1, 0 0)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ls, ok := g.(*geom.LineString)
	if !ok {
		t.Fatalf("expected *geom.LineString, got %T", g)
	}
	if ls.NumCoords() != 4 {
		t.Errorf("NumCoords() = %d, want 4", ls.NumCoords())
	}
}

func TestDedupe_KeepsFirst(t *testing.T) {
	in := []geom.Coord{{1, 1}, {1, 1}, {1, 1}}
	out := dedupe(in)
	if len(out) != 1 {
		t.Fatalf("expected single coordinate, got %v", out)
	}
	if len(dedupe(nil)) != 0 {
		t.Error("expected empty output for empty input")
	}
}
