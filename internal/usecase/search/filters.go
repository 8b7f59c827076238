package search

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/domain/geo"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
)

// Range syntax.
const (
	RangeSeparator    = ","
	AltRangeSeparator = ".."
	RangeWildcard     = "*"
)

// dateBoundLayout renders date range bounds with millisecond precision.
const dateBoundLayout = "2006-01-02T15:04:05.000"

type datePrecision int

const (
	precisionDay datePrecision = iota
	precisionMonth
	precisionYear
)

var dateBoundLayouts = []struct {
	layout    string
	precision datePrecision
}{
	{"2006-01-02", precisionDay},
	{"2006-01", precisionMonth},
	{"2006", precisionYear},
}

// buildFilters compiles parameters into filter clauses in parameter-name
// order. Unmapped parameters are skipped; geometry parameters only compile
// when withGeometry is set.
func (c *Compiler) buildFilters(params map[param.Parameter][]string, withGeometry bool) ([]query.Clause, error) {
	var filters []query.Clause
	for _, p := range sortedParams(params) {
		field, ok := c.mapper.FieldFor(p)
		if !ok {
			continue
		}
		values := params[p]

		if p.Kind() == param.Geometry {
			if !withGeometry {
				continue
			}
			clause, err := geometryFilter(p, field, values)
			if err != nil {
				return nil, err
			}
			filters = append(filters, clause)
			continue
		}

		clauses, err := c.valueFilters(p, field, values)
		if err != nil {
			return nil, err
		}
		filters = append(filters, clauses...)
	}
	return filters, nil
}

// valueFilters compiles one parameter: every range value becomes its own
// range clause, the remaining values share one term or terms clause.
func (c *Compiler) valueFilters(p param.Parameter, field string, values []string) ([]query.Clause, error) {
	var (
		clauses []query.Clause
		terms   []any
	)
	for _, v := range values {
		if p.SupportsRange() {
			lower, upper, isRange, err := splitRange(p, v)
			if err != nil {
				return nil, err
			}
			if isRange {
				rc, err := c.rangeFilter(p, field, v, lower, upper)
				if err != nil {
					return nil, err
				}
				clauses = append(clauses, rc)
				continue
			}
		}
		terms = append(terms, p.NormalizeValue(v))
	}

	switch len(terms) {
	case 0:
	case 1:
		clauses = append(clauses, query.Term{Field: field, Value: terms[0]})
	default:
		clauses = append(clauses, query.Terms{Field: field, Values: terms})
	}
	return clauses, nil
}

// splitRange reports whether v uses the range syntax and returns its bounds.
// A value with a separator that does not split into exactly two tokens is rejected.
func splitRange(p param.Parameter, v string) (lower, upper string, isRange bool, err error) {
	var parts []string
	switch {
	case strings.Contains(v, AltRangeSeparator):
		parts = strings.Split(v, AltRangeSeparator)
	case strings.Contains(v, RangeSeparator):
		parts = strings.Split(v, RangeSeparator)
	default:
		return "", "", false, nil
	}
	if len(parts) != 2 {
		return "", "", false, domain.NewInvalidArgument(p.Name(), v, "range must have exactly two bounds")
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true, nil
}

func (c *Compiler) rangeFilter(p param.Parameter, field, raw, lower, upper string) (query.Clause, error) {
	if c.mapper.IsDateField(field) {
		return dateRange(p, field, raw, lower, upper)
	}
	return numericRange(field, lower, upper), nil
}

// numericRange uses numeric bounds when both parse, otherwise falls back to a
// lexicographic range over the raw strings.
func numericRange(field, lower, upper string) query.Range {
	r := query.Range{Field: field}
	lo, loErr := parseNumberBound(lower)
	hi, hiErr := parseNumberBound(upper)
	if loErr == nil && hiErr == nil {
		if lo != nil {
			r.GTE = *lo
		}
		if hi != nil {
			r.LTE = *hi
		}
		return r
	}
	if !isOpenBound(lower) {
		r.GTE = lower
	}
	if !isOpenBound(upper) {
		r.LTE = upper
	}
	return r
}

func parseNumberBound(s string) (*float64, error) {
	if isOpenBound(s) {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err //nolint:wrapcheck // signals fallback only
	}
	return &f, nil
}

func dateRange(p param.Parameter, field, raw, lower, upper string) (query.Clause, error) {
	r := query.Range{Field: field}
	if !isOpenBound(lower) {
		t, err := parseDateBound(lower, false)
		if err != nil {
			return nil, domain.NewInvalidArgument(p.Name(), raw, err.Error())
		}
		r.GTE = t.Format(dateBoundLayout)
	}
	if !isOpenBound(upper) {
		t, err := parseDateBound(upper, true)
		if err != nil {
			return nil, domain.NewInvalidArgument(p.Name(), raw, err.Error())
		}
		r.LTE = t.Format(dateBoundLayout)
	}
	return r, nil
}

// parseDateBound expands yyyy, yyyy-MM or yyyy-MM-dd to the first instant of
// the period, or to its last millisecond when upper is set.
func parseDateBound(s string, upper bool) (time.Time, error) {
	for _, l := range dateBoundLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		if !upper {
			return t, nil
		}
		var end time.Time
		switch l.precision {
		case precisionDay:
			end = t.AddDate(0, 0, 1)
		case precisionMonth:
			end = t.AddDate(0, 1, 0)
		case precisionYear:
			end = t.AddDate(1, 0, 0)
		}
		return end.Add(-time.Millisecond), nil
	}
	return time.Time{}, errors.New("date bound " + strconv.Quote(s) + " must be yyyy, yyyy-MM or yyyy-MM-dd")
}

func isOpenBound(s string) bool {
	return s == "" || s == RangeWildcard
}

// geometryFilter ORs one within-shape clause per geometry.
func geometryFilter(p param.Parameter, field string, values []string) (query.Clause, error) {
	shapes := make([]query.Clause, 0, len(values))
	for _, v := range values {
		wkt, err := geo.Normalize(v)
		if err != nil {
			return nil, domain.NewInvalidArgument(p.Name(), v, err.Error())
		}
		shapes = append(shapes, query.GeoShape{Field: field, WKT: wkt, Relation: query.RelationWithin})
	}
	return query.Bool{Should: shapes}, nil
}

func sortedParams(params map[param.Parameter][]string) []param.Parameter {
	out := make([]param.Parameter, 0, len(params))
	for p := range params {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
