package chi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/request"
)

// Reserved query parameter names.
const (
	paramQ                = "q"
	paramOffset           = "offset"
	paramLimit            = "limit"
	paramFacet            = "facet"
	paramFacetMultiselect = "facetMultiselect"
	paramFacetMincount    = "facetMincount"
	paramFacetLimit       = "facetLimit"
	paramFacetOffset      = "facetOffset"
	paramHighlight        = "hl"
	paramSpellCheck       = "spellCheck"
	paramSpellCheckCount  = "spellCheckCount"
	paramSemantic         = "semantic"

	facetLimitSuffix  = "." + paramFacetLimit
	facetOffsetSuffix = "." + paramFacetOffset
)

var reserved = map[string]struct{}{
	paramQ: {}, paramOffset: {}, paramLimit: {}, paramFacet: {},
	paramFacetMultiselect: {}, paramFacetMincount: {}, paramFacetLimit: {}, paramFacetOffset: {},
	paramHighlight: {}, paramSpellCheck: {}, paramSpellCheckCount: {}, paramSemantic: {},
}

// Paging bounds applied to every request.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
	MaxOffset    int
}

// searchParams holds the bound reserved parameters.
type searchParams struct {
	Q                string
	Offset           *int
	Limit            *int
	Facet            []string
	FacetMultiselect *bool
	FacetMincount    *int
	FacetLimit       *int
	FacetOffset      *int
	Hl               *bool
	SpellCheck       *bool
	SpellCheckCount  *int
	Semantic         *bool
}

func bind(values url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, values, dest); err != nil {
		return domain.NewInvalidArgument(name, values.Get(name), "malformed value")
	}
	return nil
}

func bindSearchParams(values url.Values) (searchParams, error) {
	var p searchParams
	bindings := []struct {
		name string
		dest any
	}{
		{paramQ, &p.Q},
		{paramOffset, &p.Offset},
		{paramLimit, &p.Limit},
		{paramFacet, &p.Facet},
		{paramFacetMultiselect, &p.FacetMultiselect},
		{paramFacetMincount, &p.FacetMincount},
		{paramFacetLimit, &p.FacetLimit},
		{paramFacetOffset, &p.FacetOffset},
		{paramHighlight, &p.Hl},
		{paramSpellCheck, &p.SpellCheck},
		{paramSpellCheckCount, &p.SpellCheckCount},
		{paramSemantic, &p.Semantic},
	}
	for _, b := range bindings {
		if err := bind(values, b.name, b.dest); err != nil {
			return searchParams{}, err
		}
	}
	return p, nil
}

// page resolves offset and limit against the paging bounds.
func (pg Paging) page(offset, limit *int) (int, int, error) {
	o, l := 0, pg.DefaultLimit
	if offset != nil {
		o = *offset
	}
	if limit != nil {
		l = *limit
	}
	if o < 0 {
		return 0, 0, domain.NewInvalidArgument(paramOffset, fmt.Sprint(o), "must not be negative")
	}
	if pg.MaxOffset > 0 && o > pg.MaxOffset {
		return 0, 0, domain.NewInvalidArgument(paramOffset, fmt.Sprint(o),
			fmt.Sprintf("must not exceed %d", pg.MaxOffset))
	}
	if l < 0 || (pg.MaxLimit > 0 && l > pg.MaxLimit) {
		return 0, 0, domain.NewInvalidArgument(paramLimit, fmt.Sprint(l),
			fmt.Sprintf("must be between 0 and %d", pg.MaxLimit))
	}
	return o, l, nil
}

func boolValue(b *bool) bool { return b != nil && *b }

func intValue(n *int, def int) int {
	if n == nil {
		return def
	}
	return *n
}

// parseRequest builds the plain request of autocomplete from query values.
func parseRequest(values url.Values, reg *param.Registry, pg Paging) (*request.Request, searchParams, error) {
	sp, err := bindSearchParams(values)
	if err != nil {
		return nil, sp, err
	}
	offset, limit, err := pg.page(sp.Offset, sp.Limit)
	if err != nil {
		return nil, sp, err
	}

	req := request.New(sp.Q, offset, limit).
		WithHighlight(boolValue(sp.Hl)).
		WithSpellCheck(boolValue(sp.SpellCheck), intValue(sp.SpellCheckCount, 0))

	for name, vals := range values {
		if _, ok := reserved[name]; ok {
			continue
		}
		if strings.HasSuffix(name, facetLimitSuffix) || strings.HasSuffix(name, facetOffsetSuffix) {
			continue
		}
		p, ok := reg.Lookup(name)
		if !ok {
			return nil, sp, fmt.Errorf("%w: %s", domain.ErrUnknownParameter, name)
		}
		req.AddParameter(p, vals...)
	}
	return req, sp, nil
}

// parseFaceted builds a faceted search request from query values.
func parseFaceted(values url.Values, reg *param.Registry, pg Paging) (*request.Faceted, bool, error) {
	base, sp, err := parseRequest(values, reg, pg)
	if err != nil {
		return nil, false, err
	}

	req := request.NewFaceted(base).
		WithMultiSelect(boolValue(sp.FacetMultiselect)).
		WithPaging(sp.FacetOffset, sp.FacetLimit)
	if sp.FacetMincount != nil {
		req.WithMinCount(*sp.FacetMincount)
	}

	for _, name := range sp.Facet {
		p, ok := reg.Lookup(name)
		if !ok {
			return nil, false, fmt.Errorf("%w: facet %s", domain.ErrUnknownParameter, name)
		}
		req.AddFacets(p)
	}

	pages := make(map[param.Parameter][2]*int)
	for name := range values {
		prefix, suffix, ok := facetPagingKey(name)
		if !ok {
			continue
		}
		p, ok := reg.Lookup(prefix)
		if !ok {
			return nil, false, fmt.Errorf("%w: %s", domain.ErrUnknownParameter, name)
		}
		var n *int
		if err := bind(values, name, &n); err != nil {
			return nil, false, err
		}
		pg := pages[p]
		if suffix == facetOffsetSuffix {
			pg[0] = n
		} else {
			pg[1] = n
		}
		pages[p] = pg
	}
	for p, pg := range pages {
		req.WithFacetPaging(p, pg[0], pg[1])
	}

	return req, boolValue(sp.Semantic), nil
}

func facetPagingKey(name string) (string, string, bool) {
	for _, suffix := range []string{facetLimitSuffix, facetOffsetSuffix} {
		if prefix, ok := strings.CutSuffix(name, suffix); ok && prefix != "" {
			return prefix, suffix, true
		}
	}
	return "", "", false
}
