package request

import "github.com/kailas-cloud/facetsearch/internal/domain/search/param"

// Facet paging defaults.
const (
	DefaultFacetOffset   = 0
	DefaultFacetLimit    = 10
	DefaultFacetMinCount = 1
)

type facetPage struct {
	offset *int
	limit  *int
}

// Faceted is a Request that also asks for value counts per facet parameter.
type Faceted struct {
	*Request
	facets      []param.Parameter
	multiSelect bool
	minCount    int
	offset      *int
	limit       *int
	pages       map[param.Parameter]facetPage
}

// NewFaceted wraps base with facet settings at their defaults.
func NewFaceted(base *Request) *Faceted {
	return &Faceted{
		Request:  base,
		minCount: DefaultFacetMinCount,
		pages:    make(map[param.Parameter]facetPage),
	}
}

// AddFacets appends facets, ignoring repeats.
func (f *Faceted) AddFacets(ps ...param.Parameter) *Faceted {
	for _, p := range ps {
		if !f.IsFacet(p) {
			f.facets = append(f.facets, p)
		}
	}
	return f
}

// WithMultiSelect toggles multi-select faceting.
func (f *Faceted) WithMultiSelect(on bool) *Faceted {
	f.multiSelect = on
	return f
}

// WithMinCount sets the minimum bucket count. Values below 0 are ignored.
func (f *Faceted) WithMinCount(n int) *Faceted {
	if n >= 0 {
		f.minCount = n
	}
	return f
}

// WithPaging sets the global facet offset and limit; nil leaves a value unset.
func (f *Faceted) WithPaging(offset, limit *int) *Faceted {
	f.offset = offset
	f.limit = limit
	return f
}

// WithFacetPaging overrides paging for one facet; nil leaves a value unset.
func (f *Faceted) WithFacetPaging(p param.Parameter, offset, limit *int) *Faceted {
	f.pages[p] = facetPage{offset: offset, limit: limit}
	return f
}

// Facets returns the requested facets in order.
func (f *Faceted) Facets() []param.Parameter { return append([]param.Parameter(nil), f.facets...) }

// HasFacets reports whether any facet is requested.
func (f *Faceted) HasFacets() bool { return len(f.facets) > 0 }

// IsFacet reports whether p is requested as a facet.
func (f *Faceted) IsFacet(p param.Parameter) bool {
	for _, x := range f.facets {
		if x == p {
			return true
		}
	}
	return false
}

// MultiSelect reports whether multi-select faceting is on.
func (f *Faceted) MultiSelect() bool { return f.multiSelect }

// MinCount returns the minimum bucket count.
func (f *Faceted) MinCount() int { return f.minCount }

// FacetOffset returns the bucket offset for p: the per-facet override, else
// the global value, else DefaultFacetOffset.
func (f *Faceted) FacetOffset(p param.Parameter) int {
	if pg, ok := f.pages[p]; ok && pg.offset != nil {
		return nonNegative(*pg.offset)
	}
	if f.offset != nil {
		return nonNegative(*f.offset)
	}
	return DefaultFacetOffset
}

// FacetLimit returns the bucket limit for p: the per-facet override, else
// the global value, else DefaultFacetLimit.
func (f *Faceted) FacetLimit(p param.Parameter) int {
	if pg, ok := f.pages[p]; ok && pg.limit != nil {
		return nonNegative(*pg.limit)
	}
	if f.limit != nil {
		return nonNegative(*f.limit)
	}
	return DefaultFacetLimit
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
