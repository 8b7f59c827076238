// Package response holds decoded search results.
package response

import (
	"encoding/json"

	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
)

// Page is one page of decoded results with facet counts.
type Page[T any] struct {
	Offset  int     `json:"offset"`
	Limit   int     `json:"limit"`
	Count   int64   `json:"count"`
	Results []T     `json:"results"`
	Facets  []Facet `json:"facets"`
}

// EndOfRecords reports whether no results follow this page.
func (p *Page[T]) EndOfRecords() bool {
	return int64(p.Offset+p.Limit) >= p.Count
}

// MarshalJSON adds endOfRecords and renders empty lists as [].
func (p Page[T]) MarshalJSON() ([]byte, error) {
	results := p.Results
	if results == nil {
		results = []T{}
	}
	facets := p.Facets
	if facets == nil {
		facets = []Facet{}
	}
	return json.Marshal(struct {
		Offset       int     `json:"offset"`
		Limit        int     `json:"limit"`
		Count        int64   `json:"count"`
		Results      []T     `json:"results"`
		Facets       []Facet `json:"facets"`
		EndOfRecords bool    `json:"endOfRecords"`
	}{
		Offset:       p.Offset,
		Limit:        p.Limit,
		Count:        p.Count,
		Results:      results,
		Facets:       facets,
		EndOfRecords: p.EndOfRecords(),
	})
}

// Facet is the value distribution of one parameter.
type Facet struct {
	Parameter param.Parameter
	Counts    []Count
}

// Count is one facet bucket.
type Count struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// MarshalJSON renders the parameter by name.
func (f Facet) MarshalJSON() ([]byte, error) {
	counts := f.Counts
	if counts == nil {
		counts = []Count{}
	}
	return json.Marshal(struct {
		Field  string  `json:"field"`
		Counts []Count `json:"counts"`
	}{Field: f.Parameter.Name(), Counts: counts})
}
