package search

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/request"
)

// Aggregation limits.
const (
	// MaxTermsAggsSize is the largest terms aggregation the compiler will issue.
	MaxTermsAggsSize = 1_200_000
	// FilteredAggPrefix names the terms aggregation nested in a multi-select filter aggregation.
	FilteredAggPrefix = "filtered_"

	shardSizeFactor = 2
	shardSizeExtra  = 50_000
)

// buildAggregations compiles one aggregation per mapped facet, keyed by field.
// Geometry facets are skipped since shape fields have no terms.
func (c *Compiler) buildAggregations(req *request.Faceted, g grouped) (map[string]query.Aggregation, error) {
	facets := termFacets(req.Facets())
	if req.MultiSelect() && len(facets) > 1 && len(g.postFilter) > 0 {
		return c.multiSelectAggregations(req, facets, g.postFilter)
	}

	aggs := make(map[string]query.Aggregation, len(facets))
	for _, p := range facets {
		field, ok := c.mapper.FieldFor(p)
		if !ok {
			continue
		}
		agg, err := c.termsAgg(req, p, field)
		if err != nil {
			return nil, err
		}
		aggs[field] = agg
	}
	return aggs, nil
}

func termFacets(facets []param.Parameter) []param.Parameter {
	out := facets[:0]
	for _, p := range facets {
		if p.Kind() != param.Geometry {
			out = append(out, p)
		}
	}
	return out
}

// multiSelectAggregations wraps each facet's terms aggregation in a filter
// built from every other post-filter parameter, so a facet's counts ignore
// its own selection.
func (c *Compiler) multiSelectAggregations(
	req *request.Faceted, facets []param.Parameter, postFilter map[param.Parameter][]string,
) (map[string]query.Aggregation, error) {
	aggs := make(map[string]query.Aggregation, len(facets))
	for _, p := range facets {
		field, ok := c.mapper.FieldFor(p)
		if !ok {
			continue
		}

		others := make(map[param.Parameter][]string, len(postFilter))
		for op, values := range postFilter {
			if op != p {
				others[op] = values
			}
		}
		clauses, err := c.buildFilters(others, false)
		if err != nil {
			return nil, err
		}
		var filter query.Clause = query.MatchAll{}
		if len(clauses) > 0 {
			filter = query.Bool{Filter: clauses}
		}

		terms, err := c.termsAgg(req, p, field)
		if err != nil {
			return nil, err
		}
		aggs[field] = query.FilterAgg{
			Filter:     filter,
			NestedName: FilteredAggPrefix + field,
			Nested:     terms,
		}
	}
	return aggs, nil
}

func (c *Compiler) termsAgg(req *request.Faceted, p param.Parameter, field string) (query.TermsAgg, error) {
	size, err := c.aggsSize(field, req.FacetOffset(p), req.FacetLimit(p))
	if err != nil {
		return query.TermsAgg{}, err
	}
	shard := size*shardSizeFactor + shardSizeExtra
	if n, ok := c.mapper.Cardinality(field); ok {
		shard = n
	}
	return query.TermsAgg{
		Field:       field,
		Size:        size,
		ShardSize:   shard,
		MinDocCount: req.MinCount(),
	}, nil
}

// aggsSize bounds offset+limit by the field's cardinality and rejects sizes
// above MaxTermsAggsSize. Offset and limit are non-negative.
func (c *Compiler) aggsSize(field string, offset, limit int) (int, error) {
	size := MaxTermsAggsSize + 1
	if offset <= MaxTermsAggsSize && limit <= MaxTermsAggsSize-offset {
		size = offset + limit
	}
	if n, ok := c.mapper.Cardinality(field); ok && n < size {
		size = n
	}
	if size > MaxTermsAggsSize {
		return 0, domain.NewInvalidArgument("", strconv.Itoa(offset)+"+"+strconv.Itoa(limit),
			fmt.Sprintf("facet offset + limit must not exceed %d", MaxTermsAggsSize))
	}
	return size, nil
}
