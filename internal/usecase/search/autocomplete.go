package search

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/request"
)

// Autocomplete and suggest settings.
const (
	// PrefixBoost ranks exact prefix matches above analyzed matches.
	PrefixBoost = 100
	// DefaultSuggestSize is used when a suggest limit is not positive.
	DefaultSuggestSize = 10
	// SuggestFieldSuffix is the completion sub-field of a mapped field.
	SuggestFieldSuffix = ".suggest"

	minPrefixQueryLen = 2
)

// CompileAutocomplete builds a lookup for values of p matching the request text.
func (c *Compiler) CompileAutocomplete(req *request.Request, p param.Parameter) (*query.Search, error) {
	field, ok := c.mapper.FieldFor(p)
	if !ok {
		return nil, domain.NewInvalidArgument("parameter", p.Name(), "autocomplete is not supported")
	}

	filters, err := c.buildFilters(req.Params(), true)
	if err != nil {
		return nil, err
	}

	b := query.Bool{Must: filters}
	if q := req.Query(); q != "" {
		b.Should = []query.Clause{query.Match{
			Field:    c.mapper.AutocompleteField(p),
			Query:    q,
			Operator: "and",
		}}
		if utf8.RuneCountInString(q) > minPrefixQueryLen {
			b.Should = append(b.Should, query.Prefix{
				Field: field,
				Value: strings.ToLower(q),
				Boost: PrefixBoost,
			})
		}
		b.MinimumShouldMatch = 1
	}

	var root query.Clause = b
	if b.IsEmpty() {
		root = query.MatchAll{}
	}

	return &query.Search{
		From:   req.Offset(),
		Size:   req.Limit(),
		Query:  root,
		Source: query.SourceFilter{Includes: c.mapper.SuggestFields(p)},
	}, nil
}

// CompileSuggest builds a completion suggester on p's field keyed by that field.
func (c *Compiler) CompileSuggest(prefix string, p param.Parameter, limit int) (*query.Search, error) {
	field, ok := c.mapper.FieldFor(p)
	if !ok {
		return nil, domain.NewInvalidArgument("parameter", p.Name(), "suggest is not supported")
	}
	if limit <= 0 {
		limit = DefaultSuggestSize
	}
	return &query.Search{
		Size: 0,
		Source: query.SourceFilter{
			Includes: c.mapper.SuggestFields(p),
			Excludes: c.mapper.ExcludedSourceFields(),
		},
		Suggest: map[string]query.Completion{
			field: {
				Prefix:         prefix,
				Field:          field + SuggestFieldSuffix,
				Size:           limit,
				SkipDuplicates: true,
			},
		},
	}, nil
}
