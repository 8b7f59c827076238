// Package search compiles search requests into backend queries, runs them and
// decodes the responses.
package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/fieldmap"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/request"
)

// Highlight markup.
const (
	HighlightPreTag  = `<em class="gbifHl">`
	HighlightPostTag = "</em>"
)

// kNN candidate pool.
const (
	minNumCandidates   = 100
	numCandidateFactor = 2
)

// Compiler builds backend queries for one search domain.
// It holds no per-request state and is safe for concurrent use.
type Compiler struct {
	mapper   fieldmap.Mapper
	embedder Embedder
}

// NewCompiler creates a compiler. embedder may be nil when semantic search is disabled.
func NewCompiler(mapper fieldmap.Mapper, embedder Embedder) *Compiler {
	return &Compiler{mapper: mapper, embedder: embedder}
}

// Mapper returns the field mapper of the domain.
func (c *Compiler) Mapper() fieldmap.Mapper { return c.mapper }

// Compile builds the query for a faceted search request.
func (c *Compiler) Compile(
	ctx context.Context, req *request.Faceted, facetsEnabled, semantic bool,
) (*query.Search, error) {
	g := groupParameters(req)
	q := req.Query()

	s := &query.Search{
		From:   req.Offset(),
		Size:   req.Limit(),
		Source: query.SourceFilter{Includes: c.mapper.IncludedSourceFields(), Excludes: c.mapper.ExcludedSourceFields()},
	}

	useVector := semantic && q != "" && !req.IsMatchAll()

	if q == "" {
		s.Sort = c.mapper.DefaultSort()
	} else {
		s.Sort = []query.Sort{query.ScoreSort}
		if req.Highlight() && !useVector {
			s.Highlight = c.highlight()
		}
	}

	filters, err := c.buildFilters(g.query, true)
	if err != nil {
		return nil, err
	}

	if useVector {
		knn, err := c.knn(ctx, q, req.Limit(), filters)
		if err != nil {
			return nil, err
		}
		s.KNN = knn
	} else {
		s.Query = c.lexicalQuery(req, filters)
	}

	if facetsEnabled && req.HasFacets() {
		aggs, err := c.buildAggregations(req, g)
		if err != nil {
			return nil, err
		}
		s.Aggs = aggs
	}

	if len(g.postFilter) > 0 {
		post, err := c.buildFilters(g.postFilter, false)
		if err != nil {
			return nil, err
		}
		if len(post) > 0 {
			s.PostFilter = query.Bool{Filter: post}
		}
	}

	return s, nil
}

func (c *Compiler) lexicalQuery(req *request.Faceted, filters []query.Clause) query.Clause {
	if req.IsMatchAll() {
		return query.MatchAll{}
	}
	b := query.Bool{Filter: filters}
	if q := req.Query(); q != "" {
		b.Must = []query.Clause{c.mapper.FullTextQuery(q)}
	}
	if b.IsEmpty() {
		return nil
	}
	return b
}

func (c *Compiler) knn(ctx context.Context, q string, limit int, filters []query.Clause) (*query.KNN, error) {
	if c.embedder == nil {
		return nil, domain.ErrSemanticUnavailable
	}
	res, err := c.embedder.Embed(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return &query.KNN{
		Field:         c.mapper.VectorField(),
		QueryVector:   res.Embedding,
		K:             max(limit, 1),
		NumCandidates: max(minNumCandidates, numCandidateFactor*limit),
		Filter:        filters,
	}, nil
}

func (c *Compiler) highlight() *query.Highlight {
	return &query.Highlight{
		PreTag:            HighlightPreTag,
		PostTag:           HighlightPostTag,
		Encoder:           "html",
		Type:              "unified",
		NumberOfFragments: 0,
		RequireFieldMatch: false,
		Fields:            c.mapper.HighlightFields(),
	}
}
