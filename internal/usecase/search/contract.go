package search

import (
	"context"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/raw"
)

// Repository executes compiled queries against an index.
type Repository interface {
	Search(ctx context.Context, index string, q *query.Search) (*raw.Response, error)
}

// Embedder vectorizes query text for semantic retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
