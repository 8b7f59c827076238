package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/raw"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, index string, body []byte) ([]byte, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a search repository. prefix is prepended to every index name.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Search serializes q, executes it against index and parses the response.
func (r *Repo) Search(ctx context.Context, index string, q *query.Search) (*raw.Response, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	data, err := r.store.Search(ctx, r.prefix+index, body)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w: %w", index, domain.ErrBackendUnavailable, err)
	}

	var resp raw.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w: %w", index, domain.ErrBackendUnavailable, err)
	}
	return &resp, nil
}
