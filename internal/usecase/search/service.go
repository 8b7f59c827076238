package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/fieldmap"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/raw"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/request"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/response"
	"github.com/kailas-cloud/facetsearch/internal/logger"
	"github.com/kailas-cloud/facetsearch/internal/metrics"
)

// Operation labels.
const (
	OpSearch       = "search"
	OpAutocomplete = "autocomplete"
	OpSuggest      = "suggest"
)

// Domain describes one searchable index and how its documents convert into
// results (T) and suggestions (S).
type Domain[T, S any] struct {
	Name         string
	Index        string
	Parameters   *param.Registry
	Mapper       fieldmap.Mapper
	ToResult     MapFunc[T]
	ToSuggestion MapFunc[S]
}

// Service runs compile, execute and decode for one search domain.
type Service[T, S any] struct {
	repo          Repository
	compiler      *Compiler
	decoder       *Decoder
	domain        Domain[T, S]
	facetsEnabled bool
}

// NewService creates a search service. embed may be nil when semantic search is disabled.
func NewService[T, S any](repo Repository, embed Embedder, d Domain[T, S], facetsEnabled bool) *Service[T, S] {
	onAnomaly := func(field string, _ error) {
		metrics.DecodeAnomaliesTotal.WithLabelValues(d.Name, field).Inc()
	}
	return &Service[T, S]{
		repo:          repo,
		compiler:      NewCompiler(d.Mapper, embed),
		decoder:       NewDecoder(d.Mapper, onAnomaly),
		domain:        d,
		facetsEnabled: facetsEnabled,
	}
}

// Name returns the domain name.
func (s *Service[T, S]) Name() string { return s.domain.Name }

// Parameters returns the parameter registry of the domain.
func (s *Service[T, S]) Parameters() *param.Registry { return s.domain.Parameters }

// Search runs a faceted search. semantic switches to vector retrieval for non-empty text.
func (s *Service[T, S]) Search(
	ctx context.Context, req *request.Faceted, semantic bool,
) (*response.Page[T], error) {
	ctx = logger.With(ctx, zap.String("domain", s.domain.Name))
	q, err := s.compiler.Compile(ctx, req, s.facetsEnabled, semantic)
	if err != nil {
		return nil, s.fail(ctx, OpSearch, fmt.Errorf("compile search: %w", err))
	}

	resp, err := s.execute(ctx, OpSearch, q)
	if err != nil {
		return nil, err
	}

	count, results := DecodePage(ctx, s.decoder, resp, s.domain.ToResult)
	page := &response.Page[T]{
		Offset:  req.Offset(),
		Limit:   req.Limit(),
		Count:   count,
		Results: results,
	}
	if s.facetsEnabled {
		page.Facets = s.decoder.DecodeFacets(ctx, resp, req)
	}
	s.record(OpSearch, nil)
	return page, nil
}

// Autocomplete returns suggestions for values of p matching the request text.
func (s *Service[T, S]) Autocomplete(ctx context.Context, req *request.Request, p param.Parameter) ([]S, error) {
	ctx = logger.With(ctx, zap.String("domain", s.domain.Name))
	q, err := s.compiler.CompileAutocomplete(req, p)
	if err != nil {
		return nil, s.fail(ctx, OpAutocomplete, fmt.Errorf("compile autocomplete: %w", err))
	}

	resp, err := s.execute(ctx, OpAutocomplete, q)
	if err != nil {
		return nil, err
	}

	_, out := DecodePage(ctx, s.decoder, resp, s.domain.ToSuggestion)
	s.record(OpAutocomplete, nil)
	return out, nil
}

// Suggest returns completion suggestions on p for prefix.
func (s *Service[T, S]) Suggest(ctx context.Context, prefix string, p param.Parameter, limit int) ([]S, error) {
	ctx = logger.With(ctx, zap.String("domain", s.domain.Name))
	q, err := s.compiler.CompileSuggest(prefix, p, limit)
	if err != nil {
		return nil, s.fail(ctx, OpSuggest, fmt.Errorf("compile suggest: %w", err))
	}

	resp, err := s.execute(ctx, OpSuggest, q)
	if err != nil {
		return nil, err
	}

	out := DecodeSuggestions(ctx, s.decoder, resp, p, s.domain.ToSuggestion)
	s.record(OpSuggest, nil)
	return out, nil
}

func (s *Service[T, S]) execute(ctx context.Context, op string, q *query.Search) (*raw.Response, error) {
	start := time.Now()
	resp, err := s.repo.Search(ctx, s.domain.Index, q)
	metrics.BackendRequestDuration.WithLabelValues(s.domain.Name, op).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("execute %s: %w", op, err))
	}
	return resp, nil
}

func (s *Service[T, S]) fail(ctx context.Context, op string, err error) error {
	log := logger.FromContext(ctx).With(
		zap.String("operation", op),
		zap.Error(err),
	)
	if errors.Is(err, domain.ErrInvalidArgument) {
		log.Info("Search request rejected")
	} else {
		log.Error("Search request failed")
	}
	s.record(op, err)
	return err
}

func (s *Service[T, S]) record(op string, err error) {
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidArgument):
		status = "invalid"
	default:
		status = "error"
	}
	metrics.SearchRequestsTotal.WithLabelValues(s.domain.Name, op, status).Inc()
}
