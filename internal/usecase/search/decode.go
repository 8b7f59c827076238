package search

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetsearch/internal/domain/search/fieldmap"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/raw"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/request"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/response"
	"github.com/kailas-cloud/facetsearch/internal/logger"
)

// MapFunc converts one decoded document into a domain value.
type MapFunc[T any] func(h *hit.Hit) T

// Decoder turns raw backend responses into domain values. Anomalies in
// individual documents or aggregations are logged and skipped.
type Decoder struct {
	mapper    fieldmap.Mapper
	onAnomaly hit.AnomalyFunc
}

// NewDecoder creates a decoder. onAnomaly may be nil.
func NewDecoder(mapper fieldmap.Mapper, onAnomaly hit.AnomalyFunc) *Decoder {
	if onAnomaly == nil {
		onAnomaly = func(string, error) {}
	}
	return &Decoder{mapper: mapper, onAnomaly: onAnomaly}
}

// DecodePage returns the total hit count and the hits mapped in backend order.
func DecodePage[T any](ctx context.Context, d *Decoder, resp *raw.Response, mapFn MapFunc[T]) (int64, []T) {
	total := resp.Total()
	if len(resp.Hits.Hits) == 0 {
		return total, nil
	}

	log := logger.FromContext(ctx)
	results := make([]T, 0, len(resp.Hits.Hits))
	for _, rh := range resp.Hits.Hits {
		var score float64
		if rh.Score != nil {
			score = *rh.Score
		}
		h, err := hit.New(rh.ID, score, rh.Source, rh.Highlight, log, d.onAnomaly)
		if err != nil {
			log.Warn("Skipping undecodable hit", zap.String("id", rh.ID), zap.Error(err))
			d.onAnomaly("_source", err)
			continue
		}
		results = append(results, mapFn(h))
	}
	return total, results
}

// DecodeFacets returns facet counts in the request's facet order, each sliced
// by the facet's offset and limit.
func (d *Decoder) DecodeFacets(ctx context.Context, resp *raw.Response, req *request.Faceted) []response.Facet {
	if len(resp.Aggregations) == 0 || !req.HasFacets() {
		return nil
	}

	log := logger.FromContext(ctx)
	byParam := make(map[param.Parameter][]raw.Bucket, len(resp.Aggregations))
	for key, body := range resp.Aggregations {
		typ, field := raw.SplitTypedKey(key)
		p, ok := d.mapper.ParameterFor(field)
		if !ok {
			continue
		}
		buckets, err := bucketsOf(typ, field, body)
		if err != nil {
			log.Warn("Failed to decode aggregation", zap.String("aggregation", key), zap.Error(err))
			d.onAnomaly(key, err)
			continue
		}
		byParam[p] = buckets
	}

	facets := make([]response.Facet, 0, len(byParam))
	for _, p := range req.Facets() {
		buckets, ok := byParam[p]
		if !ok {
			continue
		}
		buckets = page(buckets, req.FacetOffset(p), req.FacetLimit(p))
		counts := make([]response.Count, len(buckets))
		for i, b := range buckets {
			counts[i] = response.Count{Name: b.Name(), Count: b.DocCount}
		}
		facets = append(facets, response.Facet{Parameter: p, Counts: counts})
	}
	return facets
}

// bucketsOf reads buckets from a terms aggregation or from the terms
// aggregation nested in a multi-select filter aggregation.
func bucketsOf(typ, field string, body json.RawMessage) ([]raw.Bucket, error) {
	if typ == raw.TypeFilter || (typ == "" && !hasBuckets(body)) {
		subs, err := raw.SubAggregations(body)
		if err != nil {
			return nil, err
		}
		_, nested, ok := raw.FindTyped(subs, FilteredAggPrefix+field)
		if !ok {
			return nil, nil
		}
		body = nested
	}
	var t raw.Terms
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, err //nolint:wrapcheck // logged by caller
	}
	return t.Buckets, nil
}

func hasBuckets(body json.RawMessage) bool {
	var probe struct {
		Buckets json.RawMessage `json:"buckets"`
	}
	return json.Unmarshal(body, &probe) == nil && probe.Buckets != nil
}

func page(buckets []raw.Bucket, offset, limit int) []raw.Bucket {
	if offset >= len(buckets) {
		return nil
	}
	buckets = buckets[offset:]
	if limit < len(buckets) {
		buckets = buckets[:limit]
	}
	return buckets
}

// DecodeSuggestions maps the completion options of the suggester keyed by
// p's field. Options without a document are skipped.
func DecodeSuggestions[S any](
	ctx context.Context, d *Decoder, resp *raw.Response, p param.Parameter, mapFn MapFunc[S],
) []S {
	field, ok := d.mapper.FieldFor(p)
	if !ok {
		return nil
	}
	typ, entries, ok := resp.Suggestion(field)
	if !ok || (typ != "" && typ != raw.TypeCompletion) {
		return nil
	}

	log := logger.FromContext(ctx)
	var out []S
	for _, e := range entries {
		for _, o := range e.Options {
			if !o.HasSource() {
				continue
			}
			h, err := hit.New(o.ID, o.Score, o.Source, nil, log, d.onAnomaly)
			if err != nil {
				log.Warn("Skipping undecodable suggestion", zap.String("id", o.ID), zap.Error(err))
				d.onAnomaly("_source", err)
				continue
			}
			out = append(out, mapFn(h))
		}
	}
	return out
}
