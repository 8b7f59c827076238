package query

import "encoding/json"

// Aggregation is a named bucket aggregation.
type Aggregation interface {
	Source() map[string]any
}

// TermsAgg buckets documents by the values of one field.
type TermsAgg struct {
	Field       string
	Size        int
	ShardSize   int
	MinDocCount int
}

// Source implements Aggregation.
func (t TermsAgg) Source() map[string]any {
	body := map[string]any{"field": t.Field, "size": t.Size}
	if t.ShardSize > 0 {
		body["shard_size"] = t.ShardSize
	}
	body["min_doc_count"] = t.MinDocCount
	return map[string]any{"terms": body}
}

// FilterAgg narrows the document set before running a nested aggregation.
type FilterAgg struct {
	Filter     Clause
	NestedName string
	Nested     Aggregation
}

// Source implements Aggregation.
func (f FilterAgg) Source() map[string]any {
	return map[string]any{
		"filter": f.Filter.Source(),
		"aggs":   map[string]any{f.NestedName: f.Nested.Source()},
	}
}

// Order is a sort direction.
type Order string

// Sort directions.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort orders results by a field.
type Sort struct {
	Field string
	Order Order
}

// ScoreSort orders by relevance.
var ScoreSort = Sort{Field: "_score", Order: Desc}

// Highlight requests highlighted fragments.
type Highlight struct {
	PreTag            string
	PostTag           string
	Encoder           string
	Type              string
	NumberOfFragments int
	RequireFieldMatch bool
	Fields            []string
}

func (h *Highlight) source() map[string]any {
	fields := make(map[string]any, len(h.Fields))
	for _, f := range h.Fields {
		fields[f] = map[string]any{}
	}
	return map[string]any{
		"pre_tags":            []string{h.PreTag},
		"post_tags":           []string{h.PostTag},
		"encoder":             h.Encoder,
		"type":                h.Type,
		"number_of_fragments": h.NumberOfFragments,
		"require_field_match": h.RequireFieldMatch,
		"fields":              fields,
	}
}

// SourceFilter projects the returned document body.
type SourceFilter struct {
	Includes []string
	Excludes []string
}

// IsEmpty reports whether no projection is requested.
func (s SourceFilter) IsEmpty() bool { return len(s.Includes) == 0 && len(s.Excludes) == 0 }

// KNN is an approximate nearest-neighbour retrieval clause.
type KNN struct {
	Field         string
	QueryVector   []float32
	K             int
	NumCandidates int
	Filter        []Clause
}

func (k *KNN) source() map[string]any {
	body := map[string]any{
		"field":          k.Field,
		"query_vector":   k.QueryVector,
		"k":              k.K,
		"num_candidates": k.NumCandidates,
	}
	if len(k.Filter) > 0 {
		filters := make([]map[string]any, len(k.Filter))
		for i, c := range k.Filter {
			filters[i] = c.Source()
		}
		body["filter"] = filters
	}
	return body
}

// Completion is a completion suggester.
type Completion struct {
	Prefix         string
	Field          string
	Size           int
	SkipDuplicates bool
}

func (c Completion) source() map[string]any {
	return map[string]any{
		"prefix": c.Prefix,
		"completion": map[string]any{
			"field":           c.Field,
			"size":            c.Size,
			"skip_duplicates": c.SkipDuplicates,
		},
	}
}

// Search is a compiled backend request. It is not modified after compilation.
type Search struct {
	From       int
	Size       int
	Query      Clause
	PostFilter Clause
	Aggs       map[string]Aggregation
	Sort       []Sort
	Highlight  *Highlight
	Source     SourceFilter
	KNN        *KNN
	Suggest    map[string]Completion
}

// Body renders the request into the DSL body map.
func (s *Search) Body() map[string]any {
	body := map[string]any{
		"from": s.From,
		"size": s.Size,
	}
	if s.Query != nil {
		body["query"] = s.Query.Source()
	}
	if s.PostFilter != nil {
		body["post_filter"] = s.PostFilter.Source()
	}
	if len(s.Aggs) > 0 {
		aggs := make(map[string]any, len(s.Aggs))
		for name, a := range s.Aggs {
			aggs[name] = a.Source()
		}
		body["aggs"] = aggs
	}
	if len(s.Sort) > 0 {
		sorts := make([]map[string]any, len(s.Sort))
		for i, st := range s.Sort {
			sorts[i] = map[string]any{st.Field: map[string]any{"order": st.Order}}
		}
		body["sort"] = sorts
	}
	if s.Highlight != nil {
		body["highlight"] = s.Highlight.source()
	}
	if !s.Source.IsEmpty() {
		src := map[string]any{}
		if len(s.Source.Includes) > 0 {
			src["includes"] = s.Source.Includes
		}
		if len(s.Source.Excludes) > 0 {
			src["excludes"] = s.Source.Excludes
		}
		body["_source"] = src
	}
	if s.KNN != nil {
		body["knn"] = s.KNN.source()
	}
	if len(s.Suggest) > 0 {
		sg := make(map[string]any, len(s.Suggest))
		for name, c := range s.Suggest {
			sg[name] = c.source()
		}
		body["suggest"] = sg
	}
	return body
}

// MarshalJSON renders the request as a JSON body.
func (s *Search) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Body())
}
