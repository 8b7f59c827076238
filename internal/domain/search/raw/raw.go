// Package raw models the search backend's response envelope.
package raw

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Aggregation types as reported by typed keys.
const (
	TypeStringTerms = "sterms"
	TypeLongTerms   = "lterms"
	TypeDoubleTerms = "dterms"
	TypeFilter      = "filter"
	TypeCompletion  = "completion"
)

// Response is the _search response body.
type Response struct {
	Took         int                        `json:"took"`
	TimedOut     bool                       `json:"timed_out"`
	Hits         Hits                       `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations,omitempty"`
	Suggest      map[string][]SuggestEntry  `json:"suggest,omitempty"`
}

// Hits is the hits section.
type Hits struct {
	Total    *Total   `json:"total,omitempty"`
	MaxScore *float64 `json:"max_score,omitempty"`
	Hits     []Hit    `json:"hits"`
}

// Total is the total hit count.
type Total struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation"`
}

// Hit is one matching document.
type Hit struct {
	Index     string              `json:"_index"`
	ID        string              `json:"_id"`
	Score     *float64            `json:"_score"`
	Source    json.RawMessage     `json:"_source,omitempty"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// SuggestEntry is one suggester result for an input text.
type SuggestEntry struct {
	Text    string          `json:"text"`
	Offset  int             `json:"offset"`
	Length  int             `json:"length"`
	Options []SuggestOption `json:"options"`
}

// SuggestOption is one completion candidate with its document.
type SuggestOption struct {
	Text   string          `json:"text"`
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Score  float64         `json:"_score"`
	Source json.RawMessage `json:"_source,omitempty"`
}

// HasSource reports whether the option carries a non-null document.
func (o SuggestOption) HasSource() bool { return hasBody(o.Source) }

// HasSource reports whether the hit carries a non-null document.
func (h Hit) HasSource() bool { return hasBody(h.Source) }

func hasBody(b json.RawMessage) bool {
	trimmed := bytes.TrimSpace(b)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Bucket is one terms aggregation bucket.
type Bucket struct {
	Key         json.RawMessage `json:"key"`
	KeyAsString string          `json:"key_as_string,omitempty"`
	DocCount    int64           `json:"doc_count"`
}

// Name returns the bucket key as text, preferring key_as_string.
func (b Bucket) Name() string {
	if b.KeyAsString != "" {
		return b.KeyAsString
	}
	var s string
	if err := json.Unmarshal(b.Key, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(b.Key))
}

// Terms is a terms aggregation result.
type Terms struct {
	Buckets []Bucket `json:"buckets"`
}

// SplitTypedKey splits "sterms#country" into ("sterms", "country").
// Keys without a type prefix return an empty type.
func SplitTypedKey(key string) (typ, name string) {
	if t, n, ok := strings.Cut(key, "#"); ok {
		return t, n
	}
	return "", key
}

// Aggregation finds the aggregation called name, typed or not.
func (r *Response) Aggregation(name string) (typ string, body json.RawMessage, ok bool) {
	return findTyped(r.Aggregations, name)
}

// Suggestion finds the suggester called name, typed or not.
func (r *Response) Suggestion(name string) (typ string, entries []SuggestEntry, ok bool) {
	for key, v := range r.Suggest {
		t, n := SplitTypedKey(key)
		if n == name {
			return t, v, true
		}
	}
	return "", nil, false
}

// Total returns the total hit count, 0 when absent.
func (r *Response) Total() int64 {
	if r.Hits.Total == nil {
		return 0
	}
	return r.Hits.Total.Value
}

// SubAggregations parses an aggregation body and returns its nested
// aggregations keyed as returned.
func SubAggregations(body json.RawMessage) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err //nolint:wrapcheck // caller adds context
	}
	delete(m, "doc_count")
	delete(m, "meta")
	return m, nil
}

// FindTyped looks up name among typed or untyped keys.
func FindTyped(m map[string]json.RawMessage, name string) (typ string, body json.RawMessage, ok bool) {
	return findTyped(m, name)
}

func findTyped(m map[string]json.RawMessage, name string) (string, json.RawMessage, bool) {
	if v, ok := m[name]; ok {
		return "", v, true
	}
	for key, v := range m {
		t, n := SplitTypedKey(key)
		if n == name {
			return t, v, true
		}
	}
	return "", nil, false
}
