package raw

import (
	"encoding/json"
	"testing"
)

const sampleResponse = `{
	"took": 3,
	"timed_out": false,
	"hits": {
		"total": {"value": 42, "relation": "eq"},
		"max_score": 1.5,
		"hits": [
			{"_index": "dataset", "_id": "a", "_score": 1.5, "_source": {"title": "Birds"}},
			{"_index": "dataset", "_id": "b", "_score": null, "_source": null}
		]
	},
	"aggregations": {
		"sterms#country": {"buckets": [{"key": "DK", "doc_count": 10}]},
		"filter#license": {"doc_count": 7, "sterms#filtered_license": {"buckets": []}},
		"year": {"buckets": [{"key": 2001, "doc_count": 1}]}
	},
	"suggest": {
		"completion#title": [{"text": "bi", "offset": 0, "length": 2, "options": []}]
	}
}`

func TestResponse_Unmarshal(t *testing.T) {
	var r Response
	if err := json.Unmarshal([]byte(sampleResponse), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Total() != 42 {
		t.Errorf("Total() = %d", r.Total())
	}
	if len(r.Hits.Hits) != 2 {
		t.Fatalf("hits = %d", len(r.Hits.Hits))
	}
	if !r.Hits.Hits[0].HasSource() || r.Hits.Hits[1].HasSource() {
		t.Error("HasSource mismatch")
	}
	if r.Hits.Hits[1].Score != nil {
		t.Error("null score should decode to nil")
	}

	typ, body, ok := r.Aggregation("country")
	if !ok || typ != TypeStringTerms || len(body) == 0 {
		t.Errorf("Aggregation(country) = %q, %v", typ, ok)
	}
	typ, _, ok = r.Aggregation("year")
	if !ok || typ != "" {
		t.Errorf("untyped Aggregation(year) = %q, %v", typ, ok)
	}
	if _, _, ok := r.Aggregation("missing"); ok {
		t.Error("unexpected aggregation")
	}

	typ, entries, ok := r.Suggestion("title")
	if !ok || typ != TypeCompletion || len(entries) != 1 {
		t.Errorf("Suggestion(title) = %q, %d, %v", typ, len(entries), ok)
	}
}

func TestSubAggregations(t *testing.T) {
	var r Response
	if err := json.Unmarshal([]byte(sampleResponse), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	_, body, _ := r.Aggregation("license")
	subs, err := SubAggregations(body)
	if err != nil {
		t.Fatalf("SubAggregations: %v", err)
	}
	if _, ok := subs["doc_count"]; ok {
		t.Error("doc_count must be removed")
	}
	typ, _, ok := FindTyped(subs, "filtered_license")
	if !ok || typ != TypeStringTerms {
		t.Errorf("nested lookup = %q, %v", typ, ok)
	}
	if _, err := SubAggregations(json.RawMessage(`[1]`)); err == nil {
		t.Error("expected error for non-object body")
	}
}

func TestBucket_Name(t *testing.T) {
	tests := []struct {
		b    Bucket
		want string
	}{
		{Bucket{Key: json.RawMessage(`"DK"`)}, "DK"},
		{Bucket{Key: json.RawMessage(`2001`)}, "2001"},
		{Bucket{Key: json.RawMessage(`1`), KeyAsString: "true"}, "true"},
	}
	for _, tc := range tests {
		if got := tc.b.Name(); got != tc.want {
			t.Errorf("Name() = %q, want %q", got, tc.want)
		}
	}
}

func TestSplitTypedKey(t *testing.T) {
	if typ, name := SplitTypedKey("filter#country"); typ != "filter" || name != "country" {
		t.Errorf("got %q %q", typ, name)
	}
	if typ, name := SplitTypedKey("country"); typ != "" || name != "country" {
		t.Errorf("got %q %q", typ, name)
	}
}
