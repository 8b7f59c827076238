package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/facetsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/request"
)

type doc struct {
	ID    string
	Title string
	Year  int64
}

func toDoc(h *hit.Hit) doc {
	d := doc{ID: h.ID()}
	d.Title, _ = h.StringOrHighlight("title")
	d.Year, _ = h.Int("year")
	return d
}

type anomalyLog struct {
	fields []string
}

func (a *anomalyLog) record(field string, _ error) { a.fields = append(a.fields, field) }

func TestDecodePage_EmptyHitsKeepTotal(t *testing.T) {
	resp := parseResponse(t, `{"hits":{"total":{"value":42,"relation":"eq"},"hits":[]}}`)
	total, results := DecodePage(context.Background(), NewDecoder(testMapper(), nil), resp, toDoc)
	if total != 42 {
		t.Errorf("expected total 42, got %d", total)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

func TestDecodePage_MapsInOrderAndDegrades(t *testing.T) {
	resp := parseResponse(t, `{"hits":{"total":{"value":4},"hits":[
		{"_id":"a","_score":2.5,"_source":{"title":"Puma","year":2001},"highlight":{"title":["<em>Puma</em>"]}},
		{"_id":"b","_score":1.0,"_source":{"title":"Lynx"}},
		{"_id":"c","_score":0.5,"_source":{"title":"Ocelot","year":"unknown"}},
		{"_id":"d","_score":null,"_source":null},
		{"_id":"e","_source":[1,2]}
	]}}`)
	anomalies := &anomalyLog{}
	total, results := DecodePage(context.Background(), NewDecoder(testMapper(), anomalies.record), resp, toDoc)

	if total != 4 {
		t.Errorf("expected total 4, got %d", total)
	}
	want := []doc{
		{ID: "a", Title: "<em>Puma</em>", Year: 2001},
		{ID: "b", Title: "Lynx"},
		{ID: "c", Title: "Ocelot"},
		{ID: "d"},
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %v", len(want), len(results), results)
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("result %d: expected %+v, got %+v", i, want[i], results[i])
		}
	}
	if len(anomalies.fields) != 2 || anomalies.fields[0] != "year" || anomalies.fields[1] != "_source" {
		t.Errorf("expected anomalies [year _source], got %v", anomalies.fields)
	}
}

func TestDecodeFacets_TermsAndFilterShapes(t *testing.T) {
	resp := parseResponse(t, `{"hits":{"total":{"value":10},"hits":[]},"aggregations":{
		"sterms#license":{"buckets":[
			{"key":"CC0_1_0","doc_count":7},
			{"key":"CC_BY_4_0","doc_count":3}
		]},
		"filter#country":{"doc_count":9,"sterms#filtered_country":{"buckets":[
			{"key":"DK","doc_count":5},
			{"key":"SE","doc_count":3},
			{"key":"NO","doc_count":1}
		]}},
		"lterms#year":{"buckets":[{"key":2001,"doc_count":4}]},
		"sterms#unknownField":{"buckets":[{"key":"x","doc_count":1}]}
	}}`)

	req := request.NewFaceted(request.New("", 0, 20)).
		AddFacets(pCountry, pLicense, pYear).
		WithFacetPaging(pCountry, intPtr(1), intPtr(1))

	facets := NewDecoder(testMapper(), nil).DecodeFacets(context.Background(), resp, req)
	if len(facets) != 3 {
		t.Fatalf("expected 3 facets, got %d", len(facets))
	}
	assertJSON(t, facets, `[
		{"field":"COUNTRY","counts":[{"name":"SE","count":3}]},
		{"field":"LICENSE","counts":[{"name":"CC0_1_0","count":7},{"name":"CC_BY_4_0","count":3}]},
		{"field":"YEAR","counts":[{"name":"2001","count":4}]}
	]`)
}

func TestDecodeFacets_UntypedKeys(t *testing.T) {
	resp := parseResponse(t, `{"hits":{"hits":[]},"aggregations":{
		"license":{"buckets":[{"key":"CC0_1_0","doc_count":2}]},
		"country":{"doc_count":2,"filtered_country":{"buckets":[{"key":"DK","doc_count":2}]}}
	}}`)
	req := request.NewFaceted(request.New("", 0, 20)).AddFacets(pLicense, pCountry)

	facets := NewDecoder(testMapper(), nil).DecodeFacets(context.Background(), resp, req)
	assertJSON(t, facets, `[
		{"field":"LICENSE","counts":[{"name":"CC0_1_0","count":2}]},
		{"field":"COUNTRY","counts":[{"name":"DK","count":2}]}
	]`)
}

func TestDecodeFacets_PagingBeyondBuckets(t *testing.T) {
	resp := parseResponse(t, `{"hits":{"hits":[]},"aggregations":{
		"sterms#license":{"buckets":[{"key":"CC0_1_0","doc_count":2}]}
	}}`)
	req := request.NewFaceted(request.New("", 0, 20)).AddFacets(pLicense).WithPaging(intPtr(5), intPtr(10))

	facets := NewDecoder(testMapper(), nil).DecodeFacets(context.Background(), resp, req)
	if len(facets) != 1 || len(facets[0].Counts) != 0 {
		t.Errorf("expected one empty facet, got %+v", facets)
	}
}

func TestDecodeFacets_MalformedAggregationIsSkipped(t *testing.T) {
	resp := parseResponse(t, `{"hits":{"hits":[]},"aggregations":{
		"sterms#license":{"buckets":"oops"},
		"sterms#country":{"buckets":[{"key":"DK","doc_count":1}]}
	}}`)
	req := request.NewFaceted(request.New("", 0, 20)).AddFacets(pLicense, pCountry)
	anomalies := &anomalyLog{}

	facets := NewDecoder(testMapper(), anomalies.record).DecodeFacets(context.Background(), resp, req)
	assertJSON(t, facets, `[{"field":"COUNTRY","counts":[{"name":"DK","count":1}]}]`)
	if len(anomalies.fields) != 1 {
		t.Errorf("expected one anomaly, got %v", anomalies.fields)
	}
}

func TestDecodeSuggestions(t *testing.T) {
	resp := parseResponse(t, `{"hits":{"hits":[]},"suggest":{
		"completion#title":[{"text":"pum","offset":0,"length":3,"options":[
			{"text":"Puma","_id":"a","_score":1,"_source":{"title":"Puma"}},
			{"text":"Pumpkin","_id":"b","_score":1},
			{"text":"Puma concolor","_id":"c","_score":1,"_source":{"title":"Puma concolor","year":1771}}
		]}]
	}}`)
	d := NewDecoder(testMapper(), nil)

	got := DecodeSuggestions(context.Background(), d, resp, pTitle, toDoc)
	want := []doc{{ID: "a", Title: "Puma"}, {ID: "c", Title: "Puma concolor", Year: 1771}}
	if len(got) != len(want) {
		t.Fatalf("expected %d suggestions, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	if absent := DecodeSuggestions(context.Background(), d, resp, pCountry, toDoc); absent != nil {
		t.Errorf("expected nil for absent suggester, got %v", absent)
	}
}

func TestDecodeSuggestions_IgnoresOtherSuggesterTypes(t *testing.T) {
	resp := parseResponse(t, `{"hits":{"hits":[]},"suggest":{
		"term#title":[{"text":"pum","options":[{"text":"puma","_id":"a","_source":{"title":"Puma"}}]}]
	}}`)
	got := DecodeSuggestions(context.Background(), NewDecoder(testMapper(), nil), resp, pTitle, toDoc)
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
