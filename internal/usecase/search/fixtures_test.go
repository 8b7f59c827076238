package search

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/fieldmap"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/raw"
)

var (
	licenseVocab = param.NewVocabulary("License", "CC0_1_0", "CC_BY_4_0", "CC_BY_NC_4_0")

	pCountry  = param.New("COUNTRY", param.Country)
	pLicense  = param.NewEnum("LICENSE", licenseVocab)
	pYear     = param.New("YEAR", param.Number)
	pModified = param.New("MODIFIED_DATE", param.Date)
	pGeometry = param.New("GEOMETRY", param.Geometry)
	pTitle    = param.New("TITLE", param.String)
	pHasCoord = param.New("HAS_COORDINATE", param.Bool)
	pUnmapped = param.New("UNMAPPED", param.String)
)

func testMapper() *fieldmap.Table {
	return fieldmap.MustNew(fieldmap.Config{
		Fields: map[param.Parameter]string{
			pCountry:  "country",
			pLicense:  "license",
			pYear:     "year",
			pModified: "modified",
			pGeometry: "scoordinates",
			pTitle:    "title",
			pHasCoord: "hasCoordinate",
		},
		Cardinalities:   map[string]int{"license": licenseVocab.Size(), "country": 250},
		DateFields:      []string{"modified"},
		ExcludedSource:  []string{"all"},
		HighlightFields: []string{"title", "description"},
		DefaultSort:     []query.Sort{{Field: "created", Order: query.Desc}},
	})
}

// mockEmbedder is a hand-written Embedder fake.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	return m.embedFn(ctx, text)
}

// mockRepo is a hand-written Repository fake.
type mockRepo struct {
	searchFn func(ctx context.Context, index string, q *query.Search) (*raw.Response, error)
}

func (m *mockRepo) Search(ctx context.Context, index string, q *query.Search) (*raw.Response, error) {
	return m.searchFn(ctx, index, q)
}

// assertJSON compares a rendered value against an expected JSON document.
func assertJSON(t *testing.T, got any, want string) {
	t.Helper()
	gotBytes, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var g, w any
	if err := json.Unmarshal(gotBytes, &g); err != nil {
		t.Fatalf("unmarshal got: %v", err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("unmarshal want: %v", err)
	}
	if !reflect.DeepEqual(g, w) {
		t.Errorf("JSON mismatch\n got: %s\nwant: %s", gotBytes, want)
	}
}

func parseResponse(t *testing.T, body string) *raw.Response {
	t.Helper()
	var r raw.Response
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	return &r
}
