package fieldmap

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
)

var (
	title   = param.New("DATASET_TITLE", param.String)
	country = param.New("COUNTRY", param.Country)
	year    = param.New("YEAR", param.Number)
)

func TestNew_Defaults(t *testing.T) {
	m, err := New(Config{Fields: map[param.Parameter]string{title: "title", country: "country"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f, ok := m.FieldFor(title); !ok || f != "title" {
		t.Errorf("FieldFor(title) = %q, %v", f, ok)
	}
	if p, ok := m.ParameterFor("country"); !ok || p != country {
		t.Errorf("ParameterFor(country) = %v, %v", p, ok)
	}
	if _, ok := m.FieldFor(year); ok {
		t.Error("unmapped parameter must not resolve")
	}
	if got := m.AutocompleteField(title); got != "titleAutocomplete" {
		t.Errorf("AutocompleteField() = %q", got)
	}
	if got := m.SuggestFields(title); len(got) != 1 || got[0] != "title" {
		t.Errorf("SuggestFields() = %v", got)
	}
	if got := m.SuggestFields(year); got != nil {
		t.Errorf("SuggestFields(unmapped) = %v, want nil", got)
	}
	if m.VectorField() != DefaultVectorField {
		t.Errorf("VectorField() = %q", m.VectorField())
	}
	if len(m.HighlightFields()) != 0 || len(m.DefaultSort()) != 0 {
		t.Error("expected empty highlight fields and sort")
	}
	match, ok := m.FullTextQuery("birds").(query.Match)
	if !ok || match.Field != DefaultFullTextField || match.Query != "birds" {
		t.Errorf("FullTextQuery() = %#v", m.FullTextQuery("birds"))
	}
	if _, ok := m.Cardinality("country"); ok {
		t.Error("no cardinality configured")
	}
}

func TestNew_Overrides(t *testing.T) {
	m := MustNew(Config{
		Fields:             map[param.Parameter]string{title: "title", year: "year"},
		Cardinalities:      map[string]int{"year": 300},
		DateFields:         []string{"modified"},
		ExcludedSource:     []string{"all"},
		AutocompleteFields: map[param.Parameter]string{title: "titleAutocomplete2"},
		SuggestFields:      map[param.Parameter][]string{title: {"title", "type"}},
		HighlightFields:    []string{"title"},
		DefaultSort:        []query.Sort{{Field: "created", Order: query.Desc}},
		VectorField:        "titleVector",
	})

	if n, ok := m.Cardinality("year"); !ok || n != 300 {
		t.Errorf("Cardinality(year) = %d, %v", n, ok)
	}
	if !m.IsDateField("modified") || m.IsDateField("year") {
		t.Error("IsDateField mismatch")
	}
	if m.AutocompleteField(title) != "titleAutocomplete2" {
		t.Errorf("AutocompleteField() = %q", m.AutocompleteField(title))
	}
	if got := m.SuggestFields(title); len(got) != 2 {
		t.Errorf("SuggestFields() = %v", got)
	}
	if m.VectorField() != "titleVector" {
		t.Errorf("VectorField() = %q", m.VectorField())
	}
	if m.ExcludedSourceFields()[0] != "all" {
		t.Errorf("ExcludedSourceFields() = %v", m.ExcludedSourceFields())
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"empty", Config{}, "empty"},
		{
			"not bijective",
			Config{Fields: map[param.Parameter]string{title: "title", country: "title"}},
			"mapped by both",
		},
		{"empty field", Config{Fields: map[param.Parameter]string{title: ""}}, "required"},
		{
			"bad cardinality",
			Config{Fields: map[param.Parameter]string{title: "title"}, Cardinalities: map[string]int{"title": 0}},
			"must be positive",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("New() error = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustNew(Config{})
}
