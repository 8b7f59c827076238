// Package fieldmap maps search parameters onto index field names and
// carries the per-index query conventions.
package fieldmap

import (
	"fmt"

	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
)

// Defaults used when a Config leaves a convention unset.
const (
	DefaultFullTextField = "all"
	DefaultVectorField   = "embedding"
	AutocompleteSuffix   = "Autocomplete"
)

// Mapper is the per-index contract consumed by the compiler and decoder.
// Implementations are immutable and safe for concurrent use.
type Mapper interface {
	FieldFor(p param.Parameter) (string, bool)
	ParameterFor(field string) (param.Parameter, bool)
	Cardinality(field string) (int, bool)
	IsDateField(field string) bool
	ExcludedSourceFields() []string
	IncludedSourceFields() []string
	AutocompleteField(p param.Parameter) string
	SuggestFields(p param.Parameter) []string
	HighlightFields() []string
	FullTextQuery(q string) query.Clause
	DefaultSort() []query.Sort
	VectorField() string
}

// Config describes one index. Only Fields is required.
type Config struct {
	Fields             map[param.Parameter]string
	Cardinalities      map[string]int
	DateFields         []string
	ExcludedSource     []string
	IncludedSource     []string
	AutocompleteFields map[param.Parameter]string
	SuggestFields      map[param.Parameter][]string
	HighlightFields    []string
	FullText           func(q string) query.Clause
	DefaultSort        []query.Sort
	VectorField        string
}

// Table is the table-driven Mapper.
type Table struct {
	fields       map[param.Parameter]string
	params       map[string]param.Parameter
	cardinality  map[string]int
	dateFields   map[string]struct{}
	excluded     []string
	included     []string
	autocomplete map[param.Parameter]string
	suggest      map[param.Parameter][]string
	highlight    []string
	fullText     func(q string) query.Clause
	sort         []query.Sort
	vectorField  string
}

var _ Mapper = (*Table)(nil)

// New validates cfg and builds a Table. Every field must belong to exactly one parameter.
func New(cfg Config) (*Table, error) {
	if len(cfg.Fields) == 0 {
		return nil, fmt.Errorf("field mapping is empty")
	}

	t := &Table{
		fields:       make(map[param.Parameter]string, len(cfg.Fields)),
		params:       make(map[string]param.Parameter, len(cfg.Fields)),
		cardinality:  make(map[string]int, len(cfg.Cardinalities)),
		dateFields:   make(map[string]struct{}, len(cfg.DateFields)),
		excluded:     append([]string(nil), cfg.ExcludedSource...),
		included:     append([]string(nil), cfg.IncludedSource...),
		autocomplete: make(map[param.Parameter]string, len(cfg.AutocompleteFields)),
		suggest:      make(map[param.Parameter][]string, len(cfg.SuggestFields)),
		highlight:    append([]string(nil), cfg.HighlightFields...),
		fullText:     cfg.FullText,
		sort:         append([]query.Sort(nil), cfg.DefaultSort...),
		vectorField:  cfg.VectorField,
	}

	for p, field := range cfg.Fields {
		if p.IsZero() || field == "" {
			return nil, fmt.Errorf("mapping %q -> %q: parameter and field are required", p.Name(), field)
		}
		if other, dup := t.params[field]; dup {
			return nil, fmt.Errorf("field %q mapped by both %s and %s", field, other.Name(), p.Name())
		}
		t.fields[p] = field
		t.params[field] = p
	}
	for field, n := range cfg.Cardinalities {
		if n <= 0 {
			return nil, fmt.Errorf("cardinality of %q must be positive, got %d", field, n)
		}
		t.cardinality[field] = n
	}
	for _, f := range cfg.DateFields {
		t.dateFields[f] = struct{}{}
	}
	for p, f := range cfg.AutocompleteFields {
		t.autocomplete[p] = f
	}
	for p, fs := range cfg.SuggestFields {
		t.suggest[p] = append([]string(nil), fs...)
	}
	if t.fullText == nil {
		t.fullText = func(q string) query.Clause {
			return query.Match{Field: DefaultFullTextField, Query: q}
		}
	}
	if t.vectorField == "" {
		t.vectorField = DefaultVectorField
	}
	return t, nil
}

// MustNew is New for package-level tables; it panics on an invalid Config.
func MustNew(cfg Config) *Table {
	t, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// FieldFor returns the index field of p.
func (t *Table) FieldFor(p param.Parameter) (string, bool) {
	f, ok := t.fields[p]
	return f, ok
}

// ParameterFor returns the parameter that maps to field.
func (t *Table) ParameterFor(field string) (param.Parameter, bool) {
	p, ok := t.params[field]
	return p, ok
}

// Cardinality returns the known number of distinct values of field.
func (t *Table) Cardinality(field string) (int, bool) {
	n, ok := t.cardinality[field]
	return n, ok
}

// IsDateField reports whether field holds dates.
func (t *Table) IsDateField(field string) bool {
	_, ok := t.dateFields[field]
	return ok
}

// ExcludedSourceFields returns fields stripped from returned documents.
func (t *Table) ExcludedSourceFields() []string { return t.excluded }

// IncludedSourceFields returns the projection; empty means all fields.
func (t *Table) IncludedSourceFields() []string { return t.included }

// AutocompleteField returns the analyzed field used for autocomplete on p.
// It defaults to the mapped field with the Autocomplete suffix.
func (t *Table) AutocompleteField(p param.Parameter) string {
	if f, ok := t.autocomplete[p]; ok {
		return f
	}
	f, _ := t.FieldFor(p)
	return f + AutocompleteSuffix
}

// SuggestFields returns the fields returned by autocomplete and suggest on p.
func (t *Table) SuggestFields(p param.Parameter) []string {
	if fs, ok := t.suggest[p]; ok {
		return fs
	}
	if f, ok := t.FieldFor(p); ok {
		return []string{f}
	}
	return nil
}

// HighlightFields returns fields to highlight.
func (t *Table) HighlightFields() []string { return t.highlight }

// FullTextQuery builds the free-text clause for q.
func (t *Table) FullTextQuery(q string) query.Clause { return t.fullText(q) }

// DefaultSort returns the sort used when no free text is given.
func (t *Table) DefaultSort() []query.Sort { return t.sort }

// VectorField returns the dense vector field used by kNN retrieval.
func (t *Table) VectorField() string { return t.vectorField }
