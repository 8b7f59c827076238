// Package occurrence defines the occurrence search domain.
package occurrence

import (
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/facetsearch/internal/domain/search/fieldmap"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
)

// BasisOfRecords is the basis of record vocabulary.
var BasisOfRecords = param.NewVocabulary("BasisOfRecord",
	"PRESERVED_SPECIMEN", "FOSSIL_SPECIMEN", "LIVING_SPECIMEN", "OBSERVATION",
	"HUMAN_OBSERVATION", "MACHINE_OBSERVATION", "MATERIAL_SAMPLE", "MATERIAL_CITATION", "OCCURRENCE")

// Occurrence search parameters.
var (
	Geometry       = param.New("GEOMETRY", param.Geometry)
	Country        = param.New("COUNTRY", param.Country)
	Year           = param.New("YEAR", param.Number)
	EventDate      = param.New("EVENT_DATE", param.Date)
	BasisOfRecord  = param.NewEnum("BASIS_OF_RECORD", BasisOfRecords)
	DatasetKey     = param.New("DATASET_KEY", param.UUID)
	TaxonKey       = param.New("TAXON_KEY", param.Number)
	HasCoordinate  = param.New("HAS_COORDINATE", param.Bool)
	ScientificName = param.New("SCIENTIFIC_NAME", param.String)
)

// Parameters resolves occurrence parameter names.
var Parameters = param.NewRegistry(
	Geometry, Country, Year, EventDate, BasisOfRecord, DatasetKey, TaxonKey, HasCoordinate, ScientificName,
)

// Mapper maps occurrence parameters onto the occurrence index.
var Mapper = fieldmap.MustNew(fieldmap.Config{
	Fields: map[param.Parameter]string{
		Geometry:       "scoordinates",
		Country:        "countryCode",
		Year:           "year",
		EventDate:      "eventDate",
		BasisOfRecord:  "basisOfRecord",
		DatasetKey:     "datasetKey",
		TaxonKey:       "taxonKey",
		HasCoordinate:  "hasCoordinate",
		ScientificName: "scientificName",
	},
	Cardinalities: map[string]int{
		"basisOfRecord": BasisOfRecords.Size(),
		"countryCode":   252,
		"hasCoordinate": 2,
	},
	DateFields:     []string{"eventDate", "modified"},
	ExcludedSource: []string{"all", "embedding"},
	SuggestFields: map[param.Parameter][]string{
		ScientificName: {"scientificName", "taxonKey"},
	},
	DefaultSort: []query.Sort{{Field: "eventDate", Order: query.Desc}},
})

// Result is one occurrence search hit.
type Result struct {
	Key              string     `json:"key"`
	DatasetKey       *uuid.UUID `json:"datasetKey,omitempty"`
	ScientificName   string     `json:"scientificName,omitempty"`
	TaxonKey         *int64     `json:"taxonKey,omitempty"`
	BasisOfRecord    string     `json:"basisOfRecord,omitempty"`
	CountryCode      string     `json:"countryCode,omitempty"`
	Year             *int64     `json:"year,omitempty"`
	EventDate        *time.Time `json:"eventDate,omitempty"`
	DecimalLatitude  *float64   `json:"decimalLatitude,omitempty"`
	DecimalLongitude *float64   `json:"decimalLongitude,omitempty"`
	Score            float64    `json:"score,omitempty"`
}

// Suggestion is one scientific name suggestion.
type Suggestion struct {
	ScientificName string `json:"scientificName"`
	TaxonKey       *int64 `json:"taxonKey,omitempty"`
}

// ToResult converts an occurrence document.
func ToResult(h *hit.Hit) Result {
	r := Result{Key: h.ID(), Score: h.Score()}
	if id, ok := h.UUID("datasetKey"); ok {
		r.DatasetKey = &id
	}
	r.ScientificName, _ = h.String("scientificName")
	r.TaxonKey = intPtr(h, "taxonKey")
	r.BasisOfRecord, _ = h.Canonical("basisOfRecord", BasisOfRecords.Lookup)
	r.CountryCode, _ = h.Canonical("countryCode", param.CountryCode)
	r.Year = intPtr(h, "year")
	if ts, ok := h.Time("eventDate"); ok {
		r.EventDate = &ts
	}
	r.DecimalLatitude = floatPtr(h, "decimalLatitude")
	r.DecimalLongitude = floatPtr(h, "decimalLongitude")
	return r
}

// ToSuggestion converts a document returned by autocomplete or suggest.
func ToSuggestion(h *hit.Hit) Suggestion {
	var s Suggestion
	s.ScientificName, _ = h.String("scientificName")
	s.TaxonKey = intPtr(h, "taxonKey")
	return s
}

func intPtr(h *hit.Hit, path string) *int64 {
	if n, ok := h.Int(path); ok {
		return &n
	}
	return nil
}

func floatPtr(h *hit.Hit, path string) *float64 {
	if f, ok := h.Float(path); ok {
		return &f
	}
	return nil
}
