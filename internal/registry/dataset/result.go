package dataset

import (
	"github.com/google/uuid"

	"github.com/kailas-cloud/facetsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
)

// Result is one dataset search hit.
type Result struct {
	Key                         uuid.UUID  `json:"key"`
	Title                       string     `json:"title,omitempty"`
	Type                        string     `json:"type,omitempty"`
	Subtype                     string     `json:"subtype,omitempty"`
	Description                 string     `json:"description,omitempty"`
	PublishingOrganizationKey   *uuid.UUID `json:"publishingOrganizationKey,omitempty"`
	PublishingOrganizationTitle string     `json:"publishingOrganizationTitle,omitempty"`
	HostingOrganizationKey      *uuid.UUID `json:"hostingOrganizationKey,omitempty"`
	HostingOrganizationTitle    string     `json:"hostingOrganizationTitle,omitempty"`
	PublishingCountry           string     `json:"publishingCountry,omitempty"`
	License                     string     `json:"license,omitempty"`
	ProjectIdentifier           string     `json:"projectIdentifier,omitempty"`
	RecordCount                 *int64     `json:"recordCount,omitempty"`
	Keywords                    []string   `json:"keywords,omitempty"`
	Decades                     []int64    `json:"decades,omitempty"`
	CountryCoverage             []string   `json:"countryCoverage,omitempty"`
	DOI                         string     `json:"doi,omitempty"`
}

// Suggestion is one dataset title suggestion.
type Suggestion struct {
	Key         uuid.UUID `json:"key"`
	Title       string    `json:"title,omitempty"`
	Type        string    `json:"type,omitempty"`
	Subtype     string    `json:"subtype,omitempty"`
	Description string    `json:"description,omitempty"`
}

// ToResult converts a dataset document. Highlighted fragments replace the
// stored title, description and organization titles.
func ToResult(h *hit.Hit) Result {
	var r Result
	r.Key, _ = h.KeyUUID()
	r.Title, _ = h.StringOrHighlight("title")
	r.Type, _ = h.Canonical("type", Types.Lookup)
	r.Subtype, _ = h.Canonical("subtype", Subtypes.Lookup)
	r.Description, _ = h.StringOrHighlight("description")
	r.PublishingOrganizationKey = uuidPtr(h, "publishingOrganizationKey")
	r.PublishingOrganizationTitle, _ = h.StringOrHighlight("publishingOrganizationTitle")
	r.HostingOrganizationKey = uuidPtr(h, "hostingOrganizationKey")
	r.HostingOrganizationTitle, _ = h.StringOrHighlight("hostingOrganizationTitle")
	r.PublishingCountry, _ = h.Canonical("publishingCountry", param.CountryCode)
	r.License, _ = h.Canonical("license", Licenses.Lookup)
	r.ProjectIdentifier, _ = h.String("projectId")

	if r.Type != "" {
		countField := "occurrenceCount"
		if r.Type == "CHECKLIST" {
			countField = "nameUsagesCount"
		}
		if n, ok := h.Int(countField); ok {
			r.RecordCount = &n
		}
	}

	r.Keywords = h.Strings("keyword")
	r.Decades = h.Ints("decade")
	for _, c := range h.Strings("countryCoverage") {
		if code, ok := param.CountryCode(c); ok {
			r.CountryCoverage = append(r.CountryCoverage, code)
		}
	}
	r.DOI, _ = h.String("doi")
	return r
}

// ToSuggestion converts a dataset document returned by autocomplete or suggest.
func ToSuggestion(h *hit.Hit) Suggestion {
	var s Suggestion
	s.Key, _ = h.KeyUUID()
	s.Title, _ = h.String("title")
	s.Type, _ = h.Canonical("type", Types.Lookup)
	s.Subtype, _ = h.Canonical("subtype", Subtypes.Lookup)
	s.Description, _ = h.String("description")
	return s
}

func uuidPtr(h *hit.Hit, path string) *uuid.UUID {
	id, ok := h.UUID(path)
	if !ok {
		return nil
	}
	return &id
}
