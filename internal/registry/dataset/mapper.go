package dataset

import (
	"github.com/kailas-cloud/facetsearch/internal/domain/search/fieldmap"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/query"
)

// countryCardinality bounds country facets: every ISO 3166 code plus the
// user-assigned ones used for unknown and international waters.
const countryCardinality = 252

// Full text scoring.
var fullTextFields = []string{
	"title^20",
	"keyword^10",
	"description^8",
	"publishingOrganizationTitle^5",
	"hostingOrganizationTitle^5",
	"metadata^3",
	"projectId^2",
	"all^1",
}

// Mapper maps dataset parameters onto the dataset index.
var Mapper = fieldmap.MustNew(fieldmap.Config{
	Fields: map[param.Parameter]string{
		TaxonKey:          "taxonKey",
		Continent:         "continent",
		Country:           "country",
		PublishingCountry: "publishingCountry",
		Year:              "year",
		Decade:            "decade",
		HostingOrg:        "hostingOrganizationKey",
		Keyword:           "keyword",
		License:           "license",
		ModifiedDate:      "modified",
		ProjectID:         "project.identifier",
		PublishingOrg:     "publishingOrganizationKey",
		RecordCount:       "occurrenceCount",
		Subtype:           "subtype",
		Type:              "type",
		Title:             "title",
	},
	Cardinalities: map[string]int{
		"license":           Licenses.Size(),
		"country":           countryCardinality,
		"publishingCountry": countryCardinality,
		"continent":         Continents.Size(),
		"type":              Types.Size(),
		"subtype":           Subtypes.Size(),
	},
	DateFields:      []string{"modified", "created", "pubDate"},
	ExcludedSource:  []string{"all"},
	HighlightFields: []string{"title", "description"},
	SuggestFields: map[param.Parameter][]string{
		Title: {"title", "type", "subtype", "description"},
	},
	FullText: fullTextQuery,
	DefaultSort: []query.Sort{
		{Field: "dataScore", Order: query.Asc},
		{Field: "created", Order: query.Desc},
	},
})

// fullTextQuery boosts title and keyword matches and scales the score by the
// dataset's data score.
func fullTextQuery(q string) query.Clause {
	return query.FunctionScore{
		Query: query.MultiMatch{
			Query:              q,
			Fields:             fullTextFields,
			TieBreaker:         0.2,
			MinimumShouldMatch: "25%",
			Slop:               100,
		},
		Factor: query.FieldValueFactor{
			Field:    "dataScore",
			Modifier: "ln2p",
			Missing:  0,
		},
		BoostMode: "multiply",
	}
}
