// Package dataset defines the dataset search domain: its parameters, how they
// map onto the dataset index and how indexed documents convert into results.
package dataset

import "github.com/kailas-cloud/facetsearch/internal/domain/search/param"

// Vocabularies of the enumerated dataset parameters.
var (
	Licenses = param.NewVocabulary("License",
		"CC0_1_0", "CC_BY_4_0", "CC_BY_NC_4_0", "UNSPECIFIED", "UNSUPPORTED")

	Types = param.NewVocabulary("DatasetType",
		"OCCURRENCE", "CHECKLIST", "METADATA", "SAMPLING_EVENT", "MATERIAL_ENTITY")

	Subtypes = param.NewVocabulary("DatasetSubtype",
		"TAXONOMIC_AUTHORITY", "NOMENCLATOR_AUTHORITY", "INVENTORY_THEMATIC",
		"INVENTORY_REGIONAL", "GLOBAL_SPECIES_DATASET", "DERIVED_FROM_OCCURRENCE",
		"SPECIMEN", "OBSERVATION")

	Continents = param.NewVocabulary("Continent",
		"AFRICA", "ANTARCTICA", "ASIA", "OCEANIA", "EUROPE", "NORTH_AMERICA", "SOUTH_AMERICA")
)

// Dataset search parameters.
var (
	TaxonKey          = param.New("TAXON_KEY", param.Number)
	Continent         = param.NewEnum("CONTINENT", Continents)
	Country           = param.New("COUNTRY", param.Country)
	PublishingCountry = param.New("PUBLISHING_COUNTRY", param.Country)
	Year              = param.New("YEAR", param.Number)
	Decade            = param.New("DECADE", param.Number)
	HostingOrg        = param.New("HOSTING_ORG", param.UUID)
	Keyword           = param.New("KEYWORD", param.String)
	License           = param.NewEnum("LICENSE", Licenses)
	ModifiedDate      = param.New("MODIFIED_DATE", param.Date)
	ProjectID         = param.New("PROJECT_ID", param.String)
	PublishingOrg     = param.New("PUBLISHING_ORG", param.UUID)
	RecordCount       = param.New("RECORD_COUNT", param.Number)
	Subtype           = param.NewEnum("SUBTYPE", Subtypes)
	Type              = param.NewEnum("TYPE", Types)
	Title             = param.New("DATASET_TITLE", param.String)
)

// Parameters resolves dataset parameter names.
var Parameters = param.NewRegistry(
	TaxonKey, Continent, Country, PublishingCountry, Year, Decade, HostingOrg, Keyword,
	License, ModifiedDate, ProjectID, PublishingOrg, RecordCount, Subtype, Type, Title,
)
