package schema

// FundingTypesTable represents the 'funding_types' table
type FundingTypesTable struct {
	Table     string
	ID        string
	Slug      string
	Label     string
	SortOrder string
}

// FundingTypes is the schema definition for funding_types
var FundingTypes = FundingTypesTable{
	Table:     "funding_types",
	ID:        "id",
	Slug:      "slug",
	Label:     "label",
	SortOrder: "sort_order",
}
