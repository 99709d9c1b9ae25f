package schema

// ProviderFundingOptionsTable represents the 'provider_funding_options' mapping table
type ProviderFundingOptionsTable struct {
	Table         string
	ProviderID    string
	FundingTypeID string
}

// ProviderFundingOptions is the schema definition for provider_funding_options
var ProviderFundingOptions = ProviderFundingOptionsTable{
	Table:         "provider_funding_options",
	ProviderID:    "provider_id",
	FundingTypeID: "funding_type_id",
}
