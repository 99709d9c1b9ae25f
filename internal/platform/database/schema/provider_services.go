package schema

// ProviderServicesTable represents the 'provider_services' mapping table
type ProviderServicesTable struct {
	Table      string
	ProviderID string
	CategoryID string
	Summary    string
	IsFeatured string
}

// ProviderServices is the schema definition for provider_services
var ProviderServices = ProviderServicesTable{
	Table:      "provider_services",
	ProviderID: "provider_id",
	CategoryID: "category_id",
	Summary:    "summary",
	IsFeatured: "is_featured",
}
