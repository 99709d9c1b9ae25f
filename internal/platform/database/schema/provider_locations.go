package schema

// ProviderLocationsTable represents the 'provider_locations' table
type ProviderLocationsTable struct {
	Table         string
	ID            string
	ProviderID    string
	LocationLabel string
	AddressLine1  string
	Suburb        string
	State         string
	Postcode      string
	Country       string
	IsPrimary     string
	CreatedAt     string
}

// ProviderLocations is the schema definition for provider_locations
var ProviderLocations = ProviderLocationsTable{
	Table:         "provider_locations",
	ID:            "id",
	ProviderID:    "provider_id",
	LocationLabel: "location_label",
	AddressLine1:  "address_line1",
	Suburb:        "suburb",
	State:         "state",
	Postcode:      "postcode",
	Country:       "country",
	IsPrimary:     "is_primary",
	CreatedAt:     "created_at",
}
