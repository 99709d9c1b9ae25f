package schema

// ProviderTagsTable represents the 'provider_tags' table
type ProviderTagsTable struct {
	Table string
	ID    string
	Label string
}

// ProviderTags is the schema definition for provider_tags
var ProviderTags = ProviderTagsTable{
	Table: "provider_tags",
	ID:    "id",
	Label: "label",
}

// ProviderTagMapTable represents the 'provider_tag_map' mapping table
type ProviderTagMapTable struct {
	Table      string
	ProviderID string
	TagID      string
}

// ProviderTagMap is the schema definition for provider_tag_map
var ProviderTagMap = ProviderTagMapTable{
	Table:      "provider_tag_map",
	ProviderID: "provider_id",
	TagID:      "tag_id",
}
