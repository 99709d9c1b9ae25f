package schema

// UserProfilesTable represents the 'user_profiles' table
type UserProfilesTable struct {
	Table      string
	ID         string
	Email      string
	Role       string
	ProviderID string
	CreatedAt  string
}

// UserProfiles is the schema definition for user_profiles
var UserProfiles = UserProfilesTable{
	Table:      "user_profiles",
	ID:         "id",
	Email:      "email",
	Role:       "role",
	ProviderID: "provider_id",
	CreatedAt:  "created_at",
}
