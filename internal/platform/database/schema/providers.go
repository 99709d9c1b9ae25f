package schema

// ProvidersTable represents the 'providers' table
type ProvidersTable struct {
	Table       string
	ID          string
	Slug        string
	DisplayName string
	Headline    string
	Summary     string
	Website     string
	PublicEmail string
	PublicPhone string
	Status      string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

// Providers is the schema definition for providers
var Providers = ProvidersTable{
	Table:       "providers",
	ID:          "id",
	Slug:        "slug",
	DisplayName: "display_name",
	Headline:    "headline",
	Summary:     "summary",
	Website:     "website",
	PublicEmail: "public_email",
	PublicPhone: "public_phone",
	Status:      "status",
	IsActive:    "is_active",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t ProvidersTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.DisplayName, t.Headline, t.Summary, t.Website,
		t.PublicEmail, t.PublicPhone, t.Status, t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}
