package schema

// ReviewsTable represents the 'reviews' table
type ReviewsTable struct {
	Table       string
	ID          string
	ProviderID  string
	Rating      string
	Body        string
	DisplayName string
	Status      string
	CreatedAt   string
	DecidedAt   string
	DecidedBy   string
}

// Reviews is the schema definition for reviews
var Reviews = ReviewsTable{
	Table:       "reviews",
	ID:          "id",
	ProviderID:  "provider_id",
	Rating:      "rating",
	Body:        "body",
	DisplayName: "display_name",
	Status:      "status",
	CreatedAt:   "created_at",
	DecidedAt:   "decided_at",
	DecidedBy:   "decided_by",
}
