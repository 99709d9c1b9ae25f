package provider

import (
	"context"
	"time"

	"github.com/carefinder-au/carefinder/internal/directory/facet"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
	"github.com/carefinder-au/carefinder/pkg/pointer"
)

// # Lifecycle States

// Status is the editorial lifecycle state of a provider listing.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// # Validation Field Identifiers

const (
	FieldSlug     = "slug"
	FieldName     = "display_name"
	FieldHeadline = "headline"
	FieldSummary  = "summary"
	FieldQuery    = "query"
)

// # Domain Entities

// Location is a single physical site of a provider.
type Location struct {
	ID           string  `json:"id"`
	Label        *string `json:"label,omitempty"`
	AddressLine1 *string `json:"address_line1,omitempty"`
	Suburb       *string `json:"suburb,omitempty"`
	State        *string `json:"state,omitempty"`
	Postcode     *string `json:"postcode,omitempty"`
	Country      *string `json:"country,omitempty"`
	IsPrimary    bool    `json:"is_primary"`
}

// ServiceOffering links a provider to a service category, with an optional
// provider-specific description.
type ServiceOffering struct {
	CategorySlug string  `json:"category_slug"`
	CategoryName string  `json:"category_name"`
	Summary      *string `json:"summary,omitempty"`
	IsFeatured   bool    `json:"is_featured"`
}

// Summary is the provider card shape returned by directory searches.
type Summary struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	DisplayName string    `json:"display_name"`
	Headline    *string   `json:"headline"`
	Summary     *string   `json:"summary"`
	ServiceArea string    `json:"service_area"`
	CreatedAt   time.Time `json:"created_at"`
}

// Detail is the full public provider record.
type Detail struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	DisplayName string            `json:"display_name"`
	Headline    *string           `json:"headline"`
	Summary     *string           `json:"summary"`
	Website     *string           `json:"website"`
	PublicEmail *string           `json:"public_email"`
	PublicPhone *string           `json:"public_phone"`
	ServiceArea string            `json:"service_area"`
	Locations   []Location        `json:"locations"`
	Services    []ServiceOffering `json:"services"`
	Funding     []string          `json:"funding_options"`
	Tags        []string          `json:"tags"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// # Search Contracts

// SearchInput carries the normalized parameters of one directory search.
type SearchInput struct {
	Query  string
	Facets facet.Filter
	Page   int
	Limit  int
}

// SearchResult is one page of directory search results.
type SearchResult struct {
	Providers []Summary `json:"providers"`
	Total     int       `json:"total"`
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`

	// Definitive marks a result that must not be second-guessed by a
	// degradation tier: an empty facet intersection is a real zero, not an
	// outage. Internal signal only.
	Definitive bool `json:"-"`
}

// FacetOption is one selectable value of a directory filter facet.
type FacetOption struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// Filters is the full facet vocabulary shown on the search page.
type Filters struct {
	States     []string      `json:"states"`
	Categories []FacetOption `json:"categories"`
	Funding    []FacetOption `json:"funding"`
}

// Source is a directory data source. The postgres-backed [Service] is the
// primary implementation; the fallback resolver chains several of them.
type Source interface {
	Search(context context.Context, input SearchInput) (*SearchResult, error)
	Detail(context context.Context, slug string) (*Detail, error)
	Filters(context context.Context) (*Filters, error)
}

// # Mutation Contracts

// ListingUpdate is the set of fields a portal user may edit on a listing.
type ListingUpdate struct {
	Headline    string  `json:"headline"`
	Summary     string  `json:"summary"`
	Website     *string `json:"website"`
	PublicEmail *string `json:"public_email"`
	PublicPhone *string `json:"public_phone"`
}

// ExternalUpsert is a provider record normalized from an external place
// source, keyed by its deterministic slug.
type ExternalUpsert struct {
	Slug        string
	DisplayName string
	Headline    *string
	Summary     *string
	Website     *string
	PublicPhone *string
}

// LocationUpsert is the single primary location written by ingestion.
type LocationUpsert struct {
	Label        *string
	AddressLine1 *string
	Suburb       *string
	State        *string
	Postcode     *string
	Country      *string
}

// # Helpers

// ServiceAreaLabel renders the human-readable area of a provider from its
// best location. Providers without any usable location are shown with the
// nationwide sentinel rather than an empty string.
func ServiceAreaLabel(suburb, state *string) string {
	suburbValue := pointer.Val(suburb)
	stateValue := pointer.Val(state)

	switch {
	case suburbValue != "" && stateValue != "":
		return suburbValue + ", " + stateValue
	case suburbValue != "":
		return suburbValue
	case stateValue != "":
		return stateValue
	default:
		return constants.NoLocationLabel
	}
}
