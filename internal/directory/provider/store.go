package provider

import "context"

// # Storage Contracts

// Restriction narrows a directory listing query to an explicit id set.
type Restriction struct {
	// Apply distinguishes "no restriction" from "restrict to IDs".
	Apply bool
	IDs   []string
}

// Repository abstracts the persistence operations of the provider domain.
type Repository interface {

	// List returns one page of publicly eligible providers plus the total
	// count, optionally restricted to an id set and filtered by a free-text
	// query matching name or summary.
	List(context context.Context, query string, restriction Restriction, limit, offset int) ([]Summary, int, error)

	// FindBySlug returns the fully hydrated public record of an eligible
	// provider, or dberr-mapped ErrNotFound.
	FindBySlug(context context.Context, slug string) (*Detail, error)

	// FindByID returns the hydrated record regardless of publication state.
	// Portal-only: never exposed on a public path.
	FindByID(context context.Context, id string) (*Detail, error)

	// FacetOptions returns the directory filter vocabulary.
	FacetOptions(context context.Context) (*Filters, error)

	// UpdateListing persists the portal-editable fields and bumps updated_at.
	UpdateListing(context context.Context, providerID string, update ListingUpdate) error

	// UpsertExternal inserts or refreshes an externally sourced provider by
	// slug and returns its id.
	UpsertExternal(context context.Context, record ExternalUpsert) (string, error)

	// UpsertPrimaryLocation inserts or replaces the single primary location
	// of a provider.
	UpsertPrimaryLocation(context context.Context, providerID string, location LocationUpsert) error
}
