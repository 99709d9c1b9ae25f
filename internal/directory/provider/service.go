package provider

import (
	"context"
	"strings"

	"github.com/carefinder-au/carefinder/internal/directory/facet"
	"github.com/carefinder-au/carefinder/internal/platform/validate"
)

// # Search Page Bounds

const (
	// DefaultPageSize is used when the caller specifies no limit.
	DefaultPageSize = 20

	// MaxPageSize caps the page size regardless of what the caller asks for.
	MaxPageSize = 50
)

// # Service Layer

// Service is the postgres-backed primary directory source. It composes the
// facet engine with the provider store and implements [Source].
type Service struct {
	repository Repository
	facets     *facet.Engine
}

// NewService constructs the primary directory [Service].
func NewService(repository Repository, facets *facet.Engine) *Service {
	return &Service{repository: repository, facets: facets}
}

/*
Search runs a faceted directory search.

Description: Facets are resolved to a provider id set first. An empty
intersection is answered directly — zero results, no main query — and the
result is marked definitive so degradation tiers never overrule it. Page and
limit are clamped here once; every downstream layer trusts the bounds.

Parameters:
  - context: context.Context
  - input: SearchInput (raw values from the transport layer)

Returns:
  - *SearchResult: One page of provider cards plus pagination totals
  - error: Facet or store failures
*/
func (service *Service) Search(context context.Context, input SearchInput) (*SearchResult, error) {
	input = NormalizeSearchInput(input)

	ids, err := service.facets.CollectProviderIDs(context, input.Facets)
	if err != nil {
		return nil, err
	}

	if ids.Empty() {
		return &SearchResult{
			Providers:  []Summary{},
			Total:      0,
			Page:       input.Page,
			Limit:      input.Limit,
			Definitive: true,
		}, nil
	}

	restriction := Restriction{Apply: !ids.Unfiltered, IDs: ids.IDs}
	offset := (input.Page - 1) * input.Limit

	providers, total, err := service.repository.List(context, input.Query, restriction, input.Limit, offset)
	if err != nil {
		return nil, err
	}
	if providers == nil {
		providers = []Summary{}
	}

	return &SearchResult{
		Providers: providers,
		Total:     total,
		Page:      input.Page,
		Limit:     input.Limit,
	}, nil
}

/*
Detail fetches the full public record of one provider by slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Detail: The hydrated provider
  - error: ErrNotFound when no eligible provider carries the slug
*/
func (service *Service) Detail(context context.Context, slug string) (*Detail, error) {
	return service.repository.FindBySlug(context, slug)
}

// Filters returns the directory facet vocabulary.
func (service *Service) Filters(context context.Context) (*Filters, error) {
	return service.repository.FacetOptions(context)
}

// # Portal Operations

// Listing loads a provider regardless of publication state, for the portal
// account that manages it.
func (service *Service) Listing(context context.Context, providerID string) (*Detail, error) {
	return service.repository.FindByID(context, providerID)
}

/*
UpdateListing validates and persists a portal edit of a provider listing.

Description: Ownership and role checks belong to the portal service; this
method only enforces the content rules — headline and summary are required,
everything else optional — and returns the refreshed record.

Parameters:
  - context: context.Context
  - providerID: string (already authorized by the caller)
  - update: ListingUpdate

Returns:
  - *Detail: The provider after the edit
  - error: Validation or persistence errors
*/
func (service *Service) UpdateListing(context context.Context, providerID string, update ListingUpdate) (*Detail, error) {
	update.Headline = strings.TrimSpace(update.Headline)
	update.Summary = strings.TrimSpace(update.Summary)

	validator := &validate.Validator{}
	validator.Required(FieldHeadline, update.Headline).MaxLen(FieldHeadline, update.Headline, 200)
	validator.Required(FieldSummary, update.Summary).MaxLen(FieldSummary, update.Summary, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateListing(context, providerID, update); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, providerID)
}

// NormalizeSearchInput trims the query and clamps paging into the supported
// bounds. Idempotent: every [Source] implementation may apply it safely.
func NormalizeSearchInput(input SearchInput) SearchInput {
	input.Query = strings.TrimSpace(input.Query)

	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = DefaultPageSize
	}
	if input.Limit > MaxPageSize {
		input.Limit = MaxPageSize
	}

	return input
}
