// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package fallback

import (
	"context"
	"strings"

	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/places"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
	"github.com/carefinder-au/carefinder/pkg/pointer"
	"github.com/carefinder-au/carefinder/pkg/slug"
)

// PlacesSource serves the directory from the Google Places API. It is the
// live-but-unmanaged middle tier: records carry the external slug prefix and
// no funding, tag, or review data.
type PlacesSource struct {
	client *places.Client
}

// NewPlacesSource constructs a Places-backed directory source.
func NewPlacesSource(client *places.Client) *PlacesSource {
	return &PlacesSource{client: client}
}

/*
Search maps a free-text place search onto the directory result shape.

Description: The upstream query always leads with the service domain and
appends the user's text and first selected state. Category and funding
facets cannot be pushed upstream and are ignored — this tier trades
precision for availability. Pagination happens in-process over the single
upstream page.

Parameters:
  - context: context.Context
  - input: provider.SearchInput (clamped by the primary service)

Returns:
  - *provider.SearchResult: Mapped place summaries
  - error: Upstream transport or API failures
*/
func (source *PlacesSource) Search(context context.Context, input provider.SearchInput) (*provider.SearchResult, error) {
	results, err := source.client.TextSearch(context, buildPlacesQuery(input), constants.PlacesRegion)
	if err != nil {
		return nil, err
	}

	summaries := make([]provider.Summary, 0, len(results))
	for _, place := range results {
		summaries = append(summaries, mapPlaceSummary(place))
	}

	total := len(summaries)
	from := (input.Page - 1) * input.Limit
	to := from + input.Limit
	if from > total {
		from = total
	}
	if to > total {
		to = total
	}

	return &provider.SearchResult{
		Providers: summaries[from:to],
		Total:     total,
		Page:      input.Page,
		Limit:     input.Limit,
	}, nil
}

/*
Detail fetches one place and renders it as a provider record.

Parameters:
  - context: context.Context
  - providerSlug: string (external-prefixed; the prefix wraps the place id)

Returns:
  - *provider.Detail: Mapped place record, nil when the place is gone
  - error: Upstream transport or API failures
*/
func (source *PlacesSource) Detail(context context.Context, providerSlug string) (*provider.Detail, error) {
	placeID := strings.TrimPrefix(providerSlug, constants.ExternalSlugPrefix)
	if placeID == "" {
		return nil, nil
	}

	detail, err := source.client.Details(context, placeID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, nil
	}

	return mapPlaceDetail(providerSlug, detail), nil
}

// Filters is not served by this tier: the Places API has no notion of the
// directory's facet vocabulary.
func (source *PlacesSource) Filters(context context.Context) (*provider.Filters, error) {
	return nil, ErrTierUnsupported
}

// # Mapping

// buildPlacesQuery composes the upstream text query from the search input.
func buildPlacesQuery(input provider.SearchInput) string {
	parts := []string{"disability services"}

	if query := strings.TrimSpace(input.Query); query != "" {
		parts = append(parts, query)
	}
	if len(input.Facets.States) > 0 {
		parts = append(parts, input.Facets.States[0])
	}

	return strings.Join(parts, " in ")
}

// mapPlaceSummary renders a text-search row as a provider card.
func mapPlaceSummary(place places.PlaceSummary) provider.Summary {
	parsed := places.ParseAddress(nil, place.FormattedAddress)

	summary := provider.Summary{
		ID:          place.PlaceID,
		Slug:        constants.ExternalSlugPrefix + place.PlaceID,
		DisplayName: place.Name,
		ServiceArea: provider.ServiceAreaLabel(parsed.Suburb, parsed.State),
	}
	if place.FormattedAddress != "" {
		summary.Headline = pointer.To(place.FormattedAddress)
		summary.Summary = pointer.To(place.FormattedAddress)
	}

	return summary
}

// mapPlaceDetail renders a place detail as a full provider record.
func mapPlaceDetail(providerSlug string, place *places.PlaceDetail) *provider.Detail {
	parsed := places.ParseAddress(place.AddressComponents, place.FormattedAddress)

	headline := "Location on Google Maps"
	summaryText := "Imported from Google Maps"
	if place.FormattedAddress != "" {
		headline = place.FormattedAddress
		summaryText = place.FormattedAddress
	}

	locationLabel := "Primary location"
	if parsed.Suburb != nil {
		locationLabel = *parsed.Suburb + " location"
	}

	serviceNames := places.ServiceNames(place.Types)
	offerings := make([]provider.ServiceOffering, 0, len(serviceNames))
	for _, name := range serviceNames {
		offerings = append(offerings, provider.ServiceOffering{
			CategorySlug: slug.From(name),
			CategoryName: name,
		})
	}

	phone := place.FormattedPhoneNumber
	if phone == nil {
		phone = place.InternationalPhoneNumber
	}

	return &provider.Detail{
		ID:          providerSlug,
		Slug:        providerSlug,
		DisplayName: place.Name,
		Headline:    pointer.To(headline),
		Summary:     pointer.To(summaryText),
		Website:     place.Website,
		PublicPhone: phone,
		ServiceArea: provider.ServiceAreaLabel(parsed.Suburb, parsed.State),
		Locations: []provider.Location{{
			Label:     pointer.To(locationLabel),
			Suburb:    parsed.Suburb,
			State:     parsed.State,
			Postcode:  parsed.Postcode,
			Country:   parsed.Country,
			IsPrimary: true,
		}},
		Services: offerings,
		Funding:  []string{},
		Tags:     []string{},
	}
}
