// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package fallback

import (
	"context"
	"strings"

	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
	"github.com/carefinder-au/carefinder/pkg/pointer"
	"github.com/carefinder-au/carefinder/pkg/slice"
)

// StaticSource is the terminal directory tier: a small in-process sample
// dataset. Every operation succeeds, so the cascade always terminates.
//
// It also backs the "static" data backend for demos and local development.
type StaticSource struct {
	providers []staticProvider
	filters   provider.Filters
}

// staticProvider is the internal sample record; it is projected into the
// public shapes on demand.
type staticProvider struct {
	id          string
	slug        string
	displayName string
	headline    string
	summary     string
	state       string
	suburb      string
	website     string
	email       string
	phone       string
	tags        []string
	funding     []string
	services    []provider.ServiceOffering
	locations   []provider.Location
}

// NewStaticSource constructs the sample-data source.
func NewStaticSource() *StaticSource {
	return &StaticSource{providers: sampleProviders(), filters: sampleFilters()}
}

/*
Search filters the sample dataset with the directory's facet semantics.

Description: Free text matches name or summary case-insensitively. States
match the provider's primary state, funding matches any accepted option, and
categories match any offered service by loose name containment. Never errors.

Parameters:
  - context: context.Context
  - input: provider.SearchInput (clamped by the primary service)

Returns:
  - *provider.SearchResult: One page of matching sample providers
  - error: Always nil
*/
func (source *StaticSource) Search(context context.Context, input provider.SearchInput) (*provider.SearchResult, error) {
	query := strings.ToLower(strings.TrimSpace(input.Query))

	matched := slice.Filter(source.providers, func(candidate staticProvider) bool {
		return candidate.matchesQuery(query) &&
			candidate.matchesStates(input.Facets.States) &&
			candidate.matchesFunding(input.Facets.Funding) &&
			candidate.matchesCategories(input.Facets.Categories)
	})

	total := len(matched)
	from := (input.Page - 1) * input.Limit
	to := from + input.Limit
	if from > total {
		from = total
	}
	if to > total {
		to = total
	}

	return &provider.SearchResult{
		Providers: slice.Map(matched[from:to], staticProvider.summaryView),
		Total:     total,
		Page:      input.Page,
		Limit:     input.Limit,
	}, nil
}

// Detail returns the sample provider carrying the slug, or nil on a miss.
func (source *StaticSource) Detail(context context.Context, providerSlug string) (*provider.Detail, error) {
	for _, candidate := range source.providers {
		if candidate.slug == providerSlug {
			return candidate.detailView(), nil
		}
	}
	return nil, nil
}

// Filters returns the fixed sample facet vocabulary.
func (source *StaticSource) Filters(context context.Context) (*provider.Filters, error) {
	filters := source.filters
	return &filters, nil
}

// # Match Rules

func (candidate staticProvider) matchesQuery(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(candidate.displayName), query) ||
		strings.Contains(strings.ToLower(candidate.summary), query)
}

func (candidate staticProvider) matchesStates(states []string) bool {
	if len(states) == 0 {
		return true
	}
	for _, state := range states {
		if strings.EqualFold(state, candidate.state) {
			return true
		}
	}
	return false
}

func (candidate staticProvider) matchesFunding(funding []string) bool {
	if len(funding) == 0 {
		return true
	}
	for _, wanted := range funding {
		for _, accepted := range candidate.funding {
			if strings.EqualFold(wanted, accepted) || strings.EqualFold(strings.ReplaceAll(wanted, "-", " "), accepted) {
				return true
			}
		}
	}
	return false
}

func (candidate staticProvider) matchesCategories(categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, category := range categories {
		// Facet slugs arrive hyphenated; service names are free text.
		needle := strings.ToLower(strings.ReplaceAll(category, "-", " "))
		for _, offering := range candidate.services {
			if strings.Contains(strings.ToLower(offering.CategoryName), needle) {
				return true
			}
		}
	}
	return false
}

// # Projections

func (candidate staticProvider) summaryView() provider.Summary {
	return provider.Summary{
		ID:          candidate.id,
		Slug:        candidate.slug,
		DisplayName: candidate.displayName,
		Headline:    pointer.To(candidate.headline),
		Summary:     pointer.To(candidate.summary),
		ServiceArea: provider.ServiceAreaLabel(pointer.To(candidate.suburb), pointer.To(candidate.state)),
	}
}

func (candidate staticProvider) detailView() *provider.Detail {
	return &provider.Detail{
		ID:          candidate.id,
		Slug:        candidate.slug,
		DisplayName: candidate.displayName,
		Headline:    pointer.To(candidate.headline),
		Summary:     pointer.To(candidate.summary),
		Website:     pointer.To(candidate.website),
		PublicEmail: pointer.To(candidate.email),
		PublicPhone: pointer.To(candidate.phone),
		ServiceArea: provider.ServiceAreaLabel(pointer.To(candidate.suburb), pointer.To(candidate.state)),
		Locations:   candidate.locations,
		Services:    candidate.services,
		Funding:     candidate.funding,
		Tags:        candidate.tags,
	}
}

// # Sample Dataset

func sampleProviders() []staticProvider {
	return []staticProvider{
		{
			id:          "sample-provider-1",
			slug:        "sample-provider-aurora-support",
			displayName: "Aurora Support Collective",
			headline:    "Holistic allied health + support coordination across VIC",
			summary:     "Aurora delivers person-led therapy, coordination, and supported independent living programs focused on meaningful community participation.",
			state:       "VIC",
			suburb:      "Melbourne",
			website:     "https://aurora-support.example.com.au",
			email:       "hello@aurorasupport.com.au",
			phone:       "1300 555 210",
			tags:        []string{"NDIS registered", "Multilingual team", "Community specialists"},
			funding:     []string{"NDIS", "Private"},
			services: []provider.ServiceOffering{
				{
					CategorySlug: "therapy-allied",
					CategoryName: "Therapy & Allied Health",
					Summary:      pointer.To("OT, speech, and behaviour support provided in-home or online."),
				},
				{
					CategorySlug: "support-coordination",
					CategoryName: "Support Coordination",
					Summary:      pointer.To("Level 2 coordination to help you action and review your plan."),
				},
			},
			locations: []provider.Location{
				{ID: "sample-location-1a", Label: pointer.To("Melbourne HQ"), Suburb: pointer.To("Melbourne"), State: pointer.To("VIC"), Country: pointer.To(constants.DefaultCountry), IsPrimary: true},
				{ID: "sample-location-1b", Label: pointer.To("Geelong Clinic"), Suburb: pointer.To("Geelong"), State: pointer.To("VIC"), Country: pointer.To(constants.DefaultCountry)},
			},
		},
		{
			id:          "sample-provider-2",
			slug:        "sample-provider-coastal-care",
			displayName: "Coastal Care Partners",
			headline:    "Community access + SDA partners for NSW and QLD participants",
			summary:     "Regional-first workforce delivering travel training, short-term accommodation, and SIL partnerships with rigorous safeguarding.",
			state:       "NSW",
			suburb:      "Newcastle",
			website:     "https://coastalcare.example.com.au",
			email:       "enquiries@coastalcare.com.au",
			phone:       "1300 888 032",
			tags:        []string{"Regional outreach", "SDA partners", "24/7 support"},
			funding:     []string{"NDIS", "My Aged Care"},
			services: []provider.ServiceOffering{
				{
					CategorySlug: "supported-independent-living",
					CategoryName: "Supported Independent Living",
					Summary:      pointer.To("Rostered teams supporting SDA residents with community links."),
				},
				{
					CategorySlug: "community-access",
					CategoryName: "Community Access",
					Summary:      pointer.To("Travel training, day programs, and tailored social participation."),
				},
			},
			locations: []provider.Location{
				{ID: "sample-location-2a", Label: pointer.To("Newcastle Hub"), Suburb: pointer.To("Newcastle"), State: pointer.To("NSW"), Country: pointer.To(constants.DefaultCountry), IsPrimary: true},
				{ID: "sample-location-2b", Label: pointer.To("Gold Coast Hub"), Suburb: pointer.To("Southport"), State: pointer.To("QLD"), Country: pointer.To(constants.DefaultCountry)},
			},
		},
		{
			id:          "sample-provider-3",
			slug:        "sample-provider-planwise",
			displayName: "Planwise Managers",
			headline:    "Fast plan management with real-time claim visibility",
			summary:     "Sydney-based credentialed accountants processing NDIS claims within 2 business days, with multilingual liaisons.",
			state:       "NSW",
			suburb:      "Sydney",
			website:     "https://planwise.example.com.au",
			email:       "support@planwise.com.au",
			phone:       "02 9555 1000",
			tags:        []string{"Plan management", "Multilingual team", "Audit ready"},
			funding:     []string{"NDIS"},
			services: []provider.ServiceOffering{
				{
					CategorySlug: "plan-management",
					CategoryName: "Plan Management",
					Summary:      pointer.To("Claim processing, budget dashboards, and provider compliance."),
				},
			},
			locations: []provider.Location{
				{ID: "sample-location-3a", Label: pointer.To("Sydney Office"), Suburb: pointer.To("CBD"), State: pointer.To("NSW"), Country: pointer.To(constants.DefaultCountry), IsPrimary: true},
			},
		},
	}
}

func sampleFilters() provider.Filters {
	return provider.Filters{
		States: []string{"NSW", "QLD", "VIC"},
		Categories: []provider.FacetOption{
			{Slug: "therapy-allied", Label: "Therapy & Allied Health"},
			{Slug: "community-access", Label: "Community Access"},
			{Slug: "support-coordination", Label: "Support Coordination"},
			{Slug: "supported-independent-living", Label: "Supported Independent Living"},
			{Slug: "plan-management", Label: "Plan Management"},
		},
		Funding: []provider.FacetOption{
			{Slug: "ndis", Label: "NDIS"},
			{Slug: "private", Label: "Private"},
			{Slug: "my-aged-care", Label: "My Aged Care"},
		},
	}
}
