// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefinder-au/carefinder/internal/directory/facet"
	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/platform/apperr"
)

// fakeRepository records the listing query it receives.
type fakeRepository struct {
	provider.Repository

	listCalled  bool
	gotQuery    string
	gotLimit    int
	gotOffset   int
	restriction provider.Restriction

	providers []provider.Summary
	total     int
}

func (repo *fakeRepository) List(_ context.Context, query string, restriction provider.Restriction, limit, offset int) ([]provider.Summary, int, error) {
	repo.listCalled = true
	repo.gotQuery = query
	repo.restriction = restriction
	repo.gotLimit = limit
	repo.gotOffset = offset
	return repo.providers, repo.total, nil
}

// passLookup returns the same id set for every facet.
type passLookup struct {
	ids []string
}

func (lookup passLookup) ProviderIDsByState(_ context.Context, _ []string) ([]string, error) {
	return lookup.ids, nil
}

func (lookup passLookup) ProviderIDsByCategory(_ context.Context, _ []string) ([]string, error) {
	return lookup.ids, nil
}

func (lookup passLookup) ProviderIDsByFunding(_ context.Context, _ []string) ([]string, error) {
	return lookup.ids, nil
}

/*
TestService_Search_PagingBounds checks the page and limit clamps against the
values the store actually receives.
*/
func TestService_Search_PagingBounds(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 20, 0},
		{"negative_page", -3, 10, 10, 0},
		{"limit_over_cap", 1, 200, 50, 0},
		{"second_page", 2, 25, 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := provider.NewService(repo, facet.NewEngine(passLookup{}))

			result, err := service.Search(context.Background(), provider.SearchInput{
				Query: "  support  ",
				Page:  tt.page,
				Limit: tt.limit,
			})

			require.NoError(t, err)
			assert.True(t, repo.listCalled)
			assert.Equal(t, "support", repo.gotQuery)
			assert.Equal(t, tt.wantLimit, repo.gotLimit)
			assert.Equal(t, tt.wantOffset, repo.gotOffset)
			assert.Equal(t, tt.wantLimit, result.Limit)
			assert.False(t, repo.restriction.Apply, "no facets means no id restriction")
		})
	}
}

/*
TestService_Search_FacetRestriction verifies the facet id set reaches the
store as an applied restriction.
*/
func TestService_Search_FacetRestriction(t *testing.T) {
	repo := &fakeRepository{}
	service := provider.NewService(repo, facet.NewEngine(passLookup{ids: []string{"p1", "p2"}}))

	_, err := service.Search(context.Background(), provider.SearchInput{
		Facets: facet.Filter{States: []string{"NSW"}},
	})

	require.NoError(t, err)
	assert.True(t, repo.restriction.Apply)
	assert.Equal(t, []string{"p1", "p2"}, repo.restriction.IDs)
}

/*
TestService_Search_DefinitiveZero verifies an empty facet intersection is
answered without querying the store, and is flagged so no degradation tier
overrides it.
*/
func TestService_Search_DefinitiveZero(t *testing.T) {
	repo := &fakeRepository{}
	service := provider.NewService(repo, facet.NewEngine(passLookup{ids: []string{}}))

	result, err := service.Search(context.Background(), provider.SearchInput{
		Facets: facet.Filter{States: []string{"NT"}},
		Page:   3,
		Limit:  10,
	})

	require.NoError(t, err)
	assert.False(t, repo.listCalled, "store must not be queried")
	assert.True(t, result.Definitive)
	assert.Zero(t, result.Total)
	assert.NotNil(t, result.Providers)
	assert.Empty(t, result.Providers)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 10, result.Limit)
}

/*
TestService_UpdateListing_Validation covers the content rules of a portal
listing edit.
*/
func TestService_UpdateListing_Validation(t *testing.T) {
	tests := []struct {
		name     string
		update   provider.ListingUpdate
		badField string
	}{
		{"missing_headline", provider.ListingUpdate{Summary: "Summary text"}, "headline"},
		{"missing_summary", provider.ListingUpdate{Headline: "Headline"}, "summary"},
		{"blank_headline", provider.ListingUpdate{Headline: "   ", Summary: "Summary text"}, "headline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := provider.NewService(&fakeRepository{}, facet.NewEngine(passLookup{}))

			_, err := service.UpdateListing(context.Background(), "p1", tt.update)

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			assert.Equal(t, tt.badField, appError.Details[0].Field)
		})
	}
}

/*
TestServiceAreaLabel checks the location label rendering incl. the
no-location sentinel.
*/
func TestServiceAreaLabel(t *testing.T) {
	suburb := "Newcastle"
	state := "NSW"

	assert.Equal(t, "Newcastle, NSW", provider.ServiceAreaLabel(&suburb, &state))
	assert.Equal(t, "Newcastle", provider.ServiceAreaLabel(&suburb, nil))
	assert.Equal(t, "NSW", provider.ServiceAreaLabel(nil, &state))
	assert.Equal(t, "Across Australia", provider.ServiceAreaLabel(nil, nil))
}
