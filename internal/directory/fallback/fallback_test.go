// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package fallback_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefinder-au/carefinder/internal/directory/fallback"
	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/platform/apperr"
)

// fakeSource is a scriptable directory tier.
type fakeSource struct {
	searchResult *provider.SearchResult
	searchErr    error

	detail    *provider.Detail
	detailErr error

	filters    *provider.Filters
	filtersErr error

	searchCalls int
	detailCalls int
}

func (source *fakeSource) Search(_ context.Context, _ provider.SearchInput) (*provider.SearchResult, error) {
	source.searchCalls++
	return source.searchResult, source.searchErr
}

func (source *fakeSource) Detail(_ context.Context, _ string) (*provider.Detail, error) {
	source.detailCalls++
	return source.detail, source.detailErr
}

func (source *fakeSource) Filters(_ context.Context) (*provider.Filters, error) {
	return source.filters, source.filtersErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func emptyPage() *provider.SearchResult {
	return &provider.SearchResult{Providers: []provider.Summary{}, Page: 1, Limit: 20}
}

func pageWith(names ...string) *provider.SearchResult {
	result := emptyPage()
	for _, name := range names {
		result.Providers = append(result.Providers, provider.Summary{DisplayName: name})
	}
	result.Total = len(names)
	return result
}

/*
TestResolver_Search_FallsThroughOnError verifies a failing tier degrades to
the next one instead of surfacing the error.
*/
func TestResolver_Search_FallsThroughOnError(t *testing.T) {
	broken := &fakeSource{searchErr: errors.New("connection refused")}
	healthy := &fakeSource{searchResult: pageWith("Aurora Support Collective")}

	resolver := fallback.NewResolver(discardLogger())
	resolver.AddPrimary("postgres", broken)
	resolver.Add("static", healthy)

	result, err := resolver.Search(context.Background(), provider.SearchInput{})

	require.NoError(t, err)
	require.Len(t, result.Providers, 1)
	assert.Equal(t, "Aurora Support Collective", result.Providers[0].DisplayName)
}

/*
TestResolver_Search_EmptyFallsThrough verifies a tier answering zero rows
(non-definitive) still consults the next tier.
*/
func TestResolver_Search_EmptyFallsThrough(t *testing.T) {
	empty := &fakeSource{searchResult: emptyPage()}
	next := &fakeSource{searchResult: pageWith("Coastal Care Partners")}

	resolver := fallback.NewResolver(discardLogger())
	resolver.AddPrimary("postgres", empty)
	resolver.Add("static", next)

	result, err := resolver.Search(context.Background(), provider.SearchInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, next.searchCalls)
}

/*
TestResolver_Search_DefinitiveStopsCascade verifies a definitive zero from
the primary tier is final: sample data must not paper over a real empty
filter intersection.
*/
func TestResolver_Search_DefinitiveStopsCascade(t *testing.T) {
	definitive := emptyPage()
	definitive.Definitive = true

	primary := &fakeSource{searchResult: definitive}
	sample := &fakeSource{searchResult: pageWith("Planwise Managers")}

	resolver := fallback.NewResolver(discardLogger())
	resolver.AddPrimary("postgres", primary)
	resolver.Add("static", sample)

	result, err := resolver.Search(context.Background(), provider.SearchInput{})

	require.NoError(t, err)
	assert.Empty(t, result.Providers)
	assert.Zero(t, sample.searchCalls, "later tiers must not run")
}

/*
TestResolver_Search_AllEmpty returns the last empty page rather than an
error when every tier legitimately has nothing.
*/
func TestResolver_Search_AllEmpty(t *testing.T) {
	resolver := fallback.NewResolver(discardLogger())
	resolver.AddPrimary("postgres", &fakeSource{searchResult: emptyPage()})
	resolver.Add("static", &fakeSource{searchResult: emptyPage()})

	result, err := resolver.Search(context.Background(), provider.SearchInput{})

	require.NoError(t, err)
	assert.Empty(t, result.Providers)
}

/*
TestResolver_Search_AllFailed surfaces the last error only when no tier
produced any result at all.
*/
func TestResolver_Search_AllFailed(t *testing.T) {
	resolver := fallback.NewResolver(discardLogger())
	resolver.AddPrimary("postgres", &fakeSource{searchErr: errors.New("down")})
	resolver.Add("places", &fakeSource{searchErr: errors.New("quota")})

	_, err := resolver.Search(context.Background(), provider.SearchInput{})

	require.Error(t, err)
	assert.EqualError(t, err, "quota")
}

/*
TestResolver_Detail_ExternalSlugSkipsPrimary verifies detail lookups for
externally sourced slugs never touch the store-backed tier.
*/
func TestResolver_Detail_ExternalSlugSkipsPrimary(t *testing.T) {
	primary := &fakeSource{detail: &provider.Detail{Slug: "should-not-be-seen"}}
	upstream := &fakeSource{detail: &provider.Detail{Slug: "google-abc123"}}

	resolver := fallback.NewResolver(discardLogger())
	resolver.AddPrimary("postgres", primary)
	resolver.Add("places", upstream)

	detail, err := resolver.Detail(context.Background(), "google-abc123")

	require.NoError(t, err)
	assert.Equal(t, "google-abc123", detail.Slug)
	assert.Zero(t, primary.detailCalls)
}

/*
TestResolver_Detail_MissFallsThrough verifies an ordinary not-found from
one tier falls through, and a miss on every tier is a clean 404.
*/
func TestResolver_Detail_MissFallsThrough(t *testing.T) {
	missing := &fakeSource{detailErr: apperr.NotFound("Provider")}
	found := &fakeSource{detail: &provider.Detail{Slug: "sample-provider-1"}}

	resolver := fallback.NewResolver(discardLogger())
	resolver.AddPrimary("postgres", missing)
	resolver.Add("static", found)

	detail, err := resolver.Detail(context.Background(), "sample-provider-1")
	require.NoError(t, err)
	assert.Equal(t, "sample-provider-1", detail.Slug)

	// Every tier misses.
	allMiss := fallback.NewResolver(discardLogger())
	allMiss.AddPrimary("postgres", &fakeSource{detailErr: apperr.NotFound("Provider")})
	allMiss.Add("places", &fakeSource{detail: nil})

	_, err = allMiss.Detail(context.Background(), "nope")
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestResolver_Filters_SkipsUnsupportedTier verifies tiers that serve no
filter vocabulary are skipped silently.
*/
func TestResolver_Filters_SkipsUnsupportedTier(t *testing.T) {
	unsupported := &fakeSource{filtersErr: fallback.ErrTierUnsupported}
	vocab := &fakeSource{filters: &provider.Filters{States: []string{"NSW", "VIC"}}}

	resolver := fallback.NewResolver(discardLogger())
	resolver.AddPrimary("postgres", &fakeSource{filtersErr: errors.New("down")})
	resolver.Add("places", unsupported)
	resolver.Add("static", vocab)

	filters, err := resolver.Filters(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"NSW", "VIC"}, filters.States)
}

/*
TestStaticSource_PageConcatenationIsStable verifies walking the dataset page
by page reproduces the single-fetch sequence with no duplicates or gaps, and
that a page past the end returns empty rows while keeping the total.
*/
func TestStaticSource_PageConcatenationIsStable(t *testing.T) {
	static := fallback.NewStaticSource()

	full, err := static.Search(context.Background(), provider.SearchInput{Page: 1, Limit: 50})
	require.NoError(t, err)
	require.NotEmpty(t, full.Providers)

	expected := make([]string, 0, len(full.Providers))
	for _, summary := range full.Providers {
		expected = append(expected, summary.Slug)
	}

	limit := 2
	pages := (full.Total + limit - 1) / limit

	var walked []string
	for page := 1; page <= pages; page++ {
		result, err := static.Search(context.Background(), provider.SearchInput{Page: page, Limit: limit})
		require.NoError(t, err)
		assert.Equal(t, full.Total, result.Total)

		for _, summary := range result.Providers {
			walked = append(walked, summary.Slug)
		}
	}

	assert.Equal(t, expected, walked)

	// One page past the end: no rows, total intact.
	past, err := static.Search(context.Background(), provider.SearchInput{Page: pages + 1, Limit: limit})
	require.NoError(t, err)
	assert.Empty(t, past.Providers)
	assert.Equal(t, full.Total, past.Total)
}

/*
TestStaticSource_IsTerminal verifies the in-process dataset always answers:
unfiltered searches return rows and known slugs resolve.
*/
func TestStaticSource_IsTerminal(t *testing.T) {
	static := fallback.NewStaticSource()

	result, err := static.Search(context.Background(), provider.SearchInput{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Providers)

	detail, err := static.Detail(context.Background(), result.Providers[0].Slug)
	require.NoError(t, err)
	assert.Equal(t, result.Providers[0].Slug, detail.Slug)

	filters, err := static.Filters(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, filters.States)
	assert.NotEmpty(t, filters.Categories)
}
