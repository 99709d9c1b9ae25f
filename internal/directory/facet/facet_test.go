// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package facet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefinder-au/carefinder/internal/directory/facet"
)

// fakeLookup serves canned id sets and records which facets were fetched.
type fakeLookup struct {
	stateIDs    []string
	categoryIDs []string
	fundingIDs  []string

	stateErr error

	calls []string
}

func (lookup *fakeLookup) ProviderIDsByState(_ context.Context, _ []string) ([]string, error) {
	lookup.calls = append(lookup.calls, "state")
	return lookup.stateIDs, lookup.stateErr
}

func (lookup *fakeLookup) ProviderIDsByCategory(_ context.Context, _ []string) ([]string, error) {
	lookup.calls = append(lookup.calls, "category")
	return lookup.categoryIDs, nil
}

func (lookup *fakeLookup) ProviderIDsByFunding(_ context.Context, _ []string) ([]string, error) {
	lookup.calls = append(lookup.calls, "funding")
	return lookup.fundingIDs, nil
}

/*
TestEngine_Unfiltered verifies that an empty filter yields the unfiltered
sentinel without touching the lookup at all.
*/
func TestEngine_Unfiltered(t *testing.T) {
	lookup := &fakeLookup{}
	engine := facet.NewEngine(lookup)

	set, err := engine.CollectProviderIDs(context.Background(), facet.Filter{})

	require.NoError(t, err)
	assert.True(t, set.Unfiltered)
	assert.False(t, set.Empty())
	assert.Empty(t, lookup.calls)
}

/*
TestEngine_Intersection tests the AND-across-facets semantics.
*/
func TestEngine_Intersection(t *testing.T) {
	tests := []struct {
		name     string
		filter   facet.Filter
		state    []string
		category []string
		funding  []string
		want     []string
	}{
		{
			name:   "single_facet_is_baseline",
			filter: facet.Filter{States: []string{"NSW"}},
			state:  []string{"a", "b", "c"},
			want:   []string{"a", "b", "c"},
		},
		{
			name:     "two_facets_intersect",
			filter:   facet.Filter{States: []string{"NSW"}, Categories: []string{"therapy"}},
			state:    []string{"a", "b", "c"},
			category: []string{"b", "c", "d"},
			want:     []string{"b", "c"},
		},
		{
			name:     "three_facets_narrow_monotonically",
			filter:   facet.Filter{States: []string{"NSW"}, Categories: []string{"therapy"}, Funding: []string{"ndis"}},
			state:    []string{"a", "b", "c"},
			category: []string{"b", "c"},
			funding:  []string{"c"},
			want:     []string{"c"},
		},
		{
			name:   "duplicate_ids_collapse",
			filter: facet.Filter{States: []string{"NSW", "VIC"}},
			state:  []string{"a", "a", "b", ""},
			want:   []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{stateIDs: tt.state, categoryIDs: tt.category, fundingIDs: tt.funding}
			engine := facet.NewEngine(lookup)

			set, err := engine.CollectProviderIDs(context.Background(), tt.filter)

			require.NoError(t, err)
			assert.False(t, set.Unfiltered)
			assert.Equal(t, tt.want, set.IDs)
		})
	}
}

/*
TestEngine_IntersectionIsCommutative verifies facet order independence:
swapping which facet carries which id set yields the same intersection.
*/
func TestEngine_IntersectionIsCommutative(t *testing.T) {
	first := []string{"a", "b", "c"}
	second := []string{"b", "c", "d"}
	filter := facet.Filter{States: []string{"NSW"}, Categories: []string{"therapy"}}

	forward := facet.NewEngine(&fakeLookup{stateIDs: first, categoryIDs: second})
	swapped := facet.NewEngine(&fakeLookup{stateIDs: second, categoryIDs: first})

	forwardSet, err := forward.CollectProviderIDs(context.Background(), filter)
	require.NoError(t, err)

	swappedSet, err := swapped.CollectProviderIDs(context.Background(), filter)
	require.NoError(t, err)

	assert.ElementsMatch(t, forwardSet.IDs, swappedSet.IDs)
	assert.ElementsMatch(t, []string{"b", "c"}, forwardSet.IDs)
}

/*
TestEngine_EmptyIntersection_ShortCircuits verifies the definitive zero:
once the running set is empty, later facets are never fetched and the
result signals Empty.
*/
func TestEngine_EmptyIntersection_ShortCircuits(t *testing.T) {
	lookup := &fakeLookup{
		stateIDs:    []string{"a", "b"},
		categoryIDs: []string{"z"}, // disjoint
		fundingIDs:  []string{"a"},
	}
	engine := facet.NewEngine(lookup)

	filter := facet.Filter{
		States:     []string{"NSW"},
		Categories: []string{"therapy"},
		Funding:    []string{"ndis"},
	}

	set, err := engine.CollectProviderIDs(context.Background(), filter)

	require.NoError(t, err)
	assert.True(t, set.Empty())
	assert.Equal(t, []string{"state", "category"}, lookup.calls, "funding lookup must be skipped")
}

/*
TestEngine_EmptyFacetResult verifies a facet matching nothing at all yields
a definitive empty set immediately.
*/
func TestEngine_EmptyFacetResult(t *testing.T) {
	lookup := &fakeLookup{stateIDs: []string{}}
	engine := facet.NewEngine(lookup)

	set, err := engine.CollectProviderIDs(context.Background(), facet.Filter{States: []string{"NT"}})

	require.NoError(t, err)
	assert.True(t, set.Empty())
}

/*
TestEngine_LookupError verifies lookup failures surface to the caller
instead of silently widening the result.
*/
func TestEngine_LookupError(t *testing.T) {
	lookup := &fakeLookup{stateErr: errors.New("connection refused")}
	engine := facet.NewEngine(lookup)

	_, err := engine.CollectProviderIDs(context.Background(), facet.Filter{States: []string{"NSW"}})

	require.Error(t, err)
}
