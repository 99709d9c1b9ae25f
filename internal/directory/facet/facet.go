// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

/*
Package facet computes the set of provider identifiers matching a
combination of independent directory filters.

Semantics:

  - Logical AND across facets (state ∧ category ∧ funding).
  - Logical OR within a facet (state ∈ {NSW, VIC}).
  - Unspecified facets do not narrow the result at all.

The engine distinguishes "no facets specified" (an unfiltered search) from
"facets specified but nothing matched" (a definitive zero-result signal the
search service must honor without querying the main store).
*/
package facet

import "context"

// Filter holds the facet selections of a directory search.
type Filter struct {
	States     []string
	Categories []string
	Funding    []string
}

// IsZero reports whether no facet is specified at all.
func (filter Filter) IsZero() bool {
	return len(filter.States) == 0 && len(filter.Categories) == 0 && len(filter.Funding) == 0
}

// IDSet is the outcome of a facet intersection.
type IDSet struct {
	// Unfiltered marks that no facet was specified: the caller must apply
	// no identifier restriction. Distinct from an empty intersection.
	Unfiltered bool

	// IDs is the intersected provider identifier set. Meaningful only when
	// Unfiltered is false.
	IDs []string
}

// Empty reports whether the set is a definitive zero-result signal.
func (set IDSet) Empty() bool {
	return !set.Unfiltered && len(set.IDs) == 0
}

// Lookup fetches the provider ids matching any value within one facet.
type Lookup interface {

	// ProviderIDsByState returns ids of providers with a location in any of
	// the given (uppercased) state codes.
	ProviderIDsByState(context context.Context, states []string) ([]string, error)

	// ProviderIDsByCategory returns ids of providers linked to any of the
	// given service-category slugs.
	ProviderIDsByCategory(context context.Context, slugs []string) ([]string, error)

	// ProviderIDsByFunding returns ids of providers linked to any of the
	// given funding-type slugs.
	ProviderIDsByFunding(context context.Context, slugs []string) ([]string, error)
}

// Engine progressively intersects per-facet identifier sets.
type Engine struct {
	lookup Lookup
}

// facetFetch pairs one facet's selected values with its lookup call.
type facetFetch struct {
	values []string
	fetch  func(context.Context, []string) ([]string, error)
}

// NewEngine constructs a facet [Engine].
func NewEngine(lookup Lookup) *Engine {
	return &Engine{lookup: lookup}
}

/*
CollectProviderIDs resolves the filter into a provider [IDSet].

Description: Each non-empty facet is fetched and intersected with the running
result. Intersection is commutative and monotonic: facet order never changes
the outcome, and adding a facet never grows the set. An intersection that
becomes empty short-circuits the remaining lookups — the result cannot grow
back.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - IDSet: Unfiltered sentinel, or the intersected id set
  - error: Lookup failures (callers treat the whole facet pass as failed)
*/
func (engine *Engine) CollectProviderIDs(context context.Context, filter Filter) (IDSet, error) {
	if filter.IsZero() {
		return IDSet{Unfiltered: true}, nil
	}

	var (
		running    []string
		restricted bool
	)

	facets := []facetFetch{
		{filter.States, engine.lookup.ProviderIDsByState},
		{filter.Categories, engine.lookup.ProviderIDsByCategory},
		{filter.Funding, engine.lookup.ProviderIDsByFunding},
	}

	for _, facet := range facets {
		if len(facet.values) == 0 {
			continue
		}

		ids, err := facet.fetch(context, facet.values)
		if err != nil {
			return IDSet{}, err
		}

		running = intersect(running, unique(ids), restricted)
		restricted = true

		if len(running) == 0 {
			// Definitive zero-result: no later facet can widen it.
			return IDSet{IDs: []string{}}, nil
		}
	}

	return IDSet{IDs: running}, nil
}

// intersect narrows current by next. Before any facet has applied
// (restricted=false) the next set becomes the baseline.
func intersect(current, next []string, restricted bool) []string {
	if !restricted {
		return next
	}

	nextSet := make(map[string]struct{}, len(next))
	for _, id := range next {
		nextSet[id] = struct{}{}
	}

	result := make([]string, 0, len(current))
	for _, id := range current {
		if _, ok := nextSet[id]; ok {
			result = append(result, id)
		}
	}

	return result
}

// unique removes duplicates while preserving first-seen order.
func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, duplicate := seen[id]; duplicate || id == "" {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
