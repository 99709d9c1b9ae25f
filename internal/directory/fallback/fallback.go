// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

/*
Package fallback chains directory sources into a degradation cascade.

The public directory must keep answering when its backing store is down.
Sources are consulted in registration order; a tier that errors (or misses)
is logged and skipped, and the terminal tier is an in-process dataset that
cannot fail. The resolver therefore always produces an answer for searches
and filters, and a clean 404 for detail lookups that every tier misses.

One result is never second-guessed: a search marked definitive (an empty
facet intersection) stops the cascade immediately — a real zero from the
primary store must not be papered over with sample data.
*/
package fallback

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
)

// ErrTierUnsupported marks an operation a tier does not serve at all.
// The resolver skips such tiers silently instead of logging a degradation.
var ErrTierUnsupported = errors.New("fallback: operation not supported by this tier")

// tier is one registered directory source.
type tier struct {
	name   string
	source provider.Source

	// primary tiers are skipped for detail slugs carrying the external
	// prefix: those records exist only upstream.
	primary bool
}

// Resolver implements [provider.Source] over an ordered tier list.
type Resolver struct {
	tiers  []tier
	logger *slog.Logger
}

// NewResolver constructs an empty [Resolver].
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// AddPrimary registers a store-backed tier.
func (resolver *Resolver) AddPrimary(name string, source provider.Source) {
	resolver.tiers = append(resolver.tiers, tier{name: name, source: source, primary: true})
}

// Add registers a degradation tier.
func (resolver *Resolver) Add(name string, source provider.Source) {
	resolver.tiers = append(resolver.tiers, tier{name: name, source: source})
}

// # Source Implementation

/*
Search consults each tier until one produces a usable result.

Description: A tier error or an empty (non-definitive) result falls through
to the next tier. A definitive result — or any tier returning rows — ends the
cascade. When every tier comes back empty the last result is returned as-is;
when every tier errors the last error surfaces.

Parameters:
  - context: context.Context
  - input: provider.SearchInput

Returns:
  - *provider.SearchResult: The first usable page
  - error: Only when all tiers failed
*/
func (resolver *Resolver) Search(context context.Context, input provider.SearchInput) (*provider.SearchResult, error) {
	input = provider.NormalizeSearchInput(input)

	var (
		lastResult *provider.SearchResult
		lastErr    error
	)

	for _, tier := range resolver.tiers {
		result, err := tier.source.Search(context, input)
		if err != nil {
			resolver.degrade(context, tier.name, "search", err)
			lastErr = err
			continue
		}

		if result.Definitive || len(result.Providers) > 0 {
			return result, nil
		}
		lastResult = result
	}

	if lastResult != nil {
		return lastResult, nil
	}
	return nil, lastErr
}

/*
Detail resolves a provider detail page across the tiers.

Description: Slugs carrying the external prefix identify records that only
exist upstream; store-backed tiers are skipped for them. Tier errors and
misses both fall through. A miss on every tier is a plain 404.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *provider.Detail: The first hit
  - error: apperr NOT_FOUND when every tier misses
*/
func (resolver *Resolver) Detail(context context.Context, slug string) (*provider.Detail, error) {
	external := strings.HasPrefix(slug, constants.ExternalSlugPrefix)

	for _, tier := range resolver.tiers {
		if external && tier.primary {
			continue
		}

		detail, err := tier.source.Detail(context, slug)
		if err != nil {
			if !isMiss(err) {
				resolver.degrade(context, tier.name, "detail", err)
			}
			continue
		}
		if detail != nil {
			return detail, nil
		}
	}

	return nil, apperr.NotFound("Provider")
}

// Filters returns the facet vocabulary from the first tier that serves one.
func (resolver *Resolver) Filters(context context.Context) (*provider.Filters, error) {
	var lastErr error

	for _, tier := range resolver.tiers {
		filters, err := tier.source.Filters(context)
		if err != nil {
			if !errors.Is(err, ErrTierUnsupported) {
				resolver.degrade(context, tier.name, "filters", err)
				lastErr = err
			}
			continue
		}
		return filters, nil
	}

	return nil, lastErr
}

// degrade logs a tier failure at warning level; degradation is expected
// behavior, not an incident.
func (resolver *Resolver) degrade(context context.Context, tierName, operation string, err error) {
	resolver.logger.WarnContext(context, "directory_tier_degraded",
		slog.String("tier", tierName),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// isMiss reports whether the error is an ordinary not-found.
func isMiss(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Code == "NOT_FOUND"
}
