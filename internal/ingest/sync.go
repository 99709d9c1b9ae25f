// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

/*
Package ingest runs the scheduled Google Places ingestion job.

The job searches a fixed list of metro queries, unions the resulting place
ids, fetches each place's detail record, and upserts it into the directory
as a published provider with a single primary location. The deterministic
slug derived from the place id makes the whole job idempotent — nightly
re-runs refresh rather than duplicate.

Failure policy: a failing place is logged and skipped; one bad record never
aborts the batch.
*/
package ingest

import (
	"context"
	"log/slog"

	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/places"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
	"github.com/carefinder-au/carefinder/pkg/pointer"
)

// metroQueries is the canonical search list, one query per capital city.
var metroQueries = []string{
	"disability services Sydney",
	"disability services Melbourne",
	"disability services Brisbane",
	"disability services Perth",
	"disability services Adelaide",
	"disability services Hobart",
	"disability services Darwin",
	"disability services Canberra",
}

// PlaceSearcher is the slice of the Places client the job consumes.
type PlaceSearcher interface {
	TextSearch(context context.Context, query, region string) ([]places.PlaceSummary, error)
	Details(context context.Context, placeID string) (*places.PlaceDetail, error)
}

// DirectoryWriter is the slice of the provider store the job consumes.
type DirectoryWriter interface {
	UpsertExternal(context context.Context, record provider.ExternalUpsert) (string, error)
	UpsertPrimaryLocation(context context.Context, providerID string, location provider.LocationUpsert) error
}

// Report is the outcome of one ingestion run.
type Report struct {
	Imported       int    `json:"imported"`
	UniquePlaceIDs int    `json:"unique_place_ids,omitempty"`
	Skipped        string `json:"skipped,omitempty"`
}

// Syncer executes the ingestion job.
type Syncer struct {
	searcher PlaceSearcher
	writer   DirectoryWriter
	logger   *slog.Logger
}

// NewSyncer constructs a [Syncer]. A nil searcher marks the job unconfigured;
// runs then report skipped instead of failing.
func NewSyncer(searcher PlaceSearcher, writer DirectoryWriter, logger *slog.Logger) *Syncer {
	return &Syncer{searcher: searcher, writer: writer, logger: logger}
}

/*
Run executes one full ingestion pass.

Description: Searches every metro query, unions the place ids (a place
appearing in several metros is fetched once), then imports each place.
Failures at any per-place step are logged and skipped. The place-id set is
collected completely before any import starts, so a mid-run search failure
cannot interleave with writes.

Parameters:
  - context: context.Context

Returns:
  - *Report: imported count plus unique place-id count, or a skip reason
  - error: Never for per-place failures; reserved for context cancellation
*/
func (syncer *Syncer) Run(context context.Context) (*Report, error) {
	if syncer.searcher == nil {
		syncer.logger.WarnContext(context, "places_sync_skipped_no_key")
		return &Report{Imported: 0, Skipped: "missing GOOGLE_MAPS_API_KEY"}, nil
	}

	placeIDs := syncer.collectPlaceIDs(context)

	imported := 0
	for _, placeID := range placeIDs {
		if err := context.Err(); err != nil {
			return nil, err
		}

		if syncer.importPlace(context, placeID) {
			imported++
		}
	}

	syncer.logger.InfoContext(context, "places_sync_completed",
		slog.Int("imported", imported),
		slog.Int("unique_place_ids", len(placeIDs)),
	)

	return &Report{Imported: imported, UniquePlaceIDs: len(placeIDs)}, nil
}

// collectPlaceIDs unions the ids of every metro search, preserving
// first-seen order. A failing query contributes nothing.
func (syncer *Syncer) collectPlaceIDs(context context.Context) []string {
	seen := make(map[string]struct{})
	var placeIDs []string

	for _, query := range metroQueries {
		results, err := syncer.searcher.TextSearch(context, query, constants.PlacesRegion)
		if err != nil {
			syncer.logger.WarnContext(context, "places_sync_search_failed",
				slog.String("query", query),
				slog.String("error", err.Error()),
			)
			continue
		}

		for _, place := range results {
			if _, duplicate := seen[place.PlaceID]; duplicate {
				continue
			}
			seen[place.PlaceID] = struct{}{}
			placeIDs = append(placeIDs, place.PlaceID)
		}
	}

	return placeIDs
}

// importPlace fetches one place and writes the provider plus its primary
// location. Reports whether the place counted as imported.
func (syncer *Syncer) importPlace(context context.Context, placeID string) bool {
	detail, err := syncer.searcher.Details(context, placeID)
	if err != nil || detail == nil {
		syncer.logger.WarnContext(context, "places_sync_detail_failed",
			slog.String("place_id", placeID),
		)
		return false
	}

	parsed := places.ParseAddress(detail.AddressComponents, detail.FormattedAddress)

	record := provider.ExternalUpsert{
		Slug:        constants.ExternalSlugPrefix + placeID,
		DisplayName: detail.Name,
		Website:     detail.Website,
		PublicPhone: detail.FormattedPhoneNumber,
	}
	if record.PublicPhone == nil {
		record.PublicPhone = detail.InternationalPhoneNumber
	}
	if detail.FormattedAddress != "" {
		record.Headline = pointer.To(detail.FormattedAddress)
		record.Summary = pointer.To(detail.FormattedAddress)
	}

	providerID, err := syncer.writer.UpsertExternal(context, record)
	if err != nil {
		syncer.logger.WarnContext(context, "places_sync_provider_upsert_failed",
			slog.String("place_id", placeID),
			slog.String("error", err.Error()),
		)
		return false
	}

	locationLabel := "Primary location"
	if parsed.Suburb != nil {
		locationLabel = *parsed.Suburb + " location"
	}

	location := provider.LocationUpsert{
		Label:    pointer.To(locationLabel),
		Suburb:   parsed.Suburb,
		State:    parsed.State,
		Postcode: parsed.Postcode,
		Country:  parsed.Country,
	}
	if detail.FormattedAddress != "" {
		location.AddressLine1 = pointer.To(detail.FormattedAddress)
	}

	if err := syncer.writer.UpsertPrimaryLocation(context, providerID, location); err != nil {
		syncer.logger.WarnContext(context, "places_sync_location_upsert_failed",
			slog.String("place_id", placeID),
			slog.String("error", err.Error()),
		)
		return false
	}

	return true
}
