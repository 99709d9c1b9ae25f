/*
Package provider implements the public directory of disability-service providers.

The PostgreSQL store is the primary directory tier. Its public queries apply
the eligibility rule (published AND active) in SQL so that draft, archived,
or deactivated listings can never leak through any read path.

Performance notes:

  - Window Functions: COUNT(*) OVER() returns the total match count without a
    second query.
  - Lateral Join: the search page resolves each provider's display area from
    its best location in the same round-trip.
  - Partial Indexes: the search ORDER BY walks idx_providers_public directly.
*/
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
	"github.com/carefinder-au/carefinder/internal/platform/database/schema"
	"github.com/carefinder-au/carefinder/internal/platform/dberr"
	"github.com/carefinder-au/carefinder/pkg/pointer"
	"github.com/carefinder-au/carefinder/pkg/uuid"
)

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed provider store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// eligibleWhere is the public visibility rule shared by all directory reads.
// Expects the providers table aliased as p.
var eligibleWhere = fmt.Sprintf("p.%s = 'published' AND p.%s",
	schema.Providers.Status, schema.Providers.IsActive)

// # Directory Reads

/*
List returns one page of eligible providers and the total match count.

Description: Builds the WHERE clause dynamically — a trimmed free-text query
matches display name OR summary case-insensitively, and an id restriction
(from the facet engine) collapses to a simple ANY filter. Ordering is newest
first with the id as a deterministic tie-break, so pagination never shows a
row twice or skips one when timestamps collide.

Parameters:
  - context: context.Context
  - query: string (free text, already trimmed by the service)
  - restriction: Restriction (facet-resolved id set, or no-op)
  - limit: int
  - offset: int

Returns:
  - []Summary: Provider cards with resolved service areas
  - int: Total count matching the filters
  - error: Database execution errors
*/
func (repository *repository) List(context context.Context, query string, restriction Restriction, limit, offset int) ([]Summary, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	// The lateral join picks each provider's display location: primary if
	// one exists, otherwise the oldest site.
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
			COUNT(*) OVER() AS total_count,
			loc.%s, loc.%s
		FROM %s p
		LEFT JOIN LATERAL (
			SELECT l.%s, l.%s
			FROM %s l
			WHERE l.%s = p.%s
			ORDER BY l.%s DESC, l.%s ASC
			LIMIT 1
		) loc ON TRUE
		WHERE `,
		schema.Providers.ID, schema.Providers.Slug, schema.Providers.DisplayName,
		schema.Providers.Headline, schema.Providers.Summary, schema.Providers.CreatedAt,
		schema.ProviderLocations.Suburb, schema.ProviderLocations.State,
		schema.Providers.Table,
		schema.ProviderLocations.Suburb, schema.ProviderLocations.State,
		schema.ProviderLocations.Table,
		schema.ProviderLocations.ProviderID, schema.Providers.ID,
		schema.ProviderLocations.IsPrimary, schema.ProviderLocations.CreatedAt,
	))
	queryBuilder.WriteString(eligibleWhere)

	if query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (p.%s ILIKE $%d OR p.%s ILIKE $%d)",
			schema.Providers.DisplayName, argID, schema.Providers.Summary, argID))
		args = append(args, "%"+query+"%")
		argID++
	}

	if restriction.Apply {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = ANY($%d)", schema.Providers.ID, argID))
		args = append(args, restriction.IDs)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.%s DESC, p.%s DESC LIMIT $%d OFFSET $%d",
		schema.Providers.CreatedAt, schema.Providers.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_providers")
	}
	defer rows.Close()

	var (
		providers []Summary
		total     int
	)

	for rows.Next() {
		var (
			summary       Summary
			suburb, state *string
		)
		if err := rows.Scan(
			&summary.ID, &summary.Slug, &summary.DisplayName, &summary.Headline,
			&summary.Summary, &summary.CreatedAt, &total, &suburb, &state,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_provider_summary")
		}
		summary.ServiceArea = ServiceAreaLabel(suburb, state)
		providers = append(providers, summary)
	}

	return providers, total, nil
}

/*
FindBySlug returns the fully hydrated record of a publicly eligible provider.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Detail: Provider with locations, services, funding options, and tags
  - error: apperr.ErrNotFound when no eligible provider carries the slug
*/
func (repository *repository) FindBySlug(context context.Context, slug string) (*Detail, error) {
	where := fmt.Sprintf("p.%s = $1 AND %s", schema.Providers.Slug, eligibleWhere)
	return repository.findOne(context, where, slug)
}

// FindByID loads a provider regardless of publication state, for portal use.
func (repository *repository) FindByID(context context.Context, id string) (*Detail, error) {
	return repository.findOne(context, fmt.Sprintf("p.%s = $1", schema.Providers.ID), id)
}

// findOne loads the base row matching the WHERE fragment, then hydrates its
// relations with one query per table.
func (repository *repository) findOne(context context.Context, where string, arg any) (*Detail, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s,
		       p.%s, p.%s, p.%s, p.%s, p.%s
		FROM %s p
		WHERE %s`,
		schema.Providers.ID, schema.Providers.Slug, schema.Providers.DisplayName,
		schema.Providers.Headline, schema.Providers.Summary,
		schema.Providers.Website, schema.Providers.PublicEmail, schema.Providers.PublicPhone,
		schema.Providers.CreatedAt, schema.Providers.UpdatedAt,
		schema.Providers.Table,
		where,
	)

	detail := &Detail{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&detail.ID, &detail.Slug, &detail.DisplayName, &detail.Headline, &detail.Summary,
		&detail.Website, &detail.PublicEmail, &detail.PublicPhone, &detail.CreatedAt, &detail.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_provider")
	}

	if detail.Locations, err = repository.loadLocations(context, detail.ID); err != nil {
		return nil, err
	}
	if detail.Services, err = repository.loadServices(context, detail.ID); err != nil {
		return nil, err
	}
	if detail.Funding, err = repository.loadFunding(context, detail.ID); err != nil {
		return nil, err
	}
	if detail.Tags, err = repository.loadTags(context, detail.ID); err != nil {
		return nil, err
	}

	detail.ServiceArea = constants.NoLocationLabel
	if len(detail.Locations) > 0 {
		best := detail.Locations[0]
		detail.ServiceArea = ServiceAreaLabel(best.Suburb, best.State)
	}

	return detail, nil
}

// loadLocations returns the provider's sites, primary first.
func (repository *repository) loadLocations(context context.Context, providerID string) ([]Location, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s ASC`,
		schema.ProviderLocations.ID, schema.ProviderLocations.LocationLabel,
		schema.ProviderLocations.AddressLine1, schema.ProviderLocations.Suburb,
		schema.ProviderLocations.State, schema.ProviderLocations.Postcode,
		schema.ProviderLocations.Country, schema.ProviderLocations.IsPrimary,
		schema.ProviderLocations.Table,
		schema.ProviderLocations.ProviderID,
		schema.ProviderLocations.IsPrimary, schema.ProviderLocations.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, providerID)
	if err != nil {
		return nil, dberr.Wrap(err, "load_provider_locations")
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var location Location
		if err := rows.Scan(
			&location.ID, &location.Label, &location.AddressLine1, &location.Suburb,
			&location.State, &location.Postcode, &location.Country, &location.IsPrimary,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_provider_location")
		}
		locations = append(locations, location)
	}

	return locations, nil
}

// loadServices returns the provider's offerings in category display order.
func (repository *repository) loadServices(context context.Context, providerID string) ([]ServiceOffering, error) {
	query := fmt.Sprintf(`
		SELECT sc.%s, sc.%s, ps.%s, ps.%s
		FROM %s ps
		JOIN %s sc ON sc.%s = ps.%s
		WHERE ps.%s = $1
		ORDER BY sc.%s ASC, sc.%s ASC`,
		schema.ServiceCategories.Slug, schema.ServiceCategories.Name,
		schema.ProviderServices.Summary, schema.ProviderServices.IsFeatured,
		schema.ProviderServices.Table,
		schema.ServiceCategories.Table, schema.ServiceCategories.ID, schema.ProviderServices.CategoryID,
		schema.ProviderServices.ProviderID,
		schema.ServiceCategories.SortOrder, schema.ServiceCategories.Name,
	)

	rows, err := repository.pool.Query(context, query, providerID)
	if err != nil {
		return nil, dberr.Wrap(err, "load_provider_services")
	}
	defer rows.Close()

	var offerings []ServiceOffering
	for rows.Next() {
		var offering ServiceOffering
		if err := rows.Scan(&offering.CategorySlug, &offering.CategoryName, &offering.Summary, &offering.IsFeatured); err != nil {
			return nil, dberr.Wrap(err, "scan_provider_service")
		}
		offerings = append(offerings, offering)
	}

	return offerings, nil
}

// loadFunding returns the labels of the provider's accepted funding types.
func (repository *repository) loadFunding(context context.Context, providerID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT ft.%s
		FROM %s pf
		JOIN %s ft ON ft.%s = pf.%s
		WHERE pf.%s = $1
		ORDER BY ft.%s ASC, ft.%s ASC`,
		schema.FundingTypes.Label,
		schema.ProviderFundingOptions.Table,
		schema.FundingTypes.Table, schema.FundingTypes.ID, schema.ProviderFundingOptions.FundingTypeID,
		schema.ProviderFundingOptions.ProviderID,
		schema.FundingTypes.SortOrder, schema.FundingTypes.Label,
	)

	return repository.queryStrings(context, query, "load_provider_funding", providerID)
}

// loadTags returns the provider's tag labels alphabetically.
func (repository *repository) loadTags(context context.Context, providerID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT t.%s
		FROM %s tm
		JOIN %s t ON t.%s = tm.%s
		WHERE tm.%s = $1
		ORDER BY t.%s ASC`,
		schema.ProviderTags.Label,
		schema.ProviderTagMap.Table,
		schema.ProviderTags.Table, schema.ProviderTags.ID, schema.ProviderTagMap.TagID,
		schema.ProviderTagMap.ProviderID,
		schema.ProviderTags.Label,
	)

	return repository.queryStrings(context, query, "load_provider_tags", providerID)
}

// # Facet Vocabulary

/*
FacetOptions returns the directory filter vocabulary.

Description: States come from the distinct locations of eligible providers,
uppercased; categories and funding types are returned in their curated sort
order regardless of usage.

Parameters:
  - context: context.Context

Returns:
  - *Filters: States, categories, funding options
  - error: Database execution errors
*/
func (repository *repository) FacetOptions(context context.Context) (*Filters, error) {
	statesQuery := fmt.Sprintf(`
		SELECT DISTINCT UPPER(l.%s)
		FROM %s l
		JOIN %s p ON p.%s = l.%s
		WHERE l.%s IS NOT NULL AND l.%s <> '' AND %s
		ORDER BY UPPER(l.%s) ASC`,
		schema.ProviderLocations.State,
		schema.ProviderLocations.Table,
		schema.Providers.Table, schema.Providers.ID, schema.ProviderLocations.ProviderID,
		schema.ProviderLocations.State, schema.ProviderLocations.State, eligibleWhere,
		schema.ProviderLocations.State,
	)

	states, err := repository.queryStrings(context, statesQuery, "facet_states")
	if err != nil {
		return nil, err
	}

	categories, err := repository.queryOptions(context, fmt.Sprintf(
		`SELECT %s, %s FROM %s ORDER BY %s ASC, %s ASC`,
		schema.ServiceCategories.Slug, schema.ServiceCategories.Name, schema.ServiceCategories.Table,
		schema.ServiceCategories.SortOrder, schema.ServiceCategories.Name,
	), "facet_categories")
	if err != nil {
		return nil, err
	}

	funding, err := repository.queryOptions(context, fmt.Sprintf(
		`SELECT %s, %s FROM %s ORDER BY %s ASC, %s ASC`,
		schema.FundingTypes.Slug, schema.FundingTypes.Label, schema.FundingTypes.Table,
		schema.FundingTypes.SortOrder, schema.FundingTypes.Label,
	), "facet_funding")
	if err != nil {
		return nil, err
	}

	return &Filters{States: states, Categories: categories, Funding: funding}, nil
}

// # Mutations

/*
UpdateListing persists the portal-editable listing fields.

Parameters:
  - context: context.Context
  - providerID: string
  - update: ListingUpdate (already validated by the service)

Returns:
  - error: apperr.ErrNotFound when the provider does not exist
*/
func (repository *repository) UpdateListing(context context.Context, providerID string, update ListingUpdate) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3,
		    %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6`,
		schema.Providers.Table,
		schema.Providers.Headline, schema.Providers.Summary, schema.Providers.Website,
		schema.Providers.PublicEmail, schema.Providers.PublicPhone, schema.Providers.UpdatedAt,
		schema.Providers.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		update.Headline, update.Summary, update.Website,
		update.PublicEmail, update.PublicPhone, providerID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_listing")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Provider")
	}

	return nil
}

/*
UpsertExternal inserts or refreshes an externally sourced provider.

Description: The deterministic slug is the idempotency key — re-running the
ingestion job refreshes the same rows instead of duplicating them. Refreshes
never blank out fields a subsequent sync no longer supplies.

Parameters:
  - context: context.Context
  - record: ExternalUpsert

Returns:
  - string: The provider id (existing or newly created)
  - error: Database execution errors
*/
func (repository *repository) UpsertExternal(context context.Context, record ExternalUpsert) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s AS p (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'published', TRUE)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = COALESCE(EXCLUDED.%s, p.%s),
			%s = COALESCE(EXCLUDED.%s, p.%s),
			%s = COALESCE(EXCLUDED.%s, p.%s),
			%s = COALESCE(EXCLUDED.%s, p.%s),
			%s = NOW()
		RETURNING %s`,
		schema.Providers.Table,
		schema.Providers.ID, schema.Providers.Slug, schema.Providers.DisplayName,
		schema.Providers.Headline, schema.Providers.Summary, schema.Providers.Website,
		schema.Providers.PublicPhone, schema.Providers.Status, schema.Providers.IsActive,
		schema.Providers.Slug,
		schema.Providers.DisplayName, schema.Providers.DisplayName,
		schema.Providers.Headline, schema.Providers.Headline, schema.Providers.Headline,
		schema.Providers.Summary, schema.Providers.Summary, schema.Providers.Summary,
		schema.Providers.Website, schema.Providers.Website, schema.Providers.Website,
		schema.Providers.PublicPhone, schema.Providers.PublicPhone, schema.Providers.PublicPhone,
		schema.Providers.UpdatedAt,
		schema.Providers.ID,
	)

	var providerID string
	err := repository.pool.QueryRow(context, query,
		uuid.New(), record.Slug, record.DisplayName, record.Headline, record.Summary, record.Website, record.PublicPhone,
	).Scan(&providerID)
	if err != nil {
		return "", dberr.Wrap(err, "upsert_external_provider")
	}

	return providerID, nil
}

/*
UpsertPrimaryLocation inserts or replaces a provider's primary location.

Description: The partial unique index on (provider_id) WHERE is_primary acts
as the conflict target, so each provider holds exactly one ingested primary
site. State codes are stored uppercased to match the facet lookups.

Parameters:
  - context: context.Context
  - providerID: string
  - location: LocationUpsert

Returns:
  - error: Database execution errors
*/
func (repository *repository) UpsertPrimaryLocation(context context.Context, providerID string, location LocationUpsert) error {
	var state *string
	if location.State != nil {
		state = pointer.To(strings.ToUpper(*location.State))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		ON CONFLICT (%s) WHERE %s DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		schema.ProviderLocations.Table,
		schema.ProviderLocations.ID, schema.ProviderLocations.ProviderID,
		schema.ProviderLocations.LocationLabel, schema.ProviderLocations.AddressLine1,
		schema.ProviderLocations.Suburb, schema.ProviderLocations.State,
		schema.ProviderLocations.Postcode, schema.ProviderLocations.Country,
		schema.ProviderLocations.IsPrimary,
		schema.ProviderLocations.ProviderID, schema.ProviderLocations.IsPrimary,
		schema.ProviderLocations.LocationLabel, schema.ProviderLocations.LocationLabel,
		schema.ProviderLocations.AddressLine1, schema.ProviderLocations.AddressLine1,
		schema.ProviderLocations.Suburb, schema.ProviderLocations.Suburb,
		schema.ProviderLocations.State, schema.ProviderLocations.State,
		schema.ProviderLocations.Postcode, schema.ProviderLocations.Postcode,
		schema.ProviderLocations.Country, schema.ProviderLocations.Country,
	)

	_, err := repository.pool.Exec(context, query,
		uuid.New(), providerID, location.Label, location.AddressLine1, location.Suburb, state,
		location.Postcode, pointer.Fallback(location.Country, constants.DefaultCountry),
	)
	if err != nil {
		return dberr.Wrap(err, "upsert_primary_location")
	}

	return nil
}

// # Scan Helpers

// queryStrings runs a single text-column query and collects the values.
func (repository *repository) queryStrings(context context.Context, query, action string, args ...any) ([]string, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		values = append(values, value)
	}

	return values, nil
}

// queryOptions runs a (slug, label) query and collects facet options.
func (repository *repository) queryOptions(context context.Context, query, action string) ([]FacetOption, error) {
	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var options []FacetOption
	for rows.Next() {
		var option FacetOption
		if err := rows.Scan(&option.Slug, &option.Label); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		options = append(options, option)
	}

	return options, nil
}
