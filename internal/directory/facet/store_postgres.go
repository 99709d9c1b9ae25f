// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package facet

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carefinder-au/carefinder/internal/platform/database/schema"
	"github.com/carefinder-au/carefinder/internal/platform/dberr"
)

// PostgresLookup implements [Lookup] against the directory mapping tables.
type PostgresLookup struct {
	db *pgxpool.Pool
}

// NewPostgresLookup constructs a PostgreSQL backed facet lookup.
func NewPostgresLookup(db *pgxpool.Pool) *PostgresLookup {
	return &PostgresLookup{db: db}
}

func (lookup *PostgresLookup) ProviderIDsByState(context context.Context, states []string) ([]string, error) {
	// State codes are stored uppercased; normalize the inputs the same way.
	upper := make([]string, len(states))
	for i, state := range states {
		upper[i] = strings.ToUpper(state)
	}

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s = ANY($1)`,
		schema.ProviderLocations.ProviderID, schema.ProviderLocations.Table, schema.ProviderLocations.State)

	return lookup.queryIDs(context, query, "facet_state_ids", upper)
}

func (lookup *PostgresLookup) ProviderIDsByCategory(context context.Context, slugs []string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT ps.%s
		FROM %s ps
		JOIN %s sc ON ps.%s = sc.%s
		WHERE sc.%s = ANY($1)
	`,
		schema.ProviderServices.ProviderID,
		schema.ProviderServices.Table,
		schema.ServiceCategories.Table,
		schema.ProviderServices.CategoryID, schema.ServiceCategories.ID,
		schema.ServiceCategories.Slug,
	)

	return lookup.queryIDs(context, query, "facet_category_ids", slugs)
}

func (lookup *PostgresLookup) ProviderIDsByFunding(context context.Context, slugs []string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT pf.%s
		FROM %s pf
		JOIN %s ft ON pf.%s = ft.%s
		WHERE ft.%s = ANY($1)
	`,
		schema.ProviderFundingOptions.ProviderID,
		schema.ProviderFundingOptions.Table,
		schema.FundingTypes.Table,
		schema.ProviderFundingOptions.FundingTypeID, schema.FundingTypes.ID,
		schema.FundingTypes.Slug,
	)

	return lookup.queryIDs(context, query, "facet_funding_ids", slugs)
}

// queryIDs runs a single-column id query and collects the results.
func (lookup *PostgresLookup) queryIDs(context context.Context, query, action string, values []string) ([]string, error) {
	rows, err := lookup.db.Query(context, query, values)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
