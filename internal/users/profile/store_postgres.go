// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package profile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carefinder-au/carefinder/internal/platform/database/schema"
	"github.com/carefinder-au/carefinder/internal/platform/dberr"
)

// repository implements [Repository] using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed profile store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// FindByID loads a profile by its id.
func (repository *repository) FindByID(context context.Context, id string) (*Profile, error) {
	return repository.findOne(context, schema.UserProfiles.ID, id)
}

// FindByEmail loads a profile by its unique email.
func (repository *repository) FindByEmail(context context.Context, email string) (*Profile, error) {
	return repository.findOne(context, schema.UserProfiles.Email, email)
}

func (repository *repository) findOne(context context.Context, column, value string) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserProfiles.ID, schema.UserProfiles.Email, schema.UserProfiles.Role,
		schema.UserProfiles.ProviderID, schema.UserProfiles.CreatedAt,
		schema.UserProfiles.Table,
		column,
	)

	profile := &Profile{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&profile.ID, &profile.Email, &profile.Role, &profile.ProviderID, &profile.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_profile")
	}

	return profile, nil
}
