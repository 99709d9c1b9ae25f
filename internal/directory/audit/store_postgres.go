// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carefinder-au/carefinder/internal/platform/database/schema"
	"github.com/carefinder-au/carefinder/internal/platform/dberr"
	"github.com/carefinder-au/carefinder/pkg/uuid"
)

// repository implements [Repository] using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed audit store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Append inserts one immutable entry. Identity is assigned here so callers
// never need to care about it.
func (repository *repository) Append(context context.Context, entry *Entry) error {
	entry.ID = uuid.New()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.AuditLogs.Table,
		schema.AuditLogs.ID, schema.AuditLogs.Action, schema.AuditLogs.EntityType,
		schema.AuditLogs.EntityID, schema.AuditLogs.Metadata, schema.AuditLogs.ActorID,
	)

	_, err := repository.pool.Exec(context, query,
		entry.ID, entry.Action, entry.EntityType, entry.EntityID, entry.Metadata, entry.ActorID,
	)
	if err != nil {
		return dberr.Wrap(err, "append_audit_entry")
	}

	return nil
}

/*
List returns entries newest first with the total match count.

Parameters:
  - context: context.Context
  - filter: ListFilter (entity type and/or explicit entity ids)
  - limit: int
  - offset: int

Returns:
  - []Entry: One page of the trail
  - int: Total count matching the filter
  - error: Database execution errors
*/
func (repository *repository) List(context context.Context, filter ListFilter, limit, offset int) ([]Entry, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s,
		       COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE`,
		schema.AuditLogs.ID, schema.AuditLogs.Action, schema.AuditLogs.EntityType,
		schema.AuditLogs.EntityID, schema.AuditLogs.Metadata, schema.AuditLogs.ActorID,
		schema.AuditLogs.CreatedAt,
		schema.AuditLogs.Table,
	))

	if filter.EntityType != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.AuditLogs.EntityType, argID))
		args = append(args, filter.EntityType)
		argID++
	}

	if len(filter.EntityIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", schema.AuditLogs.EntityID, argID))
		args = append(args, filter.EntityIDs)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		schema.AuditLogs.CreatedAt, schema.AuditLogs.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_audit_entries")
	}
	defer rows.Close()

	var (
		entries []Entry
		total   int
	)

	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID, &entry.Action, &entry.EntityType, &entry.EntityID,
			&entry.Metadata, &entry.ActorID, &entry.CreatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_audit_entry")
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
