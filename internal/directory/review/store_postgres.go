// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carefinder-au/carefinder/internal/platform/database/schema"
	"github.com/carefinder-au/carefinder/internal/platform/dberr"
	"github.com/carefinder-au/carefinder/pkg/uuid"
)

// reviewColumns is the shared projection for all review reads.
var reviewColumns = strings.Join([]string{
	schema.Reviews.ID, schema.Reviews.ProviderID, schema.Reviews.Rating, schema.Reviews.Body,
	schema.Reviews.DisplayName, schema.Reviews.Status, schema.Reviews.CreatedAt,
	schema.Reviews.DecidedAt, schema.Reviews.DecidedBy,
}, ", ")

// repository implements [Repository] using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed review store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Create inserts a new pending review.
func (repository *repository) Create(context context.Context, review *Review) error {
	review.ID = uuid.New()
	review.Status = StatusPending

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.Reviews.Table,
		schema.Reviews.ID, schema.Reviews.ProviderID, schema.Reviews.Rating,
		schema.Reviews.Body, schema.Reviews.DisplayName, schema.Reviews.Status,
		schema.Reviews.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		review.ID, review.ProviderID, review.Rating, review.Body, review.DisplayName, review.Status,
	).Scan(&review.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_review")
	}

	return nil
}

// FindByID loads one review.
func (repository *repository) FindByID(context context.Context, id string) (*Review, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		reviewColumns, schema.Reviews.Table, schema.Reviews.ID)

	review := &Review{}
	if err := scanReview(repository.pool.QueryRow(context, query, id), review); err != nil {
		return nil, dberr.Wrap(err, "find_review")
	}

	return review, nil
}

/*
ListByProvider returns a provider's reviews, newest first.

Parameters:
  - context: context.Context
  - providerID: string
  - status: *Status (nil lists every state — portal owners see the lot)
  - limit: int
  - offset: int

Returns:
  - []Review: One page of reviews
  - int: Total count matching the filter
  - error: Database execution errors
*/
func (repository *repository) ListByProvider(context context.Context, providerID string, status *Status, limit, offset int) ([]Review, int, error) {

	var queryBuilder strings.Builder
	args := []any{providerID}
	argID := 2

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1`, reviewColumns, schema.Reviews.Table, schema.Reviews.ProviderID))

	if status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Reviews.Status, argID))
		args = append(args, *status)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		schema.Reviews.CreatedAt, schema.Reviews.ID, argID, argID+1))
	args = append(args, limit, offset)

	return repository.listReviews(context, queryBuilder.String(), "list_provider_reviews", args...)
}

// ListPending returns the moderation queue in arrival order.
func (repository *repository) ListPending(context context.Context, limit, offset int) ([]Review, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = 'pending'
		ORDER BY %s ASC, %s ASC
		LIMIT $1 OFFSET $2`,
		reviewColumns, schema.Reviews.Table, schema.Reviews.Status,
		schema.Reviews.CreatedAt, schema.Reviews.ID,
	)

	return repository.listReviews(context, query, "list_pending_reviews", limit, offset)
}

/*
Decide transitions a pending review to its final state.

Description: The WHERE clause carries the pending precondition, so a decided
review can never flip — concurrent moderators race on the database row, and
exactly one wins.

Parameters:
  - context: context.Context
  - id: string
  - status: Status (approved or rejected)
  - decidedBy: string (moderator profile id)

Returns:
  - *Review: The decided review
  - error: pgx.ErrNoRows (unwrapped) when the review was not pending
*/
func (repository *repository) Decide(context context.Context, id string, status Status, decidedBy string) (*Review, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = NOW(), %s = $2
		WHERE %s = $3 AND %s = 'pending'
		RETURNING %s`,
		schema.Reviews.Table,
		schema.Reviews.Status, schema.Reviews.DecidedAt, schema.Reviews.DecidedBy,
		schema.Reviews.ID, schema.Reviews.Status,
		reviewColumns,
	)

	review := &Review{}
	err := scanReview(repository.pool.QueryRow(context, query, status, decidedBy, id), review)
	if errors.Is(err, pgx.ErrNoRows) {
		// Not wrapped: the service distinguishes "missing" from "already
		// decided" with a follow-up read.
		return nil, err
	}
	if err != nil {
		return nil, dberr.Wrap(err, "decide_review")
	}

	return review, nil
}

// scanReview scans the shared projection into a review.
func scanReview(row pgx.Row, review *Review) error {
	return row.Scan(
		&review.ID, &review.ProviderID, &review.Rating, &review.Body, &review.DisplayName,
		&review.Status, &review.CreatedAt, &review.DecidedAt, &review.DecidedBy,
	)
}

// listReviews runs a review page query with a trailing total_count column.
func (repository *repository) listReviews(context context.Context, query, action string, args ...any) ([]Review, int, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var (
		reviews []Review
		total   int
	)

	for rows.Next() {
		var review Review
		if err := rows.Scan(
			&review.ID, &review.ProviderID, &review.Rating, &review.Body, &review.DisplayName,
			&review.Status, &review.CreatedAt, &review.DecidedAt, &review.DecidedBy, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, action)
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}
