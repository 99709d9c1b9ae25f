// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package review_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/directory/review"
	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/pkg/pointer"
)

// fakeReviewRepository is a scriptable in-memory review store.
type fakeReviewRepository struct {
	created *review.Review

	byID    *review.Review
	byIDErr error

	listed []review.Review

	decided   *review.Review
	decideErr error
}

func (repo *fakeReviewRepository) Create(_ context.Context, r *review.Review) error {
	r.ID = "r1"
	r.Status = review.StatusPending
	repo.created = r
	return nil
}

func (repo *fakeReviewRepository) FindByID(_ context.Context, _ string) (*review.Review, error) {
	return repo.byID, repo.byIDErr
}

func (repo *fakeReviewRepository) ListByProvider(_ context.Context, _ string, _ *review.Status, _, _ int) ([]review.Review, int, error) {
	return repo.listed, len(repo.listed), nil
}

func (repo *fakeReviewRepository) ListPending(_ context.Context, _, _ int) ([]review.Review, int, error) {
	return repo.listed, len(repo.listed), nil
}

func (repo *fakeReviewRepository) Decide(_ context.Context, id string, status review.Status, decidedBy string) (*review.Review, error) {
	if repo.decideErr != nil {
		return nil, repo.decideErr
	}
	decided := *repo.decided
	decided.ID = id
	decided.Status = status
	decided.DecidedBy = &decidedBy
	return &decided, nil
}

// fakeProviders resolves every slug to one managed provider.
type fakeProviders struct {
	detail *provider.Detail
	err    error
}

func (providers *fakeProviders) FindBySlug(_ context.Context, _ string) (*provider.Detail, error) {
	return providers.detail, providers.err
}

// fakeAuditor records appended trail entries.
type fakeAuditor struct {
	actions  []string
	entities []string
}

func (auditor *fakeAuditor) Record(_ context.Context, action, entityType, _ string, _ *string, _ map[string]any) error {
	auditor.actions = append(auditor.actions, action)
	auditor.entities = append(auditor.entities, entityType)
	return nil
}

func newService(repo *fakeReviewRepository, providers *fakeProviders, auditor *fakeAuditor) *review.Service {
	if providers == nil {
		providers = &fakeProviders{detail: &provider.Detail{ID: "p1", Slug: "sample-provider-1"}}
	}
	if auditor == nil {
		auditor = &fakeAuditor{}
	}
	return review.NewService(repo, providers, auditor)
}

/*
TestService_Submit covers validation and normalization of a public review
submission.
*/
func TestService_Submit(t *testing.T) {
	tests := []struct {
		name    string
		input   review.SubmitInput
		wantErr bool
	}{
		{"valid_minimal", review.SubmitInput{Rating: 4}, false},
		{"rating_too_low", review.SubmitInput{Rating: 0}, true},
		{"rating_too_high", review.SubmitInput{Rating: 6}, true},
		{"body_too_long", review.SubmitInput{Rating: 3, Body: pointer.To(string(make([]byte, 2001)))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeReviewRepository{}
			service := newService(repo, nil, nil)

			created, err := service.Submit(context.Background(), "sample-provider-1", tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, repo.created)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, review.StatusPending, created.Status)
			assert.Equal(t, "p1", created.ProviderID)
		})
	}
}

/*
TestService_Submit_BlankDisplayName stores a whitespace-only display name
as absent.
*/
func TestService_Submit_BlankDisplayName(t *testing.T) {
	repo := &fakeReviewRepository{}
	service := newService(repo, nil, nil)

	created, err := service.Submit(context.Background(), "sample-provider-1", review.SubmitInput{
		Rating:      5,
		DisplayName: pointer.To("   "),
	})

	require.NoError(t, err)
	assert.Nil(t, created.DisplayName)
}

/*
TestService_Submit_UnknownProvider propagates the directory's 404.
*/
func TestService_Submit_UnknownProvider(t *testing.T) {
	providers := &fakeProviders{err: apperr.NotFound("Provider")}
	service := newService(&fakeReviewRepository{}, providers, nil)

	_, err := service.Submit(context.Background(), "no-such-slug", review.SubmitInput{Rating: 3})

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_ApprovedForProvider fills the anonymous display name on
nameless approved reviews.
*/
func TestService_ApprovedForProvider(t *testing.T) {
	repo := &fakeReviewRepository{
		listed: []review.Review{
			{ID: "r1", Rating: 5, Status: review.StatusApproved},
			{ID: "r2", Rating: 4, Status: review.StatusApproved, DisplayName: pointer.To("Jordan")},
		},
	}
	service := newService(repo, nil, nil)

	reviews, total, err := service.ApprovedForProvider(context.Background(), "sample-provider-1", 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.NotNil(t, reviews[0].DisplayName)
	assert.Equal(t, "Anonymous", *reviews[0].DisplayName)
	assert.Equal(t, "Jordan", *reviews[1].DisplayName)
}

/*
TestService_Moderate covers the decision outcomes: success with an audit
entry, double moderation, and a vanished review.
*/
func TestService_Moderate(t *testing.T) {
	t.Run("approve_records_audit", func(t *testing.T) {
		repo := &fakeReviewRepository{
			decided: &review.Review{ProviderID: "p1", Rating: 5, Status: review.StatusPending},
		}
		auditor := &fakeAuditor{}
		service := newService(repo, nil, auditor)

		decided, err := service.Moderate(context.Background(), "r1", review.StatusApproved, "mod-1")

		require.NoError(t, err)
		assert.Equal(t, review.StatusApproved, decided.Status)
		require.NotNil(t, decided.DecidedBy)
		assert.Equal(t, "mod-1", *decided.DecidedBy)
		assert.Equal(t, []string{"review.approved"}, auditor.actions)
	})

	t.Run("already_decided_conflicts", func(t *testing.T) {
		repo := &fakeReviewRepository{
			decideErr: pgx.ErrNoRows,
			byID:      &review.Review{ID: "r1", Status: review.StatusApproved},
		}
		service := newService(repo, nil, nil)

		_, err := service.Moderate(context.Background(), "r1", review.StatusRejected, "mod-1")

		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("missing_review_is_not_found", func(t *testing.T) {
		repo := &fakeReviewRepository{
			decideErr: pgx.ErrNoRows,
			byIDErr:   apperr.NotFound("Review"),
		}
		service := newService(repo, nil, nil)

		_, err := service.Moderate(context.Background(), "gone", review.StatusApproved, "mod-1")

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("invalid_decision_rejected", func(t *testing.T) {
		service := newService(&fakeReviewRepository{}, nil, nil)

		_, err := service.Moderate(context.Background(), "r1", review.StatusPending, "mod-1")

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}
