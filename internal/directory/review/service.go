/*
Package review handles public provider ratings and their moderation workflow.

Reviews enter the system as pending submissions from anonymous visitors and
become publicly visible only after a moderator approves them. A decision is
final: the store's conditional transition guarantees a review is moderated at
most once, even under concurrent moderators.
*/
package review

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/carefinder-au/carefinder/internal/directory/audit"
	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/internal/platform/validate"
	"github.com/carefinder-au/carefinder/pkg/pointer"
)

// ProviderLookup resolves public slugs to managed provider records. Reviews
// attach only to managed providers — externally sourced records have no
// backing row to reference.
type ProviderLookup interface {
	FindBySlug(context context.Context, slug string) (*provider.Detail, error)
}

// AuditRecorder appends entries to the audit trail.
type AuditRecorder interface {
	Record(context context.Context, action, entityType, entityID string, actorID *string, metadata map[string]any) error
}

// # Service Layer

// Service orchestrates review submission, listing, and moderation.
type Service struct {
	repository Repository
	providers  ProviderLookup
	auditor    AuditRecorder
}

// NewService constructs the review [Service].
func NewService(repository Repository, providers ProviderLookup, auditor AuditRecorder) *Service {
	return &Service{repository: repository, providers: providers, auditor: auditor}
}

// # Public Operations

/*
Submit creates a pending review for the provider carrying the slug.

Description: Open to anonymous visitors. Ratings are whole stars 1–5, the
body is optional, and a blank display name is stored as absent (rendered as
anonymous later). The review is invisible publicly until approved.

Parameters:
  - context: context.Context
  - slug: string (public provider slug)
  - input: SubmitInput

Returns:
  - *Review: The created pending review
  - error: Validation errors, or NOT_FOUND for unknown/unmanaged slugs
*/
func (service *Service) Submit(context context.Context, slug string, input SubmitInput) (*Review, error) {
	validator := &validate.Validator{}
	validator.Range(FieldRating, input.Rating, 1, 5)
	if input.Body != nil {
		validator.MaxLen(FieldBody, *input.Body, 2000)
	}
	if input.DisplayName != nil {
		validator.MaxLen(FieldDisplayName, *input.DisplayName, 100)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	detail, err := service.providers.FindBySlug(context, slug)
	if err != nil {
		return nil, err
	}

	review := &Review{
		ProviderID:  detail.ID,
		Rating:      input.Rating,
		Body:        normalizeOptional(input.Body),
		DisplayName: normalizeOptional(input.DisplayName),
	}
	if err := service.repository.Create(context, review); err != nil {
		return nil, err
	}

	return review, nil
}

/*
ApprovedForProvider lists the approved reviews of a provider, newest first.

Parameters:
  - context: context.Context
  - slug: string
  - limit: int
  - offset: int

Returns:
  - []Review: Approved reviews with anonymous names resolved
  - int: Total approved count
  - error: NOT_FOUND for unknown slugs, or store errors
*/
func (service *Service) ApprovedForProvider(context context.Context, slug string, limit, offset int) ([]Review, int, error) {
	detail, err := service.providers.FindBySlug(context, slug)
	if err != nil {
		return nil, 0, err
	}

	reviews, total, err := service.repository.ListByProvider(context, detail.ID, pointer.To(StatusApproved), limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i := range reviews {
		if reviews[i].DisplayName == nil {
			reviews[i].DisplayName = pointer.To(AnonymousName)
		}
	}

	return reviews, total, nil
}

// # Portal Operations

// OwnReviews lists every review of the caller's provider, all states.
func (service *Service) OwnReviews(context context.Context, providerID string, limit, offset int) ([]Review, int, error) {
	return service.repository.ListByProvider(context, providerID, nil, limit, offset)
}

// PendingQueue lists the moderation queue in arrival order.
func (service *Service) PendingQueue(context context.Context, limit, offset int) ([]Review, int, error) {
	return service.repository.ListPending(context, limit, offset)
}

/*
Moderate applies a final decision to a pending review.

Description: The transition is conditional on the pending state. A review
that was already decided — by anyone, to any outcome — yields CONFLICT rather
than silently agreeing; re-running a moderation action is a real error worth
surfacing. The decision is recorded in the audit trail before success is
reported.

Parameters:
  - context: context.Context
  - reviewID: string
  - decision: Status (StatusApproved or StatusRejected)
  - actorID: string (moderator profile id)

Returns:
  - *Review: The decided review
  - error: NOT_FOUND, CONFLICT for double moderation, or store errors
*/
func (service *Service) Moderate(context context.Context, reviewID string, decision Status, actorID string) (*Review, error) {
	if decision != StatusApproved && decision != StatusRejected {
		return nil, apperr.ValidationError("Decision must be approved or rejected")
	}

	review, err := service.repository.Decide(context, reviewID, decision, actorID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Disambiguate: the review is either gone or already decided.
		if _, findErr := service.repository.FindByID(context, reviewID); findErr != nil {
			return nil, findErr
		}
		return nil, apperr.Conflict("Review has already been moderated")
	}
	if err != nil {
		return nil, err
	}

	action := audit.ActionReviewApproved
	if decision == StatusRejected {
		action = audit.ActionReviewRejected
	}

	err = service.auditor.Record(context, action, audit.EntityReview, review.ID, &actorID, map[string]any{
		"provider_id": review.ProviderID,
		"rating":      review.Rating,
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// normalizeOptional trims an optional field and collapses blanks to absent.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return pointer.To(trimmed)
}
