package review

import (
	"context"
	"time"
)

// # Moderation States

// Status is the moderation state of a review.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// # Validation Field Identifiers

const (
	FieldRating      = "rating"
	FieldBody        = "body"
	FieldDisplayName = "display_name"
)

// AnonymousName renders for reviews submitted without a display name.
const AnonymousName = "Anonymous"

// Review is a public rating of a provider, gated by moderation.
type Review struct {
	ID          string     `json:"id"`
	ProviderID  string     `json:"provider_id"`
	Rating      int        `json:"rating"`
	Body        *string    `json:"body,omitempty"`
	DisplayName *string    `json:"display_name"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	DecidedBy   *string    `json:"decided_by,omitempty"`
}

// SubmitInput is the public review submission payload.
type SubmitInput struct {
	Rating      int     `json:"rating"`
	Body        *string `json:"body"`
	DisplayName *string `json:"display_name"`
}

// Repository abstracts review persistence.
type Repository interface {

	// Create inserts a new pending review.
	Create(context context.Context, review *Review) error

	// FindByID loads one review.
	FindByID(context context.Context, id string) (*Review, error)

	// ListByProvider returns a provider's reviews, optionally restricted to
	// one status, newest first plus the total count.
	ListByProvider(context context.Context, providerID string, status *Status, limit, offset int) ([]Review, int, error)

	// ListPending returns the moderation queue, oldest first so moderators
	// clear submissions in arrival order.
	ListPending(context context.Context, limit, offset int) ([]Review, int, error)

	// Decide transitions a pending review to its final state. It affects
	// zero rows when the review is missing or already decided; callers
	// disambiguate via FindByID.
	Decide(context context.Context, id string, status Status, decidedBy string) (*Review, error)
}
