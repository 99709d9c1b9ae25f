/*
Package audit maintains the append-only trail of moderation and portal actions.

Entries are written in the same operation that performs the change and are
never updated or deleted — the table has no mutation path anywhere in the
application. Metadata is free-form JSON so each action can record whatever
context is useful for later review.
*/
package audit

import (
	"context"
	"time"
)

// # Entity Types

const (
	EntityProvider = "provider"
	EntityReview   = "review"
)

// # Actions

const (
	ActionReviewApproved = "review.approved"
	ActionReviewRejected = "review.rejected"
	ActionListingUpdated = "listing.updated"
)

// Entry is one immutable audit record.
type Entry struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Metadata   map[string]any `json:"metadata"`
	ActorID    *string        `json:"actor_id"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ListFilter narrows an audit listing.
type ListFilter struct {
	// EntityType restricts to one entity kind when non-empty.
	EntityType string

	// EntityIDs restricts to specific entities when non-empty. Portal users
	// see only their own provider's trail through this filter.
	EntityIDs []string
}

// Repository abstracts the audit log storage.
type Repository interface {

	// Append writes one entry. There is no update or delete.
	Append(context context.Context, entry *Entry) error

	// List returns entries newest first plus the total count.
	List(context context.Context, filter ListFilter, limit, offset int) ([]Entry, int, error)
}

// # Service Layer

// Service records and lists audit entries.
type Service struct {
	repository Repository
}

// NewService constructs the audit [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
Record appends an audit entry for a completed action.

Description: Called by the moderation and listing-edit paths inside their
own operations. A failed append fails the calling operation — an unaudited
mutation must not be reported as success.

Parameters:
  - context: context.Context
  - action: string (one of the Action constants)
  - entityType: string (one of the Entity constants)
  - entityID: string
  - actorID: *string (nil for system actions)
  - metadata: map[string]any (action-specific context)

Returns:
  - error: Persistence errors
*/
func (service *Service) Record(context context.Context, action, entityType, entityID string, actorID *string, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}

	return service.repository.Append(context, &Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		ActorID:    actorID,
	})
}

// List returns one page of the trail, newest first.
func (service *Service) List(context context.Context, filter ListFilter, limit, offset int) ([]Entry, int, error) {
	return service.repository.List(context, filter, limit, offset)
}
