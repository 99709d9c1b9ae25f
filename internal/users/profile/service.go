/*
Package profile implements the provider portal: account lookups and listing
edits.

Authorization is enforced in this layer against the stored profile, not the
token claims alone — a role or provider link revoked since the token was
issued takes effect immediately.
*/
package profile

import (
	"context"
	"net/http"

	"github.com/carefinder-au/carefinder/internal/directory/audit"
	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/internal/platform/sec"
)

// ListingDirectory is the slice of the directory service the portal needs.
type ListingDirectory interface {
	Listing(context context.Context, providerID string) (*provider.Detail, error)
	UpdateListing(context context.Context, providerID string, update provider.ListingUpdate) (*provider.Detail, error)
}

// AuditRecorder appends entries to the audit trail.
type AuditRecorder interface {
	Record(context context.Context, action, entityType, entityID string, actorID *string, metadata map[string]any) error
}

// # Service Layer

// Service orchestrates portal account operations.
type Service struct {
	repository Repository
	directory  ListingDirectory
	auditor    AuditRecorder
}

// NewService constructs the portal [Service].
func NewService(repository Repository, directory ListingDirectory, auditor AuditRecorder) *Service {
	return &Service{repository: repository, directory: directory, auditor: auditor}
}

/*
Me returns the caller's profile and the listing it manages.

Parameters:
  - context: context.Context
  - userID: string (from the verified token)

Returns:
  - *Me: Profile plus linked provider, when one exists
  - error: NOT_FOUND for deleted accounts, or store errors
*/
func (service *Service) Me(context context.Context, userID string) (*Me, error) {
	account, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	me := &Me{Profile: *account}
	if account.ProviderID != nil {
		detail, err := service.directory.Listing(context, *account.ProviderID)
		if err != nil {
			return nil, surfaceBackend(err)
		}
		me.Provider = detail
	}

	return me, nil
}

/*
UpdateListing applies a portal edit after re-validating authorization.

Description: The caller's role and provider link are re-read from storage.
Provider accounts may only edit their own linked listing; admin accounts may
name any provider id. The edit is audited in the same operation.

Parameters:
  - context: context.Context
  - userID: string (from the verified token)
  - input: ListingEditInput

Returns:
  - *provider.Detail: The listing after the edit
  - error: FORBIDDEN on ownership violations, validation or store errors
*/
func (service *Service) UpdateListing(context context.Context, userID string, input ListingEditInput) (*provider.Detail, error) {
	account, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	providerID, err := resolveTarget(account, input.ProviderID)
	if err != nil {
		return nil, err
	}

	detail, err := service.directory.UpdateListing(context, providerID, input.ListingUpdate)
	if err != nil {
		return nil, surfaceBackend(err)
	}

	err = service.auditor.Record(context, audit.ActionListingUpdated, audit.EntityProvider, providerID, &account.ID, map[string]any{
		"headline": input.Headline,
		"role":     string(account.Role),
	})
	if err != nil {
		return nil, surfaceBackend(err)
	}

	return detail, nil
}

// resolveTarget decides which provider the caller may edit.
func resolveTarget(account *Profile, requested *string) (string, error) {
	if account.Role.AtLeast(sec.RoleAdmin) {
		if requested != nil && *requested != "" {
			return *requested, nil
		}
		if account.ProviderID != nil {
			return *account.ProviderID, nil
		}
		return "", apperr.ValidationError("provider_id is required for admin edits")
	}

	if account.ProviderID == nil {
		return "", apperr.Forbidden("No provider listing is linked to this account")
	}
	if requested != nil && *requested != "" && *requested != *account.ProviderID {
		return "", apperr.Forbidden("You may only edit your own listing")
	}

	return *account.ProviderID, nil
}

// surfaceBackend unwraps server-side failures for the portal audience.
//
// Portal users are authenticated, trusted operators; unlike the public
// surface they see the real backend failure instead of a generic message.
func surfaceBackend(err error) error {
	appError := apperr.As(err)
	if appError == nil || appError.HTTPStatus < 500 || appError.Cause == nil {
		return err
	}

	return &apperr.AppError{
		Code:       "BACKEND_ERROR",
		Message:    appError.Cause.Error(),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      appError.Cause,
	}
}

// Account returns the caller's stored profile without hydrating the listing.
// Handlers use it to scope their-own-data queries by the live provider link.
func (service *Service) Account(context context.Context, userID string) (*Profile, error) {
	return service.repository.FindByID(context, userID)
}
