// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/internal/platform/sec"
	"github.com/carefinder-au/carefinder/internal/users/profile"
	"github.com/carefinder-au/carefinder/pkg/pointer"
)

// fakeProfileRepository holds one portal account.
type fakeProfileRepository struct {
	account *profile.Profile
}

func (repo *fakeProfileRepository) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	if repo.account == nil || repo.account.ID != id {
		return nil, apperr.NotFound("Profile")
	}
	return repo.account, nil
}

func (repo *fakeProfileRepository) FindByEmail(_ context.Context, email string) (*profile.Profile, error) {
	if repo.account == nil || repo.account.Email != email {
		return nil, apperr.NotFound("Profile")
	}
	return repo.account, nil
}

// fakeDirectory records listing operations.
type fakeDirectory struct {
	updatedID string
	detailErr error
}

func (directory *fakeDirectory) Listing(_ context.Context, providerID string) (*provider.Detail, error) {
	if directory.detailErr != nil {
		return nil, directory.detailErr
	}
	return &provider.Detail{ID: providerID, Slug: "slug-" + providerID}, nil
}

func (directory *fakeDirectory) UpdateListing(_ context.Context, providerID string, _ provider.ListingUpdate) (*provider.Detail, error) {
	if directory.detailErr != nil {
		return nil, directory.detailErr
	}
	directory.updatedID = providerID
	return &provider.Detail{ID: providerID}, nil
}

// fakeAuditor records trail writes.
type fakeAuditor struct {
	actions []string
}

func (auditor *fakeAuditor) Record(_ context.Context, action, _, _ string, _ *string, _ map[string]any) error {
	auditor.actions = append(auditor.actions, action)
	return nil
}

func edit(providerID *string) profile.ListingEditInput {
	return profile.ListingEditInput{
		ProviderID: providerID,
		ListingUpdate: provider.ListingUpdate{
			Headline: "New headline",
			Summary:  "New summary",
		},
	}
}

/*
TestService_UpdateListing_Authorization covers target resolution per role.
*/
func TestService_UpdateListing_Authorization(t *testing.T) {
	tests := []struct {
		name      string
		account   profile.Profile
		requested *string
		wantID    string
		wantCode  string
	}{
		{
			name:    "provider_edits_own_listing",
			account: profile.Profile{ID: "u1", Role: sec.RoleProvider, ProviderID: pointer.To("p1")},
			wantID:  "p1",
		},
		{
			name:      "provider_cannot_name_another_listing",
			account:   profile.Profile{ID: "u1", Role: sec.RoleProvider, ProviderID: pointer.To("p1")},
			requested: pointer.To("p2"),
			wantCode:  "FORBIDDEN",
		},
		{
			name:     "provider_without_link_forbidden",
			account:  profile.Profile{ID: "u1", Role: sec.RoleProvider},
			wantCode: "FORBIDDEN",
		},
		{
			name:      "admin_edits_any_listing",
			account:   profile.Profile{ID: "a1", Role: sec.RoleAdmin},
			requested: pointer.To("p9"),
			wantID:    "p9",
		},
		{
			name:     "admin_without_target_rejected",
			account:  profile.Profile{ID: "a1", Role: sec.RoleAdmin},
			wantCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directory := &fakeDirectory{}
			auditor := &fakeAuditor{}
			account := tt.account
			service := profile.NewService(&fakeProfileRepository{account: &account}, directory, auditor)

			detail, err := service.UpdateListing(context.Background(), account.ID, edit(tt.requested))

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				assert.Empty(t, directory.updatedID)
				assert.Empty(t, auditor.actions)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, detail.ID)
			assert.Equal(t, tt.wantID, directory.updatedID)
			assert.Equal(t, []string{"listing.updated"}, auditor.actions)
		})
	}
}

/*
TestService_UpdateListing_SurfacesBackendCause verifies portal users see
the real backend failure message instead of a generic one.
*/
func TestService_UpdateListing_SurfacesBackendCause(t *testing.T) {
	cause := errors.New("connection refused")
	directory := &fakeDirectory{detailErr: apperr.Internal(cause)}
	account := profile.Profile{ID: "u1", Role: sec.RoleProvider, ProviderID: pointer.To("p1")}
	service := profile.NewService(&fakeProfileRepository{account: &account}, directory, &fakeAuditor{})

	_, err := service.UpdateListing(context.Background(), "u1", edit(nil))

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "BACKEND_ERROR", appError.Code)
	assert.Equal(t, "connection refused", appError.Message)
}

/*
TestService_Me hydrates the linked listing when one exists.
*/
func TestService_Me(t *testing.T) {
	t.Run("with_linked_provider", func(t *testing.T) {
		account := profile.Profile{ID: "u1", Role: sec.RoleProvider, ProviderID: pointer.To("p1")}
		service := profile.NewService(&fakeProfileRepository{account: &account}, &fakeDirectory{}, &fakeAuditor{})

		me, err := service.Me(context.Background(), "u1")

		require.NoError(t, err)
		require.NotNil(t, me.Provider)
		assert.Equal(t, "p1", me.Provider.ID)
	})

	t.Run("without_link", func(t *testing.T) {
		account := profile.Profile{ID: "m1", Role: sec.RoleModerator}
		service := profile.NewService(&fakeProfileRepository{account: &account}, &fakeDirectory{}, &fakeAuditor{})

		me, err := service.Me(context.Background(), "m1")

		require.NoError(t, err)
		assert.Nil(t, me.Provider)
	})
}
