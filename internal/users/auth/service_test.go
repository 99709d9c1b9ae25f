// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/internal/platform/sec"
	"github.com/carefinder-au/carefinder/internal/users/auth"
	"github.com/carefinder-au/carefinder/internal/users/profile"
)

// fakeTokenStore is an in-memory single-use token store.
type fakeTokenStore struct {
	saved map[string]string
	ttl   time.Duration
}

func (store *fakeTokenStore) Save(_ context.Context, digest, profileID string, ttl time.Duration) error {
	if store.saved == nil {
		store.saved = make(map[string]string)
	}
	store.saved[digest] = profileID
	store.ttl = ttl
	return nil
}

func (store *fakeTokenStore) Consume(_ context.Context, digest string) (string, error) {
	profileID, ok := store.saved[digest]
	if !ok {
		return "", apperr.NotFound("Sign-in link is invalid or expired")
	}
	delete(store.saved, digest)
	return profileID, nil
}

// fakeProfiles holds one portal account.
type fakeProfiles struct {
	account *profile.Profile
}

func (profiles *fakeProfiles) FindByEmail(_ context.Context, email string) (*profile.Profile, error) {
	if profiles.account == nil || profiles.account.Email != email {
		return nil, apperr.NotFound("Profile")
	}
	return profiles.account, nil
}

func (profiles *fakeProfiles) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	if profiles.account == nil || profiles.account.ID != id {
		return nil, apperr.NotFound("Profile")
	}
	return profiles.account, nil
}

// fakeIssuer signs predictable tokens.
type fakeIssuer struct {
	issuedRole string
}

func (issuer *fakeIssuer) GenerateAccessToken(userID, _, role string, _ time.Duration) (string, error) {
	issuer.issuedRole = role
	return "jwt-for-" + userID, nil
}

func testAccount() *profile.Profile {
	return &profile.Profile{ID: "u1", Email: "owner@example.com", Role: sec.RoleProvider}
}

/*
TestService_RequestLink_UnknownEmail verifies the response is identical for
unregistered addresses: no error, nothing stored.
*/
func TestService_RequestLink_UnknownEmail(t *testing.T) {
	store := &fakeTokenStore{}
	service := auth.NewService(store, &fakeProfiles{}, &fakeIssuer{}, slog.New(slog.DiscardHandler))

	err := service.RequestLink(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.Empty(t, store.saved)
}

/*
TestService_RequestLink_InvalidEmail rejects malformed addresses.
*/
func TestService_RequestLink_InvalidEmail(t *testing.T) {
	service := auth.NewService(&fakeTokenStore{}, &fakeProfiles{}, &fakeIssuer{}, slog.New(slog.DiscardHandler))

	err := service.RequestLink(context.Background(), "not-an-email")

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_RequestLink_StoresDigestOnly verifies only a digest of the
token reaches the store, with the configured TTL.
*/
func TestService_RequestLink_StoresDigestOnly(t *testing.T) {
	store := &fakeTokenStore{}
	profiles := &fakeProfiles{account: testAccount()}
	service := auth.NewService(store, profiles, &fakeIssuer{}, slog.New(slog.DiscardHandler))

	err := service.RequestLink(context.Background(), "  Owner@Example.com ")

	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.Equal(t, 15*time.Minute, store.ttl)

	for digest, profileID := range store.saved {
		assert.Equal(t, "u1", profileID)
		assert.Len(t, digest, 64, "a 256-bit hex digest, never the raw token")
	}
}

/*
TestService_Redeem verifies the full issue-then-redeem round trip and the
single-use guarantee.
*/
func TestService_Redeem(t *testing.T) {
	store := &fakeTokenStore{}
	profiles := &fakeProfiles{account: testAccount()}
	issuer := &fakeIssuer{}
	service := auth.NewService(store, profiles, issuer, slog.New(slog.DiscardHandler))

	// The raw token never leaves the service, so seed one directly.
	raw := "a-raw-token"
	require.NoError(t, store.Save(context.Background(), sec.HashToken(raw), "u1", time.Minute))

	session, err := service.Redeem(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "jwt-for-u1", session.AccessToken)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, int((12 * time.Hour).Seconds()), session.ExpiresIn)
	assert.Equal(t, "u1", session.Profile.ID)
	assert.Equal(t, string(sec.RoleProvider), issuer.issuedRole)

	// Second redemption of the same token must fail.
	_, err = service.Redeem(context.Background(), raw)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_Redeem_BlankToken rejects empty submissions before touching the
store.
*/
func TestService_Redeem_BlankToken(t *testing.T) {
	service := auth.NewService(&fakeTokenStore{}, &fakeProfiles{}, &fakeIssuer{}, slog.New(slog.DiscardHandler))

	_, err := service.Redeem(context.Background(), "   ")

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
