package auth

import (
	"context"
	"time"

	"github.com/carefinder-au/carefinder/internal/users/profile"
)

// # Validation Field Identifiers

const (
	FieldEmail = "email"
	FieldToken = "token"
)

// LinkRequest asks for a sign-in link to be issued.
type LinkRequest struct {
	Email string `json:"email"`
}

// RedeemRequest exchanges a magic-link token for an access token.
type RedeemRequest struct {
	Token string `json:"token"`
}

// Session is the payload returned on a successful redemption.
type Session struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	Profile     profile.Profile `json:"profile"`
}

// TokenStore holds single-use magic-link tokens, keyed by digest. Raw token
// values never reach the store.
type TokenStore interface {

	// Save stores the digest with its profile id for the given lifetime.
	Save(context context.Context, digest, profileID string, ttl time.Duration) error

	// Consume atomically fetches and deletes the digest's profile id.
	// Absent or expired digests yield apperr NOT_FOUND.
	Consume(context context.Context, digest string) (string, error)
}

// ProfileLookup resolves portal accounts.
type ProfileLookup interface {
	FindByEmail(context context.Context, email string) (*profile.Profile, error)
	FindByID(context context.Context, id string) (*profile.Profile, error)
}

// TokenIssuer signs portal access tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}
