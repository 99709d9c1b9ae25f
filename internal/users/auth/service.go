/*
Package auth implements passwordless portal sign-in via magic links.

Flow:

 1. The user submits their email. If a portal account exists, a single-use
    opaque token is generated, its digest is stored in Redis with a short
    TTL, and the link is handed to the delivery channel.
 2. The user redeems the raw token. The digest is consumed atomically, and
    a signed access token is issued carrying the account's id and role.

Only the token digest is ever at rest; a Redis snapshot cannot be replayed
into working sign-in links. Mail transport is out of scope — delivery is a
structured log event consumed by the operational tooling.
*/
package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
	"github.com/carefinder-au/carefinder/internal/platform/sec"
	"github.com/carefinder-au/carefinder/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the magic-link lifecycle.
type Service struct {
	tokens   TokenStore
	profiles ProfileLookup
	issuer   TokenIssuer
	logger   *slog.Logger
}

// NewService constructs the auth [Service].
func NewService(tokens TokenStore, profiles ProfileLookup, issuer TokenIssuer, logger *slog.Logger) *Service {
	return &Service{tokens: tokens, profiles: profiles, issuer: issuer, logger: logger}
}

/*
RequestLink issues a sign-in link for a registered email address.

Description: The response is identical whether or not the address is
registered — sign-in must not double as an account-enumeration oracle. For
registered accounts the raw token is emitted as a delivery log event.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Validation errors or storage failures (unknown emails are NOT errors)
*/
func (service *Service) RequestLink(context context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	if err := validator.Err(); err != nil {
		return err
	}

	account, err := service.profiles.FindByEmail(context, email)
	if err != nil {
		if apperr.As(err) != nil && apperr.As(err).HTTPStatus == 404 {
			// Indistinguishable from success on the wire.
			service.logger.InfoContext(context, "magic_link_skipped_unknown_email")
			return nil
		}
		return err
	}

	token, err := sec.NewOpaqueToken()
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.tokens.Save(context, sec.HashToken(token), account.ID, constants.MagicLinkTTL); err != nil {
		return apperr.Internal(err)
	}

	// The delivery channel tails this event; the raw token exists only here
	// and in the recipient's inbox.
	service.logger.InfoContext(context, "magic_link_issued",
		slog.String("profile_id", account.ID),
		slog.String("token", token),
		slog.Duration("ttl", constants.MagicLinkTTL),
	)

	return nil
}

/*
Redeem exchanges a raw magic-link token for a portal session.

Description: Consumption is atomic and single-use. The profile is re-read at
redemption time so the issued claims reflect the current role, not the role
at link-issue time.

Parameters:
  - context: context.Context
  - token: string (raw value from the link)

Returns:
  - *Session: Signed access token plus the account profile
  - error: NOT_FOUND for invalid/expired/used tokens, or signing failures
*/
func (service *Service) Redeem(context context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)

	validator := &validate.Validator{}
	validator.Required(FieldToken, token)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	profileID, err := service.tokens.Consume(context, sec.HashToken(token))
	if err != nil {
		return nil, err
	}

	account, err := service.profiles.FindByID(context, profileID)
	if err != nil {
		return nil, err
	}

	accessToken, err := service.issuer.GenerateAccessToken(account.ID, account.Email, string(account.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.InfoContext(context, "magic_link_redeemed",
		slog.String("profile_id", account.ID),
		slog.String("role", string(account.Role)),
	)

	return &Session{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(constants.AccessTokenTTL.Seconds()),
		Profile:     *account,
	}, nil
}
