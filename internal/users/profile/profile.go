package profile

import (
	"context"
	"time"

	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/platform/sec"
)

// Profile is a portal account. Provider accounts link to the single provider
// record they manage; moderator and admin accounts usually link to none.
type Profile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       sec.Role  `json:"role"`
	ProviderID *string   `json:"provider_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Me is the portal home payload: the caller's profile plus the listing they
// manage, when one is linked.
type Me struct {
	Profile  Profile          `json:"profile"`
	Provider *provider.Detail `json:"provider,omitempty"`
}

// ListingEditInput is the portal listing edit payload. ProviderID is only
// honored for admins; provider accounts always edit their own listing.
type ListingEditInput struct {
	ProviderID *string `json:"provider_id"`
	provider.ListingUpdate
}

// Repository abstracts profile persistence.
type Repository interface {

	// FindByID loads a profile by its id.
	FindByID(context context.Context, id string) (*Profile, error)

	// FindByEmail loads a profile by its unique email.
	FindByEmail(context context.Context, email string) (*Profile, error)
}
