package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carefinder-au/carefinder/internal/directory/audit"
	"github.com/carefinder-au/carefinder/internal/directory/review"
	"github.com/carefinder-au/carefinder/internal/platform/middleware"
	requestutil "github.com/carefinder-au/carefinder/internal/platform/request"
	"github.com/carefinder-au/carefinder/internal/platform/respond"
	"github.com/carefinder-au/carefinder/internal/platform/sec"
	"github.com/carefinder-au/carefinder/pkg/pagination"
)

// # Handler Implementation

// Handler implements the authenticated /portal surface. It composes the
// profile service with the review and audit domains so providers manage
// everything about their listing from one place.
type Handler struct {
	service *Service
	reviews *review.Service
	trail   *audit.Service
}

// NewHandler constructs a portal [Handler].
func NewHandler(service *Service, reviews *review.Service, trail *audit.Service) *Handler {
	return &Handler{service: service, reviews: reviews, trail: trail}
}

// Routes returns the /portal subtree. Everything requires authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.me)
	router.Patch("/listing", handler.updateListing)
	router.Get("/reviews", handler.listOwnReviews)
	router.Get("/audit", handler.listAudit)

	return router
}

// # Portal Endpoints

/*
GET /api/v1/portal/me.
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	me, err := handler.service.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, me)
}

/*
PATCH /api/v1/portal/listing.

Providers edit their own listing; admins may name any provider_id.
*/
func (handler *Handler) updateListing(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ListingEditInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.UpdateListing(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
GET /api/v1/portal/reviews.

Every review of the caller's listing, pending ones included. Accounts
without a linked provider get an empty page, not an error.
*/
func (handler *Handler) listOwnReviews(writer http.ResponseWriter, request *http.Request) {
	account, err := handler.account(writer, request)
	if account == nil || err != nil {
		return
	}

	params := pagination.FromRequest(request)
	if account.ProviderID == nil {
		respond.Paginated(writer, []review.Review{}, pagination.NewMeta(params.Page, params.Limit, 0))
		return
	}

	reviews, total, err := handler.reviews.OwnReviews(request.Context(), *account.ProviderID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if reviews == nil {
		reviews = []review.Review{}
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/portal/audit.

Moderators and admins see the whole trail (optionally filtered by
entity_type); providers see only their own listing's entries.
*/
func (handler *Handler) listAudit(writer http.ResponseWriter, request *http.Request) {
	account, err := handler.account(writer, request)
	if account == nil || err != nil {
		return
	}

	params := pagination.FromRequest(request)
	filter := audit.ListFilter{EntityType: request.URL.Query().Get("entity_type")}

	if !account.Role.AtLeast(sec.RoleModerator) {
		if account.ProviderID == nil {
			respond.Paginated(writer, []audit.Entry{}, pagination.NewMeta(params.Page, params.Limit, 0))
			return
		}
		filter.EntityType = audit.EntityProvider
		filter.EntityIDs = []string{*account.ProviderID}
	}

	entries, total, err := handler.trail.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

// account loads the caller's stored profile, writing the error response on
// failure. Returns nil when the response has already been written.
func (handler *Handler) account(writer http.ResponseWriter, request *http.Request) (*Profile, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, err
	}

	account, err := handler.service.Account(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, err
	}

	return account, nil
}
