package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carefinder-au/carefinder/internal/platform/middleware"
	requestutil "github.com/carefinder-au/carefinder/internal/platform/request"
	"github.com/carefinder-au/carefinder/internal/platform/respond"
	"github.com/carefinder-au/carefinder/internal/platform/sec"
	"github.com/carefinder-au/carefinder/pkg/pagination"
)

// # Handler Implementation

// Handler implements the review HTTP surface: the public endpoints nested
// under provider slugs, and the moderation queue.
type Handler struct {
	service *Service
}

// NewHandler constructs a review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ModerationRoutes returns the /moderation subtree. Moderator role or above.
func (handler *Handler) ModerationRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleModerator))

	router.Get("/reviews", handler.listPending)
	router.Post("/reviews/{id}/approve", handler.approve)
	router.Post("/reviews/{id}/reject", handler.reject)

	return router
}

// # Public Endpoints

/*
GET /api/v1/providers/{slug}/reviews.
*/
func (handler *Handler) ListApproved(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")
	params := pagination.FromRequest(request)

	reviews, total, err := handler.service.ApprovedForProvider(request.Context(), slug, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if reviews == nil {
		reviews = []Review{}
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/providers/{slug}/reviews.

Anonymous submission; the review stays pending until moderated.
*/
func (handler *Handler) Submit(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	var input SubmitInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Submit(request.Context(), slug, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// # Moderation Endpoints

/*
GET /api/v1/moderation/reviews.

The pending queue in arrival order.
*/
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	reviews, total, err := handler.service.PendingQueue(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if reviews == nil {
		reviews = []Review{}
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/moderation/reviews/{id}/approve.
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	handler.moderate(writer, request, StatusApproved)
}

/*
POST /api/v1/moderation/reviews/{id}/reject.
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	handler.moderate(writer, request, StatusRejected)
}

// moderate applies the decision on behalf of the authenticated moderator.
func (handler *Handler) moderate(writer http.ResponseWriter, request *http.Request, decision Status) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Moderate(request.Context(), requestutil.ID(request, "id"), decision, claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}
