package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/carefinder-au/carefinder/internal/platform/request"
	"github.com/carefinder-au/carefinder/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the sign-in HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /auth subtree. Both endpoints are public by nature.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/magic-link", handler.requestLink)
	router.Post("/redeem", handler.redeem)

	return router
}

// # Endpoints

/*
POST /api/v1/auth/magic-link.

Always responds 200 with the same message; unknown addresses are not
distinguishable from registered ones.
*/
func (handler *Handler) requestLink(writer http.ResponseWriter, request *http.Request) {
	var payload LinkRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RequestLink(request.Context(), payload.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "If the address is registered, a sign-in link has been sent.",
	})
}

/*
POST /api/v1/auth/redeem.
*/
func (handler *Handler) redeem(writer http.ResponseWriter, request *http.Request) {
	var payload RedeemRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Redeem(request.Context(), payload.Token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}
