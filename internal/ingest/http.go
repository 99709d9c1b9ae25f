// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package ingest

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carefinder-au/carefinder/internal/platform/apperr"
	"github.com/carefinder-au/carefinder/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes the ingestion job as a scheduler-triggered endpoint.
type Handler struct {
	syncer *Syncer
	secret string
}

// NewHandler constructs an ingest [Handler]. An empty secret disables the
// bearer check and trusts the network boundary instead.
func NewHandler(syncer *Syncer, secret string) *Handler {
	return &Handler{syncer: syncer, secret: secret}
}

// Routes returns the /jobs subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sync-places", handler.syncPlaces)

	return router
}

/*
POST /api/v1/jobs/sync-places.

Triggered by the external scheduler. When SYNC_SECRET is configured the
request must carry it as a bearer token.
*/
func (handler *Handler) syncPlaces(writer http.ResponseWriter, request *http.Request) {
	if handler.secret != "" && !handler.authorized(request) {
		respond.Error(writer, request, apperr.Unauthorized("Invalid job credential"))
		return
	}

	report, err := handler.syncer.Run(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

// authorized checks the bearer credential in constant time.
func (handler *Handler) authorized(request *http.Request) bool {
	header := request.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(handler.secret)) == 1
}
