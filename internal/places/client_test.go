// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package places_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefinder-au/carefinder/internal/places"
)

func testClient(t *testing.T, handler http.HandlerFunc) *places.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return places.NewClient("test-key", slog.New(slog.DiscardHandler), places.WithBaseURL(server.URL))
}

/*
TestClient_TextSearch verifies result filtering and parameter passing.
*/
func TestClient_TextSearch(t *testing.T) {
	client := testClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/textsearch/json", request.URL.Path)
		assert.Equal(t, "disability services Sydney", request.URL.Query().Get("query"))
		assert.Equal(t, "au", request.URL.Query().Get("region"))
		assert.Equal(t, "test-key", request.URL.Query().Get("key"))

		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{
			"status": "OK",
			"results": [
				{"place_id": "p1", "name": "Aurora Support", "formatted_address": "Sydney NSW"},
				{"place_id": "", "name": "No identifier"},
				{"place_id": "p3", "name": ""}
			]
		}`))
	})

	results, err := client.TextSearch(context.Background(), "disability services Sydney", "au")

	require.NoError(t, err)
	require.Len(t, results, 1, "rows without place_id or name are dropped")
	assert.Equal(t, "p1", results[0].PlaceID)
	assert.Equal(t, "Aurora Support", results[0].Name)
}

/*
TestClient_TextSearch_ZeroResults verifies ZERO_RESULTS is an empty page,
not an error.
*/
func TestClient_TextSearch_ZeroResults(t *testing.T) {
	client := testClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	results, err := client.TextSearch(context.Background(), "nothing here", "au")

	require.NoError(t, err)
	assert.Empty(t, results)
}

/*
TestClient_TextSearch_APIError maps a non-OK API status to an error.
*/
func TestClient_TextSearch_APIError(t *testing.T) {
	client := testClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "results": []}`))
	})

	_, err := client.TextSearch(context.Background(), "query", "au")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OVER_QUERY_LIMIT")
}

/*
TestClient_TextSearch_HTTPError treats a non-2xx response like a transport
failure.
*/
func TestClient_TextSearch_HTTPError(t *testing.T) {
	client := testClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.TextSearch(context.Background(), "query", "au")

	require.Error(t, err)
}

/*
TestClient_Details verifies the happy path and the nil-for-absent contract.
*/
func TestClient_Details(t *testing.T) {
	client := testClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/details/json", request.URL.Path)
		assert.Equal(t, "p1", request.URL.Query().Get("place_id"))

		writer.Write([]byte(`{
			"status": "OK",
			"result": {
				"place_id": "p1",
				"name": "Aurora Support",
				"formatted_address": "1 Example St, Melbourne VIC 3000, Australia",
				"website": "https://aurora.example",
				"formatted_phone_number": "(03) 9000 0000"
			}
		}`))
	})

	detail, err := client.Details(context.Background(), "p1")

	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Aurora Support", detail.Name)
	require.NotNil(t, detail.Website)
	assert.Equal(t, "https://aurora.example", *detail.Website)
}

/*
TestClient_Details_NotFound verifies unknown places come back as a plain
nil, never an error.
*/
func TestClient_Details_NotFound(t *testing.T) {
	client := testClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`{"status": "NOT_FOUND"}`))
	})

	detail, err := client.Details(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, detail)
}

/*
TestServiceNames checks type-tag formatting: generic tags dropped, words
title-cased, duplicates collapsed.
*/
func TestServiceNames(t *testing.T) {
	names := places.ServiceNames([]string{
		"point_of_interest",
		"physiotherapist",
		"health",
		"aged_care_home",
		"physiotherapist",
		"establishment",
	})

	assert.Equal(t, []string{"Physiotherapist", "Aged Care Home"}, names)
}

/*
TestServiceNames_Empty returns nil for no tags.
*/
func TestServiceNames_Empty(t *testing.T) {
	assert.Nil(t, places.ServiceNames(nil))
}
