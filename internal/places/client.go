// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

/*
Package places integrates the Google Places Web Service into the directory.

It exposes two consumed operations — text search and place detail — plus the
address-parsing heuristics used to normalize place records into the internal
location schema.

Failure Policy:

  - Non-2xx responses and transport errors are returned as ordinary errors.
  - Callers (fallback resolver, ingestion job) treat any error as "tier
    unavailable" and degrade; a Places outage never crashes a request.
*/
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// defaultBaseURL is the production Places Web Service endpoint.
	defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// requestTimeout bounds each outbound call so a slow Places API cannot
	// hold a directory request past its fallback window.
	requestTimeout = 10 * time.Second
)

// AddressComponent is a typed fragment of a structured place address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// PlaceSummary is a text-search result row.
type PlaceSummary struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Types            []string `json:"types"`
}

// PlaceDetail is the full record returned by the detail endpoint.
type PlaceDetail struct {
	PlaceID                  string             `json:"place_id"`
	Name                     string             `json:"name"`
	FormattedAddress         string             `json:"formatted_address"`
	FormattedPhoneNumber     *string            `json:"formatted_phone_number"`
	InternationalPhoneNumber *string            `json:"international_phone_number"`
	Website                  *string            `json:"website"`
	Types                    []string           `json:"types"`
	AddressComponents        []AddressComponent `json:"address_components"`
}

// Client is a thin HTTP client for the Places Web Service.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *slog.Logger
}

// Option customizes a [Client]; used by tests to point at a stub server.
type Option func(*Client)

// WithBaseURL overrides the Places endpoint base URL.
func WithBaseURL(baseURL string) Option {
	return func(client *Client) { client.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// NewClient constructs a Places client keyed by the given API credential.
func NewClient(apiKey string, logger *slog.Logger, options ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		logger:     logger,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// # Consumed Operations

/*
TextSearch runs a free-text place search biased to the given region.

Parameters:
  - context: context.Context
  - query: string (e.g. "disability services Sydney")
  - region: string (ccTLD region bias, e.g. "au")

Returns:
  - []PlaceSummary: Rows with both a place_id and a name
  - error: Transport failures or non-OK API status
*/
func (client *Client) TextSearch(context context.Context, query, region string) ([]PlaceSummary, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("region", region)
	params.Set("key", client.apiKey)

	var payload struct {
		Status  string         `json:"status"`
		Results []PlaceSummary `json:"results"`
	}
	if err := client.get(context, "/textsearch/json", params, &payload); err != nil {
		return nil, err
	}
	if err := checkStatus(payload.Status); err != nil {
		return nil, err
	}

	// Rows without an identifier or name cannot be ingested or linked.
	results := make([]PlaceSummary, 0, len(payload.Results))
	for _, place := range payload.Results {
		if place.PlaceID != "" && place.Name != "" {
			results = append(results, place)
		}
	}

	return results, nil
}

/*
Details fetches the full record for a single place.

Parameters:
  - context: context.Context
  - placeID: string

Returns:
  - *PlaceDetail: nil when the place does not exist (a normal absence)
  - error: Transport failures or non-OK API status
*/
func (client *Client) Details(context context.Context, placeID string) (*PlaceDetail, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", client.apiKey)
	params.Set("fields", "place_id,name,formatted_address,formatted_phone_number,international_phone_number,website,address_components,types")

	var payload struct {
		Status string       `json:"status"`
		Result *PlaceDetail `json:"result"`
	}
	if err := client.get(context, "/details/json", params, &payload); err != nil {
		return nil, err
	}
	if payload.Status == "NOT_FOUND" || payload.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if err := checkStatus(payload.Status); err != nil {
		return nil, err
	}
	if payload.Result == nil || payload.Result.Name == "" || payload.Result.PlaceID == "" {
		return nil, nil
	}

	return payload.Result, nil
}

// get performs a GET request and decodes the JSON body into target.
func (client *Client) get(context context.Context, path string, params url.Values, target any) error {
	endpoint := client.baseURL + path + "?" + params.Encode()

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("places: failed to build request: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("places: request failed: %w", err)
	}
	defer response.Body.Close()

	// A non-2xx status is treated identically to a network failure.
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("places: unexpected status %d from %s", response.StatusCode, path)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("places: failed to decode response: %w", err)
	}

	return nil
}

// checkStatus maps the Places API status field to an error.
func checkStatus(status string) error {
	switch status {
	case "OK", "ZERO_RESULTS", "":
		return nil
	default:
		return fmt.Errorf("places: api status %s", status)
	}
}

// # Type-Tag Formatting

// ignoredPlaceTypes carry no service information worth displaying.
var ignoredPlaceTypes = map[string]struct{}{
	"point_of_interest": {},
	"establishment":     {},
	"premise":           {},
	"health":            {},
	"store":             {},
}

// ServiceNames converts raw place type tags into human-readable service
// names ("aged_care_home" → "Aged Care Home"), dropping generic tags and
// duplicates while preserving order.
func ServiceNames(types []string) []string {
	if len(types) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(types))
	var names []string

	for _, typeTag := range types {
		if _, ignored := ignoredPlaceTypes[typeTag]; ignored {
			continue
		}

		words := strings.Split(typeTag, "_")
		for i, word := range words {
			if word == "" {
				continue
			}
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}

		name := strings.Join(words, " ")
		if _, duplicate := seen[name]; duplicate || name == "" {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
