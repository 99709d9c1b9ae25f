// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package places_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefinder-au/carefinder/internal/places"
)

func component(longName, shortName string, types ...string) places.AddressComponent {
	return places.AddressComponent{LongName: longName, ShortName: shortName, Types: types}
}

/*
TestParseAddress_StructuredComponents verifies the typed component list is
authoritative when it carries a state or suburb.
*/
func TestParseAddress_StructuredComponents(t *testing.T) {
	components := []places.AddressComponent{
		component("12", "12", "street_number"),
		component("Hunter Street", "Hunter St", "route"),
		component("Newcastle", "Newcastle", "locality", "political"),
		component("New South Wales", "NSW", "administrative_area_level_1", "political"),
		component("2300", "2300", "postal_code"),
		component("Australia", "AU", "country", "political"),
	}

	parsed := places.ParseAddress(components, "ignored free text, QLD 4000")

	require.NotNil(t, parsed.State)
	assert.Equal(t, "NSW", *parsed.State)
	require.NotNil(t, parsed.Suburb)
	assert.Equal(t, "Newcastle", *parsed.Suburb)
	require.NotNil(t, parsed.Postcode)
	assert.Equal(t, "2300", *parsed.Postcode)
	require.NotNil(t, parsed.Country)
	assert.Equal(t, "AU", *parsed.Country)
}

/*
TestParseAddress_SublocalityFallback verifies sublocality stands in when no
locality component exists.
*/
func TestParseAddress_SublocalityFallback(t *testing.T) {
	components := []places.AddressComponent{
		component("Parramatta", "Parramatta", "sublocality_level_1"),
		component("New South Wales", "NSW", "administrative_area_level_1"),
	}

	parsed := places.ParseAddress(components, "")

	require.NotNil(t, parsed.Suburb)
	assert.Equal(t, "Parramatta", *parsed.Suburb)
}

/*
TestParseAddress_FallsBackToFormatted verifies components carrying neither
state nor suburb hand over to the free-text heuristics.
*/
func TestParseAddress_FallsBackToFormatted(t *testing.T) {
	components := []places.AddressComponent{
		component("Australia", "AU", "country"),
	}

	parsed := places.ParseAddress(components, "45 Collins St, Melbourne VIC 3000, Australia")

	require.NotNil(t, parsed.State)
	assert.Equal(t, "VIC", *parsed.State)
	require.NotNil(t, parsed.Suburb)
	assert.Equal(t, "Melbourne", *parsed.Suburb)
	require.NotNil(t, parsed.Postcode)
	assert.Equal(t, "3000", *parsed.Postcode)
}

/*
TestParseAddress_Formatted exercises the free-text heuristics directly.
*/
func TestParseAddress_Formatted(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		state    string
		suburb   string
		postcode string
	}{
		{
			name:     "standard_three_segments",
			address:  "10 Smith St, Fitzroy VIC 3065, Australia",
			state:    "VIC",
			suburb:   "Fitzroy",
			postcode: "3065",
		},
		{
			name:    "lowercase_state_uppercased",
			address: "Darwin nt, Australia",
			state:   "NT",
			suburb:  "Darwin",
		},
		{
			name:     "single_segment",
			address:  "Hobart TAS 7000",
			state:    "TAS",
			suburb:   "Hobart",
			postcode: "7000",
		},
		{
			name:     "first_postcode_wins",
			address:  "Unit 2200, Brisbane QLD 4000, Australia",
			state:    "QLD",
			suburb:   "Brisbane",
			postcode: "2200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := places.ParseAddress(nil, tt.address)

			if tt.state == "" {
				assert.Nil(t, parsed.State)
			} else {
				require.NotNil(t, parsed.State)
				assert.Equal(t, tt.state, *parsed.State)
			}

			if tt.suburb == "" {
				assert.Nil(t, parsed.Suburb)
			} else {
				require.NotNil(t, parsed.Suburb)
				assert.Equal(t, tt.suburb, *parsed.Suburb)
			}

			if tt.postcode == "" {
				assert.Nil(t, parsed.Postcode)
			} else {
				require.NotNil(t, parsed.Postcode)
				assert.Equal(t, tt.postcode, *parsed.Postcode)
			}

			require.NotNil(t, parsed.Country)
			assert.Equal(t, "Australia", *parsed.Country)
		})
	}
}

/*
TestParseAddress_Empty verifies nothing is ever guessed from an empty input.
*/
func TestParseAddress_Empty(t *testing.T) {
	parsed := places.ParseAddress(nil, "   ")

	assert.Nil(t, parsed.State)
	assert.Nil(t, parsed.Suburb)
	assert.Nil(t, parsed.Postcode)
	assert.Nil(t, parsed.Country)
}
