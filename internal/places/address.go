// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package places

import (
	"regexp"
	"strings"

	"github.com/carefinder-au/carefinder/internal/platform/constants"
	"github.com/carefinder-au/carefinder/pkg/pointer"
)

var (
	// stateToken matches the eight Australian state/territory abbreviations.
	stateToken = regexp.MustCompile(`(?i)\b(ACT|NSW|NT|QLD|SA|TAS|VIC|WA)\b`)
	// postcodeToken matches a standalone 4-digit Australian postcode.
	postcodeToken = regexp.MustCompile(`\b(\d{4})\b`)
)

// ParsedAddress is the best-effort address extraction result.
//
// Fields that could not be derived are nil — never guessed.
type ParsedAddress struct {
	State    *string
	Suburb   *string
	Postcode *string
	Country  *string
}

// ParseAddress derives a [ParsedAddress] from a place record.
//
// The structured component list is authoritative; the free-text formatted
// address is only consulted when the components yield neither a state nor a
// suburb. Place data is inconsistent between the two shapes, and the
// two-tier heuristic maximizes extraction without fuzzy suburb matching.
func ParseAddress(components []AddressComponent, formatted string) ParsedAddress {
	if parsed, ok := parseComponents(components); ok {
		return parsed
	}
	return parseFormatted(formatted)
}

// parseComponents extracts fields from typed address components.
//
// It reports ok=false when neither state nor suburb is present, signalling
// the caller to fall back to free-text parsing.
func parseComponents(components []AddressComponent) (ParsedAddress, bool) {
	find := func(componentType string) *string {
		for _, component := range components {
			for _, tag := range component.Types {
				if tag == componentType && component.ShortName != "" {
					return pointer.To(component.ShortName)
				}
			}
		}
		return nil
	}

	parsed := ParsedAddress{
		State:    find("administrative_area_level_1"),
		Postcode: find("postal_code"),
		Country:  find("country"),
	}

	parsed.Suburb = find("locality")
	if parsed.Suburb == nil {
		parsed.Suburb = find("sublocality_level_1")
	}

	if parsed.State == nil && parsed.Suburb == nil {
		return ParsedAddress{}, false
	}

	return parsed, true
}

// parseFormatted extracts fields from a single formatted address string.
//
// # Heuristics
//
//   - State: first state/territory token anywhere in the string, uppercased.
//   - Postcode: first standalone 4-digit token.
//   - Suburb: second-to-last comma segment (or the only segment), stripped
//     of state and postcode tokens.
//   - Country: fixed default, since formatted AU addresses rarely carry one.
func parseFormatted(address string) ParsedAddress {
	parsed := ParsedAddress{}
	if strings.TrimSpace(address) == "" {
		return parsed
	}

	if match := stateToken.FindString(address); match != "" {
		parsed.State = pointer.To(strings.ToUpper(match))
	}

	if match := postcodeToken.FindString(address); match != "" {
		parsed.Postcode = pointer.To(match)
	}

	parts := strings.Split(address, ",")
	segment := strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		segment = strings.TrimSpace(parts[len(parts)-2])
	}

	suburb := stateToken.ReplaceAllString(segment, "")
	suburb = postcodeToken.ReplaceAllString(suburb, "")
	suburb = strings.TrimSpace(suburb)

	if suburb == "" {
		suburb = strings.TrimSpace(parts[0])
	}
	if suburb != "" {
		parsed.Suburb = pointer.To(suburb)
	}

	parsed.Country = pointer.To(constants.DefaultCountry)

	return parsed
}
