// Package filter derives the displayed property list on the client from the
// full list and the screen's filter controls. It is pure: no I/O, no clock,
// no mutation of its inputs.
package filter

import (
	"math"
	"strconv"
	"strings"

	"hanapBack/internal/models"
)

// TypeAll disables the type predicate.
const TypeAll = "all"

// State mirrors the filter controls of a listing screen. Price bounds are kept
// as the raw text-field strings; anything that does not parse to a finite
// number simply means the bound is not applied.
type State struct {
	Query    string `json:"query"`
	Type     string `json:"type"`
	MinPrice string `json:"min_price"`
	MaxPrice string `json:"max_price"`
}

// Reset clears all four controls at once, the "clear filters" action.
func (s *State) Reset() {
	s.Query = ""
	s.Type = TypeAll
	s.MinPrice = ""
	s.MaxPrice = ""
}

// Apply returns the properties satisfying every active predicate, in their
// original relative order. Inactive predicates pass everything through, so an
// all-empty state returns the input list unchanged.
func Apply(properties []models.Property, state State) []models.Property {
	query := strings.ToLower(strings.TrimSpace(state.Query))
	minPrice, hasMin := parsePrice(state.MinPrice)
	maxPrice, hasMax := parsePrice(state.MaxPrice)

	result := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if state.Type != "" && state.Type != TypeAll && p.Type != state.Type {
			continue
		}
		if hasMin && p.Price < minPrice {
			continue
		}
		if hasMax && p.Price > maxPrice {
			continue
		}
		result = append(result, p)
	}
	return result
}

// matchesQuery checks the lowercased query against title, description and
// location. Absent optional fields are excluded from matching.
func matchesQuery(p models.Property, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), query) {
		return true
	}
	if p.Location != nil && strings.Contains(strings.ToLower(*p.Location), query) {
		return true
	}
	return false
}

func parsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
