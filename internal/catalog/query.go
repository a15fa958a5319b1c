// Package catalog filters the plan and FAQ collections supplied by the host.
// Every comparison goes through textnorm so casing and accents never cause misses.
package catalog

import (
	"strings"

	"travel_assistant/internal/domain"
	"travel_assistant/internal/textnorm"
)

// UniqueCities returns the distinct non-blank cities in first-seen order.
// The first spelling seen wins ("Medellín" then "medellin" keeps "Medellín").
func UniqueCities(plans []domain.Plan) []string {
	seen := make(map[string]struct{}, len(plans))
	out := make([]string, 0, len(plans))
	for _, p := range plans {
		key := textnorm.Normalize(p.City)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(p.City))
	}
	return out
}

func VisiblePlans(plans []domain.Plan) []domain.Plan {
	out := make([]domain.Plan, 0, len(plans))
	for _, p := range plans {
		if p.Visible {
			out = append(out, p)
		}
	}
	return out
}

func PlansByCity(city string, plans []domain.Plan) []domain.Plan {
	want := textnorm.Normalize(city)
	if want == "" {
		return []domain.Plan{}
	}
	out := make([]domain.Plan, 0)
	for _, p := range plans {
		if p.Visible && textnorm.Normalize(p.City) == want {
			out = append(out, p)
		}
	}
	return out
}

// FindPlansByFreeText returns the visible plans whose city, country, title or
// category contains the query, or whose city is contained in the query
// ("quiero ir a cartagena" matches city "Cartagena"). Catalog order, no ranking.
func FindPlansByFreeText(query string, plans []domain.Plan) []domain.Plan {
	q := textnorm.Normalize(query)
	out := make([]domain.Plan, 0)
	if q == "" {
		return out
	}
	for _, p := range plans {
		if !p.Visible {
			continue
		}
		if matchesPlan(q, p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesPlan(q string, p domain.Plan) bool {
	city := textnorm.Normalize(p.City)
	if city != "" && strings.Contains(q, city) {
		return true
	}
	for _, field := range []string{city, textnorm.Normalize(p.Country), textnorm.Normalize(p.Title), textnorm.Normalize(p.Category)} {
		if field != "" && strings.Contains(field, q) {
			return true
		}
	}
	return false
}
