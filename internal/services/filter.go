package services

import (
	"strconv"
	"strings"

	"pastoral-bknd/internal/models"
)

// FilterParishes is the pure filter core: it maps the parish collection and
// a filter state to the matching subset, preserving input order and never
// mutating its inputs.
//
// Clauses are conjunctive and evaluated in a fixed order, cheapest first:
// selected ids, services, country, province, then the supplementary clauses
// (free text, city, day-time bucket). A clause whose filter value is empty
// or "all" always passes.
func FilterParishes(parishes []models.Parish, f models.FilterState) []models.Parish {
	f = f.Normalize()

	out := make([]models.Parish, 0, len(parishes))
	for _, p := range parishes {
		if !matchesSelected(p, f.SelectedIDs) {
			continue
		}
		if !matchesServices(p, f.Services) {
			continue
		}
		if f.HasCountry() && p.Country != f.Country {
			continue
		}
		if f.HasProvince() && p.Province != f.Province {
			continue
		}
		if !matchesSearch(p, f.Search) {
			continue
		}
		if f.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(f.City)) {
			continue
		}
		if !matchesDayTime(p, f.DayTime) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSelected(p models.Parish, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, id := range selected {
		if p.ID == id {
			return true
		}
	}
	return false
}

// matchesServices passes when the parish offers ANY of the requested
// services. The match is case-insensitive and substring-tolerant on both
// the service type and its display name, so "misa" matches "Misa dominical".
func matchesServices(p models.Parish, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		lw := strings.ToLower(strings.TrimSpace(w))
		if lw == "" || lw == models.FilterAll {
			return true
		}
		for _, s := range p.Services {
			if strings.Contains(strings.ToLower(s.Type), lw) ||
				strings.Contains(strings.ToLower(s.Name), lw) {
				return true
			}
		}
	}
	return false
}

func matchesSearch(p models.Parish, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.City), q) ||
		strings.Contains(strings.ToLower(p.Address), q)
}

// matchesDayTime buckets schedule start times: morning before 12:00,
// afternoon 12:00–17:59, evening from 18:00.
func matchesDayTime(p models.Parish, bucket string) bool {
	if bucket == "" || bucket == models.FilterAll {
		return true
	}
	for _, s := range p.Services {
		for _, entry := range s.Schedule {
			for _, tr := range entry.Times {
				if bucketOf(tr.Start) == bucket {
					return true
				}
			}
		}
	}
	return false
}

func bucketOf(start string) string {
	h, _, ok := strings.Cut(start, ":")
	if !ok {
		return ""
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return ""
	}
	switch {
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}
