package usecase

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"cusceda/services/property/internal/entity"
)

const PropertiesPerPage = 25

// SearchFilter is the public search form. Zero values disable a filter.
type SearchFilter struct {
	Query     string
	Type      string
	Category  string
	State     string
	Bedrooms  int
	Bathrooms int
	Toilets   int
	Area      int
	Feature   string
	Min       float64
	Max       float64
	Sort      string
	Page      int
}

type SearchPage struct {
	Properties []entity.Property `json:"properties"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// ParseSearchFilter reads the search form from a query string. Malformed
// numbers fall back to their neutral value.
func ParseSearchFilter(values url.Values) SearchFilter {
	query := values.Get("query")
	if query == "" {
		query = values.Get("search")
	}

	f := SearchFilter{
		Query:     query,
		Type:      values.Get("type"),
		Category:  values.Get("category"),
		State:     values.Get("state"),
		Bedrooms:  leadingInt(values.Get("bedrooms")),
		Bathrooms: leadingInt(values.Get("bathrooms")),
		Toilets:   leadingInt(values.Get("toilets")),
		Area:      leadingInt(values.Get("area")),
		Feature:   values.Get("feature"),
		Min:       parseFloatOr(values.Get("min"), 0),
		Max:       parseFloatOr(values.Get("max"), math.Inf(1)),
		Sort:      values.Get("sort"),
		Page:      leadingInt(values.Get("page")),
	}
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

// ApplySearch filters, sorts and pages properties. The input order is kept
// when no sort is requested.
func ApplySearch(properties []entity.Property, f SearchFilter) SearchPage {
	q := strings.ToLower(f.Query)
	max := f.Max
	if max == 0 {
		max = math.Inf(1)
	}

	filtered := make([]entity.Property, 0, len(properties))
	for _, p := range properties {
		if f.Type != "" && string(p.Type) != f.Type {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.State != "" && p.State != f.State {
			continue
		}
		if f.Bedrooms > 0 && p.Bedrooms < f.Bedrooms {
			continue
		}
		if f.Bathrooms > 0 && p.Bathrooms < f.Bathrooms {
			continue
		}
		if f.Toilets > 0 && p.Toilets < f.Toilets {
			continue
		}
		if f.Area > 0 && p.Area < float64(f.Area) {
			continue
		}
		if f.Feature != "" && !contains(p.Features, f.Feature) {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if p.Price < f.Min || p.Price > max {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.Sort {
	case "asc price":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "desc price":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case "asc date":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt.Before(filtered[j].CreatedAt) })
	case "desc date":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	total := len(filtered)
	start := (page - 1) * PropertiesPerPage
	if start > total {
		start = total
	}
	end := start + PropertiesPerPage
	if end > total {
		end = total
	}

	return SearchPage{
		Properties: filtered[start:end],
		Total:      total,
		Page:       page,
		TotalPages: (total + PropertiesPerPage - 1) / PropertiesPerPage,
	}
}

func matchesQuery(p entity.Property, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Address), q) ||
		strings.Contains(strings.ToLower(p.City), q) ||
		strings.Contains(strings.ToLower(p.State), q)
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

// leadingInt parses the leading digits of s ("3+" is 3); anything else is 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// parseFloatOr reads the leading number of s ("250000abc" is 250000).
// No number, zero or NaN yields fallback.
func parseFloatOr(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return fallback
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '-' || s[exp] == '+') {
			exp++
		}
		if exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
				exp++
			}
			end = exp
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || v == 0 || math.IsNaN(v) {
		return fallback
	}
	return v
}
