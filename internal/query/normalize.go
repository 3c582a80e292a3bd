package query

import (
	"strconv"
	"strings"
	"time"
)

// Pagination bounds shared by all resources.
const (
	MinPage     = 1
	MinPageSize = 1
	MaxPageSize = 100
)

// Profile describes how one resource interprets raw filter parameters:
// which keys it recognizes, its ordering token table, and its defaults.
type Profile struct {
	DefaultPageSize int
	DefaultOrdering OrderingToken
	Orderings       map[string]OrderingToken

	// Recognized range filters. Keys absent from these sets are ignored
	// entirely (never an error).
	IntFilters   map[string]bool // min_capacity, max_capacity, min_score, min_votes
	FloatFilters map[string]bool // min_price, max_price
	DateFilters  map[string]bool // min_date, max_date

	// RelationKey, when non-empty, is the exact-match scoping parameter
	// (e.g. "organizer_id"). HasRole enables the hosts role filter.
	RelationKey string
	HasRole     bool
}

// Events lists default to 12 per page and insertion order.
var EventProfile = Profile{
	DefaultPageSize: 12,
	DefaultOrdering: OrderDefault,
	Orderings: map[string]OrderingToken{
		"date":        OrderDateAsc,
		"-date":       OrderDateDesc,
		"title":       OrderTitleAsc,
		"-title":      OrderTitleDesc,
		"created_at":  OrderCreatedAsc,
		"-created_at": OrderCreatedDesc,
	},
	IntFilters:   map[string]bool{"min_capacity": true, "max_capacity": true},
	FloatFilters: map[string]bool{"max_price": true},
	DateFilters:  map[string]bool{"min_date": true, "max_date": true},
	RelationKey:  "organizer_id",
}

var VenueProfile = Profile{
	DefaultPageSize: 12,
	DefaultOrdering: OrderDefault,
	Orderings: map[string]OrderingToken{
		"name":            OrderTitleAsc,
		"-name":           OrderTitleDesc,
		"price_per_hour":  OrderPriceAsc,
		"-price_per_hour": OrderPriceDesc,
		"capacity":        OrderCapacityAsc,
		"-capacity":       OrderCapacityDesc,
		"created_at":      OrderCreatedAsc,
		"-created_at":     OrderCreatedDesc,
	},
	IntFilters:   map[string]bool{"min_capacity": true, "max_capacity": true},
	FloatFilters: map[string]bool{"min_price": true, "max_price": true},
	RelationKey:  "provider_id",
}

// Hosts directory pages are shorter (10) and support reputation filters.
var HostProfile = Profile{
	DefaultPageSize: 10,
	DefaultOrdering: OrderDefault,
	Orderings: map[string]OrderingToken{
		"score":        OrderScoreAsc,
		"-score":       OrderScoreDesc,
		"votes_count":  OrderVotesAsc,
		"-votes_count": OrderVotesDesc,
		"full_name":    OrderTitleAsc,
		"-full_name":   OrderTitleDesc,
		"created_at":   OrderCreatedAsc,
		"-created_at":  OrderCreatedDesc,
	},
	IntFilters: map[string]bool{"min_score": true, "min_votes": true},
	HasRole:    true,
}

// Date filter values accept a plain calendar date or a full timestamp.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Normalize turns raw, loosely-typed filter parameters into a canonical
// ListQuery. Malformed values are dropped silently and recorded in
// ListQuery.Ignored; normalization itself never fails.
func Normalize(raw map[string]string, p Profile) ListQuery {
	q := ListQuery{
		Page:     MinPage,
		PageSize: p.DefaultPageSize,
		Ordering: p.DefaultOrdering,
	}

	q.Search = strings.TrimSpace(raw["search"])

	if p.HasRole {
		role := strings.TrimSpace(strings.ToLower(raw["role"]))
		switch role {
		case "", "organizer", "provider":
			q.Role = role
		default:
			q.Ignored = append(q.Ignored, "role")
		}
	}

	if p.RelationKey != "" {
		q.RelationID = strings.TrimSpace(raw[p.RelationKey])
	}

	intKeys := []string{"min_capacity", "max_capacity", "min_score", "min_votes"}
	for _, key := range intKeys {
		if !p.IntFilters[key] {
			continue
		}
		v, ok := parseIntFilter(raw, key, &q)
		if !ok {
			continue
		}
		switch key {
		case "min_capacity":
			q.MinCapacity = v
		case "max_capacity":
			q.MaxCapacity = v
		case "min_score":
			q.MinScore = v
		case "min_votes":
			q.MinVotes = v
		}
	}

	for _, key := range []string{"min_price", "max_price"} {
		if !p.FloatFilters[key] {
			continue
		}
		val, present := rawValue(raw, key)
		if !present {
			continue
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			q.Ignored = append(q.Ignored, key)
			continue
		}
		if key == "min_price" {
			q.MinPrice = &f
		} else {
			q.MaxPrice = &f
		}
	}

	for _, key := range []string{"min_date", "max_date"} {
		if !p.DateFilters[key] {
			continue
		}
		val, present := rawValue(raw, key)
		if !present {
			continue
		}
		t, err := parseDate(val)
		if err != nil {
			q.Ignored = append(q.Ignored, key)
			continue
		}
		if key == "min_date" {
			q.MinDate = &t
		} else {
			q.MaxDate = &t
		}
	}

	if tok, present := rawValue(raw, "ordering"); present {
		resolved, known := p.Orderings[tok]
		if known {
			q.Ordering = resolved
		} else {
			// Documented fallback, still surfaced for observability.
			q.Ignored = append(q.Ignored, "ordering")
		}
	}

	q.Page = clampInt(raw["page"], MinPage, MinPage)
	q.PageSize = clampInt(raw["page_size"], p.DefaultPageSize, MinPageSize)
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	return q
}

func rawValue(raw map[string]string, key string) (string, bool) {
	v := strings.TrimSpace(raw[key])
	return v, v != ""
}

func parseIntFilter(raw map[string]string, key string, q *ListQuery) (*int, bool) {
	v, present := rawValue(raw, key)
	if !present {
		return nil, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.Ignored = append(q.Ignored, key)
		return nil, false
	}
	return &n, true
}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// clampInt parses a pagination parameter, falling back to def on absent or
// malformed input and clamping to floor.
func clampInt(raw string, def, floor int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < floor {
		return def
	}
	return n
}
