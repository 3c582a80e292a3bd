// Package query implements the listing pipeline shared by every paginated
// collection in the API: normalization of raw filter parameters into a
// ListQuery, conjunctive predicate composition, deterministic ordering, and
// pagination.
package query

import "time"

// OrderingToken identifies a resolved sort order. Tokens are resolved once
// during normalization; unknown raw tokens fall back to OrderDefault, so
// downstream comparator resolution is total.
type OrderingToken int

const (
	// OrderDefault keeps the collection's stable insertion order.
	OrderDefault OrderingToken = iota
	OrderCreatedAsc
	OrderCreatedDesc
	OrderTitleAsc
	OrderTitleDesc
	OrderDateAsc
	OrderDateDesc
	OrderPriceAsc
	OrderPriceDesc
	OrderCapacityAsc
	OrderCapacityDesc
	OrderScoreAsc
	OrderScoreDesc
	OrderVotesAsc
	OrderVotesDesc
)

// String returns the raw token form, primarily for logs and diagnostics.
func (t OrderingToken) String() string {
	switch t {
	case OrderCreatedAsc:
		return "created_at"
	case OrderCreatedDesc:
		return "-created_at"
	case OrderTitleAsc:
		return "title"
	case OrderTitleDesc:
		return "-title"
	case OrderDateAsc:
		return "date"
	case OrderDateDesc:
		return "-date"
	case OrderPriceAsc:
		return "price_per_hour"
	case OrderPriceDesc:
		return "-price_per_hour"
	case OrderCapacityAsc:
		return "capacity"
	case OrderCapacityDesc:
		return "-capacity"
	case OrderScoreAsc:
		return "score"
	case OrderScoreDesc:
		return "-score"
	case OrderVotesAsc:
		return "votes_count"
	case OrderVotesDesc:
		return "-votes_count"
	default:
		return "default"
	}
}

// ListQuery is the canonical, fully-validated form of a listing request.
// Nil pointer fields impose no constraint. Ignored lists the raw filter
// keys whose values failed to parse and were dropped.
type ListQuery struct {
	Search      string
	MinCapacity *int
	MaxCapacity *int
	MinPrice    *float64
	MaxPrice    *float64
	MinDate     *time.Time
	MaxDate     *time.Time
	MinScore    *int
	MinVotes    *int
	RelationID  string
	Role        string
	Ordering    OrderingToken
	Page        int
	PageSize    int
	Ignored     []string
}
