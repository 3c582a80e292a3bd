package query

import (
	"strings"
	"time"
)

// Predicate is a boolean condition over one item, composed conjunctively
// with others to filter a collection.
type Predicate[T any] func(T) bool

// And returns the conjunction of the given predicates. With no predicates
// every item passes.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// TextContains matches items where any designated text field contains the
// term, case-insensitively.
func TextContains[T any](term string, fields func(T) []string) Predicate[T] {
	term = strings.ToLower(term)
	return func(item T) bool {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	}
}

// IntRange passes items whose value lies within [min, max]; a nil bound
// imposes no constraint.
func IntRange[T any](value func(T) int, min, max *int) Predicate[T] {
	return func(item T) bool {
		v := value(item)
		if min != nil && v < *min {
			return false
		}
		if max != nil && v > *max {
			return false
		}
		return true
	}
}

// FloatRange is IntRange for float64-valued fields.
func FloatRange[T any](value func(T) float64, min, max *float64) Predicate[T] {
	return func(item T) bool {
		v := value(item)
		if min != nil && v < *min {
			return false
		}
		if max != nil && v > *max {
			return false
		}
		return true
	}
}

// TimeRange passes items whose timestamp lies within [min, max] inclusive.
func TimeRange[T any](value func(T) time.Time, min, max *time.Time) Predicate[T] {
	return func(item T) bool {
		v := value(item)
		if min != nil && v.Before(*min) {
			return false
		}
		if max != nil && v.After(*max) {
			return false
		}
		return true
	}
}

// Equals is an exact-match relation-scoping filter.
func Equals[T any](value func(T) string, want string) Predicate[T] {
	return func(item T) bool {
		return value(item) == want
	}
}

// Filter returns the items passing pred, preserving input order.
func Filter[T any](items []T, pred Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
