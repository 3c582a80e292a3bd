package query

import (
	"sort"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
)

// Less orders two items; nil means "keep insertion order".
type Less[T any] func(a, b T) bool

// SortStable orders items in place. The stable sort breaks ties by the
// items' original relative order, so repeated queries against an unchanged
// collection return identical ordering across pages.
func SortStable[T any](items []T, less Less[T]) {
	if less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}

// Desc inverts a comparator.
func Desc[T any](less Less[T]) Less[T] {
	return func(a, b T) bool {
		return less(b, a)
	}
}

// Paginate slices one page out of an already filtered and ordered sequence.
// A page past the end yields empty results, never an error.
func Paginate[T any](items []T, page, pageSize int) model.Page[T] {
	total := len(items)

	lastPage := 0
	if total > 0 {
		lastPage = (total + pageSize - 1) / pageSize
	}

	start := (page - 1) * pageSize
	results := []T{}
	if start < total {
		end := start + pageSize
		if end > total {
			end = total
		}
		results = append(results, items[start:end]...)
	}

	return model.Page[T]{
		Results:  results,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		LastPage: lastPage,
	}
}
