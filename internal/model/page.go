package model

// Page is one windowed slice of a filtered, ordered collection plus the
// metadata pagination controls need. Total counts items after filtering,
// before slicing; LastPage is ceil(Total/PageSize).
type Page[T any] struct {
	Results        []T      `json:"results"`
	Total          int      `json:"total"`
	Page           int      `json:"page"`
	PageSize       int      `json:"pageSize"`
	LastPage       int      `json:"lastPage"`
	IgnoredFilters []string `json:"ignoredFilters,omitempty"`
}
