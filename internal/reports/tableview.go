package reports

import (
	"math"
	"strings"
)

// PageSize is the fixed page size used by every report table.
const PageSize = 25

// TableSnapshot is the derived, display-ready slice of a table view.
type TableSnapshot[T any] struct {
	Filtered   []T
	PageItems  []T
	Page       int
	TotalPages int
	Search     string
}

// TableView holds the per-table search and page state for one loaded result
// set. Changing the search or replacing the source resets the page to 1.
type TableView[T any] struct {
	source []T
	fields func(T) []string
	search string
	page   int
}

// NewTableView builds a table view over the designated searchable fields.
func NewTableView[T any](fields func(T) []string) *TableView[T] {
	return &TableView[T]{fields: fields, page: 1}
}

// SetSource replaces the underlying result set and resets the page.
func (v *TableView[T]) SetSource(items []T) {
	v.source = items
	v.page = 1
}

// SetSearch updates the search query. The page resets to 1 before any
// snapshot is taken, so a stale page index can never show out-of-range rows.
func (v *TableView[T]) SetSearch(q string) {
	if q == v.search {
		return
	}
	v.search = q
	v.page = 1
}

// SetPage moves to the requested page. Values below 1 clamp to 1.
func (v *TableView[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

// Reset clears search and page state, as required on drill transitions.
func (v *TableView[T]) Reset() {
	v.search = ""
	v.page = 1
}

// Search returns the current search query.
func (v *TableView[T]) Search() string { return v.search }

// Page returns the current page, clamped into the valid range for the
// current filtered set. An empty set reports page 1.
func (v *TableView[T]) Page() int {
	total := TotalPages(len(FilterRows(v.source, v.search, v.fields)))
	return clampPage(v.page, total)
}

// Snapshot derives the filtered and paginated view of the source.
func (v *TableView[T]) Snapshot() TableSnapshot[T] {
	filtered := FilterRows(v.source, v.search, v.fields)
	totalPages := TotalPages(len(filtered))
	page := clampPage(v.page, totalPages)
	return TableSnapshot[T]{
		Filtered:   filtered,
		PageItems:  PageSlice(filtered, page),
		Page:       page,
		TotalPages: totalPages,
		Search:     v.search,
	}
}

func clampPage(page, totalPages int) int {
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	if page < 1 || totalPages == 0 {
		return 1
	}
	return page
}

// FilterRows returns the rows where at least one designated field contains
// the query as a case-insensitive substring. An empty query returns the
// source unchanged.
func FilterRows[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" || fields == nil {
		return items
	}
	needle := strings.ToLower(query)
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// TotalPages computes ceil(n / PageSize); an empty set has zero pages.
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / float64(PageSize)))
}

// PageSlice returns the 1-based page of the filtered set.
func PageSlice[T any](filtered []T, page int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(filtered) {
		return []T{}
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}
