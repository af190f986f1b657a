// Package listing holds the filter, sort and page stages applied to the base list.
// Every function is pure: inputs are never mutated and results are fresh slices.
package listing

import (
	"slices"
	"strings"

	"booklist/internal/book"
)

// Filter keeps the records whose author name contains query, ignoring case.
// The result preserves base order; an empty query keeps every record.
func Filter(base []book.Record, query string) []book.Record {
	needle := strings.ToLower(query)
	out := make([]book.Record, 0, len(base))
	for _, r := range base {
		if strings.Contains(strings.ToLower(r.AuthorName), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders records by key. Ascending is stable; descending is the exact reverse
// of the ascending order.
func Sort(records []book.Record, key book.SortKey, dir Direction) []book.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b book.Record) int {
		return book.Compare(a, b, key)
	})
	if dir == Descending {
		slices.Reverse(out)
	}
	return out
}

// Page is one window of the sorted, filtered list.
type Page struct {
	Items     []book.Record
	Number    int
	Size      int
	Total     int
	PageCount int
}

// Paginate returns the half-open window [(page-1)*size, page*size) of records.
// Pages outside 1..PageCount are empty.
func Paginate(records []book.Record, page, size int) Page {
	p := Page{
		Number:    page,
		Size:      size,
		Total:     len(records),
		PageCount: PageCount(len(records), size),
	}
	start := (page - 1) * size
	if page < 1 || size <= 0 || start >= len(records) {
		p.Items = []book.Record{}
		return p
	}
	end := min(start+size, len(records))
	p.Items = slices.Clone(records[start:end])
	return p
}

// PageCount is ceil(n / size).
func PageCount(n, size int) int {
	if size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Apply runs filter, sort and page over base for the given state.
func Apply(base []book.Record, s ViewState) Page {
	filtered := Filter(base, s.Query)
	sorted := Sort(filtered, s.SortKey, s.Direction)
	return Paginate(sorted, s.Page, s.PageSize)
}
