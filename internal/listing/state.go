package listing

import (
	"net/url"
	"strconv"

	"booklist/internal/book"
)

// Direction is the sort order of the selected column.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// PageSizes are the selectable page sizes.
var PageSizes = []int{10, 50, 100}

const (
	DefaultPageSize = 10
	DefaultSortKey  = book.SortTitle
)

// ViewState is the user's current selection. It is a value: every change returns
// a new state.
type ViewState struct {
	Query     string
	SortKey   book.SortKey
	Direction Direction
	Page      int
	PageSize  int
}

// DefaultState is the state of a freshly opened listing.
func DefaultState() ViewState {
	return ViewState{
		SortKey:   DefaultSortKey,
		Direction: Ascending,
		Page:      1,
		PageSize:  DefaultPageSize,
	}
}

// ToggleSort selects key. Selecting the ascending key again flips it to descending;
// anything else sorts key ascending.
func (s ViewState) ToggleSort(key book.SortKey) ViewState {
	dir := Ascending
	if s.SortKey == key && s.Direction == Ascending {
		dir = Descending
	}
	s.SortKey = key
	s.Direction = dir
	return s
}

// WithQuery changes the author search. The page number is kept.
func (s ViewState) WithQuery(q string) ViewState {
	s.Query = q
	return s
}

// WithPage moves to page n.
func (s ViewState) WithPage(n int) ViewState {
	s.Page = n
	return s
}

// WithPageSize changes the page size without re-clamping the page number.
func (s ViewState) WithPageSize(n int) ViewState {
	s.PageSize = n
	return s
}

// Values encodes the state as query parameters; the inverse of ParseValues.
func (s ViewState) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set("author", s.Query)
	}
	v.Set("sort", string(s.SortKey))
	v.Set("dir", string(s.Direction))
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("page_size", strconv.Itoa(s.PageSize))
	return v
}
