package book

import "cmp"

// SortKey names a sortable column of the listing.
type SortKey string

const (
	SortTitle            SortKey = "title"
	SortAuthorName       SortKey = "author_name"
	SortFirstPublishYear SortKey = "first_publish_year"
	SortSubject          SortKey = "subject"
	SortRatingsAverage   SortKey = "ratings_average"
	SortAuthorBirthDate  SortKey = "author_birth_date"
	SortAuthorTopWork    SortKey = "author_top_work"
)

// Column is a table column and the key it sorts by.
type Column struct {
	Key   SortKey
	Label string
}

// Columns lists the table columns in display order.
var Columns = []Column{
	{Key: SortTitle, Label: "Title"},
	{Key: SortAuthorName, Label: "Author"},
	{Key: SortFirstPublishYear, Label: "First Publish Year"},
	{Key: SortSubject, Label: "Subject"},
	{Key: SortRatingsAverage, Label: "Ratings Average"},
	{Key: SortAuthorBirthDate, Label: "Author Birth Date"},
	{Key: SortAuthorTopWork, Label: "Author Top Work"},
}

// ParseSortKey returns the key named by s and whether it is a known column.
func ParseSortKey(s string) (SortKey, bool) {
	for _, c := range Columns {
		if string(c.Key) == s {
			return c.Key, true
		}
	}
	return "", false
}

// Compare orders a and b by the given key. Strings compare lexicographically and
// numbers numerically; absent values compare as the field's empty value.
// Subjects compare as one string joined with ",".
func Compare(a, b Record, key SortKey) int {
	switch key {
	case SortFirstPublishYear:
		return cmp.Compare(deref(a.FirstPublishYear), deref(b.FirstPublishYear))
	case SortRatingsAverage:
		return cmp.Compare(deref(a.RatingsAverage), deref(b.RatingsAverage))
	case SortSubject:
		return cmp.Compare(a.subjectSortText(), b.subjectSortText())
	case SortAuthorName:
		return cmp.Compare(a.AuthorName, b.AuthorName)
	case SortAuthorBirthDate:
		return cmp.Compare(deref(a.AuthorBirthDate), deref(b.AuthorBirthDate))
	case SortAuthorTopWork:
		return cmp.Compare(deref(a.AuthorTopWork), deref(b.AuthorTopWork))
	default:
		return cmp.Compare(a.Title, b.Title)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
