package book

import (
	"strconv"
	"strings"
)

// UnknownAuthor is the author name given to works without any authors.
const UnknownAuthor = "Unknown"

// NotAvailable is shown in place of an absent optional value.
const NotAvailable = "N/A"

// Record represents one book of the listing.
type Record struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       string   `json:"author_name"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
	Subjects         []string `json:"subject,omitempty"`
	RatingsAverage   *float64 `json:"ratings_average,omitempty"`
	AuthorBirthDate  *string  `json:"author_birth_date,omitempty"`
	AuthorTopWork    *string  `json:"author_top_work,omitempty"`
}

// JoinAuthors builds the flat author name of a record.
func JoinAuthors(names []string) string {
	if len(names) == 0 {
		return UnknownAuthor
	}
	return strings.Join(names, ", ")
}

// SubjectText returns the subjects joined for display.
func (r Record) SubjectText() string {
	return strings.Join(r.Subjects, ", ")
}

// subjectSortText is the joined form subjects are ordered by.
func (r Record) subjectSortText() string {
	return strings.Join(r.Subjects, ",")
}

// Cells returns the display value of every column, in column order.
func (r Record) Cells() []string {
	cells := make([]string, 0, len(Columns))
	for _, c := range Columns {
		cells = append(cells, r.Display(c.Key))
	}
	return cells
}

// Display formats a single field for the table.
func (r Record) Display(key SortKey) string {
	switch key {
	case SortTitle:
		return r.Title
	case SortAuthorName:
		return r.AuthorName
	case SortFirstPublishYear:
		if r.FirstPublishYear == nil || *r.FirstPublishYear == 0 {
			return NotAvailable
		}
		return strconv.Itoa(*r.FirstPublishYear)
	case SortSubject:
		if len(r.Subjects) == 0 {
			return NotAvailable
		}
		return r.SubjectText()
	case SortRatingsAverage:
		if r.RatingsAverage == nil || *r.RatingsAverage == 0 {
			return NotAvailable
		}
		return strconv.FormatFloat(*r.RatingsAverage, 'f', -1, 64)
	case SortAuthorBirthDate:
		return orNotAvailable(r.AuthorBirthDate)
	case SortAuthorTopWork:
		return orNotAvailable(r.AuthorTopWork)
	}
	return ""
}

func orNotAvailable(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}
