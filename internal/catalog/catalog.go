package catalog

import (
	"context"
	"errors"

	"booklist/internal/book"
	"booklist/internal/platform/openlibrary"
)

// ErrFetchFailure wraps any failure of the one catalog fetch.
var ErrFetchFailure = errors.New("fetch failure")

const (
	DefaultSubject = "science_fiction"
	DefaultLimit   = 100
	// MaxLimit caps the works requested and kept by a single fetch.
	MaxLimit = 100
)

// Source yields the works of an Open Library subject.
type Source interface {
	GetSubject(ctx context.Context, subject string, limit int) (*openlibrary.SubjectResponse, error)
}

type Config struct {
	Subject string
	Limit   int
}

// FromWork normalizes a work into a listing record.
func FromWork(w openlibrary.Work) book.Record {
	var names []string
	for _, a := range w.Authors {
		names = append(names, a.Name)
	}
	return book.Record{
		Key:              w.Key,
		Title:            w.Title,
		AuthorName:       book.JoinAuthors(names),
		FirstPublishYear: w.FirstPublishYear,
		Subjects:         w.Subject,
		RatingsAverage:   w.RatingsAverage,
		AuthorBirthDate:  w.AuthorBirthDate,
		AuthorTopWork:    w.AuthorTopWork,
	}
}

// Normalize converts at most limit works into records, keeping upstream order.
func Normalize(works []openlibrary.Work, limit int) []book.Record {
	if limit > 0 && len(works) > limit {
		works = works[:limit]
	}
	out := make([]book.Record, 0, len(works))
	for _, w := range works {
		out = append(out, FromWork(w))
	}
	return out
}
