package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestJoinAuthors(t *testing.T) {
	t.Run("no authors", func(t *testing.T) {
		assert.Equal(t, "Unknown", JoinAuthors(nil))
		assert.Equal(t, "Unknown", JoinAuthors([]string{}))
	})

	t.Run("several authors", func(t *testing.T) {
		got := JoinAuthors([]string{"Ursula K. Le Guin", "Another Author"})
		assert.Equal(t, "Ursula K. Le Guin, Another Author", got)
	})
}

func TestRecord_Display(t *testing.T) {
	full := Record{
		Key:              "/works/OL1W",
		Title:            "The Dispossessed",
		AuthorName:       "Ursula K. Le Guin",
		FirstPublishYear: ptr(1974),
		Subjects:         []string{"Science fiction", "Anarchism"},
		RatingsAverage:   ptr(4.25),
		AuthorBirthDate:  ptr("21 October 1929"),
		AuthorTopWork:    ptr("A Wizard of Earthsea"),
	}
	assert.Equal(t, []string{
		"The Dispossessed",
		"Ursula K. Le Guin",
		"1974",
		"Science fiction, Anarchism",
		"4.25",
		"21 October 1929",
		"A Wizard of Earthsea",
	}, full.Cells())

	empty := Record{Title: "Untitled", AuthorName: UnknownAuthor}
	assert.Equal(t, []string{"Untitled", "Unknown", "N/A", "N/A", "N/A", "N/A", "N/A"}, empty.Cells())
}

func TestParseSortKey(t *testing.T) {
	for _, c := range Columns {
		key, ok := ParseSortKey(string(c.Key))
		assert.True(t, ok)
		assert.Equal(t, c.Key, key)
	}

	_, ok := ParseSortKey("isbn")
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	a := Record{Title: "Alpha", AuthorName: "Zed", FirstPublishYear: ptr(2001), RatingsAverage: ptr(3.5)}
	b := Record{Title: "Beta", AuthorName: "Amy", FirstPublishYear: ptr(1999)}

	assert.Equal(t, -1, Compare(a, b, SortTitle))
	assert.Equal(t, 1, Compare(a, b, SortAuthorName))
	assert.Equal(t, 1, Compare(a, b, SortFirstPublishYear))
	assert.Equal(t, 0, Compare(a, a, SortTitle))

	t.Run("numbers compare numerically", func(t *testing.T) {
		x := Record{FirstPublishYear: ptr(900)}
		y := Record{FirstPublishYear: ptr(1000)}
		assert.Equal(t, -1, Compare(x, y, SortFirstPublishYear))
	})

	t.Run("absent values compare as empty", func(t *testing.T) {
		assert.Equal(t, 1, Compare(a, b, SortRatingsAverage))
		assert.Equal(t, 0, Compare(Record{}, Record{RatingsAverage: ptr(0.0)}, SortRatingsAverage))
		assert.Equal(t, -1, Compare(Record{}, Record{AuthorTopWork: ptr("x")}, SortAuthorTopWork))
		assert.Equal(t, -1, Compare(Record{}, Record{Subjects: []string{"a"}}, SortSubject))
	})

	t.Run("subjects compare joined without spaces", func(t *testing.T) {
		// "a,!" < "a,b" although the display forms order "a, b" first.
		x := Record{Subjects: []string{"a", "b"}}
		y := Record{Subjects: []string{"a,!"}}
		assert.Equal(t, 1, Compare(x, y, SortSubject))
		assert.Equal(t, "a, b", x.SubjectText())
	})

	t.Run("unknown key sorts by title", func(t *testing.T) {
		assert.Equal(t, -1, Compare(a, b, SortKey("nope")))
	})
}
