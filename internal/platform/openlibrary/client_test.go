package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subjectJSON = `{
  "key": "/subjects/science_fiction",
  "name": "Science fiction",
  "work_count": 2,
  "works": [
    {
      "key": "/works/OL59863W",
      "title": "The Left Hand of Darkness",
      "authors": [{"key": "/authors/OL31353A", "name": "Ursula K. Le Guin"}],
      "first_publish_year": 1969,
      "subject": ["Science fiction", "Gender"]
    },
    {
      "key": "/works/OL1W",
      "title": "Anonymous",
      "authors": []
    }
  ]
}`

func newTestClient(url string, retries int) *Client {
	return NewClient(Options{
		BaseURL:    url,
		UserAgent:  "booklist-test",
		RPS:        1000,
		MaxRetries: retries,
		Timeout:    time.Second,
	})
}

func TestClient_GetSubject(t *testing.T) {
	t.Run("decodes works", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/subjects/science_fiction.json", r.URL.Path)
			assert.Equal(t, "100", r.URL.Query().Get("limit"))
			assert.Equal(t, "booklist-test", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(subjectJSON))
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL, 0).GetSubject(context.Background(), "science_fiction", 100)
		require.NoError(t, err)
		require.Len(t, res.Works, 2)

		w := res.Works[0]
		assert.Equal(t, "The Left Hand of Darkness", w.Title)
		require.Len(t, w.Authors, 1)
		assert.Equal(t, "Ursula K. Le Guin", w.Authors[0].Name)
		require.NotNil(t, w.FirstPublishYear)
		assert.Equal(t, 1969, *w.FirstPublishYear)
		assert.Nil(t, w.RatingsAverage)
		assert.Empty(t, res.Works[1].Authors)
	})

	t.Run("no retry by default", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, 0).GetSubject(context.Background(), "science_fiction", 100)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("negative retries behave like none", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(subjectJSON))
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL, -1).GetSubject(context.Background(), "science_fiction", 100)
		require.NoError(t, err)
		assert.Len(t, res.Works, 2)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, 2).GetSubject(context.Background(), "nope", 10)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("retries server errors when configured", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(subjectJSON))
		}))
		defer srv.Close()

		res, err := newTestClient(srv.URL, 1).GetSubject(context.Background(), "science_fiction", 100)
		require.NoError(t, err)
		assert.Len(t, res.Works, 2)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"works": [`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, 0).GetSubject(context.Background(), "science_fiction", 100)
		assert.Error(t, err)
	})
}

func TestClient_SubjectURL(t *testing.T) {
	c := newTestClient("https://example.org", 0)
	assert.Equal(t, "https://example.org/subjects/science_fiction.json?limit=100", c.SubjectURL("science_fiction", 100))
}
