package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"booklist/internal/book"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// NumberedRecords returns n records titled "Book 01", "Book 02", ... so that
// title order matches creation order for n < 100.
func NumberedRecords(n int) []book.Record {
	out := make([]book.Record, n)
	for i := range out {
		out[i] = book.Record{
			Key:        fmt.Sprintf("/works/OL%dW", i+1),
			Title:      fmt.Sprintf("Book %02d", i+1),
			AuthorName: "Author",
		}
	}
	return out
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// RecordHTTPResponse decodes a JSON response body into a map.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
