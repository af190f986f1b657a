package catalog

import (
	"embed"
	"html/template"
	"net/http"

	"booklist/internal/book"
	"booklist/internal/httpx"
	"booklist/internal/listing"

	"github.com/rs/zerolog"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var listTemplate = template.Must(template.ParseFS(templateFS, "templates/list.html.tmpl"))

// Listing is the loaded base list as seen by the handlers.
type Listing interface {
	Loading() bool
	Records() []book.Record
}

type HTTPHandler struct {
	listing Listing
	log     zerolog.Logger
}

func NewHTTPHandler(l Listing, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{listing: l, log: log}
}

// List handles GET /v1/books
// @Summary List books
// @Description Filter by author, sort by a column and page through the fetched books
// @Tags books
// @Produce json
// @Param author query string false "Author substring, case-insensitive"
// @Param sort query string false "Sort column" default(title)
// @Param dir query string false "ascending or descending" default(ascending)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "10, 50 or 100" default(10)
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	state := listing.ParseValues(r.URL.Query())
	page := listing.Apply(h.listing.Records(), state)

	httpx.JSONSuccess(w, r, page.Items, map[string]any{
		"page":        page.Number,
		"page_size":   page.Size,
		"total":       page.Total,
		"total_pages": page.PageCount,
		"sort":        state.SortKey,
		"direction":   state.Direction,
		"author":      state.Query,
		"loading":     h.listing.Loading(),
	})
}

// Page handles GET /
func (h *HTTPHandler) Page(w http.ResponseWriter, r *http.Request) {
	state := listing.ParseValues(r.URL.Query())

	view := pageView{Loading: h.listing.Loading(), State: state}
	if !view.Loading {
		view.fill(listing.Apply(h.listing.Records(), state))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := listTemplate.Execute(w, view); err != nil {
		h.log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("render book list")
	}
}

// Ready handles GET /readyz
func (h *HTTPHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.listing.Loading() {
		http.Error(w, "loading", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

type pageView struct {
	Loading   bool
	State     listing.ViewState
	Headers   []headerView
	Rows      []rowView
	PageLinks []pageLink
	PageSizes []sizeOption
}

type headerView struct {
	Key       book.SortKey
	Label     string
	Href      string
	Indicator string
}

type rowView struct {
	Key   string
	Cells []string
}

type pageLink struct {
	Number int
	Href   string
	Active bool
}

type sizeOption struct {
	Size     int
	Selected bool
}

func (v *pageView) fill(page listing.Page) {
	s := v.State
	for _, c := range book.Columns {
		hv := headerView{
			Key:   c.Key,
			Label: c.Label,
			Href:  href(s.ToggleSort(c.Key)),
		}
		if c.Key == s.SortKey {
			hv.Indicator = " ▲"
			if s.Direction == listing.Descending {
				hv.Indicator = " ▼"
			}
		}
		v.Headers = append(v.Headers, hv)
	}

	for _, rec := range page.Items {
		v.Rows = append(v.Rows, rowView{Key: rec.Key, Cells: rec.Cells()})
	}

	for n := 1; n <= page.PageCount; n++ {
		v.PageLinks = append(v.PageLinks, pageLink{
			Number: n,
			Href:   href(s.WithPage(n)),
			Active: n == s.Page,
		})
	}

	for _, size := range listing.PageSizes {
		v.PageSizes = append(v.PageSizes, sizeOption{Size: size, Selected: size == s.PageSize})
	}
}

func href(s listing.ViewState) string {
	return "/?" + s.Values().Encode()
}
