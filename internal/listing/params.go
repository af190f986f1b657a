package listing

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"booklist/internal/book"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("param")
	})

	validate.RegisterValidation("sort_key", validateSortKey)
}

func validateSortKey(fl validator.FieldLevel) bool {
	_, ok := book.ParseSortKey(fl.Field().String())
	return ok
}

// Params is a view state as it arrives from a query string or the command line.
type Params struct {
	Author   string `param:"author"`
	Sort     string `param:"sort" validate:"sort_key"`
	Dir      string `param:"dir" validate:"oneof=ascending descending asc desc"`
	Page     int    `param:"page" validate:"min=1"`
	PageSize int    `param:"page_size" validate:"oneof=10 50 100"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field of Params that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate returns a *ValidationError naming the invalid fields, or nil.
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %v", field, fe.Param(), fe.Value())
	case "sort_key":
		return fmt.Sprintf("%s must name a table column, got %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// State converts p into a view state, rejecting it if any field is invalid.
func (p Params) State() (ViewState, error) {
	if err := p.Validate(); err != nil {
		return ViewState{}, err
	}
	return p.merge(DefaultState(), nil), nil
}

// merge copies the fields of p that are not reported in invalid onto s.
func (p Params) merge(s ViewState, invalid *ValidationError) ViewState {
	ok := func(field string) bool { return invalid == nil || !invalid.has(field) }

	s.Query = p.Author
	if ok("sort") {
		s.SortKey = book.SortKey(p.Sort)
	}
	if ok("dir") {
		s.Direction = toDirection(p.Dir)
	}
	if ok("page") {
		s.Page = p.Page
	}
	if ok("page_size") {
		s.PageSize = p.PageSize
	}
	return s
}

// ParseValues builds a state from query parameters. Any missing or invalid
// parameter keeps its default.
func ParseValues(v url.Values) ViewState {
	p := Params{
		Author: v.Get("author"),
		Sort:   v.Get("sort"),
		Dir:    v.Get("dir"),
	}
	// Unparsable numbers stay zero and fail validation.
	p.Page, _ = strconv.Atoi(v.Get("page"))
	p.PageSize, _ = strconv.Atoi(v.Get("page_size"))

	var invalid *ValidationError
	if err := p.Validate(); err != nil && !errors.As(err, &invalid) {
		return DefaultState()
	}
	return p.merge(DefaultState(), invalid)
}

func toDirection(s string) Direction {
	if s == "descending" || s == "desc" {
		return Descending
	}
	return Ascending
}
