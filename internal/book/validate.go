package book

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to a user-facing message.
type FieldErrors map[string]string

// Fields returns the failing field names in a stable order.
func (f FieldErrors) Fields() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidationError is returned when a draft is rejected before any request.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range e.Fields.Fields() {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid book: " + strings.Join(parts, "; ")
}

// Check validates d and wraps any failures in a *ValidationError.
func Check(d Draft, now time.Time) error {
	if errs := Validate(d, now); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Validate applies the form rules to d. The returned map is empty when d is valid.
func Validate(d Draft, now time.Time) FieldErrors {
	d = d.Normalize()
	v := newValidator(now.Year())

	out := FieldErrors{}
	err := v.Struct(d)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = friendlyMessage(fe)
	}
	return out
}

// newValidator builds a validator whose year ceiling is fixed at maxYear.
// A fresh instance per call keeps Validate a pure function of its inputs.
func newValidator(maxYear int) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return Genre(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("bookstatus", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return int(fl.Field().Int()) <= maxYear
	})
	return v
}

var fieldLabels = map[string]string{
	"title":         "Title",
	"author":        "Author",
	"genre":         "Genre",
	"publishedYear": "Published year",
	"status":        "Status",
	"imageUrl":      "Image URL",
}

func friendlyMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "gte":
		return "Invalid year"
	case "notfuture":
		return "Year cannot be in the future"
	case "url":
		return "Must be a valid URL"
	case "genre":
		return fmt.Sprintf("%s must be one of: %s", label, joinGenres())
	case "bookstatus":
		return fmt.Sprintf("%s must be one of: %s, %s", label, StatusAvailable, StatusIssued)
	default:
		return label + " is invalid"
	}
}

func joinGenres() string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}

func placeholderURL(title string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(title), "+", "%20")
	return fmt.Sprintf(placeholderImage, escaped)
}
