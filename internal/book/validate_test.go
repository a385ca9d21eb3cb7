package book

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

func validDraft() Draft {
	return Draft{
		Title:         "Dune",
		Author:        "Frank Herbert",
		Genre:         GenreScienceFiction,
		PublishedYear: 1965,
		Status:        StatusAvailable,
	}
}

func TestValidate_AcceptsValidDraft(t *testing.T) {
	errs := Validate(validDraft(), refNow)
	assert.Empty(t, errs)
	assert.NoError(t, Check(validDraft(), refNow))
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		field   string
		message string
	}{
		{"blank title", func(d *Draft) { d.Title = "   " }, "title", "Title is required"},
		{"missing author", func(d *Draft) { d.Author = "" }, "author", "Author is required"},
		{"missing genre", func(d *Draft) { d.Genre = "" }, "genre", "Genre is required"},
		{"unknown genre", func(d *Draft) { d.Genre = "Poetry" }, "genre", "Genre must be one of: Fiction, Non-Fiction, Mystery, Science Fiction, Romance, Biography"},
		{"missing year", func(d *Draft) { d.PublishedYear = 0 }, "publishedYear", "Published year is required"},
		{"year too early", func(d *Draft) { d.PublishedYear = 999 }, "publishedYear", "Invalid year"},
		{"year in future", func(d *Draft) { d.PublishedYear = 2027 }, "publishedYear", "Year cannot be in the future"},
		{"missing status", func(d *Draft) { d.Status = "" }, "status", "Status is required"},
		{"unknown status", func(d *Draft) { d.Status = "Lost" }, "status", "Status must be one of: Available, Issued"},
		{"bad image url", func(d *Draft) { d.ImageURL = "not a url" }, "imageUrl", "Must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			errs := Validate(d, refNow)
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidate_YearBoundsInclusive(t *testing.T) {
	d := validDraft()
	d.PublishedYear = 1000
	assert.Empty(t, Validate(d, refNow))

	d.PublishedYear = refNow.Year()
	assert.Empty(t, Validate(d, refNow))
}

func TestValidate_OptionalImageURL(t *testing.T) {
	d := validDraft()
	d.ImageURL = "  "
	assert.Empty(t, Validate(d, refNow))

	d.ImageURL = "https://example.com/dune.jpg"
	assert.Empty(t, Validate(d, refNow))
}

func TestCheck_ReturnsValidationError(t *testing.T) {
	d := validDraft()
	d.Title = ""
	d.Author = ""

	err := Check(d, refNow)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"author", "title"}, verr.Fields.Fields())
	assert.Equal(t, "invalid book: author: Author is required; title: Title is required", err.Error())
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft(refNow)
	assert.Equal(t, 2026, d.PublishedYear)
	assert.Equal(t, StatusAvailable, d.Status)
	assert.Empty(t, d.Title)
	assert.Empty(t, d.Genre)
}

func TestParseGenreAndStatus(t *testing.T) {
	g, ok := ParseGenre("science fiction")
	assert.True(t, ok)
	assert.Equal(t, GenreScienceFiction, g)

	g, ok = ParseGenre("")
	assert.True(t, ok)
	assert.Empty(t, g)

	_, ok = ParseGenre("Poetry")
	assert.False(t, ok)

	s, ok := ParseStatus(" issued ")
	assert.True(t, ok)
	assert.Equal(t, StatusIssued, s)

	_, ok = ParseStatus("lost")
	assert.False(t, ok)
}

func TestCoverURL_FallsBackToPlaceholder(t *testing.T) {
	b := Book{Title: "The Left Hand of Darkness"}
	assert.Equal(t,
		"https://placehold.co/600x400/black/red/?text=The%20Left%20Hand%20of%20Darkness&font=roboto&red",
		b.CoverURL())

	b.ImageURL = "https://example.com/cover.png"
	assert.Equal(t, "https://example.com/cover.png", b.CoverURL())
}

func TestBookDraft_CopiesEditableFields(t *testing.T) {
	b := Book{ID: "abc", Title: "Emma", Author: "Jane Austen", Genre: GenreRomance, PublishedYear: 1815, Status: StatusIssued}
	assert.Equal(t, Draft{Title: "Emma", Author: "Jane Austen", Genre: GenreRomance, PublishedYear: 1815, Status: StatusIssued}, b.Draft())
}
