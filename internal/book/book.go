package book

import (
	"strings"
	"time"
)

// Genre is one of the fixed catalog genres.
type Genre string

// Status reports whether a copy is on the shelf.
type Status string

const (
	GenreFiction        Genre = "Fiction"
	GenreNonFiction     Genre = "Non-Fiction"
	GenreMystery        Genre = "Mystery"
	GenreScienceFiction Genre = "Science Fiction"
	GenreRomance        Genre = "Romance"
	GenreBiography      Genre = "Biography"
)

const (
	StatusAvailable Status = "Available"
	StatusIssued    Status = "Issued"
)

var genres = []Genre{
	GenreFiction,
	GenreNonFiction,
	GenreMystery,
	GenreScienceFiction,
	GenreRomance,
	GenreBiography,
}

var statuses = []Status{StatusAvailable, StatusIssued}

// Genres returns the genre set in display order.
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

// Statuses returns the status set in display order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// ParseGenre resolves a label case-insensitively. Empty input returns ("", true).
func ParseGenre(value string) (Genre, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", true
	}
	for _, g := range genres {
		if strings.EqualFold(string(g), trimmed) {
			return g, true
		}
	}
	return "", false
}

// ParseStatus resolves a label case-insensitively. Empty input returns ("", true).
func ParseStatus(value string) (Status, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", true
	}
	for _, s := range statuses {
		if strings.EqualFold(string(s), trimmed) {
			return s, true
		}
	}
	return "", false
}

// Valid reports whether g is a member of the genre set.
func (g Genre) Valid() bool {
	for _, known := range genres {
		if g == known {
			return true
		}
	}
	return false
}

// Valid reports whether s is a member of the status set.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusIssued
}

// Book is a catalog record as held by the client.
type Book struct {
	ID            string
	Title         string
	Author        string
	Genre         Genre
	PublishedYear int
	Status        Status
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Draft is a book's field set before the store assigns an id and timestamps.
type Draft struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	Genre         Genre  `json:"genre" validate:"required,genre"`
	PublishedYear int    `json:"publishedYear" validate:"required,gte=1000,notfuture"`
	Status        Status `json:"status" validate:"required,bookstatus"`
	ImageURL      string `json:"imageUrl" validate:"omitempty,url"`
}

// NewDraft returns the defaults for a new record.
func NewDraft(now time.Time) Draft {
	return Draft{
		PublishedYear: now.Year(),
		Status:        StatusAvailable,
	}
}

// Draft returns the editable fields of b.
func (b Book) Draft() Draft {
	return Draft{
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		PublishedYear: b.PublishedYear,
		Status:        b.Status,
		ImageURL:      b.ImageURL,
	}
}

// Normalize trims surrounding whitespace from the free-text fields.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Author = strings.TrimSpace(d.Author)
	d.ImageURL = strings.TrimSpace(d.ImageURL)
	return d
}

const placeholderImage = "https://placehold.co/600x400/black/red/?text=%s&font=roboto&red"

// CoverURL returns the record's image, or a placeholder rendered from the title.
func (b Book) CoverURL() string {
	if strings.TrimSpace(b.ImageURL) != "" {
		return b.ImageURL
	}
	return placeholderURL(b.Title)
}
