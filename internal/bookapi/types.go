package bookapi

import (
	"strings"
	"time"

	"github.com/five82/folio/internal/book"
)

// timestampLayout matches JavaScript's Date.toISOString output.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// record mirrors a stored book as the remote collection returns it. The
// store's native identifier stays here and never leaves the package.
type record struct {
	NativeID      string `json:"_id,omitempty"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"publishedYear"`
	Status        string `json:"status"`
	ImageURL      string `json:"imageUrl"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

func (r record) toBook() book.Book {
	out := book.Book{
		ID:            r.NativeID,
		Title:         r.Title,
		Author:        r.Author,
		Genre:         book.Genre(r.Genre),
		PublishedYear: r.PublishedYear,
		Status:        book.Status(r.Status),
		ImageURL:      r.ImageURL,
		CreatedAt:     parseTimestamp(r.CreatedAt),
	}
	if updated := parseTimestamp(r.UpdatedAt); !updated.IsZero() {
		out.UpdatedAt = &updated
	}
	return out
}

func draftRecord(d book.Draft) record {
	return record{
		Title:         d.Title,
		Author:        d.Author,
		Genre:         string(d.Genre),
		PublishedYear: d.PublishedYear,
		Status:        string(d.Status),
		ImageURL:      d.ImageURL,
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return t
	}
	return time.Time{}
}
