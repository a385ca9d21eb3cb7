package state

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/five82/folio/internal/book"
)

// Criteria is the filter and page selection applied to the held collection.
// The zero value means "no filters, page 1".
type Criteria struct {
	SearchText string
	Genre      book.Genre
	Status     book.Status
	Page       int
}

// Filtered reports whether any filter narrows the collection.
func (c Criteria) Filtered() bool {
	return strings.TrimSpace(c.SearchText) != "" || c.Genre != "" || c.Status != ""
}

// Normalize clamps Page to at least 1.
func (c Criteria) Normalize() Criteria {
	if c.Page < 1 {
		c.Page = 1
	}
	return c
}

// Encode renders the criteria as a location query:
// search=&genre=&status=&page=. Empty filters are omitted; page is always set.
func (c Criteria) Encode() string {
	c = c.Normalize()
	parts := make([]string, 0, 4)
	if c.SearchText != "" {
		parts = append(parts, "search="+url.QueryEscape(c.SearchText))
	}
	if c.Genre != "" {
		parts = append(parts, "genre="+url.QueryEscape(string(c.Genre)))
	}
	if c.Status != "" {
		parts = append(parts, "status="+url.QueryEscape(string(c.Status)))
	}
	parts = append(parts, "page="+strconv.Itoa(c.Page))
	return strings.Join(parts, "&")
}

// ParseCriteria decodes a location produced by Encode. It never fails:
// a missing or malformed page decodes as 1 and an unknown genre or status
// decodes as unset.
func ParseCriteria(raw string) Criteria {
	values, _ := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))

	var c Criteria
	c.SearchText = values.Get("search")
	if g, ok := book.ParseGenre(values.Get("genre")); ok {
		c.Genre = g
	}
	if s, ok := book.ParseStatus(values.Get("status")); ok {
		c.Status = s
	}
	if page, err := strconv.Atoi(strings.TrimSpace(values.Get("page"))); err == nil {
		c.Page = page
	}
	return c.Normalize()
}
