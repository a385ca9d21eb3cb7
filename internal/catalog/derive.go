package catalog

import (
	"strings"

	"github.com/five82/folio/internal/book"
	"github.com/five82/folio/internal/state"
)

// PageSize is the number of books shown per page.
const PageSize = 10

// Criteria is the filter and page selection. See state.Criteria.
type Criteria = state.Criteria

// ParseCriteria decodes a saved location. See state.ParseCriteria.
func ParseCriteria(location string) Criteria {
	return state.ParseCriteria(location)
}

// View is one rendered page of the filtered collection.
type View struct {
	PageItems  []book.Book
	Page       int
	TotalPages int // zero when nothing matches
	Matched    int // books passing every filter
	Total      int // books held
}

// Empty reports whether the current page has nothing to show.
func (v View) Empty() bool {
	return len(v.PageItems) == 0
}

// Derive filters books by c and slices out c.Page. A page past the end yields
// an empty PageItems, never an error. books is not modified.
func Derive(books []book.Book, c Criteria) View {
	c = c.Normalize()
	query := strings.ToLower(c.SearchText)

	matched := make([]book.Book, 0, len(books))
	for _, b := range books {
		if matches(b, query, c) {
			matched = append(matched, b)
		}
	}

	view := View{
		Page:       c.Page,
		TotalPages: (len(matched) + PageSize - 1) / PageSize,
		Matched:    len(matched),
		Total:      len(books),
	}
	if c.Page > view.TotalPages {
		return view
	}
	start := (c.Page - 1) * PageSize
	end := min(start+PageSize, len(matched))
	view.PageItems = matched[start:end:end]
	return view
}

func matches(b book.Book, query string, c Criteria) bool {
	if query != "" &&
		!strings.Contains(strings.ToLower(b.Title), query) &&
		!strings.Contains(strings.ToLower(b.Author), query) {
		return false
	}
	if c.Genre != "" && b.Genre != c.Genre {
		return false
	}
	if c.Status != "" && b.Status != c.Status {
		return false
	}
	return true
}
