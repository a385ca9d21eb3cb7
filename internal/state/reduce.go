package state

import (
	"time"

	"github.com/five82/folio/internal/book"
	"github.com/five82/folio/internal/bookapi"
)

// Action describes one state transition. The set is closed; see Reduce.
type Action interface {
	action()
}

// SearchChanged replaces the free-text filter.
type SearchChanged struct{ Text string }

// GenreChanged replaces the genre filter. Empty clears it.
type GenreChanged struct{ Genre book.Genre }

// StatusChanged replaces the status filter. Empty clears it.
type StatusChanged struct{ Status book.Status }

// PageChanged selects a page, clamped to TotalPages.
type PageChanged struct {
	Page       int
	TotalPages int
}

// CriteriaRestored replaces all criteria at once, e.g. from a saved location.
type CriteriaRestored struct{ Criteria Criteria }

// FetchStarted marks a list request in flight. Token must increase.
type FetchStarted struct{ Token uint64 }

// FetchSucceeded delivers the list result for Token.
type FetchSucceeded struct {
	Token uint64
	Books []book.Book
	At    time.Time
}

// FetchFailed delivers a list failure for Token.
type FetchFailed struct {
	Token uint64
	Err   error
}

// Invalidated marks the held collection stale.
type Invalidated struct{}

// MutationSucceeded records a completed create, update or delete.
type MutationSucceeded struct {
	Op    bookapi.Op
	Title string
}

// MutationFailed records a rejected create, update or delete.
type MutationFailed struct {
	Op  bookapi.Op
	Err error
}

// NoticeCleared dismisses the notice with the given ID. Zero dismisses any.
type NoticeCleared struct{ ID uint64 }

// Closed tears the state down. Every later action is ignored.
type Closed struct{}

func (SearchChanged) action()     {}
func (GenreChanged) action()      {}
func (StatusChanged) action()     {}
func (PageChanged) action()       {}
func (CriteriaRestored) action()  {}
func (FetchStarted) action()      {}
func (FetchSucceeded) action()    {}
func (FetchFailed) action()       {}
func (Invalidated) action()       {}
func (MutationSucceeded) action() {}
func (MutationFailed) action()    {}
func (NoticeCleared) action()     {}
func (Closed) action()            {}

// Reduce returns the snapshot that results from applying a to s. It never
// mutates s.Books in place.
func Reduce(s Snapshot, a Action) Snapshot {
	if s.Closed {
		return s
	}
	s.Criteria = s.Criteria.Normalize()

	switch a := a.(type) {
	case SearchChanged:
		s.Criteria.SearchText = a.Text
		s.Criteria.Page = 1
	case GenreChanged:
		s.Criteria.Genre = a.Genre
		s.Criteria.Page = 1
	case StatusChanged:
		s.Criteria.Status = a.Status
		s.Criteria.Page = 1
	case PageChanged:
		s.Criteria.Page = clampPage(a.Page, a.TotalPages)
	case CriteriaRestored:
		s.Criteria = a.Criteria.Normalize()
	case FetchStarted:
		if a.Token <= s.Token {
			return s
		}
		s.Token = a.Token
		s.Loading = true
	case FetchSucceeded:
		if a.Token != s.Token {
			return s
		}
		s.Books = a.Books
		s.FetchedAt = a.At
		s.Loading = false
		s.Stale = false
		s.LastError = nil
	case FetchFailed:
		if a.Token != s.Token {
			return s
		}
		s.Loading = false
		s.LastError = a.Err
	case Invalidated:
		s.Stale = true
	case MutationSucceeded:
		s = s.withNotice(NoticeSuccess, a.Op, successMessage(a.Op))
		s.Notice.Subject = a.Title
	case MutationFailed:
		msg := "Error"
		if a.Err != nil {
			msg = "Error: " + a.Err.Error()
		}
		s = s.withNotice(NoticeError, a.Op, msg)
	case NoticeCleared:
		if s.Notice != nil && (a.ID == 0 || a.ID == s.Notice.ID) {
			s.Notice = nil
		}
	case Closed:
		s.Closed = true
		s.Loading = false
	}
	return s
}

func clampPage(page, totalPages int) int {
	if totalPages <= 0 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func successMessage(op bookapi.Op) string {
	switch op {
	case bookapi.OpCreate:
		return "Book added successfully!"
	case bookapi.OpUpdate:
		return "Book updated successfully!"
	case bookapi.OpDelete:
		return "Book deleted successfully!"
	default:
		return "Done"
	}
}

func (s Snapshot) withNotice(level NoticeLevel, op bookapi.Op, message string) Snapshot {
	s.noticeSeq++
	s.Notice = &Notice{
		ID:      s.noticeSeq,
		Level:   level,
		Op:      op,
		Message: message,
	}
	return s
}
