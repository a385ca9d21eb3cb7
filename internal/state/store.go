package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/folio/internal/book"
	"github.com/five82/folio/internal/bookapi"
)

// NoticeLevel classifies a transient notice.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
)

// Notice is a transient, user-facing message about a mutation.
type Notice struct {
	ID      uint64
	Level   NoticeLevel
	Op      bookapi.Op
	Message string
	Subject string // book title, when known
}

// Snapshot is the collection state at one point in time.
type Snapshot struct {
	Books     []book.Book
	FetchedAt time.Time // zero until the first successful fetch
	Stale     bool
	Loading   bool
	LastError error // most recent list failure, nil after a success
	Criteria  Criteria
	Token     uint64 // latest list request issued
	Notice    *Notice
	Closed    bool

	noticeSeq uint64
}

// Fetched reports whether a list result has ever been applied.
func (s Snapshot) Fetched() bool {
	return !s.FetchedAt.IsZero()
}

// Store serializes actions and hands out cloned snapshots.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	subs     []chan struct{}
}

// Dispatch applies a through Reduce and returns the resulting snapshot.
// Subscribers are notified without blocking.
func (s *Store) Dispatch(a Action) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasClosed := s.snapshot.Closed
	s.snapshot = Reduce(s.snapshot, a)

	if !wasClosed {
		for _, ch := range s.subs {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
		if s.snapshot.Closed {
			for _, ch := range s.subs {
				close(ch)
			}
			s.subs = nil
		}
	}
	return s.cloneLocked()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneLocked()
}

// Subscribe returns a channel that receives a value after state changes.
// Bursts coalesce into one pending signal. The channel is closed when the
// store is closed.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	if s.snapshot.Closed {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) cloneLocked() Snapshot {
	snap := s.snapshot
	snap.Books = cloneBooks(s.snapshot.Books)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	if s.snapshot.Notice != nil {
		notice := *s.snapshot.Notice
		snap.Notice = &notice
	}
	return snap
}

func cloneBooks(books []book.Book) []book.Book {
	if len(books) == 0 {
		return nil
	}
	dup := make([]book.Book, len(books))
	copy(dup, books)
	for i := range dup {
		if dup[i].UpdatedAt != nil {
			t := *dup[i].UpdatedAt
			dup[i].UpdatedAt = &t
		}
	}
	return dup
}
