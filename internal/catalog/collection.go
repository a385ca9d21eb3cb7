package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/folio/internal/book"
	"github.com/five82/folio/internal/bookapi"
	"github.com/five82/folio/internal/state"
)

// DefaultStaleAfter is how long a fetched collection counts as fresh.
const DefaultStaleAfter = 5 * time.Minute

// ErrClosed is returned by operations on a closed Collection.
var ErrClosed = errors.New("collection closed")

// Remote is the CRUD surface a Collection delegates to. *bookapi.Client
// satisfies it.
type Remote interface {
	List(ctx context.Context) ([]book.Book, error)
	Create(ctx context.Context, draft book.Draft) (book.Book, error)
	Update(ctx context.Context, id string, draft book.Draft, createdAt time.Time) error
	Delete(ctx context.Context, id string) error
}

var _ Remote = (*bookapi.Client)(nil)

// Collection mediates between UI intents and the remote store. It owns the
// filter criteria, the held collection and its freshness, and is safe for
// concurrent use.
type Collection struct {
	remote     Remote
	store      state.Store
	staleAfter time.Duration
	now        func() time.Time
	log        zerolog.Logger
	tokens     atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// Option customizes a Collection.
type Option func(*Collection)

// WithStaleAfter sets the freshness window used by Load.
func WithStaleAfter(d time.Duration) Option {
	return func(c *Collection) {
		if d > 0 {
			c.staleAfter = d
		}
	}
}

// WithClock overrides the clock used for freshness and validation.
func WithClock(now func() time.Time) Option {
	return func(c *Collection) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Collection) {
		c.log = log
	}
}

// WithCriteria sets the initial criteria.
func WithCriteria(criteria Criteria) Option {
	return func(c *Collection) {
		c.store.Dispatch(state.CriteriaRestored{Criteria: criteria})
	}
}

// New returns a Collection backed by remote. Nothing is fetched until Load
// or Refresh.
func New(remote Remote, opts ...Option) *Collection {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Collection{
		remote:     remote,
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
		log:        zerolog.Nop(),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Collection) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// Criteria returns the current filter criteria.
func (c *Collection) Criteria() Criteria {
	return c.store.Snapshot().Criteria
}

// Location encodes the current criteria for persistence.
func (c *Collection) Location() string {
	return c.Criteria().Encode()
}

// Restore replaces the criteria with a previously saved location.
func (c *Collection) Restore(location string) {
	c.store.Dispatch(state.CriteriaRestored{Criteria: ParseCriteria(location)})
}

// Subscribe returns a coalescing change signal, closed on Close.
func (c *Collection) Subscribe() <-chan struct{} {
	return c.store.Subscribe()
}

// DerivedView filters and pages the held collection with the current criteria.
func (c *Collection) DerivedView() View {
	snap := c.store.Snapshot()
	return Derive(snap.Books, snap.Criteria)
}

// SetSearchText replaces the search text and returns to page 1.
func (c *Collection) SetSearchText(text string) {
	c.store.Dispatch(state.SearchChanged{Text: text})
}

// SetGenre replaces the genre filter and returns to page 1. Empty clears it.
func (c *Collection) SetGenre(g book.Genre) {
	c.store.Dispatch(state.GenreChanged{Genre: g})
}

// SetStatus replaces the status filter and returns to page 1. Empty clears it.
func (c *Collection) SetStatus(s book.Status) {
	c.store.Dispatch(state.StatusChanged{Status: s})
}

// SetPage selects a page, clamped to the pages the current filters produce.
func (c *Collection) SetPage(page int) {
	view := c.DerivedView()
	c.store.Dispatch(state.PageChanged{Page: page, TotalPages: view.TotalPages})
}

// ClearFilters drops every filter and returns to page 1.
func (c *Collection) ClearFilters() {
	c.store.Dispatch(state.CriteriaRestored{Criteria: Criteria{Page: 1}})
}

// DismissNotice clears the notice with the given id.
func (c *Collection) DismissNotice(id uint64) {
	c.store.Dispatch(state.NoticeCleared{ID: id})
}

// Invalidate marks the held collection stale so the next Load refetches.
func (c *Collection) Invalidate() {
	c.store.Dispatch(state.Invalidated{})
}

// Load fetches the collection when it has never been fetched, was
// invalidated, or is older than the freshness window. Otherwise it returns
// immediately.
func (c *Collection) Load(ctx context.Context) error {
	snap := c.store.Snapshot()
	if snap.Closed {
		return ErrClosed
	}
	if !c.needsFetch(snap) {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *Collection) needsFetch(snap state.Snapshot) bool {
	switch {
	case !snap.Fetched():
		return !snap.Loading
	case snap.Stale:
		return true
	default:
		return c.now().Sub(snap.FetchedAt) >= c.staleAfter
	}
}

// Refresh fetches the collection unconditionally. Only the most recently
// issued fetch may update the held collection.
func (c *Collection) Refresh(ctx context.Context) error {
	if c.store.Snapshot().Closed {
		return ErrClosed
	}
	ctx, cancel := c.bind(ctx)
	defer cancel()

	token := c.tokens.Add(1)
	c.store.Dispatch(state.FetchStarted{Token: token})

	books, err := c.remote.List(ctx)
	if err != nil {
		c.log.Warn().Err(err).Uint64("token", token).Msg("book list fetch failed")
		c.store.Dispatch(state.FetchFailed{Token: token, Err: err})
		return err
	}
	snap := c.store.Dispatch(state.FetchSucceeded{Token: token, Books: books, At: c.now()})
	if snap.Token != token {
		c.log.Debug().Uint64("token", token).Uint64("current", snap.Token).Msg("discarded superseded book list")
	} else {
		c.log.Debug().Int("books", len(books)).Uint64("token", token).Msg("book list fetched")
	}
	return nil
}

// Create validates d, submits it, and refetches the collection on success.
// Validation failures return a *book.ValidationError without any request.
func (c *Collection) Create(ctx context.Context, d book.Draft) (book.Book, error) {
	d = d.Normalize()
	if err := book.Check(d, c.now()); err != nil {
		return book.Book{}, err
	}
	if c.store.Snapshot().Closed {
		return book.Book{}, ErrClosed
	}
	mctx, cancel := c.bind(ctx)
	defer cancel()

	created, err := c.remote.Create(mctx, d)
	if err != nil {
		c.mutationFailed(bookapi.OpCreate, err)
		return book.Book{}, err
	}
	c.mutated(ctx, bookapi.OpCreate, d.Title)
	return created, nil
}

// Update validates d and replaces the record with the given id, keeping the
// record's original createdAt. The store's last writer wins.
func (c *Collection) Update(ctx context.Context, id string, d book.Draft) error {
	d = d.Normalize()
	if err := book.Check(d, c.now()); err != nil {
		return err
	}
	snap := c.store.Snapshot()
	if snap.Closed {
		return ErrClosed
	}
	var createdAt time.Time
	if existing, ok := findBook(snap.Books, id); ok {
		createdAt = existing.CreatedAt
	} else {
		c.log.Debug().Str("id", id).Msg("updating a book missing from the held collection")
	}

	mctx, cancel := c.bind(ctx)
	defer cancel()
	if err := c.remote.Update(mctx, id, d, createdAt); err != nil {
		c.mutationFailed(bookapi.OpUpdate, err)
		return err
	}
	c.mutated(ctx, bookapi.OpUpdate, d.Title)
	return nil
}

// Delete removes the record with the given id and refetches on success.
func (c *Collection) Delete(ctx context.Context, id string) error {
	snap := c.store.Snapshot()
	if snap.Closed {
		return ErrClosed
	}
	var title string
	if existing, ok := findBook(snap.Books, id); ok {
		title = existing.Title
	}

	mctx, cancel := c.bind(ctx)
	defer cancel()
	if err := c.remote.Delete(mctx, id); err != nil {
		c.mutationFailed(bookapi.OpDelete, err)
		return err
	}
	c.mutated(ctx, bookapi.OpDelete, title)
	return nil
}

// Close discards the collection. Results still in flight are ignored and
// later operations return ErrClosed.
func (c *Collection) Close() {
	c.cancel()
	c.store.Dispatch(state.Closed{})
}

func (c *Collection) mutated(ctx context.Context, op bookapi.Op, title string) {
	c.log.Info().Str("op", string(op)).Str("title", title).Msg("book mutation succeeded")
	c.store.Dispatch(state.Invalidated{})
	c.store.Dispatch(state.MutationSucceeded{Op: op, Title: title})
	if err := c.Refresh(ctx); err != nil && !errors.Is(err, ErrClosed) {
		c.log.Warn().Err(err).Str("op", string(op)).Msg("refetch after mutation failed")
	}
}

func (c *Collection) mutationFailed(op bookapi.Op, err error) {
	c.log.Warn().Err(err).Str("op", string(op)).Msg("book mutation failed")
	c.store.Dispatch(state.MutationFailed{Op: op, Err: err})
}

// bind derives a context that is also cancelled when the Collection closes.
func (c *Collection) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func findBook(books []book.Book, id string) (book.Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return book.Book{}, false
}
