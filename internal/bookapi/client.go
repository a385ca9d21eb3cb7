package bookapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/five82/folio/internal/book"
)

// Client talks to a crudcrud-style REST collection.
type Client struct {
	baseURL    *url.URL
	collection string
	http       *http.Client
	userAgent  string
	now        func() time.Time
	limiter    *rate.Limiter
	log        zerolog.Logger
}

const (
	defaultBaseURL    = "127.0.0.1:7488/api/local"
	defaultCollection = "books"
	defaultUserAgent  = "folio/0.1"
	requestTimeout    = 10 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithClock overrides the clock used to stamp createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRateLimit throttles outgoing requests. A non-positive rps disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger attaches a request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithCollection overrides the collection name (default "books").
func WithCollection(name string) Option {
	return func(c *Client) {
		if trimmed := strings.Trim(strings.TrimSpace(name), "/"); trimmed != "" {
			c.collection = trimmed
		}
	}
}

// NewClient builds a Client for the collection rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    base,
		collection: defaultCollection,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches every record, newest first.
func (c *Client) List(ctx context.Context) ([]book.Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []record
	if err := c.do(ctx, OpFetch, http.MethodGet, c.collectionPath(), nil, &payload); err != nil {
		return nil, err
	}
	books := make([]book.Book, 0, len(payload))
	for _, r := range payload {
		books = append(books, r.toBook())
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	return books, nil
}

// Create stamps createdAt and submits the draft. It returns the stored record.
func (c *Client) Create(ctx context.Context, draft book.Draft) (book.Book, error) {
	if c == nil {
		return book.Book{}, fmt.Errorf("client is nil")
	}
	body := draftRecord(draft)
	body.CreatedAt = formatTimestamp(c.now())

	var created record
	if err := c.do(ctx, OpCreate, http.MethodPost, c.collectionPath(), body, &created); err != nil {
		return book.Book{}, err
	}
	return created.toBook(), nil
}

// Update replaces the stored record with draft, preserving createdAt and
// stamping a new updatedAt. The server's last writer wins.
func (c *Client) Update(ctx context.Context, id string, draft book.Draft, createdAt time.Time) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return &Error{Op: OpUpdate, Err: fmt.Errorf("book id required")}
	}
	body := draftRecord(draft)
	body.CreatedAt = formatTimestamp(createdAt)
	body.UpdatedAt = formatTimestamp(c.now())
	return c.do(ctx, OpUpdate, http.MethodPut, c.itemPath(id), body, nil)
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return &Error{Op: OpDelete, Err: fmt.Errorf("book id required")}
	}
	return c.do(ctx, OpDelete, http.MethodDelete, c.itemPath(id), nil, nil)
}

// BaseURL returns the normalized collection root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) collectionPath() string {
	return c.baseURL.Path + "/" + c.collection
}

func (c *Client) itemPath(id string) string {
	return c.collectionPath() + "/" + strings.TrimSpace(id)
}

func (c *Client) do(ctx context.Context, op Op, method, path string, body, dest any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return transportError(op, fmt.Errorf("rate limit: %w", err))
		}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return transportError(op, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	reqURL := *c.baseURL
	reqURL.Path = path
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return transportError(op, fmt.Errorf("create request: %w", err))
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Msg("book store request failed")
		return transportError(op, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("book store request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Warn().
			Str("request_id", requestID).
			Str("op", string(op)).
			Int("status", resp.StatusCode).
			Msg("book store rejected request")
		return statusError(op, resp.StatusCode)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return transportError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
