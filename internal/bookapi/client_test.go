package bookapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/folio/internal/book"
	"github.com/five82/folio/internal/devstore"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != "127.0.0.1:7488" || u.Path != "/api/local" {
		t.Fatalf("default base = %q, want 127.0.0.1:7488/api/local", u.String())
	}

	u, err = parseBaseURL("  https://crudcrud.com/api/abc123/?x=1#frag  ")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if got := u.String(); got != "https://crudcrud.com/api/abc123" {
		t.Fatalf("normalized base = %q, want https://crudcrud.com/api/abc123", got)
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func newDevClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(devstore.NewHandler(devstore.NewStore(), zerolog.Nop()))
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/api/test", opts...)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func sampleDraft(title string) book.Draft {
	return book.Draft{
		Title:         title,
		Author:        "Frank Herbert",
		Genre:         book.GenreScienceFiction,
		PublishedYear: 1965,
		Status:        book.StatusAvailable,
	}
}

func TestClient_RoundTrip(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)
	c := newDevClient(t, WithClock(func() time.Time { return clock }))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	created, err := c.Create(ctx, sampleDraft("Dune"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("Create returned empty id")
	}
	if !created.CreatedAt.Equal(clock) {
		t.Fatalf("CreatedAt = %v, want %v", created.CreatedAt, clock)
	}

	books, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(books) != 1 || books[0].ID != created.ID || books[0].Title != "Dune" {
		t.Fatalf("List = %#v, want the created book", books)
	}

	clock = clock.Add(time.Hour)
	edited := sampleDraft("Dune")
	edited.Status = book.StatusIssued
	if err := c.Update(ctx, created.ID, edited, created.CreatedAt); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	books, err = c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := books[0]
	if got.ID != created.ID || got.Status != book.StatusIssued {
		t.Fatalf("after update got %#v, want id %q status Issued", got, created.ID)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("UpdatedAt = %v, want after CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt changed to %v, want %v", got.CreatedAt, created.CreatedAt)
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	books, err = c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("List after delete = %#v, want empty", books)
	}
}

func TestClient_ListSortsNewestFirstAndMapsID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/x/books" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"a","title":"Old","createdAt":"2024-01-01T00:00:00.000Z"},
			{"_id":"b","title":"New","createdAt":"2025-06-01T00:00:00.000Z","updatedAt":"2025-06-02T00:00:00.000Z"},
			{"_id":"c","title":"Undated"}
		]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/x/")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	books, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	var ids []string
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	if strings.Join(ids, ",") != "b,a,c" {
		t.Fatalf("List order = %v, want [b a c]", ids)
	}
	if books[0].UpdatedAt == nil {
		t.Fatalf("UpdatedAt not mapped for %q", books[0].ID)
	}
	if books[1].UpdatedAt != nil {
		t.Fatalf("UpdatedAt = %v for %q, want nil", books[1].UpdatedAt, books[1].ID)
	}
}

func TestClient_SendsFullReplacementOnUpdate(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotRequestID string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	now := time.Date(2026, time.February, 2, 2, 2, 2, 0, time.UTC)
	c, err := NewClient(server.URL+"/api/x", WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	draft := sampleDraft("Dune")
	draft.ImageURL = "https://example.com/dune.png"
	createdAt := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := c.Update(context.Background(), "abc", draft, createdAt); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/api/x/books/abc" {
		t.Fatalf("request = %s %s, want PUT /api/x/books/abc", gotMethod, gotPath)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-Id header missing")
	}
	want := map[string]any{
		"title":         "Dune",
		"author":        "Frank Herbert",
		"genre":         "Science Fiction",
		"publishedYear": float64(1965),
		"status":        "Available",
		"imageUrl":      "https://example.com/dune.png",
		"createdAt":     "2020-01-01T00:00:00.000Z",
		"updatedAt":     "2026-02-02T02:02:02.000Z",
	}
	for k, v := range want {
		if gotBody[k] != v {
			t.Fatalf("body[%q] = %#v, want %#v (body %v)", k, gotBody[k], v, gotBody)
		}
	}
	if _, leaked := gotBody["_id"]; leaked {
		t.Fatalf("body carries _id: %v", gotBody)
	}
}

func TestClient_NonSuccessStatusMapsToOpError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.List(ctx)
	if !errors.Is(err, ErrFetch) || StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("List error = %v, want fetch error with status 500", err)
	}
	if err.Error() != "failed to fetch books: status 500 (Internal Server Error)" {
		t.Fatalf("List error text = %q", err.Error())
	}

	_, err = c.Create(ctx, sampleDraft("Dune"))
	if !errors.Is(err, ErrCreate) || errors.Is(err, ErrFetch) {
		t.Fatalf("Create error = %v, want create error only", err)
	}
	if err := c.Update(ctx, "id", sampleDraft("Dune"), time.Time{}); !errors.Is(err, ErrUpdate) {
		t.Fatalf("Update error = %v, want update error", err)
	}
	if err := c.Delete(ctx, "id"); !errors.Is(err, ErrDelete) {
		t.Fatalf("Delete error = %v, want delete error", err)
	}
}

func TestClient_DecodeErrorAndMissingID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") || !errors.Is(err, ErrFetch) {
		t.Fatalf("List error = %v, want decode response fetch error", err)
	}

	if err := c.Update(context.Background(), " ", sampleDraft("x"), time.Time{}); !errors.Is(err, ErrUpdate) {
		t.Fatalf("Update with blank id error = %v, want update error", err)
	}
	if err := c.Delete(context.Background(), ""); !errors.Is(err, ErrDelete) {
		t.Fatalf("Delete with blank id error = %v, want delete error", err)
	}
}

func TestClient_TransportFailureHasNoStatus(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", WithTimeout(500*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.List(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("List error = %v, want fetch error", err)
	}
	if StatusOf(err) != 0 {
		t.Fatalf("StatusOf = %d, want 0", StatusOf(err))
	}
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	c := newDevClient(t, WithRateLimit(0.001, 1))

	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("first List returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.List(ctx)
	if err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Fatalf("second List error = %v, want rate limit error", err)
	}
}

func TestClient_CustomCollection(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/k", WithCollection("/library/"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if gotPath != "/api/k/library" {
		t.Fatalf("path = %q, want /api/k/library", gotPath)
	}
}
