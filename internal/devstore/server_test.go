package devstore

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	store := NewStore()
	srv := httptest.NewServer(NewHandler(store, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv, store
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHandler_CRUDLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	base := srv.URL + "/api/token/books"

	resp, body := doJSON(t, http.MethodPost, base, `{"title":"Dune","_id":"spoofed"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)
	assert.NotEqual(t, "spoofed", id)
	assert.Equal(t, "Dune", created["title"])

	resp, body = doJSON(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, id, listed[0]["_id"])

	resp, _ = doJSON(t, http.MethodPut, base+"/"+id, `{"title":"Dune Messiah"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, base+"/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, "Dune Messiah", fetched["title"])
	assert.Equal(t, id, fetched["_id"])

	resp, _ = doJSON(t, http.MethodDelete, base+"/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, base+"/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_EmptyCollectionListsEmptyArray(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/token/books", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHandler_MissingDocuments(t *testing.T) {
	srv, _ := newTestServer(t)
	base := srv.URL + "/api/token/books/nope"

	resp, _ := doJSON(t, http.MethodPut, base, `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_RejectsNonObjectBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/token/books", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	store := NewStore()
	_, err := store.Insert("a", "books", Document{"title": json.RawMessage(`"A"`)})
	require.NoError(t, err)

	assert.Len(t, store.List("a", "books"), 1)
	assert.Empty(t, store.List("b", "books"))
	assert.Empty(t, store.List("a", "authors"))
}

func TestStore_ListPreservesInsertionOrderAcrossReplace(t *testing.T) {
	store := NewStore()
	first, err := store.Insert("ns", "books", Document{"title": json.RawMessage(`"first"`)})
	require.NoError(t, err)
	_, err = store.Insert("ns", "books", Document{"title": json.RawMessage(`"second"`)})
	require.NoError(t, err)

	var id string
	require.NoError(t, json.Unmarshal(first[idField], &id))
	require.True(t, store.Replace("ns", "books", id, Document{"title": json.RawMessage(`"first, edited"`)}))

	docs := store.List("ns", "books")
	require.Len(t, docs, 2)
	assert.JSONEq(t, `"first, edited"`, string(docs[0]["title"]))
	assert.JSONEq(t, `"second"`, string(docs[1]["title"]))
}

func TestSeed_InsertsRequestedCount(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Seed(store, "ns", "books", 20, now))

	docs := store.List("ns", "books")
	require.Len(t, docs, 20)
	assert.JSONEq(t, `"Dune"`, string(docs[0]["title"]))
	assert.JSONEq(t, `"Dune (copy 2)"`, string(docs[16]["title"]))
	assert.JSONEq(t, `"2026-01-01T00:00:00.000Z"`, string(docs[0]["createdAt"]))
}
