package devstore

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies; stored books are small.
const maxBodyBytes = 1 << 20

// NewHandler exposes store under /api/{namespace}/{collection}, mirroring the
// crudcrud resource layout.
func NewHandler(store *Store, log zerolog.Logger) http.Handler {
	h := &handler{store: store, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Route("/api/{namespace}/{collection}", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.replace)
		r.Delete("/{id}", h.delete)
	})
	return r
}

type handler struct {
	store *Store
	log   zerolog.Logger
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	docs := h.store.List(chi.URLParam(r, "namespace"), chi.URLParam(r, "collection"))
	writeJSON(w, http.StatusOK, docs)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.store.Get(chi.URLParam(r, "namespace"), chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	stored, err := h.store.Insert(chi.URLParam(r, "namespace"), chi.URLParam(r, "collection"), doc)
	if err != nil {
		h.log.Error().Err(err).Msg("insert document")
		http.Error(w, "could not store document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *handler) replace(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	if !h.store.Replace(chi.URLParam(r, "namespace"), chi.URLParam(r, "collection"), chi.URLParam(r, "id"), doc) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(chi.URLParam(r, "namespace"), chi.URLParam(r, "collection"), chi.URLParam(r, "id")) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", r.Header.Get("X-Request-Id")).
			Msg("request")
	})
}

func decodeDocument(w http.ResponseWriter, r *http.Request) (Document, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var doc Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc == nil {
		http.Error(w, "body must be a JSON object", http.StatusBadRequest)
		return nil, false
	}
	delete(doc, idField)
	return doc, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
