package devstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Document is a stored JSON object. The "_id" key is owned by the store.
type Document map[string]json.RawMessage

const idField = "_id"

// Store keeps documents per (namespace, collection) in memory.
type Store struct {
	mu    sync.RWMutex
	data  map[string]map[string]entry
	seq   uint64
	newID func() (string, error)
}

type entry struct {
	doc Document
	seq uint64
}

// NewStore returns an empty store that assigns nanoid identifiers.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]entry),
		newID: func() (string, error) {
			id, err := gonanoid.New()
			if err != nil {
				return "", fmt.Errorf("generate id: %w", err)
			}
			return id, nil
		},
	}
}

func bucketKey(namespace, collection string) string {
	return namespace + "/" + collection
}

// List returns the collection's documents in insertion order.
func (s *Store) List(namespace, collection string) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.data[bucketKey(namespace, collection)]
	entries := make([]entry, 0, len(bucket))
	for _, e := range bucket {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]Document, 0, len(entries))
	for _, e := range entries {
		out = append(out, cloneDocument(e.doc))
	}
	return out
}

// Get returns a single document.
func (s *Store) Get(namespace, collection, id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[bucketKey(namespace, collection)][id]
	if !ok {
		return nil, false
	}
	return cloneDocument(e.doc), true
}

// Insert stores doc under a fresh id and returns the stored copy.
func (s *Store) Insert(namespace, collection string, doc Document) (Document, error) {
	id, err := s.newID()
	if err != nil {
		return nil, err
	}
	encodedID, err := json.Marshal(id)
	if err != nil {
		return nil, fmt.Errorf("encode id: %w", err)
	}

	stored := cloneDocument(doc)
	stored[idField] = encodedID

	s.mu.Lock()
	defer s.mu.Unlock()

	key := bucketKey(namespace, collection)
	bucket, ok := s.data[key]
	if !ok {
		bucket = make(map[string]entry)
		s.data[key] = bucket
	}
	s.seq++
	bucket[id] = entry{doc: stored, seq: s.seq}
	return cloneDocument(stored), nil
}

// Replace swaps the document body for id, keeping its id and position.
func (s *Store) Replace(namespace, collection, id string, doc Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.data[bucketKey(namespace, collection)]
	existing, ok := bucket[id]
	if !ok {
		return false
	}
	stored := cloneDocument(doc)
	stored[idField] = existing.doc[idField]
	bucket[id] = entry{doc: stored, seq: existing.seq}
	return true
}

// Delete removes id. It reports whether the document existed.
func (s *Store) Delete(namespace, collection, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.data[bucketKey(namespace, collection)]
	if _, ok := bucket[id]; !ok {
		return false
	}
	delete(bucket, id)
	return true
}

func cloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		dup := make(json.RawMessage, len(v))
		copy(dup, v)
		out[k] = dup
	}
	return out
}
