// Package docstore is the boundary to the hosted document database that holds
// concept records. Documents are opaque field maps keyed by a store-assigned id.
package docstore

import (
	"context"
	"fmt"
	"sync"
)

// Document is one record of a collection.
type Document struct {
	ID     string
	Fields map[string]any
}

// Store reads documents from a named collection.
type Store interface {
	// FetchAll returns every document of the collection in store iteration order.
	FetchAll(ctx context.Context, collection string) ([]Document, error)
	// Fetch returns a single document; found is false when the id has no record.
	Fetch(ctx context.Context, collection, id string) (doc Document, found bool, err error)
}

// MemoryStore is an in-memory implementation of Store. Iteration order is
// insertion order; an error set with SetErr is returned by every read.
type MemoryStore struct {
	collections map[string][]Document
	err         error
	mu          sync.RWMutex
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]Document),
	}
}

// Put inserts or replaces a document. Replacing keeps the original position.
func (s *MemoryStore) Put(collection string, doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			return
		}
	}
	s.collections[collection] = append(docs, doc)
}

// SetErr makes subsequent reads fail with err (nil restores normal reads).
func (s *MemoryStore) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *MemoryStore) FetchAll(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}
	docs := s.collections[collection]
	out := make([]Document, len(docs))
	copy(out, docs)
	return out, nil
}

func (s *MemoryStore) Fetch(ctx context.Context, collection, id string) (Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return Document{}, false, s.err
	}
	for _, doc := range s.collections[collection] {
		if doc.ID == id {
			return doc, true, nil
		}
	}
	return Document{}, false, nil
}

func validateCollection(collection string) error {
	if collection == "" {
		return fmt.Errorf("collection name is required")
	}
	return nil
}
