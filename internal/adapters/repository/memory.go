package repository

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/okian/advisor/internal/domain/reference"
)

type collection struct {
	keys []string
	docs map[string][]byte
}

// MemoryStore keeps documents in memory, in insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*collection)}
}

// Put stores doc under key. Replacing a document keeps its position.
func (s *MemoryStore) Put(_ context.Context, name, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string][]byte)}
		s.collections[name] = c
	}
	if _, exists := c.docs[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.docs[key] = bytes.Clone(doc)
	return nil
}

// Get returns the document stored under key.
func (s *MemoryStore) Get(_ context.Context, name, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.collections[name]; ok {
		if doc, ok := c.docs[key]; ok {
			return bytes.Clone(doc), nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", reference.ErrNotFound, name, key)
}

// List returns the documents of a collection in insertion order.
func (s *MemoryStore) List(_ context.Context, name string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return nil, nil
	}
	docs := make([][]byte, len(c.keys))
	for i, key := range c.keys {
		docs[i] = bytes.Clone(c.docs[key])
	}
	return docs, nil
}

// Counts returns the number of documents per collection.
func (s *MemoryStore) Counts(context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(s.collections))
	for name, c := range s.collections {
		counts[name] = len(c.keys)
	}
	return counts, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
