// Package memory provides an in-process document store for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/docstore"
)

// DocumentStore keeps documents in insertion order behind a mutex.
// Email is unique, matching the Postgres driver's index.
type DocumentStore struct {
	mu    sync.RWMutex
	docs  map[string]docstore.Document
	order []string
	now   func() time.Time
}

// NewDocumentStore creates an empty store
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]docstore.Document),
		now:  time.Now,
	}
}

var _ docstore.Store = (*DocumentStore)(nil)

func (s *DocumentStore) Query(ctx context.Context, filter docstore.Filter, limit int) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []docstore.Document{}
	for _, id := range s.order {
		doc := s.docs[id]
		if filter != nil && !filter.Match(doc) {
			continue
		}
		out = append(out, copyDocument(doc))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *DocumentStore) QueryAll(ctx context.Context) ([]docstore.Document, error) {
	return s.Query(ctx, nil, 0)
}

func (s *DocumentStore) Insert(ctx context.Context, doc docstore.Document) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := doc.ID()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[id]; exists {
		return nil, docstore.ErrConflict
	}
	if s.emailTaken(doc, "") {
		return nil, docstore.ErrUniqueViolation
	}

	stored := s.stamp(doc)
	s.docs[id] = stored
	s.order = append(s.order, id)
	log.Debug().Str("id", id).Msg("Inserted document")
	return copyDocument(stored), nil
}

func (s *DocumentStore) Replace(ctx context.Context, id string, doc docstore.Document) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[id]; !exists {
		return nil, docstore.ErrNotFound
	}
	if s.emailTaken(doc, id) {
		return nil, docstore.ErrUniqueViolation
	}

	stored := s.stamp(doc)
	stored[docstore.IDField] = id
	s.docs[id] = stored
	return copyDocument(stored), nil
}

func (s *DocumentStore) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[id]; !exists {
		return docstore.ErrNotFound
	}
	delete(s.docs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored documents
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// emailTaken must be called with the lock held
func (s *DocumentStore) emailTaken(doc docstore.Document, exceptID string) bool {
	email, ok := doc["email"].(string)
	if !ok || email == "" {
		return false
	}
	for id, existing := range s.docs {
		if id == exceptID {
			continue
		}
		if existing["email"] == email {
			return true
		}
	}
	return false
}

// stamp must be called with the lock held
func (s *DocumentStore) stamp(doc docstore.Document) docstore.Document {
	stored := copyDocument(doc)
	stored[docstore.TimestampField] = s.now().Unix()
	return stored
}

func copyDocument(doc docstore.Document) docstore.Document {
	out := make(docstore.Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = copyValue(inner)
		}
		return m
	case docstore.Document:
		return copyDocument(val)
	case []any:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = copyValue(inner)
		}
		return s
	default:
		return v
	}
}
