package testutil

import (
	"context"
	"sync"

	"github.com/wahinekai/memberdb-backend/internal/docstore"
	"github.com/wahinekai/memberdb-backend/internal/repository/memory"
)

// Store operation names used by FaultStore
const (
	OpQuery      = "Query"
	OpQueryAll   = "QueryAll"
	OpInsert     = "Insert"
	OpReplace    = "Replace"
	OpDeleteByID = "DeleteByID"
)

// FaultStore is an in-memory docstore.Store that counts calls per operation
// and can fail them on demand
type FaultStore struct {
	*memory.DocumentStore

	mu     sync.Mutex
	calls  map[string]int
	queued map[string][]error
	always map[string]error
}

// NewFaultStore creates an empty FaultStore
func NewFaultStore() *FaultStore {
	return &FaultStore{
		DocumentStore: memory.NewDocumentStore(),
		calls:         make(map[string]int),
		queued:        make(map[string][]error),
		always:        make(map[string]error),
	}
}

var _ docstore.Store = (*FaultStore)(nil)

// FailNext makes the next len(errs) calls of op fail with errs in order
func (s *FaultStore) FailNext(op string, errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued[op] = append(s.queued[op], errs...)
}

// FailAlways makes every call of op fail with err; nil clears it
func (s *FaultStore) FailAlways(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.always, op)
		return
	}
	s.always[op] = err
}

// Calls returns how many times op was called
func (s *FaultStore) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// ResetCalls zeroes every call counter
func (s *FaultStore) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
}

// Seed inserts documents directly, bypassing counters and faults
func (s *FaultStore) Seed(docs ...docstore.Document) error {
	for _, doc := range docs {
		if _, err := s.DocumentStore.Insert(context.Background(), doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *FaultStore) enter(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	if q := s.queued[op]; len(q) > 0 {
		s.queued[op] = q[1:]
		return q[0]
	}
	return s.always[op]
}

func (s *FaultStore) Query(ctx context.Context, filter docstore.Filter, limit int) ([]docstore.Document, error) {
	if err := s.enter(OpQuery); err != nil {
		return nil, err
	}
	return s.DocumentStore.Query(ctx, filter, limit)
}

func (s *FaultStore) QueryAll(ctx context.Context) ([]docstore.Document, error) {
	if err := s.enter(OpQueryAll); err != nil {
		return nil, err
	}
	return s.DocumentStore.QueryAll(ctx)
}

func (s *FaultStore) Insert(ctx context.Context, doc docstore.Document) (docstore.Document, error) {
	if err := s.enter(OpInsert); err != nil {
		return nil, err
	}
	return s.DocumentStore.Insert(ctx, doc)
}

func (s *FaultStore) Replace(ctx context.Context, id string, doc docstore.Document) (docstore.Document, error) {
	if err := s.enter(OpReplace); err != nil {
		return nil, err
	}
	return s.DocumentStore.Replace(ctx, id, doc)
}

func (s *FaultStore) DeleteByID(ctx context.Context, id string) error {
	if err := s.enter(OpDeleteByID); err != nil {
		return err
	}
	return s.DocumentStore.DeleteByID(ctx, id)
}
