package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wahinekai/memberdb-backend/internal/domain"
	"github.com/wahinekai/memberdb-backend/internal/retry"
	"github.com/wahinekai/memberdb-backend/internal/websocket"
)

// FastPolicy is a retry policy with a short delay for tests
func FastPolicy() retry.Policy {
	p := retry.DefaultPolicy()
	p.MaxRetries = 3
	p.Delay = time.Millisecond
	return p
}

// MockSearchRepository is a mock implementation of domain.SearchRepository
type MockSearchRepository struct {
	Results      map[string][]uuid.UUID
	Suggestions  map[string][]uuid.UUID
	Completions  map[string]string
	Err          error
	SearchCalls  []string
	SuggestCalls []string
}

// NewMockSearchRepository creates a new MockSearchRepository
func NewMockSearchRepository() *MockSearchRepository {
	return &MockSearchRepository{
		Results:     make(map[string][]uuid.UUID),
		Suggestions: make(map[string][]uuid.UUID),
		Completions: make(map[string]string),
	}
}

// Search returns the ids registered for query
func (m *MockSearchRepository) Search(ctx context.Context, query string) ([]uuid.UUID, error) {
	m.SearchCalls = append(m.SearchCalls, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results[query], nil
}

// Suggest returns the ids registered for partial
func (m *MockSearchRepository) Suggest(ctx context.Context, partial string) ([]uuid.UUID, error) {
	m.SuggestCalls = append(m.SuggestCalls, partial)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Suggestions[partial], nil
}

// AutoComplete returns the completion registered for partial
func (m *MockSearchRepository) AutoComplete(ctx context.Context, partial string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Completions[partial], nil
}

// Upload is one call recorded by MockUploadRepository
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// MockUploadRepository is a mock implementation of domain.UploadRepository
type MockUploadRepository struct {
	BaseURL string
	Err     error
	Uploads []Upload
}

// NewMockUploadRepository creates a new MockUploadRepository
func NewMockUploadRepository() *MockUploadRepository {
	return &MockUploadRepository{BaseURL: "https://cdn.example.com"}
}

// Upload records the upload and returns BaseURL/fileName
func (m *MockUploadRepository) Upload(ctx context.Context, fileName string, data io.Reader, contentType string, size int64) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Uploads = append(m.Uploads, Upload{FileName: fileName, ContentType: contentType, Size: size, Data: body})
	return fmt.Sprintf("%s/%s", m.BaseURL, fileName), nil
}

// EmailChange is one call recorded by MockDirectoryRepository
type EmailChange struct {
	Old string
	New string
}

// MockDirectoryRepository is a mock implementation of domain.DirectoryRepository
type MockDirectoryRepository struct {
	Err     error
	Changes []EmailChange
}

// UpdateUserEmail records the change
func (m *MockDirectoryRepository) UpdateUserEmail(ctx context.Context, oldEmail, newEmail string) error {
	m.Changes = append(m.Changes, EmailChange{Old: oldEmail, New: newEmail})
	return m.Err
}

// PublishedEvent is one event captured by EventRecorder
type PublishedEvent struct {
	Chapter domain.Chapter
	Event   websocket.Event
}

// EventRecorder is a websocket.EventPublisher that keeps every event
type EventRecorder struct {
	mu     sync.Mutex
	events []PublishedEvent
}

// Publish records the event
func (r *EventRecorder) Publish(chapter domain.Chapter, event websocket.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, PublishedEvent{Chapter: chapter, Event: event})
}

// Events returns a copy of the recorded events
func (r *EventRecorder) Events() []PublishedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PublishedEvent(nil), r.events...)
}

// CountingInvalidator counts search cache invalidations
type CountingInvalidator struct {
	mu    sync.Mutex
	count int
}

// Invalidate increments the counter
func (c *CountingInvalidator) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
}

// Count returns the number of invalidations
func (c *CountingInvalidator) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// NewMember returns a valid draft member in chapter
func NewMember(firstName, email string, chapter domain.Chapter) domain.User {
	var u domain.User
	u.FirstName = firstName
	u.Email = email
	u.Chapter = chapter
	return u
}
