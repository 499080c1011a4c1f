package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (b *fakeBackend) Get(ctx context.Context, key string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	v, ok := b.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (b *fakeBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if b.err != nil {
		return b.err
	}
	b.data[key] = value
	b.ttls[key] = ttl
	return nil
}

func (b *fakeBackend) Incr(ctx context.Context, key string) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	n, _ := strconv.ParseInt(b.data[key], 10, 64)
	n++
	b.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

type countingSearch struct {
	ids   []uuid.UUID
	calls map[string]int
}

func (s *countingSearch) Search(ctx context.Context, q string) ([]uuid.UUID, error) {
	s.calls["search"]++
	return s.ids, nil
}

func (s *countingSearch) Suggest(ctx context.Context, q string) ([]uuid.UUID, error) {
	s.calls["suggest"]++
	return s.ids[:1], nil
}

func (s *countingSearch) AutoComplete(ctx context.Context, q string) (string, error) {
	s.calls["autocomplete"]++
	return "anside", nil
}

func newTestCache() (*SearchCache, *fakeBackend, *countingSearch) {
	inner := &countingSearch{ids: []uuid.UUID{uuid.New(), uuid.New()}, calls: map[string]int{}}
	b := newFakeBackend()
	return &SearchCache{inner: inner, backend: b, ttl: time.Minute}, b, inner
}

func TestSearchCache_HitsAfterFirstCall(t *testing.T) {
	c, b, inner := newTestCache()
	ctx := context.Background()

	first, err := c.Search(ctx, "Jane  Surf")
	require.NoError(t, err)
	second, err := c.Search(ctx, "jane surf")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls["search"])
	for _, ttl := range b.ttls {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestSearchCache_KindsAreSeparate(t *testing.T) {
	c, _, inner := newTestCache()
	ctx := context.Background()

	_, _ = c.Search(ctx, "ja")
	ids, err := c.Suggest(ctx, "ja")
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	text, err := c.AutoComplete(ctx, "Oce")
	require.NoError(t, err)
	text, err = c.AutoComplete(ctx, "Oce")
	require.NoError(t, err)
	assert.Equal(t, "anside", text)

	assert.Equal(t, 1, inner.calls["search"])
	assert.Equal(t, 1, inner.calls["suggest"])
	assert.Equal(t, 1, inner.calls["autocomplete"])
}

func TestSearchCache_Invalidate(t *testing.T) {
	c, _, inner := newTestCache()
	ctx := context.Background()

	_, _ = c.Search(ctx, "jane")
	c.Invalidate(ctx)
	_, _ = c.Search(ctx, "jane")

	assert.Equal(t, 2, inner.calls["search"])
}

func TestSearchCache_RedisDownFallsThrough(t *testing.T) {
	c, b, inner := newTestCache()
	b.err = errors.New("connection refused")
	ctx := context.Background()

	ids, err := c.Search(ctx, "jane")
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	_, _ = c.Search(ctx, "jane")
	c.Invalidate(ctx)

	assert.Equal(t, 2, inner.calls["search"])
}
