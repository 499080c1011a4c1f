package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Registry hands out one connection pool per connection string.
// It is created at startup, passed to whatever needs a pool, and closed on shutdown.
type Registry struct {
	mu       sync.Mutex
	pools    map[string]*pgxpool.Pool
	maxConns int32
	closed   bool
}

// NewRegistry creates an empty registry. maxConns <= 0 keeps the pgx default.
func NewRegistry(maxConns int32) *Registry {
	return &Registry{
		pools:    make(map[string]*pgxpool.Pool),
		maxConns: maxConns,
	}
}

// Pool returns the pool for connString, connecting on first use
func (r *Registry) Pool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmt.Errorf("registry is closed")
	}
	if pool, ok := r.pools[connString]; ok {
		return pool, nil
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	if r.maxConns > 0 {
		config.MaxConns = r.maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	r.pools[connString] = pool
	log.Info().Str("host", config.ConnConfig.Host).Str("database", config.ConnConfig.Database).Msg("Connected to database")
	return pool, nil
}

// Len returns the number of open pools
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pools)
}

// Close closes every pool. Later calls to Pool fail.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, pool := range r.pools {
		pool.Close()
		delete(r.pools, key)
	}
	r.closed = true
}
