package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/members")
	t.Setenv("AUTH0_DOMAIN", "wki.us.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.wahinekai.org")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 10, cfg.StoreMaxRetries)
	assert.Equal(t, time.Second, cfg.StoreRetryDelay)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.DirectoryEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_MAX_RETRIES", "3")
	t.Setenv("STORE_RETRY_DELAY", "250ms")
	t.Setenv("SEARCH_CACHE_TTL", "30")
	t.Setenv("CORS_ORIGINS", "https://a.org,https://b.org")
	t.Setenv("AUTH0_MGMT_CLIENT_ID", "id")
	t.Setenv("AUTH0_MGMT_CLIENT_SECRET", "secret")
	t.Setenv("S3_BUCKET", "member-photos")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.wahinekai.org/")
	t.Setenv("PUBLIC_API_URL", "https://members.wahinekai.org/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.StoreMaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreRetryDelay)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, []string{"https://a.org", "https://b.org"}, cfg.CORSOrigins)
	assert.Equal(t, "https://cdn.wahinekai.org", cfg.S3.PublicBaseURL)
	assert.Equal(t, "https://members.wahinekai.org", cfg.PublicAPIURL)
	assert.True(t, cfg.DirectoryEnabled())
}

func TestLoad_MemoryDriverNeedsNoDatabase(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverMemory)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTH0_DOMAIN", "wki.us.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.wahinekai.org")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"unknown driver", map[string]string{"STORE_DRIVER": "cosmos"}},
		{"missing auth0 domain", map[string]string{"AUTH0_DOMAIN": ""}},
		{"missing auth0 audience", map[string]string{"AUTH0_AUDIENCE": ""}},
		{"negative retries", map[string]string{"STORE_MAX_RETRIES": "-1"}},
		{"zero rate limit", map[string]string{"RATE_LIMIT_PER_MINUTE": "0"}},
		{"bucket without public base url", map[string]string{"S3_BUCKET": "member-photos", "S3_PUBLIC_BASE_URL": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
