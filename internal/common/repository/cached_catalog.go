package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/c14220110/poliklinik-lab/internal/common/models"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const catalogCacheKey = "lab:diagnostic_tests"

// TestSource adalah sumber katalog yang dibungkus cache.
type TestSource interface {
	Tests(ctx context.Context) ([]models.DiagnosticTest, error)
}

// CacheClient adalah bagian klien Redis yang dipakai cache katalog.
type CacheClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// CachedCatalog membaca katalog lewat Redis (read-through). Kegagalan Redis tidak
// menggagalkan request; katalog diambil langsung dari sumber.
type CachedCatalog struct {
	source TestSource
	client CacheClient
	ttl    time.Duration
}

func NewCachedCatalog(source TestSource, client CacheClient, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{source: source, client: client, ttl: ttl}
}

func (c *CachedCatalog) Tests(ctx context.Context) ([]models.DiagnosticTest, error) {
	raw, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	switch {
	case err == nil:
		var tests []models.DiagnosticTest
		if jsonErr := json.Unmarshal(raw, &tests); jsonErr == nil {
			return tests, nil
		}
		log.Warn().Msg("corrupt diagnostic test cache entry, reloading")
	case !errors.Is(err, goredis.Nil):
		log.Warn().Err(err).Msg("diagnostic test cache unavailable")
	}

	tests, err := c.source.Tests(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(tests); err == nil {
		if err := c.client.Set(ctx, catalogCacheKey, payload, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Msg("failed to cache diagnostic tests")
		}
	}
	return tests, nil
}
