package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/c14220110/poliklinik-lab/config"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	maxRetries = 5
	retryDelay = 2 * time.Second
)

// Connect membuka koneksi Redis dan mencoba ping beberapa kali sebelum menyerah.
func Connect(ctx context.Context, cfg *config.Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Network:  "tcp",
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	var err error
	for i := 0; i < maxRetries; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			log.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")
			return client, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("max", maxRetries).Msg("failed to connect to Redis")

		select {
		case <-ctx.Done():
			client.Close()
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, err)
}
