// Package cache реализует хранилище отозванных сессионных токенов на Redis.
//
// JWT сам по себе не отзывается, поэтому signOut и принудительный разрыв
// сессии не-администратора записывают токен сюда до момента его
// естественного истечения.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/arqr-labs/halal-catalog/internal/config"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

// TokenStore хранит отозванные токены в Redis.
type TokenStore struct {
	Db *redis.Client
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*TokenStore, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &TokenStore{Db: db}, nil
}

// Revoke помечает токен отозванным на срок ttl (остаток жизни токена).
func (c *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	const op = "cache.Revoke"
	if ttl <= 0 {
		// токен уже истёк, хранить отзыв незачем
		return nil
	}
	if err := c.Db.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsRevoked сообщает, был ли токен отозван.
func (c *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	const op = "cache.IsRevoked"
	n, err := c.Db.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}
