package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

const blacklistPrefix = "token_blacklist:"

// RedisTokenStore keeps revoked token hashes in Redis until the token's
// own expiry, so the blacklist never outlives the credentials it blocks.
type RedisTokenStore struct {
	client *redis.Client
}

var _ ports.TokenStore = (*RedisTokenStore)(nil)

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, blacklistPrefix+hashToken(token), "1", ttl).Err()
}

func (s *RedisTokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistPrefix+hashToken(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
