package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/filedrop/internal/model"
)

const revokedKeyPrefix = "session:revoked:"

var _ model.SessionRevoker = (*RevocationRepository)(nil)

// RevocationRepository keeps revoked session ids in Redis until the session
// would have expired anyway.
type RevocationRepository struct {
	rdb goredis.Cmdable
	now func() time.Time
}

// NewClient connects to Redis and checks it answers.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to reach redis: %w: %w", model.ErrUnavailable, err)
	}
	return rdb, nil
}

func NewRevocationRepository(rdb goredis.Cmdable) *RevocationRepository {
	return &RevocationRepository{rdb: rdb, now: time.Now}
}

// Revoke marks tokenID as revoked until the given time. Sessions already past
// their expiry need no entry.
func (r *RevocationRepository) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	if err := r.rdb.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return n > 0, nil
}
