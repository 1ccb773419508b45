package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "ems:revoked:"

// RevocationList tracks logged out token ids until they would have expired anyway.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisRevocationList struct {
	rdb redis.Cmdable
}

// NewRevocationList returns a Redis-backed list. A nil client yields a list that revokes nothing.
func NewRevocationList(rdb redis.Cmdable) RevocationList {
	if rdb == nil {
		return NopRevocationList{}
	}
	return &redisRevocationList{rdb: rdb}
}

func (l *redisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return l.rdb.Set(ctx, revokedPrefix+jti, "1", ttl).Err()
}

func (l *redisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := l.rdb.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NopRevocationList keeps no state.
type NopRevocationList struct{}

func (NopRevocationList) Revoke(context.Context, string, time.Duration) error { return nil }
func (NopRevocationList) IsRevoked(context.Context, string) (bool, error)     { return false, nil }
