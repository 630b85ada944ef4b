package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Denylist records access-token ids revoked before their natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

const denyPrefix = "auth:deny:"

type RedisDenylist struct {
	rdb *redis.Client
}

func NewRedisDenylist(rdb *redis.Client) *RedisDenylist {
	return &RedisDenylist{rdb: rdb}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, denyPrefix+jti, 1, ttl).Err()
}

func (d *RedisDenylist) Revoked(ctx context.Context, jti string) (bool, error) {
	err := d.rdb.Get(ctx, denyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return err == nil, err
}

// MemoryDenylist is a process-local Denylist used when redis is not
// configured. Entries are dropped lazily once expired.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: map[string]time.Time{}}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[jti] = until
	return nil
}

func (d *MemoryDenylist) Revoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.entries[jti]
	if ok && time.Now().After(until) {
		delete(d.entries, jti)
		return false, nil
	}
	return ok, nil
}
