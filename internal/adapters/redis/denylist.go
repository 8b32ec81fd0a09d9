// Package redis provides the Redis-backed session token denylist.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client and checks the server answers
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Denylist stores revoked token IDs until the token would have expired anyway
type Denylist struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewDenylist creates a denylist using the default key prefix
func NewDenylist(client redis.UniversalClient) *Denylist {
	return NewDenylistWithPrefix(client, "revoked-token:")
}

// NewDenylistWithPrefix creates a denylist with a custom key prefix
func NewDenylistWithPrefix(client redis.UniversalClient, prefix string) *Denylist {
	return &Denylist{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// Revoke marks jti as revoked until the given time
func (d *Denylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	if jti == "" {
		return errors.New("token ID cannot be empty")
	}

	ttl := until.Sub(d.now())
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}

	return d.client.Set(ctx, d.prefix+jti, 1, ttl).Err()
}

// IsRevoked reports whether jti was revoked
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}

	n, err := d.client.Exists(ctx, d.prefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Ping checks the server is reachable
func (d *Denylist) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}
