package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:v1"

// LeaderboardCache fronts the earnings leaderboard with a short-lived
// Redis entry. All methods tolerate a nil receiver so the service can run
// without Redis configured.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection before returning.
func New(addr, password string, db int, ttl time.Duration) (*LeaderboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &LeaderboardCache{client: client, ttl: ttl}, nil
}

// NewWithClient wraps an existing client; used by tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get returns the cached leaderboard payload, or ok=false on miss.
func (lc *LeaderboardCache) Get(ctx context.Context) ([]byte, bool) {
	if lc == nil {
		return nil, false
	}
	payload, err := lc.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Treat a broken cache as a miss; the database still answers.
			fmt.Println("leaderboard cache read failed:", err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores the leaderboard payload under the configured TTL.
func (lc *LeaderboardCache) Set(ctx context.Context, payload []byte) {
	if lc == nil {
		return
	}
	if err := lc.client.Set(ctx, leaderboardKey, payload, lc.ttl).Err(); err != nil {
		fmt.Println("leaderboard cache write failed:", err)
	}
}

// Invalidate drops the cached entry; called after a reward credit.
func (lc *LeaderboardCache) Invalidate(ctx context.Context) {
	if lc == nil {
		return
	}
	if err := lc.client.Del(ctx, leaderboardKey).Err(); err != nil {
		fmt.Println("leaderboard cache invalidation failed:", err)
	}
}

// Close closes the underlying Redis connection.
func (lc *LeaderboardCache) Close() error {
	if lc == nil || lc.client == nil {
		return nil
	}
	return lc.client.Close()
}
