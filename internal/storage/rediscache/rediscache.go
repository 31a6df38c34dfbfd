// Package rediscache memoizes campaign projection snapshots in Redis.
//
// Snapshots are keyed by campaign ID and the last appended event ID, so a
// cached entry can never serve stale state: any new event changes the key.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/meeplelog/meeplelog/internal/campaign/projection"
	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "projection:"

// ErrCacheMiss is returned when no snapshot is cached for the given
// campaign and event position.
var ErrCacheMiss = errors.New("projection snapshot not cached")

// Config holds configuration for the Redis snapshot cache.
type Config struct {
	RedisClient *redis.Client
	// TTL bounds how long a snapshot stays cached. Zero means no
	// expiration.
	TTL time.Duration
}

// SnapshotCache stores computed projection snapshots in Redis.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed snapshot cache.
func New(cfg *Config) (*SnapshotCache, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &SnapshotCache{
		client: cfg.RedisClient,
		ttl:    cfg.TTL,
	}, nil
}

func snapshotKey(campaignID, lastEventID string) string {
	return fmt.Sprintf("%s%s:%s", snapshotKeyPrefix, campaignID, lastEventID)
}

// Get returns the cached snapshot for the campaign at the given event
// position, or ErrCacheMiss.
func (c *SnapshotCache) Get(ctx context.Context, campaignID, lastEventID string) (map[string][]projection.Section, error) {
	if campaignID == "" || lastEventID == "" {
		return nil, errors.New("campaign ID and event ID cannot be empty")
	}

	raw, err := c.client.Get(ctx, snapshotKey(campaignID, lastEventID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshots map[string][]projection.Section
	if err := json.Unmarshal([]byte(raw), &snapshots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snapshots, nil
}

// Put stores the snapshot for the campaign at the given event position.
func (c *SnapshotCache) Put(ctx context.Context, campaignID, lastEventID string, snapshots map[string][]projection.Section) error {
	if campaignID == "" || lastEventID == "" {
		return errors.New("campaign ID and event ID cannot be empty")
	}

	raw, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(campaignID, lastEventID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}
