package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
	"github.com/pollhub/api/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const statsTTL = 5 * time.Minute

type resultCache struct {
	client *redis.Client
}

// NewResultCache wraps a redis client as the poll result cache used by the
// results view. Entries expire on their own; vote mutations invalidate them
// eagerly.
func NewResultCache(client *redis.Client) ports.ResultCache {
	return &resultCache{
		client: client,
	}
}

func statsKey(pollID uuid.UUID) string {
	return "poll:stats:" + pollID.String()
}

// GetStats returns nil with no error on a cache miss.
func (c *resultCache) GetStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error) {
	data, err := c.client.Get(ctx, statsKey(pollID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read stats from cache: %w", err)
	}

	var stats map[uuid.UUID]domain.PollOptionStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached stats: %w", err)
	}
	return stats, nil
}

func (c *resultCache) SetStats(ctx context.Context, pollID uuid.UUID, stats map[uuid.UUID]domain.PollOptionStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if err := c.client.Set(ctx, statsKey(pollID), data, statsTTL).Err(); err != nil {
		return fmt.Errorf("failed to write stats to cache: %w", err)
	}
	return nil
}

func (c *resultCache) Invalidate(ctx context.Context, pollID uuid.UUID) error {
	if err := c.client.Del(ctx, statsKey(pollID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %w", err)
	}
	return nil
}
