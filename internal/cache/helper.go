package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	jobStatsKeyPrefix         = "user:%d:stats:jobs"
	applicationStatsKeyPrefix = "user:%d:stats:applications"
	cvStatsKeyPrefix          = "user:%d:stats:cvs"
	anschreibenStatsKeyPrefix = "user:%d:stats:anschreiben"
	kanbanKeyPrefix           = "user:%d:kanban"
)

const (
	// StatsTTL bounds staleness of cached per-user statistics.
	StatsTTL = 2 * time.Minute
	// KanbanTTL is short because the board changes with every status move.
	KanbanTTL = 30 * time.Second
)

func JobStatsKey(userID uint) string {
	return fmt.Sprintf(jobStatsKeyPrefix, userID)
}

func ApplicationStatsKey(userID uint) string {
	return fmt.Sprintf(applicationStatsKeyPrefix, userID)
}

func CVStatsKey(userID uint) string {
	return fmt.Sprintf(cvStatsKeyPrefix, userID)
}

func AnschreibenStatsKey(userID uint) string {
	return fmt.Sprintf(anschreibenStatsKeyPrefix, userID)
}

func KanbanKey(userID uint) string {
	return fmt.Sprintf(kanbanKeyPrefix, userID)
}

// GetJSON loads key into dest. Returns false on a miss, a disabled cache, or
// a corrupt entry.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt entries are dropped so the next read repopulates.
		client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores value at key with the given TTL. Failures are silent; the
// cache is an optimization, never a source of truth.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// Aside implements the cache-aside pattern: return the cached value at key,
// or load it, cache it, and return it.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	SetJSON(ctx, key, value, ttl)
	return value, nil
}

// Invalidate removes the given key.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUserStats drops every cached aggregate for the user. Called by
// write paths that change any counted entity.
func InvalidateUserStats(ctx context.Context, userID uint) {
	if client == nil {
		return
	}
	client.Del(ctx,
		JobStatsKey(userID),
		ApplicationStatsKey(userID),
		CVStatsKey(userID),
		AnschreibenStatsKey(userID),
		KanbanKey(userID),
	)
}

// Healthy reports whether the cache backend is reachable.
func Healthy(ctx context.Context) error {
	if client == nil {
		return errors.New("redis not configured")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return nil
}
