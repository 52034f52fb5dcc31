package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type payload struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var missed payload
	assert.False(t, GetJSON(ctx, "missing", &missed))

	SetJSON(ctx, "k", payload{Count: 3, Name: "jobs"}, time.Minute)

	var got payload
	require.True(t, GetJSON(ctx, "k", &got))
	assert.Equal(t, payload{Count: 3, Name: "jobs"}, got)
}

func TestGetJSONDropsCorruptEntries(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("bad", "{not json"))

	var got payload
	assert.False(t, GetJSON(ctx, "bad", &got))
	// The corrupt entry was removed.
	assert.False(t, mr.Exists("bad"))
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	load := func() (payload, error) {
		calls++
		return payload{Count: calls}, nil
	}

	first, err := Aside(ctx, "stats", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Count)

	// Second read is served from cache; the loader does not run again.
	second, err := Aside(ctx, "stats", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Count)
	assert.Equal(t, 1, calls)
}

func TestAsidePropagatesLoadErrors(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	wantErr := errors.New("db down")
	_, err := Aside(ctx, "stats", time.Minute, func() (payload, error) {
		return payload{}, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestAsideWorksWithoutRedis(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	got, err := Aside(ctx, "stats", time.Minute, func() (payload, error) {
		return payload{Count: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Count)
}

func TestInvalidateUserStats(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	keys := []string{
		JobStatsKey(1),
		ApplicationStatsKey(1),
		CVStatsKey(1),
		AnschreibenStatsKey(1),
		KanbanKey(1),
	}
	for _, key := range keys {
		SetJSON(ctx, key, payload{Count: 1}, time.Minute)
	}
	otherUser := JobStatsKey(2)
	SetJSON(ctx, otherUser, payload{Count: 1}, time.Minute)

	InvalidateUserStats(ctx, 1)

	for _, key := range keys {
		assert.False(t, mr.Exists(key), key)
	}
	assert.True(t, mr.Exists(otherUser))
}
