package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpilot/internal/cache"
	"askpilot/internal/model"
)

func entry(q string) model.HistoryEntry {
	return model.HistoryEntry{Question: q, Answer: "a:" + q, AskedAt: time.Now()}
}

func TestAppendAndTrimCapsAtLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewHistoryService(cache.NewMemoryHistoryStore(), 3, time.Hour)

	for _, q := range []string{"q1", "q2", "q3", "q4", "q5"} {
		_, err := svc.AppendAndTrim(ctx, "alice", entry(q))
		require.NoError(t, err)
	}

	entries, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "q3", entries[0].Question)
	assert.Equal(t, "q5", entries[2].Question)
}

func TestAppendAndTrimLastElementIsNewest(t *testing.T) {
	ctx := context.Background()
	svc := NewHistoryService(cache.NewMemoryHistoryStore(), 3, time.Hour)

	_, err := svc.AppendAndTrim(ctx, "alice", entry("q1"), entry("q2"))
	require.NoError(t, err)

	stored, err := svc.AppendAndTrim(ctx, "alice", entry("q3"))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(stored), 3)
	assert.Equal(t, "q3", stored[len(stored)-1].Question)
}

func TestExpiryAfterOneHourIdle(t *testing.T) {
	ctx := context.Background()
	svc := NewHistoryService(cache.NewMemoryHistoryStore(), 3, time.Hour)

	now := time.Now()
	svc.now = func() time.Time { return now }
	_, err := svc.AppendAndTrim(ctx, "alice", entry("q1"))
	require.NoError(t, err)

	// 59 minutes idle: history survives.
	svc.now = func() time.Time { return now.Add(59 * time.Minute) }
	entries, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// 61 minutes idle: the whole history is evicted.
	svc.now = func() time.Time { return now.Add(61 * time.Minute) }
	entries, err = svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadDoesNotRefreshIdleClock(t *testing.T) {
	ctx := context.Background()
	svc := NewHistoryService(cache.NewMemoryHistoryStore(), 3, time.Hour)

	now := time.Now()
	svc.now = func() time.Time { return now }
	_, err := svc.AppendAndTrim(ctx, "alice", entry("q1"))
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(30 * time.Minute) }
	_, err = svc.Get(ctx, "alice")
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(61 * time.Minute) }
	entries, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIsExpiredZeroInstant(t *testing.T) {
	svc := NewHistoryService(cache.NewMemoryHistoryStore(), 3, time.Hour)
	assert.False(t, svc.IsExpired(time.Time{}))
}

func TestInitIfAbsentKeepsExistingEntries(t *testing.T) {
	ctx := context.Background()
	svc := NewHistoryService(cache.NewMemoryHistoryStore(), 3, time.Hour)

	_, err := svc.AppendAndTrim(ctx, "alice", entry("q1"))
	require.NoError(t, err)

	require.NoError(t, svc.InitIfAbsent(ctx, "alice"))

	entries, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
