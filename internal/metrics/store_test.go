package metrics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"beast-hub/internal/database"
	"beast-hub/internal/logging"
	"beast-hub/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "metrics.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewStore(db.SQL)
	s.now = func() time.Time { return now }
	return s
}

func TestDailyUsageAndCleanup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)

	require.NoError(t, s.Record(ctx, ExecutionMetric{AgentName: "coach.recipe", Model: "gemini", PromptTokens: 100, CompletionTokens: 50, Timestamp: now}))
	require.NoError(t, s.Record(ctx, ExecutionMetric{AgentName: "coach.audit", Model: "gemini", PromptTokens: 10, CompletionTokens: 5, Timestamp: now.Add(-time.Hour)}))
	require.NoError(t, s.Record(ctx, ExecutionMetric{AgentName: "coach.recipe", Model: "gemini", PromptTokens: 7, CompletionTokens: 3, Timestamp: now.AddDate(0, 0, -2)}))
	require.NoError(t, s.Record(ctx, ExecutionMetric{AgentName: "coach.recipe", Model: "gemini", PromptTokens: 1, CompletionTokens: 1, Timestamp: now.AddDate(0, 0, -40)}))

	usage, err := s.GetDailyUsage(ctx, 7)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, DailyUsage{Date: "2025-01-10", TotalPrompt: 110, TotalCompletion: 55, TotalExecution: 2}, usage[0])
	assert.Equal(t, "2025-01-08", usage[1].Date)

	removed, err := s.Cleanup(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestRecordMetaSkipsEmptyUsage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)

	require.NoError(t, s.RecordMeta(ctx, shared.AgentMeta{AgentName: "coach.motivation"}))
	require.NoError(t, s.RecordMeta(ctx, shared.AgentMeta{
		AgentName: "coach.motivation",
		Usage:     shared.TokenUsage{PromptTokens: 3, CompletionTokens: 4, Model: "gemini"},
		Latency:   250 * time.Millisecond,
	}))

	usage, err := s.GetDailyUsage(ctx, 1)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, 1, usage[0].TotalExecution)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 KB", humanSize(1536))
	assert.Equal(t, "2.0 MB", humanSize(2*1024*1024))
}
