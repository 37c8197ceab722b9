package schedule

import (
	"context"
	"testing"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/logging"
	"beast-hub/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeek(t *testing.T) {
	week := Week()
	require.Len(t, week, 7)
	assert.Equal(t, "Sunday", week[0].Day)
	assert.Equal(t, "Upper B (Pull)", week[5].Type)

	week[1].Tasks[0] = "changed"
	assert.Equal(t, "Hack Squat: 3x8-10", Week()[1].Tasks[0])
}

func TestForWeekday(t *testing.T) {
	assert.Equal(t, "Lower B (Hinge)", ForWeekday("Thursday").Type)

	rest := ForWeekday("Caturday")
	assert.Equal(t, "Rest", rest.Type)
	assert.Empty(t, rest.Tasks)
	assert.False(t, rest.Custom)
}

func TestToday(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore(), logging.Discard())
	// 2025-01-07 is a Tuesday.
	svc.now = func() time.Time { return time.Date(2025, 1, 7, 7, 30, 0, 0, time.UTC) }

	day, err := svc.Today(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", day.Day)
	assert.Equal(t, "Upper A (Push)", day.Type)
	assert.False(t, day.Custom)

	require.NoError(t, svc.SetOverride(ctx, "u1", OverrideInput{Date: "2025-01-07", Activity: "Hotel Gym"}))

	day, err = svc.Today(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Day{Day: "Tuesday", Type: "Hotel Gym", Tasks: []string{"Custom Session: Hotel Gym"}, Custom: true}, day)

	overrides, err := svc.Overrides(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Overrides{"2025-01-07": "Hotel Gym"}, overrides)

	err = svc.SetOverride(ctx, "u1", OverrideInput{Date: "07/01/2025", Activity: "x"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
