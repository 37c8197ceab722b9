package inventory

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

func newTestService() *Service {
	s := NewService(store.NewMemoryStore(), logging.Discard())
	s.now = func() time.Time { return time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestAddAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	items, err := s.Add(ctx, "u1", AddInput{Item: "Chicken Breast", Amount: "2 lbs", Category: "Protein"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2025-01-06", items[0].PurchaseDate)
	assert.Equal(t, SourceManual, items[0].Source)
	assert.Nil(t, items[0].ExpiryDate)

	// Same name replaces instead of duplicating.
	items, err = s.Add(ctx, "u1", AddInput{Item: "Chicken Breast", Amount: "3 lbs", Category: "Protein"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "3 lbs", items[0].Amount)

	listed, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, items, listed)

	other, err := s.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	_, err := s.Add(ctx, "u1", AddInput{Item: "  "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	bad := "next week"
	_, err = s.Add(ctx, "u1", AddInput{Item: "Eggs", ExpiryDate: &bad})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateAndDeleteMissingItem(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	_, err := s.Add(ctx, "u1", AddInput{Item: "Eggs", Amount: "12"})
	require.NoError(t, err)

	_, err = s.UpdateAmount(ctx, "u1", "NONEXISTENT_ITEM", "1")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = s.Delete(ctx, "u1", "NONEXISTENT_ITEM")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// State unchanged by the failed calls.
	items, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "12", items[0].Amount)

	items, err = s.UpdateAmount(ctx, "u1", "Eggs", "6")
	require.NoError(t, err)
	assert.Equal(t, "6", items[0].Amount)

	items, err = s.Delete(ctx, "u1", "Eggs")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLedgerDeduct(t *testing.T) {
	l := &Ledger{Items: []Item{
		{Item: "Rolled Oats", Amount: "1 bag"},
		{Item: "Chia Seeds", Amount: "1 jar"},
		{Item: "Coffee", Amount: "1 lb"},
	}}

	deducted := l.Deduct([]string{"Rolled Oats", "Whey Protein (Vanilla)", "Chia Seeds"})

	assert.Equal(t, []string{"Rolled Oats", "Chia Seeds"}, deducted)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "Coffee", l.Items[0].Item)
}

func TestLedgerUpsertReturnsPrevious(t *testing.T) {
	l := &Ledger{}
	assert.Nil(t, l.Upsert(Item{Item: "Eggs", Amount: "6"}))

	prev := l.Upsert(Item{Item: "Eggs", Amount: "12"})
	require.NotNil(t, prev)
	assert.Equal(t, "6", prev.Amount)
	assert.Equal(t, 1, l.Count("Eggs"))
}
