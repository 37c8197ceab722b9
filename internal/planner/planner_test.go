package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/catalog"
	"beast-hub/internal/inventory"
	"beast-hub/internal/logging"
	"beast-hub/internal/shared"
	"beast-hub/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := shared.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newTestService(t *testing.T, today string) (*Service, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	svc := NewService(catalog.Default(), s, logging.Discard())
	now := mustDate(t, today).Add(9 * time.Hour)
	svc.now = func() time.Time { return now }
	return svc, s
}

func TestBuildRoundRobin(t *testing.T) {
	c := catalog.MustNew([]catalog.MealDefinition{
		{ID: "b1", Name: "Oats", Category: catalog.Breakfast, Calories: 450, Protein: 35},
		{ID: "b2", Name: "Scramble", Category: catalog.Breakfast, Calories: 550, Protein: 45},
	})

	entries, err := NewBuilder(c).Build(1, mustDate(t, "2025-01-06"))
	require.NoError(t, err)
	require.Len(t, entries, 7)

	assert.Equal(t, "2025-01-06", entries[0].Date)
	assert.Equal(t, "b1", entries[0].MealID)
	assert.Equal(t, "b2", entries[1].MealID)
	assert.Equal(t, "b1", entries[2].MealID)
	assert.Equal(t, "2025-01-12", entries[6].Date)
	assert.Equal(t, 450, entries[0].Calories)
	assert.Equal(t, 45, entries[1].Protein)
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder(catalog.Default())
	start := mustDate(t, "2025-02-03")

	first, err := b.Build(2, start)
	require.NoError(t, err)
	second, err := b.Build(2, start)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2*7*3)

	// One entry per (date, slot).
	seen := map[string]bool{}
	for _, e := range first {
		key := e.Date + string(e.MealType)
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
}

func TestBuildWeeksBounds(t *testing.T) {
	b := NewBuilder(catalog.Default())
	for _, weeks := range []int{0, 5, -1} {
		_, err := b.Build(weeks, time.Now())
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "weeks=%d", weeks)
	}
}

func TestGenerateDefaultsToToday(t *testing.T) {
	svc, _ := newTestService(t, "2025-03-03")

	plan, err := svc.Generate(1, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", plan.StartDate)
	assert.Equal(t, 21, plan.Totals.Meals)
	assert.Equal(t, 7, plan.Totals.Days)

	_, err = svc.Generate(1, "03/03/2025")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSaveRejectsDuplicateSlots(t *testing.T) {
	svc, _ := newTestService(t, "2025-01-06")
	ctx := context.Background()

	entries := []PlanEntry{
		{Date: "2025-01-06", MealType: catalog.Breakfast, MealID: "b1"},
		{Date: "2025-01-06", MealType: catalog.Breakfast, MealID: "b2"},
	}
	_, err := svc.Save(ctx, "u1", 1, entries)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	plan, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestPrepTasksGroupBatchMeals(t *testing.T) {
	entries, err := NewBuilder(catalog.Default()).Build(1, mustDate(t, "2025-01-06"))
	require.NoError(t, err)

	tasks := DerivePrepTasks(catalog.Default(), entries)

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.MealID
	}
	// b2 and b3 are not batch friendly.
	assert.Equal(t, []string{"b1", "l1", "d1", "l2", "d2", "l3", "d3"}, ids)
	assert.Equal(t, []string{"2025-01-06", "2025-01-09", "2025-01-12"}, tasks[0].ServesDates)
	assert.Equal(t, 5, tasks[0].BatchSize)
	assert.Equal(t, "Sunday", tasks[0].PrepDay)
	assert.False(t, tasks[0].IsPrepped)
}

func TestClassifyUrgency(t *testing.T) {
	today := mustDate(t, "2025-01-08")
	assert.Equal(t, UrgencyNow, ClassifyUrgency(mustDate(t, "2025-01-07"), today))
	assert.Equal(t, UrgencyNow, ClassifyUrgency(mustDate(t, "2025-01-08"), today))
	assert.Equal(t, UrgencyTomorrow, ClassifyUrgency(mustDate(t, "2025-01-09"), today))
	assert.Equal(t, UrgencyUpcoming, ClassifyUrgency(mustDate(t, "2025-01-10"), today))
}

func TestDeriveAlerts(t *testing.T) {
	c := catalog.Default()
	entries, err := NewBuilder(c).Build(1, mustDate(t, "2025-01-06"))
	require.NoError(t, err)

	feed := DeriveAlerts(c, entries, mustDate(t, "2025-01-08"))

	require.Len(t, feed.Alerts, 6)
	assert.True(t, feed.HasUrgent)

	first := feed.Alerts[0]
	assert.Equal(t, "b1", first.MealID)
	assert.Equal(t, "2025-01-09", first.MealDate)
	assert.Equal(t, "2025-01-08", first.PrepBy)
	assert.Equal(t, UrgencyNow, first.Urgency)
	assert.True(t, first.BatchPrepFriendly)

	last := feed.Alerts[5]
	assert.Equal(t, "d2", last.MealID)
	assert.Equal(t, UrgencyTomorrow, last.Urgency)

	for _, a := range feed.Alerts {
		assert.NotEqual(t, "l2", a.MealID, "upcoming alerts are not surfaced")
	}
}

func TestDeriveAlertsWithoutUrgent(t *testing.T) {
	c := catalog.Default()
	meal, _ := c.Meal("d2")
	entries := []PlanEntry{newEntry("2025-01-10", meal)}

	feed := DeriveAlerts(c, entries, mustDate(t, "2025-01-08"))

	require.Len(t, feed.Alerts, 1)
	assert.Equal(t, UrgencyTomorrow, feed.Alerts[0].Urgency)
	assert.False(t, feed.HasUrgent)
}

func TestMarkPreppedSubsetOfDates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "2025-01-05")

	generated, err := svc.Generate(2, "2025-01-06")
	require.NoError(t, err)
	_, err = svc.Save(ctx, "u1", generated.Weeks, generated.MealPlan)
	require.NoError(t, err)

	tasks, err := svc.PrepTasks(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "b1", tasks[0].MealID)
	require.Len(t, tasks[0].ServesDates, 5)

	marked := tasks[0].ServesDates[:3]
	res, err := svc.MarkPrepped(ctx, "u1", "b1", marked)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.Updated)
	assert.Equal(t, "2025-01-05", res.PrepDate)

	plan, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	for _, e := range plan.Entries {
		if e.MealID != "b1" {
			assert.False(t, e.IsPrepped)
			continue
		}
		switch e.Date {
		case marked[0], marked[1], marked[2]:
			assert.True(t, e.IsPrepped, e.Date)
			require.NotNil(t, e.PrepDate)
			assert.Equal(t, "2025-01-05", *e.PrepDate)
		default:
			assert.False(t, e.IsPrepped, e.Date)
			assert.Nil(t, e.PrepDate)
		}
	}

	tasks, err = svc.PrepTasks(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, marked, tasks[0].PreppedDates)
	assert.False(t, tasks[0].IsPrepped)
}

func TestMarkPreppedDeductsIngredients(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService(t, "2025-01-05")

	generated, err := svc.Generate(1, "2025-01-06")
	require.NoError(t, err)
	_, err = svc.Save(ctx, "u1", 1, generated.MealPlan)
	require.NoError(t, err)

	repo := inventory.NewRepository(s)
	require.NoError(t, repo.Save(ctx, "u1", &inventory.Ledger{Items: []inventory.Item{
		{Item: "Rolled Oats", Amount: "1/2 cup", Category: "Pantry"},
		{Item: "Chia Seeds", Amount: "1 tbsp", Category: "Pantry"},
		{Item: "Coffee", Amount: "1 lb", Category: "Pantry"},
	}}))

	res, err := svc.MarkPrepped(ctx, "u1", "b1", []string{"2025-01-06"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rolled Oats", "Chia Seeds"}, res.IngredientsDeducted)

	ledger, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, ledger.Items, 1)
	assert.Equal(t, "Coffee", ledger.Items[0].Item)
}

type failingStore struct {
	store.Store
	collection string
}

func (f *failingStore) Put(ctx context.Context, ref store.Ref, value any) error {
	if ref.Collection == f.collection {
		return errors.New("disk full")
	}
	return f.Store.Put(ctx, ref, value)
}

func TestMarkPreppedKeepsPlanWhenInventoryFails(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	svc := NewService(catalog.Default(), &failingStore{Store: mem, collection: store.Inventory}, logging.Discard())

	generated, err := svc.Generate(1, "2025-01-06")
	require.NoError(t, err)
	_, err = svc.Save(ctx, "u1", 1, generated.MealPlan)
	require.NoError(t, err)
	require.NoError(t, inventory.NewRepository(mem).Save(ctx, "u1", &inventory.Ledger{Items: []inventory.Item{
		{Item: "Rolled Oats", Amount: "1/2 cup", Category: "Pantry"},
	}}))

	_, err = svc.MarkPrepped(ctx, "u1", "b1", []string{"2025-01-06"})
	require.Error(t, err)

	plan, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	for _, e := range plan.Entries {
		assert.False(t, e.IsPrepped, "%s %s", e.Date, e.MealType)
		assert.Nil(t, e.PrepDate)
	}
}

func TestMarkPreppedErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "2025-01-05")

	_, err := svc.MarkPrepped(ctx, "u1", "b1", []string{"2025-01-06"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "no plan saved")

	generated, err := svc.Generate(1, "2025-01-06")
	require.NoError(t, err)
	_, err = svc.Save(ctx, "u1", 1, generated.MealPlan)
	require.NoError(t, err)

	_, err = svc.MarkPrepped(ctx, "u1", "b1", []string{"2025-01-07"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "b1 is not served on the 7th")

	_, err = svc.MarkPrepped(ctx, "u1", "b1", nil)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSubstitute(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "2025-01-05")

	generated, err := svc.Generate(1, "2025-01-06")
	require.NoError(t, err)
	_, err = svc.Save(ctx, "u1", 1, generated.MealPlan)
	require.NoError(t, err)
	_, err = svc.MarkPrepped(ctx, "u1", "d1", []string{"2025-01-06"})
	require.NoError(t, err)

	plan, err := svc.Substitute(ctx, "u1", "2025-01-06", catalog.Dinner, "d3")
	require.NoError(t, err)
	for _, e := range plan.Entries {
		if e.Date == "2025-01-06" && e.MealType == catalog.Dinner {
			assert.Equal(t, "d3", e.MealID)
			assert.Equal(t, "Sheet Pan Roasted Meat & Veg", e.MealName)
			assert.False(t, e.IsPrepped)
		}
	}

	_, err = svc.Substitute(ctx, "u1", "2025-01-06", catalog.Dinner, "b1")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Substitute(ctx, "u1", "2025-02-01", catalog.Dinner, "d2")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Substitute(ctx, "u1", "2025-01-06", catalog.Dinner, "nope")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestToday(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "2025-01-06")

	empty, err := svc.Today(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", empty.Date)
	assert.Equal(t, StatusNotPlanned, empty.Meals[catalog.Lunch].Status)
	assert.Nil(t, empty.Meals[catalog.Lunch].Planned)

	generated, err := svc.Generate(1, "2025-01-06")
	require.NoError(t, err)
	_, err = svc.Save(ctx, "u1", 1, generated.MealPlan)
	require.NoError(t, err)
	_, err = svc.MarkPrepped(ctx, "u1", "l1", []string{"2025-01-06"})
	require.NoError(t, err)

	today, err := svc.Today(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", today.Date)
	assert.Equal(t, StatusNeedsPrep, today.Meals[catalog.Breakfast].Status)
	assert.Equal(t, StatusPrepped, today.Meals[catalog.Lunch].Status)
	assert.Equal(t, "d1", today.Meals[catalog.Dinner].Planned.MealID)
	require.NotNil(t, today.Meals[catalog.Dinner].Meal)
	assert.Equal(t, "700 Cal | 60g P", today.Meals[catalog.Dinner].Meal.Macros)
}
