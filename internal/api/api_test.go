package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"beast-hub/internal/body"
	"beast-hub/internal/catalog"
	"beast-hub/internal/coach"
	"beast-hub/internal/habits"
	"beast-hub/internal/inventory"
	"beast-hub/internal/llm"
	"beast-hub/internal/logging"
	"beast-hub/internal/metrics"
	"beast-hub/internal/planner"
	"beast-hub/internal/schedule"
	"beast-hub/internal/settings"
	"beast-hub/internal/shared"
	"beast-hub/internal/shopping"
	"beast-hub/internal/store"
	"beast-hub/internal/summary"
	"beast-hub/internal/supplements"
	"beast-hub/internal/workouts"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeUsage struct {
	days int
}

func (f *fakeUsage) GetDailyUsage(_ context.Context, days int) ([]metrics.DailyUsage, error) {
	f.days = days
	return []metrics.DailyUsage{{Date: "2025-01-06", TotalPrompt: 10, TotalCompletion: 5, TotalExecution: 1}}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeUsage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.Discard()
	s := store.NewMemoryStore()
	c := catalog.Default()

	settingsSvc := settings.NewService(s, c, 75, logger)
	habitsSvc := habits.NewService(s, logger)
	bodySvc := body.NewService(s, settingsSvc.Repository(), logger)
	plannerSvc := planner.NewService(c, s, logger)
	workoutsSvc := workouts.NewService(s, logger)
	summarySvc := summary.NewService(habitsSvc, plannerSvc, settingsSvc.Repository(), workoutsSvc, bodySvc, logger)
	coachSvc := coach.NewService(llm.NewUnconfigured(), nil, coach.Deps{
		Catalog:  c,
		Habits:   habitsSvc,
		Settings: settingsSvc.Repository(),
		Body:     bodySvc,
		Summary:  summarySvc,
	}, logger)
	usage := &fakeUsage{}

	r := NewRouter(Deps{
		UserID:      "test",
		CORSOrigins: []string{"*"},
		Logger:      logger,
		Catalog:     c,
		Habits:      habitsSvc,
		Body:        bodySvc,
		Settings:    settingsSvc,
		Supplements: supplements.NewService(s, logger),
		Schedule:    schedule.NewService(s, logger),
		Planner:     plannerSvc,
		Shopping:    shopping.NewService(c, s, logger),
		Inventory:   inventory.NewService(s, logger),
		Workouts:    workoutsSvc,
		Summary:     summarySvc,
		Coach:       coachSvc,
		Usage:       usage,
	})
	return r, usage
}

func do(t *testing.T, r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRootAndRequestID(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", decode[map[string]string](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestHabitToggleValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/habits/toggle", map[string]any{"completed": true})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, w)
	assert.Equal(t, "required", body.Errors["Date"])

	w = do(t, r, http.MethodPost, "/api/habits/toggle", map[string]any{"date": "2025-01-06", "completed": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/habits", nil)
	got := decode[struct {
		Habits map[string]bool `json:"habits"`
	}](t, w)
	assert.True(t, got.Habits["2025-01-06"])
}

func TestAlcoholLimit(t *testing.T) {
	r, _ := newTestRouter(t)

	for i := 1; i <= settings.MaxDrinksPerWeek; i++ {
		w := do(t, r, http.MethodPost, "/api/settings/alcohol/add", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, i, decode[map[string]int](t, w)["alcohol_count"])
	}
	w := do(t, r, http.MethodPost, "/api/settings/alcohol/add", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Weekly alcohol limit reached (3 drinks max)", decode[map[string]string](t, w)["detail"])

	w = do(t, r, http.MethodPost, "/api/settings/reset-weekly", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/settings/alcohol/add", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProteinAmountQuery(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/settings/protein/add", nil)
	assert.Equal(t, settings.DefaultProteinStep, decode[map[string]int](t, w)["protein_current"])

	w = do(t, r, http.MethodPost, "/api/settings/protein/add?amount=40", nil)
	assert.Equal(t, 65, decode[map[string]int](t, w)["protein_current"])

	w = do(t, r, http.MethodPost, "/api/settings/protein/add?amount=lots", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/api/settings/protein/subtract?amount=-1000", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, 65, decode[settings.Settings](t, w).ProteinCurrent)
}

func TestSupplementOutOfRange(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/supplements/toggle?index=9", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Supplement 9 not found", decode[map[string]string](t, w)["detail"])

	w = do(t, r, http.MethodDelete, "/api/supplements/x", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMealPlanGenerateBounds(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/meal-plan/generate", map[string]any{"weeks": 5})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/api/meal-plan/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	plan := decode[planner.GeneratedPlan](t, w)
	assert.Equal(t, 1, plan.Weeks)
	assert.Len(t, plan.MealPlan, 21)
}

func TestTodayMeals(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/meal-plan/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	today := decode[planner.TodayMeals](t, w)
	_, err := shared.ParseDate(today.Date)
	require.NoError(t, err)
	assert.Len(t, today.Meals, len(catalog.Slots))
	assert.Equal(t, planner.StatusNotPlanned, today.Meals[catalog.Breakfast].Status)
}

func TestShoppingListWithoutPlan(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/shopping-list/generate", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No meal plan saved", decode[map[string]string](t, w)["detail"])
}

func TestShoppingToggleRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/meal-plan/generate", map[string]any{"weeks": 1, "start_date": "2025-01-06"})
	require.Equal(t, http.StatusOK, w.Code)
	plan := decode[planner.GeneratedPlan](t, w)

	w = do(t, r, http.MethodPost, "/api/meal-plan/save?weeks=1", plan.MealPlan)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/shopping-list/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[struct {
		ShoppingList []shopping.Item `json:"shopping_list"`
	}](t, w).ShoppingList
	require.NotEmpty(t, items)

	w = do(t, r, http.MethodPost, "/api/shopping-list/save", items)
	require.Equal(t, http.StatusOK, w.Code)

	inventoryNames := func() []string {
		w := do(t, r, http.MethodGet, "/api/inventory", nil)
		inv := decode[struct {
			Inventory []inventory.Item `json:"inventory"`
		}](t, w).Inventory
		names := make([]string, 0, len(inv))
		for _, it := range inv {
			names = append(names, it.Item)
		}
		return names
	}

	w = do(t, r, http.MethodPost, "/api/shopping-list/toggle-purchased?item_index=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	toggled := decode[struct {
		Items []shopping.Item `json:"items"`
	}](t, w).Items
	assert.True(t, toggled[0].Purchased)
	assert.Contains(t, inventoryNames(), items[0].Item)

	w = do(t, r, http.MethodPost, "/api/shopping-list/toggle-purchased?item_index=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, inventoryNames(), items[0].Item)

	w = do(t, r, http.MethodPost, "/api/shopping-list/toggle-purchased?item_index=999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/shopping-list/toggle-purchased", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestShoppingSaveIgnoresClientInventoryState(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/shopping-list/save", []map[string]any{{
		"item":        "Caviar",
		"amount":      "1 tin",
		"category":    "Pantry",
		"purchased":   true,
		"prior_stock": map[string]any{"item": "Caviar", "amount": "10 kg", "source": "manual"},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	inventoryOf := func() []inventory.Item {
		w := do(t, r, http.MethodGet, "/api/inventory", nil)
		return decode[struct {
			Inventory []inventory.Item `json:"inventory"`
		}](t, w).Inventory
	}
	inv := inventoryOf()
	require.Len(t, inv, 1)
	assert.Equal(t, "1 tin", inv[0].Amount)

	w = do(t, r, http.MethodPost, "/api/shopping-list/toggle-purchased?item_index=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, inventoryOf())
}

func TestShoppingExport(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/shopping-list/save", []shopping.Item{
		{Item: "Eggs", Amount: "12", Category: "Protein", MealIDs: []string{"b1"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/shopping-list/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, shopping.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), exportFilename)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Eggs", v)
}

func TestInventoryNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/inventory/update", map[string]string{"item": "Ghost Pepper", "amount": "1"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, "/api/inventory/Ghost%20Pepper", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkoutRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/workouts", map[string]any{
		"date":         "2025-01-06",
		"workout_type": "Upper",
		"exercises":    []map[string]any{{"exercise": "Bench Press", "sets": 3, "reps": 8, "weight": 185}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/workouts/progress/bench%20press", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[struct {
		Progress []workouts.ProgressPoint `json:"progress"`
	}](t, w).Progress
	require.Len(t, progress, 1)
	assert.Equal(t, 4440.0, progress[0].Volume)

	w = do(t, r, http.MethodGet, "/api/workouts/2025-01-06", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Upper", decode[struct {
		Workout workouts.Workout `json:"workout"`
	}](t, w).Workout.WorkoutType)

	w = do(t, r, http.MethodDelete, "/api/workouts/2025-01-06", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodDelete, "/api/workouts/2025-01-06", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAIWithoutKey(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/ai/motivation", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "AI key not configured", decode[map[string]string](t, w)["detail"])

	w = do(t, r, http.MethodPost, "/api/ai/suggest-recipes", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUsage(t *testing.T) {
	r, usage := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/ai/usage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultUsageDays, usage.days)

	w = do(t, r, http.MethodGet, "/api/ai/usage?days=30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, usage.days)
}
