// Package settings holds the per-user daily targets and counters.
package settings

import (
	"context"
	"fmt"

	"beast-hub/internal/apperr"
	"beast-hub/internal/catalog"
	"beast-hub/internal/logging"
	"beast-hub/internal/store"

	"github.com/sirupsen/logrus"
)

const (
	DefaultProteinTarget = 200
	DefaultProteinStep   = 25
	MaxProtein           = 400
	WaterStep            = 0.5
	MaxWater             = 8.0
	MaxDrinksPerWeek     = 3
)

// Settings is the per-user settings document.
type Settings struct {
	ProteinTarget  int                                      `json:"protein_target"`
	ProteinCurrent int                                      `json:"protein_current"`
	WaterLiters    float64                                  `json:"water_liters"`
	AlcoholCount   int                                      `json:"alcohol_count"`
	HeightInches   float64                                  `json:"height_inches"`
	SelectedMeals  map[catalog.Category]catalog.MealSummary `json:"selected_meals"`
}

// UpdateInput replaces the editable fields. Omitted height and meal
// selections keep their stored values.
type UpdateInput struct {
	ProteinTarget  int                                      `json:"protein_target" binding:"gte=0"`
	ProteinCurrent int                                      `json:"protein_current" binding:"gte=0"`
	WaterLiters    float64                                  `json:"water_liters" binding:"gte=0"`
	AlcoholCount   int                                      `json:"alcohol_count" binding:"gte=0"`
	HeightInches   float64                                  `json:"height_inches" binding:"gte=0"`
	SelectedMeals  map[catalog.Category]catalog.MealSummary `json:"selected_meals"`
}

// SelectMealInput picks a catalog meal for its slot.
type SelectMealInput struct {
	ID string `json:"id" binding:"required"`
}

// Repository loads settings, filling defaults for users that have none.
type Repository struct {
	store         store.Store
	catalog       *catalog.Catalog
	defaultHeight float64
}

// NewRepository creates a new settings repository.
func NewRepository(s store.Store, c *catalog.Catalog, defaultHeight float64) *Repository {
	return &Repository{store: s, catalog: c, defaultHeight: defaultHeight}
}

// Defaults returns the settings of a new user.
func (r *Repository) Defaults() *Settings {
	selected := make(map[catalog.Category]catalog.MealSummary, len(catalog.Slots))
	for _, slot := range catalog.Slots {
		if meals := r.catalog.SummaryLibrary()[slot]; len(meals) > 0 {
			selected[slot] = meals[0]
		}
	}
	return &Settings{
		ProteinTarget: DefaultProteinTarget,
		HeightInches:  r.defaultHeight,
		SelectedMeals: selected,
	}
}

// Load returns the stored settings or the defaults.
func (r *Repository) Load(ctx context.Context, userID string) (*Settings, error) {
	s := r.Defaults()
	if _, err := r.store.Get(ctx, store.Current(userID, store.Settings), s); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if s.HeightInches <= 0 {
		s.HeightInches = r.defaultHeight
	}
	return s, nil
}

// Save replaces the stored settings.
func (r *Repository) Save(ctx context.Context, userID string, s *Settings) error {
	if err := r.store.Put(ctx, store.Current(userID, store.Settings), s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Service implements the settings counters.
type Service struct {
	store   store.Store
	repo    *Repository
	catalog *catalog.Catalog
	logger  logrus.FieldLogger
}

// NewService creates a new settings service.
func NewService(s store.Store, c *catalog.Catalog, defaultHeight float64, logger logrus.FieldLogger) *Service {
	return &Service{
		store:   s,
		repo:    NewRepository(s, c, defaultHeight),
		catalog: c,
		logger:  logger.WithField("module", "settings"),
	}
}

// Repository exposes the loader for other read paths.
func (s *Service) Repository() *Repository {
	return s.repo
}

// Get returns the user's settings.
func (s *Service) Get(ctx context.Context, userID string) (*Settings, error) {
	return s.repo.Load(ctx, userID)
}

// Update replaces the user's editable settings.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (*Settings, error) {
	if in.AlcoholCount > MaxDrinksPerWeek {
		return nil, apperr.Validation("alcohol_count must be at most %d", MaxDrinksPerWeek)
	}
	return s.mutate(ctx, userID, "Update", func(st *Settings) error {
		st.ProteinTarget = in.ProteinTarget
		st.ProteinCurrent = min(in.ProteinCurrent, MaxProtein)
		st.WaterLiters = min(in.WaterLiters, MaxWater)
		st.AlcoholCount = in.AlcoholCount
		if in.HeightInches > 0 {
			st.HeightInches = in.HeightInches
		}
		if in.SelectedMeals != nil {
			st.SelectedMeals = in.SelectedMeals
		}
		return nil
	})
}

// AddProtein adds grams to today's protein, kept within [0, MaxProtein].
func (s *Service) AddProtein(ctx context.Context, userID string, grams int) (int, error) {
	if grams < 0 {
		return 0, apperr.Validation("amount must not be negative")
	}
	st, err := s.mutate(ctx, userID, "AddProtein", func(st *Settings) error {
		st.ProteinCurrent = clampProtein(st.ProteinCurrent + grams)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return st.ProteinCurrent, nil
}

// SubtractProtein removes grams from today's protein, kept within
// [0, MaxProtein].
func (s *Service) SubtractProtein(ctx context.Context, userID string, grams int) (int, error) {
	if grams < 0 {
		return 0, apperr.Validation("amount must not be negative")
	}
	st, err := s.mutate(ctx, userID, "SubtractProtein", func(st *Settings) error {
		st.ProteinCurrent = clampProtein(st.ProteinCurrent - grams)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return st.ProteinCurrent, nil
}

func clampProtein(grams int) int {
	return min(MaxProtein, max(0, grams))
}

// AddWater adds half a liter, capped at MaxWater.
func (s *Service) AddWater(ctx context.Context, userID string) (float64, error) {
	st, err := s.mutate(ctx, userID, "AddWater", func(st *Settings) error {
		st.WaterLiters = min(MaxWater, st.WaterLiters+WaterStep)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return st.WaterLiters, nil
}

// AddAlcohol counts one drink against the weekly limit.
func (s *Service) AddAlcohol(ctx context.Context, userID string) (int, error) {
	st, err := s.mutate(ctx, userID, "AddAlcohol", func(st *Settings) error {
		if st.AlcoholCount >= MaxDrinksPerWeek {
			return apperr.LimitExceeded("Weekly alcohol limit reached (%d drinks max)", MaxDrinksPerWeek)
		}
		st.AlcoholCount++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return st.AlcoholCount, nil
}

// ResetWeekly zeroes the weekly counters.
func (s *Service) ResetWeekly(ctx context.Context, userID string) error {
	_, err := s.mutate(ctx, userID, "ResetWeekly", func(st *Settings) error {
		st.AlcoholCount = 0
		st.WaterLiters = 0
		st.ProteinCurrent = 0
		return nil
	})
	return err
}

// SelectMeal makes a catalog meal the selection of its slot.
func (s *Service) SelectMeal(ctx context.Context, userID string, in SelectMealInput) (map[catalog.Category]catalog.MealSummary, error) {
	meal, ok := s.catalog.Meal(in.ID)
	if !ok {
		return nil, apperr.NotFound("Meal '%s' not found", in.ID)
	}
	st, err := s.mutate(ctx, userID, "SelectMeal", func(st *Settings) error {
		if st.SelectedMeals == nil {
			st.SelectedMeals = map[catalog.Category]catalog.MealSummary{}
		}
		st.SelectedMeals[meal.Category] = meal.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st.SelectedMeals, nil
}

func (s *Service) mutate(ctx context.Context, userID, op string, fn func(*Settings) error) (*Settings, error) {
	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	st, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(st); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, userID, st); err != nil {
		logging.LogError(s.logger, "settings", op, "save settings", nil, err)
		return nil, err
	}
	return st, nil
}

