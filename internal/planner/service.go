package planner

import (
	"context"
	"sort"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/catalog"
	"beast-hub/internal/inventory"
	"beast-hub/internal/logging"
	"beast-hub/internal/shared"
	"beast-hub/internal/store"

	"github.com/sirupsen/logrus"
)

// Suggestion statuses for today's meals.
const (
	StatusNotPlanned = "not_planned"
	StatusPrepped    = "prepped"
	StatusNeedsPrep  = "needs_prep"
	StatusCookFresh  = "cook_fresh"
)

// GeneratedPlan is an unsaved plan proposal.
type GeneratedPlan struct {
	MealPlan  []PlanEntry `json:"meal_plan"`
	Weeks     int         `json:"weeks"`
	StartDate string      `json:"start_date"`
	Totals    PlanTotals  `json:"totals"`
}

// MarkPreppedResult reports a prep completion.
type MarkPreppedResult struct {
	Success             bool     `json:"success"`
	Updated             int      `json:"updated"`
	PrepDate            string   `json:"prep_date"`
	IngredientsDeducted []string `json:"ingredients_deducted"`
}

// TodaySuggestion is the plan state of one slot for today.
type TodaySuggestion struct {
	Planned *PlanEntry           `json:"planned"`
	Meal    *catalog.MealSummary `json:"meal"`
	Status  string               `json:"status"`
}

// TodayMeals is the plan state of every slot on one date.
type TodayMeals struct {
	Date  string                               `json:"date"`
	Meals map[catalog.Category]TodaySuggestion `json:"meals"`
}

// Service owns the meal plan of each user and the prep workflow on top of it.
type Service struct {
	catalog   *catalog.Catalog
	builder   *Builder
	store     store.Store
	plans     *PlanRepository
	inventory *inventory.Repository
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewService creates a new planner service.
func NewService(c *catalog.Catalog, s store.Store, logger logrus.FieldLogger) *Service {
	return &Service{
		catalog:   c,
		builder:   NewBuilder(c),
		store:     s,
		plans:     NewPlanRepository(s),
		inventory: inventory.NewRepository(s),
		logger:    logger.WithField("module", "planner"),
		now:       time.Now,
	}
}

// Generate builds a plan proposal without saving it. An empty startDate
// means today.
func (s *Service) Generate(weeks int, startDate string) (*GeneratedPlan, error) {
	start := s.now()
	if startDate != "" {
		d, err := shared.ParseDate(startDate)
		if err != nil {
			return nil, apperr.Validation("start_date: %v", err)
		}
		start = d
	}

	entries, err := s.builder.Build(weeks, start)
	if err != nil {
		return nil, err
	}
	return &GeneratedPlan{
		MealPlan:  entries,
		Weeks:     weeks,
		StartDate: shared.FormatDate(start),
		Totals:    Totals(entries),
	}, nil
}

// Save replaces the user's plan with entries.
func (s *Service) Save(ctx context.Context, userID string, weeks int, entries []PlanEntry) (*MealPlan, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	if weeks < MinWeeks || weeks > MaxWeeks {
		weeks = (len(uniqueDates(entries)) + 6) / 7
	}

	sorted := append([]PlanEntry(nil), entries...)
	sortEntries(sorted)

	plan := &MealPlan{
		Weeks:   weeks,
		Entries: sorted,
		SavedAt: s.now().UTC(),
	}
	if len(sorted) > 0 {
		plan.StartDate = sorted[0].Date
	}

	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.plans.Save(ctx, userID, plan); err != nil {
		logging.LogError(s.logger, "planner", "Save", "save plan", map[string]int{"entries": len(sorted)}, err)
		return nil, err
	}
	return plan, nil
}

// Get returns the user's saved plan, or nil.
func (s *Service) Get(ctx context.Context, userID string) (*MealPlan, error) {
	return s.plans.Get(ctx, userID)
}

// Current returns the user's saved plan or NotFound.
func (s *Service) Current(ctx context.Context, userID string) (*MealPlan, error) {
	plan, err := s.plans.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("No meal plan saved")
	}
	return plan, nil
}

// Substitute puts another meal of the same slot on one day of the plan.
// The replaced entry loses its prep state.
func (s *Service) Substitute(ctx context.Context, userID, date string, slot catalog.Category, mealID string) (*MealPlan, error) {
	meal, ok := s.catalog.Meal(mealID)
	if !ok {
		return nil, apperr.NotFound("Meal '%s' not found", mealID)
	}
	if meal.Category != slot {
		return nil, apperr.Validation("meal '%s' is a %s, not a %s", mealID, meal.Category, slot)
	}

	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	plan, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i, e := range plan.Entries {
		if e.Date == date && e.MealType == slot {
			plan.Entries[i] = newEntry(date, meal)
			if err := s.plans.Save(ctx, userID, plan); err != nil {
				return nil, err
			}
			return plan, nil
		}
	}
	return nil, apperr.NotFound("No %s planned on %s", slot, date)
}

// PrepTasks lists the batch-prep tasks of the saved plan.
func (s *Service) PrepTasks(ctx context.Context, userID string) ([]PrepTask, error) {
	plan, err := s.plans.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return []PrepTask{}, nil
	}
	return DerivePrepTasks(s.catalog, plan.Entries), nil
}

// PrepAlerts returns the urgent prep deadlines of the saved plan.
func (s *Service) PrepAlerts(ctx context.Context, userID string) (AlertFeed, error) {
	plan, err := s.plans.Get(ctx, userID)
	if err != nil {
		return AlertFeed{}, err
	}
	if plan == nil {
		return AlertFeed{Alerts: []PrepAlert{}}, nil
	}
	return DeriveAlerts(s.catalog, plan.Entries, s.now()), nil
}

// MarkPrepped removes the meal's ingredients from inventory, then flags the
// meal's entries on dates as prepped, all with today's prep date. The plan is
// left untouched when the inventory cannot be updated.
func (s *Service) MarkPrepped(ctx context.Context, userID, mealID string, dates []string) (*MarkPreppedResult, error) {
	if len(dates) == 0 {
		return nil, apperr.Validation("at least one date is required")
	}
	wanted := make(map[string]bool, len(dates))
	for _, d := range dates {
		wanted[d] = true
	}

	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	plan, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}

	prepDate := shared.FormatDate(s.now())
	updated := 0
	for i := range plan.Entries {
		e := &plan.Entries[i]
		if e.MealID != mealID || !wanted[e.Date] {
			continue
		}
		e.IsPrepped = true
		e.PrepDate = &prepDate
		updated++
	}
	if updated == 0 {
		return nil, apperr.NotFound("Meal '%s' is not planned on the given dates", mealID)
	}

	deducted, err := s.deductIngredients(ctx, userID, mealID)
	if err != nil {
		logging.LogError(s.logger, "planner", "MarkPrepped", "deduct ingredients", map[string]string{"meal_id": mealID}, err)
		return nil, err
	}

	if err := s.plans.Save(ctx, userID, plan); err != nil {
		return nil, err
	}

	return &MarkPreppedResult{
		Success:             true,
		Updated:             updated,
		PrepDate:            prepDate,
		IngredientsDeducted: deducted,
	}, nil
}

// deductIngredients removes the meal's ingredients that are on hand.
// Caller holds the user's lock.
func (s *Service) deductIngredients(ctx context.Context, userID, mealID string) ([]string, error) {
	meal, ok := s.catalog.Meal(mealID)
	if !ok {
		return []string{}, nil
	}
	names := make([]string, len(meal.Ingredients))
	for i, ing := range meal.Ingredients {
		names[i] = ing.Item
	}

	ledger, err := s.inventory.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	deducted := ledger.Deduct(names)
	if len(deducted) == 0 {
		return deducted, nil
	}
	if err := s.inventory.Save(ctx, userID, ledger); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"meal_id": mealID, "deducted": deducted}).Info("ingredients deducted after prep")
	return deducted, nil
}

// Today reports today's planned meal and its status for every slot.
func (s *Service) Today(ctx context.Context, userID string) (*TodayMeals, error) {
	plan, err := s.plans.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := shared.FormatDate(s.now())
	out := make(map[catalog.Category]TodaySuggestion, len(catalog.Slots))
	for _, slot := range catalog.Slots {
		out[slot] = TodaySuggestion{Status: StatusNotPlanned}
	}
	res := &TodayMeals{Date: today, Meals: out}
	if plan == nil {
		return res, nil
	}

	for i := range plan.Entries {
		e := plan.Entries[i]
		if e.Date != today {
			continue
		}
		sug := TodaySuggestion{Planned: &e, Status: StatusCookFresh}
		if meal, ok := s.catalog.Meal(e.MealID); ok {
			summary := meal.Summary()
			sug.Meal = &summary
			if meal.RequiresAdvancePrep {
				sug.Status = StatusNeedsPrep
			}
		}
		if e.IsPrepped {
			sug.Status = StatusPrepped
		}
		out[e.MealType] = sug
	}
	return res, nil
}

func validateEntries(entries []PlanEntry) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if _, err := shared.ParseDate(e.Date); err != nil {
			return apperr.Validation("entry %d: %v", i, err)
		}
		if _, err := catalog.ParseCategory(string(e.MealType)); err != nil {
			return apperr.Validation("entry %d: %v", i, err)
		}
		if e.MealID == "" {
			return apperr.Validation("entry %d: meal_id is required", i)
		}
		key := e.Date + "/" + string(e.MealType)
		if seen[key] {
			return apperr.Validation("duplicate %s entry on %s", e.MealType, e.Date)
		}
		seen[key] = true
	}
	return nil
}

func uniqueDates(entries []PlanEntry) map[string]struct{} {
	dates := make(map[string]struct{})
	for _, e := range entries {
		dates[e.Date] = struct{}{}
	}
	return dates
}

func slotRank(c catalog.Category) int {
	for i, s := range catalog.Slots {
		if s == c {
			return i
		}
	}
	return len(catalog.Slots)
}

func sortEntries(entries []PlanEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return slotRank(entries[i].MealType) < slotRank(entries[j].MealType)
	})
}
