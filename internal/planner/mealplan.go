package planner

import (
	"time"

	"beast-hub/internal/catalog"
)

// PlanEntry assigns one catalog meal to one slot of one day. Name and macros
// are copied from the catalog when the entry is created.
type PlanEntry struct {
	Date      string           `json:"date"`
	MealType  catalog.Category `json:"meal_type"`
	MealID    string           `json:"meal_id"`
	MealName  string           `json:"meal_name"`
	Calories  int              `json:"calories"`
	Protein   int              `json:"protein"`
	IsPrepped bool             `json:"is_prepped"`
	PrepDate  *string          `json:"prep_date"`
}

// MealPlan is the saved plan of a user. There is at most one entry per
// (date, meal type).
type MealPlan struct {
	StartDate string      `json:"start_date"`
	Weeks     int         `json:"weeks"`
	Entries   []PlanEntry `json:"entries"`
	SavedAt   time.Time   `json:"saved_at"`
}

// PlanTotals sums the denormalized macros of a plan.
type PlanTotals struct {
	Days             int `json:"days"`
	Meals            int `json:"meals"`
	TotalCalories    int `json:"total_calories"`
	TotalProtein     int `json:"total_protein"`
	AvgDailyCalories int `json:"avg_daily_calories"`
	AvgDailyProtein  int `json:"avg_daily_protein"`
}

// Totals computes PlanTotals over entries.
func Totals(entries []PlanEntry) PlanTotals {
	days := make(map[string]struct{})
	t := PlanTotals{Meals: len(entries)}
	for _, e := range entries {
		days[e.Date] = struct{}{}
		t.TotalCalories += e.Calories
		t.TotalProtein += e.Protein
	}
	t.Days = len(days)
	if t.Days > 0 {
		t.AvgDailyCalories = t.TotalCalories / t.Days
		t.AvgDailyProtein = t.TotalProtein / t.Days
	}
	return t
}

func newEntry(date string, m catalog.MealDefinition) PlanEntry {
	return PlanEntry{
		Date:     date,
		MealType: m.Category,
		MealID:   m.ID,
		MealName: m.Name,
		Calories: m.Calories,
		Protein:  m.Protein,
	}
}
