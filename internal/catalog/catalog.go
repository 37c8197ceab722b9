// Package catalog holds the static meal library. The full records and the
// summary projection shown in meal pickers are both built once, when the
// catalog is constructed.
package catalog

import (
	"fmt"
	"strings"
)

// Category is a meal slot.
type Category string

const (
	Breakfast Category = "breakfast"
	Lunch     Category = "lunch"
	Dinner    Category = "dinner"
)

// Slots lists the meal slots in the order they are planned each day.
var Slots = []Category{Breakfast, Lunch, Dinner}

// ParseCategory validates a meal slot name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Breakfast, Lunch, Dinner:
		return c, nil
	}
	return "", fmt.Errorf("unknown meal category %q", s)
}

// Ingredient is one line of a meal's shopping requirements.
type Ingredient struct {
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

// MealDefinition is the full record of a catalog meal.
type MealDefinition struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Category            Category     `json:"category"`
	Macros              string       `json:"macros"`
	Calories            int          `json:"calories"`
	Protein             int          `json:"protein"`
	Carbs               int          `json:"carbs"`
	Fat                 int          `json:"fat"`
	Blueprint           string       `json:"blueprint"`
	PrepTimeMinutes     int          `json:"prep_time_minutes"`
	RequiresAdvancePrep bool         `json:"requires_advance_prep"`
	AdvancePrepDays     int          `json:"advance_prep_days"`
	BatchPrepFriendly   bool         `json:"batch_prep_friendly"`
	BatchSize           int          `json:"batch_size"`
	ShelfLifeDays       int          `json:"shelf_life_days"`
	PrepDayRecommended  string       `json:"prep_day_recommended"`
	IndividualServings  int          `json:"individual_servings"`
	FamilyServings      int          `json:"family_servings"`
	Ingredients         []Ingredient `json:"ingredients"`
}

// MealSummary is the display projection of a meal.
type MealSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Macros    string   `json:"macros"`
	Blueprint string   `json:"blueprint"`
	Category  Category `json:"category"`
}

// MacrosLabel renders calories and protein the way meal cards show them.
func MacrosLabel(calories, protein int) string {
	return fmt.Sprintf("%d Cal | %dg P", calories, protein)
}

// Summary projects the meal onto its display fields.
func (m MealDefinition) Summary() MealSummary {
	return MealSummary{
		ID:        m.ID,
		Name:      m.Name,
		Macros:    m.Macros,
		Blueprint: m.Blueprint,
		Category:  m.Category,
	}
}

// Catalog is an immutable meal library.
type Catalog struct {
	byID       map[string]MealDefinition
	byCategory map[Category][]MealDefinition
	summaries  map[Category][]MealSummary
}

// New indexes meals and builds both views. Meal ids must be unique and
// every meal must belong to a known slot.
func New(meals []MealDefinition) (*Catalog, error) {
	c := &Catalog{
		byID:       make(map[string]MealDefinition, len(meals)),
		byCategory: make(map[Category][]MealDefinition, len(Slots)),
		summaries:  make(map[Category][]MealSummary, len(Slots)),
	}
	for _, slot := range Slots {
		c.byCategory[slot] = []MealDefinition{}
		c.summaries[slot] = []MealSummary{}
	}

	for _, m := range meals {
		if m.ID == "" {
			return nil, fmt.Errorf("meal %q has no id", m.Name)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate meal id %q", m.ID)
		}
		if _, err := ParseCategory(string(m.Category)); err != nil {
			return nil, fmt.Errorf("meal %q: %w", m.ID, err)
		}
		if m.Macros == "" {
			m.Macros = MacrosLabel(m.Calories, m.Protein)
		}
		c.byID[m.ID] = m
		c.byCategory[m.Category] = append(c.byCategory[m.Category], m)
		c.summaries[m.Category] = append(c.summaries[m.Category], m.Summary())
	}
	return c, nil
}

// MustNew is New for static tables known to be valid.
func MustNew(meals []MealDefinition) *Catalog {
	c, err := New(meals)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in meal library.
func Default() *Catalog {
	return MustNew(defaultMeals)
}

// Meal looks up a meal by id.
func (c *Catalog) Meal(id string) (MealDefinition, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// ByCategory returns the meals of one slot in catalog order.
func (c *Catalog) ByCategory(cat Category) []MealDefinition {
	return c.byCategory[cat]
}

// Library is the full view keyed by slot. Callers must not modify it.
func (c *Catalog) Library() map[Category][]MealDefinition {
	return c.byCategory
}

// SummaryLibrary is the summary view keyed by slot. Callers must not modify it.
func (c *Catalog) SummaryLibrary() map[Category][]MealSummary {
	return c.summaries
}
