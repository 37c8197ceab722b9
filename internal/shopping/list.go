// Package shopping derives the shopping list from a meal plan and keeps the
// purchased flags of the saved list in sync with the inventory.
package shopping

import (
	"sort"
	"strings"
	"time"

	"beast-hub/internal/catalog"
	"beast-hub/internal/inventory"
	"beast-hub/internal/planner"
)

// CategoryOrder is the aisle order of a list. Unknown categories go last.
var CategoryOrder = []string{"Protein", "Produce", "Dairy", "Pantry", "Frozen"}

// Item is one ingredient on the list, unique by name.
type Item struct {
	Item      string   `json:"item"`
	Amount    string   `json:"amount"`
	Category  string   `json:"category"`
	Purchased bool     `json:"purchased"`
	MealIDs   []string `json:"meal_ids"`
	// PriorStock is the inventory entry the purchase replaced, if any.
	PriorStock *inventory.Item `json:"prior_stock,omitempty"`
}

// SaveItem is a list line as a client submits it. Inventory bookkeeping
// such as PriorStock is never accepted from the client.
type SaveItem struct {
	Item      string   `json:"item"`
	Amount    string   `json:"amount"`
	Category  string   `json:"category"`
	Purchased bool     `json:"purchased"`
	MealIDs   []string `json:"meal_ids"`
}

// List is the saved shopping list document.
type List struct {
	Items   []Item    `json:"items"`
	SavedAt time.Time `json:"saved_at"`
}

type accumulator struct {
	item    Item
	amounts []string
	meals   map[string]bool
}

// Aggregate collapses the ingredients of every entry into one item per
// ingredient name. Distinct amounts are joined with ", " in first-seen
// order, the last category seen wins and meal ids are unioned. Entries whose
// meal is not in the catalog are skipped.
func Aggregate(c *catalog.Catalog, entries []planner.PlanEntry) []Item {
	byName := make(map[string]*accumulator)
	var order []string

	for _, e := range entries {
		meal, ok := c.Meal(e.MealID)
		if !ok {
			continue
		}
		for _, ing := range meal.Ingredients {
			acc, ok := byName[ing.Item]
			if !ok {
				acc = &accumulator{item: Item{Item: ing.Item}, meals: map[string]bool{}}
				byName[ing.Item] = acc
				order = append(order, ing.Item)
			}
			if !contains(acc.amounts, ing.Amount) {
				acc.amounts = append(acc.amounts, ing.Amount)
			}
			acc.item.Category = ing.Category
			if !acc.meals[meal.ID] {
				acc.meals[meal.ID] = true
				acc.item.MealIDs = append(acc.item.MealIDs, meal.ID)
			}
		}
	}

	items := make([]Item, 0, len(order))
	for _, name := range order {
		acc := byName[name]
		acc.item.Amount = strings.Join(acc.amounts, ", ")
		items = append(items, acc.item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return categoryRank(items[i].Category) < categoryRank(items[j].Category)
	})
	return items
}

func categoryRank(category string) int {
	for i, c := range CategoryOrder {
		if c == category {
			return i
		}
	}
	return len(CategoryOrder)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
