package shopping

import (
	"context"
	"strings"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/catalog"
	"beast-hub/internal/inventory"
	"beast-hub/internal/logging"
	"beast-hub/internal/planner"
	"beast-hub/internal/shared"
	"beast-hub/internal/store"

	"github.com/sirupsen/logrus"
)

// Service derives shopping lists and reconciles purchases with the inventory.
type Service struct {
	catalog   *catalog.Catalog
	store     store.Store
	lists     *Repository
	plans     *planner.PlanRepository
	inventory *inventory.Repository
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewService creates a new shopping service.
func NewService(c *catalog.Catalog, s store.Store, logger logrus.FieldLogger) *Service {
	return &Service{
		catalog:   c,
		store:     s,
		lists:     NewRepository(s),
		plans:     planner.NewPlanRepository(s),
		inventory: inventory.NewRepository(s),
		logger:    logger.WithField("module", "shopping"),
		now:       time.Now,
	}
}

// Generate aggregates the saved plan into a fresh list. Nothing is stored
// and every item starts unpurchased.
func (s *Service) Generate(ctx context.Context, userID string) ([]Item, error) {
	plan, err := s.plans.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("No meal plan saved")
	}
	return Aggregate(s.catalog, plan.Entries), nil
}

// Save replaces the user's list with items and brings the inventory in line
// with the submitted purchased flags. An item newly marked purchased is
// bought exactly as TogglePurchased would buy it; an item that was purchased
// and arrives unpurchased is un-bought. Purchased items left out of the new
// list stay in the inventory as manual stock.
func (s *Service) Save(ctx context.Context, userID string, items []SaveItem) (*List, error) {
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		name := strings.TrimSpace(it.Item)
		if name == "" {
			return nil, apperr.Validation("item %d: name is required", i)
		}
		if seen[name] {
			return nil, apperr.Validation("duplicate item '%s'", name)
		}
		seen[name] = true
	}

	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	prev, err := s.lists.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	bought := make(map[string]Item)
	if prev != nil {
		for _, it := range prev.Items {
			if it.Purchased {
				bought[it.Item] = it
			}
		}
	}

	ledger, err := s.inventory.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]Item, len(items))
	for i, in := range items {
		item := Item{
			Item:     in.Item,
			Amount:   in.Amount,
			Category: in.Category,
			MealIDs:  in.MealIDs,
		}
		if item.MealIDs == nil {
			item.MealIDs = []string{}
		}
		old, wasBought := bought[in.Item]
		delete(bought, in.Item)
		switch {
		case in.Purchased && wasBought:
			item.Purchased = true
			item.PriorStock = old.PriorStock
		case in.Purchased:
			s.buy(ledger, &item)
		case wasBought:
			s.unbuy(ledger, &old)
		}
		out[i] = item
	}
	for name := range bought {
		if stock, ok := ledger.Get(name); ok && stock.Source == inventory.SourceShopping {
			stock.Source = inventory.SourceManual
			ledger.Upsert(stock)
		}
	}

	if err := s.inventory.Save(ctx, userID, ledger); err != nil {
		logging.LogError(s.logger, "shopping", "Save", "save inventory", map[string]int{"items": len(items)}, err)
		return nil, err
	}
	list := &List{Items: out, SavedAt: s.now().UTC()}
	if err := s.lists.Save(ctx, userID, list); err != nil {
		logging.LogError(s.logger, "shopping", "Save", "save list", map[string]int{"items": len(items)}, err)
		return nil, err
	}
	return list, nil
}

// buy puts item in the ledger and remembers the entry it replaced.
func (s *Service) buy(ledger *inventory.Ledger, item *Item) {
	item.PriorStock = ledger.Upsert(inventory.Item{
		Item:         item.Item,
		Amount:       item.Amount,
		Category:     item.Category,
		PurchaseDate: shared.FormatDate(s.now()),
		Source:       inventory.SourceShopping,
	})
	item.Purchased = true
}

// unbuy reverses buy: the replaced entry comes back, or the item leaves the
// ledger.
func (s *Service) unbuy(ledger *inventory.Ledger, item *Item) {
	if item.PriorStock != nil {
		ledger.Upsert(*item.PriorStock)
	} else {
		ledger.Remove(item.Item)
	}
	item.PriorStock = nil
	item.Purchased = false
}

// Get returns the saved list, or an empty one.
func (s *Service) Get(ctx context.Context, userID string) (*List, error) {
	list, err := s.lists.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return &List{Items: []Item{}}, nil
	}
	return list, nil
}

// TogglePurchased flips the purchased flag of the item at index and applies
// the matching inventory change. Buying an item puts it in the inventory,
// remembering any entry it replaced; un-buying it restores that entry or
// removes the item. Two toggles leave both documents as they were.
func (s *Service) TogglePurchased(ctx context.Context, userID string, index int) (*List, error) {
	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	list, err := s.lists.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil || index < 0 || index >= len(list.Items) {
		return nil, apperr.NotFound("Shopping list item %d not found", index)
	}

	ledger, err := s.inventory.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &list.Items[index]
	if item.Purchased {
		s.unbuy(ledger, item)
	} else {
		s.buy(ledger, item)
	}

	if err := s.inventory.Save(ctx, userID, ledger); err != nil {
		logging.LogError(s.logger, "shopping", "TogglePurchased", "save inventory", map[string]any{"item": item.Item}, err)
		return nil, err
	}
	if err := s.lists.Save(ctx, userID, list); err != nil {
		logging.LogError(s.logger, "shopping", "TogglePurchased", "save list", map[string]any{"item": item.Item}, err)
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"item":      item.Item,
		"purchased": item.Purchased,
	}).Info("shopping item toggled")
	return list, nil
}
