package shopping

import (
	"context"
	"fmt"

	"beast-hub/internal/store"
)

// Repository handles persistence of shopping lists.
type Repository struct {
	store store.Store
}

// NewRepository creates a new shopping list repository.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Save replaces the user's shopping list.
func (r *Repository) Save(ctx context.Context, userID string, list *List) error {
	if err := r.store.Put(ctx, store.Current(userID, store.ShoppingList), list); err != nil {
		return fmt.Errorf("failed to save shopping list for user %s: %w", userID, err)
	}
	return nil
}

// Get retrieves the user's shopping list, or nil when none was saved.
func (r *Repository) Get(ctx context.Context, userID string) (*List, error) {
	var list List
	found, err := r.store.Get(ctx, store.Current(userID, store.ShoppingList), &list)
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list for user %s: %w", userID, err)
	}
	if !found {
		return nil, nil
	}
	return &list, nil
}
