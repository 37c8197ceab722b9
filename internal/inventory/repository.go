package inventory

import (
	"context"
	"fmt"

	"beast-hub/internal/store"
)

// Repository loads and saves a user's ledger. It does not lock; callers
// mutating the ledger hold the user's store lock.
type Repository struct {
	store store.Store
}

// NewRepository creates a new inventory repository.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Load returns the user's ledger, empty when none was saved.
func (r *Repository) Load(ctx context.Context, userID string) (*Ledger, error) {
	ledger := &Ledger{Items: []Item{}}
	if _, err := r.store.Get(ctx, store.Current(userID, store.Inventory), ledger); err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	if ledger.Items == nil {
		ledger.Items = []Item{}
	}
	return ledger, nil
}

// Save replaces the user's ledger.
func (r *Repository) Save(ctx context.Context, userID string, ledger *Ledger) error {
	if err := r.store.Put(ctx, store.Current(userID, store.Inventory), ledger); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}
