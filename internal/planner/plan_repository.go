package planner

import (
	"context"
	"fmt"

	"beast-hub/internal/store"
)

// PlanRepository is a document-store backed repository for meal plans.
type PlanRepository struct {
	store store.Store
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(s store.Store) *PlanRepository {
	return &PlanRepository{store: s}
}

// Save replaces the user's meal plan.
func (r *PlanRepository) Save(ctx context.Context, userID string, plan *MealPlan) error {
	if err := r.store.Put(ctx, store.Current(userID, store.MealPlan), plan); err != nil {
		return fmt.Errorf("failed to save meal plan for user %s: %w", userID, err)
	}
	return nil
}

// Get returns the user's meal plan, or nil when none was saved.
func (r *PlanRepository) Get(ctx context.Context, userID string) (*MealPlan, error) {
	var plan MealPlan
	found, err := r.store.Get(ctx, store.Current(userID, store.MealPlan), &plan)
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan for user %s: %w", userID, err)
	}
	if !found {
		return nil, nil
	}
	return &plan, nil
}
