// Package supplements keeps the daily supplement checklist.
package supplements

import (
	"context"
	"fmt"
	"strings"

	"beast-hub/internal/apperr"
	"beast-hub/internal/logging"
	"beast-hub/internal/store"

	"github.com/sirupsen/logrus"
)

// Supplement is one checklist line.
type Supplement struct {
	Name    string `json:"name" binding:"required"`
	Time    string `json:"time"`
	Checked bool   `json:"checked"`
}

type document struct {
	Supplements []Supplement `json:"supplements"`
}

// Defaults returns a fresh copy of the starter checklist.
func Defaults() []Supplement {
	return []Supplement{
		{Name: "Creatine Monohydrate", Time: "5g: Morning/Post-Lift"},
		{Name: "Vitamin D3 + K2", Time: "2k-5k IU: Morning"},
		{Name: "Omega-3 Fish Oil", Time: "2-3g: With Meals"},
		{Name: "Magnesium Glycinate", Time: "200-400mg: 1hr Before Bed"},
	}
}

// Service manages the checklist.
type Service struct {
	store  store.Store
	logger logrus.FieldLogger
}

// NewService creates a new supplements service.
func NewService(s store.Store, logger logrus.FieldLogger) *Service {
	return &Service{store: s, logger: logger.WithField("module", "supplements")}
}

// List returns the user's checklist, or the defaults.
func (s *Service) List(ctx context.Context, userID string) ([]Supplement, error) {
	var doc document
	found, err := s.store.Get(ctx, store.Current(userID, store.Supplements), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplements: %w", err)
	}
	if !found || doc.Supplements == nil {
		return Defaults(), nil
	}
	return doc.Supplements, nil
}

// Toggle flips the checked flag at index.
func (s *Service) Toggle(ctx context.Context, userID string, index int) ([]Supplement, error) {
	return s.mutate(ctx, userID, "Toggle", func(list []Supplement) ([]Supplement, error) {
		if index < 0 || index >= len(list) {
			return nil, apperr.NotFound("Supplement %d not found", index)
		}
		list[index].Checked = !list[index].Checked
		return list, nil
	})
}

// Add appends a supplement.
func (s *Service) Add(ctx context.Context, userID string, sup Supplement) ([]Supplement, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return nil, apperr.Validation("supplement name is required")
	}
	return s.mutate(ctx, userID, "Add", func(list []Supplement) ([]Supplement, error) {
		return append(list, sup), nil
	})
}

// Delete removes the supplement at index.
func (s *Service) Delete(ctx context.Context, userID string, index int) ([]Supplement, error) {
	return s.mutate(ctx, userID, "Delete", func(list []Supplement) ([]Supplement, error) {
		if index < 0 || index >= len(list) {
			return nil, apperr.NotFound("Supplement %d not found", index)
		}
		return append(list[:index], list[index+1:]...), nil
	})
}

func (s *Service) mutate(ctx context.Context, userID, op string, fn func([]Supplement) ([]Supplement, error)) ([]Supplement, error) {
	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err = fn(list)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, store.Current(userID, store.Supplements), document{Supplements: list}); err != nil {
		logging.LogError(s.logger, "supplements", op, "save supplements", nil, err)
		return nil, fmt.Errorf("failed to save supplements: %w", err)
	}
	return list, nil
}
