package inventory

import (
	"context"
	"strings"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/logging"
	"beast-hub/internal/shared"
	"beast-hub/internal/store"

	"github.com/sirupsen/logrus"
)

// AddInput is a manual inventory entry.
type AddInput struct {
	Item       string  `json:"item" binding:"required"`
	Amount     string  `json:"amount"`
	Category   string  `json:"category"`
	ExpiryDate *string `json:"expiry_date"`
}

// Service implements manual inventory management.
type Service struct {
	store  store.Store
	repo   *Repository
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a new inventory service.
func NewService(s store.Store, logger logrus.FieldLogger) *Service {
	return &Service{
		store:  s,
		repo:   NewRepository(s),
		logger: logger.WithField("module", "inventory"),
		now:    time.Now,
	}
}

// List returns the user's inventory.
func (s *Service) List(ctx context.Context, userID string) ([]Item, error) {
	ledger, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ledger.Items, nil
}

// Add inserts a manual item; an existing item with the same name is replaced.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) ([]Item, error) {
	name := strings.TrimSpace(in.Item)
	if name == "" {
		return nil, apperr.Validation("item name is required")
	}
	if in.ExpiryDate != nil {
		if _, err := shared.ParseDate(*in.ExpiryDate); err != nil {
			return nil, apperr.Validation("expiry_date: %v", err)
		}
	}

	return s.mutate(ctx, userID, "Add", func(l *Ledger) error {
		if prev := l.Upsert(Item{
			Item:         name,
			Amount:       in.Amount,
			Category:     in.Category,
			PurchaseDate: shared.FormatDate(s.now()),
			ExpiryDate:   in.ExpiryDate,
			Source:       SourceManual,
		}); prev != nil {
			s.logger.WithField("item", name).Debug("inventory item replaced")
		}
		return nil
	})
}

// UpdateAmount changes the amount of an existing item.
func (s *Service) UpdateAmount(ctx context.Context, userID, name, amount string) ([]Item, error) {
	return s.mutate(ctx, userID, "UpdateAmount", func(l *Ledger) error {
		return l.UpdateAmount(name, amount)
	})
}

// Delete removes an item by exact name.
func (s *Service) Delete(ctx context.Context, userID, name string) ([]Item, error) {
	return s.mutate(ctx, userID, "Delete", func(l *Ledger) error {
		if _, ok := l.Remove(name); !ok {
			return apperr.NotFound("Item '%s' not found in inventory", name)
		}
		return nil
	})
}

// mutate runs fn on the locked ledger and saves it when fn succeeds.
func (s *Service) mutate(ctx context.Context, userID, op string, fn func(*Ledger) error) ([]Item, error) {
	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ledger, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(ledger); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, userID, ledger); err != nil {
		logging.LogError(s.logger, "inventory", op, "save ledger", nil, err)
		return nil, err
	}
	return ledger.Items, nil
}
