package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/logging"
	"beast-hub/internal/shared"
	"beast-hub/internal/store"

	"github.com/sirupsen/logrus"
)

// Overrides maps a date key to a custom activity.
type Overrides map[string]string

type plannerDocument struct {
	Planner Overrides `json:"planner"`
}

// OverrideInput sets the activity of one date.
type OverrideInput struct {
	Date     string `json:"date" binding:"required"`
	Activity string `json:"activity" binding:"required"`
}

// Service reads the schedule and stores date overrides.
type Service struct {
	store  store.Store
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a new schedule service.
func NewService(s store.Store, logger logrus.FieldLogger) *Service {
	return &Service{
		store:  s,
		logger: logger.WithField("module", "schedule"),
		now:    time.Now,
	}
}

// Overrides returns the user's custom activities.
func (s *Service) Overrides(ctx context.Context, userID string) (Overrides, error) {
	doc := plannerDocument{Planner: Overrides{}}
	if _, err := s.store.Get(ctx, store.Current(userID, store.Planner), &doc); err != nil {
		return nil, fmt.Errorf("failed to load planner: %w", err)
	}
	if doc.Planner == nil {
		doc.Planner = Overrides{}
	}
	return doc.Planner, nil
}

// SetOverride stores a custom activity for a date.
func (s *Service) SetOverride(ctx context.Context, userID string, in OverrideInput) error {
	if _, err := shared.ParseDate(in.Date); err != nil {
		return apperr.Validation("date: %v", err)
	}
	activity := strings.TrimSpace(in.Activity)
	if activity == "" {
		return apperr.Validation("activity is required")
	}

	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	overrides, err := s.Overrides(ctx, userID)
	if err != nil {
		return err
	}
	overrides[in.Date] = activity
	if err := s.store.Put(ctx, store.Current(userID, store.Planner), plannerDocument{Planner: overrides}); err != nil {
		logging.LogError(s.logger, "schedule", "SetOverride", "save planner", in, err)
		return fmt.Errorf("failed to save planner: %w", err)
	}
	return nil
}

// Today returns today's plan: the override when one is set, otherwise the
// default day.
func (s *Service) Today(ctx context.Context, userID string) (Day, error) {
	now := s.now()
	overrides, err := s.Overrides(ctx, userID)
	if err != nil {
		return Day{}, err
	}

	name := now.Weekday().String()
	if activity, ok := overrides[shared.FormatDate(now)]; ok {
		return Day{
			Day:    name,
			Type:   activity,
			Tasks:  []string{"Custom Session: " + activity},
			Custom: true,
		}, nil
	}
	return ForWeekday(name), nil
}
