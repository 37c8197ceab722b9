// Package habits tracks the daily check-in and the streak built on it.
package habits

import (
	"context"
	"fmt"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/logging"
	"beast-hub/internal/shared"
	"beast-hub/internal/store"

	"github.com/sirupsen/logrus"
)

// MissWindow bounds how far back consecutive misses are counted.
const MissWindow = 30

// Log maps a date key to whether the day was completed.
type Log map[string]bool

type document struct {
	Habits Log `json:"habits"`
}

// Streak is the state of the daily habit chain.
type Streak struct {
	Streak            int  `json:"streak"`
	RuleBroken        bool `json:"rule_broken"`
	ConsecutiveMisses int  `json:"consecutive_misses"`
}

// ToggleInput sets the completion of one day.
type ToggleInput struct {
	Date      string `json:"date" binding:"required"`
	Completed bool   `json:"completed"`
}

// ComputeStreak counts completed days back from today. Today is still open,
// so an unchecked today neither extends nor breaks the chain. Misses are
// counted back from yesterday and two in a row break the 2-day rule.
func ComputeStreak(log Log, today time.Time) Streak {
	today = shared.Day(today)
	key := func(daysAgo int) string {
		return shared.FormatDate(today.AddDate(0, 0, -daysAgo))
	}

	var s Streak
	start := 1
	if log[key(0)] {
		start = 0
	}
	for i := start; log[key(i)]; i++ {
		s.Streak++
	}

	for i := 1; i <= MissWindow && !log[key(i)]; i++ {
		s.ConsecutiveMisses++
	}
	s.RuleBroken = s.ConsecutiveMisses >= 2
	return s
}

// CompletedBetween counts completed days in [from, to].
func CompletedBetween(log Log, from, to time.Time) int {
	n := 0
	for d := shared.Day(from); !d.After(shared.Day(to)); d = d.AddDate(0, 0, 1) {
		if log[shared.FormatDate(d)] {
			n++
		}
	}
	return n
}

// Service stores habit logs.
type Service struct {
	store  store.Store
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a new habits service.
func NewService(s store.Store, logger logrus.FieldLogger) *Service {
	return &Service{
		store:  s,
		logger: logger.WithField("module", "habits"),
		now:    time.Now,
	}
}

// Log returns the user's habit log, empty when nothing was recorded.
func (s *Service) Log(ctx context.Context, userID string) (Log, error) {
	doc := document{Habits: Log{}}
	if _, err := s.store.Get(ctx, store.Current(userID, store.Habits), &doc); err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	if doc.Habits == nil {
		doc.Habits = Log{}
	}
	return doc.Habits, nil
}

// Toggle records whether the day was completed.
func (s *Service) Toggle(ctx context.Context, userID string, in ToggleInput) error {
	if _, err := shared.ParseDate(in.Date); err != nil {
		return apperr.Validation("date: %v", err)
	}

	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	log, err := s.Log(ctx, userID)
	if err != nil {
		return err
	}
	log[in.Date] = in.Completed
	if err := s.store.Put(ctx, store.Current(userID, store.Habits), document{Habits: log}); err != nil {
		logging.LogError(s.logger, "habits", "Toggle", "save habits", in, err)
		return fmt.Errorf("failed to save habits: %w", err)
	}
	return nil
}

// Streak computes the user's streak as of today.
func (s *Service) Streak(ctx context.Context, userID string) (Streak, error) {
	log, err := s.Log(ctx, userID)
	if err != nil {
		return Streak{}, err
	}
	return ComputeStreak(log, s.now()), nil
}
