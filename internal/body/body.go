// Package body records weigh-ins and circumference measurements.
package body

import (
	"context"
	"fmt"
	"sort"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/logging"
	"beast-hub/internal/settings"
	"beast-hub/internal/shared"
	"beast-hub/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ListLimit caps how many entries List returns.
const ListLimit = 100

// Metric is one measurement entry.
type Metric struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Weight    float64   `json:"weight"`
	Waist     float64   `json:"waist"`
	Neck      float64   `json:"neck"`
	BodyFat   float64   `json:"body_fat"`
	Timestamp time.Time `json:"timestamp"`
}

// AddInput is a new measurement. BodyFat is computed when omitted.
type AddInput struct {
	Date    string   `json:"date" binding:"required"`
	Weight  float64  `json:"weight" binding:"required,gt=0"`
	Waist   float64  `json:"waist" binding:"required,gt=0"`
	Neck    float64  `json:"neck" binding:"required,gt=0"`
	BodyFat *float64 `json:"body_fat" binding:"omitempty,gte=0,lte=100"`
}

// Service stores body metrics.
type Service struct {
	store    store.Store
	settings *settings.Repository
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewService creates a new body metrics service. Heights come from the
// user's settings.
func NewService(s store.Store, settingsRepo *settings.Repository, logger logrus.FieldLogger) *Service {
	return &Service{
		store:    s,
		settings: settingsRepo,
		logger:   logger.WithField("module", "body"),
		now:      time.Now,
	}
}

// List returns up to limit entries, newest first. A limit outside
// (0, ListLimit] means ListLimit.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Metric, error) {
	docs, err := s.store.List(ctx, userID, store.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	metrics, err := store.DecodeAll[Metric](docs)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Timestamp.After(metrics[j].Timestamp)
	})
	if limit <= 0 || limit > ListLimit {
		limit = ListLimit
	}
	if len(metrics) > limit {
		metrics = metrics[:limit]
	}
	return metrics, nil
}

// Add records a measurement.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (*Metric, error) {
	if _, err := shared.ParseDate(in.Date); err != nil {
		return nil, apperr.Validation("date: %v", err)
	}

	m := &Metric{
		ID:        uuid.NewString(),
		Date:      in.Date,
		Weight:    in.Weight,
		Waist:     in.Waist,
		Neck:      in.Neck,
		Timestamp: s.now().UTC(),
	}

	if in.BodyFat != nil {
		m.BodyFat = Round1(*in.BodyFat)
	} else {
		if in.Waist <= in.Neck {
			return nil, apperr.Validation("waist must be larger than neck to estimate body fat")
		}
		st, err := s.settings.Load(ctx, userID)
		if err != nil {
			return nil, err
		}
		m.BodyFat = NavyBodyFat(in.Waist, in.Neck, st.HeightInches)
	}

	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.store.Put(ctx, store.Ref{UserID: userID, Collection: store.Metrics, Key: m.ID}, m); err != nil {
		logging.LogError(s.logger, "body", "Add", "save metric", in, err)
		return nil, fmt.Errorf("failed to save metric: %w", err)
	}
	return m, nil
}
