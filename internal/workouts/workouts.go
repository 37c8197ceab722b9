// Package workouts is the training log, one session per date.
package workouts

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/logging"
	"beast-hub/internal/shared"
	"beast-hub/internal/store"

	"github.com/sirupsen/logrus"
)

const (
	DefaultListLimit = 30
	CustomType       = "Custom"
)

// Exercise is one movement of a session.
type Exercise struct {
	Exercise string  `json:"exercise" binding:"required"`
	Sets     int     `json:"sets" binding:"gte=0"`
	Reps     int     `json:"reps" binding:"gte=0"`
	Weight   float64 `json:"weight" binding:"gte=0"`
}

// Workout is the session logged on one date.
type Workout struct {
	Date            string     `json:"date" binding:"required"`
	WorkoutType     string     `json:"workout_type" binding:"required"`
	Exercises       []Exercise `json:"exercises" binding:"dive"`
	DurationMinutes int        `json:"duration_minutes" binding:"gte=0"`
	Notes           string     `json:"notes"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProgressPoint is one session's numbers for a single exercise.
type ProgressPoint struct {
	Date   string  `json:"date"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	Volume float64 `json:"volume"`
}

// Volume is sets x reps x weight.
func (e Exercise) Volume() float64 {
	return float64(e.Sets*e.Reps) * e.Weight
}

// Service stores workouts.
type Service struct {
	store  store.Store
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a new workouts service.
func NewService(s store.Store, logger logrus.FieldLogger) *Service {
	return &Service{
		store:  s,
		logger: logger.WithField("module", "workouts"),
		now:    time.Now,
	}
}

func ref(userID, date string) store.Ref {
	return store.Ref{UserID: userID, Collection: store.Workouts, Key: date}
}

// All returns every workout, newest date first.
func (s *Service) All(ctx context.Context, userID string) ([]Workout, error) {
	docs, err := s.store.List(ctx, userID, store.Workouts)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	workouts, err := store.DecodeAll[Workout](docs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].Date > workouts[j].Date
	})
	return workouts, nil
}

// List returns the most recent workouts. A non-positive limit means
// DefaultListLimit.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Workout, error) {
	workouts, err := s.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if len(workouts) > limit {
		workouts = workouts[:limit]
	}
	return workouts, nil
}

// Between returns the workouts dated within [from, to], oldest first.
func (s *Service) Between(ctx context.Context, userID string, from, to time.Time) ([]Workout, error) {
	all, err := s.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	lo, hi := shared.FormatDate(from), shared.FormatDate(to)
	out := []Workout{}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Date >= lo && all[i].Date <= hi {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Get returns the workout of date, or nil.
func (s *Service) Get(ctx context.Context, userID, date string) (*Workout, error) {
	var w Workout
	found, err := s.store.Get(ctx, ref(userID, date), &w)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout %s: %w", date, err)
	}
	if !found {
		return nil, nil
	}
	return &w, nil
}

// Upsert replaces the workout of w.Date.
func (s *Service) Upsert(ctx context.Context, userID string, w Workout) (*Workout, error) {
	if _, err := shared.ParseDate(w.Date); err != nil {
		return nil, apperr.Validation("date: %v", err)
	}
	if strings.TrimSpace(w.WorkoutType) == "" {
		return nil, apperr.Validation("workout_type is required")
	}
	if w.Exercises == nil {
		w.Exercises = []Exercise{}
	}

	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.save(ctx, userID, "Upsert", &w)
}

// AddExercise appends an exercise to the workout of date, creating a
// Custom workout when there is none.
func (s *Service) AddExercise(ctx context.Context, userID, date string, e Exercise) (*Workout, error) {
	if _, err := shared.ParseDate(date); err != nil {
		return nil, apperr.Validation("date: %v", err)
	}
	if strings.TrimSpace(e.Exercise) == "" {
		return nil, apperr.Validation("exercise is required")
	}

	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	w, err := s.Get(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = &Workout{Date: date, WorkoutType: CustomType, Exercises: []Exercise{}}
	}
	w.Exercises = append(w.Exercises, e)
	return s.save(ctx, userID, "AddExercise", w)
}

// Delete removes the workout of date.
func (s *Service) Delete(ctx context.Context, userID, date string) error {
	unlock, err := s.store.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	deleted, err := s.store.Delete(ctx, ref(userID, date))
	if err != nil {
		return fmt.Errorf("failed to delete workout %s: %w", date, err)
	}
	if !deleted {
		return apperr.NotFound("No workout logged on %s", date)
	}
	return nil
}

// Progress lists every logged set of an exercise, oldest first. Names match
// case-insensitively.
func (s *Service) Progress(ctx context.Context, userID, exercise string) ([]ProgressPoint, error) {
	all, err := s.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	points := []ProgressPoint{}
	for i := len(all) - 1; i >= 0; i-- {
		for _, e := range all[i].Exercises {
			if !strings.EqualFold(e.Exercise, exercise) {
				continue
			}
			points = append(points, ProgressPoint{
				Date:   all[i].Date,
				Sets:   e.Sets,
				Reps:   e.Reps,
				Weight: e.Weight,
				Volume: e.Volume(),
			})
		}
	}
	return points, nil
}

func (s *Service) save(ctx context.Context, userID, op string, w *Workout) (*Workout, error) {
	w.UpdatedAt = s.now().UTC()
	if err := s.store.Put(ctx, ref(userID, w.Date), w); err != nil {
		logging.LogError(s.logger, "workouts", op, "save workout", map[string]string{"date": w.Date}, err)
		return nil, fmt.Errorf("failed to save workout %s: %w", w.Date, err)
	}
	return w, nil
}
