// Package summary rolls the week's habits, meals, training and body
// measurements into one report.
package summary

import (
	"context"
	"time"

	"beast-hub/internal/body"
	"beast-hub/internal/habits"
	"beast-hub/internal/planner"
	"beast-hub/internal/settings"
	"beast-hub/internal/shared"
	"beast-hub/internal/workouts"

	"github.com/sirupsen/logrus"
)

// Weekly is the report of the Monday-Sunday week containing today.
type Weekly struct {
	WeekStart    string       `json:"week_start"`
	WeekEnd      string       `json:"week_end"`
	Habits       HabitStats   `json:"habits"`
	Meals        MealStats    `json:"meals"`
	Nutrition    Nutrition    `json:"nutrition"`
	Workouts     WorkoutStats `json:"workouts"`
	BodyProgress BodyProgress `json:"body_progress"`
}

type HabitStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Streak    int `json:"streak"`
	Rate      int `json:"rate"`
}

type MealStats struct {
	Planned  int `json:"planned"`
	Prepped  int `json:"prepped"`
	PrepRate int `json:"prep_rate"`
}

type Nutrition struct {
	AvgDailyCalories int `json:"avg_daily_calories"`
	AvgDailyProtein  int `json:"avg_daily_protein"`
	ProteinTarget    int `json:"protein_target"`
}

type Session struct {
	Date            string `json:"date"`
	WorkoutType     string `json:"workout_type"`
	DurationMinutes int    `json:"duration_minutes"`
	Exercises       int    `json:"exercises"`
}

type WorkoutStats struct {
	Completed    int       `json:"completed"`
	TotalMinutes int       `json:"total_minutes"`
	Sessions     []Session `json:"sessions"`
}

// BodyProgress fields are null when there is not enough data.
type BodyProgress struct {
	CurrentWeight *float64 `json:"current_weight"`
	CurrentBF     *float64 `json:"current_bf"`
	WeightChange  *float64 `json:"weight_change"`
	BFChange      *float64 `json:"bf_change"`
}

// Inputs is everything Build reads.
type Inputs struct {
	Today         time.Time
	Habits        habits.Log
	Plan          *planner.MealPlan
	ProteinTarget int
	Workouts      []workouts.Workout
	// Metrics newest first.
	Metrics []body.Metric
}

// Build computes the report for the week containing in.Today.
func Build(in Inputs) Weekly {
	start, end := shared.WeekBounds(in.Today)
	lo, hi := shared.FormatDate(start), shared.FormatDate(end)
	inWeek := func(date string) bool { return date >= lo && date <= hi }

	w := Weekly{WeekStart: lo, WeekEnd: hi}

	completed := habits.CompletedBetween(in.Habits, start, end)
	w.Habits = HabitStats{
		Completed: completed,
		Total:     7,
		Streak:    habits.ComputeStreak(in.Habits, in.Today).Streak,
		Rate:      percent(completed, 7),
	}

	w.Nutrition.ProteinTarget = in.ProteinTarget
	if in.Plan != nil {
		var week []planner.PlanEntry
		for _, e := range in.Plan.Entries {
			if !inWeek(e.Date) {
				continue
			}
			week = append(week, e)
			if e.IsPrepped {
				w.Meals.Prepped++
			}
		}
		w.Meals.Planned = len(week)
		w.Meals.PrepRate = percent(w.Meals.Prepped, w.Meals.Planned)

		totals := planner.Totals(week)
		w.Nutrition.AvgDailyCalories = totals.AvgDailyCalories
		w.Nutrition.AvgDailyProtein = totals.AvgDailyProtein
	}

	w.Workouts.Sessions = []Session{}
	for _, wo := range in.Workouts {
		if !inWeek(wo.Date) {
			continue
		}
		w.Workouts.Completed++
		w.Workouts.TotalMinutes += wo.DurationMinutes
		w.Workouts.Sessions = append(w.Workouts.Sessions, Session{
			Date:            wo.Date,
			WorkoutType:     wo.WorkoutType,
			DurationMinutes: wo.DurationMinutes,
			Exercises:       len(wo.Exercises),
		})
	}

	w.BodyProgress = bodyProgress(in.Metrics, lo)
	return w
}

// bodyProgress compares the latest entry with the last one before the week,
// or with the week's first entry when nothing older exists.
func bodyProgress(metrics []body.Metric, weekStart string) BodyProgress {
	var p BodyProgress
	if len(metrics) == 0 {
		return p
	}
	current := metrics[0]
	p.CurrentWeight = ptr(current.Weight)
	p.CurrentBF = ptr(current.BodyFat)

	baseline := -1
	for i := 1; i < len(metrics); i++ {
		baseline = i
		if metrics[i].Date < weekStart {
			break
		}
	}
	if baseline < 0 {
		return p
	}
	p.WeightChange = ptr(body.Round1(current.Weight - metrics[baseline].Weight))
	p.BFChange = ptr(body.Round1(current.BodyFat - metrics[baseline].BodyFat))
	return p
}

func percent(n, of int) int {
	if of == 0 {
		return 0
	}
	return n * 100 / of
}

func ptr(v float64) *float64 {
	return &v
}

// Service gathers the inputs of Build from the stores.
type Service struct {
	habits   *habits.Service
	planner  *planner.Service
	settings *settings.Repository
	workouts *workouts.Service
	body     *body.Service
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewService creates a new summary service.
func NewService(h *habits.Service, p *planner.Service, st *settings.Repository, w *workouts.Service, b *body.Service, logger logrus.FieldLogger) *Service {
	return &Service{
		habits:   h,
		planner:  p,
		settings: st,
		workouts: w,
		body:     b,
		logger:   logger.WithField("module", "summary"),
		now:      time.Now,
	}
}

// Weekly builds the current week's report.
func (s *Service) Weekly(ctx context.Context, userID string) (*Weekly, error) {
	today := s.now()
	start, end := shared.WeekBounds(today)

	log, err := s.habits.Log(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan, err := s.planner.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	st, err := s.settings.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	week, err := s.workouts.Between(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	metrics, err := s.body.List(ctx, userID, body.ListLimit)
	if err != nil {
		return nil, err
	}

	w := Build(Inputs{
		Today:         today,
		Habits:        log,
		Plan:          plan,
		ProteinTarget: st.ProteinTarget,
		Workouts:      week,
		Metrics:       metrics,
	})
	s.logger.WithFields(logrus.Fields{"week_start": w.WeekStart, "user": userID}).Debug("weekly summary built")
	return &w, nil
}
