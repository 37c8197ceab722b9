package planner

import (
	"sort"
	"time"

	"beast-hub/internal/catalog"
	"beast-hub/internal/shared"
)

// PrepTask groups every plan entry of one batch-prep friendly meal.
type PrepTask struct {
	MealID          string           `json:"meal_id"`
	MealName        string           `json:"meal_name"`
	MealType        catalog.Category `json:"meal_type"`
	BatchSize       int              `json:"batch_size"`
	ShelfLifeDays   int              `json:"shelf_life_days"`
	PrepDay         string           `json:"prep_day"`
	PrepTimeMinutes int              `json:"prep_time_minutes"`
	ServesDates     []string         `json:"serves_dates"`
	PreppedDates    []string         `json:"prepped_dates"`
	IsPrepped       bool             `json:"is_prepped"`
}

// Urgency classifies how soon a prep deadline falls.
type Urgency string

const (
	UrgencyNow      Urgency = "NOW"
	UrgencyTomorrow Urgency = "TOMORROW"
	UrgencyUpcoming Urgency = "UPCOMING"
)

// PrepAlert is the next prep deadline of one task.
type PrepAlert struct {
	MealID            string           `json:"meal_id"`
	MealName          string           `json:"meal_name"`
	MealType          catalog.Category `json:"meal_type"`
	MealDate          string           `json:"meal_date"`
	PrepBy            string           `json:"prep_by"`
	Urgency           Urgency          `json:"urgency"`
	PrepTimeMinutes   int              `json:"prep_time_minutes"`
	BatchPrepFriendly bool             `json:"batch_prep_friendly"`
	BatchSize         int              `json:"batch_size"`
}

// AlertFeed holds the surfaced alerts. HasUrgent is set iff an alert is NOW.
type AlertFeed struct {
	Alerts    []PrepAlert `json:"alerts"`
	HasUrgent bool        `json:"has_urgent"`
}

// DerivePrepTasks groups entries by batch-prep friendly meal id. Tasks are
// ordered by their first serving date; entries whose meal is not in the
// catalog are ignored.
func DerivePrepTasks(c *catalog.Catalog, entries []PlanEntry) []PrepTask {
	byMeal := make(map[string]*PrepTask)
	var order []string

	for _, e := range entries {
		meal, ok := c.Meal(e.MealID)
		if !ok || !meal.BatchPrepFriendly {
			continue
		}
		task, ok := byMeal[meal.ID]
		if !ok {
			task = &PrepTask{
				MealID:          meal.ID,
				MealName:        meal.Name,
				MealType:        meal.Category,
				BatchSize:       meal.BatchSize,
				ShelfLifeDays:   meal.ShelfLifeDays,
				PrepDay:         meal.PrepDayRecommended,
				PrepTimeMinutes: meal.PrepTimeMinutes,
				ServesDates:     []string{},
				PreppedDates:    []string{},
			}
			byMeal[meal.ID] = task
			order = append(order, meal.ID)
		}
		task.ServesDates = append(task.ServesDates, e.Date)
		if e.IsPrepped {
			task.PreppedDates = append(task.PreppedDates, e.Date)
		}
	}

	tasks := make([]PrepTask, 0, len(order))
	for _, id := range order {
		t := byMeal[id]
		sort.Strings(t.ServesDates)
		sort.Strings(t.PreppedDates)
		t.IsPrepped = len(t.PreppedDates) == len(t.ServesDates)
		tasks = append(tasks, *t)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].ServesDates[0] < tasks[j].ServesDates[0]
	})
	return tasks
}

// ClassifyUrgency compares a prep deadline with today.
func ClassifyUrgency(prepBy, today time.Time) Urgency {
	switch days := shared.DaysBetween(today, prepBy); {
	case days <= 0:
		return UrgencyNow
	case days == 1:
		return UrgencyTomorrow
	default:
		return UrgencyUpcoming
	}
}

// NextAlert returns the alert for the task's earliest serving date that is
// today or later and not yet prepped.
func NextAlert(meal catalog.MealDefinition, task PrepTask, today time.Time) (PrepAlert, bool) {
	prepped := make(map[string]bool, len(task.PreppedDates))
	for _, d := range task.PreppedDates {
		prepped[d] = true
	}

	todayKey := shared.FormatDate(today)
	for _, d := range task.ServesDates {
		if d < todayKey || prepped[d] {
			continue
		}
		mealDate, err := shared.ParseDate(d)
		if err != nil {
			continue
		}
		prepBy := mealDate.AddDate(0, 0, -meal.AdvancePrepDays)
		return PrepAlert{
			MealID:            meal.ID,
			MealName:          meal.Name,
			MealType:          meal.Category,
			MealDate:          d,
			PrepBy:            shared.FormatDate(prepBy),
			Urgency:           ClassifyUrgency(prepBy, today),
			PrepTimeMinutes:   meal.PrepTimeMinutes,
			BatchPrepFriendly: meal.BatchPrepFriendly,
			BatchSize:         meal.BatchSize,
		}, true
	}
	return PrepAlert{}, false
}

// DeriveAlerts builds the alert feed. Only NOW and TOMORROW alerts are kept.
func DeriveAlerts(c *catalog.Catalog, entries []PlanEntry, today time.Time) AlertFeed {
	feed := AlertFeed{Alerts: []PrepAlert{}}
	for _, task := range DerivePrepTasks(c, entries) {
		meal, _ := c.Meal(task.MealID)
		alert, ok := NextAlert(meal, task, today)
		if !ok || alert.Urgency == UrgencyUpcoming {
			continue
		}
		if alert.Urgency == UrgencyNow {
			feed.HasUrgent = true
		}
		feed.Alerts = append(feed.Alerts, alert)
	}
	sort.SliceStable(feed.Alerts, func(i, j int) bool {
		return feed.Alerts[i].PrepBy < feed.Alerts[j].PrepBy
	})
	return feed
}
