package planner

import (
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/catalog"
	"beast-hub/internal/shared"
)

const (
	MinWeeks = 1
	MaxWeeks = 4
)

// Builder expands a date range into plan entries.
type Builder struct {
	catalog *catalog.Catalog
}

// NewBuilder creates a new Builder over c.
func NewBuilder(c *catalog.Catalog) *Builder {
	return &Builder{catalog: c}
}

// Build assigns breakfast, lunch and dinner for every day of the span. Day
// offset d takes the meal at index d mod n of each slot's catalog list, so
// the same inputs always produce the same plan. Slots with no meals are
// left empty.
func (b *Builder) Build(weeks int, start time.Time) ([]PlanEntry, error) {
	if weeks < MinWeeks || weeks > MaxWeeks {
		return nil, apperr.Validation("weeks must be between %d and %d", MinWeeks, MaxWeeks)
	}

	start = shared.Day(start)
	days := weeks * 7
	entries := make([]PlanEntry, 0, days*len(catalog.Slots))
	for offset := 0; offset < days; offset++ {
		date := shared.FormatDate(start.AddDate(0, 0, offset))
		for _, slot := range catalog.Slots {
			meals := b.catalog.ByCategory(slot)
			if len(meals) == 0 {
				continue
			}
			entries = append(entries, newEntry(date, meals[offset%len(meals)]))
		}
	}
	return entries, nil
}
