package services

import (
	"time"

	"github.com/emberhabits/ember/internal/models"
)

// LogLocation resolves the zone a log was recorded in, falling back to
// the display location when the recorded name is empty or unknown.
func LogLocation(entry models.HabitLog, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if entry.Timezone == "" {
		return fallback
	}
	location, err := time.LoadLocation(entry.Timezone)
	if err != nil {
		return fallback
	}
	return location
}

// LogsOnDay filters logs down to those whose calendar day, resolved in
// each log's own recorded zone, matches the given day in the display
// location. A log made at 23:30 in New York and a display zone of Berlin
// still count for the New York date, not the Berlin one.
func LogsOnDay(logs []models.HabitLog, day time.Time, location *time.Location) []models.HabitLog {
	matched := make([]models.HabitLog, 0, 1)
	for _, entry := range logs {
		if AreSameDayInZones(entry.Date, LogLocation(entry, location), day, location) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// IsCompleted is the single completion predicate: every consumer (streaks,
// calendar marks, weekly summaries) routes through it so the notion of
// "done" cannot drift between call sites.
//
// Binary habits complete on any log for the day; numeric habits with a
// daily target complete once the summed values reach it; numeric habits
// without a target degrade to binary semantics on any positive value.
func IsCompleted(habit models.Habit, date time.Time, logsForDate []models.HabitLog) bool {
	if len(logsForDate) == 0 {
		return false
	}

	switch habit.Kind {
	case models.KindNumeric:
		total := 0.0
		for _, entry := range logsForDate {
			total += entry.LoggedValue()
		}
		if habit.DailyTarget != nil {
			return total >= *habit.DailyTarget
		}
		return total > 0
	default:
		return true
	}
}
