package services

import (
	"time"

	"github.com/emberhabits/ember/internal/models"
)

// IsSchedulable reports whether the given calendar day is active for the
// habit's schedule. Total over all dates; weekly-style schedules accept
// every day because their real constraint lives at the week level.
func IsSchedulable(date time.Time, habit models.Habit, location *time.Location) bool {
	switch schedule := habit.Schedule().(type) {
	case models.Daily:
		return true
	case models.DaysOfWeek:
		weekday := HabitWeekday(CalendarWeekday(date, location))
		for _, allowed := range schedule.Days {
			if allowed == weekday {
				return true
			}
		}
		return false
	case models.TimesPerWeek:
		return true
	}
	return false
}
