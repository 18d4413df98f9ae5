package services

import (
	"time"

	"github.com/emberhabits/ember/internal/models"
)

// sameWeek reports whether two days share the enclosing week under the
// user's first-day-of-week preference. Comparing week-start days (rather
// than a plain date range) keeps week identity stable across year
// boundaries regardless of where the preference splits the week.
func sameWeek(a time.Time, b time.Time, firstDayOfWeek int, location *time.Location) bool {
	startA, _ := WeekInterval(a, firstDayOfWeek, location)
	startB, _ := WeekInterval(b, firstDayOfWeek, location)
	return startA.Equal(startB)
}

// IsWeeklyTargetMet evaluates the week-level goal for the week containing
// date. Daily habits have no weekly notion and always report false.
//
// TimesPerWeek is satisfied once the target number of distinct days in
// the week carries a positive value. DaysOfWeek requires every scheduled
// weekday of the week to carry a positive value, not just any N days.
func IsWeeklyTargetMet(date time.Time, habit models.Habit, logs []models.HabitLog, firstDayOfWeek int, location *time.Location) bool {
	if location == nil {
		location = time.UTC
	}

	switch schedule := habit.Schedule().(type) {
	case models.Daily:
		return false

	case models.TimesPerWeek:
		loggedDays := make(map[string]bool)
		for _, entry := range logs {
			if entry.LoggedValue() <= 0 {
				continue
			}
			entryDay := DayInLocation(entry.Date, LogLocation(entry, location), location)
			if !sameWeek(entryDay, date, firstDayOfWeek, location) {
				continue
			}
			loggedDays[entryDay.Format(DayKeyLayout)] = true
		}
		return len(loggedDays) >= schedule.Target

	case models.DaysOfWeek:
		if len(schedule.Days) == 0 {
			return false
		}
		loggedWeekdays := make(map[int]bool)
		for _, entry := range logs {
			if entry.LoggedValue() <= 0 {
				continue
			}
			entryZone := LogLocation(entry, location)
			entryDay := DayInLocation(entry.Date, entryZone, location)
			if !sameWeek(entryDay, date, firstDayOfWeek, location) {
				continue
			}
			loggedWeekdays[HabitWeekday(CalendarWeekday(entry.Date, entryZone))] = true
		}
		for _, required := range schedule.Days {
			if !loggedWeekdays[required] {
				return false
			}
		}
		return true
	}
	return false
}
