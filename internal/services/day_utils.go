package services

import (
	"time"

	"github.com/emberhabits/ember/internal/models"
)

// DayKeyLayout is the canonical map key for day-granular lookups.
const DayKeyLayout = "2006-01-02"

// StartOfDay normalizes an instant to the midnight of its calendar day in
// the given location. A nil location falls back to UTC. Around DST
// transitions where midnight does not exist, the result is the earliest
// valid instant of that day, which still carries the correct date.
func StartOfDay(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [start, end) interval covering the
// calendar day of value in the given location.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := StartOfDay(value, location)
	return start, start.AddDate(0, 0, 1)
}

// AddDays moves value by the given number of calendar days, re-anchoring
// at the day boundary so DST shifts never skip or double-count a day.
func AddDays(value time.Time, days int, location *time.Location) time.Time {
	return StartOfDay(StartOfDay(value, location).AddDate(0, 0, days), location)
}

// DayKey formats the calendar day of value in the given location.
func DayKey(value time.Time, location *time.Location) string {
	return StartOfDay(value, location).Format(DayKeyLayout)
}

// AreSameDay reports whether two instants fall on the same calendar day
// when both are resolved in the same location.
func AreSameDay(a time.Time, b time.Time, location *time.Location) bool {
	return AreSameDayInZones(a, location, b, location)
}

// AreSameDayInZones resolves each instant in its own location and reports
// whether the resulting calendar days coincide. This is the reconciliation
// used when a log was recorded in a different zone than the display zone:
// the two sides only match if their respective local dates agree.
func AreSameDayInZones(a time.Time, zoneA *time.Location, b time.Time, zoneB *time.Location) bool {
	if zoneA == nil {
		zoneA = time.UTC
	}
	if zoneB == nil {
		zoneB = time.UTC
	}
	yearA, monthA, dayA := a.In(zoneA).Date()
	yearB, monthB, dayB := b.In(zoneB).Date()
	return yearA == yearB && monthA == monthB && dayA == dayB
}

// DayInLocation re-anchors the calendar date of value, resolved in its
// own zone, at the midnight of the display location. The instant moves;
// the printed date does not.
func DayInLocation(value time.Time, zone *time.Location, display *time.Location) time.Time {
	if zone == nil {
		zone = time.UTC
	}
	if display == nil {
		display = time.UTC
	}
	year, month, day := value.In(zone).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, display)
}

// CalendarWeekday returns the platform-style weekday of value,
// 1=Sunday..7=Saturday, resolved in the given location.
func CalendarWeekday(value time.Time, location *time.Location) int {
	if location == nil {
		location = time.UTC
	}
	return int(value.In(location).Weekday()) + 1
}

// ISOWeekday returns the ISO weekday of value, Monday=1..Sunday=7.
func ISOWeekday(value time.Time, location *time.Location) int {
	return HabitWeekday(CalendarWeekday(value, location))
}

// HabitWeekday converts a calendar weekday (1=Sunday..7=Saturday) into the
// fixed Monday=1..Sunday=7 numbering DaysOfWeek schedules are defined in.
func HabitWeekday(calendarWeekday int) int {
	if calendarWeekday == 1 {
		return 7
	}
	return calendarWeekday - 1
}

// NormalizeFirstDayOfWeek maps an unset or out-of-range preference to the
// default week start.
func NormalizeFirstDayOfWeek(firstDayOfWeek int) int {
	if firstDayOfWeek < models.DefaultFirstDayOfWeek || firstDayOfWeek > models.FirstDayOfWeekSaturday {
		return models.DefaultFirstDayOfWeek
	}
	return firstDayOfWeek
}

// WeekInterval returns the half-open [start, end) week containing value,
// where the week starts on the user's preferred weekday
// (1=Sunday..7=Saturday).
func WeekInterval(value time.Time, firstDayOfWeek int, location *time.Location) (time.Time, time.Time) {
	first := NormalizeFirstDayOfWeek(firstDayOfWeek)
	day := StartOfDay(value, location)
	daysBack := (CalendarWeekday(day, location) - first + 7) % 7
	start := AddDays(day, -daysBack, location)
	return start, AddDays(start, 7, location)
}
