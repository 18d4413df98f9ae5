package services

import "time"

// CalendarGridSize is the fixed cell count of a month grid: six full
// weeks, so the layout never changes height between months.
const CalendarGridSize = 42

// CalendarDay is one generated grid cell. InMonth is false for padding
// cells borrowed from the adjacent months.
type CalendarDay struct {
	Date       time.Time
	DateString string
	Day        int
	InMonth    bool
}

// StartOfMonth normalizes an instant to the first day of its month in the
// given location.
func StartOfMonth(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, _ := localized.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, location)
}

// BuildCalendarGrid produces the 42-cell grid for the month containing
// the given reference date, laid out so the first column is the user's
// preferred first day of week (1=Sunday..7=Saturday).
func BuildCalendarGrid(month time.Time, firstDayOfWeek int, location *time.Location) []CalendarDay {
	monthStart := StartOfMonth(month, location)
	first := NormalizeFirstDayOfWeek(firstDayOfWeek)

	daysBack := (CalendarWeekday(monthStart, location) - first + 7) % 7
	gridStart := AddDays(monthStart, -daysBack, location)

	year, monthOf, _ := monthStart.Date()

	days := make([]CalendarDay, 0, CalendarGridSize)
	for offset := 0; offset < CalendarGridSize; offset++ {
		day := AddDays(gridStart, offset, location)
		cellYear, cellMonth, cellDay := day.Date()
		days = append(days, CalendarDay{
			Date:       day,
			DateString: day.Format(DayKeyLayout),
			Day:        cellDay,
			InMonth:    cellYear == year && cellMonth == monthOf,
		})
	}
	return days
}

// BuildMonthDays returns only the days strictly within the month of the
// reference date, for call sites that do not need adjacent-month padding.
func BuildMonthDays(month time.Time, location *time.Location) []time.Time {
	monthStart := StartOfMonth(month, location)
	nextMonth := monthStart.AddDate(0, 1, 0)

	days := make([]time.Time, 0, 31)
	for day := monthStart; day.Before(nextMonth); day = AddDays(day, 1, location) {
		days = append(days, day)
	}
	return days
}

// CalendarGridRange returns the inclusive first and exclusive last day
// covered by the 42-cell grid of the given month, for batch log loading.
func CalendarGridRange(month time.Time, firstDayOfWeek int, location *time.Location) (time.Time, time.Time) {
	grid := BuildCalendarGrid(month, firstDayOfWeek, location)
	start := grid[0].Date
	return start, AddDays(grid[len(grid)-1].Date, 1, location)
}
