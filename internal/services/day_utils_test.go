package services

import (
	"testing"
	"time"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	location, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return location
}

func TestStartOfDayNormalizesToLocationMidnight(t *testing.T) {
	moscow := mustLoadLocation(t, "Europe/Moscow")

	raw := time.Date(2026, 2, 1, 22, 35, 10, 0, time.UTC)
	start := StartOfDay(raw, moscow)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("expected midnight start, got %s", start.Format(time.RFC3339))
	}
	// 22:35 UTC is already Feb 2 in Moscow.
	if start.Format(DayKeyLayout) != "2026-02-02" {
		t.Fatalf("expected moscow day 2026-02-02, got %s", start.Format(DayKeyLayout))
	}
}

func TestStartOfDayNilLocationFallsBackToUTC(t *testing.T) {
	raw := time.Date(2026, 2, 1, 5, 0, 0, 0, time.UTC)
	start := StartOfDay(raw, nil)
	if start.Location() != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", start.Location())
	}
}

func TestAddDaysAcrossSpringForwardTransition(t *testing.T) {
	newYork := mustLoadLocation(t, "America/New_York")

	// DST begins 2024-03-10 in New York; the day is 23 hours long.
	before := time.Date(2024, 3, 9, 12, 0, 0, 0, newYork)

	next := AddDays(before, 1, newYork)
	if next.Format(DayKeyLayout) != "2024-03-10" {
		t.Fatalf("expected 2024-03-10, got %s", next.Format(DayKeyLayout))
	}

	after := AddDays(next, 1, newYork)
	if after.Format(DayKeyLayout) != "2024-03-11" {
		t.Fatalf("expected 2024-03-11, got %s", after.Format(DayKeyLayout))
	}

	back := AddDays(after, -2, newYork)
	if back.Format(DayKeyLayout) != "2024-03-09" {
		t.Fatalf("expected round trip to 2024-03-09, got %s", back.Format(DayKeyLayout))
	}
}

func TestAddDaysCrossesMonthAndYearBoundaries(t *testing.T) {
	day := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	if got := AddDays(day, 1, time.UTC).Format(DayKeyLayout); got != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", got)
	}

	leap := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	if got := AddDays(leap, 1, time.UTC).Format(DayKeyLayout); got != "2024-02-29" {
		t.Fatalf("expected leap day 2024-02-29, got %s", got)
	}
}

func TestAreSameDayInZonesResolvesEachSideInItsOwnZone(t *testing.T) {
	newYork := mustLoadLocation(t, "America/New_York")
	berlin := mustLoadLocation(t, "Europe/Berlin")

	// 23:30 in New York on Jan 5 is already 05:30 Jan 6 in Berlin, but as
	// a New York observation it belongs to Jan 5.
	lateEvening := time.Date(2024, 1, 5, 23, 30, 0, 0, newYork)
	berlinJan5 := time.Date(2024, 1, 5, 12, 0, 0, 0, berlin)
	berlinJan6 := time.Date(2024, 1, 6, 12, 0, 0, 0, berlin)

	if !AreSameDayInZones(lateEvening, newYork, berlinJan5, berlin) {
		t.Fatal("expected NY Jan 5 to match Berlin Jan 5 by local dates")
	}
	if AreSameDayInZones(lateEvening, newYork, berlinJan6, berlin) {
		t.Fatal("did not expect NY Jan 5 to match Berlin Jan 6")
	}
	// Resolved purely in Berlin, the same instant is Jan 6.
	if AreSameDay(lateEvening, berlinJan5, berlin) {
		t.Fatal("did not expect instant-level same-day match in Berlin")
	}
}

func TestDayInLocationKeepsThePrintedDate(t *testing.T) {
	newYork := mustLoadLocation(t, "America/New_York")
	berlin := mustLoadLocation(t, "Europe/Berlin")

	lateEvening := time.Date(2024, 1, 5, 23, 30, 0, 0, newYork)
	anchored := DayInLocation(lateEvening, newYork, berlin)

	if anchored.Format(DayKeyLayout) != "2024-01-05" {
		t.Fatalf("expected 2024-01-05 anchored in berlin, got %s", anchored.Format(DayKeyLayout))
	}
	if anchored.Location() != berlin {
		t.Fatalf("expected berlin anchor, got %s", anchored.Location())
	}
}

func TestHabitWeekdayConversion(t *testing.T) {
	tests := []struct {
		calendar int
		want     int
	}{
		{calendar: 1, want: 7}, // Sunday
		{calendar: 2, want: 1}, // Monday
		{calendar: 3, want: 2},
		{calendar: 4, want: 3},
		{calendar: 5, want: 4},
		{calendar: 6, want: 5},
		{calendar: 7, want: 6}, // Saturday
	}
	for _, tt := range tests {
		if got := HabitWeekday(tt.calendar); got != tt.want {
			t.Fatalf("HabitWeekday(%d) = %d, want %d", tt.calendar, got, tt.want)
		}
	}
}

func TestISOWeekday(t *testing.T) {
	// 2024-01-01 is a Monday, 2024-01-07 a Sunday.
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	if got := ISOWeekday(monday, time.UTC); got != 1 {
		t.Fatalf("expected monday=1, got %d", got)
	}
	if got := ISOWeekday(sunday, time.UTC); got != 7 {
		t.Fatalf("expected sunday=7, got %d", got)
	}
}

func TestWeekIntervalHonorsFirstDayOfWeek(t *testing.T) {
	// 2024-01-03 is a Wednesday.
	wednesday := time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		firstDayOfWeek int
		wantStart      string
		wantEnd        string
	}{
		{name: "sunday start", firstDayOfWeek: 1, wantStart: "2023-12-31", wantEnd: "2024-01-07"},
		{name: "monday start", firstDayOfWeek: 2, wantStart: "2024-01-01", wantEnd: "2024-01-08"},
		{name: "saturday start", firstDayOfWeek: 7, wantStart: "2023-12-30", wantEnd: "2024-01-06"},
		{name: "unset falls back to sunday", firstDayOfWeek: 0, wantStart: "2023-12-31", wantEnd: "2024-01-07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekInterval(wednesday, tt.firstDayOfWeek, time.UTC)
			if got := start.Format(DayKeyLayout); got != tt.wantStart {
				t.Fatalf("week start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format(DayKeyLayout); got != tt.wantEnd {
				t.Fatalf("week end (exclusive) = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestWeekIntervalSpansSevenDays(t *testing.T) {
	for firstDay := 1; firstDay <= 7; firstDay++ {
		start, end := WeekInterval(time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC), firstDay, time.UTC)
		days := 0
		for day := start; day.Before(end); day = AddDays(day, 1, time.UTC) {
			days++
		}
		if days != 7 {
			t.Fatalf("first day %d: expected 7 days, got %d", firstDay, days)
		}
	}
}
