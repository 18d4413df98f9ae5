package services

import (
	"sort"
	"time"

	"github.com/emberhabits/ember/internal/models"
)

// StreakConfig tunes the grace window: how many consecutive missed
// schedulable days a streak survives. The shipped width is one day; the
// width is a parameter rather than a constant because it encodes product
// intent, not arithmetic.
type StreakConfig struct {
	GraceDays int
}

func DefaultStreakConfig() StreakConfig {
	return StreakConfig{GraceDays: 1}
}

// StreakStatus is recomputed on every query, never stored.
//
// Current is the conservative streak: forgiven gap days only count once a
// completion bridges them. AtRisk carries the value to display while the
// most recent schedulable day sits unfinished inside the grace window.
type StreakStatus struct {
	Current          int
	AtRisk           int
	IsAtRisk         bool
	IsTodayScheduled bool
}

// logDayIndex groups logs by the calendar day they were recorded on, each
// resolved in its own zone, keyed in DayKeyLayout. Day keys sort
// chronologically, so min/max keys bound the walk.
type logDayIndex struct {
	byDay  map[string][]models.HabitLog
	minKey string
	maxKey string
}

func indexLogsByDay(logs []models.HabitLog, location *time.Location) logDayIndex {
	index := logDayIndex{byDay: make(map[string][]models.HabitLog, len(logs))}
	for _, entry := range logs {
		key := entry.Date.In(LogLocation(entry, location)).Format(DayKeyLayout)
		index.byDay[key] = append(index.byDay[key], entry)
		if index.minKey == "" || key < index.minKey {
			index.minKey = key
		}
		if key > index.maxKey {
			index.maxKey = key
		}
	}
	return index
}

func (index logDayIndex) completedOn(habit models.Habit, day time.Time, location *time.Location) bool {
	return IsCompleted(habit, day, index.byDay[DayKey(day, location)])
}

// CurrentStreak walks backward from asOf, one calendar day at a time.
// Days the schedule does not cover are transparent: they neither extend
// nor break the run. An unfinished asOf day contributes zero without
// consuming grace, so an in-progress today never retroactively breaks a
// streak that ended yesterday. A gap of up to GraceDays consecutive
// missed schedulable days is forgiven and counted, but only once a
// completed day on the far side bridges it.
func CurrentStreak(habit models.Habit, logs []models.HabitLog, asOf time.Time, location *time.Location, config StreakConfig) int {
	if len(logs) == 0 {
		return 0
	}
	if location == nil {
		location = time.UTC
	}

	index := indexLogsByDay(logs, location)
	asOfDay := StartOfDay(asOf, location)

	streak := 0
	pendingGap := 0
	misses := 0

	for day := asOfDay; DayKey(day, location) >= index.minKey; day = AddDays(day, -1, location) {
		if !IsSchedulable(day, habit, location) {
			continue
		}
		if index.completedOn(habit, day, location) {
			streak += 1 + pendingGap
			pendingGap = 0
			misses = 0
			continue
		}
		if day.Equal(asOfDay) {
			// Today is still in progress.
			continue
		}
		misses++
		if misses > config.GraceDays {
			break
		}
		if streak > 0 {
			pendingGap++
		}
	}
	return streak
}

// BestStreak scans the whole history chronologically with the same
// schedulability and grace rules as CurrentStreak and reports the maximum
// run ever observed. Recomputation from the same log set is deterministic.
func BestStreak(habit models.Habit, logs []models.HabitLog, location *time.Location, config StreakConfig) int {
	if len(logs) == 0 {
		return 0
	}
	if location == nil {
		location = time.UTC
	}

	index := indexLogsByDay(logs, location)
	first, err := time.ParseInLocation(DayKeyLayout, index.minKey, location)
	if err != nil {
		return 0
	}
	last, err := time.ParseInLocation(DayKeyLayout, index.maxKey, location)
	if err != nil {
		return 0
	}

	best := 0
	run := 0
	pendingGap := 0
	misses := 0

	for day := first; !day.After(last); day = AddDays(day, 1, location) {
		if !IsSchedulable(day, habit, location) {
			continue
		}
		if index.completedOn(habit, day, location) {
			run += 1 + pendingGap
			pendingGap = 0
			misses = 0
			if run > best {
				best = run
			}
			continue
		}
		misses++
		if misses > config.GraceDays {
			run = 0
			pendingGap = 0
			continue
		}
		if run > 0 {
			pendingGap++
		}
	}
	return best
}

// ComputeStreakStatus derives the full display status as of a reference
// date. The streak is at risk when the most recent schedulable day before
// asOf is unfinished but the gap is still inside the grace window and a
// live streak sits behind it; completing asOf is the only way to save it.
func ComputeStreakStatus(habit models.Habit, logs []models.HabitLog, asOf time.Time, location *time.Location, config StreakConfig) StreakStatus {
	if location == nil {
		location = time.UTC
	}

	asOfDay := StartOfDay(asOf, location)
	current := CurrentStreak(habit, logs, asOf, location, config)
	todayScheduled := IsSchedulable(asOfDay, habit, location)

	status := StreakStatus{
		Current:          current,
		IsTodayScheduled: todayScheduled,
	}
	if len(logs) == 0 || current == 0 {
		return status
	}

	index := indexLogsByDay(logs, location)
	if todayScheduled && index.completedOn(habit, asOfDay, location) {
		return status
	}

	// Count consecutive unfinished schedulable days strictly before asOf.
	gap := 0
	for day := AddDays(asOfDay, -1, location); DayKey(day, location) >= index.minKey; day = AddDays(day, -1, location) {
		if !IsSchedulable(day, habit, location) {
			continue
		}
		if index.completedOn(habit, day, location) {
			break
		}
		gap++
		if gap > config.GraceDays {
			break
		}
	}

	if gap >= 1 && gap <= config.GraceDays {
		status.IsAtRisk = true
		status.AtRisk = current
	}
	return status
}

// SortLogsChronologically orders logs by date, then id, in place. The
// engine does not depend on input order, but stable output helps callers
// that render histories.
func SortLogsChronologically(logs []models.HabitLog) {
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Date.Equal(logs[j].Date) {
			return logs[i].ID < logs[j].ID
		}
		return logs[i].Date.Before(logs[j].Date)
	})
}
