package services

import (
	"time"

	"github.com/emberhabits/ember/internal/models"
)

// LogStore is the persistence port the engine consumes. Range queries are
// half-open [from, to) on the stored day boundary.
type LogStore interface {
	LogsForHabit(habitID uint, from time.Time, to time.Time) ([]models.HabitLog, error)
	AllLogsForHabit(habitID uint) ([]models.HabitLog, error)
}

// Preferences carries the per-request display settings the engine needs.
// The surrounding request layer resolves them once; the engine never
// consults a process-global zone or calendar.
type Preferences struct {
	FirstDayOfWeek int
	Location       *time.Location
}

// HabitService wraps the pure engine functions with batched log loading:
// fetch once per habit and range, then answer every per-day question from
// memory. The per-day functions themselves stay synchronous and pure.
type HabitService struct {
	logs   LogStore
	config StreakConfig
}

func NewHabitService(logs LogStore, config StreakConfig) *HabitService {
	return &HabitService{logs: logs, config: config}
}

// DaySummary is the per-habit dashboard card state for one day.
type DaySummary struct {
	Scheduled       bool
	Completed       bool
	WeeklyTargetMet bool
	Streak          StreakStatus
	BestStreak      int
}

// DayMark is one calendar cell's habit state.
type DayMark struct {
	Scheduled bool
	Completed bool
}

// SummarizeDay computes the full card state for a habit as of one day,
// with a single full-history fetch backing both streaks and the week
// aggregate.
func (service *HabitService) SummarizeDay(habit models.Habit, asOf time.Time, prefs Preferences) (DaySummary, error) {
	logs, err := service.logs.AllLogsForHabit(habit.ID)
	if err != nil {
		return DaySummary{}, err
	}
	return service.SummarizeDayFromLogs(habit, logs, asOf, prefs), nil
}

// SummarizeDayFromLogs is the pure tail of SummarizeDay for callers that
// already batch-loaded the history.
func (service *HabitService) SummarizeDayFromLogs(habit models.Habit, logs []models.HabitLog, asOf time.Time, prefs Preferences) DaySummary {
	location := prefs.Location
	day := StartOfDay(asOf, location)

	return DaySummary{
		Scheduled:       IsSchedulable(day, habit, location),
		Completed:       IsCompleted(habit, day, LogsOnDay(logs, day, location)),
		WeeklyTargetMet: IsWeeklyTargetMet(day, habit, logs, prefs.FirstDayOfWeek, location),
		Streak:          ComputeStreakStatus(habit, logs, day, location, service.config),
		BestStreak:      BestStreak(habit, logs, location, service.config),
	}
}

// StreakFor answers the streak endpoints from one history fetch.
func (service *HabitService) StreakFor(habit models.Habit, asOf time.Time, prefs Preferences) (StreakStatus, int, error) {
	logs, err := service.logs.AllLogsForHabit(habit.ID)
	if err != nil {
		return StreakStatus{}, 0, err
	}
	status := ComputeStreakStatus(habit, logs, asOf, prefs.Location, service.config)
	return status, BestStreak(habit, logs, prefs.Location, service.config), nil
}

// CalendarMarks loads the logs covering a month grid once and derives the
// per-day schedulability and completion marks for one habit, keyed by
// DayKeyLayout. The grid itself comes from BuildCalendarGrid.
func (service *HabitService) CalendarMarks(habit models.Habit, month time.Time, prefs Preferences) (map[string]DayMark, error) {
	location := prefs.Location
	from, to := CalendarGridRange(month, prefs.FirstDayOfWeek, location)

	logs, err := service.logs.LogsForHabit(habit.ID, from, to)
	if err != nil {
		return nil, err
	}

	marks := make(map[string]DayMark, CalendarGridSize)
	for _, cell := range BuildCalendarGrid(month, prefs.FirstDayOfWeek, location) {
		marks[cell.DateString] = DayMark{
			Scheduled: IsSchedulable(cell.Date, habit, location),
			Completed: IsCompleted(habit, cell.Date, LogsOnDay(logs, cell.Date, location)),
		}
	}
	return marks, nil
}
