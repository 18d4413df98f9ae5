package models

import "time"

const (
	KindBinary  = "binary"
	KindNumeric = "numeric"
)

// Persisted schedule kinds. The schedule itself is exposed through the
// sealed Schedule type below; these constants only name the stored column.
const (
	ScheduleKindDaily        = "daily"
	ScheduleKindDaysOfWeek   = "days_of_week"
	ScheduleKindTimesPerWeek = "times_per_week"
)

// Schedule is a closed set of habit cadence variants. The unexported
// marker keeps the set sealed so consumers can type-switch exhaustively.
type Schedule interface {
	scheduleKind() string
}

// Daily habits are active on every date.
type Daily struct{}

// DaysOfWeek habits are active only on the listed weekdays.
// Days uses fixed ISO numbering, Monday=1..Sunday=7, independent of the
// user's first-day-of-week display preference.
type DaysOfWeek struct {
	Days []int
}

// TimesPerWeek habits accept a log on any date; completion is judged per
// week once Target distinct days carry a positive value.
type TimesPerWeek struct {
	Target int
}

func (Daily) scheduleKind() string        { return ScheduleKindDaily }
func (DaysOfWeek) scheduleKind() string   { return ScheduleKindDaysOfWeek }
func (TimesPerWeek) scheduleKind() string { return ScheduleKindTimesPerWeek }

type Habit struct {
	ID       uint   `gorm:"primaryKey"`
	PublicID string `gorm:"uniqueIndex;not null"`
	UserID   uint   `gorm:"not null;index"`
	Name     string `gorm:"not null"`
	Kind     string `gorm:"not null;default:binary"`

	// DailyTarget is meaningful only for numeric habits; a numeric habit
	// without one degrades to binary completion semantics.
	DailyTarget *float64

	ScheduleKind   string `gorm:"not null;default:daily"`
	ScheduleDays   []int  `gorm:"serializer:json"`
	ScheduleTarget int    `gorm:"not null;default:0"`

	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Schedule reconstructs the sealed schedule variant from the stored
// columns. Unknown or inconsistent rows fall back to Daily so the engine
// stays total over whatever the database holds.
func (habit *Habit) Schedule() Schedule {
	switch habit.ScheduleKind {
	case ScheduleKindDaysOfWeek:
		days := make([]int, 0, len(habit.ScheduleDays))
		for _, day := range habit.ScheduleDays {
			if day >= 1 && day <= 7 {
				days = append(days, day)
			}
		}
		return DaysOfWeek{Days: days}
	case ScheduleKindTimesPerWeek:
		target := habit.ScheduleTarget
		if target < 1 {
			target = 1
		}
		return TimesPerWeek{Target: target}
	default:
		return Daily{}
	}
}

// SetSchedule writes the sealed variant back into the stored columns.
func (habit *Habit) SetSchedule(schedule Schedule) {
	switch value := schedule.(type) {
	case DaysOfWeek:
		habit.ScheduleKind = ScheduleKindDaysOfWeek
		habit.ScheduleDays = value.Days
		habit.ScheduleTarget = 0
	case TimesPerWeek:
		habit.ScheduleKind = ScheduleKindTimesPerWeek
		habit.ScheduleDays = nil
		habit.ScheduleTarget = value.Target
	default:
		habit.ScheduleKind = ScheduleKindDaily
		habit.ScheduleDays = nil
		habit.ScheduleTarget = 0
	}
}

func (habit *Habit) IsArchived() bool {
	return habit.ArchivedAt != nil
}

// IsWeekly reports whether completion for this habit aggregates over a
// week rather than a single day.
func (habit *Habit) IsWeekly() bool {
	switch habit.Schedule().(type) {
	case TimesPerWeek, DaysOfWeek:
		return true
	default:
		return false
	}
}
