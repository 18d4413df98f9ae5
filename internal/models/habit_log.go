package models

import "time"

// HabitLog is one observation of a habit on one calendar day. Date is
// stored at the display-zone midnight of the logged day; Timezone records
// the zone the entry was made in, kept for audit and for same-day
// reconciliation when the display zone differs from the recording zone.
//
// The store enforces one log per habit per day (uidx_habit_day); the
// engine nevertheless tolerates duplicates by summing values.
type HabitLog struct {
	ID        uint      `gorm:"primaryKey"`
	HabitID   uint      `gorm:"not null;uniqueIndex:uidx_habit_day"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_habit_day"`
	Value     *float64
	Timezone  string `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoggedValue treats legacy value-less rows as a plain 1.0 completion.
func (entry HabitLog) LoggedValue() float64 {
	if entry.Value == nil {
		return 1.0
	}
	return *entry.Value
}
