package models

import "time"

// First-day-of-week preference uses calendar numbering, 1=Sunday..7=Saturday.
// This is deliberately distinct from the ISO Monday=1 numbering used by
// DaysOfWeek schedules.
const (
	FirstDayUnset          = 0
	DefaultFirstDayOfWeek  = 1
	FirstDayOfWeekSaturday = 7
)

type User struct {
	ID                 uint   `gorm:"primaryKey"`
	Email              string `gorm:"uniqueIndex;not null"`
	PasswordHash       string `gorm:"not null"`
	MustChangePassword bool   `gorm:"not null;default:false"`

	// Display preferences consumed by the scheduling engine. Timezone is
	// an IANA name; empty means the server default.
	FirstDayOfWeek int    `gorm:"not null;default:0"`
	Timezone       string `gorm:"not null;default:''"`

	CreatedAt time.Time `gorm:"not null"`
}
