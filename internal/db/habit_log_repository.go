package db

import (
	"time"

	"github.com/emberhabits/ember/internal/models"
	"gorm.io/gorm"
)

// HabitLogRepository persists day-granular habit observations. It is the
// boundary that enforces the one-log-per-habit-per-day invariant: writes
// go through UpsertForDay, and uidx_habit_day backs it up in the schema.
type HabitLogRepository struct {
	database *gorm.DB
}

func NewHabitLogRepository(database *gorm.DB) *HabitLogRepository {
	return &HabitLogRepository{database: database}
}

// LogsForHabit returns the logs whose stored day boundary falls in the
// half-open [from, to) range, oldest first. Implements services.LogStore.
func (repo *HabitLogRepository) LogsForHabit(habitID uint, from time.Time, to time.Time) ([]models.HabitLog, error) {
	logs := make([]models.HabitLog, 0)
	if err := repo.database.
		Where("habit_id = ? AND date >= ? AND date < ?", habitID, from, to).
		Order("date ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// AllLogsForHabit returns the habit's full history, oldest first.
func (repo *HabitLogRepository) AllLogsForHabit(habitID uint) ([]models.HabitLog, error) {
	logs := make([]models.HabitLog, 0)
	if err := repo.database.
		Where("habit_id = ?", habitID).
		Order("date ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindForDay returns the single log stored for the [dayStart, dayEnd)
// range, if any.
func (repo *HabitLogRepository) FindForDay(habitID uint, dayStart time.Time, dayEnd time.Time) (models.HabitLog, bool, error) {
	entry := models.HabitLog{}
	result := repo.database.
		Where("habit_id = ? AND date >= ? AND date < ?", habitID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.HabitLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HabitLog{}, false, nil
	}
	return entry, true, nil
}

// UpsertForDay creates or replaces the log for the entry's day. Any stray
// duplicate rows in the range are collapsed into the surviving one.
func (repo *HabitLogRepository) UpsertForDay(entry *models.HabitLog, dayStart time.Time, dayEnd time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		existing := models.HabitLog{}
		result := tx.
			Where("habit_id = ? AND date >= ? AND date < ?", entry.HabitID, dayStart, dayEnd).
			Order("date ASC, id ASC").
			Limit(1).
			Find(&existing)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			if err := tx.
				Where("habit_id = ? AND date >= ? AND date < ? AND id <> ?",
					entry.HabitID, dayStart, dayEnd, existing.ID).
				Delete(&models.HabitLog{}).Error; err != nil {
				return err
			}
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			return tx.Save(entry).Error
		}

		return tx.Create(entry).Error
	})
}

// DeleteForDay removes the habit's log(s) in the [dayStart, dayEnd) range.
func (repo *HabitLogRepository) DeleteForDay(habitID uint, dayStart time.Time, dayEnd time.Time) error {
	return repo.database.
		Where("habit_id = ? AND date >= ? AND date < ?", habitID, dayStart, dayEnd).
		Delete(&models.HabitLog{}).Error
}
