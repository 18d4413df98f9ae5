package api

import (
	"errors"
	"strings"
	"time"

	"github.com/emberhabits/ember/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxHabitNameLength = 120

type habitView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	DailyTarget *float64        `json:"daily_target,omitempty"`
	Schedule    schedulePayload `json:"schedule"`
	Archived    bool            `json:"archived"`
	CreatedAt   time.Time       `json:"created_at"`
}

func buildHabitView(habit models.Habit) habitView {
	view := habitView{
		ID:          habit.PublicID,
		Name:        habit.Name,
		Kind:        habit.Kind,
		DailyTarget: habit.DailyTarget,
		Archived:    habit.IsArchived(),
		CreatedAt:   habit.CreatedAt,
	}

	switch schedule := habit.Schedule().(type) {
	case models.DaysOfWeek:
		view.Schedule = schedulePayload{Kind: models.ScheduleKindDaysOfWeek, Days: schedule.Days}
	case models.TimesPerWeek:
		view.Schedule = schedulePayload{Kind: models.ScheduleKindTimesPerWeek, Target: schedule.Target}
	default:
		view.Schedule = schedulePayload{Kind: models.ScheduleKindDaily}
	}
	return view
}

func parseSchedulePayload(payload schedulePayload) (models.Schedule, error) {
	switch payload.Kind {
	case models.ScheduleKindDaily, "":
		return models.Daily{}, nil
	case models.ScheduleKindDaysOfWeek:
		seen := make(map[int]bool, len(payload.Days))
		days := make([]int, 0, len(payload.Days))
		for _, day := range payload.Days {
			if day < 1 || day > 7 {
				return nil, errors.New("schedule days must be between 1 (monday) and 7 (sunday)")
			}
			if seen[day] {
				continue
			}
			seen[day] = true
			days = append(days, day)
		}
		if len(days) == 0 {
			return nil, errors.New("days-of-week schedule requires at least one day")
		}
		return models.DaysOfWeek{Days: days}, nil
	case models.ScheduleKindTimesPerWeek:
		if payload.Target < 1 || payload.Target > 7 {
			return nil, errors.New("times-per-week target must be between 1 and 7")
		}
		return models.TimesPerWeek{Target: payload.Target}, nil
	default:
		return nil, errors.New("unknown schedule kind")
	}
}

func validateHabitPayload(payload habitPayload) (string, models.Schedule, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return "", nil, errors.New("name is required")
	}
	if len(name) > maxHabitNameLength {
		return "", nil, errors.New("name is too long")
	}

	switch payload.Kind {
	case models.KindBinary:
		if payload.DailyTarget != nil {
			return "", nil, errors.New("daily target is only valid for numeric habits")
		}
	case models.KindNumeric:
		if payload.DailyTarget != nil && *payload.DailyTarget <= 0 {
			return "", nil, errors.New("daily target must be positive")
		}
	default:
		return "", nil, errors.New("kind must be binary or numeric")
	}

	schedule, err := parseSchedulePayload(payload.Schedule)
	if err != nil {
		return "", nil, err
	}
	return name, schedule, nil
}

// findHabit loads one of the caller's habits by its public id.
func (handler *Handler) findHabit(c *fiber.Ctx) (models.Habit, bool, error) {
	user := currentUser(c)
	return handler.repos.Habits.FindByPublicID(user.ID, strings.TrimSpace(c.Params("id")))
}

func (handler *Handler) ListHabits(c *fiber.Ctx) error {
	user := currentUser(c)
	includeArchived := c.QueryBool("include_archived", false)

	habits, err := handler.repos.Habits.ListByUser(user.ID, includeArchived)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habits")
	}

	views := make([]habitView, 0, len(habits))
	for _, habit := range habits {
		views = append(views, buildHabitView(habit))
	}
	return c.JSON(fiber.Map{"habits": views})
}

func (handler *Handler) CreateHabit(c *fiber.Ctx) error {
	payload := habitPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	name, schedule, err := validateHabitPayload(payload)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	user := currentUser(c)
	habit := models.Habit{
		PublicID:    uuid.NewString(),
		UserID:      user.ID,
		Name:        name,
		Kind:        payload.Kind,
		DailyTarget: payload.DailyTarget,
	}
	habit.SetSchedule(schedule)

	if err := handler.repos.Habits.Create(&habit); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create habit")
	}
	return c.Status(fiber.StatusCreated).JSON(buildHabitView(habit))
}

func (handler *Handler) GetHabit(c *fiber.Ctx) error {
	habit, found, err := handler.findHabit(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "habit not found")
	}
	return c.JSON(buildHabitView(habit))
}

func (handler *Handler) UpdateHabit(c *fiber.Ctx) error {
	habit, found, err := handler.findHabit(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "habit not found")
	}

	payload := habitPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	name, schedule, err := validateHabitPayload(payload)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	habit.Name = name
	habit.Kind = payload.Kind
	habit.DailyTarget = payload.DailyTarget
	habit.SetSchedule(schedule)

	if err := handler.repos.Habits.Save(&habit); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update habit")
	}
	return c.JSON(buildHabitView(habit))
}

func (handler *Handler) ArchiveHabit(c *fiber.Ctx) error {
	habit, found, err := handler.findHabit(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "habit not found")
	}

	if !habit.IsArchived() {
		now := time.Now().In(handler.location)
		habit.ArchivedAt = &now
		if err := handler.repos.Habits.Save(&habit); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to archive habit")
		}
	}
	return c.JSON(buildHabitView(habit))
}

func (handler *Handler) DeleteHabit(c *fiber.Ctx) error {
	habit, found, err := handler.findHabit(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "habit not found")
	}

	if err := handler.repos.Habits.Delete(&habit); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete habit")
	}
	return c.JSON(fiber.Map{"ok": true})
}
