package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetStreak(c *fiber.Ctx) error {
	habit, found, err := handler.findHabit(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "habit not found")
	}

	prefs := handler.preferencesFor(currentUser(c))
	asOf := time.Now().In(prefs.Location)
	if raw := c.Query("as_of"); raw != "" {
		day, parseErr := parseDayParam(raw, prefs.Location)
		if parseErr != nil {
			return apiError(c, fiber.StatusBadRequest, "as_of must be YYYY-MM-DD")
		}
		asOf = day
	}

	status, best, err := handler.habits.StreakFor(habit, asOf, prefs)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to compute streak")
	}

	return c.JSON(fiber.Map{
		"current":            status.Current,
		"best":               best,
		"at_risk":            status.AtRisk,
		"is_at_risk":         status.IsAtRisk,
		"is_today_scheduled": status.IsTodayScheduled,
	})
}
