package api

import (
	"time"

	"github.com/emberhabits/ember/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(fiber.Map{
		"email":             user.Email,
		"first_day_of_week": user.FirstDayOfWeek,
		"timezone":          user.Timezone,
	})
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	payload := settingsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if payload.FirstDayOfWeek < models.FirstDayUnset || payload.FirstDayOfWeek > models.FirstDayOfWeekSaturday {
		return apiError(c, fiber.StatusBadRequest, "first day of week must be between 0 and 7")
	}
	if payload.Timezone != "" {
		if _, err := time.LoadLocation(payload.Timezone); err != nil {
			return apiError(c, fiber.StatusBadRequest, "unknown timezone")
		}
	}

	user := currentUser(c)
	if err := handler.repos.Users.UpdatePreferences(user.ID, payload.FirstDayOfWeek, payload.Timezone); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update settings")
	}

	return c.JSON(fiber.Map{
		"first_day_of_week": payload.FirstDayOfWeek,
		"timezone":          payload.Timezone,
	})
}
