package api

import (
	"time"

	"github.com/emberhabits/ember/internal/services"
	"github.com/gofiber/fiber/v2"
)

type habitSummaryView struct {
	Habit           habitView `json:"habit"`
	Scheduled       bool      `json:"scheduled"`
	Completed       bool      `json:"completed"`
	WeeklyTargetMet bool      `json:"weekly_target_met"`
	Streak          int       `json:"streak"`
	BestStreak      int       `json:"best_streak"`
	IsAtRisk        bool      `json:"is_at_risk"`
}

// GetSummary returns the dashboard state for every active habit as of one
// day, defaulting to today in the user's zone.
func (handler *Handler) GetSummary(c *fiber.Ctx) error {
	user := currentUser(c)
	prefs := handler.preferencesFor(user)

	asOf := time.Now().In(prefs.Location)
	if raw := c.Query("date"); raw != "" {
		day, err := parseDayParam(raw, prefs.Location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		asOf = day
	}

	habits, err := handler.repos.Habits.ListByUser(user.ID, false)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habits")
	}

	views := make([]habitSummaryView, 0, len(habits))
	for _, habit := range habits {
		summary, err := handler.habits.SummarizeDay(habit, asOf, prefs)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to compute summary")
		}
		views = append(views, habitSummaryView{
			Habit:           buildHabitView(habit),
			Scheduled:       summary.Scheduled,
			Completed:       summary.Completed,
			WeeklyTargetMet: summary.WeeklyTargetMet,
			Streak:          summary.Streak.Current,
			BestStreak:      summary.BestStreak,
			IsAtRisk:        summary.Streak.IsAtRisk,
		})
	}

	return c.JSON(fiber.Map{
		"date":   services.DayKey(asOf, prefs.Location),
		"habits": views,
	})
}
