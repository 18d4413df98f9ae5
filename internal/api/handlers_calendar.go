package api

import (
	"time"

	"github.com/emberhabits/ember/internal/services"
	"github.com/gofiber/fiber/v2"
)

const monthParamLayout = "2006-01"

type calendarCellView struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	InMonth bool   `json:"in_month"`
}

type dayMarkView struct {
	Scheduled bool `json:"scheduled"`
	Completed bool `json:"completed"`
}

// GetCalendar returns the 42-cell grid for one month plus, for every
// active habit, its per-day scheduled and completed marks.
func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	user := currentUser(c)
	prefs := handler.preferencesFor(user)

	month, err := time.ParseInLocation(monthParamLayout, c.Params("month"), prefs.Location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "month must be YYYY-MM")
	}

	cells := services.BuildCalendarGrid(month, prefs.FirstDayOfWeek, prefs.Location)
	days := make([]calendarCellView, 0, len(cells))
	for _, cell := range cells {
		days = append(days, calendarCellView{
			Date:    cell.DateString,
			Day:     cell.Day,
			InMonth: cell.InMonth,
		})
	}

	habits, err := handler.repos.Habits.ListByUser(user.ID, false)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habits")
	}

	marksByHabit := make(map[string]map[string]dayMarkView, len(habits))
	for _, habit := range habits {
		marks, err := handler.habits.CalendarMarks(habit, month, prefs)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to compute calendar")
		}
		views := make(map[string]dayMarkView, len(marks))
		for key, mark := range marks {
			views[key] = dayMarkView{Scheduled: mark.Scheduled, Completed: mark.Completed}
		}
		marksByHabit[habit.PublicID] = views
	}

	return c.JSON(fiber.Map{
		"month":             month.Format(monthParamLayout),
		"first_day_of_week": services.NormalizeFirstDayOfWeek(prefs.FirstDayOfWeek),
		"days":              days,
		"habits":            marksByHabit,
	})
}
