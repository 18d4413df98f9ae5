package api

import (
	"time"

	"github.com/emberhabits/ember/internal/models"
	"github.com/emberhabits/ember/internal/services"
	"github.com/gofiber/fiber/v2"
)

type logView struct {
	Date     string   `json:"date"`
	Value    *float64 `json:"value,omitempty"`
	Timezone string   `json:"timezone,omitempty"`
}

func buildLogView(entry models.HabitLog, location *time.Location) logView {
	zone := services.LogLocation(entry, location)
	return logView{
		Date:     services.DayKey(entry.Date, zone),
		Value:    entry.Value,
		Timezone: entry.Timezone,
	}
}

// parseDayParam reads a YYYY-MM-DD path or query value as a local day in
// the given zone.
func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	return time.ParseInLocation(services.DayKeyLayout, raw, location)
}

func (handler *Handler) ListLogs(c *fiber.Ctx) error {
	habit, found, err := handler.findHabit(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "habit not found")
	}

	prefs := handler.preferencesFor(currentUser(c))

	var logs []models.HabitLog
	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" && toRaw == "" {
		logs, err = handler.repos.HabitLogs.AllLogsForHabit(habit.ID)
	} else {
		from, parseErr := parseDayParam(fromRaw, prefs.Location)
		if parseErr != nil {
			return apiError(c, fiber.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		to, parseErr := parseDayParam(toRaw, prefs.Location)
		if parseErr != nil {
			return apiError(c, fiber.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		// to is inclusive on the wire; the store range is half-open.
		logs, err = handler.repos.HabitLogs.LogsForHabit(habit.ID, from, services.AddDays(to, 1, prefs.Location))
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load logs")
	}

	views := make([]logView, 0, len(logs))
	for _, entry := range logs {
		views = append(views, buildLogView(entry, prefs.Location))
	}
	return c.JSON(fiber.Map{"logs": views})
}

func (handler *Handler) UpsertLog(c *fiber.Ctx) error {
	habit, found, err := handler.findHabit(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "habit not found")
	}

	payload := logPayload{}
	if err := c.BodyParser(&payload); err != nil && len(c.Body()) > 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if payload.Value != nil && *payload.Value < 0 {
		return apiError(c, fiber.StatusBadRequest, "value must not be negative")
	}
	if habit.Kind == models.KindBinary && payload.Value != nil {
		return apiError(c, fiber.StatusBadRequest, "value is only valid for numeric habits")
	}

	prefs := handler.preferencesFor(currentUser(c))
	entryZone := prefs.Location
	if payload.Timezone != "" {
		zone, zoneErr := time.LoadLocation(payload.Timezone)
		if zoneErr != nil {
			return apiError(c, fiber.StatusBadRequest, "unknown timezone")
		}
		entryZone = zone
	}

	day, err := parseDayParam(c.Params("date"), entryZone)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	dayStart, dayEnd := services.DayRange(day, entryZone)

	entry := models.HabitLog{
		HabitID:  habit.ID,
		Date:     dayStart,
		Value:    payload.Value,
		Timezone: payload.Timezone,
	}
	if err := handler.repos.HabitLogs.UpsertForDay(&entry, dayStart, dayEnd); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save log")
	}
	return c.JSON(buildLogView(entry, prefs.Location))
}

func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	habit, found, err := handler.findHabit(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "habit not found")
	}

	prefs := handler.preferencesFor(currentUser(c))
	day, err := parseDayParam(c.Params("date"), prefs.Location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	dayStart, dayEnd := services.DayRange(day, prefs.Location)
	if err := handler.repos.HabitLogs.DeleteForDay(habit.ID, dayStart, dayEnd); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete log")
	}
	return c.JSON(fiber.Map{"ok": true})
}
