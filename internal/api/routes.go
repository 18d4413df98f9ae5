package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the full HTTP surface on the app.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	habits := api.Group("/habits", handler.AuthRequired)
	habits.Get("/", handler.ListHabits)
	habits.Post("/", handler.CreateHabit)
	habits.Get("/:id", handler.GetHabit)
	habits.Put("/:id", handler.UpdateHabit)
	habits.Post("/:id/archive", handler.ArchiveHabit)
	habits.Delete("/:id", handler.DeleteHabit)
	habits.Get("/:id/logs", handler.ListLogs)
	habits.Put("/:id/logs/:date", handler.UpsertLog)
	habits.Delete("/:id/logs/:date", handler.DeleteLog)
	habits.Get("/:id/streak", handler.GetStreak)

	api.Get("/calendar/:month", handler.AuthRequired, handler.GetCalendar)
	api.Get("/summary", handler.AuthRequired, handler.GetSummary)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("/", handler.GetSettings)
	settings.Put("/", handler.UpdateSettings)
}
