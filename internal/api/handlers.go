package api

import (
	"time"

	"github.com/emberhabits/ember/internal/db"
	"github.com/emberhabits/ember/internal/models"
	"github.com/emberhabits/ember/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName = "ember_auth"
	contextUserKey = "currentUser"

	defaultAuthTokenTTL  = 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db           *gorm.DB
	repos        *db.Repositories
	habits       *services.HabitService
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
}

// NewHandler wires the repositories and the scheduling engine behind the
// HTTP surface. location is the server-wide display zone used for users
// who have not chosen their own.
func NewHandler(database *gorm.DB, secretKey string, location *time.Location, cookieSecure bool) *Handler {
	if location == nil {
		location = time.UTC
	}
	repos := db.NewRepositories(database)
	return &Handler{
		db:           database,
		repos:        repos,
		habits:       services.NewHabitService(repos.HabitLogs, services.DefaultStreakConfig()),
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
	}
}

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type schedulePayload struct {
	Kind   string `json:"kind"`
	Days   []int  `json:"days,omitempty"`
	Target int    `json:"target,omitempty"`
}

type habitPayload struct {
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	DailyTarget *float64        `json:"daily_target"`
	Schedule    schedulePayload `json:"schedule"`
}

type logPayload struct {
	Value    *float64 `json:"value"`
	Timezone string   `json:"timezone"`
}

type settingsPayload struct {
	FirstDayOfWeek int    `json:"first_day_of_week"`
	Timezone       string `json:"timezone"`
}

// preferencesFor resolves a user's display settings once per request;
// every engine call below receives them explicitly.
func (handler *Handler) preferencesFor(user *models.User) services.Preferences {
	location := handler.location
	if user.Timezone != "" {
		if userLocation, err := time.LoadLocation(user.Timezone); err == nil {
			location = userLocation
		}
	}
	return services.Preferences{
		FirstDayOfWeek: user.FirstDayOfWeek,
		Location:       location,
	}
}
