package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func setupAuthedApp(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()
	app, database := newTestApp(t)
	createTestUser(t, database, "anna@example.com", "correct-horse")
	cookie := loginAndExtractAuthCookie(t, app, "anna@example.com", "correct-horse")
	return app, database, cookie
}

func createHabitViaAPI(t *testing.T, app *fiber.App, cookie string, payload map[string]interface{}) map[string]interface{} {
	t.Helper()

	response := performJSONRequest(t, app, http.MethodPost, "/api/habits/", cookie, payload)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected habit create status 201, got %d", response.StatusCode)
	}
	view := map[string]interface{}{}
	decodeJSONBody(t, response, &view)
	if view["id"] == "" || view["id"] == nil {
		t.Fatal("expected created habit to carry a public id")
	}
	return view
}

func TestCreateHabitWithEachScheduleKind(t *testing.T) {
	app, _, cookie := setupAuthedApp(t)

	daily := createHabitViaAPI(t, app, cookie, map[string]interface{}{
		"name": "Read", "kind": "binary",
		"schedule": map[string]interface{}{"kind": "daily"},
	})
	if schedule := daily["schedule"].(map[string]interface{}); schedule["kind"] != "daily" {
		t.Fatalf("expected daily schedule, got %v", schedule)
	}

	weekdays := createHabitViaAPI(t, app, cookie, map[string]interface{}{
		"name": "Gym", "kind": "binary",
		"schedule": map[string]interface{}{"kind": "days_of_week", "days": []int{1, 3, 5}},
	})
	schedule := weekdays["schedule"].(map[string]interface{})
	if schedule["kind"] != "days_of_week" || len(schedule["days"].([]interface{})) != 3 {
		t.Fatalf("expected mon/wed/fri schedule, got %v", schedule)
	}

	target := 120.0
	numeric := createHabitViaAPI(t, app, cookie, map[string]interface{}{
		"name": "Hydrate", "kind": "numeric", "daily_target": target,
		"schedule": map[string]interface{}{"kind": "times_per_week", "target": 3},
	})
	if numeric["daily_target"].(float64) != target {
		t.Fatalf("expected daily target %v, got %v", target, numeric["daily_target"])
	}
}

func TestCreateHabitValidation(t *testing.T) {
	app, _, cookie := setupAuthedApp(t)

	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"empty name", map[string]interface{}{"name": "  ", "kind": "binary"}},
		{"unknown kind", map[string]interface{}{"name": "X", "kind": "fancy"}},
		{"target on binary", map[string]interface{}{"name": "X", "kind": "binary", "daily_target": 5}},
		{"negative target", map[string]interface{}{"name": "X", "kind": "numeric", "daily_target": -1}},
		{"day out of range", map[string]interface{}{
			"name": "X", "kind": "binary",
			"schedule": map[string]interface{}{"kind": "days_of_week", "days": []int{0, 8}},
		}},
		{"empty day set", map[string]interface{}{
			"name": "X", "kind": "binary",
			"schedule": map[string]interface{}{"kind": "days_of_week", "days": []int{}},
		}},
		{"weekly target zero", map[string]interface{}{
			"name": "X", "kind": "binary",
			"schedule": map[string]interface{}{"kind": "times_per_week", "target": 0},
		}},
		{"unknown schedule kind", map[string]interface{}{
			"name": "X", "kind": "binary",
			"schedule": map[string]interface{}{"kind": "lunar"},
		}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			response := performJSONRequest(t, app, http.MethodPost, "/api/habits/", cookie, testCase.payload)
			defer response.Body.Close()
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", response.StatusCode)
			}
		})
	}
}

func TestUpdateHabitReplacesSchedule(t *testing.T) {
	app, _, cookie := setupAuthedApp(t)

	habit := createHabitViaAPI(t, app, cookie, map[string]interface{}{
		"name": "Gym", "kind": "binary",
		"schedule": map[string]interface{}{"kind": "daily"},
	})
	habitID := habit["id"].(string)

	response := performJSONRequest(t, app, http.MethodPut, "/api/habits/"+habitID, cookie, map[string]interface{}{
		"name": "Gym sessions", "kind": "binary",
		"schedule": map[string]interface{}{"kind": "times_per_week", "target": 4},
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected update status 200, got %d", response.StatusCode)
	}
	updated := map[string]interface{}{}
	decodeJSONBody(t, response, &updated)

	if updated["name"] != "Gym sessions" {
		t.Fatalf("expected renamed habit, got %v", updated["name"])
	}
	schedule := updated["schedule"].(map[string]interface{})
	if schedule["kind"] != "times_per_week" || schedule["target"].(float64) != 4 {
		t.Fatalf("expected 4x/week schedule, got %v", schedule)
	}
}

func TestArchiveHidesHabitFromDefaultList(t *testing.T) {
	app, _, cookie := setupAuthedApp(t)

	habit := createHabitViaAPI(t, app, cookie, map[string]interface{}{
		"name": "Old habit", "kind": "binary",
	})
	habitID := habit["id"].(string)

	response := performJSONRequest(t, app, http.MethodPost, "/api/habits/"+habitID+"/archive", cookie, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected archive status 200, got %d", response.StatusCode)
	}
	archived := map[string]interface{}{}
	decodeJSONBody(t, response, &archived)
	if archived["archived"] != true {
		t.Fatal("expected archived flag set")
	}

	listBody := struct {
		Habits []map[string]interface{} `json:"habits"`
	}{}
	response = performJSONRequest(t, app, http.MethodGet, "/api/habits/", cookie, nil)
	decodeJSONBody(t, response, &listBody)
	if len(listBody.Habits) != 0 {
		t.Fatalf("expected empty default list, got %d habits", len(listBody.Habits))
	}

	response = performJSONRequest(t, app, http.MethodGet, "/api/habits/?include_archived=true", cookie, nil)
	decodeJSONBody(t, response, &listBody)
	if len(listBody.Habits) != 1 {
		t.Fatalf("expected archived habit in full list, got %d habits", len(listBody.Habits))
	}
}

func TestDeleteHabitRemovesItsLogs(t *testing.T) {
	app, database, cookie := setupAuthedApp(t)

	habit := createHabitViaAPI(t, app, cookie, map[string]interface{}{
		"name": "Run", "kind": "binary",
	})
	habitID := habit["id"].(string)

	response := performJSONRequest(t, app, http.MethodPut, "/api/habits/"+habitID+"/logs/2026-03-02", cookie, nil)
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected log upsert status 200, got %d", response.StatusCode)
	}

	response = performJSONRequest(t, app, http.MethodDelete, "/api/habits/"+habitID, cookie, nil)
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected delete status 200, got %d", response.StatusCode)
	}

	var logCount int64
	if err := database.Table("habit_logs").Count(&logCount).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logCount != 0 {
		t.Fatalf("expected orphan logs removed, found %d", logCount)
	}
}

func TestHabitsAreScopedToTheirOwner(t *testing.T) {
	app, database, cookie := setupAuthedApp(t)

	habit := createHabitViaAPI(t, app, cookie, map[string]interface{}{
		"name": "Private", "kind": "binary",
	})
	habitID := habit["id"].(string)

	createTestUser(t, database, "intruder@example.com", "other-password")
	intruderCookie := loginAndExtractAuthCookie(t, app, "intruder@example.com", "other-password")

	response := performJSONRequest(t, app, http.MethodGet, "/api/habits/"+habitID, intruderCookie, nil)
	defer response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign habit, got %d", response.StatusCode)
	}
}
