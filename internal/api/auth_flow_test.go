package api

import (
	"net/http"
	"testing"
)

func TestRegisterLoginAndProtectedAccess(t *testing.T) {
	app, _ := newTestApp(t)

	response := performJSONRequest(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "Anna@Example.com",
		"password": "correct-horse",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}
	body := map[string]interface{}{}
	decodeJSONBody(t, response, &body)
	if body["email"] != "anna@example.com" {
		t.Fatalf("expected normalized email, got %v", body["email"])
	}

	cookie := loginAndExtractAuthCookie(t, app, "anna@example.com", "correct-horse")

	response = performJSONRequest(t, app, http.MethodGet, "/api/habits/", cookie, nil)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected habits status 200 with cookie, got %d", response.StatusCode)
	}
}

func TestProtectedRoutesRejectMissingCookie(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{"/api/habits/", "/api/summary", "/api/calendar/2026-03", "/api/settings/"} {
		response := performJSONRequest(t, app, http.MethodGet, target, "", nil)
		response.Body.Close()
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without cookie, got %d", target, response.StatusCode)
		}
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "taken@example.com", "password-one")

	response := performJSONRequest(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "TAKEN@example.com",
		"password": "password-two",
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", response.StatusCode)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "anna@example.com", "correct-horse")

	response := performJSONRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "anna@example.com",
		"password": "wrong-horse",
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}

func TestLoginBlockedWhilePasswordChangeRequired(t *testing.T) {
	app, database := newTestApp(t)
	user := createTestUser(t, database, "anna@example.com", "temporary-pass")
	if err := database.Model(&user).Update("must_change_password", true).Error; err != nil {
		t.Fatalf("flag user: %v", err)
	}

	response := performJSONRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "anna@example.com",
		"password": "temporary-pass",
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", response.StatusCode)
	}
}

func TestChangePasswordClearsMustChangeAndRotatesCredential(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "anna@example.com", "old-password")
	cookie := loginAndExtractAuthCookie(t, app, "anna@example.com", "old-password")

	response := performJSONRequest(t, app, http.MethodPost, "/api/auth/change-password", cookie, map[string]interface{}{
		"current_password": "old-password",
		"new_password":     "new-password-123",
	})
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	response = performJSONRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "anna@example.com",
		"password": "old-password",
	})
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected old password rejected with 401, got %d", response.StatusCode)
	}

	loginAndExtractAuthCookie(t, app, "anna@example.com", "new-password-123")
}

func TestHealthEndpointIsPublic(t *testing.T) {
	app, _ := newTestApp(t)

	response := performJSONRequest(t, app, http.MethodGet, "/healthz", "", nil)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}
