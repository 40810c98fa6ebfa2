package routes

import (
	"fmt"
	"net/http"
	"testing"

	"hotel-booking-server/models"
	"hotel-booking-server/storage"

	"github.com/kataras/iris/v12"
)

func TestCreateNotificationAdminOnly(t *testing.T) {
	app, _ := buildTestApp(t)
	user := seedUser(t, "user")
	admin := seedUser(t, "admin")

	payload := iris.Map{"userID": user.ID, "text": "Welcome aboard", "type": "success"}

	if resp := doJSON(app, http.MethodPost, "/api/v1/notifications", signTestToken(t, user.ID, "user"), payload); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-admin create, got %d", resp.Code)
	}

	resp := doJSON(app, http.MethodPost, "/api/v1/notifications", signTestToken(t, admin.ID, "admin"), payload)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin create, got %d: %s", resp.Code, resp.Body.String())
	}

	var notification models.Notification
	if err := storage.DB.First(&notification).Error; err != nil {
		t.Fatalf("notification not persisted: %v", err)
	}
	if notification.UserID != user.ID || notification.Type != "success" {
		t.Fatalf("unexpected notification %+v", notification)
	}

	bad := iris.Map{"userID": user.ID, "text": "Bad type", "type": "shout"}
	if resp := doJSON(app, http.MethodPost, "/api/v1/notifications", signTestToken(t, admin.ID, "admin"), bad); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", resp.Code)
	}
}

func TestNotificationScopeAndRead(t *testing.T) {
	app, _ := buildTestApp(t)
	alice := seedUser(t, "user")
	bob := seedUser(t, "user")
	admin := seedUser(t, "admin")

	mine := models.Notification{UserID: alice.ID, Text: "Your booking is confirmed", Type: models.NotificationTypeSuccess}
	theirs := models.Notification{UserID: bob.ID, Text: "Your booking was cancelled", Type: models.NotificationTypeWarn}
	storage.DB.Create(&mine)
	storage.DB.Create(&theirs)

	var body struct {
		Success bool                  `json:"success"`
		Count   int                   `json:"count"`
		Data    []models.Notification `json:"data"`
	}

	resp := doJSON(app, http.MethodGet, "/api/v1/notifications", signTestToken(t, alice.ID, "user"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 listing notifications, got %d", resp.Code)
	}
	mustDecode(t, resp, &body)
	if body.Count != 1 || body.Data[0].UserID != alice.ID {
		t.Fatalf("expected only alice's notification, got %+v", body)
	}

	resp = doJSON(app, http.MethodGet, "/api/v1/notifications", signTestToken(t, admin.ID, "admin"), nil)
	mustDecode(t, resp, &body)
	if body.Count != 2 {
		t.Fatalf("expected admin to see both notifications, got %d", body.Count)
	}

	path := fmt.Sprintf("/api/v1/notifications/%d", theirs.ID)
	if resp := doJSON(app, http.MethodGet, path, signTestToken(t, alice.ID, "user"), nil); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 reading another user's notification, got %d", resp.Code)
	}

	// Marking one read is owner territory.
	markRead := iris.Map{"isRead": true}
	resp = doJSON(app, http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d", mine.ID), signTestToken(t, alice.ID, "user"), markRead)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 marking read, got %d: %s", resp.Code, resp.Body.String())
	}
	storage.DB.First(&mine, mine.ID)
	if !mine.IsRead {
		t.Fatal("notification should be marked read")
	}

	// Deleting stays with admins.
	if resp := doJSON(app, http.MethodDelete, fmt.Sprintf("/api/v1/notifications/%d", mine.ID), signTestToken(t, alice.ID, "user"), nil); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-admin delete, got %d", resp.Code)
	}
	if resp := doJSON(app, http.MethodDelete, fmt.Sprintf("/api/v1/notifications/%d", mine.ID), signTestToken(t, admin.ID, "admin"), nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin delete, got %d", resp.Code)
	}
}
