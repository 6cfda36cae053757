package server

import (
	"fmt"
	"net/http"
	"testing"
)

func TestRegisterUser(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users/register", map[string]interface{}{
		"username":    "dj1",
		"password":    "secret",
		"displayName": "DJ One",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	if body["username"] != "dj1" {
		t.Errorf("Expected username dj1, got %v", body["username"])
	}
	if _, leaked := body["password"]; leaked {
		t.Error("Password leaked in register response")
	}
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	router, store, _ := newTestServer(t)
	createTestUser(t, store, "dj1")

	rec := doJSON(t, router, http.MethodPost, "/api/users/register", map[string]interface{}{
		"username":    "dj1",
		"password":    "secret",
		"displayName": "Impostor",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", rec.Code)
	}
}

func TestRegisterUserMissingFields(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users/register", map[string]interface{}{
		"username": "dj1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestGetUser(t *testing.T) {
	router, store, _ := newTestServer(t)
	user := createTestUser(t, store, "dj1")

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	if body["displayName"] != "dj1" {
		t.Errorf("Expected displayName dj1, got %v", body["displayName"])
	}
	if _, leaked := body["password"]; leaked {
		t.Error("Password leaked in user response")
	}
}

func TestGetUserNotFound(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/users/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}
