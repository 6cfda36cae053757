package server

import (
	"encoding/json"
	"net/http"

	"EchoFM/logger"
	"EchoFM/model"
)

// RegisterUserHandler creates a user. The username must be free; the store
// does not enforce uniqueness, so the pre-check here is the only guard.
func (h *APIHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var input model.InsertUser
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Username == "" || input.Password == "" || input.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "username, password and displayName are required")
		return
	}

	existing, err := h.store.GetUserByUsername(input.Username)
	if err != nil {
		logger.Error("Failed to check username", logger.String("username", input.Username), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Username already exists")
		return
	}

	user, err := h.store.CreateUser(&input)
	if err != nil {
		logger.Error("Failed to create user", logger.String("username", input.Username), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	logger.Info("User registered", logger.Int64("userId", user.ID), logger.String("username", user.Username))
	writeJSON(w, http.StatusCreated, user.Public())
}

// GetUserHandler returns a user by id with the password stripped.
func (h *APIHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(id)
	if err != nil {
		logger.Error("Failed to fetch user", logger.Int64("userId", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}
