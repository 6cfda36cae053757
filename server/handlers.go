package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"EchoFM/config"
	"EchoFM/logger"
	"EchoFM/repository"
	"EchoFM/storage"

	"github.com/gorilla/mux"
)

// APIHandler handles all API requests. The store and the uploader are
// injected so tests can swap backends.
type APIHandler struct {
	store    repository.Store
	uploader storage.Uploader
	cfg      *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(store repository.Store, uploader storage.Uploader, cfg *config.Config) *APIHandler {
	return &APIHandler{
		store:    store,
		uploader: uploader,
		cfg:      cfg,
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

// writeError sends a JSON error message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// pathID extracts a positive integer path variable, or responds 400 and
// reports false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
