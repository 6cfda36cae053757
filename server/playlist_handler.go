package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"EchoFM/logger"
	"EchoFM/model"
)

// GetPlaylistsHandler lists the playlists visible to a user: their own plus
// every public playlist. The userId query parameter is required.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("userId")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "userId parameter is required")
		return
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid userId")
		return
	}

	playlists, err := h.store.GetPlaylistsForUser(userID)
	if err != nil {
		logger.Error("Failed to fetch playlists", logger.Int64("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch playlists")
		return
	}

	writeJSON(w, http.StatusOK, playlists)
}

// GetPlaylistHandler returns one playlist by id.
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	playlist, err := h.store.GetPlaylistByID(id)
	if err != nil {
		logger.Error("Failed to fetch playlist", logger.Int64("playlistId", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch playlist")
		return
	}
	if playlist == nil {
		writeError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// CreatePlaylistHandler creates a playlist. Leaving isPublic out of the
// body makes the playlist public.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var input model.InsertPlaylist
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == "" || input.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "name and userId are required")
		return
	}

	playlist, err := h.store.CreatePlaylist(&input)
	if err != nil {
		logger.Error("Failed to create playlist", logger.String("name", input.Name), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to create playlist")
		return
	}

	logger.Info("Playlist created", logger.Int64("playlistId", playlist.ID), logger.Int64("userId", playlist.UserID))
	writeJSON(w, http.StatusCreated, playlist)
}

// GetPlaylistTracksHandler resolves a playlist's membership rows to tracks.
// Rows pointing at vanished tracks are dropped silently by the store.
func (h *APIHandler) GetPlaylistTracksHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	playlist, err := h.store.GetPlaylistByID(id)
	if err != nil {
		logger.Error("Failed to fetch playlist", logger.Int64("playlistId", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch playlist tracks")
		return
	}
	if playlist == nil {
		writeError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	tracks, err := h.store.GetPlaylistTracks(id)
	if err != nil {
		logger.Error("Failed to fetch playlist tracks", logger.Int64("playlistId", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch playlist tracks")
		return
	}

	writeJSON(w, http.StatusOK, tracks)
}

// AddPlaylistTrackHandler adds a track to a playlist. No uniqueness check:
// adding the same track twice produces two rows.
func (h *APIHandler) AddPlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	playlist, err := h.store.GetPlaylistByID(id)
	if err != nil {
		logger.Error("Failed to fetch playlist", logger.Int64("playlistId", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to add track to playlist")
		return
	}
	if playlist == nil {
		writeError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	var body struct {
		TrackID int64 `json:"trackId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TrackID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.store.AddTrackToPlaylist(&model.InsertPlaylistTrack{
		PlaylistID: id,
		TrackID:    body.TrackID,
	})
	if err != nil {
		logger.Error("Failed to add track to playlist",
			logger.Int64("playlistId", id),
			logger.Int64("trackId", body.TrackID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to add track to playlist")
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// RemovePlaylistTrackHandler removes one membership row for the pair. With
// duplicate rows, each call removes a single one.
func (h *APIHandler) RemovePlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := pathID(w, r, "playlistId")
	if !ok {
		return
	}
	trackID, ok := pathID(w, r, "trackId")
	if !ok {
		return
	}

	removed, err := h.store.RemoveTrackFromPlaylist(playlistID, trackID)
	if err != nil {
		logger.Error("Failed to remove track from playlist",
			logger.Int64("playlistId", playlistID),
			logger.Int64("trackId", trackID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to remove track from playlist")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Track not found in playlist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
