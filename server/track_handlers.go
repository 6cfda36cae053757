package server

import (
	"net/http"
	"strconv"

	"EchoFM/cache"
	"EchoFM/logger"
	"EchoFM/model"
)

var allowedAudioTypes = []string{"audio/mpeg", "audio/wav", "audio/flac"}
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/svg+xml"}

func typeAllowed(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if contentType == t {
			return true
		}
	}
	return false
}

// GetTracksHandler lists tracks. Exactly one filter applies per request:
// ?search= wins over ?genre=, which wins over ?userId=; with no filter the
// whole catalog comes back.
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	var tracks []*model.Track
	var err error

	switch {
	case r.URL.Query().Get("search") != "":
		query := r.URL.Query().Get("search")
		tracks, err = h.searchTracksCached(r, query)
	case r.URL.Query().Get("genre") != "":
		tracks, err = h.store.GetTracksByGenre(r.URL.Query().Get("genre"))
	case r.URL.Query().Get("userId") != "":
		userID, parseErr := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "Invalid userId")
			return
		}
		tracks, err = h.store.GetTracksByUserID(userID)
	default:
		tracks, err = h.store.GetAllTracks()
	}

	if err != nil {
		logger.Error("Failed to fetch tracks", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch tracks")
		return
	}

	writeJSON(w, http.StatusOK, tracks)
}

// searchTracksCached consults the Redis search cache before the store.
// Cache failures only log; the store result always wins.
func (h *APIHandler) searchTracksCached(r *http.Request, query string) ([]*model.Track, error) {
	ctx := r.Context()

	if cached, err := cache.GetCachedSearch(ctx, query); err != nil {
		logger.Warn("Search cache read failed", logger.String("query", query), logger.ErrorField(err))
	} else if cached != nil {
		return cached, nil
	}

	tracks, err := h.store.SearchTracks(query)
	if err != nil {
		return nil, err
	}

	if err := cache.CacheSearch(ctx, query, tracks); err != nil {
		logger.Warn("Search cache write failed", logger.String("query", query), logger.ErrorField(err))
	}
	return tracks, nil
}

// GetTrackHandler returns one track by id, via the track cache when warm.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ctx := r.Context()

	if cached, err := cache.GetCachedTrack(ctx, id); err != nil {
		logger.Warn("Track cache read failed", logger.Int64("trackId", id), logger.ErrorField(err))
	} else if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	track, err := h.store.GetTrackByID(id)
	if err != nil {
		logger.Error("Failed to fetch track", logger.Int64("trackId", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch track")
		return
	}
	if track == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}

	if err := cache.CacheTrack(ctx, track); err != nil {
		logger.Warn("Track cache write failed", logger.Int64("trackId", id), logger.ErrorField(err))
	}
	writeJSON(w, http.StatusOK, track)
}

// UploadTrackHandler accepts a multipart upload: the audio file under
// "audio" plus metadata fields. The file goes to the storage collaborator,
// which hands back the URL the catalog keeps.
func (h *APIHandler) UploadTrackHandler(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.cfg.MaxAudioUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Audio file too large")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse upload form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !typeAllowed(contentType, allowedAudioTypes) {
		writeError(w, http.StatusBadRequest, "Only .mp3, .wav and .flac formats are allowed")
		return
	}
	if header.Size > h.cfg.MaxAudioUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Audio file too large")
		return
	}

	title := r.FormValue("title")
	artist := r.FormValue("artist")
	if title == "" || artist == "" {
		writeError(w, http.StatusBadRequest, "title and artist are required")
		return
	}
	userID, err := strconv.ParseInt(r.FormValue("userId"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid userId")
		return
	}

	audioURL, err := h.uploader.UploadAudio(r.Context(), file, header.Size, header.Filename, contentType)
	if err != nil {
		logger.Error("Failed to store audio file", logger.String("filename", header.Filename), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to upload track")
		return
	}

	input := &model.InsertTrack{
		Title:        title,
		Artist:       artist,
		UserID:       userID,
		Genre:        formValuePtr(r, "genre"),
		Description:  formValuePtr(r, "description"),
		AudioURL:     audioURL,
		ThumbnailURL: formValuePtr(r, "thumbnailUrl"),
		Duration:     formValueIntPtr(r, "duration"),
	}

	track, err := h.store.CreateTrack(input)
	if err != nil {
		logger.Error("Failed to create track", logger.String("title", title), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to upload track")
		return
	}

	// The new track must show up in search results right away.
	if err := cache.InvalidateSearch(r.Context()); err != nil {
		logger.Warn("Search cache invalidation failed", logger.ErrorField(err))
	}

	logger.Info("Track uploaded",
		logger.Int64("trackId", track.ID),
		logger.String("title", track.Title),
		logger.Int64("userId", track.UserID),
	)
	writeJSON(w, http.StatusCreated, track)
}

// PlayTrackHandler adds one play to a track's counter and returns the
// updated record. Missing tracks are a 404, not a store error.
func (h *APIHandler) PlayTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	track, err := h.store.IncrementPlayCount(id)
	if err != nil {
		logger.Error("Failed to update play count", logger.Int64("trackId", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to update play count")
		return
	}
	if track == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}

	if err := cache.InvalidateTrack(r.Context(), id); err != nil {
		logger.Warn("Track cache invalidation failed", logger.Int64("trackId", id), logger.ErrorField(err))
	}
	writeJSON(w, http.StatusOK, track)
}

// UploadThumbnailHandler accepts an image upload under "thumbnail" and
// returns the stored URL for the client to attach to a track.
func (h *APIHandler) UploadThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.cfg.MaxImageUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Image file too large")
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse upload form")
		return
	}

	file, header, err := r.FormFile("thumbnail")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !typeAllowed(contentType, allowedImageTypes) {
		writeError(w, http.StatusBadRequest, "Only .jpg, .png and .svg formats are allowed")
		return
	}
	if header.Size > h.cfg.MaxImageUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Image file too large")
		return
	}

	thumbnailURL, err := h.uploader.UploadImage(r.Context(), file, header.Size, header.Filename, contentType)
	if err != nil {
		logger.Error("Failed to store image file", logger.String("filename", header.Filename), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to upload thumbnail")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"thumbnailUrl": thumbnailURL})
}

// formValuePtr returns the form value, or nil when absent/empty.
func formValuePtr(r *http.Request, name string) *string {
	if v := r.FormValue(name); v != "" {
		return &v
	}
	return nil
}

// formValueIntPtr returns the form value parsed as int, or nil when
// absent or unparseable.
func formValueIntPtr(r *http.Request, name string) *int {
	v := r.FormValue(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
