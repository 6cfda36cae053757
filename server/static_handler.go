package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"EchoFM/logger"
	"EchoFM/storage"

	"github.com/minio/minio-go/v7"
)

// MediaHandler streams stored objects (uploaded audio and thumbnails) out
// of MinIO. The URLs the catalog hands to clients all point here.
func (h *APIHandler) MediaHandler(w http.ResponseWriter, r *http.Request) {
	objectPath := strings.TrimPrefix(r.URL.Path, storage.MediaURLPrefix)
	if objectPath == "" || strings.Contains(objectPath, "..") {
		writeError(w, http.StatusBadRequest, "Invalid object path")
		return
	}

	client := storage.GetMinioClient()
	if client == nil {
		writeError(w, http.StatusInternalServerError, "Object storage not available")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	object, err := client.GetObject(ctx, h.cfg.MinioBucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	defer object.Close()

	// Stat forces the first round trip; a missing key surfaces here rather
	// than as a broken stream.
	info, err := object.Stat()
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = contentTypeByExtension(objectPath)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")

	logger.Debug("Serving media object",
		logger.String("object", objectPath),
		logger.Int64("size", info.Size),
	)

	if _, err := io.Copy(w, object); err != nil {
		logger.Error("Error serving file from MinIO", logger.String("object", objectPath), logger.ErrorField(err))
	}
}

func contentTypeByExtension(objectPath string) string {
	switch {
	case strings.HasSuffix(objectPath, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(objectPath, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(objectPath, ".flac"):
		return "audio/flac"
	case strings.HasSuffix(objectPath, ".jpg"), strings.HasSuffix(objectPath, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(objectPath, ".png"):
		return "image/png"
	case strings.HasSuffix(objectPath, ".svg"):
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
