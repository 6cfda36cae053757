package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"EchoFM/config"
	"EchoFM/model"
	"EchoFM/repository"

	"github.com/gorilla/mux"
)

// fakeUploader stands in for MinIO: it records what it was handed and
// returns deterministic URLs.
type fakeUploader struct {
	audioCalls int
	imageCalls int
	lastType   string
}

func (f *fakeUploader) UploadAudio(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error) {
	f.audioCalls++
	f.lastType = contentType
	io.Copy(io.Discard, r)
	return "/media/audio/" + filename, nil
}

func (f *fakeUploader) UploadImage(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error) {
	f.imageCalls++
	f.lastType = contentType
	io.Copy(io.Discard, r)
	return "/media/images/" + filename, nil
}

func newTestServer(t *testing.T) (*mux.Router, repository.Store, *fakeUploader) {
	t.Helper()

	cfg := &config.Config{
		MaxAudioUploadSize: 50 << 20,
		MaxImageUploadSize: 5 << 20,
		MinioBucket:        "test",
	}
	store := repository.NewMemoryStore()
	uploader := &fakeUploader{}
	return NewRouter(NewAPIHandler(store, uploader, cfg)), store, uploader
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}

// multipartUpload builds a multipart body with one file part carrying an
// explicit content type plus plain form fields.
func multipartUpload(t *testing.T, fileField, filename, contentType, payload string, fields map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("Failed to create file part: %v", err)
	}
	if _, err := io.Copy(part, strings.NewReader(payload)); err != nil {
		t.Fatalf("Failed to write file part: %v", err)
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("Failed to write field %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func createTestUser(t *testing.T, store repository.Store, username string) *model.User {
	t.Helper()
	user, err := store.CreateUser(&model.InsertUser{Username: username, Password: "x", DisplayName: username})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func createTestTrack(t *testing.T, store repository.Store, title string, userID int64) *model.Track {
	t.Helper()
	track, err := store.CreateTrack(&model.InsertTrack{
		Title:    title,
		Artist:   "artist",
		UserID:   userID,
		AudioURL: "/media/audio/" + title + ".mp3",
	})
	if err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}
	return track
}
