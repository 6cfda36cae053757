package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"EchoFM/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Uploader is the file-storage collaborator: it accepts a binary blob and
// returns the URL the catalog stores for it. The catalog never sees where
// or how the bytes live.
type Uploader interface {
	UploadAudio(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error)
	UploadImage(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error)
}

// MediaURLPrefix is where the HTTP layer serves stored objects from.
const MediaURLPrefix = "/media/"

// MinioUploader implements Uploader on the shared MinIO client.
type MinioUploader struct {
	cfg *config.Config
}

// NewMinioUploader creates an Uploader writing to the configured bucket.
func NewMinioUploader(cfg *config.Config) *MinioUploader {
	return &MinioUploader{cfg: cfg}
}

// UploadAudio stores an audio blob under audio/ and returns its serve URL.
func (u *MinioUploader) UploadAudio(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error) {
	return u.put(ctx, "audio", r, size, filename, contentType)
}

// UploadImage stores an image blob under images/ and returns its serve URL.
func (u *MinioUploader) UploadImage(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error) {
	return u.put(ctx, "images", r, size, filename, contentType)
}

func (u *MinioUploader) put(ctx context.Context, prefix string, r io.Reader, size int64, filename, contentType string) (string, error) {
	client := GetMinioClient()
	if client == nil {
		return "", fmt.Errorf("MinIO client not initialized")
	}

	key := ObjectKey(prefix, filename)
	_, err := client.PutObject(ctx, u.cfg.MinioBucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return MediaURLPrefix + key, nil
}

// ObjectKey builds a collision-free object key from the original filename.
// Only the extension of the original name survives.
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".dat"
	}
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
}
