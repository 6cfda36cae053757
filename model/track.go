package model

import "time"

// Track represents an uploaded audio track in the catalog.
type Track struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	UserID       int64     `json:"userId"` // owning user, not validated against users
	Genre        *string   `json:"genre"`
	Description  *string   `json:"description"`
	AudioURL     string    `json:"audioUrl"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	Duration     *int      `json:"duration"` // seconds
	UploadedAt   time.Time `json:"uploadedAt"`
	PlayCount    int64     `json:"playCount"`
}

// InsertTrack carries the caller-supplied fields for track creation.
// The store assigns id and uploadedAt and starts playCount at zero.
type InsertTrack struct {
	Title        string  `json:"title"`
	Artist       string  `json:"artist"`
	UserID       int64   `json:"userId"`
	Genre        *string `json:"genre"`
	Description  *string `json:"description"`
	AudioURL     string  `json:"audioUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Duration     *int    `json:"duration"`
}
