package model

import "time"

// Playlist represents a named, ownable, optionally public group of tracks.
type Playlist struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	UserID   int64  `json:"userId"`
	IsPublic bool   `json:"isPublic"`
}

// InsertPlaylist carries the caller-supplied fields for playlist creation.
// IsPublic is a pointer so that "omitted" is distinguishable from false;
// omitted defaults to public.
type InsertPlaylist struct {
	Name     string `json:"name"`
	UserID   int64  `json:"userId"`
	IsPublic *bool  `json:"isPublic"`
}

// PlaylistTrack is the join row placing one track in one playlist. The same
// track may appear in the same playlist more than once.
type PlaylistTrack struct {
	ID         int64     `json:"id"`
	PlaylistID int64     `json:"playlistId"`
	TrackID    int64     `json:"trackId"`
	AddedAt    time.Time `json:"addedAt"`
}

// InsertPlaylistTrack carries the caller-supplied fields for adding a track
// to a playlist. The store assigns id and addedAt.
type InsertPlaylistTrack struct {
	PlaylistID int64 `json:"playlistId"`
	TrackID    int64 `json:"trackId"`
}
