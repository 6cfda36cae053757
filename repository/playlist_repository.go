package repository

import "EchoFM/model"

// PlaylistRepository defines the interface for playlist data operations.
//
// GetPlaylistsForUser returns the union of the user's own playlists and
// every public playlist system-wide, with no duplicates. CreatePlaylist
// defaults IsPublic to true when the input leaves it unset.
type PlaylistRepository interface {
	CreatePlaylist(playlist *model.InsertPlaylist) (*model.Playlist, error)
	GetPlaylistByID(id int64) (*model.Playlist, error)
	GetPlaylistsForUser(userID int64) ([]*model.Playlist, error)
}

// PlaylistTrackRepository manages playlist membership rows.
//
// AddTrackToPlaylist performs no uniqueness check, so the same track can be
// added to the same playlist more than once. GetPlaylistTracks resolves
// membership rows to tracks and silently drops rows whose track no longer
// exists. RemoveTrackFromPlaylist deletes at most one matching row (the
// oldest, by id) and reports whether a row was removed.
type PlaylistTrackRepository interface {
	AddTrackToPlaylist(playlistTrack *model.InsertPlaylistTrack) (*model.PlaylistTrack, error)
	GetPlaylistTracks(playlistID int64) ([]*model.Track, error)
	RemoveTrackFromPlaylist(playlistID, trackID int64) (bool, error)
}
