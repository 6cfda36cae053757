package repository

import "EchoFM/model"

// TrackRepository defines the interface for track data operations.
//
// CreateTrack assigns the next id, stamps uploadedAt and starts the play
// counter at zero. IncrementPlayCount adds exactly one play and returns the
// updated record, or (nil, nil) when the track does not exist; the missing
// case is a no-op, not a failure. SearchTracks is a case-insensitive
// substring match over title, artist and description (when present) with no
// ranking or tokenization. GetTracksByGenre is an exact, case-sensitive
// match.
type TrackRepository interface {
	CreateTrack(track *model.InsertTrack) (*model.Track, error)
	GetTrackByID(id int64) (*model.Track, error)
	GetAllTracks() ([]*model.Track, error)
	GetTracksByUserID(userID int64) ([]*model.Track, error)
	IncrementPlayCount(id int64) (*model.Track, error)
	SearchTracks(query string) ([]*model.Track, error)
	GetTracksByGenre(genre string) ([]*model.Track, error)
}
