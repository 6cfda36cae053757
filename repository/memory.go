package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"EchoFM/model"
)

// memoryStore is the default Store backend: four maps and per-entity id
// counters behind one store-wide RWMutex. Nothing is ever persisted; data
// lives for the process lifetime only.
//
// All returned records are copies, so callers can never mutate store state
// behind the lock. List operations return records in ascending id order.
type memoryStore struct {
	mu sync.RWMutex

	users          map[int64]*model.User
	tracks         map[int64]*model.Track
	playlists      map[int64]*model.Playlist
	playlistTracks map[int64]*model.PlaylistTrack

	nextUserID          int64
	nextTrackID         int64
	nextPlaylistID      int64
	nextPlaylistTrackID int64
}

// NewMemoryStore creates an empty in-memory catalog store.
func NewMemoryStore() Store {
	return &memoryStore{
		users:          make(map[int64]*model.User),
		tracks:         make(map[int64]*model.Track),
		playlists:      make(map[int64]*model.Playlist),
		playlistTracks: make(map[int64]*model.PlaylistTrack),

		nextUserID:          1,
		nextTrackID:         1,
		nextPlaylistID:      1,
		nextPlaylistTrackID: 1,
	}
}

// CreateUser assigns the next user id and stores the record as given.
// The returned record still carries the password; handlers strip it.
func (s *memoryStore) CreateUser(input *model.InsertUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &model.User{
		ID:          s.nextUserID,
		Username:    input.Username,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
	}
	s.nextUserID++
	s.users[user.ID] = user

	return copyUser(user), nil
}

// GetUserByID retrieves a user by id, or (nil, nil) if absent.
func (s *memoryStore) GetUserByID(id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyUser(s.users[id]), nil
}

// GetUserByUsername retrieves a user by exact, case-sensitive username.
func (s *memoryStore) GetUserByUsername(username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

// CreateTrack assigns the next track id, stamps uploadedAt and zeroes the
// play counter.
func (s *memoryStore) CreateTrack(input *model.InsertTrack) (*model.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	track := &model.Track{
		ID:           s.nextTrackID,
		Title:        input.Title,
		Artist:       input.Artist,
		UserID:       input.UserID,
		Genre:        input.Genre,
		Description:  input.Description,
		AudioURL:     input.AudioURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		UploadedAt:   time.Now(),
		PlayCount:    0,
	}
	s.nextTrackID++
	s.tracks[track.ID] = track

	return copyTrack(track), nil
}

// GetTrackByID retrieves a track by id, or (nil, nil) if absent.
func (s *memoryStore) GetTrackByID(id int64) (*model.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyTrack(s.tracks[id]), nil
}

// GetAllTracks returns every track in the catalog.
func (s *memoryStore) GetAllTracks() ([]*model.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectTracks(func(*model.Track) bool { return true }), nil
}

// GetTracksByUserID returns the tracks owned by one user.
func (s *memoryStore) GetTracksByUserID(userID int64) ([]*model.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectTracks(func(t *model.Track) bool { return t.UserID == userID }), nil
}

// IncrementPlayCount adds one play to a track and returns the updated
// record, or (nil, nil) when the track does not exist.
func (s *memoryStore) IncrementPlayCount(id int64) (*model.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	track, ok := s.tracks[id]
	if !ok {
		return nil, nil
	}
	track.PlayCount++

	return copyTrack(track), nil
}

// SearchTracks matches the query as a case-insensitive substring of title,
// artist or description.
func (s *memoryStore) SearchTracks(query string) ([]*model.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	return s.collectTracks(func(t *model.Track) bool {
		if strings.Contains(strings.ToLower(t.Title), q) {
			return true
		}
		if strings.Contains(strings.ToLower(t.Artist), q) {
			return true
		}
		return t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q)
	}), nil
}

// GetTracksByGenre returns tracks whose genre matches exactly.
func (s *memoryStore) GetTracksByGenre(genre string) ([]*model.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectTracks(func(t *model.Track) bool {
		return t.Genre != nil && *t.Genre == genre
	}), nil
}

// CreatePlaylist assigns the next playlist id. A playlist with IsPublic
// unset is public.
func (s *memoryStore) CreatePlaylist(input *model.InsertPlaylist) (*model.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	playlist := &model.Playlist{
		ID:       s.nextPlaylistID,
		Name:     input.Name,
		UserID:   input.UserID,
		IsPublic: isPublic,
	}
	s.nextPlaylistID++
	s.playlists[playlist.ID] = playlist

	out := *playlist
	return &out, nil
}

// GetPlaylistByID retrieves a playlist by id, or (nil, nil) if absent.
func (s *memoryStore) GetPlaylistByID(id int64) (*model.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	playlist, ok := s.playlists[id]
	if !ok {
		return nil, nil
	}
	out := *playlist
	return &out, nil
}

// GetPlaylistsForUser returns the user's own playlists plus every public
// playlist. A playlist that is both owned and public appears once.
func (s *memoryStore) GetPlaylistsForUser(userID int64) ([]*model.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.playlists))
	for id, p := range s.playlists {
		if p.UserID == userID || p.IsPublic {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	playlists := make([]*model.Playlist, 0, len(ids))
	for _, id := range ids {
		out := *s.playlists[id]
		playlists = append(playlists, &out)
	}
	return playlists, nil
}

// AddTrackToPlaylist appends a membership row without any uniqueness check
// and stamps addedAt.
func (s *memoryStore) AddTrackToPlaylist(input *model.InsertPlaylistTrack) (*model.PlaylistTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link := &model.PlaylistTrack{
		ID:         s.nextPlaylistTrackID,
		PlaylistID: input.PlaylistID,
		TrackID:    input.TrackID,
		AddedAt:    time.Now(),
	}
	s.nextPlaylistTrackID++
	s.playlistTracks[link.ID] = link

	out := *link
	return &out, nil
}

// GetPlaylistTracks resolves membership rows to tracks in row-id order.
// Rows pointing at a track that no longer exists are skipped.
func (s *memoryStore) GetPlaylistTracks(playlistID int64) ([]*model.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0)
	for id, link := range s.playlistTracks {
		if link.PlaylistID == playlistID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tracks := make([]*model.Track, 0, len(ids))
	for _, id := range ids {
		if track, ok := s.tracks[s.playlistTracks[id].TrackID]; ok {
			tracks = append(tracks, copyTrack(track))
		}
	}
	return tracks, nil
}

// RemoveTrackFromPlaylist deletes the oldest membership row for the pair
// and reports whether one was found. With duplicate rows only one is
// removed per call.
func (s *memoryStore) RemoveTrackFromPlaylist(playlistID, trackID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var oldest int64 = -1
	for id, link := range s.playlistTracks {
		if link.PlaylistID == playlistID && link.TrackID == trackID {
			if oldest == -1 || id < oldest {
				oldest = id
			}
		}
	}
	if oldest == -1 {
		return false, nil
	}

	delete(s.playlistTracks, oldest)
	return true, nil
}

// collectTracks gathers tracks matching the filter in ascending id order.
// Callers must hold at least the read lock.
func (s *memoryStore) collectTracks(match func(*model.Track) bool) []*model.Track {
	ids := make([]int64, 0, len(s.tracks))
	for id, track := range s.tracks {
		if match(track) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tracks := make([]*model.Track, 0, len(ids))
	for _, id := range ids {
		tracks = append(tracks, copyTrack(s.tracks[id]))
	}
	return tracks
}

func copyUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	out := *u
	if u.AvatarURL != nil {
		v := *u.AvatarURL
		out.AvatarURL = &v
	}
	return &out
}

func copyTrack(t *model.Track) *model.Track {
	if t == nil {
		return nil
	}
	out := *t
	if t.Genre != nil {
		v := *t.Genre
		out.Genre = &v
	}
	if t.Description != nil {
		v := *t.Description
		out.Description = &v
	}
	if t.ThumbnailURL != nil {
		v := *t.ThumbnailURL
		out.ThumbnailURL = &v
	}
	if t.Duration != nil {
		v := *t.Duration
		out.Duration = &v
	}
	return &out
}
