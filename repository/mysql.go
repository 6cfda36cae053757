package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"EchoFM/model"
)

const trackColumns = `id, title, artist, user_id, genre, description, audio_url, thumbnail_url, duration, uploaded_at, play_count`

// mysqlStore implements Store on MySQL. It preserves the same contracts as
// the in-memory backend: reads return (nil, nil) on not-found and no
// business validation happens here. Only infrastructure failures surface as
// errors.
type mysqlStore struct {
	db *sql.DB
}

// NewMySQLStore creates a Store backed by the given MySQL connection.
func NewMySQLStore(db *sql.DB) Store {
	return &mysqlStore{db: db}
}

// CreateUser adds a new user row and returns the stored record.
func (s *mysqlStore) CreateUser(input *model.InsertUser) (*model.User, error) {
	query := `INSERT INTO users (username, password, display_name, avatar_url) VALUES (?, ?, ?, ?)`
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement for CreateUser: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(input.Username, input.Password, input.DisplayName, input.AvatarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute CreateUser: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for CreateUser: %w", err)
	}

	return &model.User{
		ID:          id,
		Username:    input.Username,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
	}, nil
}

// GetUserByID retrieves a user by id.
func (s *mysqlStore) GetUserByID(id int64) (*model.User, error) {
	query := `SELECT id, username, password, display_name, avatar_url FROM users WHERE id = ?`
	return s.scanUser(s.db.QueryRow(query, id))
}

// GetUserByUsername retrieves a user by exact username.
func (s *mysqlStore) GetUserByUsername(username string) (*model.User, error) {
	query := `SELECT id, username, password, display_name, avatar_url FROM users WHERE BINARY username = ?`
	return s.scanUser(s.db.QueryRow(query, username))
}

func (s *mysqlStore) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Password, &user.DisplayName, &user.AvatarURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // user not found
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return user, nil
}

// CreateTrack adds a new track row with uploadedAt stamped and play_count
// zero.
func (s *mysqlStore) CreateTrack(input *model.InsertTrack) (*model.Track, error) {
	query := `INSERT INTO tracks (title, artist, user_id, genre, description, audio_url, thumbnail_url, duration, uploaded_at, play_count)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement for CreateTrack: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(input.Title, input.Artist, input.UserID, input.Genre, input.Description, input.AudioURL, input.ThumbnailURL, input.Duration, now)
	if err != nil {
		return nil, fmt.Errorf("failed to execute CreateTrack: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for CreateTrack: %w", err)
	}

	return &model.Track{
		ID:           id,
		Title:        input.Title,
		Artist:       input.Artist,
		UserID:       input.UserID,
		Genre:        input.Genre,
		Description:  input.Description,
		AudioURL:     input.AudioURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		UploadedAt:   now,
		PlayCount:    0,
	}, nil
}

// GetTrackByID retrieves a track by id.
func (s *mysqlStore) GetTrackByID(id int64) (*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = ?`
	row := s.db.QueryRow(query, id)

	track, err := scanTrack(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // track not found
		}
		return nil, fmt.Errorf("failed to scan track by ID %d: %w", id, err)
	}
	return track, nil
}

// GetAllTracks retrieves every track in id order.
func (s *mysqlStore) GetAllTracks() ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks ORDER BY id`
	return s.queryTracks(query)
}

// GetTracksByUserID retrieves the tracks owned by one user.
func (s *mysqlStore) GetTracksByUserID(userID int64) ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE user_id = ? ORDER BY id`
	return s.queryTracks(query, userID)
}

// IncrementPlayCount adds one play and returns the updated record, or
// (nil, nil) when no such track exists.
func (s *mysqlStore) IncrementPlayCount(id int64) (*model.Track, error) {
	res, err := s.db.Exec(`UPDATE tracks SET play_count = play_count + 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute IncrementPlayCount for track ID %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows for IncrementPlayCount: %w", err)
	}
	if affected == 0 {
		return nil, nil // track not found, nothing mutated
	}

	return s.GetTrackByID(id)
}

// likeEscaper neutralizes the LIKE metacharacters so a query matches them
// literally. Backslash is MySQL's default ESCAPE character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchTracks matches the query as a case-insensitive substring of title,
// artist or description. The query is treated as literal text, never as a
// LIKE pattern.
func (s *mysqlStore) SearchTracks(query string) ([]*model.Track, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	sqlQuery := `SELECT ` + trackColumns + ` FROM tracks
	              WHERE LOWER(title) LIKE LOWER(?)
	                 OR LOWER(artist) LIKE LOWER(?)
	                 OR (description IS NOT NULL AND LOWER(description) LIKE LOWER(?))
	              ORDER BY id`
	return s.queryTracks(sqlQuery, pattern, pattern, pattern)
}

// GetTracksByGenre retrieves tracks whose genre matches exactly,
// case-sensitively.
func (s *mysqlStore) GetTracksByGenre(genre string) ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE BINARY genre = ? ORDER BY id`
	return s.queryTracks(query, genre)
}

// CreatePlaylist adds a new playlist row; IsPublic defaults to true when
// the input leaves it unset.
func (s *mysqlStore) CreatePlaylist(input *model.InsertPlaylist) (*model.Playlist, error) {
	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	query := `INSERT INTO playlists (name, user_id, is_public) VALUES (?, ?, ?)`
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement for CreatePlaylist: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(input.Name, input.UserID, isPublic)
	if err != nil {
		return nil, fmt.Errorf("failed to execute CreatePlaylist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for CreatePlaylist: %w", err)
	}

	return &model.Playlist{ID: id, Name: input.Name, UserID: input.UserID, IsPublic: isPublic}, nil
}

// GetPlaylistByID retrieves a playlist by id.
func (s *mysqlStore) GetPlaylistByID(id int64) (*model.Playlist, error) {
	query := `SELECT id, name, user_id, is_public FROM playlists WHERE id = ?`
	playlist := &model.Playlist{}
	err := s.db.QueryRow(query, id).Scan(&playlist.ID, &playlist.Name, &playlist.UserID, &playlist.IsPublic)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // playlist not found
		}
		return nil, fmt.Errorf("failed to scan playlist by ID %d: %w", id, err)
	}
	return playlist, nil
}

// GetPlaylistsForUser returns the user's own playlists plus every public
// playlist, each at most once.
func (s *mysqlStore) GetPlaylistsForUser(userID int64) ([]*model.Playlist, error) {
	query := `SELECT id, name, user_id, is_public FROM playlists WHERE user_id = ? OR is_public = TRUE ORDER BY id`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists for user ID %d: %w", userID, err)
	}
	defer rows.Close()

	playlists := make([]*model.Playlist, 0)
	for rows.Next() {
		playlist := &model.Playlist{}
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.UserID, &playlist.IsPublic); err != nil {
			return nil, fmt.Errorf("failed to scan playlist in GetPlaylistsForUser: %w", err)
		}
		playlists = append(playlists, playlist)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetPlaylistsForUser: %w", err)
	}
	return playlists, nil
}

// AddTrackToPlaylist inserts a membership row; duplicates are allowed.
func (s *mysqlStore) AddTrackToPlaylist(input *model.InsertPlaylistTrack) (*model.PlaylistTrack, error) {
	query := `INSERT INTO playlist_tracks (playlist_id, track_id, added_at) VALUES (?, ?, ?)`
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement for AddTrackToPlaylist: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(input.PlaylistID, input.TrackID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to execute AddTrackToPlaylist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for AddTrackToPlaylist: %w", err)
	}

	return &model.PlaylistTrack{ID: id, PlaylistID: input.PlaylistID, TrackID: input.TrackID, AddedAt: now}, nil
}

// GetPlaylistTracks resolves membership rows to tracks in row order. The
// inner join drops rows whose track no longer exists.
func (s *mysqlStore) GetPlaylistTracks(playlistID int64) ([]*model.Track, error) {
	query := `SELECT t.id, t.title, t.artist, t.user_id, t.genre, t.description, t.audio_url, t.thumbnail_url, t.duration, t.uploaded_at, t.play_count
	           FROM playlist_tracks pt
	           INNER JOIN tracks t ON t.id = pt.track_id
	           WHERE pt.playlist_id = ?
	           ORDER BY pt.id`
	return s.queryTracks(query, playlistID)
}

// RemoveTrackFromPlaylist deletes the oldest matching membership row and
// reports whether one was removed.
func (s *mysqlStore) RemoveTrackFromPlaylist(playlistID, trackID int64) (bool, error) {
	query := `DELETE FROM playlist_tracks WHERE playlist_id = ? AND track_id = ? ORDER BY id LIMIT 1`
	res, err := s.db.Exec(query, playlistID, trackID)
	if err != nil {
		return false, fmt.Errorf("failed to execute RemoveTrackFromPlaylist: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows for RemoveTrackFromPlaylist: %w", err)
	}
	return affected > 0, nil
}

func (s *mysqlStore) queryTracks(query string, args ...interface{}) ([]*model.Track, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track row: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during track rows iteration: %w", err)
	}
	return tracks, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrack(sc scanner) (*model.Track, error) {
	track := &model.Track{}
	err := sc.Scan(&track.ID, &track.Title, &track.Artist, &track.UserID, &track.Genre, &track.Description,
		&track.AudioURL, &track.ThumbnailURL, &track.Duration, &track.UploadedAt, &track.PlayCount)
	if err != nil {
		return nil, err
	}
	return track, nil
}
