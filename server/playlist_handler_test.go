package server

import (
	"fmt"
	"net/http"
	"testing"

	"EchoFM/model"
)

func TestCreatePlaylistDefaultsPublic(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/playlists", map[string]interface{}{
		"name":   "Favs",
		"userId": 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var playlist model.Playlist
	decodeBody(t, rec, &playlist)
	if !playlist.IsPublic {
		t.Error("Expected omitted isPublic to default to true")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/playlists", map[string]interface{}{
		"name":     "Secret",
		"userId":   1,
		"isPublic": false,
	})
	decodeBody(t, rec, &playlist)
	if playlist.IsPublic {
		t.Error("Expected explicit isPublic=false to stick")
	}
}

func TestGetPlaylistsRequiresUserID(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/playlists", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without userId, got %d", rec.Code)
	}
}

func TestGetPlaylistsVisibility(t *testing.T) {
	router, store, _ := newTestServer(t)

	private := false
	store.CreatePlaylist(&model.InsertPlaylist{Name: "Mine", UserID: 1, IsPublic: &private})
	store.CreatePlaylist(&model.InsertPlaylist{Name: "Theirs Public", UserID: 2})
	store.CreatePlaylist(&model.InsertPlaylist{Name: "Theirs Private", UserID: 2, IsPublic: &private})

	rec := doJSON(t, router, http.MethodGet, "/api/playlists?userId=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var playlists []model.Playlist
	decodeBody(t, rec, &playlists)
	if len(playlists) != 2 {
		t.Fatalf("Expected own private plus other public, got %d", len(playlists))
	}
	for _, p := range playlists {
		if p.Name == "Theirs Private" {
			t.Error("Another user's private playlist leaked")
		}
	}
}

func TestGetPlaylist(t *testing.T) {
	router, store, _ := newTestServer(t)
	playlist, _ := store.CreatePlaylist(&model.InsertPlaylist{Name: "Favs", UserID: 1})

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/playlists/%d", playlist.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/playlists/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for missing playlist, got %d", rec.Code)
	}
}

func TestPlaylistTracksFlow(t *testing.T) {
	router, store, _ := newTestServer(t)

	track := createTestTrack(t, store, "Test", 1)
	playlist, _ := store.CreatePlaylist(&model.InsertPlaylist{Name: "Favs", UserID: 1})

	// Adding to a missing playlist is a 404.
	rec := doJSON(t, router, http.MethodPost, "/api/playlists/999/tracks", map[string]interface{}{"trackId": track.ID})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for missing playlist, got %d", rec.Code)
	}

	// Add the same track twice; both rows must land.
	for i := 0; i < 2; i++ {
		rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/playlists/%d/tracks", playlist.ID), map[string]interface{}{"trackId": track.ID})
		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/playlists/%d/tracks", playlist.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var tracks []model.Track
	decodeBody(t, rec, &tracks)
	if len(tracks) != 2 {
		t.Fatalf("Expected duplicate membership to produce 2 entries, got %d", len(tracks))
	}

	// One delete removes exactly one of the duplicates.
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/playlists/%d/tracks/%d", playlist.ID, track.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/playlists/%d/tracks", playlist.ID), nil)
	decodeBody(t, rec, &tracks)
	if len(tracks) != 1 {
		t.Fatalf("Expected one entry left, got %d", len(tracks))
	}

	// Removing a pair that is not there is a 404.
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/playlists/%d/tracks/999", playlist.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for absent membership, got %d", rec.Code)
	}
}

func TestGetPlaylistTracksMissingPlaylist(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/playlists/999/tracks", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}
