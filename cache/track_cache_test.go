package cache

import (
	"context"
	"testing"

	"EchoFM/db"
	"EchoFM/model"
)

// Without a Redis client every cache function must be a silent no-op, so the
// service and its callers work identically with caching disabled.
func TestNilClientIsNoOp(t *testing.T) {
	if db.RedisClient != nil {
		t.Fatal("Expected no Redis client in tests")
	}
	ctx := context.Background()

	track, err := GetCachedTrack(ctx, 1)
	if track != nil || err != nil {
		t.Errorf("Expected miss without a client, got %+v, %v", track, err)
	}
	if err := CacheTrack(ctx, &model.Track{ID: 1, Title: "Test"}); err != nil {
		t.Errorf("CacheTrack errored without a client: %v", err)
	}
	if err := InvalidateTrack(ctx, 1); err != nil {
		t.Errorf("InvalidateTrack errored without a client: %v", err)
	}
	if err := InvalidateSearch(ctx); err != nil {
		t.Errorf("InvalidateSearch errored without a client: %v", err)
	}

	results, err := GetCachedSearch(ctx, "jazz")
	if results != nil || err != nil {
		t.Errorf("Expected search miss without a client, got %+v, %v", results, err)
	}
	if err := CacheSearch(ctx, "jazz", nil); err != nil {
		t.Errorf("CacheSearch errored without a client: %v", err)
	}
}

func TestTrackKey(t *testing.T) {
	if got := TrackKey(42); got != "track:42" {
		t.Errorf("Expected track:42, got %q", got)
	}
}
