package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"EchoFM/db"
	"EchoFM/model"

	"github.com/go-redis/redis/v8"
)

// Track cache on top of the catalog store. Everything here is best-effort:
// a nil Redis client or any cache error means the caller falls through to
// the store. The cache never changes store semantics.

const (
	trackTTL  = 10 * time.Minute
	searchTTL = 2 * time.Minute
)

// searchVersionKey namespaces search results; bumping it on writes
// invalidates all cached searches at once.
const searchVersionKey = "tracks:searchver"

// TrackKey builds the Redis key for a track record.
func TrackKey(trackID int64) string {
	return fmt.Sprintf("track:%d", trackID)
}

// GetCachedTrack returns the cached record, or (nil, nil) on a miss.
func GetCachedTrack(ctx context.Context, trackID int64) (*model.Track, error) {
	if db.RedisClient == nil {
		return nil, nil
	}

	data, err := db.RedisClient.Get(ctx, TrackKey(trackID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached track %d: %w", trackID, err)
	}

	track := &model.Track{}
	if err := json.Unmarshal([]byte(data), track); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached track %d: %w", trackID, err)
	}
	return track, nil
}

// CacheTrack stores a track record with a TTL.
func CacheTrack(ctx context.Context, track *model.Track) error {
	if db.RedisClient == nil || track == nil {
		return nil
	}

	data, err := json.Marshal(track)
	if err != nil {
		return fmt.Errorf("failed to marshal track %d: %w", track.ID, err)
	}

	if err := db.RedisClient.Set(ctx, TrackKey(track.ID), data, trackTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache track %d: %w", track.ID, err)
	}
	return nil
}

// InvalidateTrack drops the cached record and bumps the search namespace so
// stale play counts never come out of cached search results.
func InvalidateTrack(ctx context.Context, trackID int64) error {
	if db.RedisClient == nil {
		return nil
	}

	if err := db.RedisClient.Del(ctx, TrackKey(trackID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate track %d: %w", trackID, err)
	}
	return InvalidateSearch(ctx)
}

// InvalidateSearch bumps the search namespace version, dropping every cached
// search result at once. Called whenever the catalog's track set or any
// searchable field changes.
func InvalidateSearch(ctx context.Context) error {
	if db.RedisClient == nil {
		return nil
	}

	if err := db.RedisClient.Incr(ctx, searchVersionKey).Err(); err != nil {
		return fmt.Errorf("failed to bump search version: %w", err)
	}
	return nil
}

// searchKey builds the versioned key for one search query.
func searchKey(ctx context.Context, query string) (string, error) {
	version, err := db.RedisClient.Get(ctx, searchVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("failed to get search version: %w", err)
	}
	return fmt.Sprintf("search:v%d:%s", version, strings.ToLower(query)), nil
}

// GetCachedSearch returns cached results for a query, or (nil, nil) on a
// miss.
func GetCachedSearch(ctx context.Context, query string) ([]*model.Track, error) {
	if db.RedisClient == nil {
		return nil, nil
	}

	key, err := searchKey(ctx, query)
	if err != nil {
		return nil, err
	}

	data, err := db.RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached search %q: %w", query, err)
	}

	tracks := make([]*model.Track, 0)
	if err := json.Unmarshal([]byte(data), &tracks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached search %q: %w", query, err)
	}
	return tracks, nil
}

// CacheSearch stores search results under the current namespace version.
func CacheSearch(ctx context.Context, query string, tracks []*model.Track) error {
	if db.RedisClient == nil {
		return nil
	}

	key, err := searchKey(ctx, query)
	if err != nil {
		return err
	}

	data, err := json.Marshal(tracks)
	if err != nil {
		return fmt.Errorf("failed to marshal search results for %q: %w", query, err)
	}

	if err := db.RedisClient.Set(ctx, key, data, searchTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache search %q: %w", query, err)
	}
	return nil
}
