package repository

import "testing"

func TestLikeEscaper(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"jazz", "jazz"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tc := range cases {
		if got := likeEscaper.Replace(tc.query); got != tc.want {
			t.Errorf("escape %q: expected %q, got %q", tc.query, tc.want, got)
		}
	}
}

// A query containing LIKE metacharacters must match it literally, the same
// way the in-memory backend does.
func TestSearchTreatsMetacharactersLiterally(t *testing.T) {
	store := NewMemoryStore()

	store.CreateTrack(newTestTrack("1000 Ways", "a", 1))
	store.CreateTrack(newTestTrack("100% Pure", "b", 1))

	results, err := store.SearchTracks("100%")
	if err != nil {
		t.Fatalf("SearchTracks failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "100% Pure" {
		t.Fatalf("Expected only the literal match, got %d results", len(results))
	}
}
