package repository

// Store is the full catalog access contract: everything the HTTP layer is
// allowed to do with entity state goes through here. Two backends exist,
// the in-memory default (NewMemoryStore) and the MySQL-backed variant
// (NewMySQLStore); callers never depend on which one they hold.
type Store interface {
	UserRepository
	TrackRepository
	PlaylistRepository
	PlaylistTrackRepository
}
