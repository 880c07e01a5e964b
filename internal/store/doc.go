package store

// Package store persists notes in a SQLite database inside the app
// data directory. It owns the database lifecycle: the backup engine
// closes and reopens it around restores and snapshots it with VACUUM
// INTO so live writes never corrupt an archive.
