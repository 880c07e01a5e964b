package backup

// Package backup implements the backup engine: snapshotting the notes
// database into zip archives, moving them to local directories or a
// WebDAV server, restoring from either, and the periodic auto-backup
// scheduler. All privileged filesystem and network work lives here;
// the UI reaches it only through bridge commands.
