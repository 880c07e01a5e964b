package archive

// Package archive packs a directory tree into an in-memory zip and
// extracts archives with path traversal protection. Backup archives
// are small (a database plus sidecar files), so buffering them in
// memory keeps the transport layer byte-oriented.
