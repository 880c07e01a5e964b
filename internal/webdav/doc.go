package webdav

// Package webdav is a minimal WebDAV client covering what the backup
// engine needs: upload, download, delete, collection listing and a
// reachability check. Every request carries basic auth.
