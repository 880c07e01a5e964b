package webdav

import "errors"

var (
	// ErrNotFound - the remote file or collection does not exist
	ErrNotFound = errors.New("remote file not found")
	// ErrUnauthorized - the server rejected the credentials
	ErrUnauthorized = errors.New("authentication failed")
)
