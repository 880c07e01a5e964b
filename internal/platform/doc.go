package platform

// Package platform contains OS integration helpers: filesystem
// permissions, user path expansion and opening directories in the
// system file manager.
