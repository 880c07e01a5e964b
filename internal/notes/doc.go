package notes

// Package notes exposes the notes store over the command bridge so the
// root window consumes it exactly like the backup modals consume the
// backup engine.
