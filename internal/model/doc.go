package model

// Package model defines the core domain types shared across the
// application: backup configuration, backup file metadata, notes and
// connection status values.
