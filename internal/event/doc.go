package event

// Package event provides a small in-process publish/subscribe bus used
// to notify UI components about configuration changes and background
// backup activity.
