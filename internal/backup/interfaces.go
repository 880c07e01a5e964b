package backup

import "context"

// SnapshotStore is the store surface the engine needs: a consistent
// copy for backups and close/reopen around restores
type SnapshotStore interface {
	Dir() string
	SnapshotTo(ctx context.Context, destDir string) (string, error)
	Close() error
	Reopen() error
}

// Publisher posts events toward the UI
type Publisher interface {
	Publish(name string, payload any)
}
