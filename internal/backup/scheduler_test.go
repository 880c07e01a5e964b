package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"github.com/aitoolbox/ai-toolbox/internal/config"
	"github.com/aitoolbox/ai-toolbox/internal/event"
	"github.com/aitoolbox/ai-toolbox/internal/model"
	"github.com/aitoolbox/ai-toolbox/internal/store"
)

func TestIsDue(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		last         time.Time
		hasLast      bool
		intervalDays int
		expected     bool
	}{
		{
			name:         "never ran",
			hasLast:      false,
			intervalDays: 7,
			expected:     true,
		},
		{
			name:         "exactly one interval elapsed",
			last:         now.Add(-24 * time.Hour),
			hasLast:      true,
			intervalDays: 1,
			expected:     true,
		},
		{
			name:         "interval exceeded",
			last:         now.Add(-8 * 24 * time.Hour),
			hasLast:      true,
			intervalDays: 7,
			expected:     true,
		},
		{
			name:         "not yet due",
			last:         now.Add(-23 * time.Hour),
			hasLast:      true,
			intervalDays: 1,
			expected:     false,
		},
		{
			name:         "ran moments ago",
			last:         now.Add(-time.Minute),
			hasLast:      true,
			intervalDays: 7,
			expected:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsDue(tt.last, tt.hasLast, tt.intervalDays, now)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestSelectPrunable(t *testing.T) {
	names := []string{
		"ai-toolbox-backup-20260103-120000.zip",
		"ai-toolbox-backup-20260101-120000.zip",
		"ai-toolbox-backup-20260104-120000.zip",
		"ai-toolbox-backup-20260102-120000.zip",
	}

	tests := []struct {
		name     string
		maxKeep  int
		expected []string
	}{
		{
			name:    "keep newest two",
			maxKeep: 2,
			expected: []string{
				"ai-toolbox-backup-20260102-120000.zip",
				"ai-toolbox-backup-20260101-120000.zip",
			},
		},
		{
			name:     "keep more than exist",
			maxKeep:  10,
			expected: nil,
		},
		{
			name:     "zero means unlimited",
			maxKeep:  0,
			expected: nil,
		},
		{
			name:    "keep one",
			maxKeep: 1,
			expected: []string{
				"ai-toolbox-backup-20260103-120000.zip",
				"ai-toolbox-backup-20260102-120000.zip",
				"ai-toolbox-backup-20260101-120000.zip",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectPrunable(names, tt.maxKeep)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestSelectPrunable_DoesNotModifyInput(t *testing.T) {
	names := []string{
		"ai-toolbox-backup-20260102-120000.zip",
		"ai-toolbox-backup-20260101-120000.zip",
	}
	copied := append([]string(nil), names...)

	SelectPrunable(names, 1)
	require.Equal(t, copied, names)
}

// newTestScheduler wires real settings, store and bus for loop tests
func newTestScheduler(t *testing.T) (*Scheduler, *config.Settings, *event.Bus, *store.Store) {
	t.Helper()

	app := test.NewApp()
	settings := config.NewSettings(app)

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	bus := event.NewBus()
	service := NewService(st, bus)
	scheduler := NewScheduler(settings, service, bus)
	return scheduler, settings, bus, st
}

func TestScheduler_RunNow_LocalBackup(t *testing.T) {
	scheduler, settings, bus, _ := newTestScheduler(t)

	dir := t.TempDir()
	settings.SetBackupConfig(model.BackupConfig{
		BackupType:      model.BackupTypeLocal,
		LocalBackupPath: dir,
	})

	var completedAt any
	bus.Subscribe(event.AutoBackupCompleted, func(payload any) {
		completedAt = payload
	})

	require.NoError(t, scheduler.RunNow())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, model.IsBackupFilename(entries[0].Name()))

	// Last-run time persisted
	_, ok := settings.GetLastAutoBackupTime()
	require.True(t, ok)

	// Event payload is an RFC3339 timestamp
	require.IsType(t, "", completedAt)
	_, err = time.Parse(time.RFC3339, completedAt.(string))
	require.NoError(t, err)
}

func TestScheduler_RunNow_DestinationUnset(t *testing.T) {
	scheduler, settings, _, _ := newTestScheduler(t)

	settings.SetBackupConfig(model.BackupConfig{BackupType: model.BackupTypeLocal})

	err := scheduler.RunNow()
	require.ErrorIs(t, err, ErrDestinationUnset)
}

func TestScheduler_CheckSkipsWhenDisabled(t *testing.T) {
	scheduler, settings, bus, _ := newTestScheduler(t)

	dir := t.TempDir()
	settings.SetBackupConfig(model.BackupConfig{
		BackupType:      model.BackupTypeLocal,
		LocalBackupPath: dir,
	})
	settings.SetAutoBackupEnabled(false)

	ran := false
	bus.Subscribe(event.AutoBackupCompleted, func(any) { ran = true })

	scheduler.check()

	require.False(t, ran)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestScheduler_CheckSkipsWhenNotDue(t *testing.T) {
	scheduler, settings, bus, _ := newTestScheduler(t)

	dir := t.TempDir()
	settings.SetBackupConfig(model.BackupConfig{
		BackupType:      model.BackupTypeLocal,
		LocalBackupPath: dir,
	})
	settings.SetAutoBackupConfig(model.AutoBackupConfig{Enabled: true, IntervalDays: 7, MaxKeep: 0})
	settings.SetLastAutoBackupTime(time.Now().Add(-time.Hour))

	ran := false
	bus.Subscribe(event.AutoBackupCompleted, func(any) { ran = true })

	scheduler.check()
	require.False(t, ran)
}

func TestScheduler_CheckRunsWhenDue(t *testing.T) {
	scheduler, settings, bus, _ := newTestScheduler(t)

	dir := t.TempDir()
	settings.SetBackupConfig(model.BackupConfig{
		BackupType:      model.BackupTypeLocal,
		LocalBackupPath: dir,
	})
	settings.SetAutoBackupConfig(model.AutoBackupConfig{Enabled: true, IntervalDays: 1, MaxKeep: 0})
	settings.SetLastAutoBackupTime(time.Now().Add(-48 * time.Hour))

	ran := false
	bus.Subscribe(event.AutoBackupCompleted, func(any) { ran = true })

	scheduler.check()

	require.True(t, ran)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestScheduler_CheckSilentWhenDestinationUnset(t *testing.T) {
	scheduler, settings, bus, _ := newTestScheduler(t)

	settings.SetBackupConfig(model.BackupConfig{BackupType: model.BackupTypeWebDAV})
	settings.SetAutoBackupConfig(model.AutoBackupConfig{Enabled: true, IntervalDays: 1, MaxKeep: 0})

	ran := false
	bus.Subscribe(event.AutoBackupCompleted, func(any) { ran = true })

	// Must not panic or log an error path we can observe; just no run
	scheduler.check()
	require.False(t, ran)
}

func TestScheduler_PruneLocalKeepsNewest(t *testing.T) {
	scheduler, _, _, _ := newTestScheduler(t)

	dir := t.TempDir()
	old := []string{
		"ai-toolbox-backup-20260101-120000.zip",
		"ai-toolbox-backup-20260102-120000.zip",
		"ai-toolbox-backup-20260103-120000.zip",
	}
	for _, name := range old {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	// Foreign files are never pruned
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644))

	scheduler.pruneLocal(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{
		"ai-toolbox-backup-20260102-120000.zip",
		"ai-toolbox-backup-20260103-120000.zip",
		"keep.txt",
	}, names)
}

func TestScheduler_RunNowPrunesAfterBackup(t *testing.T) {
	scheduler, settings, _, _ := newTestScheduler(t)

	dir := t.TempDir()
	settings.SetBackupConfig(model.BackupConfig{
		BackupType:      model.BackupTypeLocal,
		LocalBackupPath: dir,
	})
	settings.SetAutoBackupConfig(model.AutoBackupConfig{Enabled: true, IntervalDays: 1, MaxKeep: 2})

	// Seed archives that predate every generated name
	for _, name := range []string{
		"ai-toolbox-backup-20200101-120000.zip",
		"ai-toolbox-backup-20200102-120000.zip",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	require.NoError(t, scheduler.RunNow())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The oldest seeded archive is gone
	_, err = os.Stat(filepath.Join(dir, "ai-toolbox-backup-20200101-120000.zip"))
	require.True(t, os.IsNotExist(err))
}

func TestScheduler_StartStop(t *testing.T) {
	scheduler, _, _, _ := newTestScheduler(t)

	scheduler.Start()
	scheduler.Stop()
}
