package backup

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aitoolbox/ai-toolbox/internal/config"
	"github.com/aitoolbox/ai-toolbox/internal/event"
	"github.com/aitoolbox/ai-toolbox/internal/model"
	"github.com/aitoolbox/ai-toolbox/internal/platform"
	"github.com/aitoolbox/ai-toolbox/internal/webdav"
)

const (
	// initialDelay postpones the first due check past app startup
	initialDelay = 30 * time.Second
	// checkSpec is the cadence of due checks, not of backups; the
	// interval between backups comes from settings
	checkSpec = "@every 10m"
)

// Scheduler runs periodic backups to the configured destination
type Scheduler struct {
	settings *config.Settings
	service  *Service
	bus      Publisher

	cron    *cron.Cron
	initial *time.Timer

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler over the backup service
func NewScheduler(settings *config.Settings, service *Service, bus Publisher) *Scheduler {
	return &Scheduler{settings: settings, service: service, bus: bus}
}

// Start arms the initial delay and the periodic due check
func (s *Scheduler) Start() {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(checkSpec, s.check); err != nil {
		// The expression is a constant; failing to parse it is a programming error
		panic(err)
	}
	s.initial = time.AfterFunc(initialDelay, s.check)
	s.cron.Start()
	log.Printf("Auto-backup scheduler started (check %s)", checkSpec)
}

// Stop cancels pending checks. A backup already running completes.
func (s *Scheduler) Stop() {
	if s.initial != nil {
		s.initial.Stop()
	}
	if s.cron != nil {
		s.cron.Stop()
	}
	log.Printf("Auto-backup scheduler stopped")
}

// RunNow performs a backup to the active destination immediately,
// ignoring the due check. Used by the "Backup now" menu and tray
// entries; the returned error feeds the UI notification.
func (s *Scheduler) RunNow() error {
	return s.runBackup(context.Background())
}

// check runs one due evaluation; it is the cron and initial-delay target
func (s *Scheduler) check() {
	auto := s.settings.GetAutoBackupConfig()
	if !auto.Enabled {
		return
	}

	last, hasLast := s.settings.GetLastAutoBackupTime()
	if !IsDue(last, hasLast, auto.IntervalDays, time.Now()) {
		return
	}

	if err := s.runBackup(context.Background()); err != nil {
		if errors.Is(err, ErrDestinationUnset) {
			// Nothing configured yet; stay silent until the user sets a destination
			return
		}
		log.Printf("Auto-backup failed: %v", err)
	}
}

// ErrDestinationUnset marks a skipped run, not a failure
var ErrDestinationUnset = errors.New("backup destination not configured")

// runBackup performs one backup to the active destination, records the
// completion time and prunes old archives
func (s *Scheduler) runBackup(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Printf("Auto-backup already running, skipping")
		return nil
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	cfg := s.settings.GetBackupConfig()

	switch cfg.BackupType {
	case model.BackupTypeWebDAV:
		if cfg.WebDAV.URL == "" {
			return ErrDestinationUnset
		}
		if _, err := s.service.BackupToWebDAV(ctx, cfg.WebDAV); err != nil {
			return err
		}
	default:
		if cfg.LocalBackupPath == "" {
			return ErrDestinationUnset
		}
		dir := platform.ExpandPath(cfg.LocalBackupPath)
		if _, err := s.service.BackupToDirectory(ctx, dir); err != nil {
			return err
		}
	}

	now := time.Now()
	s.settings.SetLastAutoBackupTime(now)
	s.bus.Publish(event.AutoBackupCompleted, now.UTC().Format(time.RFC3339))

	if maxKeep := s.settings.GetAutoBackupMaxKeep(); maxKeep > 0 {
		s.prune(ctx, cfg, maxKeep)
	}
	return nil
}

// prune deletes old archives beyond maxKeep on the active destination.
// Failures are warnings; the backup itself already succeeded.
func (s *Scheduler) prune(ctx context.Context, cfg model.BackupConfig, maxKeep int) {
	switch cfg.BackupType {
	case model.BackupTypeWebDAV:
		s.pruneWebDAV(ctx, cfg.WebDAV, maxKeep)
	default:
		s.pruneLocal(platform.ExpandPath(cfg.LocalBackupPath), maxKeep)
	}
}

func (s *Scheduler) pruneLocal(dir string, maxKeep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Warning: failed to list %s for pruning: %v", dir, err)
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && model.IsBackupFilename(entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	for _, name := range SelectPrunable(names, maxKeep) {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			log.Printf("Warning: failed to prune %s: %v", name, err)
		} else {
			log.Printf("Pruned old backup %s", name)
		}
	}
}

func (s *Scheduler) pruneWebDAV(ctx context.Context, cfg model.WebDAVConfig, maxKeep int) {
	client := webdav.NewClient(cfg)

	files, err := client.List(ctx)
	if err != nil {
		log.Printf("Warning: failed to list remote backups for pruning: %v", err)
		return
	}

	var names []string
	for _, f := range files {
		if model.IsBackupFilename(f.Filename) {
			names = append(names, f.Filename)
		}
	}

	for _, name := range SelectPrunable(names, maxKeep) {
		if err := client.Delete(ctx, name); err != nil {
			log.Printf("Warning: failed to prune remote backup %s: %v", name, err)
		} else {
			log.Printf("Pruned old remote backup %s", name)
		}
	}
}

// IsDue reports whether a periodic backup should run at now. A missing
// or unparseable last-run time counts as due.
func IsDue(last time.Time, hasLast bool, intervalDays int, now time.Time) bool {
	if !hasLast {
		return true
	}
	return now.Sub(last) >= time.Duration(intervalDays)*24*time.Hour
}

// SelectPrunable returns the archive names to delete so that only the
// newest maxKeep remain. Timestamped names sort lexicographically by
// age, so a descending sort puts newest first. The input slice is not
// modified.
func SelectPrunable(names []string, maxKeep int) []string {
	if maxKeep <= 0 || len(names) <= maxKeep {
		return nil
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	return sorted[maxKeep:]
}
