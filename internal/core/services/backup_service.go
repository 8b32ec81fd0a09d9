package services

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const backupTimeLayout = "20060102-150405"

// BackupService snapshots the data documents on a cron schedule and keeps
// the newest Retain snapshots per document
type BackupService struct {
	sources  []string
	dir      string
	retain   int
	schedule string
	cron     *cron.Cron
	now      func() time.Time
}

// NewBackupService creates a backup service for the given document files
func NewBackupService(schedule, dir string, retain int, sources ...string) *BackupService {
	if retain < 1 {
		retain = 1
	}
	return &BackupService{
		sources:  sources,
		dir:      dir,
		retain:   retain,
		schedule: schedule,
		now:      time.Now,
	}
}

// WithClock replaces the time source (tests)
func (s *BackupService) WithClock(now func() time.Time) *BackupService {
	s.now = now
	return s
}

// Start schedules the backup job
func (s *BackupService) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.schedule, err)
	}
	s.cron = c
	c.Start()

	log.Printf("🚀 Backup cron started [%s] -> %s", s.schedule, s.dir)
	return nil
}

// Stop waits for a running backup to finish
func (s *BackupService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("🛑 Backup cron stopped")
}

func (s *BackupService) run() {
	written, err := s.RunOnce()
	if err != nil {
		log.Printf("❌ Backup failed: %v", err)
		return
	}
	log.Printf("✅ Backup completed: %d file(s)", len(written))
}

// RunOnce writes one gzip snapshot per source and prunes old ones.
// Missing sources are skipped.
func (s *BackupService) RunOnce() ([]string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	stamp := s.now().UTC().Format(backupTimeLayout)
	var written []string
	for _, src := range s.sources {
		out, err := s.snapshot(src, stamp)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return written, err
		}
		written = append(written, out)

		if err := s.prune(backupPrefix(src)); err != nil {
			return written, err
		}
	}
	return written, nil
}

func (s *BackupService) snapshot(src, stamp string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	target := filepath.Join(s.dir, backupPrefix(src)+stamp+".json.gz")
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", target, err)
	}

	zw := gzip.NewWriter(out)
	zw.Name = filepath.Base(src)
	zw.ModTime = s.now()

	if _, err := io.Copy(zw, in); err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("compress %s: %w", src, err)
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("compress %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return target, nil
}

// prune removes the oldest snapshots with prefix beyond the retain count
func (s *BackupService) prune(prefix string) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), ".json.gz") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= s.retain {
		return nil
	}

	// timestamps sort lexically
	sort.Strings(names)
	for _, name := range names[:len(names)-s.retain] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// backupPrefix turns data/gallery.json into "gallery-"
func backupPrefix(src string) string {
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + "-"
}
