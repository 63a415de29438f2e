package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wagner-austin/signal-bot/internal/logging"
)

// sqliteHeader is the 16-byte signature every valid SQLite file starts with.
var sqliteHeader = []byte("SQLite format 3\x00")

// BackupManager snapshots the database file and enforces a retention policy.
type BackupManager struct {
	store     *Store
	dir       string
	retention int

	// OnCreate, when set, is called after every successful snapshot,
	// including ones taken by the periodic loop.
	OnCreate func()
}

// NewBackupManager returns a manager writing snapshots to a "backups"
// directory next to the database file.
func NewBackupManager(s *Store, retention int) *BackupManager {
	return &BackupManager{
		store:     s,
		dir:       filepath.Join(filepath.Dir(s.Path()), "backups"),
		retention: retention,
	}
}

// Dir returns the backup directory.
func (b *BackupManager) Dir() string { return b.dir }

// Create snapshots the database and prunes old backups per the retention
// count. Returns the path of the new backup.
func (b *BackupManager) Create() (string, error) {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// WAL content has to land in the main file before copying it.
	b.store.mu.Lock()
	_, err := b.store.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	b.store.mu.Unlock()
	if err != nil {
		logging.Backup("wal checkpoint before backup failed: %v", err)
	}

	path := filepath.Join(b.dir, b.nextFilename())
	if err := copyFile(b.store.Path(), path); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	b.Cleanup()
	logging.Backup("backup created at %s", path)
	if b.OnCreate != nil {
		b.OnCreate()
	}
	return path, nil
}

// nextFilename builds a timestamped name, appending a numeric suffix when
// several backups land in the same second.
func (b *BackupManager) nextFilename() string {
	base := "backup_" + time.Now().Format("20060102_150405")
	name := base + ".db"
	for suffix := 1; ; suffix++ {
		if _, err := os.Stat(filepath.Join(b.dir, name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s_%d.db", base, suffix)
	}
}

// List returns backup filenames sorted oldest first. Timestamped names sort
// chronologically.
func (b *BackupManager) List() []string {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".db") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Cleanup removes the oldest backups beyond the retention count. A
// retention of zero removes everything.
func (b *BackupManager) Cleanup() {
	names := b.List()
	keep := b.retention
	if keep < 0 {
		keep = 0
	}
	for len(names) > keep {
		oldest := names[0]
		names = names[1:]
		if err := os.Remove(filepath.Join(b.dir, oldest)); err != nil {
			logging.Backup("failed to remove old backup %s: %v", oldest, err)
		}
	}
}

// Restore replaces the live database file with the named backup. It refuses
// files missing the SQLite signature or truncated to just a header. The
// store must be reopened afterwards.
func (b *BackupManager) Restore(name string) error {
	path := filepath.Join(b.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("backup %s not found: %w", name, err)
	}
	header := make([]byte, 16)
	n, _ := io.ReadFull(f, header)
	f.Close()
	if n < 16 || !bytes.Equal(header, sqliteHeader) {
		return fmt.Errorf("backup %s is not a valid SQLite file", name)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() <= 16 {
		return fmt.Errorf("backup %s is truncated", name)
	}

	if err := copyFile(path, b.store.Path()); err != nil {
		return fmt.Errorf("failed to restore backup %s: %w", name, err)
	}
	logging.Backup("restored database from %s", name)
	return nil
}

// RunPeriodic creates a backup every interval until the context is
// cancelled. Failures are logged and the loop continues.
func (b *BackupManager) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := b.Create(); err != nil {
				logging.Backup("periodic backup failed: %v", err)
			}
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
