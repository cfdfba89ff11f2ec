package backup

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fmeurer/tomate/internal/constants"
	"github.com/fmeurer/tomate/internal/logger"
)

// MaxBackups is how many rotated copies are kept before the oldest
// are pruned.
const MaxBackups = constants.MaxBackups

const timestampLayout = "20060102-150405"

// Manager copies the database file into a sibling backups directory
// and rotates old copies.
type Manager struct {
	dbPath    string
	backupDir string
}

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup copies the current database into the backup directory
// and prunes copies beyond MaxBackups. Returns the path of the new
// backup file.
func (m *Manager) CreateBackup() (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database not found at %s: %w", m.dbPath, err)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := time.Now().Format(timestampLayout)
	dst := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	// Two backups within the same second must not overwrite each other
	for i := 1; ; i++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, i, constants.BackupFileSuffix))
	}

	if err := copyFile(m.dbPath, dst); err != nil {
		return "", fmt.Errorf("failed to copy database: %w", err)
	}

	if err := m.rotate(); err != nil {
		// The backup itself succeeded; rotation failure is not fatal
		logger.Warn("backup rotation failed", "error", err)
	}

	return dst, nil
}

// ListBackups returns known backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	dirEntries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []Info
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		ts, ok := parseBackupName(de.Name())
		if !ok {
			continue
		}
		fi, err := de.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, de.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// RestoreBackup replaces the live database with the given backup
// file. A safety copy of the current database is taken first. The
// caller must close any open store before restoring.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}

	if err := Verify(backupPath); err != nil {
		return fmt.Errorf("backup failed verification: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		if _, err := m.CreateBackup(); err != nil {
			return fmt.Errorf("failed to back up current database before restore: %w", err)
		}
	}

	if err := copyFile(backupPath, m.dbPath); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

var sqliteMagic = []byte("SQLite format 3")

// Verify runs an integrity check on a SQLite backup file. Files
// without a SQLite header (a JSON store backup, for instance) are
// accepted as-is.
func Verify(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	header := make([]byte, len(sqliteMagic))
	_, readErr := io.ReadFull(f, header)
	f.Close()
	if readErr != nil || !bytes.Equal(header, sqliteMagic) {
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check could not run: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check reported: %s", result)
	}
	return nil
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for _, b := range backups[min(len(backups), MaxBackups):] {
		if err := os.Remove(b.Path); err != nil {
			return err
		}
	}
	return nil
}

func parseBackupName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	// Drop the collision counter, if any
	if parts := strings.Split(stamp, "-"); len(parts) > 2 {
		stamp = parts[0] + "-" + parts[1]
	}
	ts, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
