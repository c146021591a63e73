// Package backup keeps timestamped copies of source files before they are rewritten
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// timestampLayout is embedded in every backup file name
const timestampLayout = "20060102_150405"

// now is overridden in tests
var now = time.Now

// CreateFileBackup backs up the entire file with timestamp
// Backup structure: backup/modified/yyyy/mm/dd/sub-path/file.yyyymmdd_hhmmss.ext
// Returns the backup path, or "" when the file is missing or today's latest backup
// already holds the same content.
func CreateFileBackup(filePath, backupDir, root string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", nil // No file to backup
	}

	t := now()

	relPath := filePath
	if filepath.IsAbs(filePath) {
		var err error
		relPath, err = filepath.Rel(root, filePath)
		if err != nil {
			relPath = filePath
		}
	}

	todayDir := filepath.Join(backupDir, "modified", t.Format("2006"), t.Format("01"), t.Format("02"))

	// Skip when nothing changed since the last backup today
	if latest := findLatestBackup(todayDir, relPath); latest != "" {
		same, err := filesIdentical(filePath, latest)
		if err == nil && same {
			return "", nil
		}
	}

	backupPath := timestamped(filepath.Join(todayDir, relPath), t)

	if err := os.MkdirAll(filepath.Dir(backupPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if err := copyFile(filePath, backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

// timestamped turns dir/file.ext into dir/file.yyyymmdd_hhmmss.ext
func timestamped(path string, t time.Time) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s.%s%s", name, t.Format(timestampLayout), ext))
}

// backupStamp returns the timestamp of a backup file name for relPath's base name,
// or "" when the name is not a backup of it
func backupStamp(fileName, base string) string {
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if !strings.HasPrefix(fileName, name+".") || !strings.HasSuffix(fileName, ext) {
		return ""
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(fileName, name+"."), ext)
	if _, err := time.Parse(timestampLayout, stamp); err != nil {
		return ""
	}
	return stamp
}

// findLatestBackup returns the newest backup of relPath inside one day directory
func findLatestBackup(dayDir, relPath string) string {
	dir := filepath.Join(dayDir, filepath.Dir(relPath))
	base := filepath.Base(relPath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	latest, latestStamp := "", ""
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stamp := backupStamp(e.Name(), base)
		if stamp == "" {
			continue
		}
		if stamp > latestStamp {
			latest, latestStamp = filepath.Join(dir, e.Name()), stamp
		}
	}
	return latest
}

// Latest returns the newest backup of relPath across all days
func Latest(backupDir, relPath string) (string, error) {
	modified := filepath.Join(backupDir, "modified")
	days, err := filepath.Glob(filepath.Join(modified, "*", "*", "*"))
	if err != nil {
		return "", err
	}
	// yyyy/mm/dd sorts chronologically
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	for _, day := range days {
		if latest := findLatestBackup(day, relPath); latest != "" {
			return latest, nil
		}
	}
	return "", fmt.Errorf("no backup found for %s", relPath)
}

// Restore copies the newest backup of relPath back over root/relPath.
// The current content is backed up first so a restore can be undone.
func Restore(backupDir, root, relPath string) (string, error) {
	latest, err := Latest(backupDir, relPath)
	if err != nil {
		return "", err
	}

	// Read first: backing up the current file may reuse the same timestamped name
	content, err := os.ReadFile(latest)
	if err != nil {
		return "", fmt.Errorf("failed to read backup: %w", err)
	}

	target := filepath.Join(root, relPath)
	if _, err := CreateFileBackup(target, backupDir, root); err != nil {
		return "", fmt.Errorf("failed to back up current %s: %w", relPath, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, content, mode); err != nil {
		return "", err
	}
	return latest, nil
}

// Cleanup removes backups older than specified days
func Cleanup(backupDir string, days int) error {
	if days <= 0 {
		return fmt.Errorf("days must be positive")
	}

	if _, err := os.Stat(backupDir); os.IsNotExist(err) {
		return nil
	}

	cutoffTime := now().AddDate(0, 0, -days)

	return filepath.Walk(backupDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if info.ModTime().Before(cutoffTime) {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove old backup %s: %w", path, err)
			}
		}

		return nil
	})
}

// sha256File returns the hex digest of a file
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// filesIdentical compares two files by size, then by digest
func filesIdentical(a, b string) (bool, error) {
	infoA, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	hashA, err := sha256File(a)
	if err != nil {
		return false, err
	}
	hashB, err := sha256File(b)
	if err != nil {
		return false, err
	}
	return hashA == hashB, nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}

	// Sync to ensure data is written to disk
	if err := destFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}

	return nil
}
