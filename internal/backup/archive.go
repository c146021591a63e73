package backup

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/yejune/thai-i18n/internal/logger"
)

// archiveCheckFile holds the RFC 3339 time of the last archive pass
const archiveCheckFile = ".last-archive-check"

// archiveInterval is the minimum time between automatic archive passes
const archiveInterval = 24 * time.Hour

// month is one modified/yyyy/mm directory
type month struct {
	year, month string
}

func (m month) archiveName() string {
	return fmt.Sprintf("%s-%s-modified.tar.gz", m.year, m.month)
}

// pastMonths lists the month directories under modifiedDir older than current (yyyymm)
func pastMonths(modifiedDir, current string) ([]month, error) {
	dirs, err := filepath.Glob(filepath.Join(modifiedDir, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]"))
	if err != nil {
		return nil, err
	}

	var months []month
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		m := month{year: filepath.Base(filepath.Dir(dir)), month: filepath.Base(dir)}
		if m.year+m.month >= current {
			continue
		}
		months = append(months, m)
	}
	return months, nil
}

// ArchiveOldBackups packs every month of modified/ before the current one into
// archived/YYYY-MM-modified.tar.gz and removes the month directory once the
// archive reads back with the same number of files.
// Returns the number of months archived.
func ArchiveOldBackups(backupDir string) (int, error) {
	modifiedDir := filepath.Join(backupDir, "modified")
	archivedDir := filepath.Join(backupDir, "archived")

	months, err := pastMonths(modifiedDir, now().Format("200601"))
	if err != nil {
		return 0, fmt.Errorf("failed to list backup months: %w", err)
	}

	archived := 0
	for _, m := range months {
		target := filepath.Join(archivedDir, m.archiveName())
		if _, err := os.Stat(target); err == nil {
			logger.Debug("archive already exists", zap.String("archive", m.archiveName()))
			continue
		}

		if err := os.MkdirAll(archivedDir, 0755); err != nil {
			return archived, fmt.Errorf("failed to create archived directory: %w", err)
		}

		files, err := writeArchive(modifiedDir, m, target)
		if err == nil {
			err = verifyArchive(target, files)
		}
		if err != nil {
			os.Remove(target)
			return archived, fmt.Errorf("failed to archive %s: %w", m.archiveName(), err)
		}

		if err := os.RemoveAll(filepath.Join(modifiedDir, m.year, m.month)); err != nil {
			return archived, fmt.Errorf("failed to remove archived backups: %w", err)
		}
		// Only succeeds once the year has no months left
		os.Remove(filepath.Join(modifiedDir, m.year))

		logger.Info("archived backups", zap.String("archive", m.archiveName()), zap.Int("files", files))
		archived++
	}

	return archived, nil
}

// writeArchive writes baseDir/yyyy/mm into a tar.gz at target with entry names
// relative to baseDir. Returns the number of regular files written.
func writeArchive(baseDir string, m month, target string) (int, error) {
	f, err := os.Create(target)
	if err != nil {
		return 0, err
	}
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	files := 0
	walkErr := filepath.WalkDir(filepath.Join(baseDir, m.year, m.month), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		files++
		return copyInto(tw, path)
	})

	// tar, then gzip, then the file: each close flushes into the next
	closeErrs := []error{tw.Close(), gz.Close(), f.Close()}
	if walkErr != nil {
		return files, walkErr
	}
	for _, err := range closeErrs {
		if err != nil {
			return files, err
		}
	}
	return files, nil
}

func copyInto(w io.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(w, src)
	return err
}

// verifyArchive reads every entry back and checks the regular file count
func verifyArchive(path string, want int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("invalid gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	got := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("corrupt tar entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if _, err := io.Copy(io.Discard, tr); err != nil {
			return fmt.Errorf("corrupt entry %s: %w", hdr.Name, err)
		}
		got++
	}

	if got != want {
		return fmt.Errorf("archive holds %d files, wrote %d", got, want)
	}
	return nil
}

// ShouldRunArchive reports whether a day has passed since the last archive pass
func ShouldRunArchive(backupDir string) bool {
	data, err := os.ReadFile(filepath.Join(backupDir, archiveCheckFile))
	if err != nil {
		return true
	}
	last, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		return true
	}
	return now().Sub(last) >= archiveInterval
}

// UpdateArchiveCheck records now as the last archive pass
func UpdateArchiveCheck(backupDir string) error {
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	stamp := now().Format(time.RFC3339) + "\n"
	return os.WriteFile(filepath.Join(backupDir, archiveCheckFile), []byte(stamp), 0644)
}
