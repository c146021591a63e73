package backup

import (
	"archive/tar"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
)

// fixedNow pins the clock for the duration of a test
func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestFilesIdentical(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"identical", "ยืนยัน", "ยืนยัน", true},
		{"different content same size", "abc", "abd", false},
		{"different size", "abc", "abcd", false},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			a := filepath.Join(dir, "a")
			b := filepath.Join(dir, "b")
			writeFile(t, a, tt.a)
			writeFile(t, b, tt.b)

			got, err := filesIdentical(a, b)
			if err != nil {
				t.Fatalf("filesIdentical() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("filesIdentical() = %v, want %v", got, tt.expected)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a"), "x")
		if _, err := filesIdentical(filepath.Join(dir, "a"), filepath.Join(dir, "missing")); err == nil {
			t.Error("filesIdentical() should fail for a missing file")
		}
	})
}

func TestSHA256File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	writeFile(t, path, "hello")

	hash, err := sha256File(path)
	if err != nil {
		t.Fatalf("sha256File() error = %v", err)
	}
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if hash != want {
		t.Errorf("sha256File() = %s, want %s", hash, want)
	}

	if _, err := sha256File(filepath.Join(dir, "missing")); err == nil {
		t.Error("sha256File() should fail for a missing file")
	}
}

func TestFindLatestBackup(t *testing.T) {
	tests := []struct {
		name         string
		setupFiles   []string
		relPath      string
		expectedFile string
	}{
		{
			name:         "single backup exists",
			setupFiles:   []string{"Page.20260110_120000.tsx"},
			relPath:      "Page.tsx",
			expectedFile: "Page.20260110_120000.tsx",
		},
		{
			name: "multiple backups - return latest",
			setupFiles: []string{
				"Page.20260110_100000.tsx",
				"Page.20260110_150000.tsx",
				"Page.20260110_120000.tsx",
			},
			relPath:      "Page.tsx",
			expectedFile: "Page.20260110_150000.tsx",
		},
		{
			name:       "no backups exist",
			setupFiles: []string{},
			relPath:    "Page.tsx",
		},
		{
			name:       "different file - no match",
			setupFiles: []string{"Other.20260110_120000.tsx"},
			relPath:    "Page.tsx",
		},
		{
			name:       "not a timestamp",
			setupFiles: []string{"Page.backup.tsx"},
			relPath:    "Page.tsx",
		},
		{
			name: "nested path",
			setupFiles: []string{
				"src/pages/Page.20260110_100000.tsx",
				"src/pages/Page.20260110_150000.tsx",
			},
			relPath:      "src/pages/Page.tsx",
			expectedFile: "src/pages/Page.20260110_150000.tsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dayDir := t.TempDir()
			for _, file := range tt.setupFiles {
				writeFile(t, filepath.Join(dayDir, file), "backup")
			}

			result := findLatestBackup(dayDir, tt.relPath)

			want := ""
			if tt.expectedFile != "" {
				want = filepath.Join(dayDir, tt.expectedFile)
			}
			if result != want {
				t.Errorf("findLatestBackup() = %q, want %q", result, want)
			}
		})
	}
}

func TestCreateFileBackup(t *testing.T) {
	root := t.TempDir()
	backupDir := filepath.Join(root, ".thai-i18n", "backup")
	source := filepath.Join(root, "src", "pages", "Page.tsx")
	writeFile(t, source, "<p>ยืนยัน</p>")

	fixedNow(t, time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local))

	path, err := CreateFileBackup(source, backupDir, root)
	if err != nil {
		t.Fatalf("CreateFileBackup() error = %v", err)
	}
	want := filepath.Join(backupDir, "modified", "2026", "01", "10", "src", "pages", "Page.20260110_120000.tsx")
	if path != want {
		t.Errorf("CreateFileBackup() = %q, want %q", path, want)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(content) != "<p>ยืนยัน</p>" {
		t.Errorf("backup content = %q", content)
	}
}

func TestCreateFileBackup_Deduplication(t *testing.T) {
	root := t.TempDir()
	backupDir := filepath.Join(root, "backup")
	source := filepath.Join(root, "Page.tsx")
	writeFile(t, source, "original content")

	fixedNow(t, time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local))
	if path, err := CreateFileBackup(source, backupDir, root); err != nil || path == "" {
		t.Fatalf("first CreateFileBackup() = %q, %v", path, err)
	}

	// Identical content is skipped
	fixedNow(t, time.Date(2026, 1, 10, 12, 0, 1, 0, time.Local))
	path, err := CreateFileBackup(source, backupDir, root)
	if err != nil {
		t.Fatalf("second CreateFileBackup() error = %v", err)
	}
	if path != "" {
		t.Errorf("second CreateFileBackup() = %q, want skipped", path)
	}

	// Modified content creates a new backup
	writeFile(t, source, "modified content")
	fixedNow(t, time.Date(2026, 1, 10, 12, 0, 2, 0, time.Local))
	if path, err := CreateFileBackup(source, backupDir, root); err != nil || path == "" {
		t.Fatalf("third CreateFileBackup() = %q, %v", path, err)
	}

	entries, err := os.ReadDir(filepath.Join(backupDir, "modified", "2026", "01", "10"))
	if err != nil {
		t.Fatalf("failed to read backup directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 backup files, got %d", len(entries))
	}
}

func TestCreateFileBackup_NonexistentFile(t *testing.T) {
	root := t.TempDir()
	path, err := CreateFileBackup(filepath.Join(root, "missing.tsx"), filepath.Join(root, "backup"), root)
	if err != nil {
		t.Errorf("CreateFileBackup() error = %v", err)
	}
	if path != "" {
		t.Errorf("CreateFileBackup() = %q, want empty", path)
	}
}

func TestLatestAndRestore(t *testing.T) {
	root := t.TempDir()
	backupDir := filepath.Join(root, "backup")
	source := filepath.Join(root, "src", "Page.tsx")

	writeFile(t, source, "version 1")
	fixedNow(t, time.Date(2025, 12, 31, 9, 0, 0, 0, time.Local))
	if _, err := CreateFileBackup(source, backupDir, root); err != nil {
		t.Fatalf("CreateFileBackup() error = %v", err)
	}

	writeFile(t, source, "version 2")
	fixedNow(t, time.Date(2026, 1, 2, 9, 0, 0, 0, time.Local))
	if _, err := CreateFileBackup(source, backupDir, root); err != nil {
		t.Fatalf("CreateFileBackup() error = %v", err)
	}

	latest, err := Latest(backupDir, filepath.Join("src", "Page.tsx"))
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if filepath.Base(latest) != "Page.20260102_090000.tsx" {
		t.Errorf("Latest() = %q", latest)
	}

	writeFile(t, source, "version 3")
	fixedNow(t, time.Date(2026, 1, 3, 9, 0, 0, 0, time.Local))
	if _, err := Restore(backupDir, root, filepath.Join("src", "Page.tsx")); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	content, _ := os.ReadFile(source)
	if string(content) != "version 2" {
		t.Errorf("restored content = %q, want version 2", content)
	}

	// The overwritten version was kept
	undo, err := Latest(backupDir, filepath.Join("src", "Page.tsx"))
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	undoContent, _ := os.ReadFile(undo)
	if string(undoContent) != "version 3" {
		t.Errorf("latest backup after restore = %q, want version 3", undoContent)
	}
}

func TestRestoreSameSecond(t *testing.T) {
	root := t.TempDir()
	backupDir := filepath.Join(root, "backup")
	source := filepath.Join(root, "Page.tsx")

	fixedNow(t, time.Date(2026, 1, 2, 9, 0, 0, 0, time.Local))
	writeFile(t, source, "before")
	CreateFileBackup(source, backupDir, root)
	writeFile(t, source, "after")

	if _, err := Restore(backupDir, root, "Page.tsx"); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	content, _ := os.ReadFile(source)
	if string(content) != "before" {
		t.Errorf("restored content = %q, want before", content)
	}
}

func TestLatestNotFound(t *testing.T) {
	if _, err := Latest(t.TempDir(), "Page.tsx"); err == nil {
		t.Error("Latest() should fail without backups")
	}
}

func TestCleanup(t *testing.T) {
	backupDir := t.TempDir()
	oldFile := filepath.Join(backupDir, "modified", "2025", "01", "01", "Old.20250101_000000.tsx")
	newFile := filepath.Join(backupDir, "modified", "2026", "01", "10", "New.20260110_000000.tsx")
	writeFile(t, oldFile, "old")
	writeFile(t, newFile, "new")

	old := time.Now().AddDate(0, 0, -40)
	os.Chtimes(oldFile, old, old)

	if err := Cleanup(backupDir, 30); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("old backup should be removed")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Error("recent backup should be kept")
	}

	if err := Cleanup(backupDir, 0); err == nil {
		t.Error("Cleanup() should reject non-positive days")
	}
	if err := Cleanup(filepath.Join(backupDir, "missing"), 30); err != nil {
		t.Errorf("Cleanup() on missing dir error = %v", err)
	}
}

func TestArchiveOldBackups(t *testing.T) {
	backupDir := t.TempDir()
	writeFile(t, filepath.Join(backupDir, "modified", "2025", "12", "31", "Page.20251231_090000.tsx"), "december")
	writeFile(t, filepath.Join(backupDir, "modified", "2026", "01", "02", "Page.20260102_090000.tsx"), "january")

	fixedNow(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local))

	count, err := ArchiveOldBackups(backupDir)
	if err != nil {
		t.Fatalf("ArchiveOldBackups() error = %v", err)
	}
	if count != 1 {
		t.Errorf("ArchiveOldBackups() = %d, want 1", count)
	}

	if _, err := os.Stat(filepath.Join(backupDir, "modified", "2025")); !os.IsNotExist(err) {
		t.Error("archived year directory should be removed")
	}
	if _, err := os.Stat(filepath.Join(backupDir, "modified", "2026", "01")); err != nil {
		t.Error("current month should be kept")
	}

	archive := filepath.Join(backupDir, "archived", "2025-12-modified.tar.gz")
	f, err := os.Open(archive)
	if err != nil {
		t.Fatalf("archive missing: %v", err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	names := map[string]bool{}
	tr := tar.NewReader(gz)
	for {
		h, err := tr.Next()
		if err != nil {
			break
		}
		names[h.Name] = true
	}
	if !names["2025/12/31/Page.20251231_090000.tsx"] {
		t.Errorf("archive entries = %v", names)
	}

	// Second run finds nothing new
	count, err = ArchiveOldBackups(backupDir)
	if err != nil || count != 0 {
		t.Errorf("second ArchiveOldBackups() = %d, %v", count, err)
	}
}

func TestArchiveOldBackupsNoBackups(t *testing.T) {
	count, err := ArchiveOldBackups(t.TempDir())
	if err != nil || count != 0 {
		t.Errorf("ArchiveOldBackups() = %d, %v", count, err)
	}
}

func TestArchiveCheck(t *testing.T) {
	backupDir := filepath.Join(t.TempDir(), "backup")
	fixedNow(t, time.Now())

	if !ShouldRunArchive(backupDir) {
		t.Error("ShouldRunArchive() should be true without a check file")
	}
	if err := UpdateArchiveCheck(backupDir); err != nil {
		t.Fatalf("UpdateArchiveCheck() error = %v", err)
	}
	if ShouldRunArchive(backupDir) {
		t.Error("ShouldRunArchive() should be false right after a check")
	}

	fixedNow(t, time.Now().Add(25*time.Hour))
	if !ShouldRunArchive(backupDir) {
		t.Error("ShouldRunArchive() should be true after 24 hours")
	}
}

func TestArchiveCheckUnreadableStamp(t *testing.T) {
	backupDir := t.TempDir()
	writeFile(t, filepath.Join(backupDir, archiveCheckFile), "yesterday-ish\n")

	if !ShouldRunArchive(backupDir) {
		t.Error("ShouldRunArchive() should be true when the stamp cannot be parsed")
	}
}

func TestPastMonths(t *testing.T) {
	modified := t.TempDir()
	for _, dir := range []string{"2025/11", "2025/12", "2026/01", "2026/02", "notes/01"} {
		if err := os.MkdirAll(filepath.Join(modified, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(t, filepath.Join(modified, "2025", "10"), "not a directory")

	months, err := pastMonths(modified, "202601")
	if err != nil {
		t.Fatalf("pastMonths() error = %v", err)
	}

	var got []string
	for _, m := range months {
		got = append(got, m.archiveName())
	}
	want := []string{"2025-11-modified.tar.gz", "2025-12-modified.tar.gz"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("pastMonths() = %v, want %v", got, want)
	}
}

func TestVerifyArchiveCountMismatch(t *testing.T) {
	modified := t.TempDir()
	writeFile(t, filepath.Join(modified, "2025", "12", "01", "a.20251201_000000.tsx"), "a")
	writeFile(t, filepath.Join(modified, "2025", "12", "02", "b.20251202_000000.tsx"), "b")

	target := filepath.Join(t.TempDir(), "out.tar.gz")
	files, err := writeArchive(modified, month{year: "2025", month: "12"}, target)
	if err != nil {
		t.Fatalf("writeArchive() error = %v", err)
	}
	if files != 2 {
		t.Errorf("writeArchive() files = %d, want 2", files)
	}

	if err := verifyArchive(target, 2); err != nil {
		t.Errorf("verifyArchive() error = %v", err)
	}
	if err := verifyArchive(target, 3); err == nil {
		t.Error("verifyArchive() should fail on a count mismatch")
	}

	writeFile(t, target, "not gzip")
	if err := verifyArchive(target, 2); err == nil {
		t.Error("verifyArchive() should fail on a corrupt archive")
	}
}
