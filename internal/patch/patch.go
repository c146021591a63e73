// Package patch renders unified diffs of rewritten files
package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// contextLines around each hunk
const contextLines = 3

// Unified returns a unified diff between before and after for one file.
// Returns "" when the contents are equal.
func Unified(file, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + filepath.ToSlash(file),
		ToFile:   "b/" + filepath.ToSlash(file),
		Context:  contextLines,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", file, err)
	}
	return text, nil
}

// Colorize highlights added, removed and hunk header lines
func Colorize(diff string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(color.CyanString("%s", line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(color.RedString("%s", line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

// Stat counts added and removed lines, ignoring file headers
func Stat(diff string) (added, removed int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

// Write saves diffs to patchPath as a single patch file
func Write(patchPath string, diffs []string) error {
	if patchPath == "" {
		return fmt.Errorf("patchPath cannot be empty")
	}

	// Ensure patch directory exists
	if err := os.MkdirAll(filepath.Dir(patchPath), 0755); err != nil {
		return fmt.Errorf("failed to create patch directory: %w", err)
	}

	if err := os.WriteFile(patchPath, []byte(strings.Join(diffs, "")), 0644); err != nil {
		return fmt.Errorf("failed to write patch file: %w", err)
	}
	return nil
}
