package common

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"
)

// SourcePattern matches the files scanned when a directory is named
const SourcePattern = "**/*.{ts,tsx,js,jsx}"

// ResolveFiles expands globs relative to root into a sorted, de-duplicated list of
// project-relative regular files. Paths matching any exclude glob are dropped.
func ResolveFiles(root string, globs, exclude []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, glob := range globs {
		matches, err := doublestar.Glob(filepath.Join(root, glob))
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", glob, err)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}

			rel, err := filepath.Rel(root, match)
			if err != nil {
				continue
			}

			excluded, err := isExcluded(rel, exclude)
			if err != nil {
				return nil, err
			}
			if excluded || seen[rel] {
				continue
			}

			seen[rel] = true
			files = append(files, rel)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ResolvePaths turns explicit file or directory arguments into project-relative
// files. Directories are expanded with SourcePattern.
func ResolvePaths(root string, paths, exclude []string) ([]string, error) {
	var globs []string
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, p)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", p, err)
		}

		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			globs = append(globs, filepath.Join(rel, SourcePattern))
		} else {
			globs = append(globs, rel)
		}
	}
	return ResolveFiles(root, globs, exclude)
}

func isExcluded(rel string, exclude []string) (bool, error) {
	slashed := filepath.ToSlash(rel)
	for _, pattern := range exclude {
		ok, err := doublestar.Match(pattern, slashed)
		if err != nil {
			return false, fmt.Errorf("invalid exclude glob %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// MatchAny reports whether the project-relative path matches one of globs
func MatchAny(rel string, globs []string) bool {
	slashed := filepath.ToSlash(rel)
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, slashed); ok {
			return true
		}
	}
	return false
}
