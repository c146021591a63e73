// Package git wraps the git commands thai-i18n needs around a project
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// run executes git in dir and returns its trimmed stdout
func run(dir string, args ...string) (string, error) {
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// IsRepo reports whether path is the top of a work tree.
// Linked worktrees have a .git file instead of a directory.
func IsRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// GetRepoRoot returns the top-level directory of the repository containing
// the working directory
func GetRepoRoot() (string, error) {
	return GetRepoRootAt("")
}

// GetRepoRootAt returns the top-level directory of the repository containing dir
func GetRepoRootAt(dir string) (string, error) {
	root, err := run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		if dir == "" {
			return "", fmt.Errorf("not a git repository")
		}
		return "", fmt.Errorf("not a git repository: %s", dir)
	}
	return root, nil
}

// HasChanges reports whether the work tree at path has staged, unstaged or
// untracked changes
func HasChanges(path string) (bool, error) {
	files, err := ChangedFiles(path)
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// ChangedFiles lists the paths in `git status`, relative to the repository root.
// A rename or copy is reported under its new path.
func ChangedFiles(path string) ([]string, error) {
	out, err := run(path, "status", "--porcelain", "-z")
	if err != nil {
		return nil, fmt.Errorf("git status failed in %s: %w", path, err)
	}

	var files []string
	entries := strings.Split(out, "\x00")
	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if len(entry) < 4 {
			continue
		}
		files = append(files, entry[3:])

		// -z puts the source path of R and C entries in the next field
		if entry[0] == 'R' || entry[0] == 'C' {
			i++
		}
	}
	return files, nil
}

// AddPatternsToGitignore appends the patterns missing from repoRoot/.gitignore
// under a "# thai-i18n" heading. Blank and comment patterns are ignored.
func AddPatternsToGitignore(repoRoot string, patterns []string) error {
	path := filepath.Join(repoRoot, ".gitignore")

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var b strings.Builder
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") || present[p] {
			continue
		}
		present[p] = true
		b.WriteString(p + "\n")
	}
	if b.Len() == 0 {
		return nil
	}

	section := "\n# thai-i18n\n" + b.String()
	if len(content) > 0 && content[len(content)-1] != '\n' {
		section = "\n" + section
	}
	if len(content) == 0 {
		section = strings.TrimPrefix(section, "\n")
	}

	return os.WriteFile(path, append(content, section...), 0644)
}
