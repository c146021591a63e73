// Package hooks handles git hooks installation
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
)

const hookName = "pre-commit"

const preCommitHook = `#!/bin/sh
# thai-i18n pre-commit hook
# Blocks commits that add hard-coded Thai text to staged sources

if ! command -v thai-i18n >/dev/null 2>&1; then
    exit 0
fi

FILES=$(git diff --cached --name-only --diff-filter=ACM -- '*.ts' '*.tsx' '*.js' '*.jsx')
if [ -z "$FILES" ]; then
    exit 0
fi

exec thai-i18n scan --fail $FILES
`

func hookPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", "hooks", hookName)
}

// Install installs the pre-commit hook in the repository.
// An existing pre-commit hook that is not ours is left alone and reported.
func Install(repoRoot string) error {
	path := hookPath(repoRoot)

	content, err := os.ReadFile(path)
	if err == nil && string(content) != preCommitHook {
		return fmt.Errorf("a different %s hook already exists: %s", hookName, path)
	}

	// Ensure hooks directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(preCommitHook), 0755)
}

// Uninstall removes the pre-commit hook from the repository
func Uninstall(repoRoot string) error {
	content, err := os.ReadFile(hookPath(repoRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// Only remove if it's our hook
	if string(content) == preCommitHook {
		return os.Remove(hookPath(repoRoot))
	}

	return nil
}

// IsInstalled checks if the hook is installed
func IsInstalled(repoRoot string) bool {
	content, err := os.ReadFile(hookPath(repoRoot))
	if err != nil {
		return false
	}
	return string(content) == preCommitHook
}
