package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yejune/thai-i18n/internal/common"
	"github.com/yejune/thai-i18n/internal/config"
	"github.com/yejune/thai-i18n/internal/git"
	"github.com/yejune/thai-i18n/internal/hooks"
	"github.com/yejune/thai-i18n/internal/i18n"
)

var (
	initHook      bool
	initUninstall bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write .thai-i18n.yaml and install the pre-commit hook",
	Long: `Write a starter .thai-i18n.yaml at the project root and ignore the
backup directory in .gitignore.

With --hook a pre-commit hook is installed that runs 'thai-i18n scan --fail'
on the staged source files. Use --uninstall to remove it.

Examples:
  thai-i18n init               # Write the configuration
  thai-i18n init --hook        # Also install the pre-commit hook
  thai-i18n init --uninstall   # Remove the hook`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initHook, "hook", false, "Install the pre-commit hook")
	initCmd.Flags().BoolVar(&initUninstall, "uninstall", false, "Remove the pre-commit hook")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if rootLang != "" {
		i18n.SetLanguage(rootLang)
	}

	root, err := common.FindRoot(rootDir)
	if err != nil {
		return err
	}

	if initUninstall {
		repoRoot, err := git.GetRepoRootAt(root)
		if err != nil {
			return fmt.Errorf("not in a git repository: %w", err)
		}
		if err := hooks.Uninstall(repoRoot); err != nil {
			return fmt.Errorf("failed to uninstall hooks: %w", err)
		}
		fmt.Println(i18n.T("hooks_uninstalled"))
		return nil
	}

	if config.Exists(root) {
		fmt.Println(i18n.T("config_exists", config.FileName))
	} else {
		if err := config.Save(root, config.Default()); err != nil {
			return fmt.Errorf("failed to write %s: %w", config.FileName, err)
		}
		fmt.Println(i18n.T("config_written", config.FileName))
	}

	repoRoot, repoErr := git.GetRepoRootAt(root)
	if repoErr == nil {
		if err := git.AddPatternsToGitignore(repoRoot, []string{".thai-i18n/"}); err != nil {
			return fmt.Errorf("failed to update .gitignore: %w", err)
		}
	}

	if !initHook {
		return nil
	}
	if repoErr != nil {
		return fmt.Errorf("not in a git repository: %w", repoErr)
	}

	if hooks.IsInstalled(repoRoot) {
		fmt.Println(i18n.T("hooks_already_installed"))
		return nil
	}
	if err := hooks.Install(repoRoot); err != nil {
		return fmt.Errorf("failed to install hooks: %w", err)
	}

	fmt.Println(i18n.T("hooks_installed"))
	fmt.Println(i18n.T("hooks_scan_note"))
	return nil
}
