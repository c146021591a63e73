package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/yejune/thai-i18n/internal/common"
	"github.com/yejune/thai-i18n/internal/config"
	"github.com/yejune/thai-i18n/internal/git"
	"github.com/yejune/thai-i18n/internal/i18n"
	"github.com/yejune/thai-i18n/internal/patch"
)

// applyOptions maps the shared write flags onto the project configuration
func applyOptions(cfg *config.Config, dryRun, interactive, noBackup bool) common.ApplyOptions {
	return common.ApplyOptions{
		DryRun:      dryRun,
		Interactive: interactive && !dryRun,
		Backup:      cfg.Backup.Enabled && !noBackup,
	}
}

// reportFile prints "Processing <file>... <outcome>" around a handler
func reportFile(doneKey string, applier *common.Applier, fn common.FileHandler) common.FileHandler {
	return func(rel, full string) (common.Outcome, error) {
		fmt.Print(i18n.T("processing_file", rel) + " ")

		outcome, err := fn(rel, full)
		switch {
		case errors.Is(err, common.ErrStopped):
			fmt.Println(i18n.T("file_skipped"))
		case err != nil:
			fmt.Println(color.RedString("%s", i18n.T("file_failed", err)))
		case outcome == common.Written:
			fmt.Println(color.GreenString("%s", i18n.T(doneKey)))
		case outcome == common.WouldWrite:
			diff := applier.LastDiff()
			added, removed := patch.Stat(diff)
			fmt.Println(color.YellowString("%s", i18n.T("file_would_update", added, removed)))
			fmt.Print(patch.Colorize(diff))
		case outcome == common.Skipped:
			fmt.Println(i18n.T("file_skipped"))
		default:
			fmt.Println(i18n.T("file_no_changes"))
		}
		return outcome, err
	}
}

// printSummary prints the "Completed! n/m" line of a run
func printSummary(key string, s *common.Summary) {
	fmt.Println()
	fmt.Println(i18n.T(key, s.Updated, s.Total))
	if s.Failed > 0 {
		fmt.Println(color.RedString("%s", i18n.T("files_failed", s.Failed)))
	}
	if s.Stopped {
		fmt.Println(i18n.T("stopped_by_user"))
	}
}

// warnUncommitted prints a warning when the project has uncommitted changes
func warnUncommitted(root string) {
	if !git.IsRepo(root) {
		return
	}
	if dirty, err := git.HasChanges(root); err == nil && dirty {
		fmt.Println(color.YellowString("%s", i18n.T("uncommitted_warn", root)))
	}
}

// writePatch saves the run's diffs when --patch is set
func writePatch(path string, applier *common.Applier) error {
	if path == "" || len(applier.Diffs()) == 0 {
		return nil
	}
	return patch.Write(path, applier.Diffs())
}
