package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yejune/thai-i18n/internal/common"
	"github.com/yejune/thai-i18n/internal/i18n"
	"github.com/yejune/thai-i18n/internal/logger"
	"github.com/yejune/thai-i18n/internal/scan"
	"github.com/yejune/thai-i18n/internal/source"
)

var (
	scanFormat string
	scanFail   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Report hard-coded Thai text",
	Long: `Report Thai text still hard-coded in string literals and JSX text nodes.
Directories are searched for .ts, .tsx, .js and .jsx files; without paths
the project's src directory (or the root) is scanned.

Phrases that exist in a dictionary are shown with their key.

Examples:
  thai-i18n scan                        # Scan src/
  thai-i18n scan src/pages --format json
  thai-i18n scan --fail $(git diff --name-only --cached)`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "text", "Output format: text, json or yaml")
	scanCmd.Flags().BoolVar(&scanFail, "fail", false, "Exit with an error when Thai text is found")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	switch scanFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", scanFormat)
	}

	ctx, err := loadProject()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
		if info, err := os.Stat(filepath.Join(ctx.Root, "src")); err == nil && info.IsDir() {
			paths = []string{"src"}
		}
	}

	files, err := common.ResolvePaths(ctx.Root, paths, ctx.Config.Exclude)
	if err != nil {
		return err
	}

	if len(files) == 0 && scanFormat == "text" {
		fmt.Println(i18n.T("no_files_matched"))
		return nil
	}

	dict := ctx.Registry.Combined()
	var hits []scan.Hit

	summary := ctx.ForEachFileWithContinue(files, func(rel, full string) (common.Outcome, error) {
		content, err := source.Read(full, ctx.Config.Encoding)
		if err != nil {
			return common.Failed, err
		}
		found := scan.Content(rel, content, dict)
		logger.Debug("scanned", zap.String("path", rel), zap.Int("hits", len(found)))
		hits = append(hits, found...)
		return common.Unchanged, nil
	})

	if err := scan.Write(os.Stdout, scanFormat, hits); err != nil {
		return err
	}

	total, known := scan.Summary(hits)
	if scanFormat == "text" {
		if total == 0 {
			fmt.Println(color.GreenString("%s", i18n.T("scan_clean")))
		} else {
			fmt.Println()
			fmt.Println(i18n.T("scan_summary", total, known))
		}
		if summary.Failed > 0 {
			fmt.Println(color.RedString("%s", i18n.T("files_failed", summary.Failed)))
		}
	}

	if scanFail && total > 0 {
		return fmt.Errorf("%s", i18n.T("scan_failed", total))
	}
	return nil
}
