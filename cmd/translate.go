package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yejune/thai-i18n/internal/common"
	"github.com/yejune/thai-i18n/internal/i18n"
	"github.com/yejune/thai-i18n/internal/interactive"
	"github.com/yejune/thai-i18n/internal/logger"
	"github.com/yejune/thai-i18n/internal/repair"
	"github.com/yejune/thai-i18n/internal/source"
	"github.com/yejune/thai-i18n/internal/translate"
)

var (
	translateDryRun      bool
	translateInteractive bool
	translateNoBackup    bool
	translateFix         bool
	translateGlobs       []string
	translateDict        string
	translatePatch       string
)

var translateCmd = &cobra.Command{
	Use:   "translate [profile...]",
	Short: "Replace Thai phrases with t() lookups",
	Long: `Replace every dictionary phrase in the profile's files with a t("key") lookup,
adding the useTranslation import and hook call to components that lack them.

Without a profile the member, public and components profiles run in order.

Examples:
  thai-i18n translate                      # Default profiles
  thai-i18n translate files                # The files profile only
  thai-i18n translate --dry-run            # Show diffs, write nothing
  thai-i18n translate -i                   # Pick profiles and confirm each file
  thai-i18n translate member --fix         # Translate, then repair t() wiring
  thai-i18n translate public --glob 'src/pages/help/*.tsx' --dict public`,
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().BoolVarP(&translateDryRun, "dry-run", "n", false, "Show diffs without writing files")
	translateCmd.Flags().BoolVarP(&translateInteractive, "interactive", "i", false, "Choose profiles and confirm each file")
	translateCmd.Flags().BoolVar(&translateNoBackup, "no-backup", false, "Do not back up files before writing")
	translateCmd.Flags().BoolVar(&translateFix, "fix", false, "Run the braces and syntax repairs after translating")
	translateCmd.Flags().StringSliceVar(&translateGlobs, "glob", nil, "Override the profile's file globs")
	translateCmd.Flags().StringVar(&translateDict, "dict", "", "Override the profile's dictionary")
	translateCmd.Flags().StringVar(&translatePatch, "patch", "", "Also write all diffs to this patch file")
	rootCmd.AddCommand(translateCmd)
}

// selectProfiles is replaced in tests
var selectProfiles = interactive.SelectProfiles

func profileNames(profiles map[string]translate.Profile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx, err := loadProject()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = translate.DefaultProfileOrder
		if translateInteractive && !translateDryRun {
			names, err = selectProfiles(profileNames(ctx.Profiles), translate.DefaultProfileOrder)
			if err != nil {
				return err
			}
		}
	}
	for _, name := range names {
		if _, ok := ctx.Profiles[name]; !ok {
			return fmt.Errorf("%s", i18n.T("unknown_profile", name))
		}
	}

	var fixSets []repair.RuleSet
	if translateFix {
		if fixSets, err = ruleSets("all"); err != nil {
			return err
		}
	}

	if translateDryRun {
		fmt.Println(i18n.T("dry_run_notice"))
	} else {
		warnUncommitted(ctx.Root)
	}

	applier := ctx.NewApplier(applyOptions(ctx.Config, translateDryRun, translateInteractive, translateNoBackup))
	defer applier.Finish()

	total := &common.Summary{}

	for i, name := range names {
		if i > 0 {
			fmt.Println()
		}

		p := ctx.Profiles[name]
		if len(translateGlobs) > 0 {
			p.Globs = translateGlobs
		}
		if translateDict != "" {
			p.Dictionary = translateDict
		}

		dict, err := ctx.Registry.Get(p.Dictionary)
		if err != nil {
			return err
		}
		rw, err := translate.NewRewriter(p, dict, ctx.Config.Translate)
		if err != nil {
			return err
		}
		files, err := common.ResolveFiles(ctx.Root, p.Globs, ctx.Config.Exclude)
		if err != nil {
			return err
		}

		fmt.Println(i18n.T("profile_header", name, i18n.T("found_files", len(files))))
		if len(files) == 0 {
			continue
		}
		fmt.Println(i18n.T("processing_files"))
		fmt.Println()

		summary := ctx.ForEachFileWithContinue(files, reportFile("file_updated", applier, func(rel, full string) (common.Outcome, error) {
			content, err := source.Read(full, ctx.Config.Encoding)
			if err != nil {
				return common.Failed, err
			}

			res := rw.Rewrite(rel, content)
			out := res.Content
			logger.Debug("rewritten",
				zap.String("profile", rw.Profile().Name),
				zap.String("path", rel),
				zap.Int("replacements", res.Replacements),
				zap.Bool("import", res.ImportAdded),
				zap.Bool("hook", res.HookAdded))

			if translateFix {
				out, _ = repairContent(rel, out, fixSets)
			}

			return applier.ApplyChange(rel, content, out)
		}))

		printSummary("completed", summary)
		total.Add(summary)
		if summary.Stopped {
			break
		}
	}

	if err := total.Err(); err != nil {
		logger.Debug("translate finished with failures", zap.Int("failed", total.Failed), zap.Error(err))
	}
	if len(names) > 1 {
		fmt.Println()
		fmt.Println(i18n.T("total_summary", total.Updated, total.Total, len(names)))
	}

	return writePatch(translatePatch, applier)
}
