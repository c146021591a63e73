package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yejune/thai-i18n/internal/common"
	"github.com/yejune/thai-i18n/internal/i18n"
	"github.com/yejune/thai-i18n/internal/logger"
	"github.com/yejune/thai-i18n/internal/repair"
	"github.com/yejune/thai-i18n/internal/source"
)

var (
	fixDryRun      bool
	fixInteractive bool
	fixNoBackup    bool
	fixGlobs       []string
	fixPatch       string
)

var fixCmd = &cobra.Command{
	Use:   "fix [syntax|braces|all]",
	Short: "Repair t() calls left in expression position",
	Long: `Repair the malformed t() wiring a translate run can leave behind:
{t("key")} used as an object value, a ternary branch or a call argument,
and stray closing braces after t("key").

  syntax  {t(...)} where an expression is expected (pages and components)
  braces  stray } after t("key") (all of src)
  all     braces, then syntax (default)

Examples:
  thai-i18n fix                         # Both rule sets on their default files
  thai-i18n fix braces --dry-run        # Show what the braces rules would change
  thai-i18n fix syntax --glob 'src/app/**/*.tsx'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVarP(&fixDryRun, "dry-run", "n", false, "Show diffs without writing files")
	fixCmd.Flags().BoolVarP(&fixInteractive, "interactive", "i", false, "Confirm each file before writing")
	fixCmd.Flags().BoolVar(&fixNoBackup, "no-backup", false, "Do not back up files before writing")
	fixCmd.Flags().StringSliceVar(&fixGlobs, "glob", nil, "Override the rule sets' file globs")
	fixCmd.Flags().StringVar(&fixPatch, "patch", "", "Also write all diffs to this patch file")
	rootCmd.AddCommand(fixCmd)
}

// ruleSets resolves a fix target to the rule sets it runs, in order
func ruleSets(name string) ([]repair.RuleSet, error) {
	names := []string{name}
	if name == "" || name == "all" {
		names = []string{"braces", "syntax"}
	}

	sets := make([]repair.RuleSet, 0, len(names))
	for _, n := range names {
		rs, err := repair.Get(n)
		if err != nil {
			return nil, fmt.Errorf("%s", i18n.T("unknown_rule_set", n))
		}
		sets = append(sets, rs)
	}
	return sets, nil
}

// repairContent runs every rule set in order and merges their hits by rule
func repairContent(rel, content string, sets []repair.RuleSet) (string, []repair.Hit) {
	var all []repair.Hit
	for _, rs := range sets {
		var hits []repair.Hit
		content, hits = rs.Apply(content)
		for _, h := range hits {
			logger.Debug("rule fired",
				zap.String("set", rs.Name),
				zap.String("rule", h.Rule),
				zap.String("path", rel),
				zap.Int("count", h.Count))
		}
		all = append(all, hits...)
	}
	return content, all
}

func runFix(cmd *cobra.Command, args []string) error {
	target := "all"
	if len(args) > 0 {
		target = strings.ToLower(args[0])
	}

	sets, err := ruleSets(target)
	if err != nil {
		return err
	}

	ctx, err := loadProject()
	if err != nil {
		return err
	}

	globs := fixGlobs
	if len(globs) == 0 {
		for _, rs := range sets {
			globs = append(globs, rs.Globs...)
		}
	}

	files, err := common.ResolveFiles(ctx.Root, globs, ctx.Config.Exclude)
	if err != nil {
		return err
	}

	fmt.Println(i18n.T("profile_header", target, i18n.T("found_files", len(files))))
	if len(files) == 0 {
		return nil
	}
	if fixDryRun {
		fmt.Println(i18n.T("dry_run_notice"))
	} else {
		warnUncommitted(ctx.Root)
	}
	fmt.Println(i18n.T("processing_files"))
	fmt.Println()

	applier := ctx.NewApplier(applyOptions(ctx.Config, fixDryRun, fixInteractive, fixNoBackup))
	defer applier.Finish()

	totals := map[string]int{}
	var order []string

	summary := ctx.ForEachFileWithContinue(files, reportFile("file_fixed", applier, func(rel, full string) (common.Outcome, error) {
		// Each set only touches its own files unless --glob widened the run
		var applicable []repair.RuleSet
		for _, rs := range sets {
			if len(fixGlobs) > 0 || common.MatchAny(rel, rs.Globs) {
				applicable = append(applicable, rs)
			}
		}

		content, err := source.Read(full, ctx.Config.Encoding)
		if err != nil {
			return common.Failed, err
		}

		out, hits := repairContent(rel, content, applicable)
		for _, h := range hits {
			if _, seen := totals[h.Rule]; !seen {
				order = append(order, h.Rule)
			}
			totals[h.Rule] += h.Count
		}

		return applier.ApplyChange(rel, content, out)
	}))

	printSummary("completed_fixed", summary)
	if len(order) > 0 {
		fmt.Println()
	}
	for _, rule := range order {
		fmt.Println(i18n.T("rule_hits", rule, totals[rule]))
	}

	return writePatch(fixPatch, applier)
}
