// Package cmd implements the CLI commands for thai-i18n
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yejune/thai-i18n/internal/common"
	"github.com/yejune/thai-i18n/internal/i18n"
	"github.com/yejune/thai-i18n/internal/logger"
)

var (
	// Version is set at build time via -ldflags
	Version = "dev"
	// Root persistent flags
	rootConfig    string
	rootLang      string
	rootLogLevel  string
	rootLogFormat string
	rootDir       string
)

var rootCmd = &cobra.Command{
	Use:   "thai-i18n",
	Short: "Move hard-coded Thai UI text into t() translation lookups",
	Long: `thai-i18n rewrites hard-coded Thai strings in React/TypeScript sources into
t("namespace:key") lookups, wiring the useTranslation import and hook as needed.

Quick usage:
  thai-i18n translate              # Run the member, public and components profiles
  thai-i18n translate --dry-run    # Show what would change
  thai-i18n fix                    # Repair malformed t() wiring
  thai-i18n scan src               # Report Thai text still in the code

Commands:
  translate  Replace dictionary phrases with t() calls
  fix        Repair t() calls left in expression position
  scan       Report hard-coded Thai text
  dict       Inspect the phrase dictionaries
  profiles   List the translate profiles
  init       Write .thai-i18n.yaml and install the pre-commit hook
  backup     Clean, archive or restore file backups`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&rootConfig, "config", "", "Configuration file (default: <root>/.thai-i18n.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootLang, "lang", "", "Message language: en or th")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "Log format: console or json")
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "Project root (default: git top-level or working directory)")
}

// loadProject loads the project context and applies the root flags over its configuration
func loadProject() (*common.ProjectContext, error) {
	ctx, err := common.LoadProjectContext(rootDir, rootConfig)
	if err != nil {
		return nil, err
	}

	level := ctx.Config.Log.Level
	if rootLogLevel != "" {
		level = rootLogLevel
	}
	format := ctx.Config.Log.Format
	if rootLogFormat != "" {
		format = rootLogFormat
	}
	if err := logger.Init(level, format); err != nil {
		return nil, err
	}

	if rootLang != "" {
		i18n.SetLanguage(rootLang)
	}

	return ctx, nil
}

// osExit is a variable that can be overridden in tests
var osExit = os.Exit

// Execute runs the root command and exits with code 1 on error
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}
