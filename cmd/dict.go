package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yejune/thai-i18n/internal/common"
	"github.com/yejune/thai-i18n/internal/dictionary"
	"github.com/yejune/thai-i18n/internal/i18n"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Inspect the phrase dictionaries",
	Long: `Inspect the phrase dictionaries used by translate and scan.

Builtin tables (member, public, components, files) can be replaced or
extended through the dictionaries section of .thai-i18n.yaml.

Examples:
  thai-i18n dict list                   # Every table with its size
  thai-i18n dict list member            # The member table's entries
  thai-i18n dict check                  # Validate every table's keys
  thai-i18n dict check i18n/extra.yaml  # Validate a file before adding it
  thai-i18n dict export public > public.yaml`,
}

var dictListCmd = &cobra.Command{
	Use:   "list [table]",
	Short: "List dictionaries or one dictionary's entries",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDictList,
}

var dictCheckCmd = &cobra.Command{
	Use:   "check [table|file...]",
	Short: "Check that every key is a valid namespace:key",
	RunE:  runDictCheck,
}

var dictExportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Print a dictionary as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictExport,
}

func init() {
	dictCmd.AddCommand(dictListCmd)
	dictCmd.AddCommand(dictCheckCmd)
	dictCmd.AddCommand(dictExportCmd)
	rootCmd.AddCommand(dictCmd)
}

// dictSource describes where a table comes from
func dictSource(ctx *common.ProjectContext, name string) string {
	if path, ok := ctx.Config.Dictionaries[name]; ok {
		return path
	}
	return i18n.T("dict_builtin")
}

func runDictList(cmd *cobra.Command, args []string) error {
	ctx, err := loadProject()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		d, err := ctx.Registry.Get(args[0])
		if err != nil {
			return err
		}
		for _, e := range d.Entries() {
			fmt.Printf("%s\t%s\n", e.Key, e.Phrase)
		}
		return nil
	}

	for _, name := range ctx.Registry.Names() {
		d, err := ctx.Registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Println(i18n.T("dict_row", name, d.Len(), dictSource(ctx, name)))
	}
	return nil
}

// resolveDict returns a registered table, or loads the argument as a YAML file
func resolveDict(ctx *common.ProjectContext, arg string) (*dictionary.Dictionary, error) {
	if d, err := ctx.Registry.Get(arg); err == nil {
		return d, nil
	}

	path := arg
	if !filepath.IsAbs(path) {
		path = ctx.Abs(arg)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("unknown dictionary: %s", arg)
	}
	name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
	return dictionary.LoadFile(name, path)
}

func runDictCheck(cmd *cobra.Command, args []string) error {
	ctx, err := loadProject()
	if err != nil {
		return err
	}

	targets := args
	if len(targets) == 0 {
		targets = ctx.Registry.Names()
	}

	bad := 0
	for _, target := range targets {
		d, err := resolveDict(ctx, target)
		if err != nil {
			return err
		}

		invalid := d.Validate()
		if len(invalid) == 0 {
			fmt.Println(color.GreenString("%s", i18n.T("dict_valid", d.Name, d.Len())))
			continue
		}

		bad++
		fmt.Println(color.RedString("%s", i18n.T("dict_invalid", d.Name, len(invalid))))
		for _, e := range invalid {
			fmt.Println(i18n.T("dict_invalid_entry", e.Phrase, e.Key))
		}
	}

	if bad > 0 {
		return fmt.Errorf("%s", i18n.T("dict_has_invalid", bad))
	}
	return nil
}

func runDictExport(cmd *cobra.Command, args []string) error {
	ctx, err := loadProject()
	if err != nil {
		return err
	}

	d, err := ctx.Registry.Get(args[0])
	if err != nil {
		return err
	}

	data, err := d.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
