package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yejune/thai-i18n/internal/i18n"
)

var profilesVerbose bool

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the translate profiles",
	Long: `List every translate profile after .thai-i18n.yaml overrides are applied.

Use --verbose to also print each profile's globs and quote styles.`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

func init() {
	profilesCmd.Flags().BoolVarP(&profilesVerbose, "verbose", "v", false, "Show globs and quote styles")
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	ctx, err := loadProject()
	if err != nil {
		return err
	}

	for _, name := range profileNames(ctx.Profiles) {
		p := ctx.Profiles[name]
		fmt.Println(i18n.T("profile_row", name, p.Dictionary, p.Wrap, p.Import, strings.Join(p.Hooks, ",")))
		if profilesVerbose {
			fmt.Printf("  quotes: %s  text nodes: %v\n", strings.Join(p.Quotes, " "), p.RewritesTextNodes())
			for _, g := range p.Globs {
				fmt.Printf("  - %s\n", g)
			}
		}
	}
	return nil
}
