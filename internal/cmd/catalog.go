package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/spf13/cobra"
)

var updateCatalogCmd = &cobra.Command{
	Use:   "update-catalog [path-or-url]",
	Short: "Update the cached reference data",
	Long: heredoc.Doc(`
		Update the cached currencies, countries and rules used by filters
		and forms. Without an argument the configured backend is asked.
		Use "embedded" to reset to the copy bundled with the binary.
	`),
	Example: heredoc.Doc(`
		# Refresh from the configured backend
		ledgerlens update-catalog

		# Load from a local file
		ledgerlens update-catalog ./catalog.json

		# Reset to the bundled copy
		ledgerlens update-catalog embedded
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		var source string
		if len(args) > 0 {
			source = args[0]
		}
		if err := config.UpdateCatalog(cfg, source); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Reference data updated.")
		return nil
	},
}
