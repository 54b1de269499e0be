package cmd

import (
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/spf13/cobra"
)

func init() {
	alertsListCmd.Flags().String("severity", "", "Filter by severity")
	alertsListCmd.Flags().String("status", "", "Filter by status")
	alertsListCmd.Flags().String("client", "", "Filter by client ID")
	addRangeFlags(alertsListCmd)
	addListFlags(alertsListCmd)

	alertsCmd.AddCommand(alertsListCmd)
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Inspect compliance alerts",
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List compliance alerts",
	Example: heredoc.Doc(`
		# Open critical alerts
		ledgerlens alerts list --severity critical --status open
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		req, err := pageFlags(cmd, cfg)
		if err != nil {
			return err
		}

		severity, _ := cmd.Flags().GetString("severity")
		status, _ := cmd.Flags().GetString("status")
		client, _ := cmd.Flags().GetString("client")
		r, err := dateRange(cmd)
		if err != nil {
			return err
		}
		q := api.AlertQuery{
			Severity:  bank.Severity(strings.ToLower(severity)),
			Status:    bank.AlertStatus(strings.ToLower(status)),
			ClientID:  client,
			DateRange: r,
		}

		items, err := newClient(cfg).Alerts(cmd.Context(), q)
		if err != nil {
			return err
		}
		return printPage(cmd.OutOrStdout(), items, req,
			[]string{"ID", "Date", "Severity", "Client", "Rule", "Status"},
			func(a bank.Alert) []string {
				return []string{
					a.ID,
					a.CreatedAt.Format(api.DateLayout),
					common.Label(a.Severity),
					a.ClientName,
					a.Rule,
					common.Label(a.Status),
				}
			},
		)
	},
}
