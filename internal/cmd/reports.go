package cmd

import (
	"fmt"
	"slices"

	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	addRangeFlags(reportsSummaryCmd)
	addJSONFlag(reportsSummaryCmd)
	addJSONFlag(reportsClientCmd)

	reportsCmd.AddCommand(reportsSummaryCmd, reportsClientCmd)
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Print compliance reports",
}

var reportsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the activity summary over a date range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		r, err := dateRange(cmd)
		if err != nil {
			return err
		}

		s, err := newClient(cfg).Summary(cmd.Context(), r)
		if err != nil {
			return err
		}
		fields := [][]string{
			{"Transactions", common.Count(s.TransactionCount, "transaction", "transactions")},
			{"Volume", s.Volume.StringFixed(2)},
			{"Flagged", common.Count(s.FlaggedCount, "transaction", "transactions")},
			{"Open alerts", common.Count(s.OpenAlerts, "alert", "alerts")},
			{"High risk clients", common.Count(s.HighRiskClients, "client", "clients")},
		}
		for _, sev := range slices.Backward(bank.Severities) {
			fields = append(fields, []string{"  " + common.Label(sev), fmt.Sprint(s.AlertsBySeverity[sev])})
		}
		return printFields(cmd.OutOrStdout(), wantJSON(cmd), s, fields)
	},
}

// clientReport is the JSON shape of reports client.
type clientReport struct {
	Report bank.ClientReport `json:"report"`
	Alerts []bank.Alert      `json:"alerts"`
}

var reportsClientCmd = &cobra.Command{
	Use:   "client <id>",
	Short: "Print the activity and risk report of one client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		client := newClient(cfg)

		var out clientReport
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() (err error) {
			out.Report, err = client.ClientReport(ctx, args[0])
			return err
		})
		g.Go(func() (err error) {
			out.Alerts, err = client.Alerts(ctx, api.AlertQuery{ClientID: args[0]})
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		r := out.Report
		active := 0
		for _, a := range out.Alerts {
			if a.Status.Active() {
				active++
			}
		}
		fields := [][]string{
			{"Client", fmt.Sprintf("%s (%s)", r.Client.Name, r.Client.ID)},
			{"Country", r.Client.Country},
			{"Risk level", common.Label(r.Client.RiskLevel)},
			{"Risk score", fmt.Sprintf("%.2f", r.RiskScore)},
			{"Transactions", common.Count(r.TransactionCount, "transaction", "transactions")},
			{"Volume", r.Volume.StringFixed(2)},
			{"Flagged", common.Count(r.FlaggedCount, "transaction", "transactions")},
			{"Alerts", fmt.Sprintf("%d active of %d", active, len(out.Alerts))},
		}
		for _, m := range r.Monthly {
			fields = append(fields, []string{"  " + m.Month, fmt.Sprintf("%s · %d tx", m.Volume.StringFixed(2), m.Count)})
		}
		return printFields(cmd.OutOrStdout(), wantJSON(cmd), out, fields)
	},
}
