package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/spf13/cobra"
)

func init() {
	txListCmd.Flags().String("type", "", "Filter by transaction type")
	txListCmd.Flags().String("status", "", "Filter by status")
	txListCmd.Flags().String("currency", "", "Filter by currency")
	txListCmd.Flags().String("country", "", "Filter by country")
	txListCmd.Flags().String("client", "", "Filter by client ID")
	addRangeFlags(txListCmd)
	addListFlags(txListCmd)

	txCreateCmd.Flags().String("type", string(bank.Deposit), "Transaction type: deposit, withdrawal or transfer")
	txCreateCmd.Flags().String("amount", "", "Amount, at most two decimals")
	txCreateCmd.Flags().String("currency", "EUR", "ISO 4217 currency code")
	txCreateCmd.Flags().String("client", "", "Client ID")
	txCreateCmd.Flags().String("from-account", "", "Source account, for withdrawals and transfers")
	txCreateCmd.Flags().String("to-account", "", "Destination account, for deposits and transfers")
	txCreateCmd.Flags().String("country", "", "ISO 3166 country code")
	txCreateCmd.Flags().String("description", "", "Free text description")
	addJSONFlag(txCreateCmd)

	txCmd.AddCommand(txListCmd, txCreateCmd)
}

var txCmd = &cobra.Command{
	Aliases: []string{"transactions"},
	Use:     "tx",
	Short:   "List and record transactions",
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Example: heredoc.Doc(`
		# Flagged transfers in March
		ledgerlens tx list --type transfer --status flagged --from 2025-03-01 --to 2025-03-31

		# Second page as JSON
		ledgerlens tx list --page 2 --json
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
		q, err := transactionQuery(cmd)
		if err != nil {
			return err
		}

		items, err := newClient(cfg).Transactions(cmd.Context(), q)
		if err != nil {
			return err
		}
		return printPage(cmd.OutOrStdout(), items, req,
			[]string{"ID", "Date", "Type", "Client", "Amount", "Country", "Status"},
			func(tx bank.Transaction) []string {
				return []string{
					tx.ID,
					tx.CreatedAt.Format(api.DateLayout),
					common.Label(tx.Type),
					tx.ClientName,
					common.Money(tx.Amount, tx.Currency),
					tx.Country,
					common.Label(tx.Status),
				}
			},
		)
	},
}

func transactionQuery(cmd *cobra.Command) (api.TransactionQuery, error) {
	typ, _ := cmd.Flags().GetString("type")
	status, _ := cmd.Flags().GetString("status")
	currency, _ := cmd.Flags().GetString("currency")
	country, _ := cmd.Flags().GetString("country")
	client, _ := cmd.Flags().GetString("client")

	q := api.TransactionQuery{
		Type:     bank.TransactionType(strings.ToLower(typ)),
		Status:   bank.TransactionStatus(strings.ToLower(status)),
		Currency: strings.ToUpper(currency),
		Country:  strings.ToUpper(country),
		ClientID: client,
	}
	if q.Type != "" && !q.Type.Valid() {
		return q, fmt.Errorf("%w: %q", bank.ErrInvalidType, typ)
	}
	r, err := dateRange(cmd)
	if err != nil {
		return q, err
	}
	q.DateRange = r
	return q, nil
}

var txCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a new transaction",
	Example: heredoc.Doc(`
		# Deposit into a client account
		ledgerlens tx create --client cl-100 --amount 2500 --to-account NO9386011117947 --country NO

		# Transfer between two accounts
		ledgerlens tx create --type transfer --client cl-100 --amount 1,200.50 \
		  --from-account NO9386011117947 --to-account DE89370400440532013000 --country DE
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		req, err := createRequest(cmd)
		if err != nil {
			return err
		}

		tx, err := newClient(cfg).CreateTransaction(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printFields(cmd.OutOrStdout(), wantJSON(cmd), tx, [][]string{
			{"ID", tx.ID},
			{"Status", common.Label(tx.Status)},
			{"Amount", common.Money(tx.Amount, tx.Currency)},
			{"Client", tx.ClientName},
			{"Risk score", fmt.Sprintf("%.2f", tx.RiskScore)},
		})
	},
}

func createRequest(cmd *cobra.Command) (bank.CreateTransactionRequest, error) {
	typ, _ := cmd.Flags().GetString("type")
	amount, _ := cmd.Flags().GetString("amount")
	currency, _ := cmd.Flags().GetString("currency")
	client, _ := cmd.Flags().GetString("client")
	from, _ := cmd.Flags().GetString("from-account")
	to, _ := cmd.Flags().GetString("to-account")
	country, _ := cmd.Flags().GetString("country")
	description, _ := cmd.Flags().GetString("description")

	d, err := bank.ParseAmount(amount)
	if err != nil {
		return bank.CreateTransactionRequest{}, err
	}
	req := bank.CreateTransactionRequest{
		Type:               bank.TransactionType(strings.ToLower(typ)),
		Amount:             d,
		Currency:           strings.ToUpper(currency),
		ClientID:           client,
		SourceAccount:      from,
		DestinationAccount: to,
		Country:            strings.ToUpper(country),
		Description:        description,
	}
	return req, req.Validate()
}
