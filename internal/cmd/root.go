package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/csync"
	"github.com/ledgerlens/ledgerlens/internal/log"
	"github.com/ledgerlens/ledgerlens/internal/store"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/model"
	"github.com/ledgerlens/ledgerlens/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().StringP("data-dir", "D", "", "Custom ledgerlens data directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		txCmd,
		alertsCmd,
		reportsCmd,
		mockServerCmd,
		schemaCmd,
		updateCatalogCmd,
	)
}

var rootCmd = &cobra.Command{
	Use:   "ledgerlens",
	Short: "Compliance dashboard for the core banking backend",
	Long: heredoc.Doc(`
		LedgerLens is a terminal dashboard for compliance officers: browse
		transactions, triage alerts, read client reports and record new
		transactions against the core banking backend.
	`),
	Example: heredoc.Doc(`
		# Run the dashboard against the configured backend
		ledgerlens

		# Run with debug logging in a specific directory
		ledgerlens -d -c /path/to/project

		# Try it out against the bundled development backend
		ledgerlens mock-server --token dev &
		LEDGERLENS_TOKEN=dev ledgerlens
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.RecoverPanic("main", nil)

		client := newClient(cfg)
		catalog, err := config.Catalog(cfg, client)
		if err != nil {
			return fmt.Errorf("failed to load reference data: %w", err)
		}

		st := store.New(client)
		st.SetTimeout(cfg.Timeout())

		ui := model.New(common.DefaultCommon(cfg), st, catalog)
		program := tea.NewProgram(ui, tea.WithContext(cmd.Context()))

		slog.Info("Starting dashboard", "version", version.Version, "backend", client.BaseURL())
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("dashboard error: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration for the working directory and starts the
// file logger.
func setup(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	cwd, err := resolveCwd(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Init(cwd, dataDir, debug)
	if err != nil {
		return nil, err
	}
	log.Setup(cfg.LogFile(), debug || cfg.Options.Debug)
	return cfg, nil
}

func resolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return "", fmt.Errorf("failed to change directory: %w", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return cwd, nil
}

func newClient(cfg *config.Config) *api.Client {
	return api.New(
		cfg.API.BaseURL,
		csync.NewValue(cfg.API.Token),
		api.WithTimeout(cfg.Timeout()),
	)
}
