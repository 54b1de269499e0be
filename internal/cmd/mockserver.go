package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	charmlog "charm.land/log/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/ledgerlens/ledgerlens/internal/mockapi"
	"github.com/spf13/cobra"
)

func init() {
	mockServerCmd.Flags().String("addr", ":8787", "Address to listen on")
	mockServerCmd.Flags().String("token", "", "Bearer token required on API requests")
}

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve an in-memory development backend",
	Long: heredoc.Doc(`
		Serve the compliance REST API from an in-memory dataset, for demos
		and local development. Created transactions are kept until exit.
	`),
	Example: heredoc.Doc(`
		ledgerlens mock-server --addr :8787 --token dev
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		token, _ := cmd.Flags().GetString("token")
		debug, _ := cmd.Flags().GetBool("debug")

		logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			Prefix:          "mock-server",
		})
		if debug {
			logger.SetLevel(charmlog.DebugLevel)
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           mockapi.New(mockapi.WithToken(token), mockapi.WithLogger(logger)),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return serve(cmd.Context(), srv, logger)
	},
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *charmlog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
