package cmd

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/csync"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Aliases: []string{"auth"},
	Use:     "login [backend-url]",
	Short:   "Login LedgerLens to a compliance backend",
	Long: heredoc.Doc(`
		Login LedgerLens to a compliance backend.
		The backend URL defaults to the configured one. The token is
		verified against the backend before it is saved.
	`),
	Example: heredoc.Doc(`
		# Authenticate with the configured backend
		ledgerlens login

		# Authenticate with a specific backend
		ledgerlens login https://compliance.example.com
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		baseURL := cfg.API.BaseURL
		if len(args) > 0 {
			baseURL = strings.TrimRight(args[0], "/")
		}
		return login(cfg, baseURL)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved backend token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := cfg.RemoveConfigField("api.token"); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func login(cfg *config.Config, baseURL string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	tokensURL := baseURL + "/tokens"
	fmt.Println("Press enter to open this URL and create a personal access token:")
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Hyperlink(tokensURL, "id=ledgerlens").Render(tokensURL))
	fmt.Println()
	waitEnter()
	if err := browser.OpenURL(tokensURL); err != nil {
		fmt.Println("Could not open the URL. You'll need to manually open the URL in your browser.")
	}

	fmt.Println("Now paste the token and press enter, or press enter to use your clipboard...")
	fmt.Println()
	fmt.Print("> ")
	var token string
	_, _ = fmt.Scanln(&token)
	token = strings.TrimSpace(token)
	if token == "" {
		clip, err := readClipboard()
		if err != nil {
			return fmt.Errorf("no token entered and the clipboard is unavailable: %w", err)
		}
		token = strings.TrimSpace(clip)
	}
	if token == "" {
		return errors.New("no token entered")
	}

	fmt.Println()
	fmt.Println("Verifying token...")
	client := api.New(baseURL, csync.NewValue(token), api.WithTimeout(cfg.Timeout()))
	operator, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}

	if err := cmp.Or(
		cfg.SetConfigField("api.base_url", baseURL),
		cfg.SetConfigField("api.token", token),
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("You're now authenticated as %s (%s)!\n", lipgloss.NewStyle().Bold(true).Render(operator.Name), operator.Role)
	return nil
}

func waitEnter() {
	_, _ = fmt.Scanln()
}
