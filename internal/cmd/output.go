package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/ui/paginate"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// addListFlags registers the paging and output flags of list commands.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page to print")
	cmd.Flags().Int("per-page", 0, "Rows per page, 0 uses the configured size")
	addJSONFlag(cmd)
}

func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print JSON even on a terminal")
}

// wantJSON reports whether output should be JSON: when asked to, or when
// stdout is not a terminal.
func wantJSON(cmd *cobra.Command) bool {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return true
	}
	fd := os.Stdout.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// pageRequest is the page asked for on the command line.
type pageRequest struct {
	Page    int
	PerPage int
	JSON    bool
}

func pageFlags(cmd *cobra.Command, cfg *config.Config) (pageRequest, error) {
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")
	if perPage < 0 {
		return pageRequest{}, errors.New("--per-page must not be negative")
	}
	if perPage == 0 {
		perPage = cfg.PerPage()
	}
	return pageRequest{Page: page, PerPage: paginate.PerPage(perPage), JSON: wantJSON(cmd)}, nil
}

// pageOutput is the JSON shape of a printed page.
type pageOutput[T any] struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Items      []T `json:"items"`
}

// printPage prints one page of items through the same window as the
// dashboard, as JSON or as a table.
func printPage[T any](w io.Writer, items []T, req pageRequest, headers []string, row func(T) []string) error {
	total := paginate.TotalPages(len(items), req.PerPage)
	page := min(max(1, req.Page), total)
	visible := paginate.Slice(items, page, req.PerPage)

	if req.JSON {
		return printJSON(w, pageOutput[T]{
			Page:       page,
			PerPage:    req.PerPage,
			Total:      len(items),
			TotalPages: total,
			Items:      visible,
		})
	}

	if len(items) == 0 {
		fmt.Fprintln(w, lipgloss.NewStyle().Foreground(charmtone.Squid).Render("No results."))
		return nil
	}

	rows := make([][]string, len(visible))
	for i, item := range visible {
		rows[i] = row(item)
	}
	fmt.Fprintln(w, newTable(headers, rows).Render())

	start, end := paginate.Window(len(items), page, req.PerPage)
	info := fmt.Sprintf("Page %d of %d · %d–%d of %d", page, total, start+1, end, len(items))
	fmt.Fprintln(w, lipgloss.NewStyle().Foreground(charmtone.Squid).Render(info))
	return nil
}

func newTable(headers []string, rows [][]string) *table.Table {
	header := lipgloss.NewStyle().Foreground(charmtone.Charple).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(charmtone.Charcoal)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(headers...).
		Rows(rows...)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printFields prints key/value pairs as a two column table, or v as JSON.
func printFields(w io.Writer, asJSON bool, v any, fields [][]string) error {
	if asJSON {
		return printJSON(w, v)
	}
	key := lipgloss.NewStyle().Foreground(charmtone.Squid).Width(20)
	for _, f := range fields {
		fmt.Fprintln(w, key.Render(f[0])+f[1])
	}
	return nil
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date, YYYY-MM-DD")
	cmd.Flags().String("to", "", "End date, YYYY-MM-DD")
}

func dateRange(cmd *cobra.Command) (api.DateRange, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	r := api.DateRange{From: from, To: to}
	return r, r.Validate()
}
