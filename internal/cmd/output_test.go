package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID string `json:"id"`
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{ID: fmt.Sprintf("r-%02d", i+1)}
	}
	return out
}

func rowCells(r row) []string { return []string{r.ID} }

func TestPrintPageJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	req := pageRequest{Page: 3, PerPage: 10, JSON: true}
	require.NoError(t, printPage(&buf, rows(25), req, []string{"ID"}, rowCells))

	var got pageOutput[row]
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, 3, got.Page)
	require.Equal(t, 25, got.Total)
	require.Equal(t, 3, got.TotalPages)
	require.Len(t, got.Items, 5)
	require.Equal(t, "r-21", got.Items[0].ID)
}

func TestPrintPageClampsPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	req := pageRequest{Page: 99, PerPage: 10, JSON: true}
	require.NoError(t, printPage(&buf, rows(12), req, []string{"ID"}, rowCells))

	var got pageOutput[row]
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, 2, got.Page)
	require.Len(t, got.Items, 2)
}

func TestPrintPageTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	req := pageRequest{Page: 1, PerPage: 10}
	require.NoError(t, printPage(&buf, rows(12), req, []string{"ID"}, rowCells))

	out := ansi.Strip(buf.String())
	require.Contains(t, out, "r-10")
	require.NotContains(t, out, "r-11")
	require.Contains(t, out, "Page 1 of 2")

	buf.Reset()
	require.NoError(t, printPage(&buf, []row{}, req, []string{"ID"}, rowCells))
	require.Contains(t, ansi.Strip(buf.String()), "No results.")
}

func TestDateRangeFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	addRangeFlags(cmd)
	require.NoError(t, cmd.Flags().Set("from", "2025-03-10"))
	require.NoError(t, cmd.Flags().Set("to", "2025-03-01"))
	_, err := dateRange(cmd)
	require.Error(t, err)

	require.NoError(t, cmd.Flags().Set("to", "2025-03-31"))
	r, err := dateRange(cmd)
	require.NoError(t, err)
	require.Equal(t, "2025-03-10", r.From)
}

func TestCreateRequestFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	cmd.Flags().String("type", "deposit", "")
	cmd.Flags().String("amount", "", "")
	cmd.Flags().String("currency", "eur", "")
	cmd.Flags().String("client", "cl-100", "")
	cmd.Flags().String("from-account", "", "")
	cmd.Flags().String("to-account", "NO9386011117947", "")
	cmd.Flags().String("country", "no", "")
	cmd.Flags().String("description", "", "")

	_, err := createRequest(cmd)
	require.Error(t, err)

	require.NoError(t, cmd.Flags().Set("amount", "1,200.50"))
	req, err := createRequest(cmd)
	require.NoError(t, err)
	require.Equal(t, "EUR", req.Currency)
	require.Equal(t, "NO", req.Country)
	require.Equal(t, "1200.5", req.Amount.String())
}
