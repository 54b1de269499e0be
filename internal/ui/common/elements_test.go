package common

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, currency, want string
	}{
		{"0", "", "0.00"},
		{"12.5", "EUR", "12.50 EUR"},
		{"1234567.891", "USD", "1,234,567.89 USD"},
		{"-10000", "GBP", "-10,000.00 GBP"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Money(decimal.RequireFromString(tt.in), tt.currency))
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Investigating", Label(bank.AlertInvestigating))
	require.Equal(t, "Large Amount", Label("large_amount"))
}

func TestBadge(t *testing.T) {
	t.Parallel()

	st := styles.DefaultStyles()
	require.Contains(t, ansi.Strip(Badge(&st, bank.SeverityCritical)), "CRITICAL")
	require.Contains(t, ansi.Strip(Badge(&st, bank.StatusFlagged)), "FLAGGED")
}

func TestBar(t *testing.T) {
	t.Parallel()

	st := styles.DefaultStyles()
	bar := ansi.Strip(Bar(&st, 0.5, 0.2, 10))
	require.Equal(t, 10, ansi.StringWidth(bar))
	require.Empty(t, Bar(&st, 1, 1, 0))
}

func TestCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1 alert", Count(1, "alert", "alerts"))
	require.Equal(t, "1,204 alerts", Count(1204, "alert", "alerts"))
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Helios", Highlight("Helios", nil))
	out := Highlight("Helios Capital", []int{0, 1, 7})
	require.Equal(t, "Helios Capital", ansi.Strip(out))
	require.Equal(t, [][2]int{{0, 1}, {7, 7}}, matchedRanges([]int{0, 1, 7}))
	require.Equal(t, [][2]int{{3, 5}}, matchedRanges([]int{3, 4, 5}))
}
