package bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validTransfer() CreateTransactionRequest {
	return CreateTransactionRequest{
		Type:               Transfer,
		Amount:             decimal.RequireFromString("1250.50"),
		Currency:           "EUR",
		ClientID:           "cl-100",
		SourceAccount:      "DE001",
		DestinationAccount: "FR002",
		Country:            "DE",
	}
}

func TestCreateTransactionRequest_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validTransfer().Validate())

	tests := []struct {
		name   string
		mutate func(r *CreateTransactionRequest)
		want   error
	}{
		{"unknown type", func(r *CreateTransactionRequest) { r.Type = "refund" }, ErrInvalidType},
		{"zero amount", func(r *CreateTransactionRequest) { r.Amount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(r *CreateTransactionRequest) { r.Amount = decimal.NewFromInt(-5) }, ErrInvalidAmount},
		{"sub-cent amount", func(r *CreateTransactionRequest) { r.Amount = decimal.RequireFromString("1.005") }, ErrAmountPrecision},
		{"lowercase currency", func(r *CreateTransactionRequest) { r.Currency = "eur" }, ErrInvalidCurrency},
		{"missing client", func(r *CreateTransactionRequest) { r.ClientID = " " }, ErrMissingClient},
		{"bad country", func(r *CreateTransactionRequest) { r.Country = "DEU" }, ErrInvalidCountry},
		{"transfer without source", func(r *CreateTransactionRequest) { r.SourceAccount = "" }, ErrMissingSource},
		{"transfer to same account", func(r *CreateTransactionRequest) { r.DestinationAccount = r.SourceAccount }, ErrSameAccount},
		{"deposit without destination", func(r *CreateTransactionRequest) {
			r.Type = Deposit
			r.DestinationAccount = ""
		}, ErrMissingDestination},
		{"withdrawal without source", func(r *CreateTransactionRequest) {
			r.Type = Withdrawal
			r.SourceAccount = ""
		}, ErrMissingSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := validTransfer()
			tt.mutate(&r)
			require.ErrorIs(t, r.Validate(), tt.want)
		})
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	d, err := ParseAmount(" 12,500.25 ")
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.RequireFromString("12500.25")))

	_, err = ParseAmount("")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseAmount("abc")
	require.Error(t, err)

	_, err = ParseAmount("0.001")
	require.ErrorIs(t, err, ErrAmountPrecision)
}

func TestSeverityRank(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, SeverityLow.Rank())
	require.Equal(t, 3, SeverityCritical.Rank())
	require.Equal(t, -1, Severity("bogus").Rank())
	require.True(t, AlertInvestigating.Active())
	require.False(t, AlertDismissed.Active())
}
