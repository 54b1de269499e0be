package bank

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload submitted to create a transaction.
type CreateTransactionRequest struct {
	Type               TransactionType `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	ClientID           string          `json:"client_id"`
	SourceAccount      string          `json:"source_account,omitempty"`
	DestinationAccount string          `json:"destination_account,omitempty"`
	Country            string          `json:"country"`
	Description        string          `json:"description,omitempty"`
}

// Validation errors returned by [CreateTransactionRequest.Validate].
var (
	ErrInvalidType        = errors.New("unknown transaction type")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrAmountPrecision    = errors.New("amount cannot have more than two decimals")
	ErrInvalidCurrency    = errors.New("currency must be a three letter ISO code")
	ErrMissingClient      = errors.New("client is required")
	ErrMissingSource      = errors.New("source account is required")
	ErrMissingDestination = errors.New("destination account is required")
	ErrSameAccount        = errors.New("source and destination accounts must differ")
	ErrInvalidCountry     = errors.New("country must be a two letter ISO code")
)

// ParseAmount parses a user supplied amount, accepting thousands separators.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, ValidateAmount(d)
}

// ValidateAmount checks that d is a positive amount with cent precision.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	if !d.Equal(d.Round(2)) {
		return ErrAmountPrecision
	}
	return nil
}

// ValidateCurrency checks that c looks like an ISO 4217 code.
func ValidateCurrency(c string) error {
	if len(c) != 3 || strings.ToUpper(c) != c {
		return ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return ErrInvalidCurrency
		}
	}
	return nil
}

// Validate checks the request for internal consistency.
func (r CreateTransactionRequest) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, r.Type)
	}
	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}
	if err := ValidateCurrency(r.Currency); err != nil {
		return err
	}
	if strings.TrimSpace(r.ClientID) == "" {
		return ErrMissingClient
	}
	if len(r.Country) != 2 {
		return ErrInvalidCountry
	}
	switch r.Type {
	case Deposit:
		if r.DestinationAccount == "" {
			return ErrMissingDestination
		}
	case Withdrawal:
		if r.SourceAccount == "" {
			return ErrMissingSource
		}
	case Transfer:
		if r.SourceAccount == "" {
			return ErrMissingSource
		}
		if r.DestinationAccount == "" {
			return ErrMissingDestination
		}
		if r.SourceAccount == r.DestinationAccount {
			return ErrSameAccount
		}
	}
	return nil
}
