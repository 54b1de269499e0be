// Package bank defines the entities exchanged with the compliance backend.
package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Transfer   TransactionType = "transfer"
)

// TransactionTypes lists every known transaction type.
var TransactionTypes = []TransactionType{Deposit, Withdrawal, Transfer}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case Deposit, Withdrawal, Transfer:
		return true
	}
	return false
}

// TransactionStatus is the processing state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFlagged   TransactionStatus = "flagged"
	StatusRejected  TransactionStatus = "rejected"
)

// TransactionStatuses lists every known transaction status.
var TransactionStatuses = []TransactionStatus{StatusPending, StatusCompleted, StatusFlagged, StatusRejected}

// Transaction is a single deposit, withdrawal or transfer.
type Transaction struct {
	ID                 string            `json:"id" yaml:"id"`
	Type               TransactionType   `json:"type" yaml:"type"`
	Status             TransactionStatus `json:"status" yaml:"status"`
	Amount             decimal.Decimal   `json:"amount" yaml:"amount"`
	Currency           string            `json:"currency" yaml:"currency"`
	ClientID           string            `json:"client_id" yaml:"client_id"`
	ClientName         string            `json:"client_name" yaml:"client_name"`
	SourceAccount      string            `json:"source_account,omitempty" yaml:"source_account"`
	DestinationAccount string            `json:"destination_account,omitempty" yaml:"destination_account"`
	Country            string            `json:"country" yaml:"country"`
	Description        string            `json:"description,omitempty" yaml:"description"`
	RiskScore          float64           `json:"risk_score" yaml:"risk_score"`
	CreatedAt          time.Time         `json:"created_at" yaml:"created_at"`
}

// Severity ranks how urgent a compliance alert is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists every severity from least to most urgent.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Rank returns the position of s in [Severities], or -1 if unknown.
func (s Severity) Rank() int {
	for i, v := range Severities {
		if v == s {
			return i
		}
	}
	return -1
}

// AlertStatus is the triage state of a compliance alert.
type AlertStatus string

const (
	AlertOpen          AlertStatus = "open"
	AlertInvestigating AlertStatus = "investigating"
	AlertResolved      AlertStatus = "resolved"
	AlertDismissed     AlertStatus = "dismissed"
)

// AlertStatuses lists every known alert status.
var AlertStatuses = []AlertStatus{AlertOpen, AlertInvestigating, AlertResolved, AlertDismissed}

// Active reports whether the alert still needs attention.
func (s AlertStatus) Active() bool {
	return s == AlertOpen || s == AlertInvestigating
}

// Alert is a compliance finding raised against a transaction or client.
type Alert struct {
	ID            string      `json:"id" yaml:"id"`
	TransactionID string      `json:"transaction_id,omitempty" yaml:"transaction_id"`
	ClientID      string      `json:"client_id" yaml:"client_id"`
	ClientName    string      `json:"client_name" yaml:"client_name"`
	Rule          string      `json:"rule" yaml:"rule"`
	Severity      Severity    `json:"severity" yaml:"severity"`
	Status        AlertStatus `json:"status" yaml:"status"`
	Summary       string      `json:"summary" yaml:"summary"`
	Details       string      `json:"details,omitempty" yaml:"details"`
	CreatedAt     time.Time   `json:"created_at" yaml:"created_at"`
}

// RiskLevel is the standing risk classification of a client.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Client is a bank customer monitored for compliance.
type Client struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Country   string    `json:"country" yaml:"country"`
	RiskLevel RiskLevel `json:"risk_level" yaml:"risk_level"`
	Accounts  []string  `json:"accounts,omitempty" yaml:"accounts"`
}

// MonthlyVolume is the transaction volume of one calendar month.
type MonthlyVolume struct {
	Month  string          `json:"month"`
	Volume decimal.Decimal `json:"volume"`
	Count  int             `json:"count"`
}

// ClientReport aggregates the activity and risk of a single client.
type ClientReport struct {
	Client           Client          `json:"client"`
	TransactionCount int             `json:"transaction_count"`
	Volume           decimal.Decimal `json:"volume"`
	FlaggedCount     int             `json:"flagged_count"`
	OpenAlerts       int             `json:"open_alerts"`
	RiskScore        float64         `json:"risk_score"`
	Monthly          []MonthlyVolume `json:"monthly"`
}

// SummaryReport aggregates activity across all clients over a date range.
type SummaryReport struct {
	From             string           `json:"from,omitempty"`
	To               string           `json:"to,omitempty"`
	TransactionCount int              `json:"transaction_count"`
	Volume           decimal.Decimal  `json:"volume"`
	FlaggedCount     int              `json:"flagged_count"`
	OpenAlerts       int              `json:"open_alerts"`
	AlertsBySeverity map[Severity]int `json:"alerts_by_severity"`
	HighRiskClients  int              `json:"high_risk_clients"`
}

// Operator is the authenticated dashboard user.
type Operator struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Role string `json:"role" yaml:"role"`
}

// Catalog is the reference data used to populate filters and forms.
type Catalog struct {
	Currencies         []string `json:"currencies" yaml:"currencies"`
	Countries          []string `json:"countries" yaml:"countries"`
	HighRiskCountries  []string `json:"high_risk_countries" yaml:"high_risk_countries"`
	Rules              []string `json:"rules" yaml:"rules"`
	LargeAmountTrigger string   `json:"large_amount_trigger" yaml:"large_amount_trigger"`
}
