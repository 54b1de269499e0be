package mockapi

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/shopspring/decimal"
)

const (
	RuleLargeAmount     = "large_amount"
	RuleHighRiskCountry = "high_risk_country"
)

// DefaultLargeAmount is the reporting threshold used when the catalog does
// not define one.
var DefaultLargeAmount = decimal.NewFromInt(10_000)

var baseRisk = map[bank.RiskLevel]float64{
	bank.RiskLow:    0.15,
	bank.RiskMedium: 0.4,
	bank.RiskHigh:   0.7,
}

func (d *Dataset) largeAmount() decimal.Decimal {
	if d.Catalog.LargeAmountTrigger == "" {
		return DefaultLargeAmount
	}
	v, err := decimal.NewFromString(d.Catalog.LargeAmountTrigger)
	if err != nil || !v.IsPositive() {
		return DefaultLargeAmount
	}
	return v
}

// screen scores tx, flags it when it trips a rule and returns the alerts it
// raised. The caller holds the write lock.
func (s *Server) screen(tx *bank.Transaction, c bank.Client) []bank.Alert {
	threshold := s.data.largeAmount()
	large := tx.Amount.GreaterThanOrEqual(threshold)
	risky := tx.Type == bank.Transfer && s.data.highRisk(tx.Country)

	score := baseRisk[c.RiskLevel]
	var alerts []bank.Alert

	if large {
		score += 0.2
		severity := bank.SeverityHigh
		if tx.Amount.GreaterThanOrEqual(threshold.Mul(decimal.NewFromInt(5))) {
			severity = bank.SeverityCritical
		}
		amount := tx.Amount.StringFixed(2) + " " + tx.Currency
		alerts = append(alerts, s.newAlert(tx, c, RuleLargeAmount, severity,
			"Large "+amount+" movement",
			fmt.Sprintf("## Large amount\nTransaction **%s** moved %s, at or above the reporting threshold of %s.\n\n- Verify the source of funds\n- Attach supporting documents to the case",
				tx.ID, amount, threshold.String()),
		))
	}
	if risky {
		score += 0.25
		alerts = append(alerts, s.newAlert(tx, c, RuleHighRiskCountry, bank.SeverityCritical,
			"Transfer to high-risk jurisdiction "+tx.Country,
			fmt.Sprintf("## High-risk country\nTransaction **%s** sends funds to **%s**, which is on the high-risk list.\n\n- Confirm the beneficiary identity\n- Escalate if the purpose is unclear",
				tx.ID, tx.Country),
		))
	}

	tx.RiskScore = roundScore(min(score, 0.99))
	if len(alerts) > 0 {
		tx.Status = bank.StatusFlagged
	}
	return alerts
}

func (s *Server) newAlert(tx *bank.Transaction, c bank.Client, rule string, sev bank.Severity, summary, details string) bank.Alert {
	return bank.Alert{
		ID:            "al-" + strings.SplitN(uuid.NewString(), "-", 2)[0],
		TransactionID: tx.ID,
		ClientID:      c.ID,
		ClientName:    c.Name,
		Rule:          rule,
		Severity:      sev,
		Status:        bank.AlertOpen,
		Summary:       summary,
		Details:       details,
		CreatedAt:     tx.CreatedAt,
	}
}
