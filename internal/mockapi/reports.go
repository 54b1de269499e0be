package mockapi

import (
	"cmp"
	"slices"

	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/shopspring/decimal"
)

// clientReport aggregates the activity of one client.
func clientReport(d *Dataset, c bank.Client) bank.ClientReport {
	report := bank.ClientReport{Client: c, Monthly: []bank.MonthlyVolume{}}
	months := map[string]*bank.MonthlyVolume{}
	var scores float64

	for _, tx := range d.Transactions {
		if tx.ClientID != c.ID {
			continue
		}
		report.TransactionCount++
		report.Volume = report.Volume.Add(tx.Amount)
		scores += tx.RiskScore
		if tx.Status == bank.StatusFlagged {
			report.FlaggedCount++
		}
		key := tx.CreatedAt.UTC().Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &bank.MonthlyVolume{Month: key}
			months[key] = m
		}
		m.Volume = m.Volume.Add(tx.Amount)
		m.Count++
	}
	for _, a := range d.Alerts {
		if a.ClientID == c.ID && a.Status.Active() {
			report.OpenAlerts++
		}
	}
	if report.TransactionCount > 0 {
		report.RiskScore = roundScore(scores / float64(report.TransactionCount))
	}
	for _, m := range months {
		report.Monthly = append(report.Monthly, *m)
	}
	slices.SortFunc(report.Monthly, func(a, b bank.MonthlyVolume) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return report
}

// summaryReport aggregates all activity within r.
func summaryReport(d *Dataset, r api.DateRange) bank.SummaryReport {
	report := bank.SummaryReport{
		From:             r.From,
		To:               r.To,
		Volume:           decimal.Zero,
		AlertsBySeverity: map[bank.Severity]int{},
	}
	for _, s := range bank.Severities {
		report.AlertsBySeverity[s] = 0
	}
	for _, tx := range d.Transactions {
		if !r.Contains(tx.CreatedAt) {
			continue
		}
		report.TransactionCount++
		report.Volume = report.Volume.Add(tx.Amount)
		if tx.Status == bank.StatusFlagged {
			report.FlaggedCount++
		}
	}
	for _, a := range d.Alerts {
		if !r.Contains(a.CreatedAt) {
			continue
		}
		report.AlertsBySeverity[a.Severity]++
		if a.Status.Active() {
			report.OpenAlerts++
		}
	}
	for _, c := range d.Clients {
		if c.RiskLevel == bank.RiskHigh {
			report.HighRiskClients++
		}
	}
	return report
}

func roundScore(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
