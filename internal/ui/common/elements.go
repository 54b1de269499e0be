package common

import (
	"cmp"
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/home"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label turns an enum value such as "investigating" into "Investigating".
func Label[S ~string](v S) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(v), "_", " "))
}

func PrettyPath(t *styles.Styles, path string, width int) string {
	formatted := home.Short(path)
	return t.Muted.Width(width).Render(formatted)
}

// Money formats an amount with thousands separators and two decimals,
// followed by the currency code.
func Money(d decimal.Decimal, currency string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	abs := d.Abs().Round(2)
	whole := abs.IntPart()
	cents := abs.Sub(decimal.NewFromInt(whole)).StringFixed(2)
	s := sign + humanize.Comma(whole) + strings.TrimPrefix(cents, "0")
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// Badge renders a colored tag for a known status, type or severity.
func Badge[S ~string](t *styles.Styles, v S) string {
	style := t.TagMuted
	switch any(v).(type) {
	case bank.Severity:
		switch bank.Severity(v) {
		case bank.SeverityCritical:
			style = t.TagError
		case bank.SeverityHigh:
			style = t.TagError.Background(t.RiskHigh)
		case bank.SeverityMedium:
			style = t.TagWarn
		case bank.SeverityLow:
			style = t.TagInfo
		}
	case bank.TransactionStatus:
		switch bank.TransactionStatus(v) {
		case bank.StatusCompleted:
			style = t.TagSuccess
		case bank.StatusFlagged:
			style = t.TagWarn
		case bank.StatusRejected:
			style = t.TagError
		}
	case bank.AlertStatus:
		switch bank.AlertStatus(v) {
		case bank.AlertOpen:
			style = t.TagError
		case bank.AlertInvestigating:
			style = t.TagWarn
		case bank.AlertResolved:
			style = t.TagSuccess
		}
	case bank.RiskLevel:
		switch bank.RiskLevel(v) {
		case bank.RiskHigh:
			style = t.TagError
		case bank.RiskMedium:
			style = t.TagWarn
		case bank.RiskLow:
			style = t.TagSuccess
		}
	case bank.TransactionType:
		style = t.TagInfo
	}
	return style.Render(strings.ToUpper(string(v)))
}

// Section renders a title followed by a horizontal rule filling width.
func Section(t *styles.Styles, title string, width int) string {
	title = t.Section.Title.Render(title)
	rest := width - lipgloss.Width(title) - 1
	if rest <= 0 {
		return title
	}
	return title + " " + t.Section.Line.Render(strings.Repeat(styles.SectionSeparator, rest))
}

// KeyValue renders an aligned "key  value" line.
func KeyValue(t *styles.Styles, key, value string, keyWidth int) string {
	return t.Muted.Width(keyWidth).Render(key) + t.Base.Render(value)
}

type StatusOpts struct {
	Icon             string // if empty no icon will be shown
	Title            string
	TitleColor       color.Color
	Description      string
	DescriptionColor color.Color
	ExtraContent     string // additional content to append after the description
}

func Status(t *styles.Styles, opts StatusOpts, width int) string {
	icon := opts.Icon
	title := opts.Title
	description := opts.Description

	titleColor := cmp.Or(opts.TitleColor, t.Muted.GetForeground())
	descriptionColor := cmp.Or(opts.DescriptionColor, t.Subtle.GetForeground())

	title = t.Base.Foreground(titleColor).Render(title)

	if description != "" {
		extraContentWidth := lipgloss.Width(opts.ExtraContent)
		if extraContentWidth > 0 {
			extraContentWidth += 1
		}
		description = ansi.Truncate(description, width-lipgloss.Width(icon)-lipgloss.Width(title)-2-extraContentWidth, styles.Ellipsis)
		description = t.Base.Foreground(descriptionColor).Render(description)
	}

	content := []string{}
	if icon != "" {
		content = append(content, icon)
	}
	content = append(content, title)
	if description != "" {
		content = append(content, description)
	}
	if opts.ExtraContent != "" {
		content = append(content, opts.ExtraContent)
	}

	return strings.Join(content, " ")
}

// Count renders n with a singular or plural noun, e.g. "1,204 alerts".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), plural)
}
