package common

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/ordered"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// Blend returns the color at position t (0..1) between a and b, blended in
// the HCL space.
func Blend(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return b
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return ca.BlendHcl(cb, ordered.Clamp(t, 0, 1)).Clamped()
}

// RiskColor maps a risk score in [0, 1] onto the low to high risk gradient.
func RiskColor(t *styles.Styles, score float64) color.Color {
	return Blend(t.RiskLow, t.RiskHigh, score)
}

// Bar renders a horizontal bar of the given width, filled to ratio and
// colored by score.
func Bar(t *styles.Styles, ratio, score float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(ordered.Clamp(ratio, 0, 1)*float64(width) + 0.5)
	bar := lipgloss.NewStyle().Foreground(RiskColor(t, score)).Render(strings.Repeat(styles.BarBlock, filled))
	return bar + t.Section.Line.Render(strings.Repeat(styles.SkeletonBlock, width-filled))
}

// GradientText colors each rune of s along the gradient from a to b.
func GradientText(s string, a, b color.Color, bold bool) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, r := range runes {
		pos := 0.0
		if len(runes) > 1 {
			pos = float64(i) / float64(len(runes)-1)
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(Blend(a, b, pos)).Bold(bold).Render(string(r)))
	}
	return sb.String()
}
