package common

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// Highlight underlines the bytes of s at the matched indexes reported by a
// fuzzy match. Runs of adjacent indexes are underlined together.
func Highlight(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	var (
		sb      strings.Builder
		lastPos int
	)
	for _, rng := range matchedRanges(matched) {
		start, stop := rng[0], rng[1]
		if start < lastPos || start >= len(s) {
			continue
		}
		_, size := utf8.DecodeRuneInString(s[min(stop, len(s)-1):])
		end := min(len(s), stop+size)
		sb.WriteString(s[lastPos:start])
		// ansi.Style toggles only the underline attribute, leaving any
		// surrounding colors intact.
		sb.WriteString(ansi.NewStyle().Underline(true).String())
		sb.WriteString(s[start:end])
		sb.WriteString(ansi.NewStyle().Underline(false).String())
		lastPos = end
	}
	sb.WriteString(s[lastPos:])
	return sb.String()
}

func matchedRanges(in []int) [][2]int {
	if len(in) == 0 {
		return [][2]int{}
	}
	current := [2]int{in[0], in[0]}
	if len(in) == 1 {
		return [][2]int{current}
	}
	var out [][2]int
	for i := 1; i < len(in); i++ {
		if in[i] == current[1]+1 {
			current[1] = in[i]
		} else {
			out = append(out, current)
			current = [2]int{in[i], in[i]}
		}
	}
	out = append(out, current)
	return out
}
