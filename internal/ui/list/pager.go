package list

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

type zoneAction int

const (
	actionPrev zoneAction = iota
	actionNext
	actionPage
)

// zone is a clickable span of the page strip, in cells.
type zone struct {
	x0, x1 int
	action zoneAction
	page   int
}

const (
	prevLabel = "‹ Prev"
	nextLabel = "Next ›"
)

// renderStrip renders the page strip and records its click zones.
func (p *paged[T]) renderStrip() string {
	s := p.sty.List
	var sb strings.Builder
	x := 0

	add := func(text string, style lipgloss.Style, z *zone) {
		rendered := style.Render(text)
		w := lipgloss.Width(rendered)
		if z != nil {
			z.x0, z.x1 = x, x+w
			p.zones = append(p.zones, *z)
		}
		sb.WriteString(rendered)
		x += w
	}

	if p.HasPrev() {
		add(prevLabel, s.PageNav, &zone{action: actionPrev})
	} else {
		add(prevLabel, s.PageDisabled, nil)
	}

	for _, link := range p.cursor.Links() {
		switch {
		case link.Ellipsis:
			add(styles.Ellipsis, s.PageEllipsis, nil)
		case link.Page == p.Page():
			add(fmt.Sprint(link.Page), s.PageCurrent, nil)
		default:
			add(fmt.Sprint(link.Page), s.PageLink, &zone{action: actionPage, page: link.Page})
		}
	}

	if p.HasNext() {
		add(nextLabel, s.PageNav, &zone{action: actionNext})
	} else {
		add(nextLabel, s.PageDisabled, nil)
	}

	add(p.rangeInfo(), s.PageInfo, nil)
	return sb.String()
}

// rangeInfo describes the shown range, e.g. "11–20 of 95".
func (p *paged[T]) rangeInfo() string {
	start, end := p.cursor.Window()
	return fmt.Sprintf("%s–%s of %s",
		humanize.Comma(int64(start+1)),
		humanize.Comma(int64(end)),
		humanize.Comma(int64(p.Len())),
	)
}
