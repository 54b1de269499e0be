// Package paginate computes fixed-size page windows over a list and the
// compacted strip of page links shown under paginated views.
package paginate

import (
	"github.com/charmbracelet/x/exp/ordered"
)

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 10

// MaxFullLinks is the largest page count for which every page gets a link.
const MaxFullLinks = 7

// PerPage normalizes a page size. Values below 1 are clamped to 1.
func PerPage(n int) int {
	return max(1, n)
}

// TotalPages returns the number of pages needed for n items. An empty list
// still has one page.
func TotalPages(n, perPage int) int {
	perPage = PerPage(perPage)
	if n <= 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// Window returns the half-open index range [start, end) of the given
// 1-based page. The range always lies within [0, n].
func Window(n, page, perPage int) (start, end int) {
	perPage = PerPage(perPage)
	n = max(0, n)
	page = ordered.Clamp(page, 1, TotalPages(n, perPage))
	start = min((page-1)*perPage, n)
	end = min(start+perPage, n)
	return start, end
}

// Slice returns the items visible on the given page.
func Slice[T any](items []T, page, perPage int) []T {
	start, end := Window(len(items), page, perPage)
	return items[start:end]
}

// Link is one entry of a page-link strip: either a page number or an
// ellipsis marking skipped pages.
type Link struct {
	Page     int
	Ellipsis bool
}

// Links returns the compacted page-link strip for the current page.
//
// Up to [MaxFullLinks] pages every page is listed. Beyond that the first
// page, the last page, the current page and its immediate neighbours are
// listed, with an ellipsis wherever two listed pages are not consecutive.
func Links(total, current int) []Link {
	total = max(1, total)
	current = ordered.Clamp(current, 1, total)

	if total <= MaxFullLinks {
		links := make([]Link, total)
		for i := range links {
			links[i] = Link{Page: i + 1}
		}
		return links
	}

	pages := []int{1}
	for _, p := range []int{current - 1, current, current + 1, total} {
		p = ordered.Clamp(p, 1, total)
		if p > pages[len(pages)-1] {
			pages = append(pages, p)
		}
	}

	links := make([]Link, 0, len(pages)+2)
	last := 0
	for _, p := range pages {
		if last > 0 && p != last+1 {
			links = append(links, Link{Ellipsis: true})
		}
		links = append(links, Link{Page: p})
		last = p
	}
	return links
}
