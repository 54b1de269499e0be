package paginate

import "github.com/charmbracelet/x/exp/ordered"

// Cursor is the page position of one paginated view. The zero value is not
// ready for use; create cursors with [NewCursor].
type Cursor struct {
	page    int
	perPage int
	length  int
}

// NewCursor returns a cursor on page 1 of an empty list.
func NewCursor(perPage int) Cursor {
	return Cursor{
		page:    1,
		perPage: PerPage(perPage),
	}
}

// Sync records the current list length. Whenever the length differs from
// the previous one the cursor goes back to page 1. It reports whether a
// reset happened.
func (c *Cursor) Sync(length int) bool {
	length = max(0, length)
	if length == c.length {
		return false
	}
	c.length = length
	c.page = 1
	return true
}

// SetPerPage changes the page size and returns to page 1.
func (c *Cursor) SetPerPage(perPage int) {
	c.perPage = PerPage(perPage)
	c.page = 1
}

// Page returns the current 1-based page.
func (c Cursor) Page() int {
	return max(1, c.page)
}

// PerPage returns the page size.
func (c Cursor) PerPage() int {
	return PerPage(c.perPage)
}

// Len returns the last synced list length.
func (c Cursor) Len() int {
	return c.length
}

// TotalPages returns the number of pages for the synced length.
func (c Cursor) TotalPages() int {
	return TotalPages(c.length, c.PerPage())
}

// Window returns the index range of the current page.
func (c Cursor) Window() (start, end int) {
	return Window(c.length, c.Page(), c.PerPage())
}

// HasPrev reports whether a previous page exists.
func (c Cursor) HasPrev() bool {
	return c.Page() > 1
}

// HasNext reports whether a next page exists.
func (c Cursor) HasNext() bool {
	return c.Page() < c.TotalPages()
}

// Next moves to the next page. It is a no-op on the last page and reports
// whether the page changed.
func (c *Cursor) Next() bool {
	if !c.HasNext() {
		return false
	}
	c.page = c.Page() + 1
	return true
}

// Prev moves to the previous page. It is a no-op on the first page and
// reports whether the page changed.
func (c *Cursor) Prev() bool {
	if !c.HasPrev() {
		return false
	}
	c.page = c.Page() - 1
	return true
}

// GoTo jumps to the given page, clamped to the valid range. It reports
// whether the page changed.
func (c *Cursor) GoTo(page int) bool {
	page = ordered.Clamp(page, 1, c.TotalPages())
	if page == c.Page() {
		return false
	}
	c.page = page
	return true
}

// First jumps to page 1.
func (c *Cursor) First() bool {
	return c.GoTo(1)
}

// Last jumps to the last page.
func (c *Cursor) Last() bool {
	return c.GoTo(c.TotalPages())
}

// Links returns the compacted link strip for the current page.
func (c Cursor) Links() []Link {
	return Links(c.TotalPages(), c.Page())
}
