// Package list renders slices of items as paginated tables or card lists.
//
// A list never mutates the slice it is given. It owns a single page cursor
// that goes back to page 1 whenever the number of items changes, and it
// derives one of three display states from its inputs: loading, empty or
// populated.
package list

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/ordered"
	"github.com/ledgerlens/ledgerlens/internal/ui/paginate"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// State is the display state of a list.
type State int

const (
	StatePopulated State = iota
	StateLoading
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	default:
		return "populated"
	}
}

const (
	DefaultEmptyMessage     = "No items found"
	DefaultEmptyDescription = "There is nothing to show here yet."
)

// RowKeyFunc returns the key of an item rendered at a page-relative index.
type RowKeyFunc[T any] func(item T, index int) string

// paged holds everything tables and card lists have in common: the items,
// the page cursor, the loading flag, the empty copy and the row selection.
type paged[T any] struct {
	sty    *styles.Styles
	keyMap KeyMap

	items   []T
	cursor  paginate.Cursor
	loading bool

	emptyMessage     string
	emptyDescription string
	rowKey           RowKeyFunc[T]

	// selected is page-relative.
	selected int
	width    int

	// Page strip layout of the last render. stripLine is -1 when no strip
	// was rendered.
	zones     []zone
	stripLine int
}

func newPaged[T any](sty *styles.Styles) paged[T] {
	return paged[T]{
		sty:              sty,
		keyMap:           DefaultKeyMap(),
		cursor:           paginate.NewCursor(paginate.DefaultPerPage),
		emptyMessage:     DefaultEmptyMessage,
		emptyDescription: DefaultEmptyDescription,
		stripLine:        -1,
	}
}

// SetItems replaces the items. When the item count differs from the
// previous one the list goes back to page 1.
func (p *paged[T]) SetItems(items []T) {
	p.items = items
	if p.cursor.Sync(len(items)) {
		p.selected = 0
	}
	p.clampSelection()
}

// Items returns the items as given to [SetItems].
func (p *paged[T]) Items() []T {
	return p.items
}

// Len returns the number of items.
func (p *paged[T]) Len() int {
	return len(p.items)
}

// SetLoading sets the loading flag.
func (p *paged[T]) SetLoading(loading bool) {
	p.loading = loading
}

// Loading reports whether the list is loading.
func (p *paged[T]) Loading() bool {
	return p.loading
}

// SetPerPage sets the page size. Values below 1 are clamped to 1.
func (p *paged[T]) SetPerPage(n int) {
	p.cursor.SetPerPage(n)
	p.selected = 0
}

// PerPage returns the page size.
func (p *paged[T]) PerPage() int {
	return p.cursor.PerPage()
}

// SetEmpty sets the copy shown when there are no items. Empty strings keep
// the defaults.
func (p *paged[T]) SetEmpty(message, description string) {
	if message != "" {
		p.emptyMessage = message
	}
	if description != "" {
		p.emptyDescription = description
	}
}

// SetRowKey sets the function used to key rendered rows. A nil function
// restores the default, which keys rows by their absolute index.
func (p *paged[T]) SetRowKey(fn RowKeyFunc[T]) {
	p.rowKey = fn
}

// SetKeyMap replaces the key bindings.
func (p *paged[T]) SetKeyMap(km KeyMap) {
	p.keyMap = km
}

// KeyMap returns the key bindings.
func (p *paged[T]) KeyMap() KeyMap {
	return p.keyMap
}

// SetWidth sets the render width. Zero lets content decide.
func (p *paged[T]) SetWidth(w int) {
	p.width = max(0, w)
}

// State returns the display state. Loading takes precedence over empty.
func (p *paged[T]) State() State {
	switch {
	case p.loading:
		return StateLoading
	case len(p.items) == 0:
		return StateEmpty
	default:
		return StatePopulated
	}
}

// Page returns the current 1-based page.
func (p *paged[T]) Page() int {
	return p.cursor.Page()
}

// TotalPages returns the number of pages, never less than 1.
func (p *paged[T]) TotalPages() int {
	return p.cursor.TotalPages()
}

// HasNext reports whether a next page exists.
func (p *paged[T]) HasNext() bool {
	return p.cursor.HasNext()
}

// HasPrev reports whether a previous page exists.
func (p *paged[T]) HasPrev() bool {
	return p.cursor.HasPrev()
}

// NextPage advances one page. It is a no-op on the last page.
func (p *paged[T]) NextPage() bool {
	return p.pageChanged(p.cursor.Next())
}

// PrevPage goes back one page. It is a no-op on the first page.
func (p *paged[T]) PrevPage() bool {
	return p.pageChanged(p.cursor.Prev())
}

// GoToPage jumps to page n, clamped to the valid range.
func (p *paged[T]) GoToPage(n int) bool {
	return p.pageChanged(p.cursor.GoTo(n))
}

// FirstPage jumps to page 1.
func (p *paged[T]) FirstPage() bool {
	return p.pageChanged(p.cursor.First())
}

// LastPage jumps to the last page.
func (p *paged[T]) LastPage() bool {
	return p.pageChanged(p.cursor.Last())
}

func (p *paged[T]) pageChanged(changed bool) bool {
	if changed {
		p.selected = 0
	}
	return changed
}

// PageStart returns the absolute index of the first item of the page.
func (p *paged[T]) PageStart() int {
	start, _ := p.cursor.Window()
	return start
}

// Visible returns the items of the current page.
func (p *paged[T]) Visible() []T {
	start, end := p.cursor.Window()
	return p.items[start:end]
}

// RowKey returns the key of the item at the page-relative index.
func (p *paged[T]) RowKey(item T, index int) string {
	if p.rowKey != nil {
		return p.rowKey(item, index)
	}
	return strconv.Itoa(p.PageStart() + index)
}

// RowKeys returns the keys of the rows of the current page.
func (p *paged[T]) RowKeys() []string {
	visible := p.Visible()
	keys := make([]string, len(visible))
	for i, item := range visible {
		keys[i] = p.RowKey(item, i)
	}
	return keys
}

// Selected returns the selected item of the current page.
func (p *paged[T]) Selected() (T, bool) {
	visible := p.Visible()
	if p.State() != StatePopulated || len(visible) == 0 {
		var zero T
		return zero, false
	}
	return visible[p.selected], true
}

// SelectedIndex returns the absolute index of the selected item, or -1.
func (p *paged[T]) SelectedIndex() int {
	if _, ok := p.Selected(); !ok {
		return -1
	}
	return p.PageStart() + p.selected
}

// SelectedKey returns the row key of the selected item, or "".
func (p *paged[T]) SelectedKey() string {
	item, ok := p.Selected()
	if !ok {
		return ""
	}
	return p.RowKey(item, p.selected)
}

// Select moves the selection to the page-relative index, clamped.
func (p *paged[T]) Select(index int) {
	p.selected = index
	p.clampSelection()
}

// SelectNext moves the selection down within the page.
func (p *paged[T]) SelectNext() bool {
	if p.selected >= len(p.Visible())-1 {
		return false
	}
	p.selected++
	return true
}

// SelectPrev moves the selection up within the page.
func (p *paged[T]) SelectPrev() bool {
	if p.selected <= 0 {
		return false
	}
	p.selected--
	return true
}

func (p *paged[T]) clampSelection() {
	p.selected = ordered.Clamp(p.selected, 0, max(0, len(p.Visible())-1))
}

// HandleKey applies page and selection bindings. It reports whether the key
// was consumed.
func (p *paged[T]) HandleKey(msg tea.KeyPressMsg) bool {
	if p.State() != StatePopulated {
		return false
	}
	switch {
	case key.Matches(msg, p.keyMap.NextPage):
		p.NextPage()
	case key.Matches(msg, p.keyMap.PrevPage):
		p.PrevPage()
	case key.Matches(msg, p.keyMap.FirstPage):
		p.FirstPage()
	case key.Matches(msg, p.keyMap.LastPage):
		p.LastPage()
	case key.Matches(msg, p.keyMap.Down):
		p.SelectNext()
	case key.Matches(msg, p.keyMap.Up):
		p.SelectPrev()
	default:
		return false
	}
	return true
}

// HandleMouseDown handles a click at x, y relative to the top-left corner of
// the last rendered view. Clicks on the page strip change pages. It reports
// whether the click hit the strip.
func (p *paged[T]) HandleMouseDown(x, y int) bool {
	if p.stripLine < 0 || y != p.stripLine {
		return false
	}
	for _, z := range p.zones {
		if x < z.x0 || x >= z.x1 {
			continue
		}
		switch z.action {
		case actionPrev:
			p.PrevPage()
		case actionNext:
			p.NextPage()
		case actionPage:
			p.GoToPage(z.page)
		}
		return true
	}
	return false
}

// update dispatches key presses and left clicks. Click coordinates are
// taken as relative to the list origin.
func (p *paged[T]) update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return p.HandleKey(msg)
	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return false
		}
		return p.HandleMouseDown(msg.X, msg.Y)
	}
	return false
}

// frame renders the non-populated states, or the body followed by the page
// strip when there is more than one page.
func (p *paged[T]) frame(body, skeleton func() string) string {
	p.zones = nil
	p.stripLine = -1

	switch p.State() {
	case StateLoading:
		return skeleton()
	case StateEmpty:
		return p.emptyView()
	}

	content := body()
	if p.TotalPages() <= 1 {
		return content
	}
	strip := p.renderStrip()
	p.stripLine = lipgloss.Height(content) + 1
	return lipgloss.JoinVertical(lipgloss.Left, content, "", strip)
}

func (p *paged[T]) emptyView() string {
	view := lipgloss.JoinVertical(
		lipgloss.Left,
		p.sty.List.EmptyMessage.Render(p.emptyMessage),
		p.sty.List.EmptyDescription.Render(p.emptyDescription),
	)
	if p.width > 0 {
		return lipgloss.NewStyle().Width(p.width).Padding(1, 2).Render(view)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(view)
}
