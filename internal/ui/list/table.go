package list

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// Column describes one table column. Render wins over Accessor; with
// neither the cell is empty.
type Column[T any] struct {
	Key   string
	Label string
	// Width truncates cell content when positive.
	Width int
	// Render receives the item and its absolute index in the list.
	Render   func(item T, index int) string
	Accessor func(item T) any
}

// Cell returns the content of the column for item.
func (c Column[T]) Cell(item T, index int) string {
	var content string
	switch {
	case c.Render != nil:
		content = c.Render(item, index)
	case c.Accessor != nil:
		if v := c.Accessor(item); v != nil {
			content = fmt.Sprint(v)
		}
	}
	if c.Width > 0 {
		content = ansi.Truncate(content, c.Width, styles.Ellipsis)
	}
	return content
}

func (c Column[T]) skeletonWidth() int {
	if c.Width > 0 {
		return c.Width
	}
	return max(lipgloss.Width(c.Label), 6)
}

// Table renders items as a paginated table.
type Table[T any] struct {
	paged[T]
	columns []Column[T]
}

// NewTable returns an empty table with the given columns.
func NewTable[T any](sty *styles.Styles, columns ...Column[T]) *Table[T] {
	return &Table[T]{
		paged:   newPaged[T](sty),
		columns: columns,
	}
}

// WithPerPage sets the page size and returns the table.
func (t *Table[T]) WithPerPage(n int) *Table[T] {
	t.SetPerPage(n)
	return t
}

// WithEmpty sets the empty copy and returns the table.
func (t *Table[T]) WithEmpty(message, description string) *Table[T] {
	t.SetEmpty(message, description)
	return t
}

// WithRowKey sets the row key function and returns the table.
func (t *Table[T]) WithRowKey(fn RowKeyFunc[T]) *Table[T] {
	t.SetRowKey(fn)
	return t
}

// Columns returns the column descriptors.
func (t *Table[T]) Columns() []Column[T] {
	return t.columns
}

// Rows returns the cell contents of the current page.
func (t *Table[T]) Rows() [][]string {
	start := t.PageStart()
	visible := t.Visible()
	rows := make([][]string, len(visible))
	for i, item := range visible {
		row := make([]string, len(t.columns))
		for j, col := range t.columns {
			row[j] = col.Cell(item, start+i)
		}
		rows[i] = row
	}
	return rows
}

// Update handles key presses and clicks relative to the table origin.
func (t *Table[T]) Update(msg tea.Msg) bool {
	return t.update(msg)
}

// View renders the table in its current state.
func (t *Table[T]) View() string {
	return t.frame(
		func() string { return t.render(t.Rows(), t.selected, t.sty.List.Cell) },
		t.skeleton,
	)
}

func (t *Table[T]) skeleton() string {
	rows := make([][]string, t.PerPage())
	for i := range rows {
		row := make([]string, len(t.columns))
		for j, col := range t.columns {
			row[j] = strings.Repeat(styles.SkeletonBlock, col.skeletonWidth())
		}
		rows[i] = row
	}
	return t.render(rows, -1, t.sty.List.Skeleton)
}

func (t *Table[T]) render(rows [][]string, selected int, cell lipgloss.Style) string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Label
	}
	s := t.sty.List
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.Header
			case row == selected:
				return s.SelectedCell
			default:
				return cell
			}
		})
	if t.width > 0 {
		tbl = tbl.Width(t.width)
	}
	return tbl.String()
}
