package list

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     string
	Amount int
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{ID: fmt.Sprintf("tx-%d", i+1), Amount: (i + 1) * 100}
	}
	return out
}

func ids(items []row) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func newTestTable(t *testing.T) *Table[row] {
	t.Helper()
	sty := styles.DefaultStyles()
	return NewTable(&sty,
		Column[row]{Key: "id", Label: "ID", Accessor: func(r row) any { return r.ID }},
		Column[row]{Key: "amount", Label: "Amount", Render: func(r row, _ int) string { return fmt.Sprintf("%d.00", r.Amount) }},
	)
}

func newTestCards(t *testing.T) *Cards[row] {
	t.Helper()
	sty := styles.DefaultStyles()
	return NewCards(&sty, func(r row) string { return "card " + r.ID })
}

func plain(s string) string {
	return ansi.Strip(s)
}

func countLines(s, substr string) int {
	n := 0
	for line := range strings.SplitSeq(s, "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func TestLoadingTakesPrecedenceOverEmpty(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t).WithPerPage(4).WithEmpty("No transactions", "Try widening the date range.")
	tbl.SetLoading(true)
	require.Equal(t, StateLoading, tbl.State())

	view := plain(tbl.View())
	require.NotContains(t, view, "No transactions")
	require.Equal(t, 4, countLines(view, styles.SkeletonBlock), "one placeholder row per page slot")
	require.NotContains(t, view, nextLabel)

	tbl.SetLoading(false)
	require.Equal(t, StateEmpty, tbl.State())
	view = plain(tbl.View())
	require.Contains(t, view, "No transactions")
	require.Contains(t, view, "Try widening the date range.")
	require.NotContains(t, view, "Amount", "empty state has no table")
	require.NotContains(t, view, nextLabel)
}

func TestLoadingWithItemsStillShowsSkeleton(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	tbl.SetItems(rows(3))
	tbl.SetLoading(true)
	require.Equal(t, StateLoading, tbl.State())
	view := plain(tbl.View())
	require.NotContains(t, view, "tx-1")
	require.Equal(t, 10, countLines(view, styles.SkeletonBlock))
}

func TestSinglePageHasNoPagination(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	tbl.SetItems(rows(5))
	require.Equal(t, StatePopulated, tbl.State())
	require.Equal(t, 1, tbl.TotalPages())

	view := plain(tbl.View())
	require.Contains(t, view, "tx-5")
	require.NotContains(t, view, prevLabel)
	require.NotContains(t, view, nextLabel)
	require.Equal(t, -1, tbl.stripLine)
}

func TestSecondPageOfTwenty(t *testing.T) {
	t.Parallel()

	items := rows(20)
	tbl := newTestTable(t)
	tbl.SetItems(items)

	require.False(t, tbl.HasPrev())
	require.True(t, tbl.NextPage())
	require.Equal(t, 2, tbl.Page())
	require.Equal(t, ids(items[10:20]), ids(tbl.Visible()))
	require.False(t, tbl.HasNext())
	require.False(t, tbl.NextPage(), "next is disabled on the last page")
	require.Equal(t, 2, tbl.Page())

	view := plain(tbl.View())
	require.Contains(t, view, "tx-11")
	require.Contains(t, view, "tx-20")
	require.NotContains(t, view, "tx-10 ")
	require.Contains(t, view, "11–20 of 20")
	require.Empty(t, slices.DeleteFunc(slices.Clone(tbl.zones), func(z zone) bool { return z.action != actionNext }),
		"no click zone for a disabled next button")
}

func TestDefaultRowKeys(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	tbl.SetItems(rows(25))
	require.Equal(t, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, tbl.RowKeys())

	tbl.NextPage()
	require.Equal(t, "12", tbl.RowKeys()[2])

	tbl.LastPage()
	require.Equal(t, []string{"20", "21", "22", "23", "24"}, tbl.RowKeys())
}

func TestCustomRowKeys(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t).WithRowKey(func(r row, i int) string { return fmt.Sprintf("%s@%d", r.ID, i) })
	tbl.SetItems(rows(15))
	tbl.NextPage()
	require.Equal(t, []string{"tx-11@0", "tx-12@1", "tx-13@2", "tx-14@3", "tx-15@4"}, tbl.RowKeys())

	tbl.Select(1)
	require.Equal(t, "tx-12@1", tbl.SelectedKey())
	require.Equal(t, 11, tbl.SelectedIndex())
}

func TestPageResetsOnlyWhenLengthChanges(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	tbl.SetItems(rows(30))
	require.True(t, tbl.GoToPage(3))

	replaced := rows(30)
	replaced[0].ID = "other"
	tbl.SetItems(replaced)
	require.Equal(t, 3, tbl.Page(), "same count keeps the page")

	tbl.SetItems(rows(29))
	require.Equal(t, 1, tbl.Page())
}

func TestSetItemsDoesNotMutate(t *testing.T) {
	t.Parallel()

	items := rows(12)
	before := slices.Clone(items)
	tbl := newTestTable(t)
	tbl.SetItems(items)
	tbl.NextPage()
	_ = tbl.View()
	require.Equal(t, before, items)
}

func TestColumnCell(t *testing.T) {
	t.Parallel()

	r := row{ID: "tx-1234567890", Amount: 5}
	render := Column[row]{
		Render:   func(r row, i int) string { return fmt.Sprintf("%s#%d", r.ID, i) },
		Accessor: func(r row) any { return "ignored" },
	}
	require.Equal(t, "tx-1234567890#7", render.Cell(r, 7))

	accessor := Column[row]{Accessor: func(r row) any { return r.Amount }}
	require.Equal(t, "5", accessor.Cell(r, 0))

	nilAccessor := Column[row]{Accessor: func(r row) any { return nil }}
	require.Empty(t, nilAccessor.Cell(r, 0))

	require.Empty(t, Column[row]{}.Cell(r, 0))

	narrow := Column[row]{Width: 6, Accessor: func(r row) any { return r.ID }}
	require.Equal(t, "tx-12"+styles.Ellipsis, narrow.Cell(r, 0))
}

func TestRowsUseAbsoluteIndex(t *testing.T) {
	t.Parallel()

	sty := styles.DefaultStyles()
	tbl := NewTable(&sty, Column[row]{Render: func(_ row, i int) string { return fmt.Sprint(i) }})
	tbl.SetItems(rows(15))
	tbl.NextPage()
	require.Equal(t, [][]string{{"10"}, {"11"}, {"12"}, {"13"}, {"14"}}, tbl.Rows())
}

func TestKeyboardPaging(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	tbl.SetItems(rows(35))

	require.True(t, tbl.Update(tea.KeyPressMsg{Code: tea.KeyRight}))
	require.Equal(t, 2, tbl.Page())

	require.True(t, tbl.Update(tea.KeyPressMsg{Code: tea.KeyEnd}))
	require.Equal(t, 4, tbl.Page())
	require.True(t, tbl.Update(tea.KeyPressMsg{Code: tea.KeyRight}), "consumed even on the last page")
	require.Equal(t, 4, tbl.Page())

	require.True(t, tbl.Update(tea.KeyPressMsg{Code: tea.KeyHome}))
	require.Equal(t, 1, tbl.Page())

	require.True(t, tbl.Update(tea.KeyPressMsg{Code: tea.KeyDown}))
	item, ok := tbl.Selected()
	require.True(t, ok)
	require.Equal(t, "tx-2", item.ID)

	require.False(t, tbl.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}))
}

func TestKeysIgnoredWhenNotPopulated(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	require.False(t, tbl.Update(tea.KeyPressMsg{Code: tea.KeyRight}))
	_, ok := tbl.Selected()
	require.False(t, ok)
	require.Equal(t, -1, tbl.SelectedIndex())
}

func TestClickingPageStrip(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	tbl.SetItems(rows(30))

	clickOn := func(label string) bool {
		lines := strings.Split(plain(tbl.View()), "\n")
		require.GreaterOrEqual(t, tbl.stripLine, 0)
		line := lines[tbl.stripLine]
		idx := strings.Index(line, label)
		require.GreaterOrEqual(t, idx, 0, "%q not found in %q", label, line)
		x := ansi.StringWidth(line[:idx]) + 1
		return tbl.HandleMouseDown(x, tbl.stripLine)
	}

	require.True(t, clickOn(" 3 "))
	require.Equal(t, 3, tbl.Page())

	require.False(t, clickOn(nextLabel), "disabled next is not clickable")
	require.Equal(t, 3, tbl.Page())

	require.True(t, clickOn(prevLabel))
	require.Equal(t, 2, tbl.Page())

	require.True(t, clickOn(nextLabel))
	require.Equal(t, 3, tbl.Page())

	require.False(t, tbl.HandleMouseDown(0, 0), "clicks outside the strip are ignored")
}

func TestCompactedStrip(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t).WithPerPage(1)
	tbl.SetItems(rows(100))
	tbl.GoToPage(50)

	lines := strings.Split(plain(tbl.View()), "\n")
	strip := lines[tbl.stripLine]
	fields := strings.Fields(strip)
	// ‹ Prev 1 … 49 50 51 … 100 Next › 50–50 of 100
	require.Equal(t, []string{"‹", "Prev", "1", "…", "49", "50", "51", "…", "100", "Next", "›"}, fields[:11])
}

func TestCardsStates(t *testing.T) {
	t.Parallel()

	cards := newTestCards(t).WithPerPage(3).WithEmpty("No alerts", "All clear.")
	cards.SetLoading(true)
	view := plain(cards.View())
	require.Equal(t, 3, countLines(view, styles.SkeletonBlock))

	cards.SetLoading(false)
	view = plain(cards.View())
	require.Contains(t, view, "No alerts")
	require.Contains(t, view, "All clear.")

	cards.SetItems(rows(7))
	view = plain(cards.View())
	require.Contains(t, view, "card tx-1")
	require.Contains(t, view, "card tx-3")
	require.NotContains(t, view, "card tx-4")
	require.Contains(t, view, "1–3 of 7")

	cards.LastPage()
	require.Equal(t, []string{"tx-7"}, ids(cards.Visible()))
	require.Equal(t, []string{"6"}, cards.RowKeys())
}

func TestPerPageClampedToOne(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t).WithPerPage(0)
	tbl.SetItems(rows(3))
	require.Equal(t, 1, tbl.PerPage())
	require.Equal(t, 3, tbl.TotalPages())
}

func TestStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "loading", StateLoading.String())
	require.Equal(t, "empty", StateEmpty.String())
	require.Equal(t, "populated", StatePopulated.String())
}
