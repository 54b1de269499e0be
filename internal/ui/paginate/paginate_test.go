package paginate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, perPage, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{20, 10, 2},
		{21, 10, 3},
		{7, 1, 7},
		{5, 0, 5},
		{5, -3, 5},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, TotalPages(tt.n, tt.perPage), "n=%d perPage=%d", tt.n, tt.perPage)
	}
}

func TestPagesCoverListInOrder(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 40; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		for perPage := 1; perPage <= 12; perPage++ {
			var seen []int
			total := TotalPages(n, perPage)
			for page := 1; page <= total; page++ {
				visible := Slice(items, page, perPage)
				require.LessOrEqual(t, len(visible), perPage)
				seen = append(seen, visible...)
			}
			if n == 0 {
				require.Empty(t, seen)
				continue
			}
			require.Equal(t, items, seen, "n=%d perPage=%d", n, perPage)
		}
	}
}

func TestWindowStaysInRange(t *testing.T) {
	t.Parallel()

	start, end := Window(25, 99, 10)
	require.Equal(t, 20, start)
	require.Equal(t, 25, end)

	start, end = Window(25, -4, 10)
	require.Equal(t, 0, start)
	require.Equal(t, 10, end)

	start, end = Window(0, 3, 10)
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)
}

func linkString(links []Link) []any {
	out := make([]any, len(links))
	for i, l := range links {
		if l.Ellipsis {
			out[i] = "…"
			continue
		}
		out[i] = l.Page
	}
	return out
}

func TestLinks(t *testing.T) {
	t.Parallel()

	t.Run("all pages up to seven", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []any{1, 2, 3, 4, 5, 6, 7}, linkString(Links(7, 4)))
		require.Equal(t, []any{1}, linkString(Links(1, 1)))
	})

	t.Run("middle of a large range", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []any{1, "…", 49, 50, 51, "…", 100}, linkString(Links(100, 50)))
	})

	t.Run("first page", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []any{1, 2, "…", 100}, linkString(Links(100, 1)))
	})

	t.Run("last page", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []any{1, "…", 99, 100}, linkString(Links(100, 100)))
	})

	t.Run("near the start has no gap", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []any{1, 2, 3, 4, "…", 8}, linkString(Links(8, 3)))
	})

	t.Run("out of range current is clamped", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []any{1, "…", 9, 10}, linkString(Links(10, 42)))
	})

	t.Run("strip stays bounded", func(t *testing.T) {
		t.Parallel()
		for cur := 1; cur <= 1000; cur += 37 {
			require.LessOrEqual(t, len(Links(1000, cur)), 7)
		}
	})
}
