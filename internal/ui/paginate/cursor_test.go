package paginate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorBoundaries(t *testing.T) {
	t.Parallel()

	c := NewCursor(10)
	c.Sync(20)

	require.False(t, c.Prev(), "prev on page 1 must be a no-op")
	require.Equal(t, 1, c.Page())

	require.True(t, c.Next())
	require.Equal(t, 2, c.Page())

	require.False(t, c.Next(), "next on the last page must be a no-op")
	require.Equal(t, 2, c.Page())
	require.False(t, c.HasNext())
	require.True(t, c.HasPrev())
}

func TestCursorResetsOnLengthChange(t *testing.T) {
	t.Parallel()

	c := NewCursor(10)
	c.Sync(50)
	require.True(t, c.GoTo(4))
	require.Equal(t, 4, c.Page())

	require.False(t, c.Sync(50), "same length keeps the page")
	require.Equal(t, 4, c.Page())

	require.True(t, c.Sync(12))
	require.Equal(t, 1, c.Page())

	c.Next()
	require.True(t, c.Sync(60), "growing also resets")
	require.Equal(t, 1, c.Page())
}

func TestCursorGoToClamps(t *testing.T) {
	t.Parallel()

	c := NewCursor(10)
	c.Sync(35)

	c.GoTo(99)
	require.Equal(t, 4, c.Page())

	c.GoTo(0)
	require.Equal(t, 1, c.Page())

	require.True(t, c.Last())
	start, end := c.Window()
	require.Equal(t, 30, start)
	require.Equal(t, 35, end)

	require.True(t, c.First())
	require.False(t, c.First())
}

func TestCursorClampsPerPage(t *testing.T) {
	t.Parallel()

	c := NewCursor(-5)
	c.Sync(3)
	require.Equal(t, 1, c.PerPage())
	require.Equal(t, 3, c.TotalPages())

	c.SetPerPage(0)
	require.Equal(t, 1, c.PerPage())

	c.SetPerPage(2)
	require.Equal(t, 2, c.TotalPages())
}

func TestCursorEmptyList(t *testing.T) {
	t.Parallel()

	c := NewCursor(10)
	require.Equal(t, 1, c.TotalPages())
	require.False(t, c.Next())
	require.False(t, c.Prev())
	start, end := c.Window()
	require.Zero(t, start)
	require.Zero(t, end)
	require.Len(t, c.Links(), 1)
}
