package home

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortLong(t *testing.T) {
	if Dir() == "" {
		t.Skip("no home directory")
	}

	p := filepath.Join(Dir(), ".config", "ledgerlens")
	short := Short(p)
	require.Equal(t, filepath.Join("~", ".config", "ledgerlens"), short)
	require.Equal(t, p, Long(short))
	require.Equal(t, "/etc/ledgerlens", Short("/etc/ledgerlens"))
}
