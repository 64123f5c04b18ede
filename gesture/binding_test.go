package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBinding_ValidEntries(t *testing.T) {
	tests := []struct {
		entry   string
		pattern string
		command string
	}{
		{"gd-notify-send left-right", "gd", "notify-send left-right"},
		{"hb-true", "hb", "true"},
		{"gdbhg-xdotool key super", "gdbhg", "xdotool key super"},
		{"gd-", "gd", ""},
		{"gd--flag", "gd", "-flag"},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			b, err := ParseBinding(tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, b.Pattern)
			assert.Equal(t, tt.command, b.Command)
		})
	}
}

func TestParseBinding_RejectedEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"letter outside the alphabet", "a-cmd"},
		{"too short, no separator", "g"},
		{"non-direction letter in pattern", "gdbhx-cmd"},
		{"separator before two letters", "g-cmd"},
		{"separator first", "-cmd"},
		{"empty entry", ""},
		{"letters only, no separator", "gdb"},
		{"no separator within five letters", "gdbhgd-cmd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBinding(tt.entry)
			assert.Error(t, err)
		})
	}
}

func TestTable_MatchIsExact(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Add("gd-notify-send left-right"))

	cmd, ok := table.Match([]Zone{ZoneLeft, ZoneRight})
	require.True(t, ok)
	assert.Equal(t, "notify-send left-right", cmd)

	// longer gesture does not match a shorter pattern
	_, ok = table.Match([]Zone{ZoneLeft, ZoneRight, ZoneUp})
	assert.False(t, ok)

	// order matters
	_, ok = table.Match([]Zone{ZoneRight, ZoneLeft})
	assert.False(t, ok)
}

func TestTable_LastDeclaredWins(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Add("gd-command-a"))
	require.NoError(t, table.Add("gd-command-b"))

	cmd, ok := table.Match([]Zone{ZoneLeft, ZoneRight})
	require.True(t, ok)
	assert.Equal(t, "command-b", cmd)
}

func TestTable_BindingsInSearchOrder(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Add("gd-first"))
	require.NoError(t, table.Add("hb-second"))

	bindings := table.Bindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, "hb", bindings[0].Pattern)
	assert.Equal(t, "gd", bindings[1].Pattern)
	assert.Equal(t, 2, table.Len())
}

func TestTable_AddRejectsBadEntry(t *testing.T) {
	table := NewTable()
	assert.Error(t, table.Add("x-cmd"))
	assert.Equal(t, 0, table.Len())
}

func TestTable_ResolveCachesConsistently(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Add("gd-first"))

	// repeated hits and misses must keep returning the same answers
	for i := 0; i < 3; i++ {
		cmd, ok := table.Resolve("gd")
		require.True(t, ok)
		assert.Equal(t, "first", cmd)

		_, ok = table.Resolve("hb")
		assert.False(t, ok)
	}

	// adding afterwards invalidates cached lookups
	require.NoError(t, table.Add("hb-second"))
	cmd, ok := table.Resolve("hb")
	require.True(t, ok)
	assert.Equal(t, "second", cmd)
}
