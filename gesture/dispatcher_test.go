package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRunner captures commands instead of executing them.
type recordingRunner struct {
	commands []string
}

func (r *recordingRunner) Run(command string) {
	r.commands = append(r.commands, command)
}

func newTestDispatcher(t *testing.T, entries ...string) (*Dispatcher, *recordingRunner) {
	t.Helper()
	table := NewTable()
	for _, e := range entries {
		require.NoError(t, table.Add(e))
	}
	runner := &recordingRunner{}
	return NewDispatcher(table, runner), runner
}

// positions that classify to each zone
var (
	posUp    = [2]float64{50, 10}
	posDown  = [2]float64{50, 90}
	posLeft  = [2]float64{5, 50}
	posRight = [2]float64{95, 50}
)

func TestDispatcher_Slot0NeverDispatches(t *testing.T) {
	d, runner := newTestDispatcher(t, "gd-cmd")

	d.TouchDown(0, posLeft[0], posLeft[1])

	assert.Empty(t, runner.commands)
}

func TestDispatcher_EndToEndScenario(t *testing.T) {
	d, runner := newTestDispatcher(t,
		"gd-notify-send left-right",
		"gdb-notify-send triple",
	)

	d.TouchDown(0, posLeft[0], posLeft[1])
	assert.Empty(t, runner.commands)

	d.TouchDown(1, posRight[0], posRight[1])
	assert.Equal(t, []string{"notify-send left-right"}, runner.commands)

	// processing continues: the same sequence matches a longer pattern
	// as the third contact arrives
	d.TouchDown(2, posDown[0], posDown[1])
	assert.Equal(t, []string{"notify-send left-right", "notify-send triple"}, runner.commands)
}

func TestDispatcher_NoMatchNoSideEffect(t *testing.T) {
	d, runner := newTestDispatcher(t, "gd-cmd")

	d.TouchDown(0, posUp[0], posUp[1])
	d.TouchDown(1, posDown[0], posDown[1])

	assert.Empty(t, runner.commands)
}

func TestDispatcher_OutOfRangeSlotDropped(t *testing.T) {
	d, runner := newTestDispatcher(t, "gd-cmd")

	d.TouchDown(0, posLeft[0], posLeft[1])
	d.TouchDown(MaxSlots, posRight[0], posRight[1])
	d.TouchDown(-1, posRight[0], posRight[1])

	assert.Empty(t, runner.commands)

	events, matches := d.Stats()
	assert.Equal(t, uint64(1), events)
	assert.Equal(t, uint64(0), matches)
}

func TestDispatcher_RestartAfterSequence(t *testing.T) {
	d, runner := newTestDispatcher(t, "gd-first", "hd-second")

	d.TouchDown(0, posLeft[0], posLeft[1])
	d.TouchDown(1, posRight[0], posRight[1])
	require.Equal(t, []string{"first"}, runner.commands)

	// slot 0 again: a new sequence with no contamination from the old one
	d.TouchDown(0, posUp[0], posUp[1])
	d.TouchDown(1, posRight[0], posRight[1])
	assert.Equal(t, []string{"first", "second"}, runner.commands)
}

func TestDispatcher_OnMatchObserver(t *testing.T) {
	d, _ := newTestDispatcher(t, "gd-cmd")

	var got []Match
	d.OnMatch(func(m Match) { got = append(got, m) })

	d.TouchDown(0, posLeft[0], posLeft[1])
	d.TouchDown(1, posRight[0], posRight[1])

	require.Len(t, got, 1)
	assert.Equal(t, "gd", got[0].Pattern)
	assert.Equal(t, "cmd", got[0].Command)
	assert.Equal(t, "gd", got[0].Gesture)
	assert.Equal(t, 1, got[0].Slot)
}

func TestDispatcher_Stats(t *testing.T) {
	d, _ := newTestDispatcher(t, "gd-cmd")

	d.TouchDown(0, posLeft[0], posLeft[1])
	d.TouchDown(1, posRight[0], posRight[1])

	events, matches := d.Stats()
	assert.Equal(t, uint64(2), events)
	assert.Equal(t, uint64(1), matches)
}
