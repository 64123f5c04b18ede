package gesture

import (
	"sync/atomic"

	"github.com/touchbind/touchbind/utils"
)

// Runner executes a matched command. Implementations must not make the
// caller wait for the command to finish.
type Runner interface {
	Run(command string)
}

// Match describes one successful binding match.
type Match struct {
	Pattern string
	Command string
	Gesture string
	Slot    int
}

// Dispatcher feeds contact-down events through the classifier and buffer
// and triggers the first matching binding. It is owned by the event loop
// goroutine; only the Stats counters may be read concurrently.
type Dispatcher struct {
	table   *Table
	buffer  Buffer
	runner  Runner
	onMatch func(Match)

	events  atomic.Uint64
	matches atomic.Uint64
}

// NewDispatcher returns a dispatcher over table that hands matched
// commands to runner.
func NewDispatcher(table *Table, runner Runner) *Dispatcher {
	return &Dispatcher{table: table, runner: runner}
}

// OnMatch registers an observer invoked after every successful match, once
// the command has been handed to the runner. Must be set before the event
// loop starts.
func (d *Dispatcher) OnMatch(fn func(Match)) {
	d.onMatch = fn
}

// Stats returns the number of contact-down events processed and bindings
// matched so far. Safe to call from other goroutines.
func (d *Dispatcher) Stats() (events, matches uint64) {
	return d.events.Load(), d.matches.Load()
}

// TouchDown handles one contact-down event at a normalized position.
// Out-of-range slots are dropped. Slot 0 restarts gesture accumulation and
// is never matched on its own; higher slots derive the gesture prefix and
// query the table. Processing continues after a match, so the same contact
// sequence can still match a longer pattern as later slots arrive.
func (d *Dispatcher) TouchDown(slot int, x, y float64) {
	if slot < 0 || slot >= MaxSlots {
		return
	}

	d.buffer.Record(slot, Classify(x, y))
	d.events.Add(1)

	if slot == 0 {
		// one-symbol gestures are never dispatched; the minimum
		// pattern length is 2
		return
	}

	gesture := d.buffer.Gesture(slot)
	command, ok := d.table.Match(gesture)
	if !ok {
		return
	}

	d.matches.Add(1)
	letters := Letters(gesture)
	utils.Info("gesture %s matched -> %s", letters, command)
	d.runner.Run(command)

	if d.onMatch != nil {
		d.onMatch(Match{
			Pattern: letters,
			Command: command,
			Gesture: letters,
			Slot:    slot,
		})
	}
}
