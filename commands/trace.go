package commands

import (
	"fmt"
	"io"

	"github.com/touchbind/touchbind/gesture"
)

// coordTracer is the diagnostic handler behind debug-events: it keeps the
// latest position per slot and prints the prefix row up to the slot that
// just touched down. No classification, no matching.
type coordTracer struct {
	out   io.Writer
	quiet bool
	x, y  [gesture.MaxSlots]float64
}

func newCoordTracer(out io.Writer, quiet bool) *coordTracer {
	return &coordTracer{out: out, quiet: quiet}
}

func (t *coordTracer) TouchDown(slot int, x, y float64) {
	if slot < 0 || slot >= gesture.MaxSlots {
		return
	}

	t.x[slot], t.y[slot] = x, y

	if t.quiet {
		return
	}
	for i := 0; i <= slot; i++ {
		fmt.Fprintf(t.out, "[%d] %5.2fx%5.2f ", i, t.x[i], t.y[i])
	}
	fmt.Fprintln(t.out)
}
