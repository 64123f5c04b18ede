package gesture

import (
	"context"

	"github.com/touchbind/touchbind/utils"
)

// Event is one contact-down occurrence delivered by an input source, with
// the position already normalized into the classifier's square.
type Event struct {
	Slot int
	X    float64
	Y    float64
}

// Source is the input-event collaborator the loop pulls from. Wait blocks
// with no timeout until events may be available or Wake is called; Drain
// returns everything queued right now without blocking. Wake must be safe
// to call from another goroutine.
type Source interface {
	Wait() error
	Drain() ([]Event, error)
	Wake()
}

// Handler consumes the contact-down events the loop pulls.
type Handler interface {
	TouchDown(slot int, x, y float64)
}

// Loop is the single-threaded driver: block until the source is readable,
// drain every queued event, dispatch, block again. Cancellation is only
// observed between drain cycles, so a batch that has been pulled is always
// dispatched in full.
type Loop struct {
	source  Source
	handler Handler
}

// NewLoop returns a loop feeding handler from source.
func NewLoop(source Source, handler Handler) *Loop {
	return &Loop{source: source, handler: handler}
}

// Run drives the loop until ctx is cancelled or the source fails.
func (l *Loop) Run(ctx context.Context) error {
	// wake a blocked Wait when cancellation is requested
	stop := context.AfterFunc(ctx, l.source.Wake)
	defer stop()

	// events may already be queued before the first blocking wait; none
	// at all usually means the device nodes are not readable by us
	n, err := l.drain()
	if err != nil {
		return err
	}
	if n == 0 {
		utils.Warn("expected input events on startup but got none. Maybe you don't have the right permissions?")
	}

	for ctx.Err() == nil {
		if err := l.source.Wait(); err != nil {
			return err
		}
		if _, err := l.drain(); err != nil {
			return err
		}
	}

	return nil
}

// drain pulls one batch and dispatches every event in it, even when the
// pull itself ended with an error.
func (l *Loop) drain() (int, error) {
	events, err := l.source.Drain()
	for _, ev := range events {
		l.handler.TouchDown(ev.Slot, ev.X, ev.Y)
	}
	return len(events), err
}
