package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/touchbind/touchbind/gesture"
	"github.com/touchbind/touchbind/input"
	"github.com/touchbind/touchbind/runner"
	"github.com/touchbind/touchbind/server"
	"github.com/touchbind/touchbind/utils"
)

// RunRequest represents the parameters for the run command
type RunRequest struct {
	Binds      []string
	ConfigPath string
	Devices    []string
	Listen     string
	EnableCORS bool
	Version    string
}

// DebugRequest represents the parameters for the debug-events command
type DebugRequest struct {
	Devices []string
	Quiet   bool
}

// openSource opens the requested devices, falling back to multitouch
// auto-discovery when none were given.
func openSource(devices []string) (*input.Evdev, error) {
	if len(devices) == 0 {
		discovered, err := input.Discover()
		if err != nil {
			return nil, err
		}
		utils.Verbose("using discovered devices %v", discovered)
		devices = discovered
	}
	return input.Open(devices)
}

// runLoop drives handler from src until a termination signal arrives. On
// clean termination it prints the trailing newline the diagnostic output
// format expects and returns nil. before, when set, runs after signal
// wiring and ahead of the loop, so companions like the control server can
// share the loop's lifetime.
func runLoop(src *input.Evdev, handler gesture.Handler, before func(ctx context.Context, stop context.CancelFunc)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if before != nil {
		before(ctx, stop)
	}

	loop := gesture.NewLoop(src, handler)
	if err := loop.Run(ctx); err != nil {
		return err
	}

	fmt.Println()
	return nil
}

// RunCommand builds the binding table, opens the touch devices and runs
// the dispatch loop until a termination signal arrives. Configuration
// errors are returned before the loop starts; the caller exits non-zero
// with a usage message.
func RunCommand(req RunRequest) error {
	table, cfg, err := loadTable(req.ConfigPath, req.Binds)
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		utils.Warn("no gesture bindings configured; events will be classified but nothing can match")
	}

	devices := req.Devices
	if len(devices) == 0 {
		devices = cfg.Devices
	}
	listen := req.Listen
	if listen == "" {
		listen = cfg.Listen
	}

	src, err := openSource(devices)
	if err != nil {
		return err
	}
	defer src.Close()

	dispatcher := gesture.NewDispatcher(table, runner.Shell{})

	return runLoop(src, dispatcher, func(ctx context.Context, stop context.CancelFunc) {
		if listen == "" {
			return
		}

		srv := server.New(&server.Runtime{
			Table:     table,
			StartedAt: time.Now(),
			Version:   req.Version,
			Stats:     dispatcher.Stats,
			Stop:      stop,
		})
		dispatcher.OnMatch(func(m gesture.Match) {
			srv.Hub().Publish(server.NewMatchEvent(m))
		})

		go func() {
			if err := srv.Start(ctx, listen, req.EnableCORS); err != nil {
				utils.Warn("control server failed: %v", err)
			}
		}()
	})
}

// DebugCommand runs the diagnostic loop: raw per-slot coordinates are
// printed for every contact-down, with no gesture matching.
func DebugCommand(req DebugRequest) error {
	src, err := openSource(req.Devices)
	if err != nil {
		return err
	}
	defer src.Close()

	return runLoop(src, newCoordTracer(os.Stdout, req.Quiet), nil)
}
