// Package runner is the command execution sink. Matched commands are
// handed to the host shell and never awaited; their exit status is
// invisible to the dispatcher.
package runner

import (
	"os/exec"

	"github.com/touchbind/touchbind/utils"
)

// Shell launches commands through /bin/sh -c, fire-and-forget.
type Shell struct{}

// Run starts the command and returns immediately. The process is reaped
// in the background so finished commands don't linger as zombies.
func (Shell) Run(command string) {
	cmd := exec.Command("/bin/sh", "-c", command)
	if err := cmd.Start(); err != nil {
		utils.Verbose("failed to start %q: %v", command, err)
		return
	}

	go func() {
		_ = cmd.Wait()
	}()
}
