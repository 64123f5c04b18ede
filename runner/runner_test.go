package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_ExecutesThroughShell(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")

	// shell interpretation is part of the contract: redirection must work
	Shell{}.Run(fmt.Sprintf("echo done > %s", marker))

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(marker)
		return err == nil && string(data) == "done\n"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRun_DoesNotBlockOnSlowCommands(t *testing.T) {
	start := time.Now()
	Shell{}.Run("sleep 30")
	assert.Less(t, time.Since(start), time.Second)
}

func TestRun_FailuresAreInvisible(t *testing.T) {
	// must neither panic nor report anything
	Shell{}.Run("exit 3")
	Shell{}.Run("/nonexistent/binary")
}
