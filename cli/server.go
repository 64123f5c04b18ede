package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/touchbind/touchbind/daemon"
)

const defaultServerAddress = "localhost:12000"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Control server management commands",
	Long:  `Commands for talking to the control server of a running touchbind instance.`,
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop a daemonized touchbind instance",
	Long:  `Connects to the control server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = defaultServerAddress
		}

		err := daemon.KillServer(addr)
		if err != nil {
			return err
		}

		fmt.Printf("Shutdown command sent successfully\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.AddCommand(serverKillCmd)

	serverKillCmd.Flags().String("listen", "", fmt.Sprintf("Address of the control server (default: %s)", defaultServerAddress))
}
