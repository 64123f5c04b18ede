package cli

import (
	"github.com/spf13/cobra"

	"github.com/touchbind/touchbind/commands"
)

var debugEventsCmd = &cobra.Command{
	Use:   "debug-events [/dev/input/event0 ...]",
	Short: "Print raw per-slot touch coordinates",
	Long: `Watches touch devices like run does, but only prints the normalized
per-slot coordinates of every contact-down. No gestures are matched and
no commands are executed.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, _ := cmd.Flags().GetStringArray("device")
		quiet, _ := cmd.Flags().GetBool("quiet")

		return commands.DebugCommand(commands.DebugRequest{
			Devices: append(devices, args...),
			Quiet:   quiet,
		})
	},
}

func init() {
	rootCmd.AddCommand(debugEventsCmd)

	debugEventsCmd.Flags().StringArray("device", nil, "touch device to watch (repeatable)")
	debugEventsCmd.Flags().BoolP("quiet", "q", false, "consume events without printing them")
}
