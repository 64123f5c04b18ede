package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/touchbind/touchbind/commands"
	"github.com/touchbind/touchbind/daemon"
)

var runCmd = &cobra.Command{
	Use:   "run [/dev/input/event0 ...]",
	Short: "Watch touch devices and dispatch gesture bindings",
	Long: `Watches one or more multitouch devices and runs the command bound to
each recognized gesture. Devices can be given as flags or positional
arguments; with neither, multitouch devices are auto-discovered.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetBool/GetString/GetStringArray cannot fail for defined flags
		binds, _ := cmd.Flags().GetStringArray("bind")
		configPath, _ := cmd.Flags().GetString("config")
		devices, _ := cmd.Flags().GetStringArray("device")
		listen, _ := cmd.Flags().GetString("listen")
		enableCORS, _ := cmd.Flags().GetBool("cors")
		isDaemon, _ := cmd.Flags().GetBool("daemon")

		if isDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Println("touchbind daemon spawned")
			return nil
		}

		err := commands.RunCommand(commands.RunRequest{
			Binds:      binds,
			ConfigPath: configPath,
			Devices:    append(devices, args...),
			Listen:     listen,
			EnableCORS: enableCORS,
			Version:    version,
		})

		var confErr *commands.ConfigError
		if errors.As(err, &confErr) {
			fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayP("bind", "g", nil, "gesture binding, e.g. 'gd-notify-send left-right' (repeatable)")
	runCmd.Flags().StringP("config", "c", "", "path to a touchbind config file")
	runCmd.Flags().StringArray("device", nil, "touch device to watch (repeatable)")
	runCmd.Flags().String("listen", "", "address for the JSON-RPC control server (e.g. 'localhost:12000'); disabled when empty")
	runCmd.Flags().Bool("cors", false, "Enable CORS support on the control server")
	runCmd.Flags().BoolP("daemon", "d", false, "Run in daemon mode (background)")
}
