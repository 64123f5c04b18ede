package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/touchbind/touchbind/commands"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Validate and list the effective gesture bindings",
	Long: `Parses the bindings from --bind flags and the config file and prints
the effective table in search order. Exits non-zero when any entry is
rejected, with the same validation the run command applies at startup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		binds, _ := cmd.Flags().GetStringArray("bind")
		configPath, _ := cmd.Flags().GetString("config")

		response := commands.BindingsCommand(commands.BindingsRequest{
			Binds:      binds,
			ConfigPath: configPath,
		})
		printJson(response)
		if response.Status == "error" {
			return fmt.Errorf("%s", response.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bindingsCmd)

	bindingsCmd.Flags().StringArrayP("bind", "g", nil, "gesture binding to validate (repeatable)")
	bindingsCmd.Flags().StringP("config", "c", "", "path to a touchbind config file")
}
