package cli

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/touchbind/touchbind/utils"
)

const version = "dev"

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "touchbind",
	Short: "A multi-touch gesture to command dispatcher",
	Long:  `touchbind watches touch input devices and runs shell commands bound to multi-finger gestures`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func initConfig() {
	utils.SetVerbose(verbose)
	if verbose {
		utils.Verbose("touchbind version: %s", version)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(jsonData))
}
