package cli

import (
	"fmt"

	"github.com/mobile-next/touchemu/commands"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective emulator configuration",
	Long:  `Prints the configuration that results from the config file and the given flags.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		response := commands.ConfigCommand(resolvedConfigPath(), configOverrides(cmd))
		printJson(response)
		if response.Status == "error" {
			return fmt.Errorf("%s", response.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	addEmulatorFlags(configCmd.Flags())
}
