package cli

import (
	"fmt"

	"github.com/mobile-next/touchemu/commands"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local setup",
	Long:  `Checks that the config file parses, that the server address is free and, with --wda, that WebDriverAgent answers.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		listenAddr, _ := cmd.Flags().GetString("listen")
		if listenAddr == "" {
			listenAddr = defaultServerAddress
		}

		response := commands.DoctorCommand(commands.DoctorRequest{
			Version:       version,
			ConfigPath:    resolvedConfigPath(),
			ListenAddress: listenAddr,
			WDAAddress:    wdaAddress,
		})
		printJson(response)
		if response.Status == "error" {
			return fmt.Errorf("%s", response.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().String("listen", "", fmt.Sprintf("Server address to check (default: %s)", defaultServerAddress))
	doctorCmd.Flags().StringVar(&wdaAddress, "wda", "", "WebDriverAgent address to check")
}
