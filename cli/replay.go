package cli

import (
	"fmt"

	"github.com/mobile-next/touchemu/commands"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [trace]",
	Short: "Replay a recorded mouse trace",
	Long:  `Feeds the mouse samples of a trace file (.json or .plist) through the emulator and prints the touch events they produce. With --wda the gestures are also performed on a device.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := commands.ResolveConfig(resolvedConfigPath(), configOverrides(cmd))
		if err != nil {
			response := commands.NewErrorResponse(err)
			printJson(response)
			return fmt.Errorf("%s", response.Error)
		}

		req := commands.ReplayRequest{
			TracePath:  args[0],
			Config:     cfg,
			WDAAddress: wdaAddress,
		}

		response := commands.ReplayCommand(req)
		printJson(response)
		if response.Status == "error" {
			return fmt.Errorf("%s", response.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVar(&wdaAddress, "wda", "", "WebDriverAgent address to perform gestures on (e.g., 'localhost:8100')")
	addEmulatorFlags(replayCmd.Flags())
}
