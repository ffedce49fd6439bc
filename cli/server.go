package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mobile-next/touchemu/commands"
	"github.com/mobile-next/touchemu/daemon"
	"github.com/mobile-next/touchemu/devices/wda"
	"github.com/mobile-next/touchemu/server"
	"github.com/mobile-next/touchemu/utils"
	"github.com/spf13/cobra"
)

const (
	defaultServerAddress = "localhost:12000"
	wdaStartupTimeout    = 5 * time.Second
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server management commands",
	Long:  `Commands for managing the touchemu server.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the touchemu server",
	Long:  `Starts the touchemu server. Clients create sessions and send mouse events over JSON-RPC on /rpc or /ws.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr := cmd.Flag("listen").Value.String()
		if listenAddr == "" {
			listenAddr = defaultServerAddress
		}

		// GetBool/GetInt cannot fail for defined flags
		enableCORS, _ := cmd.Flags().GetBool("cors")
		isDaemon, _ := cmd.Flags().GetBool("daemon")
		maxSessions, _ := cmd.Flags().GetInt("max-sessions")

		cfg, err := commands.ResolveConfig(resolvedConfigPath(), configOverrides(cmd))
		if err != nil {
			return err
		}

		if isDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("Server daemon spawned, attempting to listen on %s\n", listenAddr)
			return nil
		}

		if wdaAddress != "" {
			ctx, cancel := context.WithTimeout(context.Background(), wdaStartupTimeout)
			err := wda.NewWdaClient(wdaAddress).WaitForWebDriverAgent(ctx)
			cancel()
			if err != nil {
				utils.Warn("gestures will not reach the device: %v", err)
			}
		}

		return server.StartServer(listenAddr, enableCORS, server.Options{
			Config:      cfg,
			WDAAddress:  wdaAddress,
			MaxSessions: maxSessions,
			Registry:    commands.GetRegistry(),
		})
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the daemonized touchemu server",
	Long:  `Connects to the server and sends a shutdown command via JSON-RPC.`,
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

		fmt.Printf("Server shutdown command sent successfully\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)

	// server start flags
	serverStartCmd.Flags().String("listen", "", "Address to listen on (e.g., 'localhost:12000' or '0.0.0.0:13000')")
	serverStartCmd.Flags().Bool("cors", false, "Enable CORS support")
	serverStartCmd.Flags().BoolP("daemon", "d", false, "Run server in daemon mode (background)")
	serverStartCmd.Flags().Int("max-sessions", server.DefaultMaxSessions, "Maximum number of live sessions")
	serverStartCmd.Flags().StringVar(&wdaAddress, "wda", "", "WebDriverAgent address to perform gestures on (e.g., 'localhost:8100')")
	addEmulatorFlags(serverStartCmd.Flags())

	// server kill flags
	serverKillCmd.Flags().String("listen", "", fmt.Sprintf("Address of server to kill (default: %s)", defaultServerAddress))
}
