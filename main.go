package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mobile-next/touchemu/cli"
	"github.com/mobile-next/touchemu/commands"
	"github.com/mobile-next/touchemu/devices"
)

func main() {
	// create forwarder registry for cleanup tracking
	registry := devices.NewForwarderRegistry()
	commands.SetRegistry(registry)

	// setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	// wait for command completion or signal
	select {
	case <-sigChan:
		// close device sessions still held by forwarders
		registry.CleanupAll()
		os.Exit(0)
	case err := <-done:
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
