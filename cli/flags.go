package cli

import (
	"github.com/mobile-next/touchemu/commands"
	"github.com/mobile-next/touchemu/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	configPath string

	// for server start and replay commands
	wdaAddress string
)

// addEmulatorFlags registers the flags that override config file values.
func addEmulatorFlags(flags *pflag.FlagSet) {
	flags.Float64("offset", 0, "distance in pixels between the pivot and each contact of a two-finger gesture")
	flags.Bool("no-overlay", false, "do not track touch markers")
	flags.String("ignore-tags", "", "comma separated element tags whose mouse events are left alone")
	flags.String("modifier", "", "key that enables two-finger gestures (shift, alt, ctrl or meta)")
}

// configOverrides collects the emulator flags the user actually set.
func configOverrides(cmd *cobra.Command) commands.ConfigOverrides {
	var o commands.ConfigOverrides
	flags := cmd.Flags()

	// Get* cannot fail for defined flags
	if flags.Changed("offset") {
		v, _ := flags.GetFloat64("offset")
		o.MultiTouchOffset = &v
	}
	if flags.Changed("no-overlay") {
		v, _ := flags.GetBool("no-overlay")
		show := !v
		o.ShowTouches = &show
	}
	if flags.Changed("ignore-tags") {
		v, _ := flags.GetString("ignore-tags")
		o.IgnoreTags = &v
	}
	if flags.Changed("modifier") {
		v, _ := flags.GetString("modifier")
		o.Modifier = &v
	}

	return o
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}
