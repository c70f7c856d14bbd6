package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "famicore",
	Short:         "A NES emulator core and its tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the famicore command tree.
func Execute() error {
	return rootCmd.Execute()
}
