package cli

import (
	"github.com/spf13/cobra"

	"github.com/bdwalton/famicore/console"
	"github.com/bdwalton/famicore/monitor"
	"github.com/bdwalton/famicore/nesrom"
)

var debugCmd = &cobra.Command{
	Use:   "debug <rom>",
	Short: "Open a ROM in the machine monitor",
	Long:  "Boots the given image under the interactive monitor: step instructions, inspect registers and memory, and run to conditional breakpoints like 'a == 0x44 && pc >= 0x8000'.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := nesrom.New(args[0])
		if err != nil {
			return err
		}

		bus, err := console.New(rom)
		if err != nil {
			return err
		}

		return monitor.Run(bus)
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
}
