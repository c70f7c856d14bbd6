package cli

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/bdwalton/famicore/console"
	"github.com/bdwalton/famicore/nesrom"
)

var runCmd = &cobra.Command{
	Use:   "run <rom>",
	Short: "Run a NES ROM",
	Long:  "Boots the given iNES/NES2 image (optionally gzip or xz compressed) and drives it with the graphical shell.",
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

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go bus.Run(ctx)

		return ebiten.RunGame(bus)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
