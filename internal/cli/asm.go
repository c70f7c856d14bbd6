package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bdwalton/famicore/asm"
)

var asmOutput string

var asmCmd = &cobra.Command{
	Use:   "asm <source>",
	Short: "Assemble 6502 source into machine code",
	Long:  "Assembles a file of one-instruction-per-line 6502 source (// comments, literal hex operands, no labels) into raw machine code.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		code, err := asm.Assemble(string(src))
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		if asmOutput == "-" {
			_, err := os.Stdout.Write(code)
			return err
		}
		return os.WriteFile(asmOutput, code, 0644)
	},
}

func init() {
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "a.bin", "Output file (- for stdout)")
	rootCmd.AddCommand(asmCmd)
}
