package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bdwalton/famicore/nesrom"
)

var infoJSON bool

var mirroringNames = map[uint8]string{
	nesrom.MIRROR_HORIZONTAL:     "horizontal",
	nesrom.MIRROR_VERTICAL:       "vertical",
	nesrom.MIRROR_FOUR_SCREEN:    "four-screen",
	nesrom.MIRROR_ONE_SCREEN_LOW: "one-screen",
}

var timingNames = map[uint8]string{
	nesrom.TIMING_NTSC:  "NTSC",
	nesrom.TIMING_PAL:   "PAL",
	nesrom.TIMING_MULTI: "multi-region",
	nesrom.TIMING_DENDY: "Dendy",
}

// romInfo is the JSON shape of `famicore info --json`.
type romInfo struct {
	Path         string `json:"path"`
	Format       string `json:"format"`
	Mapper       uint16 `json:"mapper"`
	Submapper    uint8  `json:"submapper"`
	PRGROMSize   int    `json:"prg_rom_size"`
	CHRROMSize   int    `json:"chr_rom_size"`
	PRGRAMSize   int    `json:"prg_ram_size"`
	PRGNVRAMSize int    `json:"prg_nvram_size"`
	CHRRAMSize   int    `json:"chr_ram_size"`
	CHRNVRAMSize int    `json:"chr_nvram_size"`
	Mirroring    string `json:"mirroring"`
	Battery      bool   `json:"battery"`
	Trainer      bool   `json:"trainer"`
	Timing       string `json:"timing"`
}

func gatherInfo(path string, rom *nesrom.ROM) romInfo {
	format := "iNES"
	if rom.IsNES2Format() {
		format = "NES 2.0"
	}

	return romInfo{
		Path:         path,
		Format:       format,
		Mapper:       rom.MapperNum(),
		Submapper:    rom.Submapper(),
		PRGROMSize:   rom.PrgSize(),
		CHRROMSize:   rom.ChrSize(),
		PRGRAMSize:   rom.PrgRAMSize(),
		PRGNVRAMSize: rom.PrgNVRAMSize(),
		CHRRAMSize:   rom.ChrRAMSize(),
		CHRNVRAMSize: rom.ChrNVRAMSize(),
		Mirroring:    mirroringNames[rom.MirroringMode()],
		Battery:      rom.HasSaveRAM(),
		Trainer:      rom.HasTrainer(),
		Timing:       timingNames[rom.TimingMode()],
	}
}

var infoCmd = &cobra.Command{
	Use:   "info <rom>...",
	Short: "Show cartridge header details",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			rom, err := nesrom.New(path)
			if err != nil {
				return err
			}

			info := gatherInfo(path, rom)

			if infoJSON {
				line, err := json.Marshal(info)
				if err != nil {
					return err
				}
				fmt.Println(string(line))
				continue
			}

			fmt.Printf("%s:\n", info.Path)
			fmt.Printf("  format:    %s\n", info.Format)
			fmt.Printf("  mapper:    %d", info.Mapper)
			if info.Submapper != 0 {
				fmt.Printf(".%d", info.Submapper)
			}
			fmt.Println()
			fmt.Printf("  PRG ROM:   %d KiB\n", info.PRGROMSize/1024)
			fmt.Printf("  CHR ROM:   %d KiB\n", info.CHRROMSize/1024)
			if info.PRGRAMSize > 0 {
				fmt.Printf("  PRG RAM:   %d KiB\n", info.PRGRAMSize/1024)
			}
			if info.CHRRAMSize > 0 {
				fmt.Printf("  CHR RAM:   %d KiB\n", info.CHRRAMSize/1024)
			}
			fmt.Printf("  mirroring: %s\n", info.Mirroring)
			fmt.Printf("  battery:   %t\n", info.Battery)
			fmt.Printf("  trainer:   %t\n", info.Trainer)
			fmt.Printf("  timing:    %s\n", info.Timing)
		}

		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVarP(&infoJSON, "json", "j", false, "Output one JSON object per ROM")
	rootCmd.AddCommand(infoCmd)
}
