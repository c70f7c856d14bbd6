// Package console wires the CPU, PPU, controllers and cartridge into
// a NES. The Bus owns every device and does the address decoding
// between them.
package console

import (
	"context"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/famicore/mappers"
	"github.com/bdwalton/famicore/mos6502"
	"github.com/bdwalton/famicore/nesrom"
)

const (
	NES_BASE_MEMORY = 0x800 // 2KB built in RAM

	MAX_ADDRESS          = math.MaxUint16
	MAX_NES_BASE_RAM     = 0x1FFF
	MAX_PPU_REG_MIRRORED = 0x3FFF
	MAX_IO_REG           = 0x401F

	JOY1 = 0x4016
	JOY2 = 0x4017

	OAMDMA = 0x4014 // Triggers DMA from CPU memory to PPU OAM

	// Trainer data loads at $7000 when the cartridge carries one.
	TRAINER_ADDR = 0x7000
)

// The CPU stalls this many cycles while OAM DMA runs.
const DMA_STALL_CYCLES = 513

// NES display constants
const (
	NES_RES_WIDTH  = 256
	NES_RES_HEIGHT = 240
)

type Bus struct {
	cpu         *mos6502.CPU
	ppu         *PPU
	rom         *nesrom.ROM
	mapper      mappers.Mapper
	controllers [2]*controller
	ram         []uint8
	ticks       uint64
}

// New builds a console around a parsed cartridge. The mapper comes
// from the cartridge's header; unsupported mappers surface as errors.
func New(rom *nesrom.ROM) (*Bus, error) {
	m, err := mappers.Get(rom)
	if err != nil {
		return nil, err
	}

	bus := &Bus{
		rom:         rom,
		mapper:      m,
		ram:         make([]uint8, NES_BASE_MEMORY),
		controllers: [2]*controller{{}, {}},
	}

	// The trainer, when present, shadows part of PRG RAM.
	for i, b := range rom.Trainer() {
		m.CpuWrite(TRAINER_ADDR+uint16(i), b)
	}

	bus.ppu = newPPU(bus)
	bus.cpu = mos6502.New(bus)

	ebiten.SetWindowSize(NES_RES_WIDTH*2, NES_RES_HEIGHT*2)
	ebiten.SetWindowTitle("famicore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return bus, nil
}

// CPU exposes the processor for monitors and test harnesses.
func (b *Bus) CPU() *mos6502.CPU {
	return b.cpu
}

// MirrorMode resolves nametable mirroring: the mapper gets first
// claim (MMC1 switches it at runtime), then the header bit.
func (b *Bus) MirrorMode() uint8 {
	if m, ok := b.mapper.Mirroring(); ok {
		return m
	}
	return b.rom.MirroringMode()
}

// ChrRead is used by the PPU to access pattern table data through
// the mapper.
func (b *Bus) ChrRead(addr uint16) uint8 {
	off, data, fromROM := b.mapper.PpuRead(addr)
	if fromROM {
		return b.rom.ChrRead(off)
	}
	return data
}

// ChrWrite sends pattern table writes to the mapper (CHR RAM boards).
func (b *Bus) ChrWrite(addr uint16, val uint8) {
	b.mapper.PpuWrite(addr, val)
}

// TriggerNMI is used by the PPU to signal the CPU that it is in vblank.
func (b *Bus) TriggerNMI() {
	b.cpu.TriggerNMI()
}

func (b *Bus) Read(addr uint16) uint8 {
	// https://www.nesdev.org/wiki/CPU_memory_map
	switch {
	case addr <= MAX_NES_BASE_RAM:
		// 0x800-0x1FFF mirrors 0x0000-0x07FF
		return b.ram[addr&0x7FF]
	case addr <= MAX_PPU_REG_MIRRORED:
		// The eight PPU registers repeat every 8 bytes up to 0x3FFF
		return b.ppu.ReadReg(PPUCTRL + addr&0x0007)
	case addr == JOY1:
		return b.controllers[0].read()
	case addr == JOY2:
		return b.controllers[1].read()
	case addr <= MAX_IO_REG:
		// APU and test registers aren't modeled; nothing answers.
		return 0
	}

	off, data, fromROM := b.mapper.CpuRead(addr)
	if fromROM {
		return b.rom.PrgRead(off)
	}
	return data
}

func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= MAX_NES_BASE_RAM:
		b.ram[addr&0x07FF] = val
	case addr <= MAX_PPU_REG_MIRRORED:
		b.ppu.WriteReg(PPUCTRL+addr&0x0007, val)
	case addr == OAMDMA:
		// Copy a full page from CPU memory into PPU OAM. Real
		// hardware steals the cycles from the CPU.
		base := uint16(val) << 8
		for i := 0; i < 256; i++ {
			b.ppu.WriteReg(OAMDATA, b.Read(base+uint16(i)))
		}
		b.cpu.AddStallCycles(DMA_STALL_CYCLES)
	case addr == JOY1:
		// One write strobes both controllers.
		b.controllers[0].write(val)
		b.controllers[1].write(val)
	case addr <= MAX_IO_REG:
		// APU; dropped.
	default:
		b.mapper.CpuWrite(addr, val)
	}
}

// ClearMem zeroes internal RAM; handy for test setups.
func (b *Bus) ClearMem() {
	b.ram = make([]uint8, len(b.ram))
}

// SetButtons updates the live state of a controller's buttons as a
// BUTTON_* bitmask.
func (b *Bus) SetButtons(pad int, buttons uint8) {
	b.controllers[pad].SetButtons(buttons)
}

// Run drives the machine: the PPU ticks on every master cycle, the
// CPU on every third.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			b.ppu.Tick()
			if b.ticks%3 == 0 {
				b.cpu.Clock()
			}
			b.ticks += 1
		}
	}
}

// StepInstruction advances the CPU one full instruction and keeps the
// PPU in ratio. Used by the monitor.
func (b *Bus) StepInstruction() int {
	c := b.cpu.Step() * 3
	for i := 0; i < c; i++ {
		b.ppu.Tick()
	}
	return c / 3
}

// Layout returns the constant resolution of the NES and is part of
// the ebiten.Game interface. By returning constants here, we will
// force ebiten to scale the display when the window size changes.
func (b *Bus) Layout(w, h int) (int, int) {
	return NES_RES_WIDTH, NES_RES_HEIGHT
}

// Draw paints the PPU's backdrop color. There's no rendering
// pipeline in this build; the shell just proves the machine is
// alive.
func (b *Bus) Draw(screen *ebiten.Image) {
	r, g, bb := b.ppu.BackdropColor()
	screen.Fill(color.RGBA{r, g, bb, 0xFF})
}

// Update is called by ebiten roughly every 1/60s. The emulation runs
// in its own goroutine; here we only poll the keyboard into the
// controller.
func (b *Bus) Update() error {
	b.controllers[0].SetButtons(pollKeys())
	return nil
}
