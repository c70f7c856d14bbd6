package mappers

import (
	"github.com/bdwalton/famicore/nesrom"
)

func init() {
	registerMapper(0, newMapper0)
}

// mapper0 implements NROM: no banking at all. 16KB carts mirror the
// single PRG bank into $C000-$FFFF; 32KB carts map it flat. 8KB of
// PRG RAM sits at $6000-$7FFF.
// https://www.nesdev.org/wiki/NROM
type mapper0 struct {
	prgSize int
	prgRAM  []uint8
	chr     chrStore
}

func newMapper0(rom *nesrom.ROM) Mapper {
	return &mapper0{
		prgSize: rom.PrgSize(),
		prgRAM:  make([]uint8, PRG_RAM_SIZE),
		chr:     newChrStore(rom),
	}
}

func (m *mapper0) ID() uint16 {
	return 0
}

func (m *mapper0) Name() string {
	return "NROM"
}

func (m *mapper0) CpuRead(addr uint16) (int, uint8, bool) {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		return 0, m.prgRAM[addr&0x1FFF], false
	case addr >= 0x8000:
		if m.prgSize <= nesrom.PRG_BLOCK_SIZE {
			// 16KB: upper half mirrors the lower
			return int(addr & 0x3FFF), 0, true
		}
		return int(addr & 0x7FFF), 0, true
	}

	return 0, 0, false
}

func (m *mapper0) CpuWrite(addr uint16, data uint8) {
	// Writes to ROM space are silently ignored.
	if addr >= 0x6000 && addr <= 0x7FFF {
		m.prgRAM[addr&0x1FFF] = data
	}
}

func (m *mapper0) PpuRead(addr uint16) (int, uint8, bool) {
	if addr > 0x1FFF {
		return 0, 0, false
	}
	return m.chr.read(int(addr))
}

func (m *mapper0) PpuWrite(addr uint16, data uint8) {
	if addr > 0x1FFF {
		return
	}
	m.chr.write(int(addr), data)
}

func (m *mapper0) Mirroring() (uint8, bool) {
	return 0, false
}
