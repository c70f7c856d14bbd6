package mappers

import (
	"testing"

	"github.com/bdwalton/famicore/nesrom"
)

// serialWrite clocks a 5-bit value into the MMC1 shift register, low
// bit first, finishing at addr.
func serialWrite(m Mapper, addr uint16, val uint8) {
	for i := 0; i < MMC1_SHIFT_WRITES; i++ {
		m.CpuWrite(addr, (val>>i)&0x01)
	}
}

func newMMC1(t *testing.T, prgBlocks, chrBlocks int) Mapper {
	t.Helper()
	m, err := Get(testROM(t, prgBlocks, chrBlocks, 1))
	if err != nil {
		t.Fatalf("couldn't build MMC1: %v", err)
	}
	return m
}

func TestMMC1PowerOnFixesLastBank(t *testing.T) {
	m := newMMC1(t, 8, 1)

	// Power-on PRG mode is 3: $C000 window fixed to the last bank.
	off, _, fromROM := m.CpuRead(0xC000)
	if !fromROM || off != 7*PRG_BANK_SIZE {
		t.Errorf("CpuRead(C000) = %x (rom %t), want last bank offset %x", off, fromROM, 7*PRG_BANK_SIZE)
	}
}

func TestMMC1PrgBankSwitch(t *testing.T) {
	m := newMMC1(t, 8, 1)

	serialWrite(m, 0xE000, 0x03) // PRG bank 3

	cases := []struct {
		addr uint16
		want int
	}{
		{0x8000, 3 * PRG_BANK_SIZE},
		{0x9234, 3*PRG_BANK_SIZE + 0x1234},
		{0xC000, 7 * PRG_BANK_SIZE}, // still fixed last
	}

	for i, tc := range cases {
		got, _, fromROM := m.CpuRead(tc.addr)
		if !fromROM || got != tc.want {
			t.Errorf("%d: CpuRead(%04x) = %x (rom %t), want %x", i, tc.addr, got, fromROM, tc.want)
		}
	}
}

func TestMMC1PrgModes(t *testing.T) {
	m := newMMC1(t, 8, 1)

	// Mode 2: fix first bank at $8000, switch at $C000.
	serialWrite(m, 0x8000, 0x02<<MMC1_PRG_SHIFT)
	serialWrite(m, 0xE000, 0x05)

	if off, _, _ := m.CpuRead(0x8000); off != 0 {
		t.Errorf("mode 2: $8000 offset = %x, want 0 (fixed first)", off)
	}
	if off, _, _ := m.CpuRead(0xC000); off != 5*PRG_BANK_SIZE {
		t.Errorf("mode 2: $C000 offset = %x, want bank 5", off)
	}

	// Mode 0: 32KB switching; bank register bit 0 ignored.
	serialWrite(m, 0x8000, 0x00)
	serialWrite(m, 0xE000, 0x05)

	if off, _, _ := m.CpuRead(0x8000); off != 4*PRG_BANK_SIZE {
		t.Errorf("mode 0: $8000 offset = %x, want bank 4", off)
	}
	if off, _, _ := m.CpuRead(0xC000); off != 5*PRG_BANK_SIZE {
		t.Errorf("mode 0: $C000 offset = %x, want bank 5", off)
	}
}

func TestMMC1ShiftReset(t *testing.T) {
	m := newMMC1(t, 8, 1)

	// Select PRG mode 2 so we can see the reset flip it back to 3.
	serialWrite(m, 0x8000, 0x02<<MMC1_PRG_SHIFT)

	// Partially fill the shift register, then reset with bit 7.
	m.CpuWrite(0x8000, 0x01)
	m.CpuWrite(0x8000, 0x01)
	m.CpuWrite(0x8000, 0x80)

	// The partial bits must be gone: a full write still works.
	serialWrite(m, 0xE000, 0x02)
	if off, _, _ := m.CpuRead(0x8000); off != 2*PRG_BANK_SIZE {
		t.Errorf("post-reset bank select: offset = %x, want bank 2", off)
	}

	// And the control register is back in fix-last mode.
	if off, _, _ := m.CpuRead(0xC000); off != 7*PRG_BANK_SIZE {
		t.Errorf("post-reset $C000 offset = %x, want last bank", off)
	}
}

func TestMMC1ChrModes(t *testing.T) {
	m := newMMC1(t, 2, 4)

	// 4KB mode with two independent banks.
	serialWrite(m, 0x8000, (0x01<<MMC1_CHR_SHIFT)|MMC1_PRG_FIX_LAST)
	serialWrite(m, 0xA000, 0x02) // CHR bank 0
	serialWrite(m, 0xC000, 0x05) // CHR bank 1

	if off, _, _ := m.PpuRead(0x0000); off != 2*CHR_BANK_SIZE {
		t.Errorf("4KB mode low window = %x, want bank 2", off)
	}
	if off, _, _ := m.PpuRead(0x1010); off != 5*CHR_BANK_SIZE+0x10 {
		t.Errorf("4KB mode high window = %x, want bank 5 + 10", off)
	}

	// 8KB mode: chrBank0 selects a bank pair, low bit ignored.
	serialWrite(m, 0x8000, MMC1_PRG_FIX_LAST)
	serialWrite(m, 0xA000, 0x03)

	if off, _, _ := m.PpuRead(0x0000); off != 2*CHR_BANK_SIZE {
		t.Errorf("8KB mode low = %x, want bank 2", off)
	}
	if off, _, _ := m.PpuRead(0x1000); off != 3*CHR_BANK_SIZE {
		t.Errorf("8KB mode high = %x, want bank 3", off)
	}
}

func TestMMC1Mirroring(t *testing.T) {
	m := newMMC1(t, 2, 1)

	cases := []struct {
		control uint8
		want    uint8
	}{
		{0x00, nesrom.MIRROR_ONE_SCREEN_LOW},
		{0x01, nesrom.MIRROR_ONE_SCREEN_HIGH},
		{0x02, nesrom.MIRROR_VERTICAL},
		{0x03, nesrom.MIRROR_HORIZONTAL},
	}

	for i, tc := range cases {
		serialWrite(m, 0x8000, tc.control|MMC1_PRG_FIX_LAST)
		got, ok := m.Mirroring()
		if !ok || got != tc.want {
			t.Errorf("%d: Mirroring() = %d, %t; want %d, true", i, got, ok, tc.want)
		}
	}
}

func TestMMC1PrgRAM(t *testing.T) {
	m := newMMC1(t, 2, 1)

	m.CpuWrite(0x6000, 0x42)
	if _, got, fromROM := m.CpuRead(0x6000); fromROM || got != 0x42 {
		t.Errorf("PRG RAM read = %02x (rom %t), want 42 inline", got, fromROM)
	}
}

func TestMMC1ChrRAM(t *testing.T) {
	m := newMMC1(t, 2, 0) // no CHR ROM -> 8KB CHR RAM

	m.PpuWrite(0x0123, 0x7E)
	if _, got, fromROM := m.PpuRead(0x0123); fromROM || got != 0x7E {
		t.Errorf("CHR RAM read = %02x (rom %t), want 7e inline", got, fromROM)
	}
}
