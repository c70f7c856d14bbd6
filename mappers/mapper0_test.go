package mappers

import (
	"testing"

	"github.com/bdwalton/famicore/nesrom"
)

// testROM builds a cartridge with the given PRG block count, CHR
// block count and mapper id.
func testROM(t *testing.T, prgBlocks, chrBlocks int, mapper uint8) *nesrom.ROM {
	t.Helper()

	raw := make([]byte, 16+prgBlocks*nesrom.PRG_BLOCK_SIZE+chrBlocks*nesrom.CHR_BLOCK_SIZE)
	copy(raw, []byte{0x4E, 0x45, 0x53, 0x1A, uint8(prgBlocks), uint8(chrBlocks), (mapper & 0x0F) << 4, mapper & 0xF0})

	rom, err := nesrom.NewFromBytes(raw)
	if err != nil {
		t.Fatalf("couldn't build test ROM: %v", err)
	}
	return rom
}

func TestGetUnsupported(t *testing.T) {
	rom := testROM(t, 1, 1, 42)
	if _, err := Get(rom); err == nil {
		t.Errorf("Get(mapper 42) = nil error, wanted unsupported")
	}

	rom = testROM(t, 1, 1, 0)
	m, err := Get(rom)
	if err != nil || m.ID() != 0 {
		t.Errorf("Get(mapper 0) = %v, %v; wanted NROM", m, err)
	}
}

func TestGetFreshInstances(t *testing.T) {
	rom := testROM(t, 1, 1, 0)
	m1, _ := Get(rom)
	m2, _ := Get(rom)

	m1.CpuWrite(0x6000, 0x55)
	if _, got, _ := m2.CpuRead(0x6000); got != 0 {
		t.Errorf("PRG RAM shared between instances: got %02x, want 0", got)
	}
}

func TestMapper0Prg16k(t *testing.T) {
	m, _ := Get(testROM(t, 1, 1, 0))

	// With 16KB of PRG, $C000-$FFFF mirrors $8000-$BFFF.
	for _, k := range []uint16{0x0000, 0x0001, 0x1234, 0x3FFF} {
		lo, _, loROM := m.CpuRead(0x8000 + k)
		hi, _, hiROM := m.CpuRead(0xC000 + k)
		if !loROM || !hiROM || lo != hi {
			t.Errorf("k=%04x: offsets %04x/%04x (rom %t/%t), wanted mirrored ROM reads", k, lo, hi, loROM, hiROM)
		}
		if lo != int(k) {
			t.Errorf("k=%04x: offset %04x, wanted %04x", k, lo, k)
		}
	}
}

func TestMapper0Prg32k(t *testing.T) {
	m, _ := Get(testROM(t, 2, 1, 0))

	cases := []struct {
		addr uint16
		want int
	}{
		{0x8000, 0x0000},
		{0xBFFF, 0x3FFF},
		{0xC000, 0x4000},
		{0xFFFF, 0x7FFF},
	}

	for i, tc := range cases {
		got, _, fromROM := m.CpuRead(tc.addr)
		if !fromROM || got != tc.want {
			t.Errorf("%d: CpuRead(%04x) = %04x (rom %t), want %04x", i, tc.addr, got, fromROM, tc.want)
		}
	}
}

func TestMapper0PrgRAM(t *testing.T) {
	m, _ := Get(testROM(t, 1, 1, 0))

	m.CpuWrite(0x6000, 0xAB)
	m.CpuWrite(0x7FFF, 0xCD)

	cases := []struct {
		addr uint16
		want uint8
	}{
		{0x6000, 0xAB},
		{0x7FFF, 0xCD},
		{0x6001, 0x00},
	}

	for i, tc := range cases {
		_, got, fromROM := m.CpuRead(tc.addr)
		if fromROM || got != tc.want {
			t.Errorf("%d: CpuRead(%04x) = %02x (rom %t), want %02x inline", i, tc.addr, got, fromROM, tc.want)
		}
	}
}

func TestMapper0RomWritesIgnored(t *testing.T) {
	m, _ := Get(testROM(t, 1, 1, 0))

	m.CpuWrite(0x8000, 0xFF)
	if off, _, fromROM := m.CpuRead(0x8000); !fromROM || off != 0 {
		t.Errorf("ROM write changed mapping: offset %04x (rom %t)", off, fromROM)
	}
}

func TestMapper0UnownedRegion(t *testing.T) {
	m, _ := Get(testROM(t, 1, 1, 0))

	// $4020-$5FFF is in the cartridge range but NROM doesn't answer.
	if _, got, fromROM := m.CpuRead(0x4020); fromROM || got != 0 {
		t.Errorf("CpuRead(4020) = %02x (rom %t), want 0 inline", got, fromROM)
	}
}

func TestMapper0Chr(t *testing.T) {
	// CHR ROM cartridge: reads resolve to offsets, writes ignored.
	m, _ := Get(testROM(t, 1, 1, 0))
	if off, _, fromROM := m.PpuRead(0x1234); !fromROM || off != 0x1234 {
		t.Errorf("PpuRead(1234) = %04x (rom %t), wanted ROM offset 1234", off, fromROM)
	}
	m.PpuWrite(0x1234, 0x55)
	if off, _, fromROM := m.PpuRead(0x1234); !fromROM || off != 0x1234 {
		t.Errorf("CHR ROM write wasn't ignored: %04x (rom %t)", off, fromROM)
	}

	// CHR RAM cartridge: reads return inline data, writes stick.
	m, _ = Get(testROM(t, 1, 0, 0))
	m.PpuWrite(0x0400, 0x99)
	if _, got, fromROM := m.PpuRead(0x0400); fromROM || got != 0x99 {
		t.Errorf("CHR RAM read = %02x (rom %t), want 99 inline", got, fromROM)
	}
}

func TestMapper0Mirroring(t *testing.T) {
	m, _ := Get(testROM(t, 1, 1, 0))
	if _, ok := m.Mirroring(); ok {
		t.Errorf("NROM reported mapper mirroring; should defer to the header")
	}
}
