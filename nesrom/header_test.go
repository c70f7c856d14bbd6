package nesrom

import (
	"reflect"
	"testing"
)

func TestParseHeader(t *testing.T) {
	cases := []struct {
		bytes      []byte
		wantHeader *header
	}{
		{
			[]byte{0x4e, 0x45, 0x53, 0x1a, 0x02, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, &header{constant: "NES\x1a", prgSize: 2, chrSize: 1, flags6: 1, flags7: 0, flags8: 0, flags9: 0, flags10: 0, flags11: 0, flags12: 0, flags13: 0, flags14: 0, flags15: 0},
		},
	}
	for i, tc := range cases {

		if h := parseHeader(tc.bytes); !reflect.DeepEqual(h, tc.wantHeader) {
			t.Errorf("%d: Got %q, wanted %q", i, h, tc.wantHeader)
		}
	}
}

func TestNES2Format(t *testing.T) {
	h := &header{}
	cases := []struct {
		constant           string
		flags7             uint8
		wantINES, wantNES2 bool
	}{
		{"NES\x1A", 0x08, true, true},
		{"NES\x1A", 0x0C, true, false},
		{"BOB\x1A", 0x10, false, false},
		{"BOB\x1A", 0x04, false, false},
		{"BOB\x1A", 0x08, false, false},
	}

	for i, tc := range cases {
		h.constant = tc.constant
		h.flags7 = tc.flags7
		if h.isINesFormat() != tc.wantINES || h.isNES2Format() != tc.wantNES2 {
			t.Errorf("%d: ines = %t want %t; nes2 = %t, want %t", i, h.isINesFormat(), tc.wantINES, h.isNES2Format(), tc.wantNES2)
		}
	}
}

func TestMapperNum(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6, flags7, flags8, flags12, flags13, flags14, flags15 uint8
		want                                                       uint16
	}{
		{0xEF, 0xF0, 0, 0, 0, 0, 0, 0xFE},    // Not NES2, last 4 bytes 0
		{0xFF, 0xE0, 0, 0, 0, 0, 0, 0xEF},    // Not NES2, last 4 bytes 0
		{0xC0, 0xB0, 0, 0, 1, 1, 1, 0x0C},    // Not NES2, last 4 bytes not 0
		{0x1F, 0x20, 0, 0, 1, 1, 1, 0x01},    // Not NES2, last 4 bytes not 0
		{0xFF, 0xF8, 0, 0, 0, 1, 1, 0xFF},    // NES2, last 4 bytes not 0
		{0xAF, 0xD8, 0, 0, 0, 0, 0, 0xDA},    // NES2, last 4 bytes 0
		{0xAF, 0xD8, 0x03, 0, 0, 0, 0, 0x3DA}, // NES2 with 12-bit mapper
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		h.flags7 = tc.flags7
		h.flags8 = tc.flags8
		h.flags12 = tc.flags12
		h.flags13 = tc.flags13
		h.flags14 = tc.flags14
		h.flags15 = tc.flags15
		if got := h.mapperNum(); got != tc.want {
			t.Errorf("%d: Got %d, want %d", i, got, tc.want)
		}
	}
}

func TestHasTrainer(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6 uint8 // where the trainer bit is stored
		want   bool
	}{
		{0xFF, true},
		{0x04, true},
		{0x0C, true},
		{0x0A, false},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		if got := h.hasTrainer(); got != tc.want {
			t.Errorf("%d: Got %t, want %t", i, got, tc.want)
		}
	}
}

func TestMirroringMode(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6 uint8
		want   uint8
	}{
		{0xFF, MIRROR_FOUR_SCREEN},
		{0x00, MIRROR_HORIZONTAL},
		{0x01, MIRROR_VERTICAL},
		{0x08, MIRROR_FOUR_SCREEN},
		{0x09, MIRROR_FOUR_SCREEN},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		if got := h.mirroringMode(); got != tc.want {
			t.Errorf("%d: Got %d, want %d.", i, got, tc.want)
		}
	}
}

func TestBatteryBackedSRAM(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6, flags8 uint8
		want           bool
		wantSize       int
	}{
		{0, 0, false, RAM_BLOCK_SIZE},
		{0, 16, false, 16 * RAM_BLOCK_SIZE},
		{BATTERY_BACKED_SRAM, 0, true, RAM_BLOCK_SIZE},
		{BATTERY_BACKED_SRAM, 1, true, RAM_BLOCK_SIZE},
		{BATTERY_BACKED_SRAM, 16, true, 16 * RAM_BLOCK_SIZE},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		h.flags8 = tc.flags8
		if got, size := h.hasBattery(), h.prgRAMSize(); got != tc.want || size != tc.wantSize {
			t.Errorf("%d: Got %t, wanted %t, size = %d, wanted %d", i, got, tc.want, size, tc.wantSize)
		}
	}
}

func TestShiftSize(t *testing.T) {
	if got := shiftSize(0); got != 0 {
		t.Errorf("shiftSize(0) = %d, want 0", got)
	}

	// 64 << shift for every legal shift count.
	for shift := uint8(1); shift <= 15; shift++ {
		want := 64 << shift
		if got := shiftSize(shift); got != want {
			t.Errorf("shiftSize(%d) = %d, want %d", shift, got, want)
		}
	}
}

func TestNES2RAMSizes(t *testing.T) {
	h := &header{constant: "NES\x1A", flags7: 0x08}
	cases := []struct {
		flags10, flags11                       uint8
		wantPrg, wantPrgNV, wantChr, wantChrNV int
	}{
		{0x00, 0x00, 0, 0, 0, 0},
		{0x07, 0x00, 8192, 0, 0, 0},
		{0x70, 0x07, 0, 8192, 8192, 0},
		{0x97, 0x79, 8192, 32768, 32768, 8192},
	}

	for i, tc := range cases {
		h.flags10 = tc.flags10
		h.flags11 = tc.flags11
		if got := h.prgRAMSize(); got != tc.wantPrg {
			t.Errorf("%d: prgRAMSize = %d, want %d", i, got, tc.wantPrg)
		}
		if got := h.prgNVRAMSize(); got != tc.wantPrgNV {
			t.Errorf("%d: prgNVRAMSize = %d, want %d", i, got, tc.wantPrgNV)
		}
		if got := h.chrRAMSize(); got != tc.wantChr {
			t.Errorf("%d: chrRAMSize = %d, want %d", i, got, tc.wantChr)
		}
		if got := h.chrNVRAMSize(); got != tc.wantChrNV {
			t.Errorf("%d: chrNVRAMSize = %d, want %d", i, got, tc.wantChrNV)
		}
	}
}

func TestROMSize(t *testing.T) {
	cases := []struct {
		field     uint16
		blockSize int
		want      int
	}{
		{0x001, PRG_BLOCK_SIZE, 16384},
		{0x002, PRG_BLOCK_SIZE, 32768},
		{0x001, CHR_BLOCK_SIZE, 8192},
		// Exponent-multiplier: 2^exp * (mult*2 + 1)
		{0xF00, PRG_BLOCK_SIZE, 1},         // 2^0 * 1
		{0xF11, PRG_BLOCK_SIZE, 48},        // 2^4 * 3
		{0xF60, PRG_BLOCK_SIZE, 16777216},  // 2^24 * 1
	}

	for i, tc := range cases {
		if got := romSize(tc.field, tc.blockSize); got != tc.want {
			t.Errorf("%d: romSize(%03x) = %d, want %d", i, tc.field, got, tc.want)
		}
	}
}

func TestTimingMode(t *testing.T) {
	cases := []struct {
		flags7, flags9, flags12 uint8
		want                    uint8
	}{
		{0x00, 0x00, 0x00, TIMING_NTSC},
		{0x00, 0x01, 0x00, TIMING_PAL},
		{0x08, 0x00, 0x02, TIMING_MULTI},
		{0x08, 0x00, 0x03, TIMING_DENDY},
	}

	h := &header{constant: "NES\x1A"}
	for i, tc := range cases {
		h.flags7 = tc.flags7
		h.flags9 = tc.flags9
		h.flags12 = tc.flags12
		if got := h.timingMode(); got != tc.want {
			t.Errorf("%d: Got %d, want %d", i, got, tc.want)
		}
	}
}
