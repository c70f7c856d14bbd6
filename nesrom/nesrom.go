package nesrom

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

var (
	// ErrBadMagic is returned for images that don't start with "NES\x1A".
	ErrBadMagic = errors.New("bad iNES magic")
	// ErrTruncated is returned when the image is shorter than the
	// sizes its header declares.
	ErrTruncated = errors.New("truncated ROM image")
	// ErrSizeOverflow is returned when an exponent-notation size
	// field encodes something we can't represent.
	ErrSizeOverflow = errors.New("ROM size field overflow")
)

const (
	HEADER_SIZE  = 16
	TRAINER_SIZE = 512
)

// ROM is a parsed cartridge image. The underlying bytes are never
// mutated after load; writable cartridge state (PRG RAM, bank
// registers) lives in the mapper.
type ROM struct {
	h       *header
	trainer []byte // if present
	prg     []byte // PRG ROM; size from header
	chr     []byte // CHR ROM; size from header, may be empty (CHR RAM)
	misc    []byte // anything after CHR (NES2 miscellaneous ROM)
}

// NewFromBytes parses a raw iNES/NES2 image.
func NewFromBytes(raw []byte) (*ROM, error) {
	if len(raw) < HEADER_SIZE {
		return nil, fmt.Errorf("%d byte image can't hold a header: %w", len(raw), ErrTruncated)
	}

	r := &ROM{h: parseHeader(raw[0:HEADER_SIZE])}
	if !r.h.isINesFormat() {
		return nil, fmt.Errorf("%q: %w", raw[0:4], ErrBadMagic)
	}

	rest := raw[HEADER_SIZE:]
	if r.h.hasTrainer() {
		if len(rest) < TRAINER_SIZE {
			return nil, fmt.Errorf("trainer (have %d, want %d bytes): %w", len(rest), TRAINER_SIZE, ErrTruncated)
		}
		r.trainer, rest = rest[:TRAINER_SIZE], rest[TRAINER_SIZE:]
	}

	s := r.h.prgROMSize()
	if s < 0 {
		return nil, fmt.Errorf("PRG ROM: %w", ErrSizeOverflow)
	}
	if len(rest) < s {
		return nil, fmt.Errorf("PRG ROM (have %d, want %d bytes): %w", len(rest), s, ErrTruncated)
	}
	r.prg, rest = rest[:s], rest[s:]

	s = r.h.chrROMSize()
	if s < 0 {
		return nil, fmt.Errorf("CHR ROM: %w", ErrSizeOverflow)
	}
	if len(rest) < s {
		return nil, fmt.Errorf("CHR ROM (have %d, want %d bytes): %w", len(rest), s, ErrTruncated)
	}
	r.chr, rest = rest[:s], rest[s:]

	r.misc = rest

	return r, nil
}

// New loads a ROM from disk. Images compressed with gzip (.gz) or xz
// (.xz) are decompressed transparently.
func New(path string) (*ROM, error) {
	rf, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open ROM file %q: %w", path, err)
	}
	defer rf.Close()

	var src io.Reader = rf
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(rf)
		if err != nil {
			return nil, fmt.Errorf("couldn't read gzip stream %q: %w", path, err)
		}
		defer gz.Close()
		src = gz
	case ".xz":
		xr, err := xz.NewReader(rf)
		if err != nil {
			return nil, fmt.Errorf("couldn't read xz stream %q: %w", path, err)
		}
		src = xr
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("couldn't read ROM file %q: %w", path, err)
	}

	return NewFromBytes(raw)
}

func (r *ROM) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", r.h))
	sb.WriteString(fmt.Sprintf("mapper %d, mirroring %d\n", r.MapperNum(), r.MirroringMode()))
	if r.h.hasTrainer() {
		sb.WriteString("has trainer\n")
	}

	return sb.String()
}

// PrgRead returns the PRG ROM byte at offset. Offsets come from the
// mapper's address translation; anything it maps beyond the ROM reads
// as 0 (open bus isn't modeled).
func (r *ROM) PrgRead(offset int) uint8 {
	if offset < 0 || offset >= len(r.prg) {
		return 0
	}
	return r.prg[offset]
}

// ChrRead returns the CHR ROM byte at offset.
func (r *ROM) ChrRead(offset int) uint8 {
	if offset < 0 || offset >= len(r.chr) {
		return 0
	}
	return r.chr[offset]
}

// PrgSize returns the PRG ROM size in bytes.
func (r *ROM) PrgSize() int {
	return len(r.prg)
}

// ChrSize returns the CHR ROM size in bytes. 0 means the board
// provides CHR RAM instead.
func (r *ROM) ChrSize() int {
	return len(r.chr)
}

func (r *ROM) Trainer() []byte {
	return r.trainer
}

func (r *ROM) MiscROM() []byte {
	return r.misc
}

func (r *ROM) MapperNum() uint16 {
	return r.h.mapperNum()
}

func (r *ROM) Submapper() uint8 {
	return r.h.submapper()
}

func (r *ROM) MirroringMode() uint8 {
	return r.h.mirroringMode()
}

func (r *ROM) HasSaveRAM() bool {
	return r.h.hasBattery()
}

func (r *ROM) HasTrainer() bool {
	return r.h.hasTrainer()
}

func (r *ROM) IsNES2Format() bool {
	return r.h.isNES2Format()
}

func (r *ROM) ConsoleType() uint8 {
	return r.h.consoleType()
}

func (r *ROM) TimingMode() uint8 {
	return r.h.timingMode()
}

func (r *ROM) PrgRAMSize() int {
	return r.h.prgRAMSize()
}

func (r *ROM) PrgNVRAMSize() int {
	return r.h.prgNVRAMSize()
}

func (r *ROM) ChrRAMSize() int {
	return r.h.chrRAMSize()
}

func (r *ROM) ChrNVRAMSize() int {
	return r.h.chrNVRAMSize()
}
