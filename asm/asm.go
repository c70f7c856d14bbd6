// Package asm implements a small single-pass 6502 assembler: one
// instruction per line, literal hex operands, no labels or macros.
// It exists for tests and tooling, not for building real programs.
package asm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bdwalton/famicore/mos6502"
)

// ErrorKind discriminates what went wrong on a line.
type ErrorKind int

const (
	// InvalidInstruction: the mnemonic doesn't exist or doesn't
	// support the operand's addressing mode.
	InvalidInstruction ErrorKind = iota
	// InvalidAddressingMode: the operand's shape isn't one we know.
	InvalidAddressingMode
	// InvalidValue: a broken immediate literal.
	InvalidValue
	// InvalidAddress: a broken address literal.
	InvalidAddress
)

var kindNames = map[ErrorKind]string{
	InvalidInstruction:    "invalid instruction",
	InvalidAddressingMode: "invalid addressing mode",
	InvalidValue:          "invalid value",
	InvalidAddress:        "invalid address",
}

// Error is a line-tagged assembly failure. Assembly stops at the
// first bad line.
type Error struct {
	Kind ErrorKind
	Line int
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, kindNames[e.Kind])
}

// The operand shapes, most specific first. Two hex digits address the
// zero page, four the full 64k. JMP's indirect form always takes four
// digits.
var (
	immediateRE = regexp.MustCompile(`^#\$([0-9A-Fa-f]{2})$`)
	zeroPageRE  = regexp.MustCompile(`^\$([0-9A-Fa-f]{2})$`)
	zeroPageXRE = regexp.MustCompile(`^\$([0-9A-Fa-f]{2})\s*,\s*[Xx]$`)
	zeroPageYRE = regexp.MustCompile(`^\$([0-9A-Fa-f]{2})\s*,\s*[Yy]$`)
	absoluteRE  = regexp.MustCompile(`^\$([0-9A-Fa-f]{4})$`)
	absoluteXRE = regexp.MustCompile(`^\$([0-9A-Fa-f]{4})\s*,\s*[Xx]$`)
	absoluteYRE = regexp.MustCompile(`^\$([0-9A-Fa-f]{4})\s*,\s*[Yy]$`)
	indirectRE  = regexp.MustCompile(`^\(\$([0-9A-Fa-f]{4})\)$`)
	indirectXRE = regexp.MustCompile(`^\(\$([0-9A-Fa-f]{2})\s*,\s*[Xx]\)$`)
	indirectYRE = regexp.MustCompile(`^\(\$([0-9A-Fa-f]{2})\)\s*,\s*[Yy]$`)
)

// Assemble converts a program of newline-separated instructions into
// machine code. Comments start with // and run to end of line; blank
// lines are skipped. 16-bit operands are emitted little-endian.
func Assemble(program string) ([]byte, error) {
	var out []byte

	for i, line := range strings.Split(program, "\n") {
		lineNumber := i + 1

		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		mnemonic := strings.ToUpper(fields[0])

		if len(fields) == 1 {
			// Implied or accumulator; the mnemonic decides.
			b, ok := mos6502.Lookup(mnemonic, mos6502.IMPLICIT)
			if !ok {
				b, ok = mos6502.Lookup(mnemonic, mos6502.ACCUMULATOR)
			}
			if !ok {
				return nil, &Error{InvalidInstruction, lineNumber}
			}
			out = append(out, b)
			continue
		}

		// Rejoin the operand so "$12 , X" and "$12,X" read the
		// same; the shape regexps tolerate the inner spaces.
		operand := strings.Join(fields[1:], " ")

		bytes, err := assembleOperand(mnemonic, operand, lineNumber)
		if err != nil {
			return nil, err
		}
		out = append(out, bytes...)
	}

	return out, nil
}

func assembleOperand(mnemonic, operand string, line int) ([]byte, error) {
	switch {
	case immediateRE.MatchString(operand):
		val, err := parseByte(immediateRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidValue, line}
		}
		return emit8(mnemonic, mos6502.IMMEDIATE, val, line)

	case zeroPageRE.MatchString(operand):
		val, err := parseByte(zeroPageRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidAddress, line}
		}
		// Branch mnemonics use the same textual shape for their
		// relative offset.
		if bytes, err := emit8(mnemonic, mos6502.ZERO_PAGE, val, line); err == nil {
			return bytes, nil
		}
		return emit8(mnemonic, mos6502.RELATIVE, val, line)

	case zeroPageXRE.MatchString(operand):
		val, err := parseByte(zeroPageXRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidAddress, line}
		}
		return emit8(mnemonic, mos6502.ZERO_PAGE_X, val, line)

	case zeroPageYRE.MatchString(operand):
		val, err := parseByte(zeroPageYRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidAddress, line}
		}
		return emit8(mnemonic, mos6502.ZERO_PAGE_Y, val, line)

	case absoluteRE.MatchString(operand):
		addr, err := parseWord(absoluteRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidAddress, line}
		}
		return emit16(mnemonic, mos6502.ABSOLUTE, addr, line)

	case absoluteXRE.MatchString(operand):
		addr, err := parseWord(absoluteXRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidAddress, line}
		}
		return emit16(mnemonic, mos6502.ABSOLUTE_X, addr, line)

	case absoluteYRE.MatchString(operand):
		addr, err := parseWord(absoluteYRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidAddress, line}
		}
		return emit16(mnemonic, mos6502.ABSOLUTE_Y, addr, line)

	case indirectRE.MatchString(operand):
		addr, err := parseWord(indirectRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidAddress, line}
		}
		return emit16(mnemonic, mos6502.INDIRECT, addr, line)

	case indirectXRE.MatchString(operand):
		val, err := parseByte(indirectXRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidAddress, line}
		}
		return emit8(mnemonic, mos6502.INDIRECT_X, val, line)

	case indirectYRE.MatchString(operand):
		val, err := parseByte(indirectYRE.FindStringSubmatch(operand)[1])
		if err != nil {
			return nil, &Error{InvalidAddress, line}
		}
		return emit8(mnemonic, mos6502.INDIRECT_Y, val, line)
	}

	return nil, &Error{InvalidAddressingMode, line}
}

func emit8(mnemonic string, mode uint8, val uint8, line int) ([]byte, error) {
	b, ok := mos6502.Lookup(mnemonic, mode)
	if !ok {
		return nil, &Error{InvalidInstruction, line}
	}
	return []byte{b, val}, nil
}

func emit16(mnemonic string, mode uint8, addr uint16, line int) ([]byte, error) {
	b, ok := mos6502.Lookup(mnemonic, mode)
	if !ok {
		return nil, &Error{InvalidInstruction, line}
	}
	return []byte{b, uint8(addr & 0x00FF), uint8(addr >> 8)}, nil
}

func parseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	return uint8(v), err
}

func parseWord(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	return uint16(v), err
}
