package mos6502

import "fmt"

// 6502 Addressing Modes
// https://www.nesdev.org/wiki/CPU_addressing_modes
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	RELATIVE
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	INDIRECT
	INDIRECT_X // Indexed Indirect
	INDIRECT_Y // Indirect Indexed
)

var modenames = map[uint8]string{IMPLICIT: "IMPLICIT", ACCUMULATOR: "ACCUMULATOR", IMMEDIATE: "IMMEDIATE", ZERO_PAGE: "ZERO_PAGE", ZERO_PAGE_X: "ZERO_PAGE_X", ZERO_PAGE_Y: "ZERO_PAGE_Y", RELATIVE: "RELATIVE", ABSOLUTE: "ABSOLUTE", ABSOLUTE_X: "ABSOLUTE_X", ABSOLUTE_Y: "ABSOLUTE_Y", INDIRECT: "INDIRECT", INDIRECT_X: "INDIRECT_X", INDIRECT_Y: "INDIRECT_Y"}

// Conditional cycle penalties. The decoder attaches one of these to
// every opcode; the executor applies it.
const (
	// No conditional cycles.
	PENALTY_NONE = iota
	// +1 cycle when the effective address crosses a page.
	PENALTY_PAGE_CROSS
	// +1 cycle when the branch is taken, +2 when it lands on a
	// different page. Untaken branches pay nothing.
	PENALTY_BRANCH_TAKEN
)

// 6502 Instructions
// https://www.nesdev.org/obelisk-6502-guide/instructions.html
// https://www.nesdev.org/obelisk-6502-guide/reference.html
//
// KIL is first so the zero value of an opcode table entry marks the
// 105 undocumented codes.
const (
	KIL = iota // Illegal/undocumented opcode
	ADC        // ADD with Carry
	AND        // Logical AND
	ASL        // Arithmetic Shift Left
	BCC        // Branch if Carry Clear
	BCS        // Branch if Carry Set
	BEQ        // Branch if Equal
	BIT        // Bit Test
	BMI        // Branch if Minus
	BNE        // Branch if Not Equal
	BPL        // Branch if Positive
	BRK        // Force Interrupt
	BVC        // Branch if Overflow Clear
	BVS        // Branch if Overflow Set
	CLC        // Clear Carry Flag
	CLD        // Clear Decimal Mode
	CLI        // Clear Interrupt Disable
	CLV        // Clear Overflow Flag
	CMP        // Compare
	CPX        // Compare X Register
	CPY        // Compare Y Register
	DEC        // Decrement Memory
	DEX        // Decrement X Register
	DEY        // Decrement Y Register
	EOR        // Exclusive OR
	INC        // Increment Memory
	INX        // Increment X Register
	INY        // Increment Y Register
	JMP        // Jump
	JSR        // Jump to Subroutine
	LDA        // Load Accumulator
	LDX        // Load X Register
	LDY        // Load Y Register
	LSR        // Logical Shift Right
	NOP        // No Operation
	ORA        // Logical Inclusive OR
	PHA        // Push Accumulator
	PHP        // Push Processor Status
	PLA        // Pull Accumulator
	PLP        // Pull Processor Status
	ROL        // Rotate Left
	ROR        // Rotate Right
	RTI        // Return from Interrupt
	RTS        // Return from Subroutine
	SBC        // Subtract With Carry
	SEC        // Set Carry Flag
	SED        // Set Decimal Flag
	SEI        // Set Interrupt Disable
	STA        // Store Accumulator
	STX        // Store X Register
	STY        // Store Y Register
	TAX        // Transfer Accumulator to X
	TAY        // Transfer Accumulator to Y
	TSX        // Transfer Stack Pointer to X
	TXA        // Transfer X to Accumulator
	TXS        // Transfer X to Stack Pointer
	TYA        // Transfer Y to Accumulator

	numInstructions
)

var instNames = [numInstructions]string{
	KIL: "KIL", ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC",
	BCS: "BCS", BEQ: "BEQ", BIT: "BIT", BMI: "BMI", BNE: "BNE",
	BPL: "BPL", BRK: "BRK", BVC: "BVC", BVS: "BVS", CLC: "CLC",
	CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP", CPX: "CPX",
	CPY: "CPY", DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR",
	LDA: "LDA", LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP",
	ORA: "ORA", PHA: "PHA", PHP: "PHP", PLA: "PLA", PLP: "PLP",
	ROL: "ROL", ROR: "ROR", RTI: "RTI", RTS: "RTS", SBC: "SBC",
	SEC: "SEC", SED: "SED", SEI: "SEI", STA: "STA", STX: "STX",
	STY: "STY", TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA",
	TXS: "TXS", TYA: "TYA",
}

type opcode struct {
	inst    uint8 // The instruction id
	mode    uint8 // The memory addressing mode to use
	bytes   uint8 // Total instruction length including the opcode byte
	cycles  uint8 // Base cycles consumed by the instruction
	penalty uint8 // Which conditional cycles apply
}

func (o opcode) String() string {
	return fmt.Sprintf("{%s, %s}", instNames[o.inst], modenames[o.mode])
}

// The 151 documented opcodes, indexed by opcode byte. Zero-valued
// entries are KIL. Verified against the nesdev 6502 reference; don't
// edit entries without checking it.
var opcodes = [256]opcode{
	0x69: {ADC, IMMEDIATE, 2, 2, PENALTY_NONE},
	0x65: {ADC, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0x75: {ADC, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0x6D: {ADC, ABSOLUTE, 3, 4, PENALTY_NONE},
	0x7D: {ADC, ABSOLUTE_X, 3, 4, PENALTY_PAGE_CROSS},
	0x79: {ADC, ABSOLUTE_Y, 3, 4, PENALTY_PAGE_CROSS},
	0x61: {ADC, INDIRECT_X, 2, 6, PENALTY_NONE},
	0x71: {ADC, INDIRECT_Y, 2, 5, PENALTY_PAGE_CROSS},
	0x29: {AND, IMMEDIATE, 2, 2, PENALTY_NONE},
	0x25: {AND, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0x35: {AND, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0x2D: {AND, ABSOLUTE, 3, 4, PENALTY_NONE},
	0x3D: {AND, ABSOLUTE_X, 3, 4, PENALTY_PAGE_CROSS},
	0x39: {AND, ABSOLUTE_Y, 3, 4, PENALTY_PAGE_CROSS},
	0x21: {AND, INDIRECT_X, 2, 6, PENALTY_NONE},
	0x31: {AND, INDIRECT_Y, 2, 5, PENALTY_PAGE_CROSS},
	0x0A: {ASL, ACCUMULATOR, 1, 2, PENALTY_NONE},
	0x06: {ASL, ZERO_PAGE, 2, 5, PENALTY_NONE},
	0x16: {ASL, ZERO_PAGE_X, 2, 6, PENALTY_NONE},
	0x0E: {ASL, ABSOLUTE, 3, 6, PENALTY_NONE},
	0x1E: {ASL, ABSOLUTE_X, 3, 7, PENALTY_NONE},
	0x90: {BCC, RELATIVE, 2, 2, PENALTY_BRANCH_TAKEN},
	0xB0: {BCS, RELATIVE, 2, 2, PENALTY_BRANCH_TAKEN},
	0xF0: {BEQ, RELATIVE, 2, 2, PENALTY_BRANCH_TAKEN},
	0x24: {BIT, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0x2C: {BIT, ABSOLUTE, 3, 4, PENALTY_NONE},
	0x30: {BMI, RELATIVE, 2, 2, PENALTY_BRANCH_TAKEN},
	0xD0: {BNE, RELATIVE, 2, 2, PENALTY_BRANCH_TAKEN},
	0x10: {BPL, RELATIVE, 2, 2, PENALTY_BRANCH_TAKEN},
	0x00: {BRK, IMPLICIT, 1, 7, PENALTY_NONE},
	0x50: {BVC, RELATIVE, 2, 2, PENALTY_BRANCH_TAKEN},
	0x70: {BVS, RELATIVE, 2, 2, PENALTY_BRANCH_TAKEN},
	0x18: {CLC, IMPLICIT, 1, 2, PENALTY_NONE},
	0xD8: {CLD, IMPLICIT, 1, 2, PENALTY_NONE},
	0x58: {CLI, IMPLICIT, 1, 2, PENALTY_NONE},
	0xB8: {CLV, IMPLICIT, 1, 2, PENALTY_NONE},
	0xC9: {CMP, IMMEDIATE, 2, 2, PENALTY_NONE},
	0xC5: {CMP, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0xD5: {CMP, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0xCD: {CMP, ABSOLUTE, 3, 4, PENALTY_NONE},
	0xDD: {CMP, ABSOLUTE_X, 3, 4, PENALTY_PAGE_CROSS},
	0xD9: {CMP, ABSOLUTE_Y, 3, 4, PENALTY_PAGE_CROSS},
	0xC1: {CMP, INDIRECT_X, 2, 6, PENALTY_NONE},
	0xD1: {CMP, INDIRECT_Y, 2, 5, PENALTY_PAGE_CROSS},
	0xE0: {CPX, IMMEDIATE, 2, 2, PENALTY_NONE},
	0xE4: {CPX, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0xEC: {CPX, ABSOLUTE, 3, 4, PENALTY_NONE},
	0xC0: {CPY, IMMEDIATE, 2, 2, PENALTY_NONE},
	0xC4: {CPY, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0xCC: {CPY, ABSOLUTE, 3, 4, PENALTY_NONE},
	0xC6: {DEC, ZERO_PAGE, 2, 5, PENALTY_NONE},
	0xD6: {DEC, ZERO_PAGE_X, 2, 6, PENALTY_NONE},
	0xCE: {DEC, ABSOLUTE, 3, 6, PENALTY_NONE},
	0xDE: {DEC, ABSOLUTE_X, 3, 7, PENALTY_NONE},
	0xCA: {DEX, IMPLICIT, 1, 2, PENALTY_NONE},
	0x88: {DEY, IMPLICIT, 1, 2, PENALTY_NONE},
	0x49: {EOR, IMMEDIATE, 2, 2, PENALTY_NONE},
	0x45: {EOR, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0x55: {EOR, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0x4D: {EOR, ABSOLUTE, 3, 4, PENALTY_NONE},
	0x5D: {EOR, ABSOLUTE_X, 3, 4, PENALTY_PAGE_CROSS},
	0x59: {EOR, ABSOLUTE_Y, 3, 4, PENALTY_PAGE_CROSS},
	0x41: {EOR, INDIRECT_X, 2, 6, PENALTY_NONE},
	0x51: {EOR, INDIRECT_Y, 2, 5, PENALTY_PAGE_CROSS},
	0xE6: {INC, ZERO_PAGE, 2, 5, PENALTY_NONE},
	0xF6: {INC, ZERO_PAGE_X, 2, 6, PENALTY_NONE},
	0xEE: {INC, ABSOLUTE, 3, 6, PENALTY_NONE},
	0xFE: {INC, ABSOLUTE_X, 3, 7, PENALTY_NONE},
	0xE8: {INX, IMPLICIT, 1, 2, PENALTY_NONE},
	0xC8: {INY, IMPLICIT, 1, 2, PENALTY_NONE},
	0x4C: {JMP, ABSOLUTE, 3, 3, PENALTY_NONE},
	0x6C: {JMP, INDIRECT, 3, 5, PENALTY_NONE},
	0x20: {JSR, ABSOLUTE, 3, 6, PENALTY_NONE},
	0xA9: {LDA, IMMEDIATE, 2, 2, PENALTY_NONE},
	0xA5: {LDA, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0xB5: {LDA, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0xAD: {LDA, ABSOLUTE, 3, 4, PENALTY_NONE},
	0xBD: {LDA, ABSOLUTE_X, 3, 4, PENALTY_PAGE_CROSS},
	0xB9: {LDA, ABSOLUTE_Y, 3, 4, PENALTY_PAGE_CROSS},
	0xA1: {LDA, INDIRECT_X, 2, 6, PENALTY_NONE},
	0xB1: {LDA, INDIRECT_Y, 2, 5, PENALTY_PAGE_CROSS},
	0xA2: {LDX, IMMEDIATE, 2, 2, PENALTY_NONE},
	0xA6: {LDX, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0xB6: {LDX, ZERO_PAGE_Y, 2, 4, PENALTY_NONE},
	0xAE: {LDX, ABSOLUTE, 3, 4, PENALTY_NONE},
	0xBE: {LDX, ABSOLUTE_Y, 3, 4, PENALTY_PAGE_CROSS},
	0xA0: {LDY, IMMEDIATE, 2, 2, PENALTY_NONE},
	0xA4: {LDY, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0xB4: {LDY, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0xAC: {LDY, ABSOLUTE, 3, 4, PENALTY_NONE},
	0xBC: {LDY, ABSOLUTE_X, 3, 4, PENALTY_PAGE_CROSS},
	0x4A: {LSR, ACCUMULATOR, 1, 2, PENALTY_NONE},
	0x46: {LSR, ZERO_PAGE, 2, 5, PENALTY_NONE},
	0x56: {LSR, ZERO_PAGE_X, 2, 6, PENALTY_NONE},
	0x4E: {LSR, ABSOLUTE, 3, 6, PENALTY_NONE},
	0x5E: {LSR, ABSOLUTE_X, 3, 7, PENALTY_NONE},
	0xEA: {NOP, IMPLICIT, 1, 2, PENALTY_NONE},
	0x09: {ORA, IMMEDIATE, 2, 2, PENALTY_NONE},
	0x05: {ORA, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0x15: {ORA, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0x0D: {ORA, ABSOLUTE, 3, 4, PENALTY_NONE},
	0x1D: {ORA, ABSOLUTE_X, 3, 4, PENALTY_PAGE_CROSS},
	0x19: {ORA, ABSOLUTE_Y, 3, 4, PENALTY_PAGE_CROSS},
	0x01: {ORA, INDIRECT_X, 2, 6, PENALTY_NONE},
	0x11: {ORA, INDIRECT_Y, 2, 5, PENALTY_PAGE_CROSS},
	0x48: {PHA, IMPLICIT, 1, 3, PENALTY_NONE},
	0x08: {PHP, IMPLICIT, 1, 3, PENALTY_NONE},
	0x68: {PLA, IMPLICIT, 1, 4, PENALTY_NONE},
	0x28: {PLP, IMPLICIT, 1, 4, PENALTY_NONE},
	0x2A: {ROL, ACCUMULATOR, 1, 2, PENALTY_NONE},
	0x26: {ROL, ZERO_PAGE, 2, 5, PENALTY_NONE},
	0x36: {ROL, ZERO_PAGE_X, 2, 6, PENALTY_NONE},
	0x2E: {ROL, ABSOLUTE, 3, 6, PENALTY_NONE},
	0x3E: {ROL, ABSOLUTE_X, 3, 7, PENALTY_NONE},
	0x6A: {ROR, ACCUMULATOR, 1, 2, PENALTY_NONE},
	0x66: {ROR, ZERO_PAGE, 2, 5, PENALTY_NONE},
	0x76: {ROR, ZERO_PAGE_X, 2, 6, PENALTY_NONE},
	0x6E: {ROR, ABSOLUTE, 3, 6, PENALTY_NONE},
	0x7E: {ROR, ABSOLUTE_X, 3, 7, PENALTY_NONE},
	0x40: {RTI, IMPLICIT, 1, 6, PENALTY_NONE},
	0x60: {RTS, IMPLICIT, 1, 6, PENALTY_NONE},
	0xE9: {SBC, IMMEDIATE, 2, 2, PENALTY_NONE},
	0xE5: {SBC, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0xF5: {SBC, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0xED: {SBC, ABSOLUTE, 3, 4, PENALTY_NONE},
	0xFD: {SBC, ABSOLUTE_X, 3, 4, PENALTY_PAGE_CROSS},
	0xF9: {SBC, ABSOLUTE_Y, 3, 4, PENALTY_PAGE_CROSS},
	0xE1: {SBC, INDIRECT_X, 2, 6, PENALTY_NONE},
	0xF1: {SBC, INDIRECT_Y, 2, 5, PENALTY_PAGE_CROSS},
	0x38: {SEC, IMPLICIT, 1, 2, PENALTY_NONE},
	0xF8: {SED, IMPLICIT, 1, 2, PENALTY_NONE},
	0x78: {SEI, IMPLICIT, 1, 2, PENALTY_NONE},
	0x85: {STA, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0x95: {STA, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0x8D: {STA, ABSOLUTE, 3, 4, PENALTY_NONE},
	0x9D: {STA, ABSOLUTE_X, 3, 5, PENALTY_NONE},
	0x99: {STA, ABSOLUTE_Y, 3, 5, PENALTY_NONE},
	0x81: {STA, INDIRECT_X, 2, 6, PENALTY_NONE},
	0x91: {STA, INDIRECT_Y, 2, 6, PENALTY_NONE},
	0x86: {STX, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0x96: {STX, ZERO_PAGE_Y, 2, 4, PENALTY_NONE},
	0x8E: {STX, ABSOLUTE, 3, 4, PENALTY_NONE},
	0x84: {STY, ZERO_PAGE, 2, 3, PENALTY_NONE},
	0x94: {STY, ZERO_PAGE_X, 2, 4, PENALTY_NONE},
	0x8C: {STY, ABSOLUTE, 3, 4, PENALTY_NONE},
	0xAA: {TAX, IMPLICIT, 1, 2, PENALTY_NONE},
	0xA8: {TAY, IMPLICIT, 1, 2, PENALTY_NONE},
	0xBA: {TSX, IMPLICIT, 1, 2, PENALTY_NONE},
	0x8A: {TXA, IMPLICIT, 1, 2, PENALTY_NONE},
	0x9A: {TXS, IMPLICIT, 1, 2, PENALTY_NONE},
	0x98: {TYA, IMPLICIT, 1, 2, PENALTY_NONE},
}

// lookupKey indexes the inverted opcode table for the assembler.
type lookupKey struct {
	name string
	mode uint8
}

var lookupTable = func() map[lookupKey]uint8 {
	lt := make(map[lookupKey]uint8)
	for b, op := range opcodes {
		if op.inst == KIL {
			continue
		}
		lt[lookupKey{instNames[op.inst], op.mode}] = uint8(b)
	}
	return lt
}()

// Lookup returns the opcode byte for a mnemonic/addressing mode pair.
func Lookup(mnemonic string, mode uint8) (uint8, bool) {
	b, ok := lookupTable[lookupKey{mnemonic, mode}]
	return b, ok
}

// Describe reports the mnemonic and addressing mode of an opcode
// byte. ok is false for the undocumented (KIL) codes.
func Describe(b uint8) (mnemonic string, mode uint8, ok bool) {
	op := opcodes[b]
	if op.inst == KIL {
		return "KIL", IMPLICIT, false
	}
	return instNames[op.inst], op.mode, true
}

// OperandBytes reports how many operand bytes follow an opcode byte.
func OperandBytes(b uint8) int {
	op := opcodes[b]
	if op.inst == KIL {
		return 0
	}
	return int(op.bytes) - 1
}
