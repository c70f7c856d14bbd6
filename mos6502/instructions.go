package mos6502

// execute dispatches one decoded instruction. Addressing happens
// inside the per-instruction methods since a handful of them
// (accumulator shifts, branches) treat their operand specially.
func (c *CPU) execute(op opcode) {
	switch op.inst {
	case ADC:
		c.adc(op.mode)
	case AND:
		c.and(op.mode)
	case ASL:
		c.asl(op.mode)
	case BCC:
		c.branch(STATUS_FLAG_CARRY, false)
	case BCS:
		c.branch(STATUS_FLAG_CARRY, true)
	case BEQ:
		c.branch(STATUS_FLAG_ZERO, true)
	case BIT:
		c.bit(op.mode)
	case BMI:
		c.branch(STATUS_FLAG_NEGATIVE, true)
	case BNE:
		c.branch(STATUS_FLAG_ZERO, false)
	case BPL:
		c.branch(STATUS_FLAG_NEGATIVE, false)
	case BRK:
		c.brk()
	case BVC:
		c.branch(STATUS_FLAG_OVERFLOW, false)
	case BVS:
		c.branch(STATUS_FLAG_OVERFLOW, true)
	case CLC:
		c.flagsOff(STATUS_FLAG_CARRY)
	case CLD:
		c.flagsOff(STATUS_FLAG_DECIMAL)
	case CLI:
		c.flagsOff(STATUS_FLAG_INTERRUPT_DISABLE)
	case CLV:
		c.flagsOff(STATUS_FLAG_OVERFLOW)
	case CMP:
		c.baseCMP(c.acc, c.memRead(c.getOperandAddr(op.mode)))
	case CPX:
		c.baseCMP(c.x, c.memRead(c.getOperandAddr(op.mode)))
	case CPY:
		c.baseCMP(c.y, c.memRead(c.getOperandAddr(op.mode)))
	case DEC:
		c.dec(op.mode)
	case DEX:
		c.x -= 1
		c.setNegativeAndZeroFlags(c.x)
	case DEY:
		c.y -= 1
		c.setNegativeAndZeroFlags(c.y)
	case EOR:
		c.acc = c.acc ^ c.memRead(c.getOperandAddr(op.mode))
		c.setNegativeAndZeroFlags(c.acc)
	case INC:
		c.inc(op.mode)
	case INX:
		c.x += 1
		c.setNegativeAndZeroFlags(c.x)
	case INY:
		c.y += 1
		c.setNegativeAndZeroFlags(c.y)
	case JMP:
		c.pc = c.getOperandAddr(op.mode)
	case JSR:
		c.pushAddress(c.pc + 1) // address of the operand's last byte
		c.pc = c.getOperandAddr(op.mode)
	case LDA:
		c.acc = c.memRead(c.getOperandAddr(op.mode))
		c.setNegativeAndZeroFlags(c.acc)
	case LDX:
		c.x = c.memRead(c.getOperandAddr(op.mode))
		c.setNegativeAndZeroFlags(c.x)
	case LDY:
		c.y = c.memRead(c.getOperandAddr(op.mode))
		c.setNegativeAndZeroFlags(c.y)
	case LSR:
		c.lsr(op.mode)
	case NOP:
	case ORA:
		c.acc = c.acc | c.memRead(c.getOperandAddr(op.mode))
		c.setNegativeAndZeroFlags(c.acc)
	case PHA:
		c.pushStack(c.acc)
	case PHP:
		// The 6502 always sets B and U in pushed status copies.
		c.pushStack(c.status | STATUS_FLAG_BREAK | UNUSED_STATUS_FLAG)
	case PLA:
		c.acc = c.popStack()
		c.setNegativeAndZeroFlags(c.acc)
	case PLP:
		// B is not a real flag and U is hardwired on.
		c.status = (c.popStack() | UNUSED_STATUS_FLAG) &^ STATUS_FLAG_BREAK
	case ROL:
		c.rol(op.mode)
	case ROR:
		c.ror(op.mode)
	case RTI:
		c.status = c.popStack()
		c.pc = c.popAddress()
	case RTS:
		c.pc = c.popAddress() + 1
	case SBC:
		c.sbc(op.mode)
	case SEC:
		c.flagsOn(STATUS_FLAG_CARRY)
	case SED:
		c.flagsOn(STATUS_FLAG_DECIMAL)
	case SEI:
		c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
	case STA:
		c.memWrite(c.getOperandAddr(op.mode), c.acc)
	case STX:
		c.memWrite(c.getOperandAddr(op.mode), c.x)
	case STY:
		c.memWrite(c.getOperandAddr(op.mode), c.y)
	case TAX:
		c.x = c.acc
		c.setNegativeAndZeroFlags(c.x)
	case TAY:
		c.y = c.acc
		c.setNegativeAndZeroFlags(c.y)
	case TSX:
		c.x = c.sp
		c.setNegativeAndZeroFlags(c.x)
	case TXA:
		c.acc = c.x
		c.setNegativeAndZeroFlags(c.acc)
	case TXS:
		c.sp = c.x
	case TYA:
		c.acc = c.y
		c.setNegativeAndZeroFlags(c.acc)
	}
}

// branch will adjust the PC conditionally based on whether the mask
// bits match the predicate; e.g. branch(STATUS_FLAG_OVERFLOW, false)
// branches when OVERFLOW is clear. Taken branches cost one extra
// cycle, two if the target is on a different page than the next
// instruction.
func (c *CPU) branch(mask uint8, predicate bool) {
	if (c.status&mask > 0) != predicate {
		return
	}

	a := c.getOperandAddr(RELATIVE)
	c.cycles += 1
	if pageCrossed(a, c.pc+1) {
		c.cycles += 1
	}
	c.pc = a
}

// decodeBCD interprets a byte as two packed decimal digits.
func decodeBCD(b uint8) uint8 {
	return (b>>4)*10 + b&0x0F
}

// encodeBCD packs a value below 100 into two decimal digits.
func encodeBCD(d uint8) uint8 {
	return (d/10)<<4 | d%10
}

// addWithOverflow adds b to c.acc handling overflow, carry and ZN
// flag setting as appropriate (binary mode).
func (c *CPU) addWithOverflow(b uint8) {
	res16 := uint16(c.acc) + uint16(b) + uint16(c.status&STATUS_FLAG_CARRY)
	res := uint8(res16)

	c.setFlag(STATUS_FLAG_CARRY, res16 > 0xFF)
	c.setFlag(STATUS_FLAG_OVERFLOW, (c.acc^res)&(b^res)&0x80 != 0)

	c.acc = res
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) adc(mode uint8) {
	m := c.memRead(c.getOperandAddr(mode))
	if c.status&STATUS_FLAG_DECIMAL == 0 {
		c.addWithOverflow(m)
		return
	}

	// Decimal mode. The 2A03 never enables this; it's here for
	// parity with the discrete 6502.
	sum := uint16(decodeBCD(c.acc)) + uint16(decodeBCD(m)) + uint16(c.status&STATUS_FLAG_CARRY)
	c.setFlag(STATUS_FLAG_CARRY, sum > 99)
	c.acc = encodeBCD(uint8(sum % 100))

	c.setFlag(STATUS_FLAG_ZERO, c.acc == 0)
	// V is undefined in hardware decimal mode; mirror N off the
	// result's high bit.
	c.setFlag(STATUS_FLAG_NEGATIVE, c.acc&0x80 != 0)
	c.setFlag(STATUS_FLAG_OVERFLOW, c.acc&0x80 != 0)
}

func (c *CPU) sbc(mode uint8) {
	m := c.memRead(c.getOperandAddr(mode))
	if c.status&STATUS_FLAG_DECIMAL == 0 {
		// Borrow is just the carry inverted, so SBC is ADC of
		// the operand's complement.
		c.addWithOverflow(^m)
		return
	}

	borrow := int16(1 - c.status&STATUS_FLAG_CARRY)
	diff := int16(decodeBCD(c.acc)) - int16(decodeBCD(m)) - borrow
	c.setFlag(STATUS_FLAG_CARRY, diff >= 0) // carry set = no borrow
	if diff < 0 {
		diff += 100
	}
	c.acc = encodeBCD(uint8(diff))

	c.setFlag(STATUS_FLAG_ZERO, c.acc == 0)
	c.setFlag(STATUS_FLAG_NEGATIVE, c.acc&0x80 != 0)
	c.setFlag(STATUS_FLAG_OVERFLOW, c.acc&0x80 != 0)
}

// baseCMP does comparison operations on a and b, setting flags
// accordingly. Neither register is mutated.
func (c *CPU) baseCMP(a, b uint8) {
	c.setNegativeAndZeroFlags(a - b)
	c.setFlag(STATUS_FLAG_CARRY, a >= b)
}

func (c *CPU) and(mode uint8) {
	c.acc = c.acc & c.memRead(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) bit(mode uint8) {
	o := c.memRead(c.getOperandAddr(mode))

	c.setFlag(STATUS_FLAG_ZERO, o&c.acc == 0)
	c.setFlag(STATUS_FLAG_NEGATIVE, o&STATUS_FLAG_NEGATIVE != 0)
	c.setFlag(STATUS_FLAG_OVERFLOW, o&STATUS_FLAG_OVERFLOW != 0)
}

// modify applies f to the accumulator or the addressed memory cell
// and returns the old and new values. Shared by the shift/rotate and
// inc/dec instructions.
func (c *CPU) modify(mode uint8, f func(uint8) uint8) (ov, nv uint8) {
	if mode == ACCUMULATOR {
		ov = c.acc
		c.acc = f(ov)
		return ov, c.acc
	}

	addr := c.getOperandAddr(mode)
	ov = c.memRead(addr)
	nv = f(ov)
	c.memWrite(addr, nv)
	return ov, nv
}

func (c *CPU) asl(mode uint8) {
	ov, nv := c.modify(mode, func(v uint8) uint8 { return v << 1 })

	// C is always the shifted-out bit, even when the result is 0.
	c.setFlag(STATUS_FLAG_CARRY, ov&0x80 != 0)
	c.setNegativeAndZeroFlags(nv)
}

func (c *CPU) lsr(mode uint8) {
	ov, nv := c.modify(mode, func(v uint8) uint8 { return v >> 1 })

	c.setFlag(STATUS_FLAG_CARRY, ov&0x01 != 0)
	c.setNegativeAndZeroFlags(nv)
}

func (c *CPU) rol(mode uint8) {
	carryIn := c.status & STATUS_FLAG_CARRY
	ov, nv := c.modify(mode, func(v uint8) uint8 { return v<<1 | carryIn })

	c.setFlag(STATUS_FLAG_CARRY, ov&0x80 != 0)
	c.setNegativeAndZeroFlags(nv)
}

func (c *CPU) ror(mode uint8) {
	carryIn := (c.status & STATUS_FLAG_CARRY) << 7
	ov, nv := c.modify(mode, func(v uint8) uint8 { return v>>1 | carryIn })

	c.setFlag(STATUS_FLAG_CARRY, ov&0x01 != 0)
	c.setNegativeAndZeroFlags(nv)
}

func (c *CPU) dec(mode uint8) {
	_, nv := c.modify(mode, func(v uint8) uint8 { return v - 1 })
	c.setNegativeAndZeroFlags(nv)
}

func (c *CPU) inc(mode uint8) {
	_, nv := c.modify(mode, func(v uint8) uint8 { return v + 1 })
	c.setNegativeAndZeroFlags(nv)
}

// brk forces an interrupt through the IRQ/BRK vector. The pushed
// return address skips the byte after the opcode.
func (c *CPU) brk() {
	c.pushAddress(c.pc + 1)
	c.pushStack(c.status | STATUS_FLAG_BREAK | UNUSED_STATUS_FLAG)
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
	c.pc = c.memRead16(INT_BRK)
}
