package insts

// Operand resolution turns the raw fields of a decoded record into
// register references, effective addresses, and immediate values. The
// record itself stays untouched; operands are recomputed per call.

// Dest resolves the destination operand of a decoded instruction.
func (i *Instruction) Dest() Operand {
	switch i.Format {
	case FormatRegRM:
		if i.D == 1 {
			return i.regOperand()
		}
		return i.rmOperand()
	case FormatImmToReg:
		return i.regOperand()
	case FormatImmToRM:
		return i.rmOperand()
	case FormatAccMem:
		if i.D == 1 {
			return i.accOperand()
		}
		return i.directOperand()
	case FormatJump:
		return i.jumpOperand()
	}
	return Operand{}
}

// Source resolves the source operand. Jumps have none.
func (i *Instruction) Source() Operand {
	switch i.Format {
	case FormatRegRM:
		if i.D == 1 {
			return i.rmOperand()
		}
		return i.regOperand()
	case FormatImmToReg, FormatImmToRM:
		return i.immOperand()
	case FormatAccMem:
		if i.D == 1 {
			return i.directOperand()
		}
		return i.accOperand()
	}
	return Operand{}
}

func (i *Instruction) regOperand() Operand {
	return Operand{Kind: OperandReg, Reg: regRef(uint8(i.Reg), i.Wide())}
}

func (i *Instruction) accOperand() Operand {
	return Operand{Kind: OperandReg, Reg: regRef(RegAX, i.Wide())}
}

// rmOperand resolves the register/memory operand selected by the mod and
// r/m fields. mod=00 r/m=110 is a direct address, not [bp].
func (i *Instruction) rmOperand() Operand {
	if i.Mod == 0b11 {
		return Operand{Kind: OperandReg, Reg: regRef(uint8(i.RM), i.Wide())}
	}
	if i.Mod == 0b00 && i.RM == 0b110 {
		return i.directOperand()
	}
	return Operand{Kind: OperandMem, Mem: EffAddr{
		Bases: effAddrBases[i.RM],
		Disp:  i.displacement(),
	}}
}

// directOperand builds a memory operand from a 16-bit absolute address.
func (i *Instruction) directOperand() Operand {
	return Operand{Kind: OperandMem, Mem: EffAddr{
		Disp: int16(uint16(i.DispLo) | uint16(i.DispHi)<<8),
	}}
}

// displacement applies the addressing-mode displacement rules: a single
// byte sign-extends to 16 bits, two bytes concatenate low|high unsigned.
func (i *Instruction) displacement() int16 {
	if i.DispLo == Unset {
		return 0
	}
	if i.DispHi == Unset {
		return int16(int8(i.DispLo))
	}
	return int16(uint16(i.DispLo) | uint16(i.DispHi)<<8)
}

func (i *Instruction) immOperand() Operand {
	return Operand{Kind: OperandImm, Imm: i.immediate()}
}

// immediate applies the data-byte rules: with the sign-extend flag set
// and only the low byte present, the byte's high bit extends through the
// upper half (0x80 resolves to 0xFF80); otherwise bytes concatenate
// low|high unsigned, an absent high byte reading as zero.
func (i *Instruction) immediate() uint16 {
	if i.S == 1 && i.DataHi == Unset {
		return uint16(int16(int8(i.DataLo)))
	}
	lo := uint16(i.DataLo)
	if i.DataHi == Unset {
		return lo
	}
	return lo | uint16(i.DataHi)<<8
}

// jumpOperand is the transfer target as a cursor-relative offset: the
// single displacement byte sign-extended to 16 bits, relative to the
// byte after the two-byte instruction.
func (i *Instruction) jumpOperand() Operand {
	return Operand{Kind: OperandImm, Imm: uint16(int16(int8(i.DispLo)))}
}
