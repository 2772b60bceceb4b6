package insts

// PatternID identifies one entry of the byte pattern table. The set is
// closed: apply dispatches over it exhaustively, so adding a pattern
// means adding a case there as well.
type PatternID uint8

// Byte patterns. Op heads come first, then the mod/reg/r/m families,
// then the payload bytes.
const (
	// PatOpRegRM is the shared register/memory-to/from-register head:
	// [100010|d|w] mov, [000000|d|w] add, [001010|d|w] sub, [001110|d|w] cmp.
	PatOpRegRM PatternID = iota
	// PatOpMovImmToReg8 is [10110|reg] mov immediate to byte register.
	PatOpMovImmToReg8
	// PatOpMovImmToReg16 is [10111|reg] mov immediate to word register.
	PatOpMovImmToReg16
	// PatOpMovImmToRM8 is [11000110] mov immediate to byte register/memory.
	PatOpMovImmToRM8
	// PatOpMovImmToRM16 is [11000111] mov immediate to word register/memory.
	PatOpMovImmToRM16
	// PatOpArithImm8 is [100000|s|w] with one data byte (s=1 or w=0):
	// add/sub/cmp immediate to register/memory, op in the REG field.
	PatOpArithImm8
	// PatOpArithImm16 is [10000001] with two data bytes (s=0, w=1).
	PatOpArithImm16
	// PatOpMovMemToAcc is [1010000|w] mov direct-address memory to accumulator.
	PatOpMovMemToAcc
	// PatOpMovAccToMem is [1010001|w] mov accumulator to direct-address memory.
	PatOpMovAccToMem
	// PatOpArithImmToAcc8 is [0xxx0100] add/sub/cmp immediate to al.
	PatOpArithImmToAcc8
	// PatOpArithImmToAcc16 is [0xxx0101] add/sub/cmp immediate to ax.
	PatOpArithImmToAcc16

	// Conditional transfer heads, one exact byte each.
	PatJe
	PatJl
	PatJle
	PatJb
	PatJbe
	PatJp
	PatJo
	PatJs
	PatJnz
	PatJnl
	PatJnle
	PatJnb
	PatJnbe
	PatJnp
	PatJno
	PatJns
	PatLoop
	PatLoopz
	PatLoopnz
	PatJcxz

	// Mod/reg/r/m bytes with a free REG field (reg/mem<->reg family).
	PatModReg    // mod=11: register to register
	PatModDirect // mod=00 r/m=110: direct 16-bit address
	PatModNoDisp // mod=00: effective address, no displacement
	PatModDisp8  // mod=01: effective address + 8-bit displacement
	PatModDisp16 // mod=10: effective address + 16-bit displacement

	// Mod bytes with REG fixed to 000 (mov immediate to register/memory).
	PatModImmReg
	PatModImmDirect
	PatModImmNoDisp
	PatModImmDisp8
	PatModImmDisp16

	// Mod bytes with REG selecting the arithmetic op: 000 add, 101 sub,
	// 111 cmp. Other subcodes (adc, sbb, and, or, ...) are rejected, so
	// an unsupported member of the group fails decode as a no-match.
	PatModArithReg
	PatModArithDirect
	PatModArithNoDisp
	PatModArithDisp8
	PatModArithDisp16

	// Payload bytes: accept anything, store the raw value.
	PatDispLo
	PatDispHi
	PatDataLo
	PatDataHi

	patternCount
)

// Pattern is one byte pattern: the input byte is masked and compared
// against each accepted value. Multiple accepted values let several
// opcodes share one bit layout.
type Pattern struct {
	Mask     byte
	Accepted []byte
}

// patternTable binds every pattern to its mask and accepted values.
var patternTable = [patternCount]Pattern{
	PatOpRegRM:           {Mask: 0b11111100, Accepted: []byte{0x88, 0x00, 0x28, 0x38}},
	PatOpMovImmToReg8:    {Mask: 0b11111000, Accepted: []byte{0xB0}},
	PatOpMovImmToReg16:   {Mask: 0b11111000, Accepted: []byte{0xB8}},
	PatOpMovImmToRM8:     {Mask: 0b11111111, Accepted: []byte{0xC6}},
	PatOpMovImmToRM16:    {Mask: 0b11111111, Accepted: []byte{0xC7}},
	PatOpArithImm8:       {Mask: 0b11111111, Accepted: []byte{0x80, 0x82, 0x83}},
	PatOpArithImm16:      {Mask: 0b11111111, Accepted: []byte{0x81}},
	PatOpMovMemToAcc:     {Mask: 0b11111110, Accepted: []byte{0xA0}},
	PatOpMovAccToMem:     {Mask: 0b11111110, Accepted: []byte{0xA2}},
	PatOpArithImmToAcc8:  {Mask: 0b11111111, Accepted: []byte{0x04, 0x2C, 0x3C}},
	PatOpArithImmToAcc16: {Mask: 0b11111111, Accepted: []byte{0x05, 0x2D, 0x3D}},

	PatJe:     {Mask: 0xFF, Accepted: []byte{0x74}},
	PatJl:     {Mask: 0xFF, Accepted: []byte{0x7C}},
	PatJle:    {Mask: 0xFF, Accepted: []byte{0x7E}},
	PatJb:     {Mask: 0xFF, Accepted: []byte{0x72}},
	PatJbe:    {Mask: 0xFF, Accepted: []byte{0x76}},
	PatJp:     {Mask: 0xFF, Accepted: []byte{0x7A}},
	PatJo:     {Mask: 0xFF, Accepted: []byte{0x70}},
	PatJs:     {Mask: 0xFF, Accepted: []byte{0x78}},
	PatJnz:    {Mask: 0xFF, Accepted: []byte{0x75}},
	PatJnl:    {Mask: 0xFF, Accepted: []byte{0x7D}},
	PatJnle:   {Mask: 0xFF, Accepted: []byte{0x7F}},
	PatJnb:    {Mask: 0xFF, Accepted: []byte{0x73}},
	PatJnbe:   {Mask: 0xFF, Accepted: []byte{0x77}},
	PatJnp:    {Mask: 0xFF, Accepted: []byte{0x7B}},
	PatJno:    {Mask: 0xFF, Accepted: []byte{0x71}},
	PatJns:    {Mask: 0xFF, Accepted: []byte{0x79}},
	PatLoop:   {Mask: 0xFF, Accepted: []byte{0xE2}},
	PatLoopz:  {Mask: 0xFF, Accepted: []byte{0xE1}},
	PatLoopnz: {Mask: 0xFF, Accepted: []byte{0xE0}},
	PatJcxz:   {Mask: 0xFF, Accepted: []byte{0xE3}},

	PatModReg:    {Mask: 0b11000000, Accepted: []byte{0xC0}},
	PatModDirect: {Mask: 0b11000111, Accepted: []byte{0x06}},
	PatModNoDisp: {Mask: 0b11000000, Accepted: []byte{0x00}},
	PatModDisp8:  {Mask: 0b11000000, Accepted: []byte{0x40}},
	PatModDisp16: {Mask: 0b11000000, Accepted: []byte{0x80}},

	PatModImmReg:    {Mask: 0b11111000, Accepted: []byte{0xC0}},
	PatModImmDirect: {Mask: 0b11111111, Accepted: []byte{0x06}},
	PatModImmNoDisp: {Mask: 0b11111000, Accepted: []byte{0x00}},
	PatModImmDisp8:  {Mask: 0b11111000, Accepted: []byte{0x40}},
	PatModImmDisp16: {Mask: 0b11111000, Accepted: []byte{0x80}},

	PatModArithReg:    {Mask: 0b11111000, Accepted: []byte{0xC0, 0xE8, 0xF8}},
	PatModArithDirect: {Mask: 0b11111111, Accepted: []byte{0x06, 0x2E, 0x3E}},
	PatModArithNoDisp: {Mask: 0b11111000, Accepted: []byte{0x00, 0x28, 0x38}},
	PatModArithDisp8:  {Mask: 0b11111000, Accepted: []byte{0x40, 0x68, 0x78}},
	PatModArithDisp16: {Mask: 0b11111000, Accepted: []byte{0x80, 0xA8, 0xB8}},

	PatDispLo: {Mask: 0x00, Accepted: []byte{0x00}},
	PatDispHi: {Mask: 0x00, Accepted: []byte{0x00}},
	PatDataLo: {Mask: 0x00, Accepted: []byte{0x00}},
	PatDataHi: {Mask: 0x00, Accepted: []byte{0x00}},
}

// jumpOps maps a transfer head pattern to its operation.
var jumpOps = map[PatternID]Op{
	PatJe:     OpJe,
	PatJl:     OpJl,
	PatJle:    OpJle,
	PatJb:     OpJb,
	PatJbe:    OpJbe,
	PatJp:     OpJp,
	PatJo:     OpJo,
	PatJs:     OpJs,
	PatJnz:    OpJnz,
	PatJnl:    OpJnl,
	PatJnle:   OpJnle,
	PatJnb:    OpJnb,
	PatJnbe:   OpJnbe,
	PatJnp:    OpJnp,
	PatJno:    OpJno,
	PatJns:    OpJns,
	PatLoop:   OpLoop,
	PatLoopz:  OpLoopz,
	PatLoopnz: OpLoopnz,
	PatJcxz:   OpJcxz,
}

// matches reports whether the byte fits the pattern: the masked byte
// must equal one of the accepted values.
func (id PatternID) matches(b byte) bool {
	p := &patternTable[id]
	masked := b & p.Mask
	for _, v := range p.Accepted {
		if masked == v {
			return true
		}
	}
	return false
}

// arithSubcodeOp maps the 3-bit arithmetic subcode (bits 5..3 of a head
// byte, or the REG field of the immediate group) to its operation.
func arithSubcodeOp(code byte) Op {
	switch code {
	case 0b000:
		return OpAdd
	case 0b101:
		return OpSub
	case 0b111:
		return OpCmp
	}
	return OpUnknown
}

// apply extracts the pattern's fields from a matched byte into the
// record. Patterns are pure functions of the byte plus current record
// state; each writes its fields exactly once per instruction.
func (id PatternID) apply(b byte, inst *Instruction) {
	switch id {
	case PatOpRegRM:
		inst.Format = FormatRegRM
		if b&0b11111100 == 0x88 {
			inst.Op = OpMov
		} else {
			inst.Op = arithSubcodeOp((b >> 3) & 0b111)
		}
		inst.D = int16((b >> 1) & 1)
		inst.W = int16(b & 1)

	case PatOpMovImmToReg8, PatOpMovImmToReg16:
		inst.Format = FormatImmToReg
		inst.Op = OpMov
		inst.W = int16((b >> 3) & 1)
		inst.Reg = int16(b & 0b111)

	case PatOpMovImmToRM8, PatOpMovImmToRM16:
		inst.Format = FormatImmToRM
		inst.Op = OpMov
		inst.W = int16(b & 1)

	case PatOpArithImm8, PatOpArithImm16:
		// The op is in the REG field of the next byte.
		inst.Format = FormatImmToRM
		inst.S = int16((b >> 1) & 1)
		inst.W = int16(b & 1)

	case PatOpMovMemToAcc:
		inst.Format = FormatAccMem
		inst.Op = OpMov
		inst.D = 1
		inst.W = int16(b & 1)

	case PatOpMovAccToMem:
		inst.Format = FormatAccMem
		inst.Op = OpMov
		inst.D = 0
		inst.W = int16(b & 1)

	case PatOpArithImmToAcc8, PatOpArithImmToAcc16:
		inst.Format = FormatImmToReg
		inst.Op = arithSubcodeOp((b >> 3) & 0b111)
		inst.W = int16(b & 1)
		inst.Reg = RegAX

	case PatJe, PatJl, PatJle, PatJb, PatJbe, PatJp, PatJo, PatJs,
		PatJnz, PatJnl, PatJnle, PatJnb, PatJnbe, PatJnp, PatJno, PatJns,
		PatLoop, PatLoopz, PatLoopnz, PatJcxz:
		inst.Format = FormatJump
		inst.Op = jumpOps[id]

	case PatModReg, PatModDirect, PatModNoDisp, PatModDisp8, PatModDisp16:
		inst.Mod = int16(b >> 6)
		inst.Reg = int16((b >> 3) & 0b111)
		inst.RM = int16(b & 0b111)

	case PatModImmReg, PatModImmDirect, PatModImmNoDisp, PatModImmDisp8,
		PatModImmDisp16:
		inst.Mod = int16(b >> 6)
		inst.RM = int16(b & 0b111)

	case PatModArithReg, PatModArithDirect, PatModArithNoDisp,
		PatModArithDisp8, PatModArithDisp16:
		inst.Mod = int16(b >> 6)
		inst.Reg = int16((b >> 3) & 0b111)
		inst.RM = int16(b & 0b111)
		inst.Op = arithSubcodeOp(byte(inst.Reg))

	case PatDispLo:
		inst.DispLo = int16(b)
	case PatDispHi:
		inst.DispHi = int16(b)
	case PatDataLo:
		inst.DataLo = int16(b)
	case PatDataHi:
		inst.DataHi = int16(b)
	}
}
