// Package insts provides 8086 instruction definitions and decoding.
//
// This package implements decoding of 8086 machine code into structured
// instruction records. It supports:
//   - Register/memory to/from register: MOV, ADD, SUB, CMP
//   - Immediate forms: to register, to register/memory, to accumulator
//   - Accumulator moves through a direct address
//   - Conditional transfers: JE/JL/JLE/JB/JBE/JP/JO/JS, their negations,
//     LOOP/LOOPZ/LOOPNZ, and JCXZ
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := &insts.Instruction{}
//	next, err := decoder.Decode(code, 0, inst)
//	fmt.Println(insts.Text(inst))
package insts

// Op represents an 8086 opcode.
type Op uint16

// 8086 opcodes.
const (
	OpUnknown Op = iota
	OpMov
	OpAdd
	OpSub
	OpCmp
	OpJe
	OpJl
	OpJle
	OpJb
	OpJbe
	OpJp
	OpJo
	OpJs
	OpJnz
	OpJnl
	OpJnle
	OpJnb
	OpJnbe
	OpJnp
	OpJno
	OpJns
	OpLoop
	OpLoopz
	OpLoopnz
	OpJcxz
)

var opNames = map[Op]string{
	OpMov:    "mov",
	OpAdd:    "add",
	OpSub:    "sub",
	OpCmp:    "cmp",
	OpJe:     "je",
	OpJl:     "jl",
	OpJle:    "jle",
	OpJb:     "jb",
	OpJbe:    "jbe",
	OpJp:     "jp",
	OpJo:     "jo",
	OpJs:     "js",
	OpJnz:    "jnz",
	OpJnl:    "jnl",
	OpJnle:   "jnle",
	OpJnb:    "jnb",
	OpJnbe:   "jnbe",
	OpJnp:    "jnp",
	OpJno:    "jno",
	OpJns:    "jns",
	OpLoop:   "loop",
	OpLoopz:  "loopz",
	OpLoopnz: "loopnz",
	OpJcxz:   "jcxz",
}

// String returns the NASM mnemonic for the opcode.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "???"
}

// Format represents an instruction encoding shape.
type Format uint8

// Instruction formats.
const (
	FormatUnknown  Format = iota
	FormatRegRM           // register/memory to or from register
	FormatImmToReg        // immediate to register (REG in the head byte)
	FormatImmToRM         // immediate to register/memory (mod byte follows)
	FormatAccMem          // memory to/from accumulator via direct address
	FormatJump            // conditional transfer with 8-bit displacement
)

// Word register indexes in canonical encoding order.
const (
	RegAX = iota
	RegCX
	RegDX
	RegBX
	RegSP
	RegBP
	RegSI
	RegDI
)

// RegPart selects which slice of a 16-bit register an operand touches.
type RegPart uint8

// Register parts.
const (
	PartWord RegPart = iota // full 16-bit register
	PartLow                 // low byte
	PartHigh                // high byte
)

// RegRef names a register operand: a word register or one of its byte
// halves. Index is always the word register number, 0..7 for word
// references and 0..3 for byte halves.
type RegRef struct {
	Index uint8
	Part  RegPart
}

var wordNames = [8]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}
var lowNames = [4]string{"al", "cl", "dl", "bl"}
var highNames = [4]string{"ah", "ch", "dh", "bh"}

// String returns the register name, e.g. "ax", "al", or "ah".
func (r RegRef) String() string {
	switch r.Part {
	case PartLow:
		return lowNames[r.Index]
	case PartHigh:
		return highNames[r.Index]
	default:
		return wordNames[r.Index]
	}
}

// WordName returns the name of the full register containing the reference,
// e.g. "ax" for a reference to "ah".
func (r RegRef) WordName() string {
	return wordNames[r.Index]
}

// regRef maps a raw 3-bit register field to a register reference.
// With W=1 the raw value is the word register index. With W=0, raw 0..3
// name the low bytes of registers 0..3 and raw 4..7 name the high bytes
// of registers 0..3.
func regRef(raw uint8, wide bool) RegRef {
	if wide {
		return RegRef{Index: raw, Part: PartWord}
	}
	if raw < 4 {
		return RegRef{Index: raw, Part: PartLow}
	}
	return RegRef{Index: raw - 4, Part: PartHigh}
}

// EffAddr describes a memory operand: up to two word-register bases plus
// a 16-bit displacement. A direct address has no bases and carries the
// absolute address in Disp.
type EffAddr struct {
	Bases []uint8
	Disp  int16
}

// effAddrBases maps the 3-bit r/m field to base register combinations for
// the non-direct addressing modes. mod=00 r/m=110 is a direct address and
// never consults this table.
var effAddrBases = [8][]uint8{
	{RegBX, RegSI},
	{RegBX, RegDI},
	{RegBP, RegSI},
	{RegBP, RegDI},
	{RegSI},
	{RegDI},
	{RegBP},
	{RegBX},
}

// OperandKind discriminates the operand variants an instruction can carry.
type OperandKind uint8

// Operand kinds.
const (
	OperandNone OperandKind = iota
	OperandReg
	OperandImm
	OperandMem
)

// Operand is one resolved instruction operand. Operands are produced on
// demand from a decoded record and never stored back into it.
type Operand struct {
	Kind OperandKind
	Reg  RegRef  // valid when Kind == OperandReg
	Imm  uint16  // valid when Kind == OperandImm
	Mem  EffAddr // valid when Kind == OperandMem
}

// Unset marks an instruction field no matcher has written yet.
const Unset int16 = -1

// Instruction is the record a decode pass fills in. Fields written by
// byte matchers are int16 so that Unset can mark the ones the matched
// encoding never produced; each matcher writes its fields exactly once
// per instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Encoding shape

	// Mod/reg/r/m byte fields
	Mod int16 // addressing mode, 0..3
	Reg int16 // register field
	RM  int16 // register/memory field

	// Head byte flag bits
	D int16 // direction: 1 = REG field is the destination
	W int16 // width: 1 = word operation
	S int16 // sign-extend single data byte

	// Payload bytes
	DispLo int16
	DispHi int16
	DataLo int16
	DataHi int16
}

// Reset returns every field to its unset state so the record can be
// reused for the next decode.
func (i *Instruction) Reset() {
	i.Op = OpUnknown
	i.Format = FormatUnknown
	i.Mod = Unset
	i.Reg = Unset
	i.RM = Unset
	i.D = Unset
	i.W = Unset
	i.S = Unset
	i.DispLo = Unset
	i.DispHi = Unset
	i.DataLo = Unset
	i.DataHi = Unset
}

// Wide reports whether the instruction operates on word operands.
func (i *Instruction) Wide() bool {
	return i.W == 1
}
