package insts

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the operand: register name, signed decimal immediate,
// or effective address.
func (o Operand) String() string {
	switch o.Kind {
	case OperandReg:
		return o.Reg.String()
	case OperandImm:
		return strconv.Itoa(int(int16(o.Imm)))
	case OperandMem:
		return o.Mem.String()
	}
	return ""
}

// String renders the operand in NASM effective-address syntax:
// [bx + si + 4], [bp - 2], [si], or a direct [3458].
func (a EffAddr) String() string {
	if len(a.Bases) == 0 {
		return fmt.Sprintf("[%d]", uint16(a.Disp))
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for n, base := range a.Bases {
		if n > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(wordNames[base])
	}
	switch {
	case a.Disp > 0:
		fmt.Fprintf(&sb, " + %d", a.Disp)
	case a.Disp < 0:
		fmt.Fprintf(&sb, " - %d", -int32(a.Disp))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Text formats a decoded instruction as one line of assembly source.
//
// Jumps render a cursor-relative target: $ is the start of the current
// instruction, so the printed offset is the displacement plus the two
// instruction bytes. Immediate stores to memory carry an explicit size
// qualifier, e.g. "mov [bp + 75], byte 12".
func Text(inst *Instruction) string {
	if inst.Format == FormatJump {
		rel := int32(int8(inst.DispLo))
		return fmt.Sprintf("%s $%+d", inst.Op, rel+2)
	}

	dest := inst.Dest()
	src := inst.Source()

	if src.Kind == OperandImm && dest.Kind == OperandMem {
		return fmt.Sprintf("%s %s, %s %s", inst.Op, dest, sizeName(inst), src)
	}
	return fmt.Sprintf("%s %s, %s", inst.Op, dest, src)
}

func sizeName(inst *Instruction) string {
	if inst.Wide() {
		return "word"
	}
	return "byte"
}
