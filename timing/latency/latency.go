// Package latency provides instruction timing estimates for the 8086.
//
// Cycle counts follow the 8086 family user's manual instruction timing
// tables and can be adjusted via TimingConfig. Estimates cover the base
// cost per operation and operand class plus the effective-address
// overhead of memory operands.
package latency

import (
	"github.com/sarchlab/sim86/insts"
)

// Table estimates instruction costs in cycles.
type Table struct {
	config *TimingConfig
}

// NewTable creates a latency table with the manual's default values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a latency table with custom cycle counts.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}

// Estimate returns the estimated cost of one decoded instruction.
// taken selects between the transfer costs of a conditional jump; it is
// ignored for everything else.
func (t *Table) Estimate(inst *insts.Instruction, taken bool) uint64 {
	if inst == nil {
		return 0
	}

	if inst.Format == insts.FormatJump {
		return t.transferCycles(inst.Op, taken)
	}

	return t.baseCycles(inst) + t.effAddrOverhead(inst)
}

// baseCycles classifies the instruction by operation and operand kinds.
func (t *Table) baseCycles(inst *insts.Instruction) uint64 {
	dest := inst.Dest()
	src := inst.Source()

	switch inst.Format {
	case insts.FormatRegRM:
		switch {
		case dest.Kind == insts.OperandReg && src.Kind == insts.OperandReg:
			if inst.Op == insts.OpMov {
				return t.config.MovRegToReg
			}
			return t.config.ArithRegToReg
		case dest.Kind == insts.OperandReg:
			if inst.Op == insts.OpMov {
				return t.config.MovMemToReg
			}
			return t.config.ArithMemToReg
		default:
			switch inst.Op {
			case insts.OpMov:
				return t.config.MovRegToMem
			case insts.OpCmp:
				return t.config.CmpRegToMem
			default:
				return t.config.ArithRegToMem
			}
		}

	case insts.FormatImmToReg:
		if inst.Op == insts.OpMov {
			return t.config.MovImmToReg
		}
		if dest.Kind == insts.OperandReg && dest.Reg.Index == insts.RegAX {
			return t.config.ArithImmToAcc
		}
		return t.config.ArithImmToReg

	case insts.FormatImmToRM:
		if dest.Kind == insts.OperandReg {
			if inst.Op == insts.OpMov {
				return t.config.MovImmToReg
			}
			return t.config.ArithImmToReg
		}
		switch inst.Op {
		case insts.OpMov:
			return t.config.MovImmToMem
		case insts.OpCmp:
			return t.config.CmpImmToMem
		default:
			return t.config.ArithImmToMem
		}

	case insts.FormatAccMem:
		// The accumulator forms carry their direct address in the base
		// cost; no effective-address overhead applies.
		return t.config.MovAccMem
	}

	return 0
}

// transferCycles returns the cost of a conditional transfer.
func (t *Table) transferCycles(op insts.Op, taken bool) uint64 {
	switch op {
	case insts.OpLoop:
		if taken {
			return t.config.LoopTaken
		}
		return t.config.LoopNotTaken
	case insts.OpLoopz:
		if taken {
			return t.config.LoopzTaken
		}
		return t.config.LoopzNotTaken
	case insts.OpLoopnz:
		if taken {
			return t.config.LoopnzTaken
		}
		return t.config.LoopnzNotTaken
	case insts.OpJcxz:
		if taken {
			return t.config.JcxzTaken
		}
		return t.config.JcxzNotTaken
	default:
		if taken {
			return t.config.JumpTaken
		}
		return t.config.JumpNotTaken
	}
}

// effAddrOverhead returns the effective-address cycles for the memory
// operand, if the instruction has one.
func (t *Table) effAddrOverhead(inst *insts.Instruction) uint64 {
	if inst.Format == insts.FormatAccMem {
		return 0
	}

	mem, ok := memOperand(inst)
	if !ok {
		return 0
	}

	// mod=01 and mod=10 carry an encoded displacement; a zero
	// displacement byte still costs the addition.
	hasDisp := inst.Mod == 0b01 || inst.Mod == 0b10

	switch len(mem.Bases) {
	case 0:
		// Direct address.
		return 6
	case 1:
		if hasDisp {
			return 9
		}
		return 5
	default:
		// bp+si and bx+di route through the slower adder path.
		slow := (mem.Bases[0] == insts.RegBP && mem.Bases[1] == insts.RegSI) ||
			(mem.Bases[0] == insts.RegBX && mem.Bases[1] == insts.RegDI)
		if slow {
			if hasDisp {
				return 12
			}
			return 8
		}
		if hasDisp {
			return 11
		}
		return 7
	}
}

// memOperand finds the memory operand of a decoded instruction.
func memOperand(inst *insts.Instruction) (insts.EffAddr, bool) {
	if dest := inst.Dest(); dest.Kind == insts.OperandMem {
		return dest.Mem, true
	}
	if src := inst.Source(); src.Kind == insts.OperandMem {
		return src.Mem, true
	}
	return insts.EffAddr{}, false
}
