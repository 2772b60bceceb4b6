// Package emu provides functional 8086 emulation.
package emu

import "github.com/sarchlab/sim86/insts"

// BranchUnit resolves conditional transfers against the tracked flags.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// CheckCondition evaluates a transfer operation against the current
// flags. modeled reports whether the operation's condition is covered
// by the tracked flag subset; taken is meaningful only when modeled is
// true. The other transfers decode but are not executable, because
// their conditions need flags (carry, parity, overflow) or counter
// state this engine does not track.
func (b *BranchUnit) CheckCondition(op insts.Op) (taken, modeled bool) {
	switch op {
	case insts.OpJnz:
		// jnz: transfer when the zero flag is clear.
		return !b.regFile.Flags.Zero, true
	default:
		return false, false
	}
}
