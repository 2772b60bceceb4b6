// Package emu provides functional 8086 emulation.
package emu

// ALU implements the 8086 arithmetic operations. All arithmetic runs at
// 16-bit precision with unsigned wraparound; overflow is discarded and
// no carry flag is modeled.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// Add returns dest + src and sets the flags from the result.
func (a *ALU) Add(dest, src uint16) uint16 {
	result := dest + src
	a.setFlags(result)
	return result
}

// Sub returns dest - src and sets the flags from the result.
func (a *ALU) Sub(dest, src uint16) uint16 {
	result := dest - src
	a.setFlags(result)
	return result
}

// Compare sets the flags from dest - src and discards the result.
func (a *ALU) Compare(dest, src uint16) {
	a.setFlags(dest - src)
}

// setFlags overwrites both tracked flags from a 16-bit result: a zero
// result sets Z, a set bit 15 sets S, anything else clears both.
func (a *ALU) setFlags(result uint16) {
	a.regFile.Flags.Zero = result == 0
	a.regFile.Flags.Sign = result>>15 == 1
}
