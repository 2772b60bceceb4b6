// Package emu provides functional 8086 emulation.
package emu

import "github.com/sarchlab/sim86/insts"

// RegFile represents the 8086 register file.
// It contains the eight 16-bit general registers, the instruction
// pointer, and the tracked status flags.
type RegFile struct {
	// R holds the word registers ax, cx, dx, bx, sp, bp, si, di,
	// indexed by insts.RegAX through insts.RegDI.
	R [8]uint16

	// IP is the instruction pointer.
	IP uint16

	// Flags holds the tracked status flags.
	Flags Flags
}

// Flags represents the tracked status flags.
type Flags struct {
	// Zero is set when a flag-affecting result is zero.
	Zero bool
	// Sign is set when bit 15 of a flag-affecting result is set.
	Sign bool
}

// String returns the set flag letters, sign before zero.
func (f Flags) String() string {
	s := ""
	if f.Sign {
		s += "S"
	}
	if f.Zero {
		s += "Z"
	}
	return s
}

// Read reads the register named by ref. Byte references read the
// corresponding half of the containing word register.
func (r *RegFile) Read(ref insts.RegRef) uint16 {
	word := r.R[ref.Index]
	switch ref.Part {
	case insts.PartLow:
		return word & 0x00FF
	case insts.PartHigh:
		return word >> 8
	default:
		return word
	}
}

// Write writes the register named by ref. Byte writes preserve the
// other half of the containing word register.
func (r *RegFile) Write(ref insts.RegRef, value uint16) {
	switch ref.Part {
	case insts.PartLow:
		r.R[ref.Index] = r.R[ref.Index]&0xFF00 | value&0x00FF
	case insts.PartHigh:
		r.R[ref.Index] = r.R[ref.Index]&0x00FF | (value&0x00FF)<<8
	default:
		r.R[ref.Index] = value
	}
}

// ReadWord reads the full word register containing ref. Trace lines
// report whole registers even for byte writes.
func (r *RegFile) ReadWord(ref insts.RegRef) uint16 {
	return r.R[ref.Index]
}
