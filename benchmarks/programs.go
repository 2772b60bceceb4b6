// Package benchmarks provides acceptance programs and a timing harness
// for sim86 validation.
package benchmarks

import (
	"github.com/sarchlab/sim86/emu"
	"github.com/sarchlab/sim86/insts"
)

// GetMicrobenchmarks returns the standard set of benchmark programs.
// Each exercises one instruction class or addressing shape.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		immediateLoads(),
		registerShuffle(),
		dependencyChain(),
		countdownLoop(),
		memoryRoundTrip(),
		effectiveAddressSum(),
		byteHalves(),
		comparisonLoop(),
	}
}

// GetCoreBenchmarks returns a minimal set of 3 benchmarks for quick
// validation: a loop, memory traffic, and flag-driven control flow.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		countdownLoop(),
		memoryRoundTrip(),
		comparisonLoop(),
	}
}

// 1. Immediate Loads - one mov imm16 into each word register.
func immediateLoads() Benchmark {
	return Benchmark{
		Name:        "immediate_loads",
		Description: "8 immediate-to-register moves, one per word register",
		Program: BuildProgram(
			EncodeMovImmToReg(insts.RegAX, 1),
			EncodeMovImmToReg(insts.RegCX, 2),
			EncodeMovImmToReg(insts.RegDX, 3),
			EncodeMovImmToReg(insts.RegBX, 4),
			EncodeMovImmToReg(insts.RegSP, 5),
			EncodeMovImmToReg(insts.RegBP, 6),
			EncodeMovImmToReg(insts.RegSI, 7),
			EncodeMovImmToReg(insts.RegDI, 8),
		),
		Expected: map[uint8]uint16{
			insts.RegAX: 1,
			insts.RegCX: 2,
			insts.RegDX: 3,
			insts.RegBX: 4,
			insts.RegSP: 5,
			insts.RegBP: 6,
			insts.RegSI: 7,
			insts.RegDI: 8,
		},
	}
}

// 2. Register Shuffle - one value copied through a register chain.
func registerShuffle() Benchmark {
	return Benchmark{
		Name:        "register_shuffle",
		Description: "register-to-register moves forwarding one value",
		Program: BuildProgram(
			EncodeMovImmToReg(insts.RegAX, 777),
			EncodeMovRegToReg(insts.RegBX, insts.RegAX),
			EncodeMovRegToReg(insts.RegCX, insts.RegBX),
			EncodeMovRegToReg(insts.RegDX, insts.RegCX),
			EncodeMovRegToReg(insts.RegSI, insts.RegDX),
		),
		Expected: map[uint8]uint16{
			insts.RegAX: 777,
			insts.RegBX: 777,
			insts.RegCX: 777,
			insts.RegDX: 777,
			insts.RegSI: 777,
		},
	}
}

// 3. Dependency Chain - 20 dependent adds on one register.
func dependencyChain() Benchmark {
	return Benchmark{
		Name:        "dependency_chain",
		Description: "20 dependent bx += 1 additions",
		Program:     buildDependencyChain(20),
		Expected:    map[uint8]uint16{insts.RegBX: 20},
	}
}

func buildDependencyChain(n int) []byte {
	instrs := make([][]byte, 0, n+1)
	instrs = append(instrs, EncodeMovImmToReg(insts.RegBX, 0))
	for i := 0; i < n; i++ {
		instrs = append(instrs, EncodeAddImmToReg(insts.RegBX, 1))
	}
	return BuildProgram(instrs...)
}

// 4. Countdown Loop - sub/jnz loop running a counter to zero.
func countdownLoop() Benchmark {
	return Benchmark{
		Name:        "countdown_loop",
		Description: "cx counts down from 5 through a jnz backward jump",
		Program: BuildProgram(
			EncodeMovImmToReg(insts.RegCX, 5),
			EncodeSubImmToReg(insts.RegCX, 1),
			EncodeJnz(-5),
		),
		Expected: map[uint8]uint16{insts.RegCX: 0},
	}
}

// 5. Memory Round Trip - a word written, loaded, modified in place,
// and loaded again through a direct address.
func memoryRoundTrip() Benchmark {
	return Benchmark{
		Name:        "memory_round_trip",
		Description: "store, load, in-place add, and reload at one address",
		Program: BuildProgram(
			EncodeMovImmToMem(0x2000, 598),
			EncodeMovMemToReg(insts.RegBX, 0x2000),
			EncodeAddImmToMem(0x2000, 2),
			EncodeMovMemToReg(insts.RegCX, 0x2000),
		),
		Expected: map[uint8]uint16{
			insts.RegBX: 598,
			insts.RegCX: 600,
		},
	}
}

// 6. Effective Address Sum - a store and load through bx+si.
func effectiveAddressSum() Benchmark {
	return Benchmark{
		Name:        "effective_address_sum",
		Description: "store and load through the bx+si base pair",
		Setup: func(e *emu.Emulator) {
			e.RegFile().R[insts.RegBX] = 0x3000
			e.RegFile().R[insts.RegSI] = 0x10
		},
		Program: BuildProgram(
			EncodeMovImmToReg(insts.RegAX, 4660),
			EncodeMovRegToIndexed(0b000, insts.RegAX), // mov [bx + si], ax
			EncodeMovIndexedToReg(insts.RegDX, 0b000), // mov dx, [bx + si]
		),
		Expected: map[uint8]uint16{
			insts.RegAX: 4660,
			insts.RegDX: 4660,
		},
	}
}

// 7. Byte Halves - immediates into bl and bh composing one word.
func byteHalves() Benchmark {
	return Benchmark{
		Name:        "byte_halves",
		Description: "byte moves into bl and bh composing 0x1234",
		Program: BuildProgram(
			EncodeMovImmToByteReg(3, 0x34), // mov bl, 0x34
			EncodeMovImmToByteReg(7, 0x12), // mov bh, 0x12
		),
		Expected: map[uint8]uint16{insts.RegBX: 0x1234},
	}
}

// 8. Comparison Loop - cmp-driven control flow stepping bx to a limit.
func comparisonLoop() Benchmark {
	return Benchmark{
		Name:        "comparison_loop",
		Description: "add/cmp/jnz loop stepping bx by 3 until it hits 9",
		Program: BuildProgram(
			EncodeMovImmToReg(insts.RegBX, 0),
			EncodeAddImmToReg(insts.RegBX, 3),
			EncodeCmpImmToReg(insts.RegBX, 9),
			EncodeJnz(-8),
		),
		Expected: map[uint8]uint16{insts.RegBX: 9},
	}
}

// Helper functions for encoding 8086 instructions. Register arguments
// take the canonical word register numbers (insts.RegAX .. insts.RegDI).

// BuildProgram concatenates encoded instructions into one code image.
func BuildProgram(instrs ...[]byte) []byte {
	var program []byte
	for _, inst := range instrs {
		program = append(program, inst...)
	}
	return program
}

// EncodeMovImmToReg encodes mov reg16, imm16.
func EncodeMovImmToReg(reg uint8, value uint16) []byte {
	return []byte{0xB8 | reg&0b111, byte(value), byte(value >> 8)}
}

// EncodeMovImmToByteReg encodes mov reg8, imm8. Raw registers 0..3 name
// al..bl and 4..7 name ah..bh.
func EncodeMovImmToByteReg(reg uint8, value uint8) []byte {
	return []byte{0xB0 | reg&0b111, value}
}

// EncodeMovRegToReg encodes mov dst, src between word registers.
func EncodeMovRegToReg(dst, src uint8) []byte {
	return []byte{0x89, modRegRM(0b11, src, dst)}
}

// EncodeAddRegToReg encodes add dst, src between word registers.
func EncodeAddRegToReg(dst, src uint8) []byte {
	return []byte{0x01, modRegRM(0b11, src, dst)}
}

// EncodeSubRegToReg encodes sub dst, src between word registers.
func EncodeSubRegToReg(dst, src uint8) []byte {
	return []byte{0x29, modRegRM(0b11, src, dst)}
}

// EncodeCmpRegToReg encodes cmp dst, src between word registers.
func EncodeCmpRegToReg(dst, src uint8) []byte {
	return []byte{0x39, modRegRM(0b11, src, dst)}
}

// EncodeAddImmToReg encodes add reg16, imm with a sign-extended byte.
func EncodeAddImmToReg(reg uint8, imm int8) []byte {
	return []byte{0x83, modRegRM(0b11, 0b000, reg), byte(imm)}
}

// EncodeSubImmToReg encodes sub reg16, imm with a sign-extended byte.
func EncodeSubImmToReg(reg uint8, imm int8) []byte {
	return []byte{0x83, modRegRM(0b11, 0b101, reg), byte(imm)}
}

// EncodeCmpImmToReg encodes cmp reg16, imm with a sign-extended byte.
func EncodeCmpImmToReg(reg uint8, imm int8) []byte {
	return []byte{0x83, modRegRM(0b11, 0b111, reg), byte(imm)}
}

// EncodeMovMemToReg encodes mov reg16, [addr] through a direct address.
func EncodeMovMemToReg(reg uint8, addr uint16) []byte {
	return []byte{0x8B, modRegRM(0b00, reg, 0b110), byte(addr), byte(addr >> 8)}
}

// EncodeMovRegToMem encodes mov [addr], reg16 through a direct address.
func EncodeMovRegToMem(addr uint16, reg uint8) []byte {
	return []byte{0x89, modRegRM(0b00, reg, 0b110), byte(addr), byte(addr >> 8)}
}

// EncodeMovImmToMem encodes mov [addr], word imm16.
func EncodeMovImmToMem(addr, value uint16) []byte {
	return []byte{0xC7, modRegRM(0b00, 0b000, 0b110),
		byte(addr), byte(addr >> 8), byte(value), byte(value >> 8)}
}

// EncodeAddImmToMem encodes add [addr], imm with a sign-extended byte.
func EncodeAddImmToMem(addr uint16, imm int8) []byte {
	return []byte{0x83, modRegRM(0b00, 0b000, 0b110),
		byte(addr), byte(addr >> 8), byte(imm)}
}

// EncodeMovRegToIndexed encodes mov [bases], reg16 where rm selects a
// base combination from the effective-address table. rm 0b110 is not
// valid here; it encodes a direct address instead.
func EncodeMovRegToIndexed(rm uint8, reg uint8) []byte {
	return []byte{0x89, modRegRM(0b00, reg, rm)}
}

// EncodeMovIndexedToReg encodes mov reg16, [bases]; see
// EncodeMovRegToIndexed for the rm meaning.
func EncodeMovIndexedToReg(reg uint8, rm uint8) []byte {
	return []byte{0x8B, modRegRM(0b00, reg, rm)}
}

// EncodeJnz encodes jnz with a displacement from the next instruction.
func EncodeJnz(disp int8) []byte {
	return []byte{0x75, byte(disp)}
}

// EncodeLoop encodes loop with a displacement from the next instruction.
func EncodeLoop(disp int8) []byte {
	return []byte{0xE2, byte(disp)}
}

func modRegRM(mod, reg, rm uint8) byte {
	return byte(mod<<6 | (reg&0b111)<<3 | rm&0b111)
}
