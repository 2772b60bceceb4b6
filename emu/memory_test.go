package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sim86/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	It("should store words little-endian", func() {
		memory.Write16(0x0100, 0x1234)

		Expect(memory.Read8(0x0100)).To(Equal(uint8(0x34)))
		Expect(memory.Read8(0x0101)).To(Equal(uint8(0x12)))
		Expect(memory.Read16(0x0100)).To(Equal(uint16(0x1234)))
	})

	It("should wrap word accesses at the top of the address space", func() {
		memory.Write16(0xFFFF, 0xABCD)

		Expect(memory.Read8(0xFFFF)).To(Equal(uint8(0xCD)))
		Expect(memory.Read8(0x0000)).To(Equal(uint8(0xAB)))
		Expect(memory.Read16(0xFFFF)).To(Equal(uint16(0xABCD)))
	})

	It("should start zeroed", func() {
		Expect(memory.Read16(0x8000)).To(Equal(uint16(0)))
	})
})
