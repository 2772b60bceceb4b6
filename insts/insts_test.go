package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sim86/insts"
)

var _ = Describe("Insts Package", func() {
	It("should have a Decoder type", func() {
		decoder := insts.NewDecoder()
		Expect(decoder).ToNot(BeNil())
	})

	Describe("Op", func() {
		It("should name every supported operation", func() {
			Expect(insts.OpMov.String()).To(Equal("mov"))
			Expect(insts.OpAdd.String()).To(Equal("add"))
			Expect(insts.OpSub.String()).To(Equal("sub"))
			Expect(insts.OpCmp.String()).To(Equal("cmp"))
			Expect(insts.OpLoopnz.String()).To(Equal("loopnz"))
		})

		It("should name jne by its jnz alias", func() {
			Expect(insts.OpJnz.String()).To(Equal("jnz"))
		})

		It("should mark unknown operations", func() {
			Expect(insts.OpUnknown.String()).To(Equal("???"))
		})
	})

	Describe("RegRef", func() {
		It("should name word registers", func() {
			ref := insts.RegRef{Index: insts.RegSP, Part: insts.PartWord}
			Expect(ref.String()).To(Equal("sp"))
		})

		It("should name byte halves", func() {
			lo := insts.RegRef{Index: insts.RegCX, Part: insts.PartLow}
			hi := insts.RegRef{Index: insts.RegCX, Part: insts.PartHigh}
			Expect(lo.String()).To(Equal("cl"))
			Expect(hi.String()).To(Equal("ch"))
		})

		It("should name the containing word register for byte halves", func() {
			ref := insts.RegRef{Index: insts.RegBX, Part: insts.PartHigh}
			Expect(ref.WordName()).To(Equal("bx"))
		})
	})

	Describe("Instruction", func() {
		It("should mark all fields unset after Reset", func() {
			inst := &insts.Instruction{}
			decoder := insts.NewDecoder()
			_, err := decoder.Decode([]byte{0xB9, 0xF4, 0xFF}, 0, inst)
			Expect(err).NotTo(HaveOccurred())

			inst.Reset()

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Format).To(Equal(insts.FormatUnknown))
			Expect(inst.Mod).To(Equal(insts.Unset))
			Expect(inst.Reg).To(Equal(insts.Unset))
			Expect(inst.RM).To(Equal(insts.Unset))
			Expect(inst.D).To(Equal(insts.Unset))
			Expect(inst.W).To(Equal(insts.Unset))
			Expect(inst.S).To(Equal(insts.Unset))
			Expect(inst.DispLo).To(Equal(insts.Unset))
			Expect(inst.DispHi).To(Equal(insts.Unset))
			Expect(inst.DataLo).To(Equal(insts.Unset))
			Expect(inst.DataHi).To(Equal(insts.Unset))
		})

		It("should report wide when the W bit is set", func() {
			inst := &insts.Instruction{}
			inst.Reset()
			Expect(inst.Wide()).To(BeFalse())

			inst.W = 1
			Expect(inst.Wide()).To(BeTrue())
		})
	})
})
