package latency_test

import (
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sim86/insts"
	"github.com/sarchlab/sim86/timing/latency"
)

var _ = Describe("Latency", func() {
	var (
		table   *latency.Table
		decoder *insts.Decoder
	)

	BeforeEach(func() {
		table = latency.NewTable()
		decoder = insts.NewDecoder()
	})

	decode := func(code ...byte) *insts.Instruction {
		inst := &insts.Instruction{}
		_, err := decoder.Decode(code, 0, inst)
		Expect(err).NotTo(HaveOccurred())
		return inst
	}

	Describe("Default Timing Values", func() {
		It("should have correct mov costs", func() {
			config := table.Config()
			Expect(config.MovRegToReg).To(Equal(uint64(2)))
			Expect(config.MovMemToReg).To(Equal(uint64(8)))
			Expect(config.MovRegToMem).To(Equal(uint64(9)))
			Expect(config.MovImmToReg).To(Equal(uint64(4)))
		})

		It("should have correct arithmetic costs", func() {
			config := table.Config()
			Expect(config.ArithRegToReg).To(Equal(uint64(3)))
			Expect(config.ArithRegToMem).To(Equal(uint64(16)))
			Expect(config.ArithImmToAcc).To(Equal(uint64(4)))
		})

		It("should have correct conditional jump costs", func() {
			config := table.Config()
			Expect(config.JumpTaken).To(Equal(uint64(16)))
			Expect(config.JumpNotTaken).To(Equal(uint64(4)))
		})
	})

	Describe("Mov Estimates", func() {
		It("should cost 2 cycles between registers", func() {
			// mov cx, bx -> 0x89 0xD9
			inst := decode(0x89, 0xD9)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(2)))
		})

		It("should cost 8 plus the address for a memory source", func() {
			// mov bx, [1000] -> 0x8B 0x1E 0xE8 0x03 (direct address: 6)
			inst := decode(0x8B, 0x1E, 0xE8, 0x03)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(8 + 6)))
		})

		It("should cost 9 plus the address for a memory destination", func() {
			// mov [bx], bx -> 0x89 0x1F (single base: 5)
			inst := decode(0x89, 0x1F)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(9 + 5)))
		})

		It("should cost 4 for an immediate into a register", func() {
			// mov bx, 1000 -> 0xBB 0xE8 0x03
			inst := decode(0xBB, 0xE8, 0x03)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(4)))
		})

		It("should cost 10 plus the address for an immediate into memory", func() {
			// mov [bp + 4], byte 12 -> 0xC6 0x46 0x04 0x0C (disp + base: 9)
			inst := decode(0xC6, 0x46, 0x04, 0x0C)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(10 + 9)))
		})

		It("should cost a flat 10 for the accumulator forms", func() {
			// mov ax, [2555] -> 0xA1 0xFB 0x09
			load := decode(0xA1, 0xFB, 0x09)
			// mov [2554], ax -> 0xA3 0xFA 0x09
			store := decode(0xA3, 0xFA, 0x09)

			Expect(table.Estimate(load, false)).To(Equal(uint64(10)))
			Expect(table.Estimate(store, false)).To(Equal(uint64(10)))
		})
	})

	Describe("Arithmetic Estimates", func() {
		It("should cost 3 cycles between registers", func() {
			// add bx, cx -> 0x01 0xCB
			inst := decode(0x01, 0xCB)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(3)))
		})

		It("should cost 9 plus the address for a memory source", func() {
			// add bx, [1000] -> 0x03 0x1E 0xE8 0x03
			inst := decode(0x03, 0x1E, 0xE8, 0x03)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(9 + 6)))
		})

		It("should cost 16 plus the address for a memory destination", func() {
			// add [bx + si], cx -> 0x01 0x08 (bx + si: 7)
			inst := decode(0x01, 0x08)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(16 + 7)))
		})

		It("should cost only 9 plus the address for cmp against a memory destination", func() {
			// cmp [bx + si], cx -> 0x39 0x08
			inst := decode(0x39, 0x08)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(9 + 7)))
		})

		It("should cost 4 for an immediate against a register", func() {
			// add si, 2 -> 0x83 0xC6 0x02
			inst := decode(0x83, 0xC6, 0x02)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(4)))
		})

		It("should cost 17 plus the address for an immediate against memory", func() {
			// add [1000], word 29 -> 0x81 0x06 0xE8 0x03 0x1D 0x00
			inst := decode(0x81, 0x06, 0xE8, 0x03, 0x1D, 0x00)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(17 + 6)))
		})

		It("should cost only 10 plus the address for cmp immediate against memory", func() {
			// cmp [1000], byte 34 -> 0x80 0x3E 0xE8 0x03 0x22
			inst := decode(0x80, 0x3E, 0xE8, 0x03, 0x22)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(10 + 6)))
		})

		It("should cost 4 for the immediate-to-accumulator forms", func() {
			// sub al, 9 -> 0x2C 0x09
			inst := decode(0x2C, 0x09)
			Expect(table.Estimate(inst, false)).To(Equal(uint64(4)))
		})
	})

	Describe("Effective Address Overhead", func() {
		// All cases use mov reg, mem (base cost 8) so the totals differ
		// only by addressing class.
		cases := []struct {
			name  string
			code  []byte
			total uint64
		}{
			{"a direct address", []byte{0x8B, 0x06, 0x34, 0x12}, 8 + 6},
			{"a single base", []byte{0x8B, 0x04}, 8 + 5},
			{"a displacement plus base", []byte{0x8B, 0x44, 0x04}, 8 + 9},
			{"a zero displacement like any other", []byte{0x8B, 0x46, 0x00}, 8 + 9},
			{"the fast pair bx+si", []byte{0x8B, 0x00}, 8 + 7},
			{"the slow pair bp+si", []byte{0x8B, 0x02}, 8 + 8},
			{"a displacement plus bx+si", []byte{0x8B, 0x40, 0x04}, 8 + 11},
			{"a displacement plus bp+si", []byte{0x8B, 0x42, 0x04}, 8 + 12},
		}

		for _, c := range cases {
			code := c.code
			total := c.total
			It(fmt.Sprintf("should price %s at %d total", c.name, total), func() {
				inst := decode(code...)
				Expect(table.Estimate(inst, false)).To(Equal(total))
			})
		}
	})

	Describe("Transfer Estimates", func() {
		It("should split conditional jump cost on the taken path", func() {
			// jnz $+0 -> 0x75 0xFE
			inst := decode(0x75, 0xFE)
			Expect(table.Estimate(inst, true)).To(Equal(uint64(16)))
			Expect(table.Estimate(inst, false)).To(Equal(uint64(4)))
		})

		It("should price every conditional jump the same", func() {
			// jl $+0 -> 0x7C 0xFE, js $+0 -> 0x78 0xFE
			jl := decode(0x7C, 0xFE)
			js := decode(0x78, 0xFE)

			Expect(table.Estimate(jl, true)).To(Equal(uint64(16)))
			Expect(table.Estimate(js, false)).To(Equal(uint64(4)))
		})

		It("should price the loop family individually", func() {
			loop := decode(0xE2, 0xFE)
			loopz := decode(0xE1, 0xFE)
			loopnz := decode(0xE0, 0xFE)
			jcxz := decode(0xE3, 0xFE)

			Expect(table.Estimate(loop, true)).To(Equal(uint64(17)))
			Expect(table.Estimate(loop, false)).To(Equal(uint64(5)))
			Expect(table.Estimate(loopz, true)).To(Equal(uint64(18)))
			Expect(table.Estimate(loopz, false)).To(Equal(uint64(6)))
			Expect(table.Estimate(loopnz, true)).To(Equal(uint64(19)))
			Expect(table.Estimate(loopnz, false)).To(Equal(uint64(5)))
			Expect(table.Estimate(jcxz, true)).To(Equal(uint64(18)))
			Expect(table.Estimate(jcxz, false)).To(Equal(uint64(6)))
		})
	})

	Describe("Nil Instruction Handling", func() {
		It("should return 0 for nil instruction", func() {
			Expect(table.Estimate(nil, false)).To(Equal(uint64(0)))
		})
	})

	Describe("Custom Configuration", func() {
		It("should use custom config values", func() {
			config := latency.DefaultTimingConfig()
			config.MovRegToReg = 7
			config.JumpTaken = 25
			customTable := latency.NewTableWithConfig(config)

			mov := decode(0x89, 0xD9)
			jnz := decode(0x75, 0xFE)

			Expect(customTable.Estimate(mov, false)).To(Equal(uint64(7)))
			Expect(customTable.Estimate(jnz, true)).To(Equal(uint64(25)))
		})
	})
})

var _ = Describe("TimingConfig", func() {
	Describe("Default Config", func() {
		It("should create valid default config", func() {
			config := latency.DefaultTimingConfig()
			Expect(config.Validate()).To(Succeed())
		})
	})

	Describe("Validation", func() {
		It("should reject zero mov cost", func() {
			config := latency.DefaultTimingConfig()
			config.MovRegToReg = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero arithmetic cost", func() {
			config := latency.DefaultTimingConfig()
			config.ArithRegToMem = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero jump cost", func() {
			config := latency.DefaultTimingConfig()
			config.JumpNotTaken = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a jump cheaper taken than skipped", func() {
			config := latency.DefaultTimingConfig()
			config.JumpTaken = 2
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a loop cheaper taken than skipped", func() {
			config := latency.DefaultTimingConfig()
			config.LoopTaken = 1
			Expect(config.Validate()).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("should create independent copy", func() {
			original := latency.DefaultTimingConfig()
			clone := original.Clone()

			clone.MovRegToReg = 100

			Expect(original.MovRegToReg).To(Equal(uint64(2)))
			Expect(clone.MovRegToReg).To(Equal(uint64(100)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "latency-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			original := latency.DefaultTimingConfig()
			original.MovRegToReg = 5
			original.JumpTaken = 20

			path := filepath.Join(tempDir, "timing.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.MovRegToReg).To(Equal(uint64(5)))
			Expect(loaded.JumpTaken).To(Equal(uint64(20)))
		})

		It("should keep defaults for fields the file omits", func() {
			path := filepath.Join(tempDir, "partial.json")
			err := os.WriteFile(path, []byte(`{"mov_reg_to_reg": 3}`), 0644)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.MovRegToReg).To(Equal(uint64(3)))
			Expect(loaded.ArithRegToReg).To(Equal(uint64(3)))
			Expect(loaded.JumpTaken).To(Equal(uint64(16)))
		})

		It("should return error for non-existent file", func() {
			_, err := latency.LoadConfig("/nonexistent/path/timing.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
