package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds base cycle counts per operation and operand class.
// Values follow the 8086 family user's manual instruction timing tables;
// effective-address overhead is accounted separately by the Table.
type TimingConfig struct {
	// MovRegToReg is the cost of mov between two registers. Default: 2.
	MovRegToReg uint64 `json:"mov_reg_to_reg"`

	// MovMemToReg is the cost of mov from memory into a register,
	// before effective-address overhead. Default: 8.
	MovMemToReg uint64 `json:"mov_mem_to_reg"`

	// MovRegToMem is the cost of mov from a register into memory,
	// before effective-address overhead. Default: 9.
	MovRegToMem uint64 `json:"mov_reg_to_mem"`

	// MovImmToReg is the cost of mov immediate into a register. Default: 4.
	MovImmToReg uint64 `json:"mov_imm_to_reg"`

	// MovImmToMem is the cost of mov immediate into memory, before
	// effective-address overhead. Default: 10.
	MovImmToMem uint64 `json:"mov_imm_to_mem"`

	// MovAccMem is the cost of the accumulator/direct-address mov forms,
	// address included. Default: 10.
	MovAccMem uint64 `json:"mov_acc_mem"`

	// ArithRegToReg is the cost of add/sub/cmp between registers. Default: 3.
	ArithRegToReg uint64 `json:"arith_reg_to_reg"`

	// ArithMemToReg is the cost of add/sub/cmp with a memory source,
	// before effective-address overhead. Default: 9.
	ArithMemToReg uint64 `json:"arith_mem_to_reg"`

	// ArithRegToMem is the cost of add/sub with a memory destination,
	// before effective-address overhead. Default: 16.
	ArithRegToMem uint64 `json:"arith_reg_to_mem"`

	// ArithImmToReg is the cost of add/sub/cmp immediate against a
	// register. Default: 4.
	ArithImmToReg uint64 `json:"arith_imm_to_reg"`

	// ArithImmToMem is the cost of add/sub immediate against memory,
	// before effective-address overhead. Default: 17.
	ArithImmToMem uint64 `json:"arith_imm_to_mem"`

	// ArithImmToAcc is the cost of the add/sub/cmp immediate-to-accumulator
	// forms. Default: 4.
	ArithImmToAcc uint64 `json:"arith_imm_to_acc"`

	// CmpRegToMem is the cost of cmp with a memory destination; cmp skips
	// the writeback that makes add/sub to memory expensive. Default: 9.
	CmpRegToMem uint64 `json:"cmp_reg_to_mem"`

	// CmpImmToMem is the cost of cmp immediate against memory. Default: 10.
	CmpImmToMem uint64 `json:"cmp_imm_to_mem"`

	// JumpTaken is the cost of a taken conditional jump. Default: 16.
	JumpTaken uint64 `json:"jump_taken"`

	// JumpNotTaken is the fall-through cost of a conditional jump. Default: 4.
	JumpNotTaken uint64 `json:"jump_not_taken"`

	// LoopTaken is the cost of a taken loop. Default: 17.
	LoopTaken uint64 `json:"loop_taken"`

	// LoopNotTaken is the fall-through cost of loop. Default: 5.
	LoopNotTaken uint64 `json:"loop_not_taken"`

	// LoopzTaken is the cost of a taken loopz. Default: 18.
	LoopzTaken uint64 `json:"loopz_taken"`

	// LoopzNotTaken is the fall-through cost of loopz. Default: 6.
	LoopzNotTaken uint64 `json:"loopz_not_taken"`

	// LoopnzTaken is the cost of a taken loopnz. Default: 19.
	LoopnzTaken uint64 `json:"loopnz_taken"`

	// LoopnzNotTaken is the fall-through cost of loopnz. Default: 5.
	LoopnzNotTaken uint64 `json:"loopnz_not_taken"`

	// JcxzTaken is the cost of a taken jcxz. Default: 18.
	JcxzTaken uint64 `json:"jcxz_taken"`

	// JcxzNotTaken is the fall-through cost of jcxz. Default: 6.
	JcxzNotTaken uint64 `json:"jcxz_not_taken"`
}

// DefaultTimingConfig returns a TimingConfig with the manual's 8086 values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		MovRegToReg:    2,
		MovMemToReg:    8,
		MovRegToMem:    9,
		MovImmToReg:    4,
		MovImmToMem:    10,
		MovAccMem:      10,
		ArithRegToReg:  3,
		ArithMemToReg:  9,
		ArithRegToMem:  16,
		ArithImmToReg:  4,
		ArithImmToMem:  17,
		ArithImmToAcc:  4,
		CmpRegToMem:    9,
		CmpImmToMem:    10,
		JumpTaken:      16,
		JumpNotTaken:   4,
		LoopTaken:      17,
		LoopNotTaken:   5,
		LoopzTaken:     18,
		LoopzNotTaken:  6,
		LoopnzTaken:    19,
		LoopnzNotTaken: 5,
		JcxzTaken:      18,
		JcxzNotTaken:   6,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields absent from
// the file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that every cycle count is positive and that no
// transfer costs less taken than not taken.
func (c *TimingConfig) Validate() error {
	positive := map[string]uint64{
		"mov_reg_to_reg":   c.MovRegToReg,
		"mov_mem_to_reg":   c.MovMemToReg,
		"mov_reg_to_mem":   c.MovRegToMem,
		"mov_imm_to_reg":   c.MovImmToReg,
		"mov_imm_to_mem":   c.MovImmToMem,
		"mov_acc_mem":      c.MovAccMem,
		"arith_reg_to_reg": c.ArithRegToReg,
		"arith_mem_to_reg": c.ArithMemToReg,
		"arith_reg_to_mem": c.ArithRegToMem,
		"arith_imm_to_reg": c.ArithImmToReg,
		"arith_imm_to_mem": c.ArithImmToMem,
		"arith_imm_to_acc": c.ArithImmToAcc,
		"cmp_reg_to_mem":   c.CmpRegToMem,
		"cmp_imm_to_mem":   c.CmpImmToMem,
		"jump_not_taken":   c.JumpNotTaken,
		"loop_not_taken":   c.LoopNotTaken,
		"loopz_not_taken":  c.LoopzNotTaken,
		"loopnz_not_taken": c.LoopnzNotTaken,
		"jcxz_not_taken":   c.JcxzNotTaken,
	}
	for name, value := range positive {
		if value == 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}

	if c.JumpTaken < c.JumpNotTaken {
		return fmt.Errorf("jump_taken must be >= jump_not_taken")
	}
	if c.LoopTaken < c.LoopNotTaken {
		return fmt.Errorf("loop_taken must be >= loop_not_taken")
	}
	if c.LoopzTaken < c.LoopzNotTaken {
		return fmt.Errorf("loopz_taken must be >= loopz_not_taken")
	}
	if c.LoopnzTaken < c.LoopnzNotTaken {
		return fmt.Errorf("loopnz_taken must be >= loopnz_not_taken")
	}
	if c.JcxzTaken < c.JcxzNotTaken {
		return fmt.Errorf("jcxz_taken must be >= jcxz_not_taken")
	}

	return nil
}

// Clone returns a copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
