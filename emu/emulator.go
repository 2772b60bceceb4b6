// Package emu provides functional 8086 emulation.
package emu

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/sim86/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Inst is the record decoded for this step. Its storage is reused
	// by the next Step, so callers must not hold on to it.
	Inst *insts.Instruction

	// Done is true if the cursor has reached the end of the program.
	Done bool

	// Err is set if decoding failed at the cursor.
	Err error
}

// CycleEstimator estimates the cost of one decoded instruction in
// cycles. timing/latency provides the standard implementation.
type CycleEstimator interface {
	Estimate(inst *insts.Instruction, taken bool) uint64
}

// Emulator executes decoded 8086 instructions against simulated
// registers, flags, and memory. All machine state is owned by the
// emulator value; independent runs never share state.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	branchUnit *BranchUnit

	// Cycle accounting, active only when an estimator is attached
	estimator CycleEstimator
	cycles    uint64

	// Instructions executed since the last reset
	instructions uint64

	// I/O
	stdout io.Writer

	// Loaded program and scratch decode record
	code []byte
	inst insts.Instruction
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStdout sets a custom trace writer.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stdout = w
	}
}

// WithCycleEstimator attaches a cycle estimator; every trace line then
// carries a cycles segment and the emulator accumulates a total.
func WithCycleEstimator(estimator CycleEstimator) EmulatorOption {
	return func(e *Emulator) {
		e.estimator = estimator
	}
}

// NewEmulator creates a new 8086 emulator with zeroed machine state.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{}

	e := &Emulator{
		regFile: regFile,
		memory:  NewMemory(),
		decoder: insts.NewDecoder(),
		stdout:  os.Stdout,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.alu = NewALU(regFile)
	e.branchUnit = NewBranchUnit(regFile)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Cycles returns the accumulated cycle estimate.
func (e *Emulator) Cycles() uint64 {
	return e.cycles
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructions
}

// LoadProgram loads a machine-code image and moves the cursor to its
// first byte.
func (e *Emulator) LoadProgram(code []byte) {
	e.code = code
	e.regFile.IP = 0
}

// Reset returns the machine to its zeroed initial state. The loaded
// program stays in place.
func (e *Emulator) Reset() {
	e.regFile = &RegFile{}
	e.memory = NewMemory()
	e.cycles = 0
	e.instructions = 0

	e.alu = NewALU(e.regFile)
	e.branchUnit = NewBranchUnit(e.regFile)
}

// effect captures what one executed instruction did, for the trace line.
type effect struct {
	// regChange is the rendered register transition, empty when no
	// register changed.
	regChange string

	// taken is true when a modeled transfer redirected the cursor.
	taken bool

	// executable is false for transfers the engine cannot resolve;
	// they fall through with the cursor advancing normally.
	executable bool
}

// Step decodes the instruction at the cursor, executes it, and writes
// one trace line. Returns a StepResult indicating whether execution
// should continue.
func (e *Emulator) Step() StepResult {
	if int(e.regFile.IP) >= len(e.code) {
		return StepResult{Done: true}
	}

	oldIP := e.regFile.IP
	next, err := e.decoder.Decode(e.code, int(oldIP), &e.inst)
	if err != nil {
		return StepResult{Err: err}
	}
	e.regFile.IP = uint16(next)
	e.instructions++

	eff := e.execute(&e.inst)

	var sb strings.Builder
	sb.WriteString(insts.Text(&e.inst))
	sb.WriteString(" ; ")
	if e.estimator != nil {
		delta := e.estimator.Estimate(&e.inst, eff.taken)
		e.cycles += delta
		fmt.Fprintf(&sb, "cycles: +%d = %d | ", delta, e.cycles)
	}
	if eff.regChange != "" {
		sb.WriteString(eff.regChange)
		sb.WriteByte(' ')
	}
	fmt.Fprintf(&sb, "ip:%#x->%#x", oldIP, e.regFile.IP)
	if !eff.executable {
		sb.WriteString(" (not executable)")
	}
	fmt.Fprintln(e.stdout, sb.String())

	return StepResult{Inst: &e.inst}
}

// Run steps until the program is exhausted or decoding fails.
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Err != nil {
			return result.Err
		}
		if result.Done {
			return nil
		}
	}
}

// DumpRegisters writes the final machine state: every word register in
// canonical order zero-padded to four hex digits, then the set flag
// letters.
func (e *Emulator) DumpRegisters(w io.Writer) {
	fmt.Fprintln(w, "Final registers:")
	for i := range e.regFile.R {
		ref := insts.RegRef{Index: uint8(i)}
		fmt.Fprintf(w, "      %s: 0x%04x\n", ref, e.regFile.R[i])
	}
	fmt.Fprintf(w, "   flags: %s\n", e.regFile.Flags)
}

// execute dispatches a decoded instruction to its execution unit.
func (e *Emulator) execute(inst *insts.Instruction) effect {
	if inst.Format == insts.FormatJump {
		return e.executeJump(inst)
	}

	switch inst.Op {
	case insts.OpMov:
		return e.executeMov(inst)
	case insts.OpAdd, insts.OpSub:
		return e.executeArith(inst)
	case insts.OpCmp:
		return e.executeCmp(inst)
	}
	return effect{executable: true}
}

// executeMov moves the source value into the destination. Registers
// honor byte references; memory traffic is a 16-bit little-endian word.
func (e *Emulator) executeMov(inst *insts.Instruction) effect {
	value := e.readOperand(inst.Source())
	dest := inst.Dest()

	switch dest.Kind {
	case insts.OperandReg:
		old := e.regFile.ReadWord(dest.Reg)
		e.regFile.Write(dest.Reg, value)
		return effect{executable: true, regChange: e.regChange(dest.Reg, old)}
	case insts.OperandMem:
		e.memory.Write16(e.effAddr(dest.Mem), value)
	}
	return effect{executable: true}
}

// executeArith runs add or sub: destination = destination op source
// with 16-bit wraparound, flags set from the result.
func (e *Emulator) executeArith(inst *insts.Instruction) effect {
	src := e.readOperand(inst.Source())
	dest := inst.Dest()

	switch dest.Kind {
	case insts.OperandReg:
		old := e.regFile.ReadWord(dest.Reg)
		result := e.combine(inst.Op, e.regFile.Read(dest.Reg), src)
		e.regFile.Write(dest.Reg, result)
		return effect{executable: true, regChange: e.regChange(dest.Reg, old)}
	case insts.OperandMem:
		addr := e.effAddr(dest.Mem)
		e.memory.Write16(addr, e.combine(inst.Op, e.memory.Read16(addr), src))
	}
	return effect{executable: true}
}

func (e *Emulator) combine(op insts.Op, dest, src uint16) uint16 {
	if op == insts.OpAdd {
		return e.alu.Add(dest, src)
	}
	return e.alu.Sub(dest, src)
}

// executeCmp sets the flags from destination - source and leaves the
// destination untouched.
func (e *Emulator) executeCmp(inst *insts.Instruction) effect {
	src := e.readOperand(inst.Source())
	dest := e.readOperand(inst.Dest())
	e.alu.Compare(dest, src)
	return effect{executable: true}
}

// executeJump resolves a conditional transfer. A taken transfer adds
// the sign-extended displacement to the cursor, which already points
// past the instruction.
func (e *Emulator) executeJump(inst *insts.Instruction) effect {
	taken, modeled := e.branchUnit.CheckCondition(inst.Op)
	if !modeled {
		return effect{}
	}
	if taken {
		e.regFile.IP += inst.Dest().Imm
	}
	return effect{executable: true, taken: taken}
}

// readOperand fetches an operand value: immediates as resolved, byte
// register reads zero-extended, memory as a 16-bit little-endian load.
func (e *Emulator) readOperand(op insts.Operand) uint16 {
	switch op.Kind {
	case insts.OperandReg:
		return e.regFile.Read(op.Reg)
	case insts.OperandImm:
		return op.Imm
	case insts.OperandMem:
		return e.memory.Read16(e.effAddr(op.Mem))
	}
	return 0
}

// effAddr evaluates an effective address: base registers plus
// displacement with 16-bit wraparound.
func (e *Emulator) effAddr(mem insts.EffAddr) uint16 {
	addr := uint16(mem.Disp)
	for _, base := range mem.Bases {
		addr += e.regFile.R[base]
	}
	return addr
}

// regChange renders a register transition segment. The full containing
// word register is reported even for byte writes.
func (e *Emulator) regChange(ref insts.RegRef, old uint16) string {
	return fmt.Sprintf("%s:%#x->%#x", ref.WordName(), old, e.regFile.ReadWord(ref))
}
