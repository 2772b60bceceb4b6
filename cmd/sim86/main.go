// Package main provides the entry point for sim86.
// sim86 decodes 8086-family machine code and optionally executes it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/tliron/commonlog"

	"github.com/sarchlab/sim86/emu"
	"github.com/sarchlab/sim86/insts"
	"github.com/sarchlab/sim86/loader"
	"github.com/sarchlab/sim86/timing/latency"

	_ "github.com/tliron/commonlog/simple"
)

var (
	execMode   = flag.Bool("exec", false, "Execute the program instead of printing its disassembly")
	showCycles = flag.Bool("cycles", false, "Annotate output with estimated 8086 cycle counts")
	configPath = flag.String("config", "", "Path to a cycle table configuration JSON file")
	debug      = flag.Bool("debug", false, "Dump each decoded instruction record to stderr")
	verbose    = flag.Bool("v", false, "Verbose output")
)

var log = commonlog.GetLogger("sim86")

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: sim86 [options] <program.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}
	log.Infof("loaded %s: %d bytes", prog.Name, len(prog.Code))

	table, err := cycleTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timing config: %v\n", err)
		os.Exit(1)
	}

	if *execMode {
		err = runExec(prog, table, os.Stdout)
	} else {
		err = runDecode(prog, table, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cycleTable builds the cycle estimation table when -cycles is set,
// honoring -config. Returns nil when estimation is off.
func cycleTable() (*latency.Table, error) {
	if !*showCycles {
		return nil, nil
	}
	if *configPath == "" {
		return latency.NewTable(), nil
	}

	config, err := latency.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return latency.NewTableWithConfig(config), nil
}

// runDecode prints the program as an assembly listing.
func runDecode(prog *loader.Program, table *latency.Table, out io.Writer) error {
	decoder := insts.NewDecoder()
	inst := &insts.Instruction{}

	fmt.Fprintln(out, "bits 16")
	fmt.Fprintln(out)

	var total uint64
	for offset := 0; offset < len(prog.Code); {
		next, err := decoder.Decode(prog.Code, offset, inst)
		if err != nil {
			return err
		}
		if *debug {
			spew.Fdump(os.Stderr, inst)
		}

		if table != nil {
			// A listing carries no machine state; transfers price as
			// not taken.
			cost := table.Estimate(inst, false)
			total += cost
			fmt.Fprintf(out, "%s ; cycles: +%d = %d\n", insts.Text(inst), cost, total)
		} else {
			fmt.Fprintln(out, insts.Text(inst))
		}
		offset = next
	}

	if table != nil {
		fmt.Fprintf(out, "; total: %d cycles\n", total)
	}

	return nil
}

// runExec executes the program, tracing each step, then dumps the
// final machine state.
func runExec(prog *loader.Program, table *latency.Table, out io.Writer) error {
	opts := []emu.EmulatorOption{emu.WithStdout(out)}
	if table != nil {
		opts = append(opts, emu.WithCycleEstimator(table))
	}

	emulator := emu.NewEmulator(opts...)
	emulator.LoadProgram(prog.Code)

	for {
		result := emulator.Step()
		if result.Err != nil {
			return result.Err
		}
		if result.Done {
			break
		}
		if *debug {
			spew.Fdump(os.Stderr, result.Inst)
		}
	}

	if table != nil {
		fmt.Fprintf(out, "Total cycles: %d\n", emulator.Cycles())
	}

	fmt.Fprintln(out)
	emulator.DumpRegisters(out)

	return nil
}
