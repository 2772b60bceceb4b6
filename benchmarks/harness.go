// Package benchmarks provides acceptance programs and a timing harness
// for sim86 validation.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/sim86/emu"
	"github.com/sarchlab/sim86/timing/latency"
)

// BenchmarkResult holds the outcome of a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark exercises
	Description string `json:"description"`

	// Instructions is the number of executed instructions
	Instructions uint64 `json:"instructions"`

	// Cycles is the estimated 8086 cycle total
	Cycles uint64 `json:"cycles"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// WallTime is the host time taken to run the program
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark exercises
	Description string

	// Setup prepares emulator state before the run
	Setup func(e *emu.Emulator)

	// Program is the 8086 machine code to execute
	Program []byte

	// Expected maps word register indexes to required final values
	// (for validation)
	Expected map[uint8]uint16
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Table prices instructions; nil runs without cycle estimates
	Table *latency.Table

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose routes each program's execution trace to Output as well
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Table:  latency.NewTable(),
		Output: os.Stdout,
	}
}

// Harness runs benchmark programs and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() ([]BenchmarkResult, error) {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result, err := h.runBenchmark(bench)
		if err != nil {
			return nil, fmt.Errorf("benchmark %s: %w", bench.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// runBenchmark executes a single benchmark with fresh machine state.
func (h *Harness) runBenchmark(bench Benchmark) (BenchmarkResult, error) {
	trace := io.Discard
	if h.config.Verbose {
		trace = h.config.Output
	}

	opts := []emu.EmulatorOption{emu.WithStdout(trace)}
	if h.config.Table != nil {
		opts = append(opts, emu.WithCycleEstimator(h.config.Table))
	}

	emulator := emu.NewEmulator(opts...)
	if bench.Setup != nil {
		bench.Setup(emulator)
	}
	emulator.LoadProgram(bench.Program)

	start := time.Now()
	err := emulator.Run()
	wallTime := time.Since(start)
	if err != nil {
		return BenchmarkResult{}, err
	}

	instructions := emulator.InstructionCount()
	cpi := float64(0)
	if instructions > 0 {
		cpi = float64(emulator.Cycles()) / float64(instructions)
	}

	return BenchmarkResult{
		Name:         bench.Name,
		Description:  bench.Description,
		Instructions: instructions,
		Cycles:       emulator.Cycles(),
		CPI:          cpi,
		WallTime:     wallTime,
	}, nil
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== sim86 Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description:  %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions: %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  Cycles:       %d\n", r.Cycles)
		_, _ = fmt.Fprintf(h.config.Output, "  CPI:          %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time:    %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "name,instructions,cycles,cpi")
	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f\n",
			r.Name, r.Instructions, r.Cycles, r.CPI)
	}
}

// BenchmarkReport is the JSON document PrintJSON emits.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmarks were run
	Timestamp string `json:"timestamp"`

	// Version of the simulator
	Version string `json:"version"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// TotalInstructions is the sum of executed instructions
	TotalInstructions uint64 `json:"total_instructions"`

	// TotalCycles is the sum of estimated cycles
	TotalCycles uint64 `json:"total_cycles"`

	// AverageCPI is total cycles over total instructions
	AverageCPI float64 `json:"average_cpi"`
}

// PrintJSON outputs benchmark results as JSON for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	var totalInstructions, totalCycles uint64
	for _, r := range results {
		totalInstructions += r.Instructions
		totalCycles += r.Cycles
	}

	avgCPI := float64(0)
	if totalInstructions > 0 {
		avgCPI = float64(totalCycles) / float64(totalInstructions)
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "0.1.0",
		},
		Results: results,
		Summary: ReportSummary{
			TotalBenchmarks:   len(results),
			TotalInstructions: totalInstructions,
			TotalCycles:       totalCycles,
			AverageCPI:        avgCPI,
		},
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
