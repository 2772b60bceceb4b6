// Package main provides the entry point for sim86.
// sim86 is an 8086-family instruction decoder and micro-emulator.
//
// For the full CLI, use: go run ./cmd/sim86
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("sim86 - 8086 Instruction Decoder and Emulator")
	fmt.Println("")
	fmt.Println("Usage: sim86 [options] <program.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -exec      Execute the program instead of printing its disassembly")
	fmt.Println("  -cycles    Annotate output with estimated 8086 cycle counts")
	fmt.Println("  -config    Path to a cycle table configuration JSON file")
	fmt.Println("  -debug     Dump each decoded instruction record to stderr")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/sim86' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/sim86' instead.")
	}
}
