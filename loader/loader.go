// Package loader reads flat 8086 machine-code binaries.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarchlab/sim86/emu"
)

// Program represents a loaded binary ready for decoding or execution.
type Program struct {
	// Name is the base name of the file the program was read from.
	Name string
	// Code contains the raw machine-code bytes.
	Code []byte
}

// Load reads a flat binary and returns a Program. The file is taken as
// machine code from its first byte; there is no container format.
func Load(path string) (*Program, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program file: %w", err)
	}

	if len(code) == 0 {
		return nil, fmt.Errorf("program file %s is empty", path)
	}

	// The instruction pointer is 16 bits, so anything past 64 KiB could
	// never be reached.
	if len(code) > emu.MemorySize {
		return nil, fmt.Errorf("program is %d bytes; at most %d fit in the address space",
			len(code), emu.MemorySize)
	}

	return &Program{
		Name: filepath.Base(path),
		Code: code,
	}, nil
}
