// Package emu provides functional 8086 emulation.
package emu

// MemorySize is the size of the simulated flat address space.
const MemorySize = 1 << 16

// Memory represents the 64 KiB byte-addressable data space. Addresses
// wrap at the 16-bit boundary, so a word access at 0xFFFF touches
// 0xFFFF and 0x0000.
type Memory struct {
	data [MemorySize]byte
}

// NewMemory creates a zeroed memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Read8 reads one byte.
func (m *Memory) Read8(addr uint16) uint8 {
	return m.data[addr]
}

// Write8 writes one byte.
func (m *Memory) Write8(addr uint16, value uint8) {
	m.data[addr] = value
}

// Read16 reads a little-endian word.
func (m *Memory) Read16(addr uint16) uint16 {
	lo := uint16(m.data[addr])
	hi := uint16(m.data[addr+1])
	return lo | hi<<8
}

// Write16 writes a little-endian word.
func (m *Memory) Write16(addr uint16, value uint16) {
	m.data[addr] = byte(value)
	m.data[addr+1] = byte(value >> 8)
}
