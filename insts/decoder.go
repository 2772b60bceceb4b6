// Package insts provides 8086 instruction definitions and decoding.
package insts

import "fmt"

// NoMatchError reports a byte no decode path accepts. The offset is the
// position of the offending byte; decoding does not advance past it.
type NoMatchError struct {
	Offset int
	Byte   byte
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no encoding matches byte 0b%08b at offset %d", e.Byte, e.Offset)
}

// OutOfBoundsError reports an instruction stream that ends mid-encoding.
type OutOfBoundsError struct {
	Offset int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("instruction stream ends mid-encoding at offset %d", e.Offset)
}

// Decoder decodes 8086 machine code into instruction records.
type Decoder struct {
	trie *trie
}

// NewDecoder creates a decoder over the full decode-path table.
func NewDecoder() *Decoder {
	return &Decoder{trie: newTrie(decodePaths)}
}

// Decode decodes one instruction starting at offset, filling inst, and
// returns the offset of the first byte past the instruction. The record
// is reset first, so one record can be reused across calls.
//
// Matching is greedy: at every trie node the first pattern in priority
// order that accepts the current byte is taken, with no backtracking.
// Decode never reads at or past len(code).
func (d *Decoder) Decode(code []byte, offset int, inst *Instruction) (int, error) {
	inst.Reset()

	cur := int32(0)
	for len(d.trie.nodes[cur].edges) > 0 {
		if offset >= len(code) {
			return offset, &OutOfBoundsError{Offset: offset}
		}
		b := code[offset]

		next := int32(-1)
		for _, e := range d.trie.nodes[cur].edges {
			if e.pat.matches(b) {
				e.pat.apply(b, inst)
				next = e.child
				break
			}
		}
		if next < 0 {
			return offset, &NoMatchError{Offset: offset, Byte: b}
		}

		offset++
		cur = next
	}
	return offset, nil
}
