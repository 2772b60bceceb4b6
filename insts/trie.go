package insts

import "fmt"

// decodePaths lists every supported encoding as a byte-pattern sequence.
// Insertion order is the priority order: within each family the direct
// address path precedes the general mod=00 path, because mod=00 r/m=110
// means a direct address rather than [bp].
var decodePaths = [][]PatternID{
	// Register/memory to/from register: mov, add, sub, cmp.
	{PatOpRegRM, PatModReg},
	{PatOpRegRM, PatModDirect, PatDispLo, PatDispHi},
	{PatOpRegRM, PatModNoDisp},
	{PatOpRegRM, PatModDisp8, PatDispLo},
	{PatOpRegRM, PatModDisp16, PatDispLo, PatDispHi},

	// Mov immediate to register.
	{PatOpMovImmToReg8, PatDataLo},
	{PatOpMovImmToReg16, PatDataLo, PatDataHi},

	// Mov immediate to byte register/memory.
	{PatOpMovImmToRM8, PatModImmReg, PatDataLo},
	{PatOpMovImmToRM8, PatModImmDirect, PatDispLo, PatDispHi, PatDataLo},
	{PatOpMovImmToRM8, PatModImmNoDisp, PatDataLo},
	{PatOpMovImmToRM8, PatModImmDisp8, PatDispLo, PatDataLo},
	{PatOpMovImmToRM8, PatModImmDisp16, PatDispLo, PatDispHi, PatDataLo},

	// Mov immediate to word register/memory.
	{PatOpMovImmToRM16, PatModImmReg, PatDataLo, PatDataHi},
	{PatOpMovImmToRM16, PatModImmDirect, PatDispLo, PatDispHi, PatDataLo, PatDataHi},
	{PatOpMovImmToRM16, PatModImmNoDisp, PatDataLo, PatDataHi},
	{PatOpMovImmToRM16, PatModImmDisp8, PatDispLo, PatDataLo, PatDataHi},
	{PatOpMovImmToRM16, PatModImmDisp16, PatDispLo, PatDispHi, PatDataLo, PatDataHi},

	// Add/sub/cmp immediate to register/memory, one data byte.
	{PatOpArithImm8, PatModArithReg, PatDataLo},
	{PatOpArithImm8, PatModArithDirect, PatDispLo, PatDispHi, PatDataLo},
	{PatOpArithImm8, PatModArithNoDisp, PatDataLo},
	{PatOpArithImm8, PatModArithDisp8, PatDispLo, PatDataLo},
	{PatOpArithImm8, PatModArithDisp16, PatDispLo, PatDispHi, PatDataLo},

	// Add/sub/cmp immediate to register/memory, two data bytes.
	{PatOpArithImm16, PatModArithReg, PatDataLo, PatDataHi},
	{PatOpArithImm16, PatModArithDirect, PatDispLo, PatDispHi, PatDataLo, PatDataHi},
	{PatOpArithImm16, PatModArithNoDisp, PatDataLo, PatDataHi},
	{PatOpArithImm16, PatModArithDisp8, PatDispLo, PatDataLo, PatDataHi},
	{PatOpArithImm16, PatModArithDisp16, PatDispLo, PatDispHi, PatDataLo, PatDataHi},

	// Accumulator moves through a direct address.
	{PatOpMovMemToAcc, PatDispLo, PatDispHi},
	{PatOpMovAccToMem, PatDispLo, PatDispHi},

	// Add/sub/cmp immediate to accumulator.
	{PatOpArithImmToAcc8, PatDataLo},
	{PatOpArithImmToAcc16, PatDataLo, PatDataHi},

	// Conditional transfers: head byte plus signed displacement.
	{PatJe, PatDispLo},
	{PatJl, PatDispLo},
	{PatJle, PatDispLo},
	{PatJb, PatDispLo},
	{PatJbe, PatDispLo},
	{PatJp, PatDispLo},
	{PatJo, PatDispLo},
	{PatJs, PatDispLo},
	{PatJnz, PatDispLo},
	{PatJnl, PatDispLo},
	{PatJnle, PatDispLo},
	{PatJnb, PatDispLo},
	{PatJnbe, PatDispLo},
	{PatJnp, PatDispLo},
	{PatJno, PatDispLo},
	{PatJns, PatDispLo},
	{PatLoop, PatDispLo},
	{PatLoopz, PatDispLo},
	{PatLoopnz, PatDispLo},
	{PatJcxz, PatDispLo},
}

// edge links a byte pattern to the node reached when it matches. Edges
// keep the order their paths were inserted in; the first matching edge
// wins, which is the whole priority rule.
type edge struct {
	pat   PatternID
	child int32
}

// node is one trie position. A node with no edges is terminal: reaching
// it completes an instruction.
type node struct {
	edges []edge
}

// trie is the decode automaton. Nodes live in a flat arena indexed by
// edge.child; nodes[0] is the root.
type trie struct {
	nodes []node
}

// newTrie builds the automaton from a path list. No path may be a strict
// prefix of another, otherwise terminal nodes would be ambiguous; the
// builder panics on such a list since it is a defect in a static table.
func newTrie(paths [][]PatternID) *trie {
	t := &trie{nodes: make([]node, 1)}
	ends := make([]int32, len(paths))
	for i, path := range paths {
		ends[i] = t.insert(path)
	}
	for i, end := range ends {
		if len(t.nodes[end].edges) != 0 {
			panic(fmt.Sprintf("insts: decode path %d is a prefix of a longer path", i))
		}
	}
	return t
}

// insert walks the path, reusing existing edges and appending nodes for
// the rest, and returns the index of the path's final node.
func (t *trie) insert(path []PatternID) int32 {
	cur := int32(0)
	for _, pat := range path {
		next := int32(-1)
		for _, e := range t.nodes[cur].edges {
			if e.pat == pat {
				next = e.child
				break
			}
		}
		if next < 0 {
			t.nodes = append(t.nodes, node{})
			next = int32(len(t.nodes) - 1)
			t.nodes[cur].edges = append(t.nodes[cur].edges, edge{pat: pat, child: next})
		}
		cur = next
	}
	return cur
}
