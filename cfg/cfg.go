// Package cfg builds a control-flow graph of basic blocks from a rewritten
// AST body, by lowering each statement to IR as it is visited (see the
// lower package), computing a dominator tree over the resulting graph, and
// recording a declaration map from the lowering environment's final
// snapshot.
package cfg

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/config"
	"github.com/mna/zklint/ir"
)

// Fatal, per-definition error taxonomy. An orchestrator lowering many
// definitions catches these and continues with the remaining ones.
var (
	// ErrShadowingSignal mirrors the ERROR report unique.Rewrite emits when a
	// local declaration shadows a signal; it is also surfaced here as a
	// build failure, since lowering a definition containing it can't produce
	// a meaningful CFG.
	ErrShadowingSignal = errors.New("cfg: declaration shadows a signal")

	// ErrMalformedInitBlock is returned when an InitializationBlock contains
	// a statement that is not a Declaration or a Substitution.
	ErrMalformedInitBlock = errors.New("cfg: malformed initialization block")

	// ErrEmptyCfg is returned by the dominator-tree pass when presented with
	// a CFG that has no blocks.
	ErrEmptyCfg = errors.New("cfg: empty control-flow graph")
)

// BasicBlock is a maximal sequence of IR statements with a single entry and
// a single exit: index, an ordered statement list, and predecessor/successor
// index sets.
type BasicBlock struct {
	Index        ir.BlockIndex
	Meta         *ast.Meta
	Stmts        []ir.Stmt
	Predecessors *bitset.BitSet
	Successors   *bitset.BitSet
}

func newBasicBlock(index int, meta *ast.Meta) *BasicBlock {
	return &BasicBlock{
		Index:        ir.BlockIndex(index),
		Meta:         meta,
		Predecessors: bitset.New(0),
		Successors:   bitset.New(0),
	}
}

// Cfg is one definition's (template or function) control-flow graph: its
// name, parameter data, declaration map, basic blocks (block 0 is the
// entry), and dominator-tree information.
type Cfg struct {
	Name string
	// Curve is carried opaquely for downstream, curve-aware analyses; nothing
	// in this package reads it back.
	Curve   config.Curve
	Params  *ast.ParamData
	Decls   *DeclarationMap
	Blocks  []*BasicBlock
	Idom    []int // Idom[i] is i's immediate dominator, or -1 if i is unreachable or the root.
	DomTree [][]int
	Frontier []*bitset.BitSet

	// rpo is block indices in reverse postorder from the entry block,
	// reused by Propagate to process blocks in an order that needs fewer
	// fixed-point iterations to converge.
	rpo []int
}

// Block returns the basic block at index i.
func (c *Cfg) Block(i ir.BlockIndex) *BasicBlock {
	return c.Blocks[i]
}

// IDom returns the immediate dominator of block i, or -1 if i is
// unreachable or is the entry block (index 0).
func (c *Cfg) IDom(i ir.BlockIndex) int {
	return c.Idom[i]
}

// DominanceFrontier returns the dominance frontier of block i.
func (c *Cfg) DominanceFrontier(i ir.BlockIndex) *bitset.BitSet {
	return c.Frontier[i]
}

func iterateSet(bs *bitset.BitSet, f func(i uint)) {
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		f(i)
	}
}
