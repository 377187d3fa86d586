// Package ir defines the intermediate representation basic-block construction
// lowers the AST into: expressions and statements structurally parallel to
// their ast counterparts, but with every symbol reference carrying its
// disambiguated (post-uniqueness-rewrite) name, a resolved VariableKind, and
// a non-nil Meta. Unlike the AST, IR has no Block, InitializationBlock,
// While, or Declaration statement — those are purely structural and are
// consumed by the basic-block builder rather than surviving into a block's
// statement list; the builder instead emits an IfThenElse IR statement whose
// branch targets are block indices.
package ir

import (
	"fmt"

	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/fileset"
)

// BlockIndex identifies a BasicBlock within one Cfg.
type BlockIndex int

// Node is any node in the IR.
type Node interface {
	fmt.Stringer
	Span() fileset.Span
	GetMeta() *ast.Meta
}

// Expr is an IR expression node.
type Expr interface {
	Node
	expr()
}

// Stmt is an IR statement node.
type Stmt interface {
	Node
	stmt()
}
