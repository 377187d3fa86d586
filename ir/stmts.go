package ir

import (
	"fmt"

	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/fileset"
)

// AssignOp keeps the same identity as ast.AssignOp across lowering.
type AssignOp = ast.AssignOp

const (
	AssignVar              = ast.AssignVar
	AssignSignal           = ast.AssignSignal
	AssignConstraintSignal = ast.AssignConstraintSignal
)

type (
	// IfThenElseStmt is the only IR statement with no direct AST counterpart:
	// the basic-block builder synthesizes it from an ast.IfThenElseStmt (and
	// from ast.WhileStmt's loop header), its branches replaced by block
	// indices. IfFalse is nil until complete_basic_block patches it; it
	// remains nil in the returned CFG when no block follows the conditional,
	// i.e. when an if without an else, or a while loop, is the last statement
	// of the definition's body.
	IfThenElseStmt struct {
		M               *ast.Meta
		Cond            Expr
		IfTrue, IfFalse *BlockIndex
	}

	// ReturnStmt returns a value from a function; Value is nil for a bare
	// `return`.
	ReturnStmt struct {
		M     *ast.Meta
		Value Expr
	}

	// AssertStmt evaluates Arg and aborts witness generation if it is false.
	AssertStmt struct {
		M   *ast.Meta
		Arg Expr
	}

	// LogCallStmt prints its arguments during witness generation.
	LogCallStmt struct {
		M    *ast.Meta
		Args []Expr
	}

	// SubstitutionStmt assigns Rhs to the (possibly indexed) unique name Name.
	SubstitutionStmt struct {
		M        *ast.Meta
		Name     string
		Kind     ast.VariableKind
		Accesses []Access
		Op       AssignOp
		Rhs      Expr
	}

	// MultiSubstitutionStmt destructures Rhs (a tuple-valued call) into Lhs.
	MultiSubstitutionStmt struct {
		M   *ast.Meta
		Lhs []Expr
		Op  AssignOp
		Rhs Expr
	}

	// ConstraintEqualityStmt adds the constraint Lhs === Rhs.
	ConstraintEqualityStmt struct {
		M        *ast.Meta
		Lhs, Rhs Expr
	}
)

func (n *IfThenElseStmt) GetMeta() *ast.Meta { return n.M }
func (n *IfThenElseStmt) Span() fileset.Span { return n.M.Span }
func (n *IfThenElseStmt) String() string {
	switch {
	case n.IfFalse == nil:
		return fmt.Sprintf("if (%s) goto %d else <pending>", n.Cond, n.IfTrue)
	default:
		return fmt.Sprintf("if (%s) goto %d else goto %d", n.Cond, *n.IfTrue, *n.IfFalse)
	}
}
func (n *IfThenElseStmt) stmt() {}

func (n *ReturnStmt) GetMeta() *ast.Meta { return n.M }
func (n *ReturnStmt) Span() fileset.Span { return n.M.Span }
func (n *ReturnStmt) String() string {
	if n.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", n.Value)
}
func (n *ReturnStmt) stmt() {}

func (n *AssertStmt) GetMeta() *ast.Meta { return n.M }
func (n *AssertStmt) Span() fileset.Span { return n.M.Span }
func (n *AssertStmt) String() string     { return fmt.Sprintf("assert(%s);", n.Arg) }
func (n *AssertStmt) stmt()              {}

func (n *LogCallStmt) GetMeta() *ast.Meta { return n.M }
func (n *LogCallStmt) Span() fileset.Span { return n.M.Span }
func (n *LogCallStmt) String() string     { return fmt.Sprintf("log(%s);", exprListString(n.Args)) }
func (n *LogCallStmt) stmt()              {}

func (n *SubstitutionStmt) GetMeta() *ast.Meta { return n.M }
func (n *SubstitutionStmt) Span() fileset.Span { return n.M.Span }
func (n *SubstitutionStmt) String() string {
	return fmt.Sprintf("%s%s %s %s;", n.Name, accessesString(n.Accesses), n.Op, n.Rhs)
}
func (n *SubstitutionStmt) stmt() {}

func (n *MultiSubstitutionStmt) GetMeta() *ast.Meta { return n.M }
func (n *MultiSubstitutionStmt) Span() fileset.Span { return n.M.Span }
func (n *MultiSubstitutionStmt) String() string {
	return fmt.Sprintf("(%s) %s %s;", exprListString(n.Lhs), n.Op, n.Rhs)
}
func (n *MultiSubstitutionStmt) stmt() {}

func (n *ConstraintEqualityStmt) GetMeta() *ast.Meta { return n.M }
func (n *ConstraintEqualityStmt) Span() fileset.Span { return n.M.Span }
func (n *ConstraintEqualityStmt) String() string {
	return fmt.Sprintf("%s === %s;", n.Lhs, n.Rhs)
}
func (n *ConstraintEqualityStmt) stmt() {}
