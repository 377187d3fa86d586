package ir

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/fileset"
)

// InfixOp and PrefixOp keep the same opcode identity as their ast
// counterparts across lowering, per the lowering contract.
type (
	InfixOp  = ast.InfixOp
	PrefixOp = ast.PrefixOp
)

// AccessKind distinguishes an array index from a component-signal access, as
// in the AST.
type AccessKind = ast.AccessKind

const (
	ArrayAccess     = ast.ArrayAccess
	ComponentAccess = ast.ComponentAccess
)

// Access is one array-index or component-signal access appended to a
// variable reference, with the index (if any) already lowered.
type Access struct {
	Kind   AccessKind
	Index  Expr
	Signal string
}

func (a Access) String() string {
	switch a.Kind {
	case ArrayAccess:
		return fmt.Sprintf("[%s]", a.Index)
	case ComponentAccess:
		return "." + a.Signal
	default:
		return "<invalid access>"
	}
}

func accessesString(accesses []Access) string {
	var sb strings.Builder
	for _, a := range accesses {
		sb.WriteString(a.String())
	}
	return sb.String()
}

func exprListString(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

type (
	// NumberExpr is a field-element literal.
	NumberExpr struct {
		M     *ast.Meta
		Value *big.Int
	}

	// VariableExpr references a variable, signal, component, or bus by its
	// unique name and resolved kind.
	VariableExpr struct {
		M        *ast.Meta
		Name     string
		Kind     ast.VariableKind
		Accesses []Access
	}

	// InfixOpExpr is a binary operator expression.
	InfixOpExpr struct {
		M           *ast.Meta
		Op          InfixOp
		Left, Right Expr
	}

	// PrefixOpExpr is a unary operator expression.
	PrefixOpExpr struct {
		M     *ast.Meta
		Op    PrefixOp
		Right Expr
	}

	// ParallelOpExpr marks a component instantiation as eligible for parallel
	// witness generation.
	ParallelOpExpr struct {
		M     *ast.Meta
		Right Expr
	}

	// InlineSwitchExpr is a ternary conditional expression, kept in
	// expression position rather than lifted to a block-level conditional.
	InlineSwitchExpr struct {
		M                *ast.Meta
		Cond             Expr
		IfTrue, IfFalse  Expr
	}

	// CallExpr is a call to a named function or template.
	CallExpr struct {
		M    *ast.Meta
		Name string
		Args []Expr
	}

	// AnonymousComponentExpr instantiates a template without a preceding
	// named component declaration.
	AnonymousComponentExpr struct {
		M    *ast.Meta
		Name string
		Args []Expr
	}

	// ArrayInLineExpr is an array literal.
	ArrayInLineExpr struct {
		M        *ast.Meta
		Elements []Expr
	}

	// TupleExpr is a tuple literal.
	TupleExpr struct {
		M        *ast.Meta
		Elements []Expr
	}

	// UniformArrayExpr constructs an array of Length copies of Value.
	UniformArrayExpr struct {
		M      *ast.Meta
		Value  Expr
		Length Expr
	}
)

func (n *NumberExpr) GetMeta() *ast.Meta   { return n.M }
func (n *NumberExpr) Span() fileset.Span   { return n.M.Span }
func (n *NumberExpr) String() string       { return n.Value.String() }
func (n *NumberExpr) expr()                {}

func (n *VariableExpr) GetMeta() *ast.Meta { return n.M }
func (n *VariableExpr) Span() fileset.Span { return n.M.Span }
func (n *VariableExpr) String() string     { return n.Name + accessesString(n.Accesses) }
func (n *VariableExpr) expr()              {}

func (n *InfixOpExpr) GetMeta() *ast.Meta { return n.M }
func (n *InfixOpExpr) Span() fileset.Span { return n.M.Span }
func (n *InfixOpExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}
func (n *InfixOpExpr) expr() {}

func (n *PrefixOpExpr) GetMeta() *ast.Meta { return n.M }
func (n *PrefixOpExpr) Span() fileset.Span { return n.M.Span }
func (n *PrefixOpExpr) String() string     { return fmt.Sprintf("(%s%s)", n.Op, n.Right) }
func (n *PrefixOpExpr) expr()              {}

func (n *ParallelOpExpr) GetMeta() *ast.Meta { return n.M }
func (n *ParallelOpExpr) Span() fileset.Span { return n.M.Span }
func (n *ParallelOpExpr) String() string     { return "parallel " + n.Right.String() }
func (n *ParallelOpExpr) expr()              {}

func (n *InlineSwitchExpr) GetMeta() *ast.Meta { return n.M }
func (n *InlineSwitchExpr) Span() fileset.Span { return n.M.Span }
func (n *InlineSwitchExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", n.Cond, n.IfTrue, n.IfFalse)
}
func (n *InlineSwitchExpr) expr() {}

func (n *CallExpr) GetMeta() *ast.Meta { return n.M }
func (n *CallExpr) Span() fileset.Span { return n.M.Span }
func (n *CallExpr) String() string     { return fmt.Sprintf("%s(%s)", n.Name, exprListString(n.Args)) }
func (n *CallExpr) expr()              {}

func (n *AnonymousComponentExpr) GetMeta() *ast.Meta { return n.M }
func (n *AnonymousComponentExpr) Span() fileset.Span { return n.M.Span }
func (n *AnonymousComponentExpr) String() string {
	return fmt.Sprintf("%s()(%s)", n.Name, exprListString(n.Args))
}
func (n *AnonymousComponentExpr) expr() {}

func (n *ArrayInLineExpr) GetMeta() *ast.Meta { return n.M }
func (n *ArrayInLineExpr) Span() fileset.Span { return n.M.Span }
func (n *ArrayInLineExpr) String() string {
	return fmt.Sprintf("[%s]", exprListString(n.Elements))
}
func (n *ArrayInLineExpr) expr() {}

func (n *TupleExpr) GetMeta() *ast.Meta { return n.M }
func (n *TupleExpr) Span() fileset.Span { return n.M.Span }
func (n *TupleExpr) String() string     { return fmt.Sprintf("(%s)", exprListString(n.Elements)) }
func (n *TupleExpr) expr()              {}

func (n *UniformArrayExpr) GetMeta() *ast.Meta { return n.M }
func (n *UniformArrayExpr) Span() fileset.Span { return n.M.Span }
func (n *UniformArrayExpr) String() string {
	return fmt.Sprintf("[%s] * %s", n.Value, n.Length)
}
func (n *UniformArrayExpr) expr() {}
