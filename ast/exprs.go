package ast

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/mna/zklint/fileset"
)

// InfixOp is a binary operator.
type InfixOp uint8

const (
	Add InfixOp = iota
	Sub
	Mul
	Div
	IntDiv
	Mod
	Pow
	BitAnd
	BitOr
	BitXor
	ShiftL
	ShiftR
	Lt
	Lte
	Gt
	Gte
	Eq
	NotEq
	BoolAnd
	BoolOr
)

var infixOpNames = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", IntDiv: "\\", Mod: "%", Pow: "**",
	BitAnd: "&", BitOr: "|", BitXor: "^", ShiftL: "<<", ShiftR: ">>",
	Lt: "<", Lte: "<=", Gt: ">", Gte: ">=", Eq: "==", NotEq: "!=",
	BoolAnd: "&&", BoolOr: "||",
}

func (op InfixOp) String() string {
	if int(op) < len(infixOpNames) {
		return infixOpNames[op]
	}
	return fmt.Sprintf("<invalid infix op %d>", op)
}

// IsBoolean reports whether the operator always produces a boolean result.
func (op InfixOp) IsBoolean() bool {
	switch op {
	case Lt, Lte, Gt, Gte, Eq, NotEq, BoolAnd, BoolOr:
		return true
	default:
		return false
	}
}

// PrefixOp is a unary operator.
type PrefixOp uint8

const (
	Neg PrefixOp = iota
	BoolNot
	BitNot
)

var prefixOpNames = [...]string{Neg: "-", BoolNot: "!", BitNot: "~"}

func (op PrefixOp) String() string {
	if int(op) < len(prefixOpNames) {
		return prefixOpNames[op]
	}
	return fmt.Sprintf("<invalid prefix op %d>", op)
}

// AccessKind distinguishes the two ways a variable reference can be indexed.
type AccessKind uint8

const (
	ArrayAccess AccessKind = iota
	ComponentAccess
)

// Access is one array-index or component-signal access appended to a
// variable reference, e.g. the `[i]` or `.out` in `x[i].out`.
type Access struct {
	Kind AccessKind

	// Index is set when Kind == ArrayAccess.
	Index Expr

	// Signal is set when Kind == ComponentAccess.
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

type (
	// NumberExpr is a field-element literal.
	NumberExpr struct {
		M     *Meta
		Value *big.Int
	}

	// VariableExpr is a reference to a variable, signal, component, or bus,
	// optionally indexed by one or more accesses.
	VariableExpr struct {
		M        *Meta
		Name     string
		Accesses []Access
	}

	// InfixOpExpr is a binary operator expression.
	InfixOpExpr struct {
		M           *Meta
		Op          InfixOp
		Left, Right Expr
	}

	// PrefixOpExpr is a unary operator expression.
	PrefixOpExpr struct {
		M     *Meta
		Op    PrefixOp
		Right Expr
	}

	// ParallelOpExpr marks a component instantiation as eligible for parallel
	// witness generation, e.g. `parallel Multiplier()`.
	ParallelOpExpr struct {
		M     *Meta
		Right Expr
	}

	// InlineSwitchExpr is a ternary conditional expression, preserved in
	// expression position rather than lifted to a block-level conditional.
	InlineSwitchExpr struct {
		M                 *Meta
		Cond              Expr
		IfTrue, IfFalse   Expr
	}

	// CallExpr is a call to a named function or template.
	CallExpr struct {
		M    *Meta
		Name string
		Args []Expr
	}

	// AnonymousComponentExpr instantiates a template without binding it to a
	// named component first, e.g. `Multiplier()(a, b)`.
	AnonymousComponentExpr struct {
		M    *Meta
		Name string
		Args []Expr
	}

	// ArrayInLineExpr is an array literal, e.g. `[1, 2, 3]`.
	ArrayInLineExpr struct {
		M        *Meta
		Elements []Expr
	}

	// TupleExpr is a tuple literal.
	TupleExpr struct {
		M        *Meta
		Elements []Expr
	}

	// UniformArrayExpr constructs an array of Length copies of Value, e.g.
	// `[0]*n`.
	UniformArrayExpr struct {
		M      *Meta
		Value  Expr
		Length Expr
	}
)

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

func (n *NumberExpr) GetMeta() *Meta       { return n.M }
func (n *NumberExpr) Span() fileset.Span   { return n.M.Span }
func (n *NumberExpr) Walk(v Visitor)       {}
func (n *NumberExpr) String() string       { return n.Value.String() }
func (n *NumberExpr) expr()                {}

func (n *VariableExpr) GetMeta() *Meta     { return n.M }
func (n *VariableExpr) Span() fileset.Span { return n.M.Span }
func (n *VariableExpr) Walk(v Visitor) {
	for _, a := range n.Accesses {
		if a.Kind == ArrayAccess {
			Walk(v, a.Index)
		}
	}
}
func (n *VariableExpr) String() string { return n.Name + accessesString(n.Accesses) }
func (n *VariableExpr) expr()          {}

func (n *InfixOpExpr) GetMeta() *Meta     { return n.M }
func (n *InfixOpExpr) Span() fileset.Span { return n.M.Span }
func (n *InfixOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *InfixOpExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}
func (n *InfixOpExpr) expr() {}

func (n *PrefixOpExpr) GetMeta() *Meta     { return n.M }
func (n *PrefixOpExpr) Span() fileset.Span { return n.M.Span }
func (n *PrefixOpExpr) Walk(v Visitor)     { Walk(v, n.Right) }
func (n *PrefixOpExpr) String() string     { return fmt.Sprintf("(%s%s)", n.Op, n.Right) }
func (n *PrefixOpExpr) expr()              {}

func (n *ParallelOpExpr) GetMeta() *Meta     { return n.M }
func (n *ParallelOpExpr) Span() fileset.Span { return n.M.Span }
func (n *ParallelOpExpr) Walk(v Visitor)     { Walk(v, n.Right) }
func (n *ParallelOpExpr) String() string     { return "parallel " + n.Right.String() }
func (n *ParallelOpExpr) expr()              {}

func (n *InlineSwitchExpr) GetMeta() *Meta     { return n.M }
func (n *InlineSwitchExpr) Span() fileset.Span { return n.M.Span }
func (n *InlineSwitchExpr) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.IfTrue)
	Walk(v, n.IfFalse)
}
func (n *InlineSwitchExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", n.Cond, n.IfTrue, n.IfFalse)
}
func (n *InlineSwitchExpr) expr() {}

func (n *CallExpr) GetMeta() *Meta     { return n.M }
func (n *CallExpr) Span() fileset.Span { return n.M.Span }
func (n *CallExpr) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *CallExpr) String() string { return fmt.Sprintf("%s(%s)", n.Name, exprListString(n.Args)) }
func (n *CallExpr) expr()          {}

func (n *AnonymousComponentExpr) GetMeta() *Meta     { return n.M }
func (n *AnonymousComponentExpr) Span() fileset.Span { return n.M.Span }
func (n *AnonymousComponentExpr) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *AnonymousComponentExpr) String() string {
	return fmt.Sprintf("%s()(%s)", n.Name, exprListString(n.Args))
}
func (n *AnonymousComponentExpr) expr() {}

func (n *ArrayInLineExpr) GetMeta() *Meta     { return n.M }
func (n *ArrayInLineExpr) Span() fileset.Span { return n.M.Span }
func (n *ArrayInLineExpr) Walk(v Visitor) {
	for _, e := range n.Elements {
		Walk(v, e)
	}
}
func (n *ArrayInLineExpr) String() string { return fmt.Sprintf("[%s]", exprListString(n.Elements)) }
func (n *ArrayInLineExpr) expr()          {}

func (n *TupleExpr) GetMeta() *Meta     { return n.M }
func (n *TupleExpr) Span() fileset.Span { return n.M.Span }
func (n *TupleExpr) Walk(v Visitor) {
	for _, e := range n.Elements {
		Walk(v, e)
	}
}
func (n *TupleExpr) String() string { return fmt.Sprintf("(%s)", exprListString(n.Elements)) }
func (n *TupleExpr) expr()          {}

func (n *UniformArrayExpr) GetMeta() *Meta     { return n.M }
func (n *UniformArrayExpr) Span() fileset.Span { return n.M.Span }
func (n *UniformArrayExpr) Walk(v Visitor) {
	Walk(v, n.Value)
	Walk(v, n.Length)
}
func (n *UniformArrayExpr) String() string {
	return fmt.Sprintf("[%s] * %s", n.Value, n.Length)
}
func (n *UniformArrayExpr) expr() {}
