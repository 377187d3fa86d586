package ast

import (
	"fmt"
	"strings"

	"github.com/mna/zklint/fileset"
)

// SignalDirection distinguishes the three roles a signal can play.
type SignalDirection uint8

const (
	SignalInput SignalDirection = iota
	SignalOutput
	SignalIntermediate
)

func (d SignalDirection) String() string {
	switch d {
	case SignalInput:
		return "input"
	case SignalOutput:
		return "output"
	case SignalIntermediate:
		return "intermediate"
	default:
		return "<invalid signal direction>"
	}
}

// VariableKind is the closed set of kinds a declared name can have: a plain
// local variable, a signal (with a direction), a component, an anonymous
// component, or a bus.
type VariableKind interface {
	fmt.Stringer
	variableKind()
}

type (
	// VarKind is a plain field-element local variable.
	VarKind struct{}

	// SignalKind is a signal participating in constraints.
	SignalKind struct{ Direction SignalDirection }

	// ComponentKind is a named sub-circuit instance.
	ComponentKind struct{}

	// AnonymousComponentKind is a sub-circuit instance created without a
	// preceding named declaration.
	AnonymousComponentKind struct{}

	// BusKind is a named bundle of signals.
	BusKind struct{}
)

func (VarKind) variableKind()                {}
func (SignalKind) variableKind()             {}
func (ComponentKind) variableKind()          {}
func (AnonymousComponentKind) variableKind() {}
func (BusKind) variableKind()                {}

func (VarKind) String() string       { return "var" }
func (k SignalKind) String() string  { return "signal " + k.Direction.String() }
func (ComponentKind) String() string { return "component" }
func (AnonymousComponentKind) String() string {
	return "anonymous component"
}
func (BusKind) String() string { return "bus" }

// IsSignal reports whether kind is a SignalKind.
func IsSignal(kind VariableKind) bool {
	_, ok := kind.(SignalKind)
	return ok
}

// AssignOp is the operator used by a Substitution or MultiSubstitution
// statement: a plain variable assignment, a signal assignment (computed
// witness, not constrained: `<--`), or a signal assignment that also adds an
// equality constraint (`<==`).
type AssignOp uint8

const (
	AssignVar AssignOp = iota
	AssignSignal
	AssignConstraintSignal
)

func (op AssignOp) String() string {
	switch op {
	case AssignVar:
		return "="
	case AssignSignal:
		return "<--"
	case AssignConstraintSignal:
		return "<=="
	default:
		return "<invalid assign op>"
	}
}

type (
	// BlockStmt is a block of statements, each executed in sequence.
	BlockStmt struct {
		M     *Meta
		Stmts []Stmt
	}

	// InitializationBlockStmt groups the declaration (and, for signals, the
	// immediately following substitution) statements sharing one `xtype`
	// keyword, e.g. `signal input a, b;`.
	InitializationBlockStmt struct {
		M              *Meta
		Kind           VariableKind
		Initializations []Stmt
	}

	// IfThenElseStmt is a conditional statement; ElseCase is nil if there is
	// no else branch.
	IfThenElseStmt struct {
		M                 *Meta
		Cond              Expr
		IfCase, ElseCase  Stmt
	}

	// WhileStmt is a loop statement.
	WhileStmt struct {
		M    *Meta
		Cond Expr
		Body Stmt
	}

	// ReturnStmt returns a value from a function (templates never return a
	// value); Value is nil for a bare `return`.
	ReturnStmt struct {
		M     *Meta
		Value Expr
	}

	// AssertStmt evaluates Arg and aborts witness generation if it is false.
	AssertStmt struct {
		M   *Meta
		Arg Expr
	}

	// LogCallStmt prints its arguments during witness generation; it has no
	// effect on circuit semantics.
	LogCallStmt struct {
		M    *Meta
		Args []Expr
	}

	// DeclarationStmt declares a new name of the given kind; Dimensions holds
	// one expression per array dimension (empty for a scalar). OriginalName
	// is the name as written in source, before the uniqueness rewriter may
	// have renamed Name to disambiguate a shadow; it is empty until the
	// rewriter sets it, at which point it always holds the pre-rewrite name
	// even when that name was left unchanged.
	DeclarationStmt struct {
		M            *Meta
		Name         string
		OriginalName string
		Kind         VariableKind
		Dimensions   []Expr
		IsConstant   bool
	}

	// SubstitutionStmt assigns Rhs to the (possibly indexed) name.
	SubstitutionStmt struct {
		M        *Meta
		Name     string
		Accesses []Access
		Op       AssignOp
		Rhs      Expr
	}

	// MultiSubstitutionStmt destructures Rhs (a tuple-valued call) into Lhs.
	MultiSubstitutionStmt struct {
		M   *Meta
		Lhs []Expr
		Op  AssignOp
		Rhs Expr
	}

	// ConstraintEqualityStmt adds the constraint Lhs === Rhs.
	ConstraintEqualityStmt struct {
		M        *Meta
		Lhs, Rhs Expr
	}
)

func stmtListString(stmts []Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

func (n *BlockStmt) GetMeta() *Meta     { return n.M }
func (n *BlockStmt) Span() fileset.Span { return n.M.Span }
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) String() string   { return "{ " + stmtListString(n.Stmts) + " }" }
func (n *BlockStmt) BlockEnding() bool { return false }
func (n *BlockStmt) stmt()            {}

func (n *InitializationBlockStmt) GetMeta() *Meta     { return n.M }
func (n *InitializationBlockStmt) Span() fileset.Span { return n.M.Span }
func (n *InitializationBlockStmt) Walk(v Visitor) {
	for _, s := range n.Initializations {
		Walk(v, s)
	}
}
func (n *InitializationBlockStmt) String() string {
	return fmt.Sprintf("%s %s;", n.Kind, stmtListString(n.Initializations))
}
func (n *InitializationBlockStmt) BlockEnding() bool { return false }
func (n *InitializationBlockStmt) stmt()             {}

func (n *IfThenElseStmt) GetMeta() *Meta     { return n.M }
func (n *IfThenElseStmt) Span() fileset.Span { return n.M.Span }
func (n *IfThenElseStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.IfCase)
	if n.ElseCase != nil {
		Walk(v, n.ElseCase)
	}
}
func (n *IfThenElseStmt) String() string {
	if n.ElseCase == nil {
		return fmt.Sprintf("if (%s) %s", n.Cond, n.IfCase)
	}
	return fmt.Sprintf("if (%s) %s else %s", n.Cond, n.IfCase, n.ElseCase)
}
func (n *IfThenElseStmt) BlockEnding() bool { return false }
func (n *IfThenElseStmt) stmt()             {}

func (n *WhileStmt) GetMeta() *Meta     { return n.M }
func (n *WhileStmt) Span() fileset.Span { return n.M.Span }
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) String() string   { return fmt.Sprintf("while (%s) %s", n.Cond, n.Body) }
func (n *WhileStmt) BlockEnding() bool { return false }
func (n *WhileStmt) stmt()            {}

func (n *ReturnStmt) GetMeta() *Meta     { return n.M }
func (n *ReturnStmt) Span() fileset.Span { return n.M.Span }
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ReturnStmt) String() string {
	if n.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", n.Value)
}
func (n *ReturnStmt) BlockEnding() bool { return true }
func (n *ReturnStmt) stmt()             {}

func (n *AssertStmt) GetMeta() *Meta     { return n.M }
func (n *AssertStmt) Span() fileset.Span { return n.M.Span }
func (n *AssertStmt) Walk(v Visitor)     { Walk(v, n.Arg) }
func (n *AssertStmt) String() string     { return fmt.Sprintf("assert(%s);", n.Arg) }
func (n *AssertStmt) BlockEnding() bool  { return false }
func (n *AssertStmt) stmt()              {}

func (n *LogCallStmt) GetMeta() *Meta     { return n.M }
func (n *LogCallStmt) Span() fileset.Span { return n.M.Span }
func (n *LogCallStmt) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *LogCallStmt) String() string   { return fmt.Sprintf("log(%s);", exprListString(n.Args)) }
func (n *LogCallStmt) BlockEnding() bool { return false }
func (n *LogCallStmt) stmt()             {}

func (n *DeclarationStmt) GetMeta() *Meta     { return n.M }
func (n *DeclarationStmt) Span() fileset.Span { return n.M.Span }
func (n *DeclarationStmt) Walk(v Visitor) {
	for _, d := range n.Dimensions {
		Walk(v, d)
	}
}
func (n *DeclarationStmt) String() string {
	var dims strings.Builder
	for _, d := range n.Dimensions {
		fmt.Fprintf(&dims, "[%s]", d)
	}
	prefix := ""
	if n.IsConstant {
		prefix = "const "
	}
	return fmt.Sprintf("%s%s %s%s;", prefix, n.Kind, n.Name, dims.String())
}
func (n *DeclarationStmt) BlockEnding() bool { return false }
func (n *DeclarationStmt) stmt()             {}

func (n *SubstitutionStmt) GetMeta() *Meta     { return n.M }
func (n *SubstitutionStmt) Span() fileset.Span { return n.M.Span }
func (n *SubstitutionStmt) Walk(v Visitor) {
	for _, a := range n.Accesses {
		if a.Kind == ArrayAccess {
			Walk(v, a.Index)
		}
	}
	Walk(v, n.Rhs)
}
func (n *SubstitutionStmt) String() string {
	return fmt.Sprintf("%s%s %s %s;", n.Name, accessesString(n.Accesses), n.Op, n.Rhs)
}
func (n *SubstitutionStmt) BlockEnding() bool { return false }
func (n *SubstitutionStmt) stmt()             {}

func (n *MultiSubstitutionStmt) GetMeta() *Meta     { return n.M }
func (n *MultiSubstitutionStmt) Span() fileset.Span { return n.M.Span }
func (n *MultiSubstitutionStmt) Walk(v Visitor) {
	for _, l := range n.Lhs {
		Walk(v, l)
	}
	Walk(v, n.Rhs)
}
func (n *MultiSubstitutionStmt) String() string {
	return fmt.Sprintf("(%s) %s %s;", exprListString(n.Lhs), n.Op, n.Rhs)
}
func (n *MultiSubstitutionStmt) BlockEnding() bool { return false }
func (n *MultiSubstitutionStmt) stmt()             {}

func (n *ConstraintEqualityStmt) GetMeta() *Meta     { return n.M }
func (n *ConstraintEqualityStmt) Span() fileset.Span { return n.M.Span }
func (n *ConstraintEqualityStmt) Walk(v Visitor) {
	Walk(v, n.Lhs)
	Walk(v, n.Rhs)
}
func (n *ConstraintEqualityStmt) String() string {
	return fmt.Sprintf("%s === %s;", n.Lhs, n.Rhs)
}
func (n *ConstraintEqualityStmt) BlockEnding() bool { return false }
func (n *ConstraintEqualityStmt) stmt()              {}
