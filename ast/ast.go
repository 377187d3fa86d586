// Package ast defines the abstract syntax tree produced by the (external,
// out-of-scope) parser for the circuit-description language: templates and
// functions built from expressions and statements over signals, components,
// and field-element variables. It is the contract the parser must satisfy
// and the input the uniqueness rewriter and AST→IR lowering consume.
//
// Every node carries a Meta (source span, file id, optional type annotation,
// and an attached value-knowledge slot later filled in by dataflow passes).
package ast

import (
	"fmt"

	"github.com/mna/zklint/fileset"
	"github.com/mna/zklint/value"
)

// FileID re-exports fileset.FileID so callers need not import fileset just
// to read a Meta's file id.
type FileID = fileset.FileID

// Node is any node in the AST.
type Node interface {
	fmt.Stringer

	// Span reports the node's source byte-range.
	Span() fileset.Span

	// GetMeta returns the node's metadata.
	GetMeta() *Meta

	// Walk visits every direct child of the node, in source order.
	Walk(v Visitor)
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node.
type Stmt interface {
	Node

	// BlockEnding reports whether the statement may only appear last in a
	// block (return).
	BlockEnding() bool
	stmt()
}

// Meta is the metadata attached to every AST (and IR) node.
type Meta struct {
	Span fileset.Span
	File fileset.FileID

	// Type is an optional type annotation, filled in by a downstream type
	// pass; nil until then.
	Type *Type

	// Knowledge is the value-knowledge slot dataflow analyses refine. It is
	// never nil after construction, so analyses can always call its methods.
	Knowledge *value.Knowledge
}

// NewMeta returns a Meta for the given file and span with a fresh, empty
// value-knowledge slot.
func NewMeta(file fileset.FileID, span fileset.Span) *Meta {
	return &Meta{Span: span, File: file, Knowledge: value.NewKnowledge()}
}

// Type is a minimal type annotation: a scalar field element, or an array of
// some element type with one dimension per nesting level.
type Type struct {
	Dims []int // empty for a scalar
}

func (t *Type) String() string {
	if t == nil || len(t.Dims) == 0 {
		return "field"
	}
	s := "field"
	for _, d := range t.Dims {
		s += fmt.Sprintf("[%d]", d)
	}
	return s
}

// DefKind distinguishes a template definition from a function definition.
type DefKind uint8

const (
	TemplateDef DefKind = iota
	FunctionDef
)

func (k DefKind) String() string {
	switch k {
	case TemplateDef:
		return "template"
	case FunctionDef:
		return "function"
	default:
		return "unknown-def-kind"
	}
}

// SignalDecl describes one signal declared by a template's signature.
type SignalDecl struct {
	Name       string
	Dimensions []Expr
}

// ComponentDecl describes one component declared by a template's signature.
type ComponentDecl struct {
	Name       string
	Dimensions []Expr
}

// ParamData is the per-definition fixed record described by the data model:
// definition name, kind, declared (ordered) parameter names, source meta, and
// for templates the declared input/output signals and components.
type ParamData struct {
	Name   string
	Kind   DefKind
	Params []string
	Meta   *Meta

	// Only meaningful when Kind == TemplateDef.
	Inputs     []SignalDecl
	Outputs    []SignalDecl
	Components []ComponentDecl
}

