// Package env implements the scoped symbol table threaded through AST-to-IR
// lowering: a stack of name-to-binding scopes, with same-scope duplicate
// detection on declaration and innermost-to-outermost lookup on use.
package env

import (
	"errors"
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/fileset"
	"github.com/mna/zklint/ir"
)

// ErrDuplicateDeclaration is returned by Declare when name is already bound
// in the current (innermost) scope.
var ErrDuplicateDeclaration = errors.New("env: name already declared in this scope")

// ErrUnknownSymbol is returned by Lookup when name is not bound in the
// current scope or any of its enclosing scopes.
var ErrUnknownSymbol = errors.New("env: unknown symbol")

// Binding is what a declared name resolves to: its kind (var, signal,
// component, ...), the unique name it was rewritten to, and the span of the
// declaration that introduced it.
type Binding struct {
	Name       string
	UniqueName string
	Kind       ast.VariableKind
	Dimensions []ir.Expr
	IsConstant bool
	DeclSpan   fileset.Span
}

type scope struct {
	bindings *swiss.Map[string, *Binding]
}

func newScope() *scope {
	return &scope{bindings: swiss.NewMap[string, *Binding](8)}
}

// Env is a scoped symbol table. The zero value is not usable; construct one
// with New.
type Env struct {
	scopes []*scope

	// all accumulates every binding ever recorded by Declare, independent of
	// which scopes are still pushed, so a definition's full set of
	// declarations survives past LeaveScope. Keyed the same way a scope's own
	// bindings map is: by the name Declare was called with, which by the time
	// lowering calls it is already the uniqueness rewriter's disambiguated
	// name.
	all map[string]*Binding
}

// New returns an Env with a single, empty top-level scope already pushed.
func New() *Env {
	return &Env{scopes: []*scope{newScope()}, all: make(map[string]*Binding)}
}

// EnterScope pushes a new, empty scope, e.g. on entering an if/while body.
func (e *Env) EnterScope() {
	e.scopes = append(e.scopes, newScope())
}

// LeaveScope pops the innermost scope. It panics if called on an Env with
// only its top-level scope remaining, since that would discard the
// definition-wide bindings callers expect to survive for the whole lowering.
func (e *Env) LeaveScope() {
	if len(e.scopes) <= 1 {
		panic("env: LeaveScope called with no scope to leave")
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth reports how many scopes are currently pushed (always >= 1).
func (e *Env) Depth() int {
	return len(e.scopes)
}

// Declare binds name in the innermost scope to b. It fails with
// ErrDuplicateDeclaration if name is already bound in that same scope;
// shadowing a name from an outer scope is allowed.
func (e *Env) Declare(name string, b *Binding) error {
	cur := e.scopes[len(e.scopes)-1]
	if _, ok := cur.bindings.Get(name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDeclaration, name)
	}
	cur.bindings.Put(name, b)
	e.all[name] = b
	return nil
}

// Lookup searches from the innermost scope outward for name, returning its
// Binding, or ErrUnknownSymbol if no enclosing scope declares it.
func (e *Env) Lookup(name string) (*Binding, error) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i].bindings.Get(name); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, name)
}

// DeclaredInCurrentScope reports whether name is bound in the innermost
// scope specifically, as opposed to some enclosing one, i.e. whether a new
// Declare of name would be an illegal redeclaration rather than a legal
// shadow.
func (e *Env) DeclaredInCurrentScope(name string) bool {
	cur := e.scopes[len(e.scopes)-1]
	_, ok := cur.bindings.Get(name)
	return ok
}

// Snapshot returns the union of every binding Declare has ever recorded on e,
// regardless of whether the scope that declared it has since been left via
// LeaveScope, keyed by the name each was declared under. It is the source
// buildDeclarationMap reads to construct a definition's DeclarationMap, which
// must hold every declaration a definition ever made, not only those still
// lexically in scope at the point lowering finished.
func (e *Env) Snapshot() map[string]*Binding {
	out := make(map[string]*Binding, len(e.all))
	for name, b := range e.all {
		out[name] = b
	}
	return out
}
