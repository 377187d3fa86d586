// Package unique implements the rewrite pass that runs before basic-block
// construction: it renames every local-variable declaration so each is
// unique within its definition, and rewrites every reference to the name
// that was in scope at that point. Signals, components, and buses keep
// their source names — they live in a flat, template-level namespace rather
// than the block-scoped one locals use.
package unique

import (
	"fmt"

	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/fileset"
	"github.com/mna/zklint/report"
)

// Rewrite renames the local-variable declarations in body, given params, a
// definition's parameter names (which occupy count 0 and are never renamed),
// returning a rewritten copy (the input is never mutated) plus any reports
// produced along the way.
// Reports with Category == report.Error mark a declaration that was left
// unrewritten because it collides with a signal name; downstream lowering
// is expected to fail that definition.
func Rewrite(body *ast.BlockStmt, params []string, file fileset.FileID) (*ast.BlockStmt, *report.Collection) {
	rw := &rewriter{
		counts:      make(map[string]int),
		signalNames: make(map[string]bool),
		paramNames:  make(map[string]bool),
		file:        file,
		reports:     &report.Collection{},
	}
	rw.enterScope()
	for _, p := range params {
		rw.scopes[0][p] = p
		rw.paramNames[p] = true
	}

	out := rw.rewriteStmt(body).(*ast.BlockStmt)
	rw.leaveScope()
	return out, rw.reports
}

type rewriter struct {
	scopes      []map[string]string
	counts      map[string]int
	signalNames map[string]bool
	paramNames  map[string]bool
	file        fileset.FileID
	reports     *report.Collection
}

func (rw *rewriter) enterScope() {
	rw.scopes = append(rw.scopes, make(map[string]string))
}

func (rw *rewriter) leaveScope() {
	rw.scopes = rw.scopes[:len(rw.scopes)-1]
}

// lookup searches from the innermost scope outward for name's current
// unique name.
func (rw *rewriter) lookup(name string) (string, bool) {
	for i := len(rw.scopes) - 1; i >= 0; i-- {
		if u, ok := rw.scopes[i][name]; ok {
			return u, true
		}
	}
	return "", false
}

func (rw *rewriter) visibleInAncestor(name string) bool {
	for i := len(rw.scopes) - 2; i >= 0; i-- {
		if _, ok := rw.scopes[i][name]; ok {
			return true
		}
	}
	return false
}

func (rw *rewriter) declaredInCurrentScope(name string) bool {
	_, ok := rw.scopes[len(rw.scopes)-1][name]
	return ok
}

// declareVar runs the renaming algorithm for a Var declaration of name,
// returning the name the declaration (and its subsequent in-scope uses)
// should use.
func (rw *rewriter) declareVar(name string, span fileset.Span) string {
	cur := rw.scopes[len(rw.scopes)-1]

	if rw.signalNames[name] {
		rw.reports.Add(report.Report{
			ID:       "declaration-shadows-signal",
			Category: report.Error,
			File:     rw.file,
			Span:     span,
			Message:  fmt.Sprintf("declaration of %q shadows a signal of the same name", name),
		})
		cur[name] = name
		return name
	}

	if rw.declaredInCurrentScope(name) {
		// a genuine same-scope duplicate: leave it alone, downstream env.Declare
		// reports DuplicateDeclaration.
		return name
	}

	if rw.visibleInAncestor(name) {
		if rw.paramNames[name] {
			rw.reports.Add(report.Report{
				ID:       "declaration-shadows-parameter",
				Category: report.Warning,
				File:     rw.file,
				Span:     span,
				Message:  fmt.Sprintf("declaration of %q shadows parameter %q", name, name),
			})
		}
		rw.counts[name]++
		unique := fmt.Sprintf("%s_%d", name, rw.counts[name])
		cur[name] = unique
		return unique
	}

	cur[name] = name
	return name
}

// declareOther records a non-Var declaration (signal, component, anonymous
// component, bus) under its own name, unchanged, and — for signals — in the
// flat, definition-wide namespace Var declarations are checked against.
func (rw *rewriter) declareOther(name string, isSignal bool) {
	rw.scopes[len(rw.scopes)-1][name] = name
	if isSignal {
		rw.signalNames[name] = true
	}
}

// resolveUse rewrites a use of name to whatever unique name is currently in
// scope for it, or leaves it unchanged if it was never a locally-scoped
// declaration (signals, components, buses, or an undeclared name — the
// latter is reported by the environment at lowering time, not here).
func (rw *rewriter) resolveUse(name string) string {
	if u, ok := rw.lookup(name); ok {
		return u
	}
	return name
}
