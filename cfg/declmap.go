package cfg

import (
	"github.com/dolthub/swiss"
	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/env"
	"github.com/mna/zklint/fileset"
	"github.com/mna/zklint/ir"
)

// DeclInfo is one entry of a DeclarationMap: everything a consumer needs to
// know about a declared name without re-walking the AST.
type DeclInfo struct {
	OriginalName string
	Kind         ast.VariableKind
	Dimensions   []ir.Expr
	IsConstant   bool
	DeclSpan     fileset.Span
}

// DeclarationMap maps a definition's unique variable names to their
// declaration info. Built once per definition, from the environment
// snapshot after lowering completes. Iteration order is unspecified.
type DeclarationMap struct {
	m *swiss.Map[string, *DeclInfo]
}

// Lookup returns the DeclInfo for uniqueName, or false if no declaration in
// this definition produced it — a violation of the invariant that every IR
// variable reference resolves to a declaration-map entry.
func (d *DeclarationMap) Lookup(uniqueName string) (*DeclInfo, bool) {
	return d.m.Get(uniqueName)
}

// Len reports how many declarations the map holds.
func (d *DeclarationMap) Len() int { return d.m.Count() }

func buildDeclarationMap(e *env.Env) *DeclarationMap {
	snap := e.Snapshot()
	m := swiss.NewMap[string, *DeclInfo](uint32(len(snap)))
	for _, b := range snap {
		m.Put(b.UniqueName, &DeclInfo{
			OriginalName: b.Name,
			Kind:         b.Kind,
			Dimensions:   b.Dimensions,
			IsConstant:   b.IsConstant,
			DeclSpan:     b.DeclSpan,
		})
	}
	return &DeclarationMap{m: m}
}
