package unique_test

import (
	"math/big"
	"testing"

	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/fileset"
	"github.com/mna/zklint/report"
	"github.com/mna/zklint/unique"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meta() *ast.Meta { return ast.NewMeta(1, fileset.Span{}) }

func declVar(name string) *ast.DeclarationStmt {
	return &ast.DeclarationStmt{M: meta(), Name: name, Kind: ast.VarKind{}}
}

func declSignal(name string) *ast.DeclarationStmt {
	return &ast.DeclarationStmt{M: meta(), Name: name, Kind: ast.SignalKind{}}
}

func ref(name string) *ast.VariableExpr { return &ast.VariableExpr{M: meta(), Name: name} }

func assign(name string, rhs ast.Expr) *ast.SubstitutionStmt {
	return &ast.SubstitutionStmt{M: meta(), Name: name, Op: ast.AssignVar, Rhs: rhs}
}

func num(n int64) *ast.NumberExpr { return &ast.NumberExpr{M: meta(), Value: big.NewInt(n)} }

func block(stmts ...ast.Stmt) *ast.BlockStmt { return &ast.BlockStmt{M: meta(), Stmts: stmts} }

// Declaring a new x in a nested block while an outer x is still in scope
// renames the inner declaration and every use reachable from it, without
// touching the outer binding's own name.
func TestRewriteShadowRenamesInnerDeclaration(t *testing.T) {
	body := block(
		declVar("x"),
		assign("x", num(1)),
		block(
			declVar("x"),
			assign("x", num(2)),
		),
		assign("x", num(3)),
	)

	out, reports := unique.Rewrite(body, nil, 1)
	assert.Equal(t, 0, reports.Len())

	outer := out.Stmts[0].(*ast.DeclarationStmt)
	assert.Equal(t, "x", outer.Name)
	assert.Equal(t, "x", outer.OriginalName)

	outerAssign := out.Stmts[1].(*ast.SubstitutionStmt)
	assert.Equal(t, "x", outerAssign.Name)

	inner := out.Stmts[2].(*ast.BlockStmt)
	innerDecl := inner.Stmts[0].(*ast.DeclarationStmt)
	assert.Equal(t, "x_1", innerDecl.Name, "shadowing declaration is renamed")
	assert.Equal(t, "x", innerDecl.OriginalName)

	innerAssign := inner.Stmts[1].(*ast.SubstitutionStmt)
	assert.Equal(t, "x_1", innerAssign.Name, "use inside the shadowing scope resolves to the renamed name")

	afterAssign := out.Stmts[3].(*ast.SubstitutionStmt)
	assert.Equal(t, "x", afterAssign.Name, "use after leaving the inner scope resolves back to the outer binding")
}

// A declaration that collides with a signal of the same name is left
// unrenamed and reported as an error; lowering is expected to fail such a
// definition downstream rather than silently rename a signal reference.
func TestRewriteSignalShadowIsReportedAndLeftAlone(t *testing.T) {
	body := block(
		declSignal("out"),
		declVar("out"),
	)

	out, reports := unique.Rewrite(body, nil, 1)
	require.Equal(t, 1, reports.Len())
	rs := reports.All()
	assert.Equal(t, report.Error, rs[0].Category)
	assert.Equal(t, "declaration-shadows-signal", rs[0].ID)

	varDecl := out.Stmts[1].(*ast.DeclarationStmt)
	assert.Equal(t, "out", varDecl.Name, "left unrenamed; cfg.Build fails the definition on the error report")
}

// Declaring a var whose name matches a function parameter produces a
// warning (not an error) and still renames the shadowing declaration.
func TestRewriteParamShadowWarns(t *testing.T) {
	body := block(declVar("n"))

	out, reports := unique.Rewrite(body, []string{"n"}, 1)
	require.Equal(t, 1, reports.Len())
	rs := reports.All()
	assert.Equal(t, report.Warning, rs[0].Category)
	assert.Equal(t, "declaration-shadows-parameter", rs[0].ID)

	decl := out.Stmts[0].(*ast.DeclarationStmt)
	assert.Equal(t, "n_1", decl.Name)
}

// Two declarations of the same name in the very same scope are a genuine
// duplicate, not a shadow: unique.Rewrite leaves both unrenamed and defers
// to env.Declare to report ErrDuplicateDeclaration during lowering.
func TestRewriteSameScopeDuplicateLeftForEnvToCatch(t *testing.T) {
	body := block(declVar("x"), declVar("x"))

	out, reports := unique.Rewrite(body, nil, 1)
	assert.Equal(t, 0, reports.Len())
	assert.Equal(t, "x", out.Stmts[0].(*ast.DeclarationStmt).Name)
	assert.Equal(t, "x", out.Stmts[1].(*ast.DeclarationStmt).Name)
}

// Signals, components, and other non-Var kinds are never renamed, even when
// nested in blocks, since they live in a flat template-level namespace.
func TestRewriteNonVarDeclarationsNeverRenamed(t *testing.T) {
	body := block(
		declSignal("a"),
		block(declSignal("b")),
	)
	out, reports := unique.Rewrite(body, nil, 1)
	assert.Equal(t, 0, reports.Len())
	assert.Equal(t, "a", out.Stmts[0].(*ast.DeclarationStmt).Name)
	inner := out.Stmts[1].(*ast.BlockStmt)
	assert.Equal(t, "b", inner.Stmts[0].(*ast.DeclarationStmt).Name)
}
