package lower_test

import (
	"math/big"
	"testing"

	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/env"
	"github.com/mna/zklint/fileset"
	"github.com/mna/zklint/ir"
	"github.com/mna/zklint/lower"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meta() *ast.Meta { return ast.NewMeta(1, fileset.Span{}) }

func TestDeclarationUpdatesEnvOnly(t *testing.T) {
	e := env.New()
	s := &ast.DeclarationStmt{M: meta(), Name: "x", OriginalName: "x", Kind: ast.VarKind{}}
	require.NoError(t, lower.Declaration(s, e))

	b, err := e.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, "x", b.UniqueName)
	assert.Equal(t, ast.VarKind{}, b.Kind)
}

func TestExprNumber(t *testing.T) {
	e := env.New()
	x, err := lower.Expr(&ast.NumberExpr{M: meta(), Value: big.NewInt(5)}, e)
	require.NoError(t, err)
	n, ok := x.(*ir.NumberExpr)
	require.True(t, ok)
	assert.Equal(t, int64(5), n.Value.Int64())
}

func TestExprVariableResolvesBinding(t *testing.T) {
	e := env.New()
	require.NoError(t, e.Declare("x", &env.Binding{Name: "x", UniqueName: "x_1", Kind: ast.VarKind{}}))

	x, err := lower.Expr(&ast.VariableExpr{M: meta(), Name: "x"}, e)
	require.NoError(t, err)
	v, ok := x.(*ir.VariableExpr)
	require.True(t, ok)
	assert.Equal(t, "x_1", v.Name)
	assert.Equal(t, ast.VarKind{}, v.Kind)
}

func TestExprVariableUnknownSymbol(t *testing.T) {
	e := env.New()
	_, err := lower.Expr(&ast.VariableExpr{M: meta(), Name: "nope"}, e)
	require.Error(t, err)
	assert.ErrorIs(t, err, lower.ErrUnknownSymbol)
}

func TestExprInfixOp(t *testing.T) {
	e := env.New()
	x, err := lower.Expr(&ast.InfixOpExpr{
		M: meta(), Op: ast.Add,
		Left:  &ast.NumberExpr{M: meta(), Value: big.NewInt(1)},
		Right: &ast.NumberExpr{M: meta(), Value: big.NewInt(2)},
	}, e)
	require.NoError(t, err)
	inf, ok := x.(*ir.InfixOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Add, inf.Op)
}

func TestExprPropagatesInnerError(t *testing.T) {
	e := env.New()
	_, err := lower.Expr(&ast.InfixOpExpr{
		M:    meta(),
		Op:   ast.Add,
		Left: &ast.VariableExpr{M: meta(), Name: "nope"},
		Right: &ast.NumberExpr{M: meta(), Value: big.NewInt(1)},
	}, e)
	require.Error(t, err)
	assert.ErrorIs(t, err, lower.ErrUnknownSymbol)
}

func TestStmtSubstitutionResolvesBindingAndKind(t *testing.T) {
	e := env.New()
	require.NoError(t, e.Declare("out", &env.Binding{Name: "out", UniqueName: "out", Kind: ast.SignalKind{Direction: ast.SignalOutput}}))

	s, err := lower.Stmt(&ast.SubstitutionStmt{
		M: meta(), Name: "out", Op: ast.AssignSignal, Rhs: &ast.NumberExpr{M: meta(), Value: big.NewInt(1)},
	}, e)
	require.NoError(t, err)
	sub, ok := s.(*ir.SubstitutionStmt)
	require.True(t, ok)
	assert.Equal(t, "out", sub.Name)
	assert.Equal(t, ast.AssignSignal, sub.Op)
	assert.Equal(t, ast.SignalKind{Direction: ast.SignalOutput}, sub.Kind)
}

func TestStmtReturnNilValue(t *testing.T) {
	e := env.New()
	s, err := lower.Stmt(&ast.ReturnStmt{M: meta()}, e)
	require.NoError(t, err)
	ret, ok := s.(*ir.ReturnStmt)
	require.True(t, ok)
	assert.Nil(t, ret.Value)
}

func TestAccessListLowersArrayIndexOnly(t *testing.T) {
	e := env.New()
	require.NoError(t, e.Declare("i", &env.Binding{Name: "i", UniqueName: "i", Kind: ast.VarKind{}}))
	require.NoError(t, e.Declare("a", &env.Binding{Name: "a", UniqueName: "a", Kind: ast.VarKind{}}))

	x, err := lower.Expr(&ast.VariableExpr{
		M: meta(), Name: "a",
		Accesses: []ast.Access{
			{Kind: ast.ArrayAccess, Index: &ast.VariableExpr{M: meta(), Name: "i"}},
			{Kind: ast.ComponentAccess, Signal: "out"},
		},
	}, e)
	require.NoError(t, err)
	v := x.(*ir.VariableExpr)
	require.Len(t, v.Accesses, 2)
	assert.Equal(t, ir.ArrayAccess, v.Accesses[0].Kind)
	assert.NotNil(t, v.Accesses[0].Index)
	assert.Equal(t, ir.ComponentAccess, v.Accesses[1].Kind)
	assert.Equal(t, "out", v.Accesses[1].Signal)
}
