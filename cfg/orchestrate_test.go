package cfg_test

import (
	"testing"

	"github.com/mna/zklint/archive"
	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/astfixture"
	"github.com/mna/zklint/cfg"
	"github.com/mna/zklint/config"
	"github.com/mna/zklint/fileset"
	"github.com/mna/zklint/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOneFindsTemplateThenFunction(t *testing.T) {
	a := astfixture.Archive()

	c, _, err := cfg.BuildOne(a, "Counter", config.DefaultCurve)
	require.NoError(t, err)
	assert.Equal(t, "Counter", c.Name)

	c, _, err = cfg.BuildOne(a, "Abs", config.DefaultCurve)
	require.NoError(t, err)
	assert.Equal(t, "Abs", c.Name)
}

func TestBuildOneUnknownDefinition(t *testing.T) {
	a := astfixture.Archive()
	_, _, err := cfg.BuildOne(a, "NoSuchThing", config.DefaultCurve)
	require.Error(t, err)
	assert.ErrorIs(t, err, cfg.ErrUnknownDefinition)
}

func TestBuildAllSucceedsForEveryFixture(t *testing.T) {
	a := astfixture.Archive()
	results, reports, failures := cfg.BuildAll(a, config.DefaultCurve)
	assert.Empty(t, failures)
	assert.Contains(t, results, "Counter")
	assert.Contains(t, results, "Abs")
	assert.Contains(t, reports, "Counter")
	assert.Contains(t, reports, "Abs")
}

// A non-fatal rewriter finding (here, a parameter shadowed by a local
// declaration) must be returned alongside its successfully built Cfg, not
// dropped on the floor.
func TestBuildAllKeepsNonFatalReportsPerDefinition(t *testing.T) {
	shadowsParam := &archive.Definition{
		Params: &ast.ParamData{
			Name: "ShadowsParam", Kind: ast.FunctionDef, Params: []string{"x"},
			Meta: ast.NewMeta(1, fileset.Span{}),
		},
		Body: &ast.BlockStmt{
			M: ast.NewMeta(1, fileset.Span{}),
			Stmts: []ast.Stmt{
				&ast.DeclarationStmt{M: ast.NewMeta(1, fileset.Span{}), Name: "x", Kind: ast.VarKind{}},
				&ast.ReturnStmt{M: ast.NewMeta(1, fileset.Span{}), Value: &ast.VariableExpr{M: ast.NewMeta(1, fileset.Span{}), Name: "x"}},
			},
		},
	}
	a := &archive.StaticArchive{FunctionDefs: map[string]*archive.Definition{"ShadowsParam": shadowsParam}}

	results, reports, failures := cfg.BuildAll(a, config.DefaultCurve)
	assert.Empty(t, failures)
	require.Contains(t, results, "ShadowsParam")
	require.Contains(t, reports, "ShadowsParam")
	assert.NotZero(t, reports["ShadowsParam"].Len(), "the parameter-shadow warning must survive into BuildAll's per-definition reports")
}

// BuildAll keeps going past a per-definition failure instead of aborting the
// whole run, collecting it by name alongside whatever did succeed.
func TestBuildAllCollectsPartialFailures(t *testing.T) {
	good := astfixture.AbsoluteValue()
	bad := &archive.Definition{
		Params: &ast.ParamData{Name: "Broken", Kind: ast.FunctionDef, Meta: ast.NewMeta(1, fileset.Span{})},
		Body: &ast.BlockStmt{
			M: ast.NewMeta(1, fileset.Span{}),
			Stmts: []ast.Stmt{
				&ast.ReturnStmt{M: ast.NewMeta(1, fileset.Span{}), Value: &ast.VariableExpr{M: ast.NewMeta(1, fileset.Span{}), Name: "undeclared"}},
			},
		},
	}
	a := &archive.StaticArchive{
		FunctionDefs: map[string]*archive.Definition{"Abs": good, "Broken": bad},
	}

	results, reports, failures := cfg.BuildAll(a, config.DefaultCurve)
	assert.Contains(t, results, "Abs")
	assert.Contains(t, reports, "Abs")
	assert.NotContains(t, reports, "Broken", "a definition that failed to build has no reports to return")
	require.Contains(t, failures, "Broken")

	var le *ir.LoweringError
	require.ErrorAs(t, failures["Broken"], &le)
	assert.Equal(t, ir.UnknownSymbol, le.Kind)
}
