package cfg

import (
	"testing"

	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mirrors cfg.Build's actual call sequence: declare inside a pushed scope,
// leave it, and only then build the declaration map — a declaration must
// still be present after the scope that introduced it is gone.
func TestBuildDeclarationMapFromSnapshot(t *testing.T) {
	e := env.New()
	require.NoError(t, e.Declare("x", &env.Binding{Name: "x", UniqueName: "x", Kind: ast.VarKind{}}))
	e.EnterScope()
	require.NoError(t, e.Declare("x_1", &env.Binding{Name: "x", UniqueName: "x_1", Kind: ast.VarKind{}}))
	e.LeaveScope()

	dm := buildDeclarationMap(e)
	assert.Equal(t, 2, dm.Len())

	info, ok := dm.Lookup("x_1")
	require.True(t, ok)
	assert.Equal(t, "x", info.OriginalName)

	info, ok = dm.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "x", info.OriginalName)

	_, ok = dm.Lookup("nope")
	assert.False(t, ok)
}
