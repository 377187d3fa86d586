package astfixture_test

import (
	"testing"

	"github.com/mna/zklint/astfixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveContainsBothFixtures(t *testing.T) {
	a := astfixture.Archive()

	require.Contains(t, a.Templates(), "Counter")
	require.Contains(t, a.Functions(), "Abs")
	assert.Empty(t, a.Functions()["Counter"])
	assert.Len(t, a.Templates(), 1)
	assert.Len(t, a.Functions(), 1)
}

func TestAbsoluteValueShape(t *testing.T) {
	def := astfixture.AbsoluteValue()
	assert.Equal(t, "Abs", def.Params.Name)
	assert.Equal(t, []string{"x"}, def.Params.Params)
	require.Len(t, def.Body.Stmts, 2)
}

func TestCounterShape(t *testing.T) {
	def := astfixture.Counter()
	assert.Equal(t, "Counter", def.Params.Name)
	require.Len(t, def.Params.Outputs, 1)
	assert.Equal(t, "out", def.Params.Outputs[0].Name)
	require.Len(t, def.Body.Stmts, 4)
}
