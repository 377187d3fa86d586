package ir_test

import (
	"errors"
	"testing"

	"github.com/mna/zklint/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoweringErrorUnwraps(t *testing.T) {
	sentinel := errors.New("boom")
	err := &ir.LoweringError{Kind: ir.UnknownSymbol, Err: sentinel}

	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "unknown-symbol")
	assert.Contains(t, err.Error(), "boom")

	var target *ir.LoweringError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, ir.UnknownSymbol, target.Kind)
}

func TestErrKindStringIsNeverEmpty(t *testing.T) {
	for k := ir.DuplicateDeclaration; k <= ir.EmptyCfg; k++ {
		assert.NotEmpty(t, k.String())
		assert.NotEqual(t, "unknown-error-kind", k.String())
	}
	assert.Equal(t, "unknown-error-kind", ir.ErrKind(99).String())
}
