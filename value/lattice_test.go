package value_test

import (
	"math/big"
	"testing"

	"github.com/mna/zklint/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReductionEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b value.Reduction
		want bool
	}{
		{"equal booleans", value.Boolean(true), value.Boolean(true), true},
		{"different booleans", value.Boolean(true), value.Boolean(false), false},
		{"equal field elements", value.FieldElement(big.NewInt(7)), value.FieldElement(big.NewInt(7)), true},
		{"different field elements", value.FieldElement(big.NewInt(7)), value.FieldElement(big.NewInt(8)), false},
		{"mismatched kinds", value.Boolean(true), value.FieldElement(big.NewInt(1)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Equal(c.b))
		})
	}
}

func TestReductionAccessors(t *testing.T) {
	b := value.Boolean(true)
	bv, ok := b.AsBoolean()
	require.True(t, ok)
	assert.True(t, bv)
	_, ok = b.AsFieldElement()
	assert.False(t, ok)

	f := value.FieldElement(big.NewInt(42))
	fv, ok := f.AsFieldElement()
	require.True(t, ok)
	assert.Equal(t, 0, fv.Cmp(big.NewInt(42)))
	_, ok = f.AsBoolean()
	assert.False(t, ok)
}

func TestFieldElementCopiesInput(t *testing.T) {
	n := big.NewInt(5)
	r := value.FieldElement(n)
	n.SetInt64(99)
	fv, _ := r.AsFieldElement()
	assert.Equal(t, int64(5), fv.Int64(), "FieldElement must not alias the caller's big.Int")
}

func TestKnowledgeSetMonotone(t *testing.T) {
	k := value.NewKnowledge()
	assert.False(t, k.IsConstant())

	require.NoError(t, k.Set(value.FieldElement(big.NewInt(3))))
	assert.True(t, k.IsConstant())
	assert.True(t, k.IsFieldElement())

	// setting the same value again is fine
	require.NoError(t, k.Set(value.FieldElement(big.NewInt(3))))

	got, ok := k.ReducesTo()
	require.True(t, ok)
	gv, _ := got.AsFieldElement()
	assert.Equal(t, int64(3), gv.Int64())
}

func TestKnowledgeSetConflict(t *testing.T) {
	k := value.NewKnowledge()
	require.NoError(t, k.Set(value.FieldElement(big.NewInt(3))))

	err := k.Set(value.FieldElement(big.NewInt(4)))
	require.Error(t, err)
	assert.ErrorIs(t, err, value.ErrLatticeMonotonicity)
}

func TestKnowledgeString(t *testing.T) {
	k := value.NewKnowledge()
	assert.Equal(t, "⊥", k.String())
	require.NoError(t, k.Set(value.Boolean(true)))
	assert.Equal(t, "true", k.String())
}
