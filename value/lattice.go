// Package value implements the value-knowledge lattice: the abstract domain
// of constant values (booleans and field elements) that dataflow passes
// attach to IR nodes. The lattice is monotone: a Knowledge slot starts
// unset (⊥) and can only be refined to a concrete value, or set again with
// an equal value; setting it to a different value is a lattice violation,
// not a silent reset.
//
// Knowledge is per-node and never forgets a value once set. The separate
// question of what a variable currently evaluates to as a propagation pass
// walks the CFG — which does get reset when two branches disagree — is
// modeled by BindingEnv.
package value

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrLatticeMonotonicity is returned when a Knowledge slot already holding a
// concrete Reduction is Set to a different one. Analysis authors should
// treat it as a fatal analyzer bug, not a recoverable condition: refinement
// is always monotone as long as a node's Knowledge is only ever Set from
// values sourced through a BindingEnv join.
var ErrLatticeMonotonicity = errors.New("value: conflicting refinement of a constant node")

// Kind distinguishes the two atoms a Reduction can hold.
type Kind uint8

const (
	BooleanKind Kind = iota
	FieldElementKind
)

// Reduction is a concrete abstract value: either a boolean or a field
// element. The two kinds are incomparable in the lattice — joining a
// Boolean with a FieldElement is always a conflict.
type Reduction struct {
	kind    Kind
	boolean bool
	field   *big.Int
}

// Boolean returns a Reduction holding the boolean b.
func Boolean(b bool) Reduction {
	return Reduction{kind: BooleanKind, boolean: b}
}

// FieldElement returns a Reduction holding the field element v.
func FieldElement(v *big.Int) Reduction {
	return Reduction{kind: FieldElementKind, field: new(big.Int).Set(v)}
}

// Kind reports which atom this Reduction holds.
func (r Reduction) Kind() Kind { return r.kind }

// AsBoolean returns the boolean value and true if this is a BooleanKind
// reduction.
func (r Reduction) AsBoolean() (bool, bool) {
	return r.boolean, r.kind == BooleanKind
}

// AsFieldElement returns the field-element value and true if this is a
// FieldElementKind reduction.
func (r Reduction) AsFieldElement() (*big.Int, bool) {
	return r.field, r.kind == FieldElementKind
}

// Equal reports whether r and other hold the same concrete value.
func (r Reduction) Equal(other Reduction) bool {
	if r.kind != other.kind {
		return false
	}
	switch r.kind {
	case BooleanKind:
		return r.boolean == other.boolean
	case FieldElementKind:
		return r.field.Cmp(other.field) == 0
	default:
		return false
	}
}

func (r Reduction) String() string {
	switch r.kind {
	case BooleanKind:
		return fmt.Sprintf("%t", r.boolean)
	case FieldElementKind:
		return r.field.String()
	default:
		return "<invalid reduction>"
	}
}

// Knowledge is the optional value-reduction slot attached to a node's Meta.
// The zero value is not usable; construct one with NewKnowledge.
type Knowledge struct {
	reducesTo *Reduction
}

// NewKnowledge returns an unset (⊥) Knowledge slot.
func NewKnowledge() *Knowledge {
	return &Knowledge{}
}

// IsConstant reports whether the slot holds a concrete value.
func (k *Knowledge) IsConstant() bool {
	return k.reducesTo != nil
}

// IsBoolean reports whether the slot holds a boolean.
func (k *Knowledge) IsBoolean() bool {
	return k.reducesTo != nil && k.reducesTo.kind == BooleanKind
}

// IsFieldElement reports whether the slot holds a field element.
func (k *Knowledge) IsFieldElement() bool {
	return k.reducesTo != nil && k.reducesTo.kind == FieldElementKind
}

// ReducesTo returns the concrete value and true if the slot is set.
func (k *Knowledge) ReducesTo() (Reduction, bool) {
	if k.reducesTo == nil {
		return Reduction{}, false
	}
	return *k.reducesTo, true
}

// Set refines an unset slot to v. Calling Set on an already-set slot is only
// valid when v equals the current value (per the monotonicity invariant);
// callers merging values arriving from multiple control-flow paths should
// do so in a BindingEnv first, and only Set the result.
func (k *Knowledge) Set(v Reduction) error {
	if k.reducesTo == nil {
		k.reducesTo = &v
		return nil
	}
	if k.reducesTo.Equal(v) {
		return nil
	}
	return fmt.Errorf("%w: had %s, refined to %s", ErrLatticeMonotonicity, k.reducesTo, v)
}

func (k *Knowledge) String() string {
	if k.reducesTo == nil {
		return "⊥"
	}
	return k.reducesTo.String()
}
