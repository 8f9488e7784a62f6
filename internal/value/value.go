// Package value implements the Value tagged union (Column|Scalar) and the
// kernels that operate on it: arithmetic, comparison, logical, null
// predicates and casts. Every kernel dispatches once per call on the
// operand dtype(s) and keeps its per-row loop monomorphic, per spec §9.
package value

import (
	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/types"
)

// Value is either a Column (a shared reference to a typed array) or a
// Scalar (a shared reference to a typed scalar, logically broadcast to N
// rows when combined with a column). It is immutable once produced.
type Value struct {
	col    arrow.Array
	scalar Scalar
	isCol  bool
}

// NewColumn wraps an array as a Column value.
func NewColumn(a arrow.Array) Value { return Value{col: a, isCol: true} }

// NewScalar wraps a scalar as a Scalar value.
func NewScalar(s Scalar) Value { return Value{scalar: s} }

// IsColumn reports whether this value is the Column variant.
func (v Value) IsColumn() bool { return v.isCol }

// IsScalar reports whether this value is the Scalar variant.
func (v Value) IsScalar() bool { return !v.isCol }

// Column returns the underlying array. Panics if this is a Scalar value.
func (v Value) Column() arrow.Array {
	if !v.isCol {
		panic("value: Column() called on a Scalar value")
	}
	return v.col
}

// AsScalar returns the underlying scalar. Panics if this is a Column value.
func (v Value) AsScalar() Scalar {
	if v.isCol {
		panic("value: AsScalar() called on a Column value")
	}
	return v.scalar
}

// Dtype returns the logical type of this value, regardless of variant.
func (v Value) Dtype() types.Dtype {
	if v.isCol {
		return v.col.Dtype()
	}
	return v.scalar.Dtype
}

// Len returns the row count for a Column value, or 1 for a Scalar value;
// the broadcast kernels size their result as the larger Len of their two
// operands. Scalars logically broadcast to whatever N the
// enclosing batch has (invariant I1 in spec.md).
func (v Value) Len() int {
	if v.isCol {
		return v.col.Len()
	}
	return 1
}

// Take returns a new Column value holding only the rows at the given
// indices. Panics if this is a Scalar value - callers operate on whole
// batches, whose columns are always the Column variant.
func (v Value) Take(indices []int) Value {
	return NewColumn(v.Column().Take(indices))
}
