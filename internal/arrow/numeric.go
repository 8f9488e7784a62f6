package arrow

import (
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
)

// NumericArray is the columnar storage for any one of the ten numeric
// primitives. One instantiation exists per concrete Go type (int8 ...
// float64); the dtype tag records which logical Dtype this instantiation
// represents.
type NumericArray[T Numeric] struct {
	values      []T
	nullability *bitmap.Bitmap
	dtype       types.Dtype
}

// NewNumericArray wraps values (taken by reference, not copied) as a
// column of the given dtype with an optional nullability bitmap.
func NewNumericArray[T Numeric](dtype types.Dtype, values []T, nullability *bitmap.Bitmap) *NumericArray[T] {
	return &NumericArray[T]{values: values, nullability: nullability, dtype: dtype}
}

func (a *NumericArray[T]) Len() int                 { return len(a.values) }
func (a *NumericArray[T]) Dtype() types.Dtype       { return a.dtype }
func (a *NumericArray[T]) Nullability() *bitmap.Bitmap { return a.nullability }
func (a *NumericArray[T]) Values() []T              { return a.values }
func (a *NumericArray[T]) Get(i int) T              { return a.values[i] }
func (a *NumericArray[T]) IsNull(i int) bool        { return a.nullability.Get(i) }

func (a *NumericArray[T]) Clone() Array {
	cp := make([]T, len(a.values))
	copy(cp, a.values)
	return &NumericArray[T]{values: cp, nullability: a.nullability.Clone(), dtype: a.dtype}
}

func (a *NumericArray[T]) Take(indices []int) Array {
	out := make([]T, len(indices))
	var nb *bitmap.Bitmap
	for i, idx := range indices {
		out[i] = a.values[idx]
		if a.nullability.Get(idx) {
			if nb == nil {
				nb = bitmap.NewBitmap(len(indices))
			}
			nb.Set(i, true)
		}
	}
	return &NumericArray[T]{values: out, nullability: nb, dtype: a.dtype}
}
