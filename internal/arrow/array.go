// Package arrow implements the columnar array storage for each primitive
// type: a contiguous slice of values plus an optional validity bitmap
// (absence of a bitmap means "all valid", per spec). It is the storage
// layer underneath internal/value's Column values.
//
// Numeric arrays are a single generic type parameterised over the ten
// numeric primitives, rather than one hand-written struct per type -
// grounded in the teacher's own remark that its repeated per-type
// comparison factories ("compFactoryInts", "compFactoryFloats", ...) were
// "probably the first [place] to make use of generics".
package arrow

import (
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
)

// Array is a typed, fixed-length columnar vector with an optional
// nullability bitmap. A set bit marks the value at that position as null;
// a nil bitmap means every value is valid. Implementations are immutable
// once constructed.
type Array interface {
	Len() int
	Dtype() types.Dtype
	Nullability() *bitmap.Bitmap
	Clone() Array
	// Take returns a new array holding only the rows at the given
	// indices, in the order given. Used by the Filter and Limit operators.
	Take(indices []int) Array
}

// Numeric lists the underlying Go types backing the ten numeric primitives.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Integer lists the eight signed/unsigned integer primitives. Split out
// from Numeric because Go's % operator is undefined over float32/float64.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float lists the two floating point primitives.
type Float interface {
	~float32 | ~float64
}
