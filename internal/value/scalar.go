package value

import (
	"fmt"
	"strconv"

	"github.com/kokes/colexec/internal/types"
)

// Scalar holds a single typed, possibly-null value. v carries the concrete
// Go-typed payload (bool, one of the sized int/uint/float kinds, string, or
// []Scalar for DtypeStruct) so per-width arithmetic keeps native precision.
type Scalar struct {
	Dtype types.Dtype
	Valid bool
	v     any
}

// NewNullScalar returns an invalid (SQL NULL) scalar of the given dtype.
func NewNullScalar(dt types.Dtype) Scalar {
	return Scalar{Dtype: dt, Valid: false}
}

// NewBoolScalar returns a valid Boolean scalar.
func NewBoolScalar(b bool) Scalar {
	return Scalar{Dtype: types.DtypeBoolean, Valid: true, v: b}
}

// NewUtf8Scalar returns a valid Utf8 scalar.
func NewUtf8Scalar(s string) Scalar {
	return Scalar{Dtype: types.DtypeUtf8, Valid: true, v: s}
}

// NewStructScalar returns a valid Struct scalar wrapping child scalars.
func NewStructScalar(children []Scalar) Scalar {
	return Scalar{Dtype: types.DtypeStruct, Valid: true, v: children}
}

// NewNumericScalar returns a valid scalar for one of the ten numeric
// dtypes; val must already be of the Go type matching dt (e.g. int32 for
// DtypeInt32), which NewLiteralScalar takes care of for untyped constants.
func NewNumericScalar(dt types.Dtype, val any) Scalar {
	return Scalar{Dtype: dt, Valid: true, v: val}
}

// Value returns the underlying Go value. Callers must type-switch per Dtype.
func (s Scalar) Value() any { return s.v }

// Bool returns the Boolean payload; panics if Dtype is not DtypeBoolean.
func (s Scalar) Bool() bool { return s.v.(bool) }

// Utf8 returns the text payload; panics if Dtype is not DtypeUtf8.
func (s Scalar) Utf8() string { return s.v.(string) }

// StructFields returns the child scalars; panics if Dtype is not DtypeStruct.
func (s Scalar) StructFields() []Scalar { return s.v.([]Scalar) }

func (s Scalar) String() string {
	if !s.Valid {
		return "NULL"
	}
	switch s.Dtype {
	case types.DtypeUtf8:
		return strconv.Quote(s.v.(string))
	default:
		return fmt.Sprintf("%v", s.v)
	}
}
