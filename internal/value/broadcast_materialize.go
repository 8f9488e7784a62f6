package value

import (
	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
)

// Materialize returns v unchanged if it is already a Column, or a Column
// of length n holding v's scalar repeated n times (or null, n times, if
// the scalar is invalid). Used by the Projection operator, whose
// RecordBatch columns must all be the Column variant even when an
// expression is a bare Literal or otherwise never touches a column.
func Materialize(v Value, n int) Value {
	if v.IsColumn() {
		return v
	}
	sc := v.AsScalar()
	switch sc.Dtype {
	case types.DtypeBoolean:
		vals := make([]bool, n)
		if sc.Valid {
			b := sc.Bool()
			for i := range vals {
				vals[i] = b
			}
			return NewColumn(arrow.NewBoolArrayFromBools(vals, nil))
		}
		return NewColumn(arrow.NewBoolArrayFromBools(vals, fullBitmap(n)))
	case types.DtypeUtf8:
		vals := make([]string, n)
		if sc.Valid {
			s := sc.Utf8()
			for i := range vals {
				vals[i] = s
			}
			return NewColumn(arrow.NewStringArray(vals, nil))
		}
		return NewColumn(arrow.NewStringArray(vals, fullBitmap(n)))
	default:
		return NewColumn(materializeNumeric(sc, n))
	}
}

func fullBitmap(n int) *bitmap.Bitmap {
	nb := bitmap.NewBitmap(n)
	for i := 0; i < n; i++ {
		nb.Set(i, true)
	}
	return nb
}

func materializeNumeric(sc Scalar, n int) arrow.Array {
	switch sc.Dtype {
	case types.DtypeInt8:
		return materializeT[int8](sc, n)
	case types.DtypeInt16:
		return materializeT[int16](sc, n)
	case types.DtypeInt32:
		return materializeT[int32](sc, n)
	case types.DtypeInt64:
		return materializeT[int64](sc, n)
	case types.DtypeUint8:
		return materializeT[uint8](sc, n)
	case types.DtypeUint16:
		return materializeT[uint16](sc, n)
	case types.DtypeUint32:
		return materializeT[uint32](sc, n)
	case types.DtypeUint64:
		return materializeT[uint64](sc, n)
	case types.DtypeFloat32:
		return materializeT[float32](sc, n)
	case types.DtypeFloat64:
		return materializeT[float64](sc, n)
	default:
		panic("value: Materialize called with an unsupported scalar dtype")
	}
}

func materializeT[T arrow.Numeric](sc Scalar, n int) arrow.Array {
	out := make([]T, n)
	if !sc.Valid {
		return arrow.NewNumericArray(sc.Dtype, out, fullBitmap(n))
	}
	val := sc.Value().(T)
	for i := range out {
		out[i] = val
	}
	return arrow.NewNumericArray(sc.Dtype, out, nil)
}
