package function

import (
	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// buildColumnFromScalars assembles a Column value out of per-row Scalars,
// used by functions (like coalesce) whose result shape is row-dependent.
func buildColumnFromScalars(dt types.Dtype, scalars []value.Scalar) (value.Value, error) {
	n := len(scalars)
	nb := bitmap.NewBitmap(n)
	for i, s := range scalars {
		if !s.Valid {
			nb.Set(i, true)
		}
	}
	switch dt {
	case types.DtypeUtf8:
		out := make([]string, n)
		for i, s := range scalars {
			if s.Valid {
				out[i] = s.Utf8()
			}
		}
		return value.NewColumn(arrow.NewStringArray(out, nb)), nil
	case types.DtypeBoolean:
		out := make([]bool, n)
		for i, s := range scalars {
			if s.Valid {
				out[i] = s.Bool()
			}
		}
		return value.NewColumn(arrow.NewBoolArrayFromBools(out, nb)), nil
	case types.DtypeInt8:
		return buildNumericColumn[int8](dt, scalars, nb), nil
	case types.DtypeInt16:
		return buildNumericColumn[int16](dt, scalars, nb), nil
	case types.DtypeInt32:
		return buildNumericColumn[int32](dt, scalars, nb), nil
	case types.DtypeInt64:
		return buildNumericColumn[int64](dt, scalars, nb), nil
	case types.DtypeUint8:
		return buildNumericColumn[uint8](dt, scalars, nb), nil
	case types.DtypeUint16:
		return buildNumericColumn[uint16](dt, scalars, nb), nil
	case types.DtypeUint32:
		return buildNumericColumn[uint32](dt, scalars, nb), nil
	case types.DtypeUint64:
		return buildNumericColumn[uint64](dt, scalars, nb), nil
	case types.DtypeFloat32:
		return buildNumericColumn[float32](dt, scalars, nb), nil
	case types.DtypeFloat64:
		return buildNumericColumn[float64](dt, scalars, nb), nil
	default:
		return value.Value{}, ErrArgumentType
	}
}

func buildNumericColumn[T arrow.Numeric](dt types.Dtype, scalars []value.Scalar, nb *bitmap.Bitmap) value.Value {
	out := make([]T, len(scalars))
	for i, s := range scalars {
		if s.Valid {
			out[i] = s.Value().(T)
		}
	}
	return value.NewColumn(arrow.NewNumericArray(dt, out, nb))
}
