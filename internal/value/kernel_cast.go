package value

import (
	"fmt"
	"strconv"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
)

// Cast converts v to dst. Supported conversions: any numeric primitive to
// any other numeric primitive (native truncating conversion), any numeric
// primitive to Utf8 (decimal text form), Utf8 to any numeric primitive
// (parsed, a malformed value is ErrCastFailed), and Utf8 to Utf8
// (identity). Boolean and Struct are unsupported as either a cast source
// or a cast target.
func Cast(v Value, dst types.Dtype) (Value, error) {
	src := v.Dtype()
	if src == dst {
		return identityCast(v), nil
	}
	switch {
	case src.IsNumeric() && dst.IsNumeric():
		return castNumericToNumeric(v, dst)
	case src.IsNumeric() && dst == types.DtypeUtf8:
		return castNumericToUtf8(v)
	case src == types.DtypeUtf8 && dst.IsNumeric():
		return castUtf8ToNumeric(v, dst)
	default:
		return Value{}, fmt.Errorf("%w: %s to %s", ErrCastUnsupported, src, dst)
	}
}

func identityCast(v Value) Value {
	if v.IsScalar() {
		return v
	}
	return NewColumn(v.Column().Clone())
}

// anyAt reads the i-th element of a numeric Value, boxed as `any`, along
// with whether it is null. Used only by cast kernels, which are not on the
// per-row hot path that spec §9 requires to stay monomorphic.
func anyAt(v Value, i int) (any, bool) {
	if v.IsScalar() {
		sc := v.AsScalar()
		return sc.Value(), !sc.Valid
	}
	arr := v.Column()
	if arr.Nullability().Get(i) {
		return nil, true
	}
	switch a := arr.(type) {
	case *arrow.NumericArray[int8]:
		return a.Get(i), false
	case *arrow.NumericArray[int16]:
		return a.Get(i), false
	case *arrow.NumericArray[int32]:
		return a.Get(i), false
	case *arrow.NumericArray[int64]:
		return a.Get(i), false
	case *arrow.NumericArray[uint8]:
		return a.Get(i), false
	case *arrow.NumericArray[uint16]:
		return a.Get(i), false
	case *arrow.NumericArray[uint32]:
		return a.Get(i), false
	case *arrow.NumericArray[uint64]:
		return a.Get(i), false
	case *arrow.NumericArray[float32]:
		return a.Get(i), false
	case *arrow.NumericArray[float64]:
		return a.Get(i), false
	default:
		return nil, true
	}
}

func castNumericToNumeric(v Value, dst types.Dtype) (Value, error) {
	if v.IsScalar() {
		sc := v.AsScalar()
		if !sc.Valid {
			return NewScalar(NewNullScalar(dst)), nil
		}
		return NewScalar(NewNumericScalar(dst, convertAny(sc.Value(), dst))), nil
	}
	arr := v.Column()
	n := arr.Len()
	nb := arr.Nullability().Clone()
	switch a := arr.(type) {
	case *arrow.NumericArray[int8]:
		return castColumn(a, dst, n, nb)
	case *arrow.NumericArray[int16]:
		return castColumn(a, dst, n, nb)
	case *arrow.NumericArray[int32]:
		return castColumn(a, dst, n, nb)
	case *arrow.NumericArray[int64]:
		return castColumn(a, dst, n, nb)
	case *arrow.NumericArray[uint8]:
		return castColumn(a, dst, n, nb)
	case *arrow.NumericArray[uint16]:
		return castColumn(a, dst, n, nb)
	case *arrow.NumericArray[uint32]:
		return castColumn(a, dst, n, nb)
	case *arrow.NumericArray[uint64]:
		return castColumn(a, dst, n, nb)
	case *arrow.NumericArray[float32]:
		return castColumn(a, dst, n, nb)
	case *arrow.NumericArray[float64]:
		return castColumn(a, dst, n, nb)
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

func castColumn[S arrow.Numeric](arr *arrow.NumericArray[S], dst types.Dtype, n int, nb *bitmap.Bitmap) (Value, error) {
	switch dst {
	case types.DtypeInt8:
		return castTo[S, int8](arr, dst, n, nb), nil
	case types.DtypeInt16:
		return castTo[S, int16](arr, dst, n, nb), nil
	case types.DtypeInt32:
		return castTo[S, int32](arr, dst, n, nb), nil
	case types.DtypeInt64:
		return castTo[S, int64](arr, dst, n, nb), nil
	case types.DtypeUint8:
		return castTo[S, uint8](arr, dst, n, nb), nil
	case types.DtypeUint16:
		return castTo[S, uint16](arr, dst, n, nb), nil
	case types.DtypeUint32:
		return castTo[S, uint32](arr, dst, n, nb), nil
	case types.DtypeUint64:
		return castTo[S, uint64](arr, dst, n, nb), nil
	case types.DtypeFloat32:
		return castTo[S, float32](arr, dst, n, nb), nil
	case types.DtypeFloat64:
		return castTo[S, float64](arr, dst, n, nb), nil
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

func castTo[S, D arrow.Numeric](arr *arrow.NumericArray[S], dst types.Dtype, n int, nb *bitmap.Bitmap) Value {
	out := make([]D, n)
	for i := 0; i < n; i++ {
		if nb.Get(i) {
			continue
		}
		out[i] = D(arr.Get(i))
	}
	return NewColumn(arrow.NewNumericArray(dst, out, nb))
}

// convertAny performs the same truncating numeric conversion as castTo,
// but on a single boxed scalar, dispatching on the destination dtype.
func convertAny(v any, dst types.Dtype) any {
	switch s := v.(type) {
	case int8:
		return convertScalar(s, dst)
	case int16:
		return convertScalar(s, dst)
	case int32:
		return convertScalar(s, dst)
	case int64:
		return convertScalar(s, dst)
	case uint8:
		return convertScalar(s, dst)
	case uint16:
		return convertScalar(s, dst)
	case uint32:
		return convertScalar(s, dst)
	case uint64:
		return convertScalar(s, dst)
	case float32:
		return convertScalar(s, dst)
	case float64:
		return convertScalar(s, dst)
	default:
		return nil
	}
}

func convertScalar[S arrow.Numeric](v S, dst types.Dtype) any {
	switch dst {
	case types.DtypeInt8:
		return int8(v)
	case types.DtypeInt16:
		return int16(v)
	case types.DtypeInt32:
		return int32(v)
	case types.DtypeInt64:
		return int64(v)
	case types.DtypeUint8:
		return uint8(v)
	case types.DtypeUint16:
		return uint16(v)
	case types.DtypeUint32:
		return uint32(v)
	case types.DtypeUint64:
		return uint64(v)
	case types.DtypeFloat32:
		return float32(v)
	case types.DtypeFloat64:
		return float64(v)
	default:
		return nil
	}
}

func formatNumeric(v any) string {
	switch n := v.(type) {
	case int8:
		return strconv.FormatInt(int64(n), 10)
	case int16:
		return strconv.FormatInt(int64(n), 10)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint8:
		return strconv.FormatUint(uint64(n), 10)
	case uint16:
		return strconv.FormatUint(uint64(n), 10)
	case uint32:
		return strconv.FormatUint(uint64(n), 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func castNumericToUtf8(v Value) (Value, error) {
	if v.IsScalar() {
		sc := v.AsScalar()
		if !sc.Valid {
			return NewScalar(NewNullScalar(types.DtypeUtf8)), nil
		}
		return NewScalar(NewUtf8Scalar(formatNumeric(sc.Value()))), nil
	}
	n := v.Len()
	nb := v.Column().Nullability().Clone()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		val, isNull := anyAt(v, i)
		if isNull {
			continue
		}
		out[i] = formatNumeric(val)
	}
	return NewColumn(arrow.NewStringArray(out, nb)), nil
}

func parseNumeric(s string, dst types.Dtype) (any, error) {
	switch dst {
	case types.DtypeInt8:
		n, err := strconv.ParseInt(s, 10, 8)
		return int8(n), err
	case types.DtypeInt16:
		n, err := strconv.ParseInt(s, 10, 16)
		return int16(n), err
	case types.DtypeInt32:
		n, err := strconv.ParseInt(s, 10, 32)
		return int32(n), err
	case types.DtypeInt64:
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err
	case types.DtypeUint8:
		n, err := strconv.ParseUint(s, 10, 8)
		return uint8(n), err
	case types.DtypeUint16:
		n, err := strconv.ParseUint(s, 10, 16)
		return uint16(n), err
	case types.DtypeUint32:
		n, err := strconv.ParseUint(s, 10, 32)
		return uint32(n), err
	case types.DtypeUint64:
		n, err := strconv.ParseUint(s, 10, 64)
		return n, err
	case types.DtypeFloat32:
		n, err := strconv.ParseFloat(s, 32)
		return float32(n), err
	case types.DtypeFloat64:
		n, err := strconv.ParseFloat(s, 64)
		return n, err
	default:
		return nil, ErrUnsupportedDtype
	}
}

func castUtf8ToNumeric(v Value, dst types.Dtype) (Value, error) {
	if v.IsScalar() {
		sc := v.AsScalar()
		if !sc.Valid {
			return NewScalar(NewNullScalar(dst)), nil
		}
		parsed, err := parseNumeric(sc.Utf8(), dst)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q as %s: %v", ErrCastFailed, sc.Utf8(), dst, err)
		}
		return NewScalar(NewNumericScalar(dst, parsed)), nil
	}
	arr := v.Column().(*arrow.StringArray)
	n := arr.Len()
	nb := arr.Nullability().Clone()
	return buildParsedColumn(arr, dst, n, nb)
}

func buildParsedColumn(arr *arrow.StringArray, dst types.Dtype, n int, nb *bitmap.Bitmap) (Value, error) {
	switch dst {
	case types.DtypeInt8:
		return parseColumn[int8](arr, dst, n, nb)
	case types.DtypeInt16:
		return parseColumn[int16](arr, dst, n, nb)
	case types.DtypeInt32:
		return parseColumn[int32](arr, dst, n, nb)
	case types.DtypeInt64:
		return parseColumn[int64](arr, dst, n, nb)
	case types.DtypeUint8:
		return parseColumn[uint8](arr, dst, n, nb)
	case types.DtypeUint16:
		return parseColumn[uint16](arr, dst, n, nb)
	case types.DtypeUint32:
		return parseColumn[uint32](arr, dst, n, nb)
	case types.DtypeUint64:
		return parseColumn[uint64](arr, dst, n, nb)
	case types.DtypeFloat32:
		return parseColumn[float32](arr, dst, n, nb)
	case types.DtypeFloat64:
		return parseColumn[float64](arr, dst, n, nb)
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

func parseColumn[D arrow.Numeric](arr *arrow.StringArray, dst types.Dtype, n int, nb *bitmap.Bitmap) (Value, error) {
	out := make([]D, n)
	for i := 0; i < n; i++ {
		if nb.Get(i) {
			continue
		}
		parsed, err := parseNumeric(arr.Get(i), dst)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q as %s: %v", ErrCastFailed, arr.Get(i), dst, err)
		}
		out[i] = parsed.(D)
	}
	return NewColumn(arrow.NewNumericArray(dst, out, nb)), nil
}
