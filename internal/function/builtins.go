package function

import (
	"fmt"
	"math"
	"strings"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

var builtins = []ScalarFunction{
	sqrtFunction{},
	absFunction{},
	upperFunction{},
	lowerFunction{},
	coalesceFunction{},
}

// floatUnary applies f element-wise to a Float64 Value, preserving its shape.
func floatUnary(v value.Value, f func(float64) float64) (value.Value, error) {
	if v.IsScalar() {
		sc := v.AsScalar()
		if !sc.Valid {
			return value.NewScalar(value.NewNullScalar(types.DtypeFloat64)), nil
		}
		return value.NewScalar(value.NewNumericScalar(types.DtypeFloat64, f(sc.Value().(float64)))), nil
	}
	arr := v.Column().(*arrow.NumericArray[float64])
	n := arr.Len()
	nb := arr.Nullability().Clone()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if nb.Get(i) {
			continue
		}
		out[i] = f(arr.Get(i))
	}
	return value.NewColumn(arrow.NewNumericArray(types.DtypeFloat64, out, nb)), nil
}

type sqrtFunction struct{}

func (sqrtFunction) Name() string { return "sqrt" }

func (sqrtFunction) ReturnType(argTypes []types.Dtype) (types.Dtype, error) {
	if len(argTypes) != 1 {
		return types.DtypeInvalid, fmt.Errorf("%w: sqrt takes 1 argument, got %d", ErrArgumentCount, len(argTypes))
	}
	if argTypes[0] != types.DtypeFloat64 {
		return types.DtypeInvalid, fmt.Errorf("%w: sqrt expects Float64, got %s", ErrArgumentType, argTypes[0])
	}
	return types.DtypeFloat64, nil
}

func (sqrtFunction) Eval(args []value.Value) (value.Value, error) {
	return floatUnary(args[0], math.Sqrt)
}

type absFunction struct{}

func (absFunction) Name() string { return "abs" }

func (absFunction) ReturnType(argTypes []types.Dtype) (types.Dtype, error) {
	if len(argTypes) != 1 {
		return types.DtypeInvalid, fmt.Errorf("%w: abs takes 1 argument, got %d", ErrArgumentCount, len(argTypes))
	}
	if argTypes[0] != types.DtypeFloat64 {
		return types.DtypeInvalid, fmt.Errorf("%w: abs expects Float64, got %s", ErrArgumentType, argTypes[0])
	}
	return types.DtypeFloat64, nil
}

func (absFunction) Eval(args []value.Value) (value.Value, error) {
	return floatUnary(args[0], math.Abs)
}

// textUnary applies f element-wise to a Utf8 Value, preserving its shape.
func textUnary(v value.Value, f func(string) string) (value.Value, error) {
	if v.IsScalar() {
		sc := v.AsScalar()
		if !sc.Valid {
			return value.NewScalar(value.NewNullScalar(types.DtypeUtf8)), nil
		}
		return value.NewScalar(value.NewUtf8Scalar(f(sc.Utf8()))), nil
	}
	arr := v.Column().(*arrow.StringArray)
	n := arr.Len()
	nb := arr.Nullability().Clone()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if nb.Get(i) {
			continue
		}
		out[i] = f(arr.Get(i))
	}
	return value.NewColumn(arrow.NewStringArray(out, nb)), nil
}

type upperFunction struct{}

func (upperFunction) Name() string { return "upper" }

func (upperFunction) ReturnType(argTypes []types.Dtype) (types.Dtype, error) {
	if len(argTypes) != 1 {
		return types.DtypeInvalid, fmt.Errorf("%w: upper takes 1 argument, got %d", ErrArgumentCount, len(argTypes))
	}
	if argTypes[0] != types.DtypeUtf8 {
		return types.DtypeInvalid, fmt.Errorf("%w: upper expects Utf8, got %s", ErrArgumentType, argTypes[0])
	}
	return types.DtypeUtf8, nil
}

func (upperFunction) Eval(args []value.Value) (value.Value, error) {
	return textUnary(args[0], strings.ToUpper)
}

type lowerFunction struct{}

func (lowerFunction) Name() string { return "lower" }

func (lowerFunction) ReturnType(argTypes []types.Dtype) (types.Dtype, error) {
	if len(argTypes) != 1 {
		return types.DtypeInvalid, fmt.Errorf("%w: lower takes 1 argument, got %d", ErrArgumentCount, len(argTypes))
	}
	if argTypes[0] != types.DtypeUtf8 {
		return types.DtypeInvalid, fmt.Errorf("%w: lower expects Utf8, got %s", ErrArgumentType, argTypes[0])
	}
	return types.DtypeUtf8, nil
}

func (lowerFunction) Eval(args []value.Value) (value.Value, error) {
	return textUnary(args[0], strings.ToLower)
}

// coalesceFunction returns its first non-null argument per row, matching
// Postgres' COALESCE. All arguments must share one dtype.
type coalesceFunction struct{}

func (coalesceFunction) Name() string { return "coalesce" }

func (coalesceFunction) ReturnType(argTypes []types.Dtype) (types.Dtype, error) {
	if len(argTypes) == 0 {
		return types.DtypeInvalid, fmt.Errorf("%w: coalesce takes at least 1 argument", ErrArgumentCount)
	}
	dt := argTypes[0]
	for _, at := range argTypes[1:] {
		if at != dt {
			return types.DtypeInvalid, fmt.Errorf("%w: coalesce arguments must share a dtype, got %s and %s", ErrArgumentType, dt, at)
		}
	}
	return dt, nil
}

func rowIsNull(v value.Value, i int) bool {
	if v.IsScalar() {
		return !v.AsScalar().Valid
	}
	return v.Column().Nullability().Get(i)
}

// rowValue boxes the i-th element of v as `any`. Coalesce is not on the
// per-row hot path, so boxing here is an acceptable trade for sharing one
// implementation across every dtype.
func rowValue(v value.Value, i int) any {
	if v.IsScalar() {
		return v.AsScalar().Value()
	}
	switch a := v.Column().(type) {
	case *arrow.StringArray:
		return a.Get(i)
	case *arrow.BoolArray:
		return a.Get(i)
	case *arrow.NumericArray[int8]:
		return a.Get(i)
	case *arrow.NumericArray[int16]:
		return a.Get(i)
	case *arrow.NumericArray[int32]:
		return a.Get(i)
	case *arrow.NumericArray[int64]:
		return a.Get(i)
	case *arrow.NumericArray[uint8]:
		return a.Get(i)
	case *arrow.NumericArray[uint16]:
		return a.Get(i)
	case *arrow.NumericArray[uint32]:
		return a.Get(i)
	case *arrow.NumericArray[uint64]:
		return a.Get(i)
	case *arrow.NumericArray[float32]:
		return a.Get(i)
	case *arrow.NumericArray[float64]:
		return a.Get(i)
	default:
		return nil
	}
}

func (coalesceFunction) Eval(args []value.Value) (value.Value, error) {
	allScalar := true
	n := 1
	for _, a := range args {
		if a.IsColumn() {
			allScalar = false
			if a.Len() > n {
				n = a.Len()
			}
		}
	}
	dt := args[0].Dtype()

	if allScalar {
		for _, a := range args {
			if a.AsScalar().Valid {
				return a, nil
			}
		}
		return value.NewScalar(value.NewNullScalar(dt)), nil
	}

	scalars := make([]value.Scalar, n)
	for i := 0; i < n; i++ {
		scalars[i] = value.NewNullScalar(dt)
		for _, a := range args {
			if !rowIsNull(a, i) {
				switch dt {
				case types.DtypeUtf8:
					scalars[i] = value.NewUtf8Scalar(rowValue(a, i).(string))
				case types.DtypeBoolean:
					scalars[i] = value.NewBoolScalar(rowValue(a, i).(bool))
				default:
					scalars[i] = value.NewNumericScalar(dt, rowValue(a, i))
				}
				break
			}
		}
	}
	return buildColumnFromScalars(dt, scalars)
}
