package function

import (
	"fmt"
	"strings"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// AggregateKind identifies one of the five supported aggregate functions.
type AggregateKind uint8

const (
	AggMin AggregateKind = iota
	AggMax
	AggSum
	AggCount
	AggAvg
)

func (k AggregateKind) String() string {
	switch k {
	case AggMin:
		return "min"
	case AggMax:
		return "max"
	case AggSum:
		return "sum"
	case AggCount:
		return "count"
	case AggAvg:
		return "avg"
	default:
		return "unknown"
	}
}

// ParseAggregateKind resolves a SQL aggregate function name (case
// insensitive) to its AggregateKind.
func ParseAggregateKind(name string) (AggregateKind, error) {
	switch strings.ToLower(name) {
	case "min":
		return AggMin, nil
	case "max":
		return AggMax, nil
	case "sum":
		return AggSum, nil
	case "count":
		return AggCount, nil
	case "avg":
		return AggAvg, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownAggregate, name)
	}
}

// AggregateReturnType reports the output dtype of an aggregate over an
// input of dtype argType: Count always returns Uint64, Avg always returns
// Float64, and Min/Max/Sum preserve the input element type.
func AggregateReturnType(kind AggregateKind, argType types.Dtype) (types.Dtype, error) {
	switch kind {
	case AggCount:
		return types.DtypeUint64, nil
	case AggAvg:
		if !argType.IsNumeric() {
			return types.DtypeInvalid, fmt.Errorf("%w: avg requires a numeric argument, got %s", ErrArgumentType, argType)
		}
		return types.DtypeFloat64, nil
	case AggSum:
		if !argType.IsNumeric() {
			return types.DtypeInvalid, fmt.Errorf("%w: sum requires a numeric argument, got %s", ErrArgumentType, argType)
		}
		return argType, nil
	case AggMin, AggMax:
		if !argType.IsNumeric() && argType != types.DtypeUtf8 {
			return types.DtypeInvalid, fmt.Errorf("%w: min/max require a numeric or text argument, got %s", ErrArgumentType, argType)
		}
		return argType, nil
	default:
		return types.DtypeInvalid, ErrUnknownAggregate
	}
}

// GroupState accumulates one aggregate's value across the rows belonging
// to a single group, mirroring the teacher's per-group AggState: a
// per-kind update step executed once per row, and a single resolve step
// producing the final Scalar.
type GroupState struct {
	kind    AggregateKind
	argType types.Dtype
	count   uint64
	min     value.Scalar
	max     value.Scalar
	sum     float64
	sumSet  bool
}

// NewGroupState returns a fresh accumulator for the given aggregate kind
// over a column of the given dtype.
func NewGroupState(kind AggregateKind, argType types.Dtype) *GroupState {
	return &GroupState{kind: kind, argType: argType}
}

// Update folds one more (possibly null) value into the accumulator. A null
// input is ignored by every kind except Count(*), which counts rows
// regardless of nullness (callers distinguish COUNT(*) by passing argType
// DtypeInvalid; every Update call then counts one row, whatever v holds).
func (g *GroupState) Update(v value.Scalar) {
	if g.kind == AggCount {
		if g.argType == types.DtypeInvalid || v.Valid {
			g.count++
		}
		return
	}
	if !v.Valid {
		return
	}
	switch g.kind {
	case AggMin:
		if !g.min.Valid || scalarLess(v, g.min) {
			g.min = v
		}
	case AggMax:
		if !g.max.Valid || scalarLess(g.max, v) {
			g.max = v
		}
	case AggSum, AggAvg:
		g.sum += scalarAsFloat(v)
		g.sumSet = true
		g.count++
	}
}

// Finish produces the aggregate's final Scalar value for this group.
func (g *GroupState) Finish() (value.Scalar, error) {
	switch g.kind {
	case AggCount:
		return value.NewNumericScalar(types.DtypeUint64, g.count), nil
	case AggMin:
		return g.min, nil
	case AggMax:
		return g.max, nil
	case AggSum:
		if !g.sumSet {
			return value.NewNullScalar(g.argType), nil
		}
		return value.NewNumericScalar(g.argType, sumAs(g.argType, g.sum)), nil
	case AggAvg:
		if g.count == 0 {
			return value.NewNullScalar(types.DtypeFloat64), nil
		}
		return value.NewNumericScalar(types.DtypeFloat64, g.sum/float64(g.count)), nil
	default:
		return value.Scalar{}, ErrUnknownAggregate
	}
}

func scalarAsFloat(s value.Scalar) float64 {
	switch n := s.Value().(type) {
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// sumAs narrows the float64 accumulator back to dt. Integer sums above
// 2^53 lose precision this way; an exact result would need a same-type
// integer accumulator alongside the float one.
func sumAs(dt types.Dtype, sum float64) any {
	switch dt {
	case types.DtypeInt8:
		return int8(sum)
	case types.DtypeInt16:
		return int16(sum)
	case types.DtypeInt32:
		return int32(sum)
	case types.DtypeInt64:
		return int64(sum)
	case types.DtypeUint8:
		return uint8(sum)
	case types.DtypeUint16:
		return uint16(sum)
	case types.DtypeUint32:
		return uint32(sum)
	case types.DtypeUint64:
		return uint64(sum)
	case types.DtypeFloat32:
		return float32(sum)
	default:
		return sum
	}
}

// scalarLess compares two valid, same-dtype scalars. Group equality and
// ordering in this engine always use the primitive's own equality/order,
// never a locale-aware text comparison.
func scalarLess(a, b value.Scalar) bool {
	if a.Dtype == types.DtypeUtf8 {
		return a.Utf8() < b.Utf8()
	}
	return scalarAsFloat(a) < scalarAsFloat(b)
}

// GroupKey renders a Value's i-th row into a comparable key for GROUP BY
// bucketing. Two rows with the same primitive value, of the same dtype,
// always render to the same key.
func GroupKey(v value.Value, i int) string {
	if v.IsScalar() {
		sc := v.AsScalar()
		if !sc.Valid {
			return "\x00NULL"
		}
		return "\x01" + fmt.Sprintf("%v", sc.Value())
	}
	arr := v.Column()
	if arr.Nullability().Get(i) {
		return "\x00NULL"
	}
	switch a := arr.(type) {
	case *arrow.StringArray:
		return "\x01" + a.Get(i)
	case *arrow.BoolArray:
		return "\x01" + fmt.Sprintf("%v", a.Get(i))
	default:
		val, _ := genericNumericAt(arr, i)
		return "\x01" + fmt.Sprintf("%v", val)
	}
}

func genericNumericAt(arr arrow.Array, i int) (any, bool) {
	switch a := arr.(type) {
	case *arrow.NumericArray[int8]:
		return a.Get(i), true
	case *arrow.NumericArray[int16]:
		return a.Get(i), true
	case *arrow.NumericArray[int32]:
		return a.Get(i), true
	case *arrow.NumericArray[int64]:
		return a.Get(i), true
	case *arrow.NumericArray[uint8]:
		return a.Get(i), true
	case *arrow.NumericArray[uint16]:
		return a.Get(i), true
	case *arrow.NumericArray[uint32]:
		return a.Get(i), true
	case *arrow.NumericArray[uint64]:
		return a.Get(i), true
	case *arrow.NumericArray[float32]:
		return a.Get(i), true
	case *arrow.NumericArray[float64]:
		return a.Get(i), true
	default:
		return nil, false
	}
}

// ScalarAt reads the i-th row of v as a Scalar, used to feed values into a
// GroupState one row at a time.
func ScalarAt(v value.Value, i int) value.Scalar {
	if v.IsScalar() {
		return v.AsScalar()
	}
	dt := v.Dtype()
	arr := v.Column()
	if arr.Nullability().Get(i) {
		return value.NewNullScalar(dt)
	}
	switch a := arr.(type) {
	case *arrow.StringArray:
		return value.NewUtf8Scalar(a.Get(i))
	case *arrow.BoolArray:
		return value.NewBoolScalar(a.Get(i))
	default:
		val, ok := genericNumericAt(arr, i)
		if !ok {
			return value.NewNullScalar(dt)
		}
		return value.NewNumericScalar(dt, val)
	}
}

// ScalarColumn assembles a slice of same-dtype Scalars into a Column
// value - used to materialize the Aggregate operator's output columns.
func ScalarColumn(dt types.Dtype, scalars []value.Scalar) (value.Value, error) {
	return buildColumnFromScalars(dt, scalars)
}
