package value

import (
	"math"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/types"
)

func addT[T arrow.Numeric](a, b T) (T, error) { return a + b, nil }
func subT[T arrow.Numeric](a, b T) (T, error) { return a - b, nil }
func mulT[T arrow.Numeric](a, b T) (T, error) { return a * b, nil }

func divInt[T arrow.Integer](a, b T) (T, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func divFloat[T arrow.Float](a, b T) (T, error) { return a / b, nil }

func modInt[T arrow.Integer](a, b T) (T, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a % b, nil
}

func modFloat32(a, b float32) (float32, error) { return float32(math.Mod(float64(a), float64(b))), nil }
func modFloat64(a, b float64) (float64, error) { return math.Mod(a, b), nil }

// arithKind selects which of the five binary arithmetic operators a call
// applies; the outer switch lives once per kind, here, rather than being
// threaded through every numeric-type branch below.
type arithKind int

const (
	arithAdd arithKind = iota
	arithSubtract
	arithMultiply
	arithDivide
	arithModulo
)

func applyArith(kind arithKind, l, r Value) (Value, error) {
	dt, err := resolveNumericDtype(l, r)
	if err != nil {
		return Value{}, err
	}
	switch dt {
	case types.DtypeInt8:
		return dispatchArith[int8](kind, dt, l, r)
	case types.DtypeInt16:
		return dispatchArith[int16](kind, dt, l, r)
	case types.DtypeInt32:
		return dispatchArith[int32](kind, dt, l, r)
	case types.DtypeInt64:
		return dispatchArith[int64](kind, dt, l, r)
	case types.DtypeUint8:
		return dispatchArith[uint8](kind, dt, l, r)
	case types.DtypeUint16:
		return dispatchArith[uint16](kind, dt, l, r)
	case types.DtypeUint32:
		return dispatchArith[uint32](kind, dt, l, r)
	case types.DtypeUint64:
		return dispatchArith[uint64](kind, dt, l, r)
	case types.DtypeFloat32:
		return dispatchArithFloat32(kind, dt, l, r)
	case types.DtypeFloat64:
		return dispatchArithFloat64(kind, dt, l, r)
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

// dispatchArith handles the eight integer primitives, where division and
// modulo share the same zero-check shape.
func dispatchArith[T arrow.Integer](kind arithKind, dt types.Dtype, l, r Value) (Value, error) {
	switch kind {
	case arithAdd:
		return broadcastNumeric(dt, l, r, addT[T])
	case arithSubtract:
		return broadcastNumeric(dt, l, r, subT[T])
	case arithMultiply:
		return broadcastNumeric(dt, l, r, mulT[T])
	case arithDivide:
		return broadcastNumeric(dt, l, r, divInt[T])
	case arithModulo:
		return broadcastNumeric(dt, l, r, modInt[T])
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

func dispatchArithFloat32(kind arithKind, dt types.Dtype, l, r Value) (Value, error) {
	switch kind {
	case arithAdd:
		return broadcastNumeric(dt, l, r, addT[float32])
	case arithSubtract:
		return broadcastNumeric(dt, l, r, subT[float32])
	case arithMultiply:
		return broadcastNumeric(dt, l, r, mulT[float32])
	case arithDivide:
		return broadcastNumeric(dt, l, r, divFloat[float32])
	case arithModulo:
		return broadcastNumeric(dt, l, r, modFloat32)
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

func dispatchArithFloat64(kind arithKind, dt types.Dtype, l, r Value) (Value, error) {
	switch kind {
	case arithAdd:
		return broadcastNumeric(dt, l, r, addT[float64])
	case arithSubtract:
		return broadcastNumeric(dt, l, r, subT[float64])
	case arithMultiply:
		return broadcastNumeric(dt, l, r, mulT[float64])
	case arithDivide:
		return broadcastNumeric(dt, l, r, divFloat[float64])
	case arithModulo:
		return broadcastNumeric(dt, l, r, modFloat64)
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

// Add computes l + r element-wise. Both operands must share the same
// numeric dtype.
func Add(l, r Value) (Value, error) { return applyArith(arithAdd, l, r) }

// Subtract computes l - r element-wise.
func Subtract(l, r Value) (Value, error) { return applyArith(arithSubtract, l, r) }

// Multiply computes l * r element-wise.
func Multiply(l, r Value) (Value, error) { return applyArith(arithMultiply, l, r) }

// Divide computes l / r element-wise. Integer division by zero returns
// ErrDivideByZero; float division follows IEEE-754 (Inf/NaN, no error).
func Divide(l, r Value) (Value, error) { return applyArith(arithDivide, l, r) }

// Modulo computes l % r element-wise, using math.Mod for float operands
// since Go's % operator is undefined for float32/float64.
func Modulo(l, r Value) (Value, error) { return applyArith(arithModulo, l, r) }
