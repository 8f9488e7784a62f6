package value

import (
	"bytes"
	"fmt"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/types"
)

func eqT[T arrow.Numeric](a, b T) bool    { return a == b }
func notEqT[T arrow.Numeric](a, b T) bool { return a != b }
func ltT[T arrow.Numeric](a, b T) bool    { return a < b }
func ltEqT[T arrow.Numeric](a, b T) bool  { return a <= b }
func gtT[T arrow.Numeric](a, b T) bool    { return a > b }
func gtEqT[T arrow.Numeric](a, b T) bool  { return a >= b }

func eqBytes(a, b []byte) bool    { return bytes.Equal(a, b) }
func notEqBytes(a, b []byte) bool { return !bytes.Equal(a, b) }
func ltBytes(a, b []byte) bool    { return bytes.Compare(a, b) < 0 }
func ltEqBytes(a, b []byte) bool  { return bytes.Compare(a, b) <= 0 }
func gtBytes(a, b []byte) bool    { return bytes.Compare(a, b) > 0 }
func gtEqBytes(a, b []byte) bool  { return bytes.Compare(a, b) >= 0 }

type compareKind int

const (
	cmpEq compareKind = iota
	cmpNotEq
	cmpLt
	cmpLtEq
	cmpGt
	cmpGtEq
)

func applyCompare(kind compareKind, l, r Value) (Value, error) {
	dt := l.Dtype()
	if dt != r.Dtype() {
		return Value{}, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, l.Dtype(), r.Dtype())
	}
	if dt == types.DtypeUtf8 {
		return dispatchCompareUtf8(kind, l, r)
	}
	if !dt.IsNumeric() {
		return Value{}, fmt.Errorf("%w: %s does not support comparison", ErrUnsupportedDtype, dt)
	}
	switch dt {
	case types.DtypeInt8:
		return dispatchCompareNumeric[int8](kind, l, r)
	case types.DtypeInt16:
		return dispatchCompareNumeric[int16](kind, l, r)
	case types.DtypeInt32:
		return dispatchCompareNumeric[int32](kind, l, r)
	case types.DtypeInt64:
		return dispatchCompareNumeric[int64](kind, l, r)
	case types.DtypeUint8:
		return dispatchCompareNumeric[uint8](kind, l, r)
	case types.DtypeUint16:
		return dispatchCompareNumeric[uint16](kind, l, r)
	case types.DtypeUint32:
		return dispatchCompareNumeric[uint32](kind, l, r)
	case types.DtypeUint64:
		return dispatchCompareNumeric[uint64](kind, l, r)
	case types.DtypeFloat32:
		return dispatchCompareNumeric[float32](kind, l, r)
	case types.DtypeFloat64:
		return dispatchCompareNumeric[float64](kind, l, r)
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

func dispatchCompareNumeric[T arrow.Numeric](kind compareKind, l, r Value) (Value, error) {
	switch kind {
	case cmpEq:
		return broadcastCompareNumeric(l, r, eqT[T])
	case cmpNotEq:
		return broadcastCompareNumeric(l, r, notEqT[T])
	case cmpLt:
		return broadcastCompareNumeric(l, r, ltT[T])
	case cmpLtEq:
		return broadcastCompareNumeric(l, r, ltEqT[T])
	case cmpGt:
		return broadcastCompareNumeric(l, r, gtT[T])
	case cmpGtEq:
		return broadcastCompareNumeric(l, r, gtEqT[T])
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

func dispatchCompareUtf8(kind compareKind, l, r Value) (Value, error) {
	switch kind {
	case cmpEq:
		return broadcastCompareUtf8(l, r, eqBytes)
	case cmpNotEq:
		return broadcastCompareUtf8(l, r, notEqBytes)
	case cmpLt:
		return broadcastCompareUtf8(l, r, ltBytes)
	case cmpLtEq:
		return broadcastCompareUtf8(l, r, ltEqBytes)
	case cmpGt:
		return broadcastCompareUtf8(l, r, gtBytes)
	case cmpGtEq:
		return broadcastCompareUtf8(l, r, gtEqBytes)
	default:
		return Value{}, ErrUnsupportedDtype
	}
}

// Eq computes l == r element-wise, over numeric or Utf8 operands of the
// same dtype. Utf8 equality is always byte equality.
func Eq(l, r Value) (Value, error) { return applyCompare(cmpEq, l, r) }

// NotEq computes l != r element-wise.
func NotEq(l, r Value) (Value, error) { return applyCompare(cmpNotEq, l, r) }

// Lt computes l < r element-wise.
func Lt(l, r Value) (Value, error) { return applyCompare(cmpLt, l, r) }

// LtEq computes l <= r element-wise.
func LtEq(l, r Value) (Value, error) { return applyCompare(cmpLtEq, l, r) }

// Gt computes l > r element-wise.
func Gt(l, r Value) (Value, error) { return applyCompare(cmpGt, l, r) }

// GtEq computes l >= r element-wise.
func GtEq(l, r Value) (Value, error) { return applyCompare(cmpGtEq, l, r) }
