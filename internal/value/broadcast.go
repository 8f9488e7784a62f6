package value

import (
	"fmt"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
)

// resolveNumericDtype checks that l and r share the same numeric dtype,
// the only shape the arithmetic and comparison kernels accept (casts must
// be inserted by the expression compiler beforehand).
func resolveNumericDtype(l, r Value) (types.Dtype, error) {
	dt := l.Dtype()
	if dt != r.Dtype() {
		return types.DtypeInvalid, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, l.Dtype(), r.Dtype())
	}
	if !dt.IsNumeric() {
		return types.DtypeInvalid, fmt.Errorf("%w: %s is not numeric", ErrUnsupportedDtype, dt)
	}
	return dt, nil
}

func numericAt[T arrow.Numeric](v Value, i int) (val T, isNull bool) {
	if v.IsColumn() {
		arr := v.Column().(*arrow.NumericArray[T])
		return arr.Get(i), arr.IsNull(i)
	}
	sc := v.AsScalar()
	if !sc.Valid {
		return val, true
	}
	return sc.Value().(T), false
}

// broadcastNumeric applies fn element-wise across l and r, which may each
// independently be a Column or a Scalar. The loop body is monomorphic in T;
// the only branch on dtype happens once, in the caller's outer switch.
// Argument order is preserved (fn always sees the left operand's value
// first), which matters for non-commutative operators.
func broadcastNumeric[T arrow.Numeric](dt types.Dtype, l, r Value, fn func(a, b T) (T, error)) (Value, error) {
	if l.IsScalar() && r.IsScalar() {
		ls, rs := l.AsScalar(), r.AsScalar()
		if !ls.Valid || !rs.Valid {
			return NewScalar(NewNullScalar(dt)), nil
		}
		v, err := fn(ls.Value().(T), rs.Value().(T))
		if err != nil {
			return Value{}, err
		}
		return NewScalar(NewNumericScalar(dt, v)), nil
	}

	n := l.Len()
	if r.Len() > n {
		n = r.Len()
	}
	out := make([]T, n)
	var nb *bitmap.Bitmap
	for i := 0; i < n; i++ {
		av, anull := numericAt[T](l, i)
		bv, bnull := numericAt[T](r, i)
		if anull || bnull {
			if nb == nil {
				nb = bitmap.NewBitmap(n)
			}
			nb.Set(i, true)
			continue
		}
		v, err := fn(av, bv)
		if err != nil {
			return Value{}, err
		}
		out[i] = v
	}
	return NewColumn(arrow.NewNumericArray(dt, out, nb)), nil
}

// broadcastCompareNumeric applies a predicate element-wise across two
// numeric Values of the same underlying type T, producing a Boolean
// result. A null operand on either side makes the result null.
func broadcastCompareNumeric[T arrow.Numeric](l, r Value, pred func(a, b T) bool) (Value, error) {
	if l.IsScalar() && r.IsScalar() {
		ls, rs := l.AsScalar(), r.AsScalar()
		if !ls.Valid || !rs.Valid {
			return NewScalar(NewNullScalar(types.DtypeBoolean)), nil
		}
		return NewScalar(NewBoolScalar(pred(ls.Value().(T), rs.Value().(T)))), nil
	}
	n := l.Len()
	if r.Len() > n {
		n = r.Len()
	}
	out := make([]bool, n)
	var nb *bitmap.Bitmap
	for i := 0; i < n; i++ {
		av, anull := numericAt[T](l, i)
		bv, bnull := numericAt[T](r, i)
		if anull || bnull {
			if nb == nil {
				nb = bitmap.NewBitmap(n)
			}
			nb.Set(i, true)
			continue
		}
		out[i] = pred(av, bv)
	}
	return NewColumn(arrow.NewBoolArrayFromBools(out, nb)), nil
}

func utf8At(v Value, i int) (val []byte, isNull bool) {
	if v.IsColumn() {
		arr := v.Column().(*arrow.StringArray)
		return arr.GetBytes(i), arr.IsNull(i)
	}
	sc := v.AsScalar()
	if !sc.Valid {
		return nil, true
	}
	return []byte(sc.Utf8()), false
}

// broadcastCompareUtf8 applies a byte-equality predicate element-wise
// across two Utf8 Values. Text comparisons in this engine are always byte
// comparisons, never locale-aware.
func broadcastCompareUtf8(l, r Value, pred func(a, b []byte) bool) (Value, error) {
	if l.IsScalar() && r.IsScalar() {
		ls, rs := l.AsScalar(), r.AsScalar()
		if !ls.Valid || !rs.Valid {
			return NewScalar(NewNullScalar(types.DtypeBoolean)), nil
		}
		return NewScalar(NewBoolScalar(pred([]byte(ls.Utf8()), []byte(rs.Utf8())))), nil
	}
	n := l.Len()
	if r.Len() > n {
		n = r.Len()
	}
	out := make([]bool, n)
	var nb *bitmap.Bitmap
	for i := 0; i < n; i++ {
		av, anull := utf8At(l, i)
		bv, bnull := utf8At(r, i)
		if anull || bnull {
			if nb == nil {
				nb = bitmap.NewBitmap(n)
			}
			nb.Set(i, true)
			continue
		}
		out[i] = pred(av, bv)
	}
	return NewColumn(arrow.NewBoolArrayFromBools(out, nb)), nil
}

// boolAt reads the i-th logical value out of a Boolean-typed Value,
// reporting whether it is null.
func boolAt(v Value, i int) (val, isNull bool) {
	if v.IsColumn() {
		arr := v.Column().(*arrow.BoolArray)
		return arr.Get(i), arr.IsNull(i)
	}
	sc := v.AsScalar()
	if !sc.Valid {
		return false, true
	}
	return sc.Bool(), false
}

// broadcastBool applies fn element-wise across two Boolean values.
func broadcastBool(l, r Value, fn func(a, b bool) bool) (Value, error) {
	if l.Dtype() != types.DtypeBoolean || r.Dtype() != types.DtypeBoolean {
		return Value{}, fmt.Errorf("%w: logical operators require boolean operands, got %s and %s", ErrTypeMismatch, l.Dtype(), r.Dtype())
	}
	if l.IsScalar() && r.IsScalar() {
		ls, rs := l.AsScalar(), r.AsScalar()
		if !ls.Valid || !rs.Valid {
			return NewScalar(NewNullScalar(types.DtypeBoolean)), nil
		}
		return NewScalar(NewBoolScalar(fn(ls.Bool(), rs.Bool()))), nil
	}
	n := l.Len()
	if r.Len() > n {
		n = r.Len()
	}
	out := make([]bool, n)
	var nb *bitmap.Bitmap
	for i := 0; i < n; i++ {
		av, anull := boolAt(l, i)
		bv, bnull := boolAt(r, i)
		if anull || bnull {
			if nb == nil {
				nb = bitmap.NewBitmap(n)
			}
			nb.Set(i, true)
			continue
		}
		out[i] = fn(av, bv)
	}
	return NewColumn(arrow.NewBoolArrayFromBools(out, nb)), nil
}
