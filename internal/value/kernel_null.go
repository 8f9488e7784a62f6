package value

import (
	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/bitmap"
)

// IsNull reports, for each row, whether the value is SQL NULL. The result
// is itself never null: IsNull is a total predicate over the input's
// nullability bitmap (a missing bitmap means every row is valid), and a
// column's nullability bitmap already has a bit set exactly where IsNull
// should be true, so it is cloned directly as the result's data bitmap.
func IsNull(v Value) (Value, error) {
	if v.IsScalar() {
		return NewScalar(NewBoolScalar(!v.AsScalar().Valid)), nil
	}
	arr := v.Column()
	n := arr.Len()
	data := bitmap.NewBitmap(n)
	if nb := arr.Nullability(); nb != nil {
		data = nb.Clone()
	}
	return NewColumn(arrow.NewBoolArray(data, n, nil)), nil
}

// IsNotNull is the negation of IsNull: the same nullability bitmap,
// inverted.
func IsNotNull(v Value) (Value, error) {
	if v.IsScalar() {
		return NewScalar(NewBoolScalar(v.AsScalar().Valid)), nil
	}
	arr := v.Column()
	n := arr.Len()
	data := bitmap.NewBitmap(n)
	if nb := arr.Nullability(); nb != nil {
		data = nb.Clone()
	}
	data.Invert()
	return NewColumn(arrow.NewBoolArray(data, n, nil)), nil
}
