package value

import (
	"errors"
	"testing"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
)

func col(dt types.Dtype, vals []int64, nulls *bitmap.Bitmap) Value {
	switch dt {
	case types.DtypeInt64:
		return NewColumn(arrow.NewNumericArray(types.DtypeInt64, vals, nulls))
	default:
		panic("unsupported in test helper")
	}
}

func TestAddColumnColumn(t *testing.T) {
	l := col(types.DtypeInt64, []int64{1, 2, 3}, nil)
	r := col(types.DtypeInt64, []int64{10, 20, 30}, nil)
	got, err := Add(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := got.Column().(*arrow.NumericArray[int64])
	want := []int64{11, 22, 33}
	for i, w := range want {
		if arr.Get(i) != w {
			t.Errorf("position %d: expected %d, got %d", i, w, arr.Get(i))
		}
	}
}

func TestAddColumnScalarPreservesOrder(t *testing.T) {
	l := col(types.DtypeInt64, []int64{10, 20}, nil)
	r := NewScalar(NewNumericScalar(types.DtypeInt64, int64(1)))
	got, err := Subtract(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := got.Column().(*arrow.NumericArray[int64])
	if arr.Get(0) != 9 || arr.Get(1) != 19 {
		t.Fatalf("Subtract(column, scalar) did not preserve operand order: %v %v", arr.Get(0), arr.Get(1))
	}

	got2, err := Subtract(r, l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr2 := got2.Column().(*arrow.NumericArray[int64])
	if arr2.Get(0) != -9 || arr2.Get(1) != -19 {
		t.Fatalf("Subtract(scalar, column) did not preserve operand order: %v %v", arr2.Get(0), arr2.Get(1))
	}
}

func TestDivideIntegerByZero(t *testing.T) {
	l := col(types.DtypeInt64, []int64{10}, nil)
	r := col(types.DtypeInt64, []int64{0}, nil)
	_, err := Divide(l, r)
	if !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}
}

func TestDivideFloatByZeroIsInf(t *testing.T) {
	l := NewColumn(arrow.NewNumericArray(types.DtypeFloat64, []float64{1}, nil))
	r := NewColumn(arrow.NewNumericArray(types.DtypeFloat64, []float64{0}, nil))
	got, err := Divide(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := got.Column().(*arrow.NumericArray[float64]).Get(0)
	if !(v > 1e300) {
		t.Fatalf("expected +Inf-like result, got %v", v)
	}
}

func TestModuloFloatUsesMathMod(t *testing.T) {
	l := NewColumn(arrow.NewNumericArray(types.DtypeFloat64, []float64{5.5}, nil))
	r := NewColumn(arrow.NewNumericArray(types.DtypeFloat64, []float64{2}, nil))
	got, err := Modulo(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := got.Column().(*arrow.NumericArray[float64]).Get(0)
	if v != 1.5 {
		t.Fatalf("expected 1.5, got %v", v)
	}
}

func TestArithNullPropagation(t *testing.T) {
	nulls := bitmap.NewBitmap(2)
	nulls.Set(1, true)
	l := col(types.DtypeInt64, []int64{1, 2}, nulls)
	r := col(types.DtypeInt64, []int64{10, 20}, nil)
	got, err := Add(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := got.Column().(*arrow.NumericArray[int64])
	if arr.IsNull(0) || !arr.IsNull(1) {
		t.Fatalf("expected null propagation at position 1")
	}
}

func TestArithTypeMismatch(t *testing.T) {
	l := col(types.DtypeInt64, []int64{1}, nil)
	r := NewColumn(arrow.NewNumericArray(types.DtypeFloat64, []float64{1}, nil))
	_, err := Add(l, r)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}
