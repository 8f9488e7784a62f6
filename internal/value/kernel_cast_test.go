package value

import (
	"errors"
	"testing"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/types"
)

func TestCastNumericToNumericTruncates(t *testing.T) {
	v := NewColumn(arrow.NewNumericArray(types.DtypeInt64, []int64{300, 1}, nil))
	got, err := Cast(v, types.DtypeInt8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := got.Column().(*arrow.NumericArray[int8])
	if arr.Get(0) != 44 || arr.Get(1) != 1 {
		t.Fatalf("expected native truncating conversion, got %v %v", arr.Get(0), arr.Get(1))
	}
}

func TestCastNumericToUtf8(t *testing.T) {
	v := NewColumn(arrow.NewNumericArray(types.DtypeInt64, []int64{42, -7}, nil))
	got, err := Cast(v, types.DtypeUtf8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := got.Column().(*arrow.StringArray)
	if arr.Get(0) != "42" || arr.Get(1) != "-7" {
		t.Fatalf("unexpected text form: %q %q", arr.Get(0), arr.Get(1))
	}
}

func TestCastUtf8ToNumeric(t *testing.T) {
	v := NewColumn(arrow.NewStringArray([]string{"12", "34"}, nil))
	got, err := Cast(v, types.DtypeInt32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := got.Column().(*arrow.NumericArray[int32])
	if arr.Get(0) != 12 || arr.Get(1) != 34 {
		t.Fatalf("unexpected parsed values: %v %v", arr.Get(0), arr.Get(1))
	}
}

func TestCastUtf8ToNumericFailure(t *testing.T) {
	v := NewColumn(arrow.NewStringArray([]string{"not-a-number"}, nil))
	_, err := Cast(v, types.DtypeInt32)
	if !errors.Is(err, ErrCastFailed) {
		t.Fatalf("expected ErrCastFailed, got %v", err)
	}
}

func TestCastUtf8ToUtf8Identity(t *testing.T) {
	v := NewColumn(arrow.NewStringArray([]string{"hello"}, nil))
	got, err := Cast(v, types.DtypeUtf8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Column().(*arrow.StringArray).Get(0) != "hello" {
		t.Fatalf("identity cast should preserve the value")
	}
}

func TestCastBooleanUnsupported(t *testing.T) {
	v := NewScalar(NewBoolScalar(true))
	_, err := Cast(v, types.DtypeInt32)
	if !errors.Is(err, ErrCastUnsupported) {
		t.Fatalf("expected ErrCastUnsupported, got %v", err)
	}
}

func TestCastPreservesNull(t *testing.T) {
	v := NewScalar(NewNullScalar(types.DtypeInt64))
	got, err := Cast(v, types.DtypeFloat64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AsScalar().Valid {
		t.Fatalf("expected cast of a null scalar to remain null")
	}
}
