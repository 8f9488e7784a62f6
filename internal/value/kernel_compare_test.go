package value

import (
	"testing"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/types"
)

func boolsOf(v Value) []bool {
	arr := v.Column().(*arrow.BoolArray)
	out := make([]bool, arr.Len())
	for i := range out {
		out[i] = arr.Get(i)
	}
	return out
}

// TestEqColumnScalar guards against the classic off-by-negation mistake of
// wiring the inequality operator into the equality kernel.
func TestEqColumnScalar(t *testing.T) {
	l := NewColumn(arrow.NewNumericArray(types.DtypeInt64, []int64{1, 2, 2, 3}, nil))
	r := NewScalar(NewNumericScalar(types.DtypeInt64, int64(2)))
	got, err := Eq(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{false, true, true, false}
	for i, w := range boolsOf(got) {
		if w != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], w)
		}
	}
}

// TestGtIsStrict guards against a lax > implementation that admits equal
// operands (a historical bug in the reference this kernel is modelled on).
func TestGtIsStrict(t *testing.T) {
	l := NewColumn(arrow.NewNumericArray(types.DtypeInt64, []int64{1, 2, 3}, nil))
	r := NewScalar(NewNumericScalar(types.DtypeInt64, int64(2)))
	got, err := Gt(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{false, false, true}
	for i, w := range boolsOf(got) {
		if w != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], w)
		}
	}
}

// TestGtEqIncludesEqual guards against a strict->= implementation that
// excludes equal operands (the mirror-image historical bug to TestGtIsStrict).
func TestGtEqIncludesEqual(t *testing.T) {
	l := NewColumn(arrow.NewNumericArray(types.DtypeInt64, []int64{1, 2, 3}, nil))
	r := NewScalar(NewNumericScalar(types.DtypeInt64, int64(2)))
	got, err := GtEq(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{false, true, true}
	for i, w := range boolsOf(got) {
		if w != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], w)
		}
	}
}

func TestUtf8EqualityIsByteEquality(t *testing.T) {
	l := NewColumn(arrow.NewStringArray([]string{"foo", "bar", "baz"}, nil))
	r := NewScalar(NewUtf8Scalar("bar"))
	got, err := Eq(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{false, true, false}
	for i, w := range boolsOf(got) {
		if w != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], w)
		}
	}
}

func TestUtf8Ordering(t *testing.T) {
	l := NewColumn(arrow.NewStringArray([]string{"apple", "zebra"}, nil))
	r := NewScalar(NewUtf8Scalar("mango"))
	got, err := Lt(l, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{true, false}
	for i, w := range boolsOf(got) {
		if w != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], w)
		}
	}
}
