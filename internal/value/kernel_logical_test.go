package value

import "testing"

func TestAndOr(t *testing.T) {
	a := NewScalar(NewBoolScalar(true))
	b := NewScalar(NewBoolScalar(false))
	and, err := And(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if and.AsScalar().Bool() != false {
		t.Fatalf("expected true && false == false")
	}
	or, err := Or(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if or.AsScalar().Bool() != true {
		t.Fatalf("expected true || false == true")
	}
}

func TestLogicalTypeMismatch(t *testing.T) {
	a := NewScalar(NewBoolScalar(true))
	b := NewScalar(NewUtf8Scalar("x"))
	if _, err := And(a, b); err == nil {
		t.Fatalf("expected error combining a boolean with a non-boolean operand")
	}
}
