package errs

import (
	"errors"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	sentinel := errors.New("boom")
	e := New(Execution, sentinel)
	if !errors.Is(e, sentinel) {
		t.Fatalf("expected errors.Is to see through to the wrapped sentinel")
	}
	if e.Kind != Execution {
		t.Fatalf("expected Execution kind, got %v", e.Kind)
	}
}

func TestKindString(t *testing.T) {
	if Plan.String() != "plan error" {
		t.Fatalf("unexpected Kind.String(): %s", Plan.String())
	}
}
