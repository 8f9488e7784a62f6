package expr

import (
	"errors"
	"testing"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

func testSchema() types.Schema {
	return types.NewSchema([]types.Field{
		{Name: "id", Dtype: types.DtypeInt64},
		{Name: "name", Dtype: types.DtypeUtf8},
	})
}

func testBatch(t *testing.T) record.Batch {
	t.Helper()
	ids := value.NewColumn(arrow.NewNumericArray(types.DtypeInt64, []int64{1, 2, 3}, nil))
	names := value.NewColumn(arrow.NewStringArray([]string{"a", "b", "c"}, nil))
	b, err := record.New(testSchema(), []value.Value{ids, names})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func TestCompileColumn(t *testing.T) {
	reg := function.NewRegistry()
	re, err := CompileScalar(Column{Index: 0, Name: "id"}, testSchema(), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if re.OutputType != types.DtypeInt64 {
		t.Fatalf("expected Int64 output type, got %s", re.OutputType)
	}
	v, err := re.Eval(testBatch(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Column().(*arrow.NumericArray[int64]).Get(1) != 2 {
		t.Fatalf("expected column evaluation to return the batch's own column")
	}
}

func TestCompileLiteralInfersOwnType(t *testing.T) {
	reg := function.NewRegistry()
	lit := Literal{Value: value.NewNumericScalar(types.DtypeInt32, int32(7))}
	re, err := CompileScalar(lit, testSchema(), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if re.OutputType != types.DtypeInt32 {
		t.Fatalf("expected literal to carry its own dtype (Int32), got %s", re.OutputType)
	}
}

func TestCompileBinaryComparisonOutputIsBoolean(t *testing.T) {
	reg := function.NewRegistry()
	e := BinaryExpr{
		Left:  Column{Index: 0, Name: "id"},
		Op:    OpGt,
		Right: Literal{Value: value.NewNumericScalar(types.DtypeInt64, int64(1))},
	}
	re, err := CompileScalar(e, testSchema(), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if re.OutputType != types.DtypeBoolean {
		t.Fatalf("expected Boolean output type, got %s", re.OutputType)
	}
	v, err := re.Eval(testBatch(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := v.Column().(*arrow.BoolArray)
	want := []bool{false, true, true}
	for i, w := range want {
		if arr.Get(i) != w {
			t.Errorf("position %d: expected %v, got %v", i, w, arr.Get(i))
		}
	}
}

func TestCompileCastColumn(t *testing.T) {
	reg := function.NewRegistry()
	e := Cast{Expr: Column{Index: 0, Name: "id"}, Dtype: types.DtypeFloat64}
	re, err := CompileScalar(e, testSchema(), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := re.Eval(testBatch(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Column().(*arrow.NumericArray[float64]).Get(0) != 1 {
		t.Fatalf("expected cast column to hold converted values")
	}
}

func TestCompileCastRejectsNonConstantExpr(t *testing.T) {
	reg := function.NewRegistry()
	inner := BinaryExpr{Left: Column{Index: 0}, Op: OpAdd, Right: Column{Index: 0}}
	e := Cast{Expr: inner, Dtype: types.DtypeFloat64}
	if _, err := CompileScalar(e, testSchema(), reg); !errors.Is(err, ErrNotConstant) {
		t.Fatalf("expected ErrNotConstant, got %v", err)
	}
}

func TestCompileAggregateRejectedInScalarPosition(t *testing.T) {
	reg := function.NewRegistry()
	agg := AggregateFunction{Kind: function.AggSum, Arg: Column{Index: 0}, ReturnType: types.DtypeInt64}
	if _, err := CompileScalar(agg, testSchema(), reg); !errors.Is(err, ErrAggregateNotAllowed) {
		t.Fatalf("expected ErrAggregateNotAllowed, got %v", err)
	}
}

func TestCompileAggregateAllowedAtTopLevel(t *testing.T) {
	reg := function.NewRegistry()
	agg := AggregateFunction{Kind: function.AggSum, Arg: Column{Index: 0}, ReturnType: types.DtypeInt64}
	re, err := Compile(agg, testSchema(), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.IsAggregate || re.AggKind != function.AggSum {
		t.Fatalf("expected a compiled aggregate expression")
	}
}

func TestCompileScalarFunctionArityAndType(t *testing.T) {
	reg := function.NewRegistry()
	e := ScalarFunction{Name: "sqrt", Args: []Expression{Column{Index: 0, Name: "id"}}}
	if _, err := CompileScalar(e, testSchema(), reg); err == nil {
		t.Fatalf("expected an error: sqrt requires Float64, id is Int64")
	}

	e2 := ScalarFunction{Name: "sqrt", Args: []Expression{
		Cast{Expr: Column{Index: 0, Name: "id"}, Dtype: types.DtypeFloat64},
	}}
	re, err := CompileScalar(e2, testSchema(), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if re.OutputType != types.DtypeFloat64 {
		t.Fatalf("expected sqrt to return Float64, got %s", re.OutputType)
	}
}
