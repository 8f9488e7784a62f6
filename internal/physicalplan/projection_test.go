package physicalplan

import (
	"context"
	"testing"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/datasource"
	"github.com/kokes/colexec/internal/expr"
	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

func TestProjectionEvaluatesColumnExpressions(t *testing.T) {
	src := datasource.NewMemorySource(sampleSchema(), []record.Batch{sampleBatch(t)})
	rel := NewDataSourceRelation(src, nil)

	nameExpr, err := expr.CompileScalar(expr.Column{Index: 1, Name: "name"}, sampleSchema(), function.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	proj := NewProjection(rel, []expr.RuntimeExpr{nameExpr}, []string{"name"})

	batch, ok, err := proj.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a batch, got ok=%v err=%v", ok, err)
	}
	if batch.NumCols() != 1 || batch.NumRows() != 3 {
		t.Fatalf("expected 1 col x 3 rows, got %d x %d", batch.NumCols(), batch.NumRows())
	}
	got := batch.Column(0).Column().(*arrow.StringArray).Get(0)
	if got != "a" {
		t.Fatalf("expected first row %q, got %q", "a", got)
	}
}

// A projection whose expression is a bare Literal evaluates to a Scalar
// value; the operator must broadcast it to a full column rather than
// handing record.New a Scalar.
func TestProjectionMaterializesScalarExpressions(t *testing.T) {
	src := datasource.NewMemorySource(sampleSchema(), []record.Batch{sampleBatch(t)})
	rel := NewDataSourceRelation(src, nil)

	litExpr, err := expr.CompileScalar(expr.Literal{Value: value.NewNumericScalar(types.DtypeInt64, int64(42))}, sampleSchema(), function.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	proj := NewProjection(rel, []expr.RuntimeExpr{litExpr}, []string{"answer"})

	batch, ok, err := proj.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a batch, got ok=%v err=%v", ok, err)
	}
	col := batch.Column(0)
	if !col.IsColumn() {
		t.Fatal("expected the literal projection to be materialized into a column")
	}
	arr := col.Column().(*arrow.NumericArray[int64])
	if arr.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", arr.Len())
	}
	for i := 0; i < arr.Len(); i++ {
		if arr.Get(i) != 42 {
			t.Fatalf("expected every row to be 42, got %d at %d", arr.Get(i), i)
		}
	}
}
