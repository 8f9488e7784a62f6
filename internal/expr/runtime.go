package expr

import (
	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// Evaluator is a compiled expression's callable form: given an input
// batch, it produces a Value (Column or Scalar, depending on the
// expression) or a typed execution error.
type Evaluator func(batch record.Batch) (value.Value, error)

// RuntimeExpr is the result of compiling an Expression. Either Eval is
// populated, or IsAggregate is set together with the Agg* fields,
// mirroring the source's Compiled{evaluator, output_type} /
// AggregateFunction{...} union.
type RuntimeExpr struct {
	OutputType types.Dtype

	// Eval is set for every RuntimeExpr except a top-level aggregate.
	Eval Evaluator

	// Aggregate fields, set only when this RuntimeExpr compiled an
	// AggregateFunction at the top level of Compile.
	IsAggregate bool
	AggKind     function.AggregateKind
	AggArg      *RuntimeExpr // nil for COUNT(*)
	AggDistinct bool
}
