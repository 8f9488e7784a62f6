package physicalplan

import (
	"context"

	"github.com/kokes/colexec/internal/expr"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// Projection evaluates each compiled expression against the input batch
// and assembles a new RecordBatch. The output schema is computed once at
// construction from the expressions' static output types.
type Projection struct {
	child  Operator
	exprs  []expr.RuntimeExpr
	schema types.Schema
	st     state
}

func NewProjection(child Operator, exprs []expr.RuntimeExpr, names []string) *Projection {
	fields := make([]types.Field, len(exprs))
	for i, e := range exprs {
		fields[i] = types.Field{Name: names[i], Dtype: e.OutputType, Nullable: true}
	}
	return &Projection{child: child, exprs: exprs, schema: types.NewSchema(fields)}
}

func (o *Projection) Schema() types.Schema { return o.schema }

func (o *Projection) Next(ctx context.Context) (record.Batch, bool, error) {
	if o.st == stateExhausted {
		return record.Batch{}, false, nil
	}
	o.st = stateStreaming
	in, ok, err := o.child.Next(ctx)
	if err != nil {
		return record.Batch{}, false, err
	}
	if !ok {
		o.st = stateExhausted
		return record.Batch{}, false, nil
	}

	cols := make([]value.Value, len(o.exprs))
	for i, e := range o.exprs {
		v, err := e.Eval(in)
		if err != nil {
			return record.Batch{}, false, err
		}
		cols[i] = value.Materialize(v, in.NumRows())
	}
	out, err := record.New(o.schema, cols)
	if err != nil {
		return record.Batch{}, false, err
	}
	return out, true, nil
}
