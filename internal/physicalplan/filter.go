package physicalplan

import (
	"context"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/expr"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
)

// Filter evaluates Predicate against each input batch and keeps only the
// rows where it is true; a null predicate value is treated as false. A
// predicate that compiles to a constant Scalar (e.g. WHERE true) passes
// every row through or none, rather than indexing into a column that
// doesn't exist. Output schema equals the child's schema; empty batches
// are still yielded with their schema intact.
type Filter struct {
	child     Operator
	predicate expr.RuntimeExpr
	st        state
}

func NewFilter(child Operator, predicate expr.RuntimeExpr) (*Filter, error) {
	if predicate.OutputType != types.DtypeBoolean {
		return nil, errs.Planf("filter predicate must return Boolean, got %s", predicate.OutputType)
	}
	return &Filter{child: child, predicate: predicate}, nil
}

func (o *Filter) Schema() types.Schema { return o.child.Schema() }

func (o *Filter) Next(ctx context.Context) (record.Batch, bool, error) {
	if o.st == stateExhausted {
		return record.Batch{}, false, nil
	}
	o.st = stateStreaming
	batch, ok, err := o.child.Next(ctx)
	if err != nil {
		return record.Batch{}, false, err
	}
	if !ok {
		o.st = stateExhausted
		return record.Batch{}, false, nil
	}

	v, err := o.predicate.Eval(batch)
	if err != nil {
		return record.Batch{}, false, err
	}
	if v.IsScalar() {
		s := v.AsScalar()
		if s.Valid && s.Bool() {
			return batch, true, nil
		}
		out, err := batch.Take(nil)
		if err != nil {
			return record.Batch{}, false, err
		}
		return out, true, nil
	}
	mask := v.Column().(*arrow.BoolArray).Truths()
	out, err := batch.Take(mask.Indices())
	if err != nil {
		return record.Batch{}, false, err
	}
	return out, true, nil
}
