package physicalplan

import (
	"context"

	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
)

// Limit passes through at most N rows total, truncating the batch that
// crosses the boundary and then reporting exhaustion on every subsequent
// call without pulling from its child again.
type Limit struct {
	child     Operator
	remaining int
	st        state
}

func NewLimit(child Operator, n int) *Limit {
	return &Limit{child: child, remaining: n}
}

func (o *Limit) Schema() types.Schema { return o.child.Schema() }

func (o *Limit) Next(ctx context.Context) (record.Batch, bool, error) {
	if o.st == stateExhausted || o.remaining <= 0 {
		o.st = stateExhausted
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

	if batch.NumRows() > o.remaining {
		batch, err = batch.Slice(o.remaining)
		if err != nil {
			return record.Batch{}, false, err
		}
	}
	o.remaining -= batch.NumRows()
	if o.remaining <= 0 {
		o.st = stateExhausted
	}
	return batch, true, nil
}
