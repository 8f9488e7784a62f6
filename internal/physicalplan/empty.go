package physicalplan

import (
	"context"

	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
)

// EmptyRelation yields either zero or one zero-column batch, then
// exhaustion - the physical counterpart of logicalplan.EmptyRelation,
// used for statements with no FROM clause (e.g. SELECT 1).
type EmptyRelation struct {
	produceOneRow bool
	st            state
}

func NewEmptyRelation(produceOneRow bool) *EmptyRelation {
	return &EmptyRelation{produceOneRow: produceOneRow}
}

func (EmptyRelation) Schema() types.Schema { return types.EmptySchema() }

func (o *EmptyRelation) Next(ctx context.Context) (record.Batch, bool, error) {
	if o.st == stateExhausted {
		return record.Batch{}, false, nil
	}
	o.st = stateExhausted
	if !o.produceOneRow {
		return record.Batch{}, false, nil
	}
	return record.NewEmpty(1), true, nil
}
