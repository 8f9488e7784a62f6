package physicalplan

import (
	"context"

	"github.com/kokes/colexec/internal/datasource"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// DataSourceRelation is the leaf operator: it adapts a datasource.DataSource
// directly into the Operator pull interface. projection is the set of
// column indices push-down determined the plan above actually needs; the
// output batch keeps every field of the source's schema (so Column.Index
// values resolved elsewhere in the tree stay valid), but any field not in
// projection is replaced with an all-NULL column rather than carrying
// real decoded data - projection prunes work, not shape.
type DataSourceRelation struct {
	src        datasource.DataSource
	projection []int // nil means all columns
	required   map[int]bool
	schema     types.Schema
	st         state
}

func NewDataSourceRelation(src datasource.DataSource, projection []int) *DataSourceRelation {
	var required map[int]bool
	if projection != nil {
		required = make(map[int]bool, len(projection))
		for _, idx := range projection {
			required[idx] = true
		}
	}
	return &DataSourceRelation{src: src, projection: projection, required: required, schema: src.Schema()}
}

func (o *DataSourceRelation) Schema() types.Schema { return o.schema }

func (o *DataSourceRelation) Next(ctx context.Context) (record.Batch, bool, error) {
	if o.st == stateFresh {
		o.st = stateStreaming
	}
	if o.st == stateExhausted {
		return record.Batch{}, false, nil
	}
	batch, ok, err := o.src.Next(ctx)
	if err != nil {
		return record.Batch{}, false, err
	}
	if !ok {
		o.st = stateExhausted
		return record.Batch{}, false, nil
	}
	if o.projection == nil {
		return batch, true, nil
	}

	cols := make([]value.Value, o.schema.Len())
	for i := 0; i < o.schema.Len(); i++ {
		if o.required[i] {
			cols[i] = batch.Column(i)
			continue
		}
		cols[i] = value.Materialize(value.NewScalar(value.NewNullScalar(o.schema.Field(i).Dtype)), batch.NumRows())
	}
	pruned, err := record.New(o.schema, cols)
	if err != nil {
		return record.Batch{}, false, err
	}
	return pruned, true, nil
}
