package physicalplan

import (
	"context"

	"github.com/kokes/colexec/internal/expr"
	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// Aggregate consumes every batch its child produces, bucketing rows by
// their group-expression values and folding each aggregate expression into
// a per-group function.GroupState, then emits exactly one output batch -
// one row per distinct group, in first-seen order - once the child is
// exhausted. This is the Collecting sub-state spec §4.7 carves out of
// Streaming: Next keeps pulling from the child internally until it sees
// end-of-stream before it ever returns a batch of its own.
type Aggregate struct {
	child      Operator
	groupExprs []expr.RuntimeExpr
	aggExprs   []expr.RuntimeExpr
	schema     types.Schema
	st         state

	groups    map[string]*aggGroup
	groupKeys []string // first-seen order
}

type aggGroup struct {
	keyScalars []value.Scalar
	states     []*function.GroupState
}

func NewAggregate(child Operator, groupExprs, aggExprs []expr.RuntimeExpr, names []string) *Aggregate {
	fields := make([]types.Field, len(groupExprs)+len(aggExprs))
	for i, e := range groupExprs {
		fields[i] = types.Field{Name: names[i], Dtype: e.OutputType, Nullable: true}
	}
	for i, e := range aggExprs {
		fields[len(groupExprs)+i] = types.Field{Name: names[len(groupExprs)+i], Dtype: e.OutputType, Nullable: true}
	}
	return &Aggregate{
		child:      child,
		groupExprs: groupExprs,
		aggExprs:   aggExprs,
		schema:     types.NewSchema(fields),
		groups:     make(map[string]*aggGroup),
	}
}

func (o *Aggregate) Schema() types.Schema { return o.schema }

func (o *Aggregate) Next(ctx context.Context) (record.Batch, bool, error) {
	if o.st == stateExhausted {
		return record.Batch{}, false, nil
	}
	o.st = stateStreaming

	for {
		batch, ok, err := o.child.Next(ctx)
		if err != nil {
			return record.Batch{}, false, err
		}
		if !ok {
			break
		}
		if err := o.fold(batch); err != nil {
			return record.Batch{}, false, err
		}
	}
	o.st = stateExhausted

	out, err := o.finish()
	if err != nil {
		return record.Batch{}, false, err
	}
	return out, true, nil
}

// fold evaluates every group and aggregate expression against batch and
// updates (or creates) the GroupState bucket each row belongs to.
func (o *Aggregate) fold(batch record.Batch) error {
	groupVals := make([]value.Value, len(o.groupExprs))
	for i, e := range o.groupExprs {
		v, err := e.Eval(batch)
		if err != nil {
			return err
		}
		groupVals[i] = v
	}
	argVals := make([]value.Value, len(o.aggExprs))
	for i, e := range o.aggExprs {
		if e.AggArg == nil {
			continue // COUNT(*), no argument column to evaluate
		}
		v, err := e.AggArg.Eval(batch)
		if err != nil {
			return err
		}
		argVals[i] = v
	}

	for row := 0; row < batch.NumRows(); row++ {
		key := ""
		for _, v := range groupVals {
			key += function.GroupKey(v, row) + "\x1f"
		}
		g, seen := o.groups[key]
		if !seen {
			keyScalars := make([]value.Scalar, len(groupVals))
			for i, v := range groupVals {
				keyScalars[i] = function.ScalarAt(v, row)
			}
			states := make([]*function.GroupState, len(o.aggExprs))
			for i, e := range o.aggExprs {
				argType := types.DtypeInvalid
				if e.AggArg != nil {
					argType = e.AggArg.OutputType
				}
				states[i] = function.NewGroupState(e.AggKind, argType)
			}
			g = &aggGroup{keyScalars: keyScalars, states: states}
			o.groups[key] = g
			o.groupKeys = append(o.groupKeys, key)
		}
		for i, e := range o.aggExprs {
			if e.AggArg == nil {
				g.states[i].Update(value.Scalar{})
				continue
			}
			g.states[i].Update(function.ScalarAt(argVals[i], row))
		}
	}
	return nil
}

// finish resolves every group's GroupStates into a single output batch,
// one row per group in first-seen order. A group-less aggregate
// (len(groupExprs)==0) always emits exactly one row, even over empty
// input: if fold never saw a row, finish fabricates one group from fresh
// GroupStates here, so COUNT(*) over an empty table still yields 0
// rather than no rows at all.
func (o *Aggregate) finish() (record.Batch, error) {
	if len(o.groupExprs) == 0 && len(o.groupKeys) == 0 {
		states := make([]*function.GroupState, len(o.aggExprs))
		for i, e := range o.aggExprs {
			argType := types.DtypeInvalid
			if e.AggArg != nil {
				argType = e.AggArg.OutputType
			}
			states[i] = function.NewGroupState(e.AggKind, argType)
		}
		o.groups[""] = &aggGroup{states: states}
		o.groupKeys = append(o.groupKeys, "")
	}

	nGroups := len(o.groupKeys)
	nCols := len(o.groupExprs) + len(o.aggExprs)
	cols := make([]value.Value, nCols)

	for gi := range o.groupExprs {
		scalars := make([]value.Scalar, nGroups)
		for ri, key := range o.groupKeys {
			scalars[ri] = o.groups[key].keyScalars[gi]
		}
		col, err := function.ScalarColumn(o.groupExprs[gi].OutputType, scalars)
		if err != nil {
			return record.Batch{}, err
		}
		cols[gi] = col
	}
	for ai := range o.aggExprs {
		scalars := make([]value.Scalar, nGroups)
		for ri, key := range o.groupKeys {
			s, err := o.groups[key].states[ai].Finish()
			if err != nil {
				return record.Batch{}, err
			}
			scalars[ri] = s
		}
		col, err := function.ScalarColumn(o.aggExprs[ai].OutputType, scalars)
		if err != nil {
			return record.Batch{}, err
		}
		cols[len(o.groupExprs)+ai] = col
	}

	return record.New(o.schema, cols)
}
