// Package physicalplan implements the pull-based operator pipeline that
// streams columnar batches through projection, filtering, aggregation and
// limiting, grounded on the teacher's stripe-by-stripe loop in
// query/query.go (Run/aggregate) re-expressed as an explicit Volcano-style
// operator tree rather than one large function.
package physicalplan

import (
	"context"

	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
)

// Operator is the pull interface every physical operator implements: Next
// returns (batch, true, nil) for each produced batch and (zero, false,
// nil) once exhausted, matching datasource.DataSource so
// DataSourceRelation can adapt one directly into the other.
type Operator interface {
	Schema() types.Schema
	Next(ctx context.Context) (record.Batch, bool, error)
}

// state tracks the Fresh/Streaming/Exhausted machine shared by every
// operator in this package (spec §4.7). Fresh and Streaming behave
// identically for every operator here except Aggregate, which only cares
// about the Streaming->Exhausted transition to know when to emit its one
// collected batch; the explicit field still documents the intended states.
type state uint8

const (
	stateFresh state = iota
	stateStreaming
	stateExhausted
)
