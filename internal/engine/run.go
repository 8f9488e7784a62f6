package engine

import (
	"context"
	"io"

	"github.com/kokes/colexec/internal/physicalplan"
)

// Run is the one-shot convenience entry point most embedders want: parse
// sql, and either register the table it declares (CREATE EXTERNAL TABLE,
// yielding ResultUnit) or plan and immediately drain it as an Interactive
// query, writing rows to w. Callers that need to inspect or reuse the
// logical plan before choosing a sink (Show's row cap, Write's CSV file
// or string) should call Sql and Execute directly instead, the way
// original_source/src/exec.rs's show/write_csv/write_string helpers sit
// on top of its own sql()/execute() split.
func (c *ExecutionContext) Run(ctx context.Context, sql string, w io.Writer) (Result, error) {
	plan, err := c.Sql(sql)
	if err != nil {
		return Result{}, err
	}
	if plan == nil {
		return Result{Kind: ResultUnit}, nil
	}
	return c.Execute(ctx, physicalplan.Interactive{LogicalRoot: plan}, w)
}
