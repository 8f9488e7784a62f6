package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kokes/colexec/internal/datasource"
	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/logicalplan"
	"github.com/kokes/colexec/internal/physicalplan"
	"github.com/kokes/colexec/internal/sqlplan"
)

// ResultKind distinguishes Execute's three possible outcomes, mirroring
// original_source/src/exec.rs's ExecutionResult enum (Unit, Count, Str).
// Execute itself never produces ResultUnit; Run returns it for a DDL
// statement, which registers a table and returns nothing meaningful.
type ResultKind uint8

const (
	ResultUnit ResultKind = iota
	ResultCount
	ResultString
)

// Result is Execute's return value: either a row count (Interactive,
// Show, Write to a CSV file) or a rendered string (Write to a string).
type Result struct {
	Kind  ResultKind
	Count int
	Text  string
}

// Execute runs plan's root against this context's registered tables,
// opening a fresh datasource.DataSource per table (each is a single-pass
// reader, so every query re-reads its inputs from scratch), and drains it
// according to plan's sink. w receives Interactive and Show output; Write
// ignores w and instead opens its own Filename (WriteCSV) or accumulates
// an in-memory string (WriteString).
//
// A Remote config always fails with ErrRemoteUnsupported, matching
// original_source/src/exec.rs's execute_remote, whose own body is an
// unconditional error after the move to Arrow left it unimplemented.
func (c *ExecutionContext) Execute(ctx context.Context, plan physicalplan.PhysicalPlan, w io.Writer) (Result, error) {
	if c.config.Remote {
		return Result{}, ErrRemoteUnsupported
	}

	op, err := c.build(plan.Root())
	if err != nil {
		return Result{}, err
	}

	if wr, ok := plan.(physicalplan.Write); ok {
		return c.executeWrite(ctx, wr, op)
	}

	n, err := physicalplan.Drain(ctx, w, plan, op)
	if err != nil {
		return Result{}, err
	}
	c.log.Info("executed query", "rows", n)
	return Result{Kind: ResultCount, Count: n}, nil
}

func (c *ExecutionContext) executeWrite(ctx context.Context, wr physicalplan.Write, op physicalplan.Operator) (Result, error) {
	if wr.Kind == physicalplan.WriteString {
		text, err := physicalplan.DrainString(ctx, op)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultString, Text: text}, nil
	}

	f, err := os.Create(wr.Filename)
	if err != nil {
		return Result{}, errs.Iof("creating output file %s: %w", wr.Filename, err)
	}
	defer f.Close()
	n, err := physicalplan.Drain(ctx, f, wr, op)
	if err != nil {
		return Result{}, err
	}
	c.log.Info("wrote query output", "file", wr.Filename, "rows", n)
	return Result{Kind: ResultCount, Count: n}, nil
}

func (c *ExecutionContext) build(plan logicalplan.Plan) (physicalplan.Operator, error) {
	sources, err := c.dataSources()
	if err != nil {
		return nil, err
	}
	return physicalplan.Build(plan, c.functions, sources)
}

func (c *ExecutionContext) dataSources() (map[string]datasource.DataSource, error) {
	sources := make(map[string]datasource.DataSource, len(c.tables))
	for name, def := range c.tables {
		src, err := openTable(def)
		if err != nil {
			return nil, err
		}
		sources[name] = src
	}
	return sources, nil
}

func openTable(def tableDef) (datasource.DataSource, error) {
	switch def.format {
	case sqlplan.StorageCSV:
		return datasource.NewCSVSource(def.location, def.schema, def.hasHeader)
	case sqlplan.StorageNdJSON:
		return datasource.NewNdJsonSource(def.location, def.schema)
	case sqlplan.StorageParquet:
		return datasource.NewParquetSource(def.schema), nil
	default:
		return nil, fmt.Errorf("engine: unknown storage format %v", def.format)
	}
}
