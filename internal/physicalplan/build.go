package physicalplan

import (
	"strings"

	"github.com/kokes/colexec/internal/datasource"
	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/expr"
	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/logicalplan"
)

// Build translates a logical plan tree into an executable Operator tree.
// tables resolves TableScan's table name to the DataSource registered for
// it (the core's registries own this mapping - see internal/engine);
// CsvFile/NdJsonFile/ParquetFile instead construct their DataSource
// directly from the path and schema carried in the plan node.
//
// A plan rooted in logicalplan.Sort has no physical counterpart (spec
// §4.7/§9): Sort is parseable and compilable but not executable, so
// Build reports a PlanError rather than silently dropping the ordering.
func Build(plan logicalplan.Plan, reg *function.Registry, tables map[string]datasource.DataSource) (Operator, error) {
	switch p := plan.(type) {
	case logicalplan.EmptyRelation:
		return NewEmptyRelation(p.ProduceOneRow), nil

	case logicalplan.TableScan:
		src, ok := tables[p.TableName]
		if !ok {
			src, ok = tables[strings.ToLower(p.TableName)]
		}
		if !ok {
			return nil, errs.Planf("unknown table: %s", p.TableName)
		}
		return NewDataSourceRelation(src, p.Projection), nil

	case logicalplan.CsvFile:
		src, err := datasource.NewCSVSource(p.Path, p.FullSchema, p.HasHeader)
		if err != nil {
			return nil, err
		}
		return NewDataSourceRelation(src, p.Projection), nil

	case logicalplan.NdJsonFile:
		src, err := datasource.NewNdJsonSource(p.Path, p.FullSchema)
		if err != nil {
			return nil, err
		}
		return NewDataSourceRelation(src, p.Projection), nil

	case logicalplan.ParquetFile:
		src := datasource.NewParquetSource(p.FullSchema)
		return NewDataSourceRelation(src, p.Projection), nil

	case logicalplan.Projection:
		child, err := Build(p.Input, reg, tables)
		if err != nil {
			return nil, err
		}
		inputSchema := p.Input.Schema()
		exprs := make([]expr.RuntimeExpr, len(p.Exprs))
		names := make([]string, len(p.Exprs))
		fields := p.Schema().Fields()
		for i, e := range p.Exprs {
			compiled, err := expr.CompileScalar(e, inputSchema, reg)
			if err != nil {
				return nil, errs.New(errs.Plan, err)
			}
			exprs[i] = compiled
			names[i] = fields[i].Name
		}
		return NewProjection(child, exprs, names), nil

	case logicalplan.Selection:
		child, err := Build(p.Input, reg, tables)
		if err != nil {
			return nil, err
		}
		predicate, err := expr.CompileScalar(p.Predicate, p.Input.Schema(), reg)
		if err != nil {
			return nil, errs.New(errs.Plan, err)
		}
		return NewFilter(child, predicate)

	case logicalplan.Aggregate:
		child, err := Build(p.Input, reg, tables)
		if err != nil {
			return nil, err
		}
		inputSchema := p.Input.Schema()
		groupExprs := make([]expr.RuntimeExpr, len(p.GroupExprs))
		for i, e := range p.GroupExprs {
			compiled, err := expr.CompileScalar(e, inputSchema, reg)
			if err != nil {
				return nil, errs.New(errs.Plan, err)
			}
			groupExprs[i] = compiled
		}
		aggExprs := make([]expr.RuntimeExpr, len(p.AggExprs))
		for i, e := range p.AggExprs {
			compiled, err := expr.Compile(e, inputSchema, reg)
			if err != nil {
				return nil, errs.New(errs.Plan, err)
			}
			aggExprs[i] = compiled
		}
		names := make([]string, len(p.Schema().Fields()))
		for i, f := range p.Schema().Fields() {
			names[i] = f.Name
		}
		return NewAggregate(child, groupExprs, aggExprs, names), nil

	case logicalplan.Sort:
		return nil, errs.Planf("sort has no physical operator in this core: %s", p)

	case logicalplan.Limit:
		child, err := Build(p.Input, reg, tables)
		if err != nil {
			return nil, err
		}
		return NewLimit(child, p.N), nil

	default:
		return nil, errs.Planf("unknown logical plan node %T", plan)
	}
}
