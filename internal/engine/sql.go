package engine

import (
	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/logicalplan"
	"github.com/kokes/colexec/internal/planner"
	"github.com/kokes/colexec/internal/sqlplan"
)

// Sql parses sql and either registers the table it declares (CREATE
// EXTERNAL TABLE, returning a nil plan) or plans the query it describes,
// pushing projections down before handing the plan back - mirroring
// original_source/src/exec.rs's ExecutionContext::sql, which does the
// same CREATE-TABLE-vs-query dispatch and returns a lazy, unexecuted
// plan for the query case rather than running it immediately.
func (c *ExecutionContext) Sql(sql string) (logicalplan.Plan, error) {
	stmt, err := sqlplan.Parse(sql)
	if err != nil {
		return nil, err
	}

	if ddl, ok := stmt.(sqlplan.CreateExternalTable); ok {
		if err := c.registerFromDDL(ddl); err != nil {
			return nil, err
		}
		return nil, nil
	}

	sel, ok := stmt.(sqlplan.Select)
	if !ok {
		return nil, errs.Planf("unsupported statement %T", stmt)
	}

	plan, err := planner.Build(sqlplan.Planner{}, sel, c)
	if err != nil {
		return nil, err
	}
	c.log.Debug("planned query", "sql", sql, "schema", plan.Schema())
	return plan, nil
}
