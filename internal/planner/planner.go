// Package planner defines the boundary between a SQL frontend (an AST
// producer, e.g. internal/sqlplan) and the core's logical plan: a Planner
// translates an opaque AST node into a logicalplan.Plan against a
// SchemaProvider, exactly the "SQL planner interface" boundary of spec §6.
package planner

import "github.com/kokes/colexec/internal/logicalplan"

// ASTNode is deliberately opaque here - the core does not know or care
// about any concrete grammar, only that some Planner implementation can
// turn a node into a LogicalPlan. internal/sqlplan supplies both sides of
// this interface for the grammar subset spec §6 names.
type ASTNode interface{}

// Planner lowers a single parsed statement into a logical plan, resolving
// table and function references through sp.
type Planner interface {
	Plan(node ASTNode, sp logicalplan.SchemaProvider) (logicalplan.Plan, error)
}

// Build runs p over node and then applies projection push-down against
// the resulting plan's own schema - the bridge step spec §4.5 describes as
// a pass run once between logical planning and physical-plan construction.
func Build(p Planner, node ASTNode, sp logicalplan.SchemaProvider) (logicalplan.Plan, error) {
	plan, err := p.Plan(node, sp)
	if err != nil {
		return nil, err
	}
	return logicalplan.PushDownProjection(plan, nil), nil
}
