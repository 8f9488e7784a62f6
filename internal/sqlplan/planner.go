package sqlplan

import (
	"fmt"

	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/expr"
	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/logicalplan"
	"github.com/kokes/colexec/internal/planner"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// Planner translates a Statement returned by Parse into a logicalplan.Plan,
// implementing planner.Planner. CREATE EXTERNAL TABLE is not itself a
// query: Plan rejects it, since registering a table is the caller's (the
// engine's) job, done against the statement's fields directly rather than
// through the planner.Planner boundary.
type Planner struct{}

var _ planner.Planner = Planner{}

func (Planner) Plan(node planner.ASTNode, sp logicalplan.SchemaProvider) (logicalplan.Plan, error) {
	sel, ok := node.(Select)
	if !ok {
		return nil, errs.Planf("%T is not a query statement", node)
	}
	return planSelect(sel, sp)
}

func planSelect(sel Select, sp logicalplan.SchemaProvider) (logicalplan.Plan, error) {
	var input logicalplan.Plan
	schema := types.EmptySchema()
	if sel.From != "" {
		var err error
		schema, err = sp.TableSchema(sel.From)
		if err != nil {
			return nil, err
		}
		input = logicalplan.NewTableScan(sel.From, schema)
	} else {
		input = logicalplan.EmptyRelation{ProduceOneRow: true}
	}

	if sel.Where != nil {
		pred, err := translateExpr(sel.Where, schema, sp, false)
		if err != nil {
			return nil, err
		}
		input = logicalplan.Selection{Input: input, Predicate: pred}
	}

	var result logicalplan.Plan
	var err error
	if len(sel.GroupBy) > 0 || itemsContainAggregate(sel.Items) {
		result, err = planAggregate(sel, input, schema, sp)
	} else {
		result, err = planProjection(sel.Items, input, schema, sp)
	}
	if err != nil {
		return nil, err
	}

	if sel.Limit != nil {
		result = logicalplan.Limit{Input: result, N: *sel.Limit}
	}
	return result, nil
}

func itemsContainAggregate(items []SelectItem) bool {
	for _, it := range items {
		if it.Star {
			continue
		}
		if fc, ok := it.Expr.(sqlFuncCall); ok {
			if _, err := function.ParseAggregateKind(fc.Name); err == nil {
				return true
			}
		}
	}
	return false
}

func planProjection(items []SelectItem, input logicalplan.Plan, schema types.Schema, sp logicalplan.SchemaProvider) (logicalplan.Plan, error) {
	var exprs []expr.Expression
	var names []string
	var types_ []types.Dtype

	for _, item := range items {
		if item.Star {
			for i, f := range schema.Fields() {
				exprs = append(exprs, expr.Column{Index: i, Name: f.Name})
				names = append(names, f.Name)
				types_ = append(types_, f.Dtype)
			}
			continue
		}
		e, err := translateExpr(item.Expr, schema, sp, false)
		if err != nil {
			return nil, err
		}
		t, err := outputType(e, schema)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		names = append(names, aliasOrDefault(item, e.String()))
		types_ = append(types_, t)
	}

	return logicalplan.NewProjection(input, exprs, names, types_), nil
}

// planAggregate builds the Aggregate node (group columns followed by
// aggregate columns, per its own schema rule) and then a Projection that
// reorders/aliases those columns back into the order the SELECT list
// asked for. Every non-aggregate SELECT item in a GROUP BY query must be
// a plain column reference that also appears in GROUP BY - this reference
// grammar does not rewrite arbitrary expressions wrapped around an
// aggregate call (e.g. SUM(x) * 2), only a bare aggregate call or a bare
// group column per item.
func planAggregate(sel Select, input logicalplan.Plan, schema types.Schema, sp logicalplan.SchemaProvider) (logicalplan.Plan, error) {
	groupExprs := make([]expr.Expression, len(sel.GroupBy))
	for i, g := range sel.GroupBy {
		e, err := translateExpr(g, schema, sp, false)
		if err != nil {
			return nil, err
		}
		groupExprs[i] = e
	}

	var aggExprs []expr.Expression
	var outputExprs []expr.Expression
	var outputNames []string

	for _, item := range sel.Items {
		if item.Star {
			return nil, errs.Planf("SELECT * is not supported together with GROUP BY")
		}
		translated, err := translateExpr(item.Expr, schema, sp, true)
		if err != nil {
			return nil, err
		}
		if agg, ok := translated.(expr.AggregateFunction); ok {
			aggExprs = append(aggExprs, agg)
			pos := len(groupExprs) + len(aggExprs) - 1
			name := aliasOrDefault(item, agg.String())
			outputExprs = append(outputExprs, expr.Column{Index: pos, Name: name})
			outputNames = append(outputNames, name)
			continue
		}
		col, ok := translated.(expr.Column)
		if !ok {
			return nil, errs.Planf("non-aggregate SELECT item %v must be a plain column that appears in GROUP BY", item.Expr)
		}
		pos := -1
		for gi, g := range groupExprs {
			if gc, ok2 := g.(expr.Column); ok2 && gc.Index == col.Index {
				pos = gi
				break
			}
		}
		if pos < 0 {
			return nil, errs.Planf("column %q must appear in GROUP BY", col.Name)
		}
		name := aliasOrDefault(item, col.Name)
		outputExprs = append(outputExprs, expr.Column{Index: pos, Name: name})
		outputNames = append(outputNames, name)
	}

	aggNames := make([]string, len(groupExprs)+len(aggExprs))
	aggTypes := make([]types.Dtype, len(groupExprs)+len(aggExprs))
	for i, g := range groupExprs {
		t, err := outputType(g, schema)
		if err != nil {
			return nil, err
		}
		aggNames[i] = g.String()
		aggTypes[i] = t
	}
	for i, a := range aggExprs {
		aggNames[len(groupExprs)+i] = a.String()
		aggTypes[len(groupExprs)+i] = a.(expr.AggregateFunction).ReturnType
	}

	aggPlan := logicalplan.NewAggregate(input, groupExprs, aggExprs, aggNames, aggTypes)

	projTypes := make([]types.Dtype, len(outputExprs))
	for i, e := range outputExprs {
		projTypes[i] = aggPlan.Schema().Field(e.(expr.Column).Index).Dtype
	}
	return logicalplan.NewProjection(aggPlan, outputExprs, outputNames, projTypes), nil
}

func aliasOrDefault(item SelectItem, fallback string) string {
	if item.Alias != "" {
		return item.Alias
	}
	return fallback
}

// translateExpr lowers a parsed sqlExpr into a typed expr.Expression,
// resolving column names against schema and function names/return types
// against sp. allowAggregate permits a top-level aggregate function call;
// every recursive call passes false, matching invariant I4 (aggregates
// only at the top level of a compiled expression).
func translateExpr(e sqlExpr, schema types.Schema, sp logicalplan.SchemaProvider, allowAggregate bool) (expr.Expression, error) {
	switch node := e.(type) {
	case sqlLiteralInt:
		return expr.Literal{Value: value.NewNumericScalar(types.DtypeInt64, node.Value)}, nil

	case sqlLiteralFloat:
		return expr.Literal{Value: value.NewNumericScalar(types.DtypeFloat64, node.Value)}, nil

	case sqlLiteralString:
		return expr.Literal{Value: value.NewUtf8Scalar(node.Value)}, nil

	case sqlLiteralNull:
		return expr.Literal{Value: value.NewNullScalar(types.DtypeNull)}, nil

	case sqlColumn:
		idx, field, err := schema.LocateColumn(node.Name)
		if err != nil {
			return nil, err
		}
		return expr.Column{Index: idx, Name: field.Name}, nil

	case sqlBinary:
		left, err := translateExpr(node.Left, schema, sp, false)
		if err != nil {
			return nil, err
		}
		right, err := translateExpr(node.Right, schema, sp, false)
		if err != nil {
			return nil, err
		}
		op, err := translateOp(node.Op)
		if err != nil {
			return nil, err
		}
		return expr.BinaryExpr{Left: left, Op: op, Right: right}, nil

	case sqlCast:
		inner, err := translateExpr(node.Expr, schema, sp, false)
		if err != nil {
			return nil, err
		}
		dt, err := types.ParseDtype(node.TypeName)
		if err != nil {
			return nil, err
		}
		return expr.Cast{Expr: inner, Dtype: dt}, nil

	case sqlIsNull:
		inner, err := translateExpr(node.Expr, schema, sp, false)
		if err != nil {
			return nil, err
		}
		if node.Not {
			return expr.IsNotNull{Expr: inner}, nil
		}
		return expr.IsNull{Expr: inner}, nil

	case sqlFuncCall:
		return translateFuncCall(node, schema, sp, allowAggregate)

	default:
		return nil, fmt.Errorf("sqlplan: unknown expression node %T", e)
	}
}

func translateFuncCall(node sqlFuncCall, schema types.Schema, sp logicalplan.SchemaProvider, allowAggregate bool) (expr.Expression, error) {
	if kind, err := function.ParseAggregateKind(node.Name); err == nil {
		if !allowAggregate {
			return nil, errs.Planf("aggregate function %s is not allowed here", node.Name)
		}
		if node.Star {
			if kind != function.AggCount {
				return nil, errs.Planf("%s(*) is not supported, only COUNT(*)", node.Name)
			}
			return expr.AggregateFunction{Kind: kind, ReturnType: types.DtypeUint64}, nil
		}
		if len(node.Args) != 1 {
			return nil, errs.Planf("aggregate function %s takes exactly one argument", node.Name)
		}
		arg, err := translateExpr(node.Args[0], schema, sp, false)
		if err != nil {
			return nil, err
		}
		argType, err := outputType(arg, schema)
		if err != nil {
			return nil, err
		}
		retType, err := function.AggregateReturnType(kind, argType)
		if err != nil {
			return nil, err
		}
		return expr.AggregateFunction{Kind: kind, Arg: arg, ReturnType: retType}, nil
	}

	if node.Star {
		return nil, errs.Planf("%s(*) is only valid for COUNT", node.Name)
	}
	args := make([]expr.Expression, len(node.Args))
	argTypes := make([]types.Dtype, len(node.Args))
	for i, a := range node.Args {
		ae, err := translateExpr(a, schema, sp, false)
		if err != nil {
			return nil, err
		}
		t, err := outputType(ae, schema)
		if err != nil {
			return nil, err
		}
		args[i] = ae
		argTypes[i] = t
	}
	retType, err := sp.FunctionReturnType(node.Name, argTypes)
	if err != nil {
		return nil, err
	}
	return expr.ScalarFunction{Name: node.Name, Args: args, ReturnType: retType}, nil
}

func translateOp(t tokenType) (expr.BinaryOp, error) {
	switch t {
	case tokPlus:
		return expr.OpAdd, nil
	case tokMinus:
		return expr.OpSubtract, nil
	case tokStar:
		return expr.OpMultiply, nil
	case tokSlash:
		return expr.OpDivide, nil
	case tokPercent:
		return expr.OpModulo, nil
	case tokEq:
		return expr.OpEq, nil
	case tokNeq:
		return expr.OpNotEq, nil
	case tokLt:
		return expr.OpLt, nil
	case tokLte:
		return expr.OpLtEq, nil
	case tokGt:
		return expr.OpGt, nil
	case tokGte:
		return expr.OpGtEq, nil
	case tokAnd:
		return expr.OpAnd, nil
	case tokOr:
		return expr.OpOr, nil
	default:
		return 0, fmt.Errorf("sqlplan: unsupported binary operator token %d", t)
	}
}

// outputType derives e's static output type without touching a batch,
// mirroring expr.CompileScalar's per-node typing rule (comparisons and
// logical ops always return Boolean; arithmetic preserves the left
// operand's type; ScalarFunction/AggregateFunction already carry their
// return type, computed when the node was built).
func outputType(e expr.Expression, schema types.Schema) (types.Dtype, error) {
	switch node := e.(type) {
	case expr.Literal:
		return node.Value.Dtype, nil
	case expr.Column:
		if node.Index < 0 || node.Index >= schema.Len() {
			return types.DtypeInvalid, fmt.Errorf("%w: column index %d out of range", types.ErrUnknownColumn, node.Index)
		}
		return schema.Field(node.Index).Dtype, nil
	case expr.Cast:
		return node.Dtype, nil
	case expr.IsNull:
		return types.DtypeBoolean, nil
	case expr.IsNotNull:
		return types.DtypeBoolean, nil
	case expr.BinaryExpr:
		if node.Op.IsComparison() || node.Op.IsLogical() {
			return types.DtypeBoolean, nil
		}
		return outputType(node.Left, schema)
	case expr.ScalarFunction:
		return node.ReturnType, nil
	case expr.AggregateFunction:
		return node.ReturnType, nil
	default:
		return types.DtypeInvalid, fmt.Errorf("sqlplan: cannot infer type of %T", e)
	}
}
