package sqlplan

import (
	"testing"

	"github.com/kokes/colexec/internal/expr"
	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/logicalplan"
	"github.com/kokes/colexec/internal/types"
)

// fakeSchemaProvider backs tests with a fixed table and the built-in
// scalar function registry, mirroring what internal/engine's real
// SchemaProvider implementation does against its registries.
type fakeSchemaProvider struct {
	tables map[string]types.Schema
	reg    *function.Registry
}

func newFakeSchemaProvider() *fakeSchemaProvider {
	return &fakeSchemaProvider{
		tables: map[string]types.Schema{
			"cities": types.NewSchema([]types.Field{
				{Name: "city", Dtype: types.DtypeUtf8, Nullable: true},
				{Name: "population", Dtype: types.DtypeInt64, Nullable: true},
			}),
		},
		reg: function.NewRegistry(),
	}
}

func (f *fakeSchemaProvider) TableSchema(name string) (types.Schema, error) {
	s, ok := f.tables[name]
	if !ok {
		return types.Schema{}, errUnknownTable(name)
	}
	return s, nil
}

func (f *fakeSchemaProvider) FunctionReturnType(fn string, argTypes []types.Dtype) (types.Dtype, error) {
	impl, err := f.reg.Lookup(fn)
	if err != nil {
		return types.DtypeInvalid, err
	}
	return impl.ReturnType(argTypes)
}

type errUnknownTable string

func (e errUnknownTable) Error() string { return "unknown table: " + string(e) }

func planFromSQL(t *testing.T, sql string) logicalplan.Plan {
	t.Helper()
	stmt, err := Parse(sql)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	plan, err := Planner{}.Plan(stmt, newFakeSchemaProvider())
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	return plan
}

func TestPlanSimpleProjectionAndFilter(t *testing.T) {
	plan := planFromSQL(t, "SELECT city FROM cities WHERE population > 1000")
	proj, ok := plan.(logicalplan.Projection)
	if !ok {
		t.Fatalf("expected a Projection at the root, got %T", plan)
	}
	if proj.Schema().Len() != 1 || proj.Schema().Field(0).Name != "city" {
		t.Fatalf("unexpected projection schema: %s", proj.Schema())
	}
	sel, ok := proj.Input.(logicalplan.Selection)
	if !ok {
		t.Fatalf("expected a Selection below the projection, got %T", proj.Input)
	}
	if _, ok := sel.Input.(logicalplan.TableScan); !ok {
		t.Fatalf("expected a TableScan below the selection, got %T", sel.Input)
	}
}

func TestPlanAggregateSumGroupBy(t *testing.T) {
	plan := planFromSQL(t, "SELECT city, SUM(population) AS total FROM cities GROUP BY city")
	proj, ok := plan.(logicalplan.Projection)
	if !ok {
		t.Fatalf("expected a Projection at the root, got %T", plan)
	}
	if proj.Schema().Len() != 2 || proj.Schema().Field(1).Name != "total" {
		t.Fatalf("unexpected projection schema: %s", proj.Schema())
	}
	agg, ok := proj.Input.(logicalplan.Aggregate)
	if !ok {
		t.Fatalf("expected an Aggregate below the projection, got %T", proj.Input)
	}
	if len(agg.GroupExprs) != 1 || len(agg.AggExprs) != 1 {
		t.Fatalf("unexpected aggregate shape: %+v", agg)
	}
	if agg.Schema().Field(1).Dtype != types.DtypeInt64 {
		t.Fatalf("expected SUM(population) to preserve int64, got %s", agg.Schema().Field(1).Dtype)
	}
}

func TestPlanCountStarWithoutExplicitGroupBy(t *testing.T) {
	plan := planFromSQL(t, "SELECT COUNT(*) AS n FROM cities")
	proj := plan.(logicalplan.Projection)
	agg := proj.Input.(logicalplan.Aggregate)
	if len(agg.GroupExprs) != 0 {
		t.Fatalf("expected no group expressions for an implicit single group, got %d", len(agg.GroupExprs))
	}
	if agg.Schema().Field(0).Dtype != types.DtypeUint64 {
		t.Fatalf("expected COUNT(*) to return uint64, got %s", agg.Schema().Field(0).Dtype)
	}
}

func TestPlanLimitWrapsRoot(t *testing.T) {
	plan := planFromSQL(t, "SELECT city FROM cities LIMIT 3")
	lim, ok := plan.(logicalplan.Limit)
	if !ok || lim.N != 3 {
		t.Fatalf("expected Limit{N: 3} at the root, got %+v", plan)
	}
}

func TestPlanScalarFunctionCall(t *testing.T) {
	plan := planFromSQL(t, "SELECT sqrt(CAST(population AS float64)) FROM cities")
	proj := plan.(logicalplan.Projection)
	if proj.Schema().Field(0).Dtype != types.DtypeFloat64 {
		t.Fatalf("expected sqrt(...) to return float64, got %s", proj.Schema().Field(0).Dtype)
	}
	fn, ok := proj.Exprs[0].(expr.ScalarFunction)
	if !ok || fn.Name != "sqrt" {
		t.Fatalf("expected a sqrt ScalarFunction, got %+v", proj.Exprs[0])
	}
}

func TestPlanNoFromProducesEmptyRelation(t *testing.T) {
	plan := planFromSQL(t, "SELECT 1")
	proj := plan.(logicalplan.Projection)
	if _, ok := proj.Input.(logicalplan.EmptyRelation); !ok {
		t.Fatalf("expected EmptyRelation below the projection, got %T", proj.Input)
	}
}

func TestPlanAggregateRejectsUngroupedColumn(t *testing.T) {
	stmt, err := Parse("SELECT city, population FROM cities GROUP BY city")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, err := (Planner{}).Plan(stmt, newFakeSchemaProvider()); err == nil {
		t.Fatal("expected an error for a non-aggregated, non-grouped column")
	}
}
