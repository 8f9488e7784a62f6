// Package logicalplan defines the tree of relational operators a SQL
// statement is translated into before physical execution, grounded on the
// teacher's query.Query struct (src/query/query.go) re-expressed as an
// explicit operator tree the way a DataFusion-style planner builds one,
// rather than the teacher's flat Select/Filter/Aggregate/Order/Limit
// fields threaded through a single Run().
package logicalplan

import (
	"fmt"
	"strings"

	"github.com/kokes/colexec/internal/expr"
	"github.com/kokes/colexec/internal/types"
)

// Plan is a node in the logical plan tree. The set of variants is closed:
// EmptyRelation, TableScan, CsvFile, NdJsonFile, ParquetFile, Projection,
// Selection, Aggregate, Sort, Limit.
type Plan interface {
	fmt.Stringer
	Schema() types.Schema
	Children() []Plan
	isPlan()
}

// EmptyRelation produces exactly zero or one row with no columns, used for
// statements with no FROM clause (e.g. SELECT 1).
type EmptyRelation struct {
	ProduceOneRow bool
}

func (EmptyRelation) isPlan()              {}
func (EmptyRelation) Schema() types.Schema  { return types.EmptySchema() }
func (EmptyRelation) Children() []Plan      { return nil }
func (r EmptyRelation) String() string      { return "EmptyRelation" }

// Scan is shared by every leaf plan that reads rows from a named source:
// TableScan reads a registered table, CsvFile/NdJsonFile/ParquetFile read
// directly from a file path. Projection is the set of column indices (into
// FullSchema) push-down has determined are actually read; nil means "all
// columns". Schema() always reports FullSchema, projected or not, so every
// Column.Index resolved anywhere in the plan tree against this scan's
// original field list stays valid after push-down narrows what is
// physically decoded - physicalplan fills the columns Projection omits
// with an all-NULL column of the right width and dtype instead of
// dropping and renumbering them.
type scan struct {
	FullSchema types.Schema
	Projection []int
}

func (s scan) Schema() types.Schema { return s.FullSchema }

func (scan) Children() []Plan { return nil }

// TableScan reads all rows of a registered table.
type TableScan struct {
	scan
	TableName string
}

// NewTableScan builds an unprojected scan of the table registered under
// tableName, with the given full schema.
func NewTableScan(tableName string, fullSchema types.Schema) TableScan {
	return TableScan{scan: scan{FullSchema: fullSchema}, TableName: tableName}
}

func (TableScan) isPlan() {}
func (t TableScan) String() string {
	return fmt.Sprintf("TableScan: %s projection=%s", t.TableName, projString(t.Projection))
}

// CsvFile reads rows directly from a CSV file path.
type CsvFile struct {
	scan
	Path      string
	HasHeader bool
}

// NewCsvFile builds an unprojected scan of the CSV file at path.
func NewCsvFile(path string, fullSchema types.Schema, hasHeader bool) CsvFile {
	return CsvFile{scan: scan{FullSchema: fullSchema}, Path: path, HasHeader: hasHeader}
}

func (CsvFile) isPlan() {}
func (c CsvFile) String() string {
	return fmt.Sprintf("CsvFile: %s projection=%s", c.Path, projString(c.Projection))
}

// NdJsonFile reads rows directly from a newline-delimited JSON file path.
type NdJsonFile struct {
	scan
	Path string
}

// NewNdJsonFile builds an unprojected scan of the NDJSON file at path.
func NewNdJsonFile(path string, fullSchema types.Schema) NdJsonFile {
	return NdJsonFile{scan: scan{FullSchema: fullSchema}, Path: path}
}

func (NdJsonFile) isPlan() {}
func (j NdJsonFile) String() string {
	return fmt.Sprintf("NdJsonFile: %s projection=%s", j.Path, projString(j.Projection))
}

// ParquetFile reads rows directly from a Parquet file path. The core has
// no Parquet decoder; this variant exists so plans can be built and fail
// at the data source boundary with a typed IoError rather than failing to
// parse at all.
type ParquetFile struct {
	scan
	Path string
}

// NewParquetFile builds an unprojected scan of the Parquet file at path.
func NewParquetFile(path string, fullSchema types.Schema) ParquetFile {
	return ParquetFile{scan: scan{FullSchema: fullSchema}, Path: path}
}

func (ParquetFile) isPlan() {}
func (p ParquetFile) String() string {
	return fmt.Sprintf("ParquetFile: %s projection=%s", p.Path, projString(p.Projection))
}

// Projection evaluates Exprs against each input row and emits a new batch
// with the resulting columns.
type Projection struct {
	Input  Plan
	Exprs  []expr.Expression
	schema types.Schema
}

// NewProjection derives Projection's schema once from Exprs' static
// output types, per §4.4's "schema is derived once" rule. names supplies
// the field name for each expression (e.g. "sqrt(id)" or an alias).
func NewProjection(input Plan, exprs []expr.Expression, names []string, types_ []types.Dtype) Projection {
	fields := make([]types.Field, len(exprs))
	for i := range exprs {
		fields[i] = types.Field{Name: names[i], Dtype: types_[i], Nullable: true}
	}
	return Projection{Input: input, Exprs: exprs, schema: types.NewSchema(fields)}
}

func (Projection) isPlan()             {}
func (p Projection) Schema() types.Schema { return p.schema }
func (p Projection) Children() []Plan  { return []Plan{p.Input} }
func (p Projection) String() string {
	parts := make([]string, len(p.Exprs))
	for i, e := range p.Exprs {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Projection: %s", strings.Join(parts, ", "))
}

// Selection filters Input's rows by Predicate, which must have Boolean
// output type. Schema is unchanged from Input.
type Selection struct {
	Input     Plan
	Predicate expr.Expression
}

func (Selection) isPlan()               {}
func (s Selection) Schema() types.Schema { return s.Input.Schema() }
func (s Selection) Children() []Plan    { return []Plan{s.Input} }
func (s Selection) String() string      { return fmt.Sprintf("Selection: %s", s.Predicate) }

// Aggregate groups Input's rows by GroupExprs and folds AggExprs per group.
// Output schema is the group columns followed by the aggregate columns, in
// that declared order.
type Aggregate struct {
	Input      Plan
	GroupExprs []expr.Expression
	AggExprs   []expr.Expression
	schema     types.Schema
}

func NewAggregate(input Plan, groupExprs, aggExprs []expr.Expression, names []string, types_ []types.Dtype) Aggregate {
	fields := make([]types.Field, len(names))
	for i := range names {
		fields[i] = types.Field{Name: names[i], Dtype: types_[i], Nullable: true}
	}
	return Aggregate{Input: input, GroupExprs: groupExprs, AggExprs: aggExprs, schema: types.NewSchema(fields)}
}

func (Aggregate) isPlan()               {}
func (a Aggregate) Schema() types.Schema { return a.schema }
func (a Aggregate) Children() []Plan    { return []Plan{a.Input} }
func (a Aggregate) String() string {
	groups := make([]string, len(a.GroupExprs))
	for i, e := range a.GroupExprs {
		groups[i] = e.String()
	}
	aggs := make([]string, len(a.AggExprs))
	for i, e := range a.AggExprs {
		aggs[i] = e.String()
	}
	return fmt.Sprintf("Aggregate: groupBy=[%s], aggr=[%s]", strings.Join(groups, ", "), strings.Join(aggs, ", "))
}

// Sort orders Input's rows by Exprs. No physical operator consumes this
// node (see package physicalplan); planning a tree whose root is Sort
// fails physical-plan construction with a PlanError.
type Sort struct {
	Input Plan
	Exprs []expr.Expression
}

func (Sort) isPlan()               {}
func (s Sort) Schema() types.Schema { return s.Input.Schema() }
func (s Sort) Children() []Plan    { return []Plan{s.Input} }
func (s Sort) String() string      { return fmt.Sprintf("Sort: %v", s.Exprs) }

// Limit caps Input's output at N rows.
type Limit struct {
	Input Plan
	N     int
}

func (Limit) isPlan()               {}
func (l Limit) Schema() types.Schema { return l.Input.Schema() }
func (l Limit) Children() []Plan    { return []Plan{l.Input} }
func (l Limit) String() string      { return fmt.Sprintf("Limit: %d", l.N) }

func projString(p []int) string {
	if p == nil {
		return "None"
	}
	return fmt.Sprintf("%v", p)
}
