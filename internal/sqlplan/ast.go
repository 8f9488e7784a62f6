package sqlplan

import "github.com/kokes/colexec/internal/types"

// Statement is the parsed form of one SQL statement: CreateExternalTable
// or Select. Both implement planner.ASTNode by virtue of that interface
// being empty; Plan type-switches on the concrete type.
type Statement interface{ isStatement() }

// StorageFormat names the on-disk encoding a CREATE EXTERNAL TABLE names
// in its STORED AS clause.
type StorageFormat uint8

const (
	StorageCSV StorageFormat = iota
	StorageNdJSON
	StorageParquet
)

func (f StorageFormat) String() string {
	switch f {
	case StorageCSV:
		return "CSV"
	case StorageNdJSON:
		return "NDJSON"
	case StorageParquet:
		return "PARQUET"
	default:
		return "?"
	}
}

// ColumnDef is one entry of a CREATE EXTERNAL TABLE column list.
type ColumnDef struct {
	Name  string
	Dtype types.Dtype
}

// CreateExternalTable registers an external file as a queryable table.
// HasHeader is only meaningful when Format == StorageCSV.
type CreateExternalTable struct {
	TableName string
	Columns   []ColumnDef
	Format    StorageFormat
	HasHeader bool
	Location  string
}

func (CreateExternalTable) isStatement() {}

// SelectItem is a single entry of a SELECT's projection list: either Star
// (SELECT *) or Expr aliased as Alias (Alias is "" when the source didn't
// give one, in which case the planner derives a name from Expr itself).
type SelectItem struct {
	Star  bool
	Expr  sqlExpr
	Alias string
}

// Select is a single SELECT ... [FROM ...] [WHERE ...] [GROUP BY ...]
// [LIMIT n] statement. From == "" means no FROM clause was given, which
// plans to logicalplan.EmptyRelation{ProduceOneRow: true}.
type Select struct {
	Items   []SelectItem
	From    string
	Where   sqlExpr
	GroupBy []sqlExpr
	Limit   *int
}

func (Select) isStatement() {}

// sqlExpr is the untyped expression AST the parser builds, before names
// are resolved against a schema. It is deliberately distinct from
// expr.Expression: sqlExpr still carries bare identifiers and type names
// as strings, which only a SchemaProvider can resolve.
type sqlExpr interface{ isSQLExpr() }

type sqlLiteralInt struct{ Value int64 }
type sqlLiteralFloat struct{ Value float64 }
type sqlLiteralString struct{ Value string }
type sqlLiteralNull struct{}

func (sqlLiteralInt) isSQLExpr()    {}
func (sqlLiteralFloat) isSQLExpr()  {}
func (sqlLiteralString) isSQLExpr() {}
func (sqlLiteralNull) isSQLExpr()   {}

// sqlColumn references a column by name, optionally qualified by table -
// only a single table is ever in scope in this grammar, so Table is
// parsed but never read.
type sqlColumn struct {
	Table string
	Name  string
}

func (sqlColumn) isSQLExpr() {}

type sqlBinary struct {
	Left  sqlExpr
	Op    tokenType
	Right sqlExpr
}

func (sqlBinary) isSQLExpr() {}

type sqlCast struct {
	Expr     sqlExpr
	TypeName string
}

func (sqlCast) isSQLExpr() {}

type sqlIsNull struct {
	Expr sqlExpr
	Not  bool
}

func (sqlIsNull) isSQLExpr() {}

// sqlFuncCall covers both scalar functions (sqrt(x)) and aggregates
// (SUM(x), COUNT(*)); the planner decides which based on the name.
// Star is set only for COUNT(*).
type sqlFuncCall struct {
	Name string
	Args []sqlExpr
	Star bool
}

func (sqlFuncCall) isSQLExpr() {}
