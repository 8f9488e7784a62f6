package engine

import (
	"fmt"
	"strings"

	"github.com/kokes/colexec/internal/sqlplan"
	"github.com/kokes/colexec/internal/types"
)

// tableDef is everything a registered external table needs to be turned
// into a fresh datasource.DataSource at execution time: the schema it was
// declared with, where its data lives, and how to read it. Mirrors the
// fields original_source/src/exec.rs's SQLCreateTable AST node carries
// into load_csv/load_ndjson/load_parquet.
type tableDef struct {
	schema    types.Schema
	format    sqlplan.StorageFormat
	location  string
	hasHeader bool
}

// RegisterTable declares an external table under name, available to FROM
// clauses from this point on. Table names are matched case-insensitively,
// like every other identifier in this core. It fails if name is already
// registered - tables are declared once, not silently redefined.
func (c *ExecutionContext) RegisterTable(name string, schema types.Schema, format sqlplan.StorageFormat, location string, hasHeader bool) error {
	key := strings.ToLower(name)
	if _, exists := c.tables[key]; exists {
		return fmt.Errorf("%w: %s", ErrTableAlreadyRegistered, name)
	}
	c.tables[key] = tableDef{schema: schema, format: format, location: location, hasHeader: hasHeader}
	c.log.Info("registered table", "name", name, "format", format, "location", location)
	return nil
}

// registerFromDDL registers the table a parsed CREATE EXTERNAL TABLE
// statement declares.
func (c *ExecutionContext) registerFromDDL(stmt sqlplan.CreateExternalTable) error {
	return c.RegisterTable(stmt.TableName, stmt.Schema(), stmt.Format, stmt.Location, stmt.HasHeader)
}
