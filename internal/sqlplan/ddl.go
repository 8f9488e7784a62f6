package sqlplan

import "github.com/kokes/colexec/internal/types"

// Schema builds the types.Schema a CREATE EXTERNAL TABLE statement
// declares for its own columns - every column is nullable, since this
// engine has no constraint system to prove otherwise from a column list
// alone.
func (stmt CreateExternalTable) Schema() types.Schema {
	fields := make([]types.Field, len(stmt.Columns))
	for i, c := range stmt.Columns {
		fields[i] = types.Field{Name: c.Name, Dtype: c.Dtype, Nullable: true}
	}
	return types.NewSchema(fields)
}
