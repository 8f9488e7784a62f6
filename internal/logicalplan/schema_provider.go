package logicalplan

import (
	"github.com/kokes/colexec/internal/types"
)

// SchemaProvider resolves table and function metadata while a planner
// translates an AST into a Plan tree, per spec §6's "SchemaProvider view
// over the registries". Lookups are case-insensitive.
type SchemaProvider interface {
	// TableSchema returns the schema registered for name.
	TableSchema(name string) (types.Schema, error)
	// FunctionReturnType returns the declared return type for fn given
	// the already-resolved argument types, used by the planner to type
	// ScalarFunction/AggregateFunction nodes before compilation.
	FunctionReturnType(fn string, argTypes []types.Dtype) (types.Dtype, error)
}
