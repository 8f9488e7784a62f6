// Package function implements scalar function lookup and the five
// built-in aggregate kinds (Min, Max, Sum, Count, Avg). Aggregation state
// is a per-group GroupState struct whose Update and Finish methods switch
// on the aggregate kind at each call.
package function

import (
	"fmt"
	"strings"

	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// ScalarFunction is a named, type-checked, row-wise function over Values.
type ScalarFunction interface {
	Name() string
	// ReturnType validates the argument dtypes and reports the output
	// dtype, or an error if the arguments don't type-check.
	ReturnType(argTypes []types.Dtype) (types.Dtype, error)
	// Eval applies the function to already-evaluated argument Values, all
	// sharing the same shape (Column length or all-Scalar).
	Eval(args []value.Value) (value.Value, error)
}

// Registry holds the scalar functions known to an execution context,
// looked up case-insensitively like every other name in this engine.
type Registry struct {
	fns map[string]ScalarFunction
}

// NewRegistry returns a Registry pre-populated with the built-in functions.
func NewRegistry() *Registry {
	r := &Registry{fns: make(map[string]ScalarFunction)}
	for _, fn := range builtins {
		r.Register(fn)
	}
	return r
}

// Register adds or replaces a scalar function under its own Name().
func (r *Registry) Register(fn ScalarFunction) {
	r.fns[strings.ToLower(fn.Name())] = fn
}

// Lookup resolves a function name to its implementation.
func (r *Registry) Lookup(name string) (ScalarFunction, error) {
	fn, ok := r.fns[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return fn, nil
}
