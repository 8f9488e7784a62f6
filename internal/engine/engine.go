// Package engine ties the reference parser, planner and physical
// operators together into a single embeddable entry point, grounded on
// original_source/src/exec.rs's ExecutionContext: a registry of tables
// and scalar functions, a Local/Remote Config, and a Sql/Execute split
// mirroring exec.rs's own sql()/execute() methods rather than one
// do-everything call.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/logicalplan"
	"github.com/kokes/colexec/internal/types"
)

// ExecutionContext owns everything a query needs to resolve names
// against: registered tables, the scalar function registry, and the
// Config that decides where Execute actually runs. It implements
// logicalplan.SchemaProvider directly, so a Planner can resolve table
// and function references against it without engine exposing its
// internal maps.
type ExecutionContext struct {
	tables    map[string]tableDef
	functions *function.Registry
	config    Config
	log       *slog.Logger
}

// Option configures an ExecutionContext at construction time.
type Option func(*ExecutionContext)

// WithLogger overrides the default logger (slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *ExecutionContext) { c.log = l }
}

// WithScalarFunction registers an additional scalar function alongside
// the built-ins, mirroring exec.rs's register_scalar_function.
func WithScalarFunction(fn function.ScalarFunction) Option {
	return func(c *ExecutionContext) { c.functions.Register(fn) }
}

// NewExecutionContext builds a context ready to register tables and run
// queries against. Local() is the config most callers want; a remote
// Config is accepted but every Execute against it fails immediately.
func NewExecutionContext(cfg Config, opts ...Option) *ExecutionContext {
	c := &ExecutionContext{
		tables:    make(map[string]tableDef),
		functions: function.NewRegistry(),
		config:    cfg,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ logicalplan.SchemaProvider = (*ExecutionContext)(nil)

// TableSchema implements logicalplan.SchemaProvider.
func (c *ExecutionContext) TableSchema(name string) (types.Schema, error) {
	def, ok := c.tables[strings.ToLower(name)]
	if !ok {
		return types.Schema{}, fmt.Errorf("%w: %s", ErrTableNotRegistered, name)
	}
	return def.schema, nil
}

// FunctionReturnType implements logicalplan.SchemaProvider, delegating to
// the scalar function registry (aggregate return types are resolved
// directly by the planner via internal/function's AggregateReturnType,
// since aggregates are not part of this registry).
func (c *ExecutionContext) FunctionReturnType(fn string, argTypes []types.Dtype) (types.Dtype, error) {
	impl, err := c.functions.Lookup(fn)
	if err != nil {
		return types.DtypeInvalid, err
	}
	return impl.ReturnType(argTypes)
}
