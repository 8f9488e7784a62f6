// Package expr defines the typed expression AST and compiles it into
// RuntimeExpr closures over a record.Batch, grounded on the teacher's
// query/expr node types (Identifier, Integer, Float, Bool, String, Null,
// Function) re-expressed with static output types instead of runtime
// Dtype inference.
package expr

import (
	"fmt"

	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// BinaryOp identifies one of the thirteen binary operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpEq
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	names := [...]string{"+", "-", "*", "/", "%", "=", "!=", "<", "<=", ">", ">=", "AND", "OR"}
	if int(op) >= len(names) {
		return "?"
	}
	return names[op]
}

// IsComparison reports whether op is one of the six comparison operators.
func (op BinaryOp) IsComparison() bool {
	return op >= OpEq && op <= OpGtEq
}

// IsLogical reports whether op is AND or OR.
func (op BinaryOp) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// Expression is a node in the typed expression tree. Every variant in
// this package implements it; the set is closed (Literal, Column, Cast,
// IsNull, IsNotNull, BinaryExpr, Sort, ScalarFunction, AggregateFunction).
// Children mirrors the teacher's Expression.Children() so callers (e.g.
// the projection push-down pass) can walk a tree without a type switch
// per node kind.
type Expression interface {
	fmt.Stringer
	isExpression()
	Children() []Expression
}

// Literal is a constant value, typed by its own Scalar rather than a
// placeholder type (see the compiler's literal-type-inference rule).
type Literal struct {
	Value value.Scalar
}

func (Literal) isExpression()      {}
func (l Literal) String() string   { return l.Value.String() }
func (Literal) Children() []Expression { return nil }

// Column references the i-th field of the input schema by position. Name
// is retained only for diagnostics; resolution is always by Index.
type Column struct {
	Index int
	Name  string
}

func (Column) isExpression()      {}
func (c Column) String() string   { return c.Name }
func (Column) Children() []Expression { return nil }

// Cast converts Expr's value to Dtype.
type Cast struct {
	Expr  Expression
	Dtype types.Dtype
}

func (Cast) isExpression()    {}
func (c Cast) String() string { return fmt.Sprintf("CAST(%s AS %s)", c.Expr, c.Dtype) }
func (c Cast) Children() []Expression { return []Expression{c.Expr} }

// IsNull tests whether Expr evaluates to SQL NULL.
type IsNull struct{ Expr Expression }

func (IsNull) isExpression()    {}
func (e IsNull) String() string { return fmt.Sprintf("%s IS NULL", e.Expr) }
func (e IsNull) Children() []Expression { return []Expression{e.Expr} }

// IsNotNull tests whether Expr does not evaluate to SQL NULL.
type IsNotNull struct{ Expr Expression }

func (IsNotNull) isExpression()    {}
func (e IsNotNull) String() string { return fmt.Sprintf("%s IS NOT NULL", e.Expr) }
func (e IsNotNull) Children() []Expression { return []Expression{e.Expr} }

// BinaryExpr applies Op to Left and Right.
type BinaryExpr struct {
	Left  Expression
	Op    BinaryOp
	Right Expression
}

func (BinaryExpr) isExpression()    {}
func (e BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }
func (e BinaryExpr) Children() []Expression { return []Expression{e.Left, e.Right} }

// Sort wraps an expression with an ordering direction; consumed only by a
// sort operator, not by the scalar compiler.
type Sort struct {
	Expr      Expression
	Ascending bool
}

func (Sort) isExpression() {}
func (s Sort) String() string {
	if s.Ascending {
		return fmt.Sprintf("%s ASC", s.Expr)
	}
	return fmt.Sprintf("%s DESC", s.Expr)
}
func (s Sort) Children() []Expression { return []Expression{s.Expr} }

// ScalarFunction calls a registered scalar function by name.
type ScalarFunction struct {
	Name       string
	Args       []Expression
	ReturnType types.Dtype
}

func (ScalarFunction) isExpression() {}
func (f ScalarFunction) String() string {
	return fmt.Sprintf("%s(%d args)", f.Name, len(f.Args))
}
func (f ScalarFunction) Children() []Expression { return f.Args }

// AggregateFunction calls one of the five built-in aggregates. Legal only
// at the top level of Compile (invariant I4); nested use is a PlanError.
type AggregateFunction struct {
	Kind       function.AggregateKind
	Arg        Expression // nil for COUNT(*)
	Distinct   bool
	ReturnType types.Dtype
}

func (AggregateFunction) isExpression() {}
func (f AggregateFunction) String() string {
	if f.Arg == nil {
		return fmt.Sprintf("%s(*)", f.Kind)
	}
	return fmt.Sprintf("%s(%s)", f.Kind, f.Arg)
}
func (f AggregateFunction) Children() []Expression {
	if f.Arg == nil {
		return nil
	}
	return []Expression{f.Arg}
}
