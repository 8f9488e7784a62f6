package expr

import (
	"fmt"

	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// ErrAggregateNotAllowed is returned when an AggregateFunction appears
// anywhere other than the top level of Compile (invariant I4).
var ErrAggregateNotAllowed = fmt.Errorf("aggregate expressions cannot be compiled in this position")

// ErrNotConstant is returned when Cast is applied to something other than
// a Column or Literal, which this compiler cannot specialize ahead of time.
var ErrNotConstant = fmt.Errorf("cast target must be a column reference or a literal")

// Compile lowers e into a RuntimeExpr against schema, using reg to resolve
// scalar function names (aggregate kinds do not go through reg). Unlike CompileScalar, Compile
// accepts a top-level AggregateFunction.
func Compile(e Expression, schema types.Schema, reg *function.Registry) (RuntimeExpr, error) {
	if agg, ok := e.(AggregateFunction); ok {
		return compileAggregate(agg, schema, reg)
	}
	return CompileScalar(e, schema, reg)
}

func compileAggregate(agg AggregateFunction, schema types.Schema, reg *function.Registry) (RuntimeExpr, error) {
	if agg.Arg == nil {
		return RuntimeExpr{
			OutputType:  agg.ReturnType,
			IsAggregate: true,
			AggKind:     agg.Kind,
			AggDistinct: agg.Distinct,
		}, nil
	}
	argExpr, err := CompileScalar(agg.Arg, schema, reg)
	if err != nil {
		return RuntimeExpr{}, err
	}
	return RuntimeExpr{
		OutputType:  agg.ReturnType,
		IsAggregate: true,
		AggKind:     agg.Kind,
		AggArg:      &argExpr,
		AggDistinct: agg.Distinct,
	}, nil
}

// CompileScalar lowers e into a non-aggregate RuntimeExpr. An
// AggregateFunction anywhere in e is a PlanError (ErrAggregateNotAllowed).
func CompileScalar(e Expression, schema types.Schema, reg *function.Registry) (RuntimeExpr, error) {
	switch node := e.(type) {
	case Literal:
		return RuntimeExpr{
			OutputType: node.Value.Dtype,
			Eval: func(batch record.Batch) (value.Value, error) {
				return value.NewScalar(node.Value), nil
			},
		}, nil

	case Column:
		if node.Index < 0 || node.Index >= schema.Len() {
			return RuntimeExpr{}, fmt.Errorf("%w: column index %d out of range", types.ErrUnknownColumn, node.Index)
		}
		field := schema.Field(node.Index)
		idx := node.Index
		return RuntimeExpr{
			OutputType: field.Dtype,
			Eval: func(batch record.Batch) (value.Value, error) {
				return batch.Column(idx), nil
			},
		}, nil

	case Cast:
		return compileCast(node, schema, reg)

	case IsNull:
		inner, err := CompileScalar(node.Expr, schema, reg)
		if err != nil {
			return RuntimeExpr{}, err
		}
		return RuntimeExpr{
			OutputType: types.DtypeBoolean,
			Eval: func(batch record.Batch) (value.Value, error) {
				v, err := inner.Eval(batch)
				if err != nil {
					return value.Value{}, err
				}
				return value.IsNull(v)
			},
		}, nil

	case IsNotNull:
		inner, err := CompileScalar(node.Expr, schema, reg)
		if err != nil {
			return RuntimeExpr{}, err
		}
		return RuntimeExpr{
			OutputType: types.DtypeBoolean,
			Eval: func(batch record.Batch) (value.Value, error) {
				v, err := inner.Eval(batch)
				if err != nil {
					return value.Value{}, err
				}
				return value.IsNotNull(v)
			},
		}, nil

	case BinaryExpr:
		return compileBinary(node, schema, reg)

	case Sort:
		return CompileScalar(node.Expr, schema, reg)

	case ScalarFunction:
		return compileScalarFunction(node, schema, reg)

	case AggregateFunction:
		return RuntimeExpr{}, ErrAggregateNotAllowed

	default:
		return RuntimeExpr{}, fmt.Errorf("expr: unknown expression node %T", e)
	}
}

func compileCast(node Cast, schema types.Schema, reg *function.Registry) (RuntimeExpr, error) {
	switch node.Expr.(type) {
	case Column, Literal:
	default:
		return RuntimeExpr{}, ErrNotConstant
	}
	inner, err := CompileScalar(node.Expr, schema, reg)
	if err != nil {
		return RuntimeExpr{}, err
	}
	dst := node.Dtype
	return RuntimeExpr{
		OutputType: dst,
		Eval: func(batch record.Batch) (value.Value, error) {
			v, err := inner.Eval(batch)
			if err != nil {
				return value.Value{}, err
			}
			return value.Cast(v, dst)
		},
	}, nil
}

var binaryKernels = map[BinaryOp]func(l, r value.Value) (value.Value, error){
	OpAdd:      value.Add,
	OpSubtract: value.Subtract,
	OpMultiply: value.Multiply,
	OpDivide:   value.Divide,
	OpModulo:   value.Modulo,
	OpEq:       value.Eq,
	OpNotEq:    value.NotEq,
	OpLt:       value.Lt,
	OpLtEq:     value.LtEq,
	OpGt:       value.Gt,
	OpGtEq:     value.GtEq,
	OpAnd:      value.And,
	OpOr:       value.Or,
}

func compileBinary(node BinaryExpr, schema types.Schema, reg *function.Registry) (RuntimeExpr, error) {
	left, err := CompileScalar(node.Left, schema, reg)
	if err != nil {
		return RuntimeExpr{}, err
	}
	right, err := CompileScalar(node.Right, schema, reg)
	if err != nil {
		return RuntimeExpr{}, err
	}
	kernel, ok := binaryKernels[node.Op]
	if !ok {
		return RuntimeExpr{}, fmt.Errorf("expr: unknown binary operator %s", node.Op)
	}
	outputType := types.DtypeBoolean
	if !node.Op.IsComparison() && !node.Op.IsLogical() {
		outputType = left.OutputType
	}
	return RuntimeExpr{
		OutputType: outputType,
		Eval: func(batch record.Batch) (value.Value, error) {
			l, err := left.Eval(batch)
			if err != nil {
				return value.Value{}, err
			}
			r, err := right.Eval(batch)
			if err != nil {
				return value.Value{}, err
			}
			return kernel(l, r)
		},
	}, nil
}

func compileScalarFunction(node ScalarFunction, schema types.Schema, reg *function.Registry) (RuntimeExpr, error) {
	fn, err := reg.Lookup(node.Name)
	if err != nil {
		return RuntimeExpr{}, err
	}
	argExprs := make([]RuntimeExpr, len(node.Args))
	argTypes := make([]types.Dtype, len(node.Args))
	for i, a := range node.Args {
		ce, err := CompileScalar(a, schema, reg)
		if err != nil {
			return RuntimeExpr{}, err
		}
		argExprs[i] = ce
		argTypes[i] = ce.OutputType
	}
	retType, err := fn.ReturnType(argTypes)
	if err != nil {
		return RuntimeExpr{}, err
	}
	return RuntimeExpr{
		OutputType: retType,
		Eval: func(batch record.Batch) (value.Value, error) {
			args := make([]value.Value, len(argExprs))
			for i, ce := range argExprs {
				v, err := ce.Eval(batch)
				if err != nil {
					return value.Value{}, err
				}
				args[i] = v
			}
			return fn.Eval(args)
		},
	}, nil
}
