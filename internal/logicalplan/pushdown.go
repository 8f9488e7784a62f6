package logicalplan

import (
	"sort"

	"github.com/kokes/colexec/internal/expr"
)

// columnsUsed walks e's tree (via Expression.Children, mirroring the
// teacher's ColumnsUsed in query/expr/expression.go) and collects every
// Column index it references.
func columnsUsed(e expr.Expression) []int {
	var cols []int
	collectColumns(e, &cols)
	return cols
}

func collectColumns(e expr.Expression, out *[]int) {
	if c, ok := e.(expr.Column); ok {
		*out = append(*out, c.Index)
	}
	for _, ch := range e.Children() {
		collectColumns(ch, out)
	}
}

func columnsUsedMultiple(exprs ...expr.Expression) []int {
	var cols []int
	for _, e := range exprs {
		cols = append(cols, columnsUsed(e)...)
	}
	return dedupeSorted(cols)
}

func dedupeSorted(cols []int) []int {
	if len(cols) == 0 {
		return nil
	}
	sort.Ints(cols)
	out := cols[:1]
	for _, c := range cols[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}

func union(a, b []int) []int {
	return dedupeSorted(append(append([]int{}, a...), b...))
}

// PushDownProjection rewrites plan so every TableScan/CsvFile/NdJsonFile/
// ParquetFile leaf carries the sorted list of column indices actually
// required by the surviving expressions above it (spec §4.5). It returns a
// new plan tree; the input tree is not mutated. required is the set of
// root-schema column indices needed by the plan's consumer; pass nil to
// mean "every column of the root's own schema".
func PushDownProjection(plan Plan, required []int) Plan {
	switch p := plan.(type) {
	case TableScan:
		p.Projection = leafProjection(required)
		return p
	case CsvFile:
		p.Projection = leafProjection(required)
		return p
	case NdJsonFile:
		p.Projection = leafProjection(required)
		return p
	case ParquetFile:
		p.Projection = leafProjection(required)
		return p
	case EmptyRelation:
		return p

	case Projection:
		childRequired := columnsUsedMultiple(p.Exprs...)
		p.Input = PushDownProjection(p.Input, childRequired)
		return p

	case Selection:
		childRequired := union(columnsUsed(p.Predicate), required)
		p.Input = PushDownProjection(p.Input, childRequired)
		return p

	case Aggregate:
		childRequired := columnsUsedMultiple(append(append([]expr.Expression{}, p.GroupExprs...), p.AggExprs...)...)
		p.Input = PushDownProjection(p.Input, childRequired)
		return p

	case Sort:
		childRequired := union(columnsUsedMultiple(p.Exprs...), required)
		p.Input = PushDownProjection(p.Input, childRequired)
		return p

	case Limit:
		p.Input = PushDownProjection(p.Input, required)
		return p

	default:
		return plan
	}
}

func leafProjection(required []int) []int {
	if required == nil {
		return nil
	}
	return dedupeSorted(append([]int{}, required...))
}
