package arrow

import (
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
)

// StructArray is an ordered bundle of equally-sized child arrays, one per
// named field. Casts to/from Struct are explicitly unsupported (spec
// §4.2); StructArray exists so scalar functions may still produce
// struct-typed output columns (e.g. a geometry constructor).
type StructArray struct {
	fields []types.Field
	values []Array
	length int
}

// NewStructArray bundles child arrays into a single struct-typed column.
// All children must share the same length.
func NewStructArray(fields []types.Field, values []Array) *StructArray {
	length := 0
	if len(values) > 0 {
		length = values[0].Len()
	}
	return &StructArray{fields: fields, values: values, length: length}
}

func (a *StructArray) Len() int                    { return a.length }
func (a *StructArray) Dtype() types.Dtype          { return types.DtypeStruct }
func (a *StructArray) Nullability() *bitmap.Bitmap { return nil }
func (a *StructArray) Fields() []types.Field       { return a.fields }
func (a *StructArray) Child(i int) Array           { return a.values[i] }

func (a *StructArray) Clone() Array {
	cp := make([]Array, len(a.values))
	for i, v := range a.values {
		cp[i] = v.Clone()
	}
	return &StructArray{fields: a.fields, values: cp, length: a.length}
}

func (a *StructArray) Take(indices []int) Array {
	cp := make([]Array, len(a.values))
	for i, v := range a.values {
		cp[i] = v.Take(indices)
	}
	return &StructArray{fields: a.fields, values: cp, length: len(indices)}
}
