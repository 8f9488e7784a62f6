// Package types defines the primitive data types and schema model shared
// across the engine: columns, scalars, record batches and expressions are
// all built on top of the Dtype/Field/Schema triple defined here.
package types

import (
	"fmt"
	"strings"
)

// Dtype identifies a primitive type supported by the engine.
type Dtype uint8

const (
	DtypeInvalid Dtype = iota
	DtypeNull
	DtypeBoolean
	DtypeInt8
	DtypeInt16
	DtypeInt32
	DtypeInt64
	DtypeUint8
	DtypeUint16
	DtypeUint32
	DtypeUint64
	DtypeFloat32
	DtypeFloat64
	DtypeUtf8
	DtypeStruct
	dtypeMax
)

var dtypeNames = [...]string{
	"invalid", "null", "boolean",
	"int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"float32", "float64",
	"utf8", "struct",
}

func (dt Dtype) String() string {
	if int(dt) >= len(dtypeNames) {
		return "invalid"
	}
	return dtypeNames[dt]
}

// dtypeAliases maps the SQL-surface spellings accepted alongside each
// type's canonical name (CREATE EXTERNAL TABLE column types and CAST
// targets both go through ParseDtype, so both grammars share these).
var dtypeAliases = map[string]Dtype{
	"int":    DtypeInt64,
	"bigint": DtypeInt64,
	"float":  DtypeFloat64,
	"string": DtypeUtf8,
	"bool":   DtypeBoolean,
}

// ParseDtype resolves a case-insensitive type name (as it appears in a
// CREATE EXTERNAL TABLE column list or a CAST target) to its Dtype,
// accepting both canonical names (int64, float64, utf8, ...) and the
// common SQL aliases in dtypeAliases (int, bigint, float, ...).
func ParseDtype(name string) (Dtype, error) {
	lname := strings.ToLower(name)
	for dt, n := range dtypeNames {
		if n == lname {
			return Dtype(dt), nil
		}
	}
	if dt, ok := dtypeAliases[lname]; ok {
		return dt, nil
	}
	return DtypeInvalid, fmt.Errorf("%w: %s", ErrUnknownDtype, name)
}

// IsNumeric reports whether dt is one of the ten numeric primitives over
// which the arithmetic/comparison kernels are defined.
func (dt Dtype) IsNumeric() bool {
	return dt >= DtypeInt8 && dt <= DtypeFloat64
}

// IsInteger reports whether dt is a signed or unsigned integer primitive.
func (dt Dtype) IsInteger() bool {
	return dt >= DtypeInt8 && dt <= DtypeUint64
}

// IsSignedInteger reports whether dt is one of the four signed integer primitives.
func (dt Dtype) IsSignedInteger() bool {
	return dt >= DtypeInt8 && dt <= DtypeInt64
}

// IsFloat reports whether dt is Float32 or Float64.
func (dt Dtype) IsFloat() bool {
	return dt == DtypeFloat32 || dt == DtypeFloat64
}

// Field describes a single named, typed, nullable column within a Schema.
type Field struct {
	Name     string
	Dtype    Dtype
	Nullable bool
	// Fields holds the ordered child fields when Dtype == DtypeStruct.
	Fields []Field
}

func (f Field) String() string {
	return fmt.Sprintf("%s:%s", f.Name, f.Dtype)
}

// Schema is an ordered, immutable list of Fields. Two schemas are equal iff
// their field lists are structurally identical (same name, dtype,
// nullability and order).
type Schema struct {
	fields []Field
}

// NewSchema builds an immutable Schema from the given fields. The slice is
// copied so later mutation of the caller's slice cannot affect the schema.
func NewSchema(fields []Field) Schema {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Schema{fields: cp}
}

// EmptySchema returns a Schema with no fields, used for EmptyRelation plans.
func EmptySchema() Schema { return Schema{} }

// Fields returns the ordered list of fields. Callers must not mutate the
// returned slice.
func (s Schema) Fields() []Field { return s.fields }

// Len returns the number of fields in the schema.
func (s Schema) Len() int { return len(s.fields) }

// Field returns the i-th field.
func (s Schema) Field(i int) Field { return s.fields[i] }

// Equal reports structural equality between two schemas.
func (s Schema) Equal(other Schema) bool {
	if len(s.fields) != len(other.fields) {
		return false
	}
	for i, f := range s.fields {
		of := other.fields[i]
		if f.Name != of.Name || f.Dtype != of.Dtype || f.Nullable != of.Nullable {
			return false
		}
	}
	return true
}

// LocateColumn resolves a column name to its index, comparing names
// case-insensitively by lowercasing both sides (registries throughout this
// engine are looked up the same way).
func (s Schema) LocateColumn(name string) (int, Field, error) {
	lname := strings.ToLower(name)
	for i, f := range s.fields {
		if strings.ToLower(f.Name) == lname {
			return i, f, nil
		}
	}
	return -1, Field{}, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
}

// Project returns a new Schema containing only the fields at the given
// indices, in the order given.
func (s Schema) Project(indices []int) Schema {
	fields := make([]Field, len(indices))
	for i, idx := range indices {
		fields[i] = s.fields[idx]
	}
	return NewSchema(fields)
}

func (s Schema) String() string {
	var sb strings.Builder
	for i, f := range s.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.String())
	}
	return sb.String()
}
