// Package record defines RecordBatch, the unit of data that flows between
// operators in the execution pipeline: a schema paired with one Column
// Value per field, all sharing the same row count.
package record

import (
	"fmt"

	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// Batch is an immutable, schema-bound set of equally-sized columns.
type Batch struct {
	schema  types.Schema
	columns []value.Value
	rows    int
}

// New builds a Batch from a schema and one Column value per field. It
// returns an error if the column count doesn't match the schema, any
// column is a Scalar rather than a Column value, or the columns disagree
// on row count.
func New(schema types.Schema, columns []value.Value) (Batch, error) {
	if schema.Len() != len(columns) {
		return Batch{}, fmt.Errorf("record: schema has %d fields, got %d columns", schema.Len(), len(columns))
	}
	rows := 0
	for i, c := range columns {
		if !c.IsColumn() {
			return Batch{}, fmt.Errorf("record: column %d (%s) is a scalar, not a column", i, schema.Field(i).Name)
		}
		if i == 0 {
			rows = c.Len()
		} else if c.Len() != rows {
			return Batch{}, fmt.Errorf("record: column %d (%s) has %d rows, expected %d", i, schema.Field(i).Name, c.Len(), rows)
		}
	}
	return Batch{schema: schema, columns: columns, rows: rows}, nil
}

// NewEmpty returns a zero-column Batch reporting rows rows. Column count
// derives row count everywhere else, which breaks down for EmptyRelation's
// "produce one row with no columns" case (e.g. SELECT 1 with no FROM) -
// this is the one constructor that takes a row count directly.
func NewEmpty(rows int) Batch {
	return Batch{schema: types.EmptySchema(), columns: nil, rows: rows}
}

// Schema returns the batch's schema.
func (b Batch) Schema() types.Schema { return b.schema }

// NumRows returns the number of rows in the batch.
func (b Batch) NumRows() int { return b.rows }

// NumCols returns the number of columns in the batch.
func (b Batch) NumCols() int { return len(b.columns) }

// Column returns the i-th column as a Value (always the Column variant).
func (b Batch) Column(i int) value.Value { return b.columns[i] }

// Columns returns all columns in schema order. Callers must not mutate
// the returned slice.
func (b Batch) Columns() []value.Value { return b.columns }

// ColumnByName resolves a field name (case-insensitive) to its column.
func (b Batch) ColumnByName(name string) (value.Value, error) {
	idx, _, err := b.schema.LocateColumn(name)
	if err != nil {
		return value.Value{}, err
	}
	return b.columns[idx], nil
}

// Project returns a new Batch retaining only the given column indices, in
// the order given.
func (b Batch) Project(indices []int) (Batch, error) {
	cols := make([]value.Value, len(indices))
	for i, idx := range indices {
		cols[i] = b.columns[idx]
	}
	return New(b.schema.Project(indices), cols)
}

// Take returns a new Batch holding only the rows at the given indices, in
// the order given, across every column - used by the Filter operator.
func (b Batch) Take(indices []int) (Batch, error) {
	cols := make([]value.Value, len(b.columns))
	for i, c := range b.columns {
		cols[i] = c.Take(indices)
	}
	return New(b.schema, cols)
}

// Slice returns a new Batch containing the first n rows - used by the
// Limit operator to truncate the batch that crosses its row boundary.
func (b Batch) Slice(n int) (Batch, error) {
	if n >= b.rows {
		return b, nil
	}
	mask := bitmap.NewBitmap(b.rows)
	for i := 0; i < b.rows; i++ {
		mask.Set(i, true)
	}
	mask.KeepFirstN(n)
	return b.Take(mask.Indices())
}
