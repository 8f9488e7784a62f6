package datasource

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// defaultBatchRows caps how many CSV rows CSVSource.Next assembles into a
// single RecordBatch, mirroring the teacher's stripe-sized reads
// (database/loader.go) rather than loading an entire file at once.
const defaultBatchRows = 1024

// CSVSource reads rows from a comma-separated file, typing each cell
// according to schema. An empty cell on a Nullable field is read as NULL;
// an empty cell on a non-nullable field is an IoError. A .gz or .sz/.snappy
// path suffix is transparently decompressed.
type CSVSource struct {
	cf        *compressedFile
	r         *csv.Reader
	schema    types.Schema
	exhausted bool
}

// NewCSVSource opens path and prepares to read rows typed by schema. If
// hasHeader, the first line is read and discarded.
func NewCSVSource(path string, schema types.Schema, hasHeader bool) (*CSVSource, error) {
	cf, err := openCompressed(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(cf)
	r.FieldsPerRecord = schema.Len()
	if hasHeader {
		if _, err := r.Read(); err != nil {
			cf.Close()
			return nil, errs.Iof("reading csv header from %s: %w", path, err)
		}
	}
	return &CSVSource{cf: cf, r: r, schema: schema}, nil
}

func (s *CSVSource) Schema() types.Schema { return s.schema }

func (s *CSVSource) Close() error { return s.cf.Close() }

func (s *CSVSource) Next(ctx context.Context) (record.Batch, bool, error) {
	if s.exhausted {
		return record.Batch{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return record.Batch{}, false, errs.Execf("csv scan cancelled: %w", err)
	}

	var rows [][]string
	for len(rows) < defaultBatchRows {
		row, err := s.r.Read()
		if err == io.EOF {
			s.exhausted = true
			break
		}
		if err != nil {
			return record.Batch{}, false, errs.Iof("reading csv row from %s: %w", s.cf.Name(), err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return record.Batch{}, false, nil
	}

	cols := make([]value.Value, s.schema.Len())
	for c, field := range s.schema.Fields() {
		raw := make([]string, len(rows))
		var nb *bitmap.Bitmap
		for r, row := range rows {
			raw[r] = row[c]
			if raw[r] == "" {
				if !field.Nullable {
					return record.Batch{}, false, errs.Iof("column %s: empty value in a non-nullable field", field.Name)
				}
				if nb == nil {
					nb = bitmap.NewBitmap(len(rows))
				}
				nb.Set(r, true)
			}
		}
		col, err := buildTypedColumn(field, raw, nb)
		if err != nil {
			return record.Batch{}, false, err
		}
		cols[c] = col
	}

	b, err := record.New(s.schema, cols)
	if err != nil {
		return record.Batch{}, false, errs.Execf("assembling csv batch: %w", err)
	}
	return b, true, nil
}

// buildTypedColumn parses raw text cells into a Value column of field's
// dtype. Boolean is parsed directly (value.Cast refuses Boolean as a
// target); every other dtype is parsed by building a Utf8 column first and
// reusing value.Cast's Utf8-to-numeric parsing (and its null propagation),
// so this reference reader does not duplicate the cast kernel's parsing
// rules.
func buildTypedColumn(field types.Field, raw []string, nb *bitmap.Bitmap) (value.Value, error) {
	if field.Dtype == types.DtypeBoolean {
		return buildBoolColumn(raw, nb)
	}
	text := value.NewColumn(arrow.NewStringArray(raw, nb))
	if field.Dtype == types.DtypeUtf8 {
		return text, nil
	}
	out, err := value.Cast(text, field.Dtype)
	if err != nil {
		return value.Value{}, errs.Iof("column %s: %w", field.Name, err)
	}
	return out, nil
}

func buildBoolColumn(raw []string, nb *bitmap.Bitmap) (value.Value, error) {
	out := make([]bool, len(raw))
	for i, s := range raw {
		if nb.Get(i) {
			continue
		}
		v, err := strconv.ParseBool(s)
		if err != nil {
			return value.Value{}, errs.Iof("parsing %q as boolean: %w", s, err)
		}
		out[i] = v
	}
	return value.NewColumn(arrow.NewBoolArrayFromBools(out, nb)), nil
}
