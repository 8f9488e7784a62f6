package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kokes/colexec/internal/bitmap"
	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// NdJsonSource reads one JSON object per line, typing each field according
// to schema, grounded on the same stripe-sized batching as CSVSource. A
// .gz or .sz/.snappy path suffix is transparently decompressed.
type NdJsonSource struct {
	cf        *compressedFile
	dec       *json.Decoder
	schema    types.Schema
	exhausted bool
}

func NewNdJsonSource(path string, schema types.Schema) (*NdJsonSource, error) {
	cf, err := openCompressed(path)
	if err != nil {
		return nil, err
	}
	return &NdJsonSource{cf: cf, dec: json.NewDecoder(cf), schema: schema}, nil
}

func (s *NdJsonSource) Schema() types.Schema { return s.schema }

func (s *NdJsonSource) Close() error { return s.cf.Close() }

func (s *NdJsonSource) Next(ctx context.Context) (record.Batch, bool, error) {
	if s.exhausted {
		return record.Batch{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return record.Batch{}, false, errs.Execf("ndjson scan cancelled: %w", err)
	}

	var rows []map[string]any
	for len(rows) < defaultBatchRows {
		var obj map[string]any
		err := s.dec.Decode(&obj)
		if err == io.EOF {
			s.exhausted = true
			break
		}
		if err != nil {
			return record.Batch{}, false, errs.Iof("reading ndjson record from %s: %w", s.cf.Name(), err)
		}
		rows = append(rows, obj)
	}
	if len(rows) == 0 {
		return record.Batch{}, false, nil
	}

	cols := make([]value.Value, s.schema.Len())
	for c, field := range s.schema.Fields() {
		raw := make([]string, len(rows))
		var nb *bitmap.Bitmap
		for r, row := range rows {
			v, ok := row[field.Name]
			if !ok || v == nil {
				if !field.Nullable {
					return record.Batch{}, false, errs.Iof("column %s: missing value in a non-nullable field", field.Name)
				}
				if nb == nil {
					nb = bitmap.NewBitmap(len(rows))
				}
				nb.Set(r, true)
				continue
			}
			raw[r] = jsonCellText(v)
		}
		col, err := buildTypedColumn(field, raw, nb)
		if err != nil {
			return record.Batch{}, false, err
		}
		cols[c] = col
	}

	b, err := record.New(s.schema, cols)
	if err != nil {
		return record.Batch{}, false, errs.Execf("assembling ndjson batch: %w", err)
	}
	return b, true, nil
}

// jsonCellText renders a decoded JSON value (string, float64, or bool) as
// the plain text form buildTypedColumn's parsers expect.
func jsonCellText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
