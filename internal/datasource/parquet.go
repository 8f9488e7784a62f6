package datasource

import (
	"context"

	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
)

// ErrParquetUnsupported is returned by every ParquetSource method: the
// column-buffer library a real Parquet decoder needs is out of scope for
// this core (spec §1), so this source exists only to give the ParquetFile
// logical plan node a boundary to fail at, rather than having no
// implementation at all.
var ErrParquetUnsupported = errs.Iof("parquet data source is not implemented in this core")

// ParquetSource is a stub satisfying DataSource; every call fails.
type ParquetSource struct {
	schema types.Schema
}

func NewParquetSource(schema types.Schema) *ParquetSource {
	return &ParquetSource{schema: schema}
}

func (s *ParquetSource) Schema() types.Schema { return s.schema }

func (s *ParquetSource) Next(ctx context.Context) (record.Batch, bool, error) {
	return record.Batch{}, false, ErrParquetUnsupported
}
