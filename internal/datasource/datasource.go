// Package datasource provides the batch-producing collaborator the core
// treats as an external boundary (spec §6): a Schema plus an iterator of
// RecordBatch results. Two reference readers (CSV, NDJSON) and an
// in-memory source exist to drive the engine end-to-end in tests, grounded
// on the teacher's database/loader.go row-reading style; a Parquet stub
// documents the boundary without implementing real decoding.
package datasource

import (
	"context"

	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
)

// DataSource is the collaborator a TableScan/CsvFile/NdJsonFile/ParquetFile
// physical operator pulls batches from. Next returns (batch, true, nil) for
// each produced batch, and (zero, false, nil) once exhausted; ctx is
// checked between batches so a long-running scan can be cancelled.
type DataSource interface {
	Schema() types.Schema
	Next(ctx context.Context) (record.Batch, bool, error)
}
