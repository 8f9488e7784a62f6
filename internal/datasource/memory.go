package datasource

import (
	"context"

	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
)

// MemorySource replays a fixed slice of batches, used by tests that need a
// DataSource without touching the filesystem.
type MemorySource struct {
	schema  types.Schema
	batches []record.Batch
	pos     int
}

func NewMemorySource(schema types.Schema, batches []record.Batch) *MemorySource {
	return &MemorySource{schema: schema, batches: batches}
}

func (s *MemorySource) Schema() types.Schema { return s.schema }

func (s *MemorySource) Next(ctx context.Context) (record.Batch, bool, error) {
	if err := ctx.Err(); err != nil {
		return record.Batch{}, false, errs.Execf("memory scan cancelled: %w", err)
	}
	if s.pos >= len(s.batches) {
		return record.Batch{}, false, nil
	}
	b := s.batches[s.pos]
	s.pos++
	return b, true, nil
}
