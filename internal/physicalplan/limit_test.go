package physicalplan

import (
	"context"
	"testing"

	"github.com/kokes/colexec/internal/datasource"
	"github.com/kokes/colexec/internal/record"
)

func TestLimitTruncatesCrossingBatch(t *testing.T) {
	src := datasource.NewMemorySource(sampleSchema(), []record.Batch{sampleBatch(t)})
	rel := NewDataSourceRelation(src, nil)
	lim := NewLimit(rel, 2)

	batch, ok, err := lim.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a batch, got ok=%v err=%v", ok, err)
	}
	if batch.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", batch.NumRows())
	}

	_, ok, err = lim.Next(context.Background())
	if err != nil || ok {
		t.Fatalf("expected exhaustion after the limit is reached, got ok=%v err=%v", ok, err)
	}
}

func TestLimitAcrossMultipleBatches(t *testing.T) {
	src := datasource.NewMemorySource(sampleSchema(), []record.Batch{sampleBatch(t), sampleBatch(t)})
	rel := NewDataSourceRelation(src, nil)
	lim := NewLimit(rel, 4)

	first, ok, err := lim.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a batch, got ok=%v err=%v", ok, err)
	}
	if first.NumRows() != 3 {
		t.Fatalf("expected the first batch to pass through whole (3 rows), got %d", first.NumRows())
	}

	second, ok, err := lim.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a second batch, got ok=%v err=%v", ok, err)
	}
	if second.NumRows() != 1 {
		t.Fatalf("expected the second batch truncated to 1 row, got %d", second.NumRows())
	}

	_, ok, err = lim.Next(context.Background())
	if err != nil || ok {
		t.Fatalf("expected exhaustion, got ok=%v err=%v", ok, err)
	}
}
