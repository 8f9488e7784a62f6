package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kokes/colexec/internal/arrow"
	"github.com/kokes/colexec/internal/types"
)

func ukCitiesSchema() types.Schema {
	return types.NewSchema([]types.Field{
		{Name: "city", Dtype: types.DtypeUtf8},
		{Name: "lat", Dtype: types.DtypeFloat64},
		{Name: "lng", Dtype: types.DtypeFloat64},
	})
}

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("unexpected error writing temp file: %v", err)
	}
	return path
}

func TestCSVSourceReadsTypedRows(t *testing.T) {
	path := writeTempFile(t, "cities.csv", "Elgin,57.653484,-3.335724\nStirling,56.116821,-3.936302\n")
	src, err := NewCSVSource(path, ukCitiesSchema(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer src.Close()

	batch, ok, err := src.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a batch, got ok=%v err=%v", ok, err)
	}
	if batch.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", batch.NumRows())
	}
	city := batch.Column(0).Column().(*arrow.StringArray)
	if city.Get(0) != "Elgin" || city.Get(1) != "Stirling" {
		t.Fatalf("unexpected city values: %q %q", city.Get(0), city.Get(1))
	}
	lat := batch.Column(1).Column().(*arrow.NumericArray[float64])
	if lat.Get(0) != 57.653484 {
		t.Fatalf("unexpected lat value: %v", lat.Get(0))
	}

	_, ok, err = src.Next(context.Background())
	if err != nil || ok {
		t.Fatalf("expected end of stream, got ok=%v err=%v", ok, err)
	}
}

func TestCSVSourceSkipsHeaderRow(t *testing.T) {
	path := writeTempFile(t, "cities.csv", "city,lat,lng\nElgin,57.653484,-3.335724\n")
	src, err := NewCSVSource(path, ukCitiesSchema(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer src.Close()

	batch, ok, err := src.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a batch, got ok=%v err=%v", ok, err)
	}
	if batch.NumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", batch.NumRows())
	}
}

func TestCSVSourceNullableEmptyCell(t *testing.T) {
	schema := types.NewSchema([]types.Field{
		{Name: "c_int", Dtype: types.DtypeInt64},
		{Name: "c_float", Dtype: types.DtypeFloat64, Nullable: true},
	})
	path := writeTempFile(t, "null_test.csv", "1,1.5\n2,\n")
	src, err := NewCSVSource(path, schema, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer src.Close()

	batch, ok, err := src.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a batch, got ok=%v err=%v", ok, err)
	}
	cfloat := batch.Column(1).Column()
	if !cfloat.Nullability().Get(1) {
		t.Fatalf("expected row 1's c_float to be null")
	}
}

func TestCSVSourceRejectsEmptyCellOnNonNullableField(t *testing.T) {
	schema := types.NewSchema([]types.Field{
		{Name: "c_int", Dtype: types.DtypeInt64},
	})
	path := writeTempFile(t, "bad.csv", "\n")
	src, err := NewCSVSource(path, schema, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer src.Close()

	if _, _, err := src.Next(context.Background()); err == nil {
		t.Fatalf("expected an error for an empty cell on a non-nullable field")
	}
}
