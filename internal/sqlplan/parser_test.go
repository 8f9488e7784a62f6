package sqlplan

import "testing"

func TestParseSelectStar(t *testing.T) {
	stmt, err := Parse("SELECT * FROM cities")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel, ok := stmt.(Select)
	if !ok {
		t.Fatalf("expected a Select, got %T", stmt)
	}
	if len(sel.Items) != 1 || !sel.Items[0].Star {
		t.Fatalf("expected a single Star item, got %+v", sel.Items)
	}
	if sel.From != "cities" {
		t.Fatalf("expected From=cities, got %q", sel.From)
	}
}

func TestParseSelectWithWhereGroupByLimit(t *testing.T) {
	stmt, err := Parse("SELECT city, SUM(population) AS total FROM cities WHERE population > 1000 GROUP BY city LIMIT 5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := stmt.(Select)
	if len(sel.Items) != 2 {
		t.Fatalf("expected 2 select items, got %d", len(sel.Items))
	}
	if sel.Items[1].Alias != "total" {
		t.Fatalf("expected alias 'total', got %q", sel.Items[1].Alias)
	}
	fc, ok := sel.Items[1].Expr.(sqlFuncCall)
	if !ok || fc.Name != "SUM" {
		t.Fatalf("expected SUM(...) call, got %+v", sel.Items[1].Expr)
	}
	if sel.Where == nil {
		t.Fatal("expected a WHERE predicate")
	}
	if len(sel.GroupBy) != 1 {
		t.Fatalf("expected 1 GROUP BY expr, got %d", len(sel.GroupBy))
	}
	if sel.Limit == nil || *sel.Limit != 5 {
		t.Fatalf("expected LIMIT 5, got %v", sel.Limit)
	}
}

func TestParseSelectNoFrom(t *testing.T) {
	stmt, err := Parse("SELECT 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := stmt.(Select)
	if sel.From != "" {
		t.Fatalf("expected no FROM clause, got %q", sel.From)
	}
	if _, ok := sel.Items[0].Expr.(sqlLiteralInt); !ok {
		t.Fatalf("expected a literal int item, got %+v", sel.Items[0].Expr)
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3), i.e. the outermost node is +.
	stmt, err := Parse("SELECT 1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := stmt.(Select)
	bin, ok := sel.Items[0].Expr.(sqlBinary)
	if !ok || bin.Op != tokPlus {
		t.Fatalf("expected top-level +, got %+v", sel.Items[0].Expr)
	}
	rhs, ok := bin.Right.(sqlBinary)
	if !ok || rhs.Op != tokStar {
		t.Fatalf("expected right-hand side to be 2 * 3, got %+v", bin.Right)
	}
}

func TestParseIsNotNull(t *testing.T) {
	stmt, err := Parse("SELECT a FROM t WHERE a IS NOT NULL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := stmt.(Select)
	isn, ok := sel.Where.(sqlIsNull)
	if !ok || !isn.Not {
		t.Fatalf("expected IsNull{Not: true}, got %+v", sel.Where)
	}
}

func TestParseCastExpression(t *testing.T) {
	stmt, err := Parse("SELECT CAST(a AS float64) FROM t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := stmt.(Select)
	cast, ok := sel.Items[0].Expr.(sqlCast)
	if !ok || cast.TypeName != "float64" {
		t.Fatalf("expected a CAST to float64, got %+v", sel.Items[0].Expr)
	}
}

func TestParseCountStar(t *testing.T) {
	stmt, err := Parse("SELECT COUNT(*) FROM t GROUP BY city")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := stmt.(Select)
	fc, ok := sel.Items[0].Expr.(sqlFuncCall)
	if !ok || !fc.Star {
		t.Fatalf("expected COUNT(*) as a star func call, got %+v", sel.Items[0].Expr)
	}
}

func TestParseCreateExternalTable(t *testing.T) {
	stmt, err := Parse(`CREATE EXTERNAL TABLE cities (name utf8, population int64) STORED AS CSV WITH HEADER ROW LOCATION '/data/cities.csv'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl, ok := stmt.(CreateExternalTable)
	if !ok {
		t.Fatalf("expected a CreateExternalTable, got %T", stmt)
	}
	if tbl.TableName != "cities" || tbl.Format != StorageCSV || !tbl.HasHeader || tbl.Location != "/data/cities.csv" {
		t.Fatalf("unexpected statement: %+v", tbl)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[0].Name != "name" {
		t.Fatalf("unexpected columns: %+v", tbl.Columns)
	}
}

func TestParseCreateExternalTableWithoutHeaderRow(t *testing.T) {
	stmt, err := Parse(`CREATE EXTERNAL TABLE t (a int64) STORED AS CSV WITHOUT HEADER ROW LOCATION 'a.csv'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl := stmt.(CreateExternalTable)
	if tbl.HasHeader {
		t.Fatal("expected HasHeader=false for WITHOUT HEADER ROW")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("DROP TABLE t"); err == nil {
		t.Fatal("expected an error for an unsupported statement")
	}
}

func TestParseNegativeLiteral(t *testing.T) {
	stmt, err := Parse("SELECT a FROM t WHERE a > -5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := stmt.(Select)
	bin := sel.Where.(sqlBinary)
	lit, ok := bin.Right.(sqlLiteralInt)
	if !ok || lit.Value != -5 {
		t.Fatalf("expected literal -5, got %+v", bin.Right)
	}
}
