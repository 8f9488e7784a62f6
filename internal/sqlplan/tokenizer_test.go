package sqlplan

import "testing"

func TestTokenizeSimpleSelect(t *testing.T) {
	toks, err := tokenize("SELECT a, b FROM t WHERE a > 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []tokenType{
		tokSelect, tokIdent, tokComma, tokIdent,
		tokFrom, tokIdent,
		tokWhere, tokIdent, tokGt, tokLiteralInt,
		tokEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].typ != w {
			t.Fatalf("token %d: expected %d, got %d (%q)", i, w, toks[i].typ, toks[i].value)
		}
	}
}

func TestTokenizeStringLiteralWithEscapedQuote(t *testing.T) {
	toks, err := tokenize("'it''s here'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].typ != tokLiteralString || toks[0].value != "it's here" {
		t.Fatalf("expected unescaped literal, got %+v", toks[0])
	}
}

func TestTokenizeFloatAndComparisonOperators(t *testing.T) {
	toks, err := tokenize("3.14 <= x AND x <> 2 OR x >= 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []tokenType{
		tokLiteralFloat, tokLte, tokIdent, tokAnd, tokIdent, tokNeq, tokLiteralInt,
		tokOr, tokIdent, tokGte, tokLiteralInt, tokEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].typ != w {
			t.Fatalf("token %d: expected %d, got %d (%q)", i, w, toks[i].typ, toks[i].value)
		}
	}
}

func TestTokenizeUnterminatedStringErrors(t *testing.T) {
	if _, err := tokenize("'abc"); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestTokenizeUnexpectedCharacterErrors(t *testing.T) {
	if _, err := tokenize("SELECT a # b"); err == nil {
		t.Fatal("expected an error for an unexpected character")
	}
}
