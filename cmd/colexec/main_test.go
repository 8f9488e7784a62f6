package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStatementsFromRejectsBothFlags(t *testing.T) {
	if _, err := statementsFrom("SELECT 1", "some.sql"); err == nil {
		t.Fatal("expected an error when both -query and -file are set")
	}
}

func TestStatementsFromRejectsNeitherFlag(t *testing.T) {
	if _, err := statementsFrom("", ""); err == nil {
		t.Fatal("expected an error when neither -query nor -file is set")
	}
}

func TestStatementsFromSplitsFileOnSemicolons(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.sql")
	if err := os.WriteFile(path, []byte("SELECT 1;\n\nSELECT 2 ;"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := statementsFrom("", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"SELECT 1", "SELECT 2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d statements, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("statement %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRunExecutesQueryAgainstAFreshContext(t *testing.T) {
	if err := run(context.Background(), "SELECT 1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
