package physicalplan

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/kokes/colexec/internal/function"
	"github.com/kokes/colexec/internal/logicalplan"
	"github.com/kokes/colexec/internal/record"
	"github.com/kokes/colexec/internal/types"
	"github.com/kokes/colexec/internal/value"
)

// PhysicalPlan is the executable counterpart of a LogicalPlan: the root
// plan paired with what to do with its output (spec §4.6). The set of
// variants is closed: Interactive, Write, Show.
type PhysicalPlan interface {
	Root() logicalplan.Plan
	isPhysicalPlan()
}

// WriteKind selects Write's output shape: a CSV file on disk, or an
// in-memory string holding the same textual dump.
type WriteKind uint8

const (
	WriteCSV WriteKind = iota
	WriteString
)

// Interactive drains the root plan, printing each row to the writer given
// to Drain as comma-joined cells, and returns the row count.
type Interactive struct{ LogicalRoot logicalplan.Plan }

func (Interactive) isPhysicalPlan()        {}
func (p Interactive) Root() logicalplan.Plan { return p.LogicalRoot }

// Write drains the root plan into either a CSV file (Filename, Kind ==
// WriteCSV) or an in-memory string (Kind == WriteString, Filename unused).
type Write struct {
	LogicalRoot logicalplan.Plan
	Filename    string
	Kind        WriteKind
}

func (Write) isPhysicalPlan()        {}
func (p Write) Root() logicalplan.Plan { return p.LogicalRoot }

// Show behaves like Interactive but stops after Count rows.
type Show struct {
	LogicalRoot logicalplan.Plan
	Count       int
}

func (Show) isPhysicalPlan()        {}
func (p Show) Root() logicalplan.Plan { return p.LogicalRoot }

// formatCell renders v's i-th row using the locale-independent, unescaped
// CSV convention spec §6 describes: NULL as an empty cell, Utf8 as raw
// text (never quoted - callers must keep commas/newlines out of their
// data), Boolean as true/false, everything else via its native %v form.
func formatCell(v value.Value, i int) string {
	sc := function.ScalarAt(v, i)
	if !sc.Valid {
		return ""
	}
	switch sc.Dtype {
	case types.DtypeUtf8:
		return sc.Utf8()
	case types.DtypeBoolean:
		return strconv.FormatBool(sc.Bool())
	case types.DtypeStruct:
		parts := make([]string, len(sc.StructFields()))
		for i, f := range sc.StructFields() {
			parts[i] = f.String()
		}
		return strings.Join(parts, ";")
	default:
		return sc.String()
	}
}

func writeRow(w io.Writer, batch record.Batch, row int) error {
	for col := 0; col < batch.NumCols(); col++ {
		if col > 0 {
			if _, err := w.Write([]byte{','}); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, formatCell(batch.Column(col), row)); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte{'\n'})
	return err
}

// drain pulls every batch from op, writing at most maxRows rows (maxRows
// < 0 means unbounded) to w, and returns the number of rows written.
func drain(ctx context.Context, w io.Writer, op Operator, maxRows int) (int, error) {
	written := 0
	for {
		if maxRows >= 0 && written >= maxRows {
			return written, nil
		}
		batch, ok, err := op.Next(ctx)
		if err != nil {
			return written, err
		}
		if !ok {
			return written, nil
		}
		for row := 0; row < batch.NumRows(); row++ {
			if maxRows >= 0 && written >= maxRows {
				return written, nil
			}
			if err := writeRow(w, batch, row); err != nil {
				return written, err
			}
			written++
		}
	}
}

// Drain executes op to completion against w, applying plan's sink
// semantics (row limit for Show, nothing special for Interactive/Write -
// Write's choice of file vs string is resolved by the caller, which
// decides what io.Writer backs w). It returns the row count written.
func Drain(ctx context.Context, w io.Writer, plan PhysicalPlan, op Operator) (int, error) {
	switch p := plan.(type) {
	case Show:
		return drain(ctx, w, op, p.Count)
	default:
		return drain(ctx, w, op, -1)
	}
}

// DrainString runs op to completion and returns its CSV-like textual dump
// as a single string, for the Write{string} sink.
func DrainString(ctx context.Context, op Operator) (string, error) {
	var sb strings.Builder
	if _, err := drain(ctx, &sb, op, -1); err != nil {
		return "", err
	}
	return sb.String(), nil
}
