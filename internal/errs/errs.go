// Package errs defines the four error kinds used across the engine -
// ParseError, PlanError, ExecutionError, IoError - mirroring the teacher's
// sentinel-error-plus-%w style (see column/chunk.go, database/loader.go)
// but adding a Kind so callers can branch on the taxonomy with errors.As
// without depending on every individual sentinel.
package errs

import "fmt"

// Kind identifies which of the four error taxonomies in the design an
// error belongs to.
type Kind uint8

const (
	Parse Kind = iota
	Plan
	Execution
	Io
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse error"
	case Plan:
		return "plan error"
	case Execution:
		return "execution error"
	case Io:
		return "io error"
	default:
		return "error"
	}
}

// Error wraps an underlying cause with a Kind, so callers can use
// errors.Is/errors.As against both the Kind and the original sentinel.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func Parsef(format string, args ...any) *Error {
	return &Error{Kind: Parse, Err: fmt.Errorf(format, args...)}
}

func Planf(format string, args ...any) *Error {
	return &Error{Kind: Plan, Err: fmt.Errorf(format, args...)}
}

func Execf(format string, args ...any) *Error {
	return &Error{Kind: Execution, Err: fmt.Errorf(format, args...)}
}

func Iof(format string, args ...any) *Error {
	return &Error{Kind: Io, Err: fmt.Errorf(format, args...)}
}
