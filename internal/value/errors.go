package value

import "errors"

var (
	// ErrTypeMismatch is returned when a kernel receives operands whose
	// dtypes are not compatible with the requested operation.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnsupportedDtype is returned when a kernel is asked to operate on
	// a dtype it does not implement (e.g. arithmetic over Utf8).
	ErrUnsupportedDtype = errors.New("unsupported dtype for this operation")
	// ErrDivideByZero is returned by integer division/modulo kernels; float
	// division follows IEEE-754 and never returns this error.
	ErrDivideByZero = errors.New("division by zero")
	// ErrCastUnsupported is returned when a cast between two dtypes has no
	// defined conversion (e.g. Boolean or Struct as a cast source).
	ErrCastUnsupported = errors.New("unsupported cast")
	// ErrCastFailed is returned when a value cannot be converted to the
	// target dtype (e.g. parsing a non-numeric string as Int64).
	ErrCastFailed = errors.New("cast failed")
)
