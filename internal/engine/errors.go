package engine

import "errors"

// ErrRemoteUnsupported is returned by Execute whenever the context is
// configured with Config.Remote: distributed execution is out of scope
// for this core (spec Non-goals), but the Remote variant is kept so
// callers can fail on it explicitly rather than it not existing at all.
var ErrRemoteUnsupported = errors.New("remote execution is not supported by this core")

// ErrTableNotRegistered is returned when a query references a table name
// that was never registered via ExecutionContext.RegisterTable.
var ErrTableNotRegistered = errors.New("table not registered")

// ErrTableAlreadyRegistered is returned by RegisterTable when the name is
// already taken - tables are registered once, not silently replaced.
var ErrTableAlreadyRegistered = errors.New("table already registered")
