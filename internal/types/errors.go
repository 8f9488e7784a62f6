package types

import "errors"

// ErrUnknownColumn is wrapped by Schema.LocateColumn when a name has no match.
var ErrUnknownColumn = errors.New("unknown column")

// ErrUnknownDtype is wrapped by ParseDtype when a type name has no match.
var ErrUnknownDtype = errors.New("unknown dtype")
