package function

import "errors"

var (
	// ErrUnknownFunction is returned by Registry.Lookup for an unregistered name.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrArgumentCount is returned when a function is called with the wrong
	// number of arguments.
	ErrArgumentCount = errors.New("wrong number of arguments")
	// ErrArgumentType is returned when an argument's dtype doesn't fit the
	// function's signature.
	ErrArgumentType = errors.New("wrong argument type")
	// ErrUnknownAggregate is returned when an aggregate name doesn't match
	// one of the five supported kinds.
	ErrUnknownAggregate = errors.New("unknown aggregate function")
)
