package engine

import "errors"

// ErrInvalidArgument is returned by configuration setters given an
// out-of-range value. The engine's state is left unchanged.
var ErrInvalidArgument = errors.New("engine: invalid argument")

// ErrInvariantViolation is logged when a Game implementation breaks the
// stack discipline the engine relies on, e.g. calling Unmake without a
// matching prior Make. It is fatal to the in-flight search: ComputeBestMove
// recovers the panic, logs it with this error, and returns the best partial
// move it had; the error itself is not returned to the caller.
var ErrInvariantViolation = errors.New("engine: invariant violation")
