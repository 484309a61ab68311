package script

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOp is returned for an operation name that is not recognized.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrTooManyOps is returned when a script exceeds the operation limit.
	ErrTooManyOps = errors.New("operation limit exceeded")

	// ErrTimeout is returned when a script runs past its deadline.
	ErrTimeout = errors.New("script timeout")

	// ErrUnsupportedFormat is returned for an unrecognized script format.
	ErrUnsupportedFormat = errors.New("unsupported script format")
)

// OpError reports the operation at which a script stopped.
type OpError struct {
	Index int
	Op    Op
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("op %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// DecodeError reports a script that could not be decoded.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s script: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
