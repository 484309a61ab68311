package document

import "fmt"

// InvariantError is the panic value raised when the chunk tree is found in
// a state no valid sequence of edits can produce. It signals corruption, not
// a caller mistake.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("document: %s: %s", e.Op, e.Detail)
}

func invariant(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
