// Error taxonomy shared by every engine
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when two operands differ in width or height.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidParameter covers out-of-range scalars and malformed buffers.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrMissingOperand is returned when a two-operand operation gets no second buffer.
	ErrMissingOperand = errors.New("missing operand")
	// ErrInvalidOperation is returned for unknown operation names.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrStaleResult is returned when a result was computed from inputs that have since changed.
	ErrStaleResult = errors.New("stale result")
)

// OperationError ties a failure to the operation that produced it
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Errorf builds an OperationError whose chain includes kind.
func Errorf(op string, kind error, format string, args ...interface{}) error {
	return &OperationError{
		Op:  op,
		Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}
