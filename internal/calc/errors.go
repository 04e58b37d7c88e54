package calc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedOperation is returned when an operation token matches no known kind.
	ErrUnrecognizedOperation = errors.New("unrecognized operation")

	// ErrNotConfigured is returned by Calculate when no operation is bound.
	ErrNotConfigured = errors.New("calculator not configured")

	// ErrDivisionByZero is returned by the div operation when the second operand is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidKind is returned when registering an operation under a kind
	// outside the enumeration, including KindUnrecognized.
	ErrInvalidKind = errors.New("invalid operation kind")

	// ErrNilOperation is returned when registering a nil operation.
	ErrNilOperation = errors.New("nil operation")
)

// UnrecognizedOperationError carries the token that failed to resolve.
type UnrecognizedOperationError struct {
	Token string
}

// Error implements the error interface
func (e *UnrecognizedOperationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnrecognizedOperation, e.Token)
}

// Unwrap allows errors.Is(err, ErrUnrecognizedOperation)
func (e *UnrecognizedOperationError) Unwrap() error {
	return ErrUnrecognizedOperation
}
