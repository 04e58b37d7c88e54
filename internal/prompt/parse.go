package prompt

import (
	"fmt"
	"strconv"
	"strings"
)

// InputParseError reports a line that is not a base-10 int64
type InputParseError struct {
	Input string
	Err   error
}

// Error implements the error interface
func (e *InputParseError) Error() string {
	return fmt.Sprintf("invalid number %q: %v", e.Input, e.Err)
}

// Unwrap returns the underlying strconv error
func (e *InputParseError) Unwrap() error {
	return e.Err
}

// ParseOperandStrict parses a base-10 int64, ignoring surrounding whitespace
func ParseOperandStrict(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &InputParseError{Input: s, Err: err}
	}
	return n, nil
}

// ParseOperand is the lenient parser used by default: any input that
// ParseOperandStrict rejects (empty, non-numeric, out of range) becomes 0.
// A mistyped number is therefore indistinguishable from an explicit 0.
func ParseOperand(s string) int64 {
	n, err := ParseOperandStrict(s)
	if err != nil {
		return 0
	}
	return n
}
