package calc

import (
	"fmt"

	"github.com/githubnext/stratcalc/internal/logger"
)

var logCalculator = logger.New("calc:calculator")

// Calculator runs a single operation chosen by name at construction time.
//
// A Calculator built from an unrecognized name is unconfigured: it is still
// usable, but Calculate always fails with ErrNotConfigured. Callers must not
// treat its zero result as an answer.
type Calculator struct {
	kind      Kind
	operation Operation
}

// New creates a calculator for the named operation using the built-in operations.
// If the name is not recognized, New returns an unconfigured calculator along
// with an *UnrecognizedOperationError.
func New(name string) (*Calculator, error) {
	return NewWithRegistry(name, nil)
}

// NewWithRegistry is like New but resolves the operation from the given
// registry. A nil registry means NewDefaultRegistry().
func NewWithRegistry(name string, registry *Registry) (*Calculator, error) {
	kind, err := ParseKind(name)
	if err != nil {
		logCalculator.Printf("Calculator left unconfigured: %v", err)
		return &Calculator{}, err
	}

	if registry == nil {
		registry = NewDefaultRegistry()
	}

	op, ok := registry.Resolve(kind)
	if !ok {
		logCalculator.Printf("No operation registered for kind %s", kind)
		return &Calculator{}, fmt.Errorf("%w: no operation registered for %s", ErrNotConfigured, kind)
	}

	logCalculator.Printf("Calculator configured with operation '%s'", op.Name())
	return &Calculator{kind: kind, operation: op}, nil
}

// Kind returns the bound kind, or KindUnrecognized if unconfigured
func (c *Calculator) Kind() Kind {
	return c.kind
}

// Configured reports whether an operation is bound
func (c *Calculator) Configured() bool {
	return c.operation != nil
}

// Calculate applies the bound operation to first and second.
// Errors from the operation, such as ErrDivisionByZero, are returned unchanged.
func (c *Calculator) Calculate(first, second int64) (int64, error) {
	if c.operation == nil {
		return 0, ErrNotConfigured
	}

	result, err := c.operation.Compute(Operands{First: first, Second: second})
	if err != nil {
		logCalculator.Printf("%s(%d, %d) failed: %v", c.operation.Name(), first, second, err)
		return 0, err
	}

	logCalculator.Printf("%s(%d, %d) = %d", c.operation.Name(), first, second, result)
	return result, nil
}
