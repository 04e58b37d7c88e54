package calc

// Operands is the pair of integers an Operation is applied to
type Operands struct {
	First  int64
	Second int64
}

// Operation is a stateless computation over a pair of operands
type Operation interface {
	// Name returns the identifier for this operation (e.g., "sum")
	Name() string

	// Compute applies the operation. Implementations must not panic.
	Compute(Operands) (int64, error)
}

// Sum adds the operands
type Sum struct{}

// Name returns the identifier for this operation
func (Sum) Name() string { return "sum" }

// Compute returns First + Second
func (Sum) Compute(o Operands) (int64, error) {
	return o.First + o.Second, nil
}

// Sub subtracts the second operand from the first
type Sub struct{}

// Name returns the identifier for this operation
func (Sub) Name() string { return "sub" }

// Compute returns First - Second
func (Sub) Compute(o Operands) (int64, error) {
	return o.First - o.Second, nil
}

// Mult multiplies the operands
type Mult struct{}

// Name returns the identifier for this operation
func (Mult) Name() string { return "mult" }

// Compute returns First * Second
func (Mult) Compute(o Operands) (int64, error) {
	return o.First * o.Second, nil
}

// Div divides the first operand by the second, truncating toward zero
type Div struct{}

// Name returns the identifier for this operation
func (Div) Name() string { return "div" }

// Compute returns First / Second, or ErrDivisionByZero when Second is zero.
// math.MinInt64 / -1 wraps to math.MinInt64.
func (Div) Compute(o Operands) (int64, error) {
	if o.Second == 0 {
		return 0, ErrDivisionByZero
	}
	return o.First / o.Second, nil
}

// builtinOperations maps each kind to its built-in operation
var builtinOperations = map[Kind]Operation{
	KindSum:  Sum{},
	KindSub:  Sub{},
	KindMult: Mult{},
	KindDiv:  Div{},
}
