package calc

import (
	"fmt"
	"sort"
	"sync"

	"github.com/githubnext/stratcalc/internal/logger"
)

var logRegistry = logger.New("calc:registry")

// Registry maps operation kinds to operations
type Registry struct {
	operations map[Kind]Operation
	mu         sync.RWMutex
}

// NewRegistry creates a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		operations: make(map[Kind]Operation),
	}
}

// NewDefaultRegistry creates a registry holding the four built-in operations
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, k := range Kinds() {
		// Built-in kinds are always valid and operations are never nil
		_ = r.Register(k, builtinOperations[k])
	}
	return r
}

// Register binds an operation to a kind. Registering a kind that is already
// bound replaces the previous operation: the last registration wins.
func (r *Registry) Register(kind Kind, op Operation) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKind, int(kind))
	}
	if op == nil {
		return fmt.Errorf("%w for kind %s", ErrNilOperation, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.operations[kind]; ok {
		logRegistry.Printf("Replacing operation '%s' for kind '%s' with '%s'", prev.Name(), kind, op.Name())
	}
	r.operations[kind] = op
	logRegistry.Printf("Registered operation '%s' for kind '%s'", op.Name(), kind)
	return nil
}

// Resolve returns the operation bound to kind. The second result is false if
// the kind was never registered, which is always the case for KindUnrecognized.
func (r *Registry) Resolve(kind Kind) (Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.operations[kind]
	return op, ok
}

// Has checks if an operation is registered for a kind
func (r *Registry) Has(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.operations[kind]
	return ok
}

// Kinds returns all registered kinds in declaration order
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.operations))
	for k := range r.operations {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Info returns the name of the operation registered under each kind token
func (r *Registry) Info() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info := make(map[string]string, len(r.operations))
	for kind, op := range r.operations {
		info[kind.String()] = op.Name()
	}
	return info
}
