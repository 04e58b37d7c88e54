// Package calc implements integer arithmetic as a set of interchangeable
// operations selected by name at runtime.
//
// A Calculator resolves an operation token (sum, sub, mult, div) to a Kind,
// looks the Kind up in a Registry and runs the bound Operation against a pair
// of operands. All arithmetic is on int64 and wraps on overflow using Go's
// two's-complement semantics, including math.MinInt64 / -1.
package calc

import (
	"strings"

	"github.com/githubnext/stratcalc/internal/logger"
)

var logKind = logger.New("calc:kind")

// Kind identifies one of the supported operations
type Kind int

const (
	// KindUnrecognized is the zero value. It is never stored in a Registry.
	KindUnrecognized Kind = iota
	KindSum
	KindSub
	KindMult
	KindDiv
)

var kindTokens = map[Kind]string{
	KindSum:  "sum",
	KindSub:  "sub",
	KindMult: "mult",
	KindDiv:  "div",
}

// Kinds returns the valid kinds in declaration order
func Kinds() []Kind {
	return []Kind{KindSum, KindSub, KindMult, KindDiv}
}

// Tokens returns the operation tokens accepted by ParseKind, in declaration order
func Tokens() []string {
	kinds := Kinds()
	tokens := make([]string, 0, len(kinds))
	for _, k := range kinds {
		tokens = append(tokens, k.String())
	}
	return tokens
}

// String returns the canonical lowercase token for the kind
func (k Kind) String() string {
	if token, ok := kindTokens[k]; ok {
		return token
	}
	return "unrecognized"
}

// Valid reports whether k is one of the four operation kinds
func (k Kind) Valid() bool {
	_, ok := kindTokens[k]
	return ok
}

// ParseKind resolves a token to a Kind. Matching is case-insensitive and
// exact after trimming surrounding whitespace; there is no prefix matching.
func ParseKind(token string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	for _, k := range Kinds() {
		if kindTokens[k] == normalized {
			logKind.Printf("Resolved token %q to kind %s", token, k)
			return k, nil
		}
	}

	logKind.Printf("Token %q did not match any kind", token)
	return KindUnrecognized, &UnrecognizedOperationError{Token: token}
}
