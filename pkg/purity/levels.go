package purity

import (
	"fmt"

	"jtv/interpreter-go/pkg/ast"
)

// Level is a point on the purity chain Total < Pure < Impure.
type Level int

const (
	Total Level = iota
	Pure
	Impure
)

func (l Level) String() string {
	switch l {
	case Total:
		return "total"
	case Pure:
		return "pure"
	case Impure:
		return "impure"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Max returns the less restrictive level.
func Max(a, b Level) Level {
	if a > b {
		return a
	}
	return b
}

// FromAnnotation maps a declaration's annotation to a level. A missing
// annotation is impure.
func FromAnnotation(a ast.PurityAnnotation) Level {
	switch a {
	case ast.PurityTotal:
		return Total
	case ast.PurityPure:
		return Pure
	default:
		return Impure
	}
}

// DataContextAllowed reports whether a function at this level may be called
// from a Data expression.
func (l Level) DataContextAllowed() bool {
	return l <= Pure
}
