package purity

import (
	"fmt"

	"jtv/interpreter-go/pkg/ast"
)

type ErrorKind int

const (
	LoopInTotal ErrorKind = iota
	IOInPure
	ImpureCallInDataContext
	AnnotationTooOptimistic
)

func (k ErrorKind) String() string {
	switch k {
	case LoopInTotal:
		return "LoopInTotal"
	case IOInPure:
		return "IOInPure"
	case ImpureCallInDataContext:
		return "ImpureCallInDataContext"
	case AnnotationTooOptimistic:
		return "AnnotationTooOptimistic"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a purity violation. Function names the declaration at fault, or
// the impure callee for ImpureCallInDataContext.
type Error struct {
	Kind     ErrorKind
	Function string
	Required Level
	Declared Level
	// Caller is the enclosing function of an offending data-context call,
	// empty at the top level.
	Caller string
	Node   ast.Node
}

func (e Error) Error() string {
	switch e.Kind {
	case LoopInTotal:
		return fmt.Sprintf("purity: function '%s' is marked total but contains a loop", e.Function)
	case IOInPure:
		return fmt.Sprintf("purity: function '%s' is marked %s but performs I/O", e.Function, e.Declared)
	case ImpureCallInDataContext:
		if e.Caller == "" {
			return fmt.Sprintf("purity: impure function '%s' called from a data expression", e.Function)
		}
		return fmt.Sprintf("purity: impure function '%s' called from a data expression in '%s'", e.Function, e.Caller)
	case AnnotationTooOptimistic:
		return fmt.Sprintf("purity: function '%s' is marked %s but requires %s", e.Function, e.Declared, e.Required)
	default:
		return fmt.Sprintf("purity: %s in '%s'", e.Kind, e.Function)
	}
}
