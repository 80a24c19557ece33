package typechecker

import (
	"fmt"

	"jtv/interpreter-go/pkg/ast"
)

type DiagnosticKind int

const (
	UnboundVariable DiagnosticKind = iota
	TypeMismatch
	ArityMismatch
	UndefinedFunction
	DuplicateFunction
	InvalidLiteral
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnboundVariable:
		return "UnboundVariable"
	case TypeMismatch:
		return "TypeMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case UndefinedFunction:
		return "UndefinedFunction"
	case DuplicateFunction:
		return "DuplicateFunction"
	case InvalidLiteral:
		return "InvalidLiteral"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic is a type error. Only the fields relevant to Kind are set.
type Diagnostic struct {
	Kind     DiagnosticKind
	Message  string
	Node     ast.Node
	Name     string
	Expected string
	Found    string
	Want     int
	Got      int
}

func (d Diagnostic) Error() string { return d.Message }

func unboundVariable(node ast.Node, name string) Diagnostic {
	return Diagnostic{
		Kind:    UnboundVariable,
		Message: fmt.Sprintf("typechecker: unbound variable '%s'", name),
		Node:    node,
		Name:    name,
	}
}

func typeMismatch(node ast.Node, context, expected, found string) Diagnostic {
	return Diagnostic{
		Kind:     TypeMismatch,
		Message:  fmt.Sprintf("typechecker: %s expected %s, found %s", context, expected, found),
		Node:     node,
		Expected: expected,
		Found:    found,
	}
}

func arityMismatch(node ast.Node, fn string, want, got int) Diagnostic {
	return Diagnostic{
		Kind:    ArityMismatch,
		Message: fmt.Sprintf("typechecker: function '%s' expects %d arguments, got %d", fn, want, got),
		Node:    node,
		Name:    fn,
		Want:    want,
		Got:     got,
	}
}

func undefinedFunction(node ast.Node, fn string) Diagnostic {
	return Diagnostic{
		Kind:    UndefinedFunction,
		Message: fmt.Sprintf("typechecker: undefined function '%s'", fn),
		Node:    node,
		Name:    fn,
	}
}
