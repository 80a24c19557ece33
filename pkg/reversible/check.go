// Package reversible executes reverse blocks forward while recording a trace
// that can be replayed backward to restore the touched variables.
package reversible

import (
	"fmt"

	"jtv/interpreter-go/pkg/ast"
)

type ErrorKind int

const (
	TargetInExpression ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case TargetInExpression:
		return "TargetInExpression"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a static reversibility violation.
type Error struct {
	Kind     ErrorKind
	Variable string
	Op       *ast.ReversibleOp
}

func (e Error) Error() string {
	return fmt.Sprintf("reversible: '%s %s ...' reads its own target '%s'", e.Variable, e.Op.Operator, e.Variable)
}

// Check verifies that no op's target occurs free in its own operand. The
// inverse of x += e subtracts the captured e, so e must not depend on x.
func Check(block *ast.ReverseBlock) []Error {
	if block == nil {
		return nil
	}
	var errs []Error
	for _, op := range block.Ops {
		if ast.ContainsVariable(op.Value, op.Target) {
			errs = append(errs, Error{Kind: TargetInExpression, Variable: op.Target, Op: op})
		}
	}
	return errs
}

// CheckProgram runs Check on every reverse block in the program, including
// those inside function bodies.
func CheckProgram(program *ast.Program) []Error {
	if program == nil {
		return nil
	}
	var errs []Error
	ast.Inspect(program, func(n ast.Node) bool {
		if block, ok := n.(*ast.ReverseBlock); ok {
			errs = append(errs, Check(block)...)
			return false
		}
		return true
	})
	return errs
}
