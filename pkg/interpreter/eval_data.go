package interpreter

import (
	"fmt"
	"math/big"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// EvalData evaluates a Data expression against state. It never writes to
// state; calls run in a fresh frame of their own.
func (i *Interpreter) EvalData(expr ast.DataExpr, state *runtime.State) (runtime.Value, error) {
	if expr == nil {
		return nil, fmt.Errorf("interpreter: nil expression")
	}
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		if n.Value == nil {
			return nil, newRuntimeError(TypeMismatch, n, "integer literal has no value")
		}
		v := runtime.NewInteger(n.Value)
		if err := i.arith.CheckInteger(v); err != nil {
			return nil, convertError(err, n)
		}
		return v, nil
	case *ast.FloatLiteral:
		return runtime.NewFloat(n.Value), nil
	case *ast.RationalLiteral:
		if n.Numerator == nil || n.Denominator == nil {
			return nil, newRuntimeError(TypeMismatch, n, "rational literal is incomplete")
		}
		v, err := runtime.NewRational(n.Numerator, n.Denominator)
		if err != nil {
			return nil, convertError(err, n)
		}
		return v, nil
	case *ast.ComplexLiteral:
		return runtime.NewComplex(n.Real, n.Imag), nil
	case *ast.SymbolicLiteral:
		return runtime.Symbol(n.Name), nil
	case *ast.VariableReference:
		v, ok := state.Get(n.Name)
		if !ok {
			return nil, &RuntimeError{
				Kind:    UnboundVariable,
				Node:    n,
				Name:    n.Name,
				Message: fmt.Sprintf("undefined variable '%s'", n.Name),
			}
		}
		return v, nil
	case *ast.AdditionExpression:
		left, err := i.EvalData(n.Left, state)
		if err != nil {
			return nil, err
		}
		right, err := i.EvalData(n.Right, state)
		if err != nil {
			return nil, err
		}
		sum, err := i.arith.Add(left, right)
		return sum, convertError(err, n)
	case *ast.NegationExpression:
		if lit, ok := n.Operand.(*ast.IntegerLiteral); ok && lit.Value != nil {
			// -128 fits in 8 bits even though 128 does not.
			v := runtime.NewInteger(new(big.Int).Neg(lit.Value))
			if err := i.arith.CheckInteger(v); err != nil {
				return nil, convertError(err, n)
			}
			return v, nil
		}
		v, err := i.EvalData(n.Operand, state)
		if err != nil {
			return nil, err
		}
		neg, err := i.arith.Negate(v)
		return neg, convertError(err, n)
	case *ast.PureCall:
		if i.purity != nil && !i.purity.Effective(n.Callee).DataContextAllowed() {
			if _, declared := i.functions[n.Callee]; declared {
				return nil, &RuntimeError{
					Kind:    ImpureCallInDataContext,
					Node:    n,
					Name:    n.Callee,
					Message: fmt.Sprintf("impure function '%s' called from a data expression", n.Callee),
				}
			}
		}
		args, err := i.evalArgs(n.Args, state)
		if err != nil {
			return nil, err
		}
		v, err := i.call(n, n.Callee, args)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, missingReturn(n, n.Callee)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("interpreter: unsupported data expression %T", expr)
	}
}

// evalArgs evaluates arguments left to right under the caller's state.
func (i *Interpreter) evalArgs(args []ast.DataExpr, state *runtime.State) ([]runtime.Value, error) {
	values := make([]runtime.Value, len(args))
	for idx, arg := range args {
		v, err := i.EvalData(arg, state)
		if err != nil {
			return nil, err
		}
		values[idx] = v
	}
	return values, nil
}

func missingReturn(node ast.Node, callee string) *RuntimeError {
	return &RuntimeError{
		Kind:    MissingReturn,
		Node:    node,
		Name:    callee,
		Message: fmt.Sprintf("function '%s' finished without returning a value", callee),
	}
}
