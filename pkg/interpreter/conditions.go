package interpreter

import (
	"fmt"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// evalCondition decides an if or while guard. A bare data expression is
// true when nonzero.
func (i *Interpreter) evalCondition(cond ast.Condition, state *runtime.State) (bool, error) {
	switch n := cond.(type) {
	case *ast.BooleanLiteral:
		return n.Value, nil
	case *ast.ComparisonExpression:
		return i.evalComparison(n, state)
	case *ast.LogicalExpression:
		left, err := i.evalCondition(n.Left, state)
		if err != nil {
			return false, err
		}
		switch n.Operator {
		case ast.LogicalAnd:
			if !left {
				return false, nil
			}
		case ast.LogicalOr:
			if left {
				return true, nil
			}
		default:
			return false, fmt.Errorf("interpreter: unknown logical operator %q", n.Operator)
		}
		return i.evalCondition(n.Right, state)
	case *ast.NotExpression:
		v, err := i.evalCondition(n.Operand, state)
		return !v, err
	case ast.DataExpr:
		v, err := i.EvalData(n, state)
		if err != nil {
			return false, err
		}
		zero, err := runtime.IsZero(v)
		if err != nil {
			return false, convertError(err, n)
		}
		return !zero, nil
	default:
		return false, fmt.Errorf("interpreter: unsupported condition %T", cond)
	}
}

func (i *Interpreter) evalComparison(n *ast.ComparisonExpression, state *runtime.State) (bool, error) {
	left, err := i.EvalData(n.Left, state)
	if err != nil {
		return false, err
	}
	right, err := i.EvalData(n.Right, state)
	if err != nil {
		return false, err
	}
	if !n.Operator.Ordering() {
		eq, err := runtime.Equal(left, right)
		if err != nil {
			return false, convertError(err, n)
		}
		if n.Operator == ast.CompareNotEqual {
			return !eq, nil
		}
		return eq, nil
	}
	cmp, ok, err := runtime.Compare(left, right)
	if err != nil {
		return false, convertError(err, n)
	}
	if !ok {
		// NaN is unordered against everything.
		return false, nil
	}
	switch n.Operator {
	case ast.CompareLess:
		return cmp < 0, nil
	case ast.CompareLessEqual:
		return cmp <= 0, nil
	case ast.CompareGreater:
		return cmp > 0, nil
	case ast.CompareGreaterEqual:
		return cmp >= 0, nil
	}
	return false, fmt.Errorf("interpreter: unknown comparison operator %q", n.Operator)
}
