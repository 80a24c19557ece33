package interpreter

import (
	"fmt"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// ExecControl executes stmt against state. A return escapes as a
// returnSignal for the enclosing call, or the program, to catch.
func (i *Interpreter) ExecControl(stmt ast.ControlStmt, state *runtime.State) error {
	if stmt == nil {
		return nil
	}
	switch n := stmt.(type) {
	case *ast.SkipStatement:
		return nil
	case *ast.AssignStatement:
		v, err := i.EvalData(n.Value, state)
		if err != nil {
			return err
		}
		state.Set(n.Target, v)
		return nil
	case *ast.SequenceStatement:
		if err := i.ExecControl(n.First, state); err != nil {
			return err
		}
		return i.ExecControl(n.Second, state)
	case *ast.IfStatement:
		ok, err := i.evalCondition(n.Condition, state)
		if err != nil {
			return err
		}
		if ok {
			return i.ExecControl(n.Then, state)
		}
		return i.ExecControl(n.Else, state)
	case *ast.WhileLoop:
		return i.execWhile(n, state)
	case *ast.ForRangeLoop:
		return i.execForRange(n, state)
	case *ast.ReturnStatement:
		if n.Value == nil {
			return returnSignal{}
		}
		v, err := i.EvalData(n.Value, state)
		if err != nil {
			return err
		}
		return returnSignal{value: v}
	case *ast.PrintStatement:
		values, err := i.evalArgs(n.Values, state)
		if err != nil {
			return err
		}
		return i.emit(values)
	case *ast.ReverseBlock:
		trace, err := i.reverser.Forward(n, state)
		if err != nil {
			return convertError(err, n)
		}
		// A block inside a call updates that call's frame, which is gone
		// by the time anyone could Undo it.
		if i.depth == 0 {
			i.traces = append(i.traces, trace)
		}
		return nil
	case *ast.FunctionDeclaration:
		// hoisted by Load
		return nil
	case *ast.CallStatement:
		args, err := i.evalArgs(n.Args, state)
		if err != nil {
			return err
		}
		v, err := i.call(n, n.Callee, args)
		if err != nil {
			return err
		}
		if n.Target == "" {
			return nil
		}
		if v == nil {
			return missingReturn(n, n.Callee)
		}
		state.Set(n.Target, v)
		return nil
	default:
		return fmt.Errorf("interpreter: unsupported statement %T", stmt)
	}
}

func (i *Interpreter) execWhile(n *ast.WhileLoop, state *runtime.State) error {
	for {
		ok, err := i.evalCondition(n.Condition, state)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := i.tick(n); err != nil {
			return err
		}
		if err := i.ExecControl(n.Body, state); err != nil {
			return err
		}
	}
}

// execForRange evaluates both bounds once and iterates the half-open range.
// The loop variable shadows any outer binding, which is restored afterwards.
func (i *Interpreter) execForRange(n *ast.ForRangeLoop, state *runtime.State) error {
	lo, err := i.rangeBound(n.Start, state, "start")
	if err != nil {
		return err
	}
	hi, err := i.rangeBound(n.End, state, "end")
	if err != nil {
		return err
	}
	outer, hadOuter := state.Get(n.Variable)
	defer func() {
		if hadOuter {
			state.Set(n.Variable, outer)
		} else {
			state.Delete(n.Variable)
		}
	}()
	var loopErr error
	runtime.IntegerRange(lo.Val, hi.Val, func(v runtime.IntegerValue) bool {
		if loopErr = i.tick(n); loopErr != nil {
			return false
		}
		state.Set(n.Variable, v)
		loopErr = i.ExecControl(n.Body, state)
		return loopErr == nil
	})
	return loopErr
}

func (i *Interpreter) rangeBound(expr ast.DataExpr, state *runtime.State, which string) (runtime.IntegerValue, error) {
	v, err := i.EvalData(expr, state)
	if err != nil {
		return runtime.IntegerValue{}, err
	}
	iv, ok := v.(runtime.IntegerValue)
	if !ok {
		return runtime.IntegerValue{}, newRuntimeError(TypeMismatch, expr, "range %s must be Int, found %s", which, v.Kind())
	}
	return iv, nil
}
