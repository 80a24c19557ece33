package reversible

import (
	"errors"
	"fmt"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// Evaluator evaluates a Data expression without mutating state.
type Evaluator interface {
	EvalData(expr ast.DataExpr, state *runtime.State) (runtime.Value, error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ast.DataExpr, *runtime.State) (runtime.Value, error)

func (f EvaluatorFunc) EvalData(expr ast.DataExpr, state *runtime.State) (runtime.Value, error) {
	return f(expr, state)
}

// UnboundTargetError reports an op whose target has no binding.
type UnboundTargetError struct {
	Variable string
}

func (e UnboundTargetError) Error() string {
	return fmt.Sprintf("reversible: target '%s' is not bound", e.Variable)
}

// WideningError reports an update that would change its target's kind.
type WideningError struct {
	Variable string
	Op       ast.ReversibleOpKind
	Target   runtime.Kind
	Operand  runtime.Kind
}

func (e WideningError) Error() string {
	return fmt.Sprintf("reversible: '%s %s' with a %s operand would widen %s", e.Variable, e.Op, e.Operand, e.Target)
}

// Executor runs reverse blocks.
type Executor struct {
	Eval  Evaluator
	Arith runtime.Arithmetic
}

// Forward executes the block against state and returns its trace. The
// precondition is checked first. If an op fails, the ops already applied
// are undone before the error is returned, so state is left as it was.
func (x Executor) Forward(block *ast.ReverseBlock, state *runtime.State) (*Trace, error) {
	if errs := Check(block); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, errors.Join(joined...)
	}
	trace := &Trace{}
	for _, op := range block.Ops {
		captured, err := x.Eval.EvalData(op.Value, state)
		if err != nil {
			return nil, x.rollback(trace, state, err)
		}
		entry := Entry{Op: op.Operator, Variable: op.Target, Value: captured}
		if err := x.apply(entry, state); err != nil {
			return nil, x.rollback(trace, state, err)
		}
		trace.record(entry)
	}
	return trace, nil
}

// Backward replays the trace in reverse with each operator inverted.
func (x Executor) Backward(trace *Trace, state *runtime.State) error {
	for _, inv := range trace.Inverse() {
		if err := x.apply(inv, state); err != nil {
			return err
		}
	}
	trace.Replayed = true
	return nil
}

// Run is Forward followed immediately by Backward.
func (x Executor) Run(block *ast.ReverseBlock, state *runtime.State) (*Trace, error) {
	trace, err := x.Forward(block, state)
	if err != nil {
		return nil, err
	}
	return trace, x.Backward(trace, state)
}

// apply performs one update. The target keeps its kind, so the inverse
// update lands back on the original value.
func (x Executor) apply(e Entry, state *runtime.State) error {
	current, ok := state.Get(e.Variable)
	if !ok {
		return UnboundTargetError{Variable: e.Variable}
	}
	var (
		next runtime.Value
		err  error
	)
	if e.Op == ast.SubAssign {
		next, err = x.Arith.Subtract(current, e.Value)
	} else {
		next, err = x.Arith.Add(current, e.Value)
	}
	if err != nil {
		return err
	}
	if next.Kind() != current.Kind() {
		return WideningError{Variable: e.Variable, Op: e.Op, Target: current.Kind(), Operand: e.Value.Kind()}
	}
	state.Set(e.Variable, next)
	return nil
}

func (x Executor) rollback(trace *Trace, state *runtime.State, cause error) error {
	if err := x.Backward(trace, state); err != nil {
		return errors.Join(cause, fmt.Errorf("reversible: rollback: %w", err))
	}
	return cause
}
