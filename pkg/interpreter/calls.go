package interpreter

import (
	"errors"
	"fmt"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
	"jtv/interpreter-go/pkg/typechecker"
)

// call invokes a builtin or declared function. The result is nil when a
// function body finishes without returning a value.
func (i *Interpreter) call(node ast.Node, callee string, args []runtime.Value) (runtime.Value, error) {
	if b, ok := runtime.LookupBuiltin(callee); ok {
		return i.callBuiltin(node, b, args)
	}
	fn, ok := i.functions[callee]
	if !ok {
		return nil, &RuntimeError{
			Kind:    UndefinedFunction,
			Node:    node,
			Name:    callee,
			Message: fmt.Sprintf("undefined function '%s'", callee),
		}
	}
	if len(args) != len(fn.Params) {
		return nil, newRuntimeError(TypeMismatch, node, "function '%s' expects %d argument(s), got %d", callee, len(fn.Params), len(args))
	}
	if i.depth >= i.config.MaxCallDepth {
		return nil, &RuntimeError{
			Kind:    StackDepthExceeded,
			Node:    node,
			Name:    callee,
			Limit:   i.config.MaxCallDepth,
			Message: fmt.Sprintf("call depth limit of %d exceeded calling '%s'", i.config.MaxCallDepth, callee),
		}
	}
	if err := i.ctx.Err(); err != nil {
		return nil, convertError(err, node)
	}

	frame := runtime.NewState()
	for idx, param := range fn.Params {
		v, err := coerceTo(args[idx], param.Type)
		if err != nil {
			return nil, newRuntimeError(TypeMismatch, node, "argument '%s' of '%s': %s", param.Name, callee, err)
		}
		frame.Set(param.Name, v)
	}

	i.depth++
	err := i.ExecControl(fn.Body, frame)
	i.depth--

	var ret returnSignal
	switch {
	case err == nil:
		return nil, nil
	case errors.As(err, &ret):
		if ret.value == nil {
			return nil, nil
		}
		v, cerr := coerceTo(ret.value, fn.ReturnType)
		if cerr != nil {
			return nil, newRuntimeError(TypeMismatch, node, "result of '%s': %s", callee, cerr)
		}
		return v, nil
	default:
		return nil, err
	}
}

func (i *Interpreter) callBuiltin(node ast.Node, b runtime.Builtin, args []runtime.Value) (runtime.Value, error) {
	if len(args) != b.Arity {
		return nil, newRuntimeError(TypeMismatch, node, "builtin '%s' expects %d argument(s), got %d", b.Name, b.Arity, len(args))
	}
	for _, arg := range args {
		if !b.AcceptsKind(arg.Kind()) {
			return nil, newRuntimeError(TypeMismatch, node, "builtin '%s' does not accept %s", b.Name, arg.Kind())
		}
	}
	v, err := b.Apply(args)
	if err != nil {
		return nil, convertError(err, node)
	}
	if n, ok := v.(runtime.IntegerValue); ok {
		if err := i.arith.CheckInteger(n); err != nil {
			return nil, convertError(err, node)
		}
	}
	return v, nil
}

// coerceTo widens v to an annotated type. Unannotated slots take v as is.
func coerceTo(v runtime.Value, annotation ast.TypeAnnotation) (runtime.Value, error) {
	typ, ok := typechecker.FromAnnotation(annotation)
	if !ok {
		return nil, fmt.Errorf("unknown type annotation %q", annotation)
	}
	numeric, ok := typ.(typechecker.NumericType)
	if !ok {
		return v, nil
	}
	return runtime.Coerce(v, numeric.Kind)
}
