package interpreter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/purity"
	"jtv/interpreter-go/pkg/reversible"
	"jtv/interpreter-go/pkg/runtime"
	"jtv/interpreter-go/pkg/typechecker"
)

type RuntimeErrorKind int

const (
	UnboundVariable RuntimeErrorKind = iota
	ArithmeticOverflow
	StackDepthExceeded
	IterationLimitExceeded
	TypeMismatch
	MissingReturn
	InvalidConversion
	UndefinedFunction
	ImpureCallInDataContext
	Cancelled
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case UnboundVariable:
		return "UnboundVariable"
	case ArithmeticOverflow:
		return "ArithmeticOverflow"
	case StackDepthExceeded:
		return "StackDepthExceeded"
	case IterationLimitExceeded:
		return "IterationLimitExceeded"
	case TypeMismatch:
		return "TypeMismatch"
	case MissingReturn:
		return "MissingReturn"
	case InvalidConversion:
		return "InvalidConversion"
	case UndefinedFunction:
		return "UndefinedFunction"
	case ImpureCallInDataContext:
		return "ImpureCallInDataContext"
	case Cancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("RuntimeErrorKind(%d)", int(k))
	}
}

var (
	ErrUnboundVariable   = errors.New("unbound variable")
	ErrOverflow          = errors.New("arithmetic overflow")
	ErrStackDepth        = errors.New("stack depth exceeded")
	ErrIterationLimit    = errors.New("iteration limit exceeded")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrMissingReturn     = errors.New("missing return value")
	ErrInvalidConversion = errors.New("invalid conversion")
	ErrUndefinedFunction = errors.New("undefined function")
	ErrImpureCall        = errors.New("impure call in data context")
	ErrCancelled         = errors.New("cancelled")
)

var kindSentinels = map[RuntimeErrorKind]error{
	UnboundVariable:         ErrUnboundVariable,
	ArithmeticOverflow:      ErrOverflow,
	StackDepthExceeded:      ErrStackDepth,
	IterationLimitExceeded:  ErrIterationLimit,
	TypeMismatch:            ErrTypeMismatch,
	MissingReturn:           ErrMissingReturn,
	InvalidConversion:       ErrInvalidConversion,
	UndefinedFunction:       ErrUndefinedFunction,
	ImpureCallInDataContext: ErrImpureCall,
	Cancelled:               ErrCancelled,
}

// RuntimeError aborts the current run. Name, Limit and Steps are set when
// relevant to Kind.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Name    string
	Limit   int
	Steps   int
	Node    ast.Node
	Err     error
}

func (e *RuntimeError) Error() string {
	return "runtime: " + e.Message
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *RuntimeError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func newRuntimeError(kind RuntimeErrorKind, node ast.Node, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Node: node, Message: fmt.Sprintf(format, args...)}
}

// convertError maps a lower-level failure onto the runtime taxonomy.
func convertError(err error, node ast.Node) error {
	if err == nil {
		return nil
	}
	var (
		rtErr     *RuntimeError
		ret       returnSignal
		overflow  runtime.OverflowError
		mismatch  runtime.MismatchError
		unordered runtime.UnorderedError
		conv      runtime.ConversionError
		unbound   reversible.UnboundTargetError
		widening  reversible.WideningError
		revErr    reversible.Error
	)
	switch {
	case errors.As(err, &rtErr), errors.As(err, &ret), errors.As(err, &revErr):
		return err
	case errors.As(err, &overflow):
		return &RuntimeError{Kind: ArithmeticOverflow, Node: node, Err: err, Message: strings.TrimPrefix(err.Error(), "runtime: ")}
	case errors.As(err, &mismatch), errors.As(err, &unordered), errors.As(err, &widening):
		return &RuntimeError{Kind: TypeMismatch, Node: node, Err: err, Message: strings.TrimPrefix(err.Error(), "runtime: ")}
	case errors.As(err, &conv), errors.Is(err, runtime.ErrZeroDenominator):
		return &RuntimeError{Kind: InvalidConversion, Node: node, Err: err, Message: strings.TrimPrefix(err.Error(), "runtime: ")}
	case errors.As(err, &unbound):
		return &RuntimeError{Kind: UnboundVariable, Node: node, Name: unbound.Variable, Err: err, Message: fmt.Sprintf("undefined variable '%s'", unbound.Variable)}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &RuntimeError{Kind: Cancelled, Node: node, Err: err, Message: err.Error()}
	}
	return err
}

// CheckError collects every static error found before execution. Any of
// them prevents the program from running.
type CheckError struct {
	Type          []typechecker.Diagnostic
	Purity        []purity.Error
	Reversibility []reversible.Error
}

func (e *CheckError) Error() string {
	var lines []string
	for _, err := range e.Unwrap() {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes the individual errors to errors.As.
func (e *CheckError) Unwrap() []error {
	out := make([]error, 0, e.Len())
	for _, d := range e.Type {
		out = append(out, d)
	}
	for _, p := range e.Purity {
		out = append(out, p)
	}
	for _, r := range e.Reversibility {
		out = append(out, r)
	}
	return out
}

func (e *CheckError) Len() int {
	return len(e.Type) + len(e.Purity) + len(e.Reversibility)
}
