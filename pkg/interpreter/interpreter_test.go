package interpreter

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/purity"
	"jtv/interpreter-go/pkg/reversible"
	"jtv/interpreter-go/pkg/runtime"
)

func mustRun(t *testing.T, program *ast.Program, cfg Config) *Result {
	t.Helper()
	result, err := Run(context.Background(), program, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

func requireBinding(t *testing.T, state *runtime.State, name, want string) {
	t.Helper()
	v, ok := state.Get(name)
	if !ok {
		t.Fatalf("%s is not bound; have %v", name, state.Names())
	}
	if v.String() != want {
		t.Fatalf("%s = %s, want %s", name, v, want)
	}
}

func requireRuntimeError(t *testing.T, err error, kind RuntimeErrorKind) *RuntimeError {
	t.Helper()
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected RuntimeError %s, got %v", kind, err)
	}
	if rtErr.Kind != kind {
		t.Fatalf("expected RuntimeError %s, got %s: %v", kind, rtErr.Kind, rtErr)
	}
	return rtErr
}

func TestStraightLineProgram(t *testing.T) {
	result := mustRun(t, ast.Prog(
		ast.Assign("x", ast.Int(5)),
		ast.Assign("y", ast.Int(3)),
		ast.Assign("z", ast.Add(ast.Var("x"), ast.Var("y"))),
	), Config{})
	requireBinding(t, result.State, "z", "8")
	if len(result.Output) != 0 {
		t.Fatalf("expected no output, got %v", result.Output)
	}
}

func TestMixedKindArithmeticCoerces(t *testing.T) {
	result := mustRun(t, ast.Prog(
		ast.Assign("a", ast.Add(ast.Int(1), ast.Rat(1, 2))),
		ast.Assign("b", ast.Add(ast.Int(1), ast.Flt(0.5))),
		ast.Assign("c", ast.Add(ast.Flt(1), ast.Cplx(0, 2))),
		ast.Assign("d", ast.Neg(ast.Add(ast.Sym("x"), ast.Sym("y")))),
	), Config{})
	requireBinding(t, result.State, "a", "3/2")
	requireBinding(t, result.State, "b", "1.5")
	requireBinding(t, result.State, "c", "1+2i")
	requireBinding(t, result.State, "d", "-(x + y)")
}

func TestPrintPreservesProgramOrder(t *testing.T) {
	var out bytes.Buffer
	result := mustRun(t, ast.Prog(
		ast.Assign("x", ast.Int(1)),
		ast.Print(ast.Var("x")),
		ast.Print(ast.Hex(255), ast.Rat(2, 4)),
		ast.Print(ast.Flt(0.25)),
	), Config{Output: &out})
	want := []string{"1", "255 1/2", "0.25"}
	if len(result.Output) != len(want) {
		t.Fatalf("output = %v, want %v", result.Output, want)
	}
	for i := range want {
		if result.Output[i] != want[i] {
			t.Fatalf("output[%d] = %q, want %q", i, result.Output[i], want[i])
		}
	}
	if out.String() != "1\n255 1/2\n0.25\n" {
		t.Fatalf("writer got %q", out.String())
	}
}

func TestIfAndWhile(t *testing.T) {
	result := mustRun(t, ast.Prog(
		ast.Assign("i", ast.Int(0)),
		ast.Assign("total", ast.Int(0)),
		ast.While(ast.Cmp(ast.CompareLess, ast.Var("i"), ast.Int(5)),
			ast.Assign("total", ast.Add(ast.Var("total"), ast.Var("i"))),
			ast.Assign("i", ast.Add(ast.Var("i"), ast.Int(1))),
		),
		ast.If(ast.Var("total"),
			ast.Assign("nonzero", ast.Int(1)),
			ast.Assign("nonzero", ast.Int(0)),
		),
		ast.If(ast.And(ast.Bool(false), ast.Cmp(ast.CompareEqual, ast.Var("i"), ast.Int(5))),
			ast.Skip(),
			ast.Assign("shortCircuit", ast.Int(1)),
		),
	), Config{})
	requireBinding(t, result.State, "total", "10")
	requireBinding(t, result.State, "nonzero", "1")
	requireBinding(t, result.State, "shortCircuit", "1")
	if result.Steps != 5 {
		t.Fatalf("steps = %d, want 5", result.Steps)
	}
}

func TestForRangeIsHalfOpenAndShadows(t *testing.T) {
	result := mustRun(t, ast.Prog(
		ast.Assign("i", ast.Int(100)),
		ast.Assign("sum", ast.Int(0)),
		ast.For("i", ast.Int(1), ast.Int(6),
			ast.Assign("sum", ast.Add(ast.Var("sum"), ast.Var("i"))),
		),
	), Config{})
	requireBinding(t, result.State, "sum", "15")
	requireBinding(t, result.State, "i", "100")
}

func TestForRangeBoundsAreEvaluatedOnce(t *testing.T) {
	result := mustRun(t, ast.Prog(
		ast.Assign("n", ast.Int(3)),
		ast.Assign("count", ast.Int(0)),
		ast.For("k", ast.Int(0), ast.Var("n"),
			ast.Assign("n", ast.Add(ast.Var("n"), ast.Int(1))),
			ast.Assign("count", ast.Add(ast.Var("count"), ast.Int(1))),
		),
	), Config{})
	requireBinding(t, result.State, "count", "3")
	requireBinding(t, result.State, "n", "6")
	if _, ok := result.State.Get("k"); ok {
		t.Fatalf("loop variable k should not outlive the loop")
	}
}

func TestReverseBlockLeavesForwardEffect(t *testing.T) {
	program := ast.Prog(
		ast.Assign("x", ast.Int(10)),
		ast.Assign("y", ast.Int(4)),
		ast.Reverse(ast.AddTo("x", ast.Var("y"))),
	)
	interp := New(Config{})
	result, err := interp.Execute(context.Background(), program, ProgramEvaluationOptions{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	requireBinding(t, result.State, "x", "14")
	if len(result.Traces) != 1 || result.Traces[0].String() != "x += 4" {
		t.Fatalf("traces = %v", result.Traces)
	}
	if err := interp.Undo(result.State); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	requireBinding(t, result.State, "x", "10")
	if err := interp.Undo(result.State); err == nil {
		t.Fatalf("second Undo should have nothing left to replay")
	}
}

func TestStaticErrorsPreventExecution(t *testing.T) {
	var out bytes.Buffer
	program := ast.Prog(
		ast.Print(ast.Int(1)),
		ast.Assign("x", ast.Int(1)),
		ast.Reverse(ast.AddTo("x", ast.Var("x"))),
	)
	result, err := Run(context.Background(), program, Config{Output: &out})
	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("expected CheckError, got %v", err)
	}
	var revErr reversible.Error
	if !errors.As(err, &revErr) || revErr.Kind != reversible.TargetInExpression {
		t.Fatalf("expected TargetInExpression, got %v", err)
	}
	if out.Len() != 0 || len(result.Output) != 0 {
		t.Fatalf("nothing should print when checks fail; got %q", out.String())
	}
}

func TestImpureCallInDataExpressionNeverRuns(t *testing.T) {
	var out bytes.Buffer
	program := ast.Prog(
		ast.Fn("log", ast.PurityImpure, []*ast.Parameter{ast.Param("v", ast.TypeInt)}, ast.TypeInt,
			ast.Print(ast.Var("v")),
			ast.Ret(ast.Var("v")),
		),
		ast.Print(ast.Int(0)),
		ast.Assign("x", ast.Call("log", ast.Int(1))),
	)
	_, err := Run(context.Background(), program, Config{Output: &out})
	var purityErr purity.Error
	if !errors.As(err, &purityErr) || purityErr.Kind != purity.ImpureCallInDataContext {
		t.Fatalf("expected ImpureCallInDataContext, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("program must not run, printed %q", out.String())
	}

	// Without the checks the same call is stopped at run time.
	_, err = New(Config{}).Execute(context.Background(), program, ProgramEvaluationOptions{SkipChecks: true})
	requireRuntimeError(t, err, ImpureCallInDataContext)
}

func TestIterationLimitIsExact(t *testing.T) {
	program := ast.Prog(ast.While(ast.Bool(true)))
	result, err := Run(context.Background(), program, Config{MaxSteps: 1000})
	rtErr := requireRuntimeError(t, err, IterationLimitExceeded)
	if rtErr.Limit != 1000 || rtErr.Steps != 1000 {
		t.Fatalf("limit/steps = %d/%d, want 1000/1000", rtErr.Limit, rtErr.Steps)
	}
	if !errors.Is(err, ErrIterationLimit) {
		t.Fatalf("errors.Is(err, ErrIterationLimit) = false")
	}
	if result == nil || result.Steps != 1000 {
		t.Fatalf("partial result should report 1000 steps, got %+v", result)
	}
}

func TestIterationLimitCountsForRange(t *testing.T) {
	program := ast.Prog(
		ast.Assign("n", ast.Int(0)),
		ast.For("i", ast.Int(0), ast.Int(50), ast.Assign("n", ast.Add(ast.Var("n"), ast.Int(1)))),
	)
	result, err := Run(context.Background(), program, Config{MaxSteps: 10})
	requireRuntimeError(t, err, IterationLimitExceeded)
	requireBinding(t, result.State, "n", "10")
}

func TestFunctionCalls(t *testing.T) {
	program := ast.Prog(
		ast.Fn("double", ast.PurityTotal, []*ast.Parameter{ast.Param("v", ast.TypeInt)}, ast.TypeInt,
			ast.Ret(ast.Add(ast.Var("v"), ast.Var("v"))),
		),
		ast.Fn("half", ast.PurityTotal, []*ast.Parameter{ast.Param("v", ast.TypeRational)}, ast.TypeRational,
			ast.Ret(ast.Add(ast.Var("v"), ast.Neg(ast.Var("v")))),
		),
		ast.Assign("v", ast.Int(99)),
		ast.Assign("a", ast.Call("double", ast.Int(21))),
		ast.Assign("b", ast.Call("half", ast.Int(3))),
		ast.Assign("c", ast.Call("float", ast.Rat(1, 4))),
		ast.CallStmt("d", "double", ast.Var("a")),
	)
	result := mustRun(t, program, Config{})
	requireBinding(t, result.State, "a", "42")
	requireBinding(t, result.State, "b", "0")
	requireBinding(t, result.State, "c", "0.25")
	requireBinding(t, result.State, "d", "84")
	requireBinding(t, result.State, "v", "99")
}

func TestCallStatementMayPrint(t *testing.T) {
	program := ast.Prog(
		ast.Fn("show", "", []*ast.Parameter{ast.Param("v", "")}, "",
			ast.Print(ast.Var("v")),
		),
		ast.CallStmt("", "show", ast.Sym("hello")),
	)
	result := mustRun(t, program, Config{})
	if len(result.Output) != 1 || result.Output[0] != "hello" {
		t.Fatalf("output = %v", result.Output)
	}
}

func TestFunctionsCalledBeforeDeclaration(t *testing.T) {
	program := ast.Prog(
		ast.Assign("x", ast.Call("inc", ast.Int(1))),
		ast.Fn("inc", ast.PurityTotal, []*ast.Parameter{ast.Param("v", ast.TypeInt)}, ast.TypeInt,
			ast.Ret(ast.Add(ast.Var("v"), ast.Int(1))),
		),
	)
	result := mustRun(t, program, Config{})
	requireBinding(t, result.State, "x", "2")
}

// countdown recurses n times before returning 0.
func countdown() *ast.FunctionDeclaration {
	return ast.Fn("countdown", ast.PurityPure, []*ast.Parameter{ast.Param("n", ast.TypeInt)}, ast.TypeInt,
		ast.If(ast.Cmp(ast.CompareLessEqual, ast.Var("n"), ast.Int(0)),
			ast.Ret(ast.Int(0)),
			ast.Ret(ast.Call("countdown", ast.Add(ast.Var("n"), ast.Int(-1)))),
		),
	)
}

func TestRecursionWithinDepthLimit(t *testing.T) {
	result := mustRun(t, ast.Prog(countdown(), ast.Assign("r", ast.Call("countdown", ast.Int(50)))), Config{MaxCallDepth: 100})
	requireBinding(t, result.State, "r", "0")
}

func TestStackDepthExceeded(t *testing.T) {
	_, err := Run(context.Background(), ast.Prog(countdown(), ast.Assign("r", ast.Call("countdown", ast.Int(500)))), Config{MaxCallDepth: 100})
	rtErr := requireRuntimeError(t, err, StackDepthExceeded)
	if rtErr.Limit != 100 {
		t.Fatalf("limit = %d, want 100", rtErr.Limit)
	}
	if !errors.Is(err, ErrStackDepth) {
		t.Fatalf("errors.Is(err, ErrStackDepth) = false")
	}
}

func TestOverflowIsReported(t *testing.T) {
	program := ast.Prog(
		ast.Assign("x", ast.Int(120)),
		ast.Assign("y", ast.Add(ast.Var("x"), ast.Int(10))),
	)
	result, err := Run(context.Background(), program, Config{IntegerBits: 8})
	requireRuntimeError(t, err, ArithmeticOverflow)
	if _, ok := result.State.Get("y"); ok {
		t.Fatalf("failed assignment must not bind y")
	}
	_, err = Run(context.Background(), ast.Prog(ast.Assign("x", ast.Int(300))), Config{IntegerBits: 8})
	requireRuntimeError(t, err, ArithmeticOverflow)
}

func TestMissingReturnValue(t *testing.T) {
	program := ast.Prog(
		ast.Fn("maybe", ast.PurityTotal, []*ast.Parameter{ast.Param("v", ast.TypeInt)}, ast.TypeInt,
			ast.If(ast.Var("v"), ast.Ret(ast.Var("v")), ast.Skip()),
		),
		ast.Assign("a", ast.Call("maybe", ast.Int(3))),
		ast.Assign("b", ast.Call("maybe", ast.Int(0))),
	)
	result, err := Run(context.Background(), program, Config{})
	rtErr := requireRuntimeError(t, err, MissingReturn)
	if rtErr.Name != "maybe" {
		t.Fatalf("name = %q", rtErr.Name)
	}
	requireBinding(t, result.State, "a", "3")
}

func TestTopLevelReturnHaltsProgram(t *testing.T) {
	result := mustRun(t, ast.Prog(
		ast.Assign("x", ast.Int(7)),
		ast.Ret(ast.Var("x")),
		ast.Print(ast.Var("x")),
	), Config{})
	if result.Value == nil || result.Value.String() != "7" {
		t.Fatalf("value = %v, want 7", result.Value)
	}
	if len(result.Output) != 0 {
		t.Fatalf("statements after return must not run, got %v", result.Output)
	}
}

func TestUnannotatedParameterMismatchAtRunTime(t *testing.T) {
	program := ast.Prog(
		ast.Fn("mix", ast.PurityTotal, []*ast.Parameter{ast.Param("a", ""), ast.Param("b", "")}, "",
			ast.Ret(ast.Add(ast.Var("a"), ast.Var("b"))),
		),
		ast.Assign("r", ast.Call("mix", ast.Flt(1.5), ast.Rat(1, 2))),
	)
	_, err := Run(context.Background(), program, Config{})
	requireRuntimeError(t, err, TypeMismatch)
}

func TestCancelledContextStopsLoops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, ast.Prog(ast.While(ast.Bool(true))), Config{})
	requireRuntimeError(t, err, Cancelled)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestInitialStateIsNotMutated(t *testing.T) {
	initial := runtime.StateFrom(map[string]runtime.Value{"x": runtime.Int64(1)})
	result, err := New(Config{}).Execute(context.Background(),
		ast.Prog(ast.Assign("x", ast.Int(2))),
		ProgramEvaluationOptions{SkipChecks: true, Initial: initial},
	)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	requireBinding(t, result.State, "x", "2")
	requireBinding(t, initial, "x", "1")
}

func TestReverseBlocksInsideCallsAreNotUndoable(t *testing.T) {
	bump := ast.Fn("bump", ast.PurityTotal, []*ast.Parameter{ast.Param("a", ast.TypeInt)}, ast.TypeInt,
		ast.Reverse(ast.AddTo("a", ast.Int(1))),
		ast.Ret(ast.Var("a")),
	)
	program := ast.Prog(bump,
		ast.Assign("x", ast.Call("bump", ast.Int(5))),
		ast.Assign("a", ast.Int(100)),
	)
	interp := New(Config{})
	result, err := interp.Execute(context.Background(), program, ProgramEvaluationOptions{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	requireBinding(t, result.State, "x", "6")
	if len(result.Traces) != 0 {
		t.Fatalf("traces = %v, want none from inside bump", result.Traces)
	}
	if err := interp.Undo(result.State); err == nil {
		t.Fatalf("Undo should have nothing to replay")
	}
	requireBinding(t, result.State, "a", "100")
}

func TestReverseBlockKeepsTargetKind(t *testing.T) {
	program := ast.Prog(
		ast.Assign("x", ast.Int(10)),
		ast.Reverse(ast.AddTo("x", ast.Rat(1, 2))),
	)
	_, err := Run(context.Background(), program, Config{})
	var checkErr *CheckError
	if !errors.As(err, &checkErr) || len(checkErr.Type) == 0 {
		t.Fatalf("expected a static type error, got %v", err)
	}

	result, err := New(Config{}).Execute(context.Background(), program, ProgramEvaluationOptions{SkipChecks: true})
	requireRuntimeError(t, err, TypeMismatch)
	x, _ := result.State.Get("x")
	if !runtime.Identical(x, runtime.Int64(10)) {
		t.Fatalf("x = %v (%s), want Int 10", x, x.Kind())
	}
}

func TestUndoUnderIntegerWidth(t *testing.T) {
	program := ast.Prog(
		ast.Assign("x", ast.Int(0)),
		ast.Assign("y", ast.Neg(ast.Int(1))),
		ast.Reverse(
			ast.AddTo("x", ast.Neg(ast.Int(128))),
			ast.SubFrom("y", ast.Neg(ast.Int(128))),
		),
	)
	interp := New(Config{IntegerBits: 8})
	result, err := interp.Execute(context.Background(), program, ProgramEvaluationOptions{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	requireBinding(t, result.State, "x", "-128")
	requireBinding(t, result.State, "y", "127")
	if err := interp.Undo(result.State); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	requireBinding(t, result.State, "x", "0")
	requireBinding(t, result.State, "y", "-1")
}

func TestNegatedLiteralWidth(t *testing.T) {
	result := mustRun(t, ast.Prog(ast.Assign("m", ast.Neg(ast.Int(128)))), Config{IntegerBits: 8})
	requireBinding(t, result.State, "m", "-128")

	_, err := Run(context.Background(), ast.Prog(ast.Assign("m", ast.Neg(ast.Int(129)))), Config{IntegerBits: 8})
	requireRuntimeError(t, err, ArithmeticOverflow)
	_, err = Run(context.Background(), ast.Prog(ast.Assign("m", ast.Neg(ast.Neg(ast.Int(128))))), Config{IntegerBits: 8})
	requireRuntimeError(t, err, ArithmeticOverflow)
}

func TestPreludeBuiltins(t *testing.T) {
	result := mustRun(t, ast.Prog(
		ast.Assign("a", ast.Call("abs", ast.Neg(ast.Int(7)))),
		ast.Assign("b", ast.Call("max", ast.Int(2), ast.Rat(5, 2))),
		ast.Assign("c", ast.Call("min", ast.Int(2), ast.Flt(2.5))),
		ast.Assign("d", ast.Call("clamp", ast.Int(15), ast.Int(0), ast.Int(10))),
		ast.Assign("e", ast.Call("sign", ast.Rat(-1, 3))),
		ast.Assign("f", ast.Call("floor", ast.Rat(-7, 2))),
		ast.Assign("g", ast.Call("ceil", ast.Flt(1.2))),
		ast.Assign("h", ast.Call("round", ast.Rat(5, 2))),
		ast.Assign("i", ast.Call("round", ast.Flt(-2.5))),
	), Config{})
	for name, want := range map[string]string{
		"a": "7", "b": "5/2", "c": "2", "d": "10", "e": "-1",
		"f": "-4", "g": "2", "h": "3", "i": "-3",
	} {
		requireBinding(t, result.State, name, want)
	}
	if c, _ := result.State.Get("c"); c.Kind() != runtime.KindFloat {
		t.Fatalf("min(2, 2.5) kind = %s, want Float", c.Kind())
	}

	_, err := Run(context.Background(), ast.Prog(ast.Assign("n", ast.Call("abs", ast.Neg(ast.Int(128))))), Config{IntegerBits: 8})
	requireRuntimeError(t, err, ArithmeticOverflow)
	_, err = Run(context.Background(), ast.Prog(ast.Assign("n", ast.Call("floor", ast.Flt(math.Inf(1))))), Config{})
	requireRuntimeError(t, err, InvalidConversion)
}
