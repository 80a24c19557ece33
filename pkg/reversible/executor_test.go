package reversible

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// literalEvaluator covers the call-free Data fragment.
func literalEvaluator(arith runtime.Arithmetic) Evaluator {
	var eval EvaluatorFunc
	eval = func(expr ast.DataExpr, state *runtime.State) (runtime.Value, error) {
		switch e := expr.(type) {
		case *ast.IntegerLiteral:
			return runtime.NewInteger(e.Value), nil
		case *ast.FloatLiteral:
			return runtime.NewFloat(e.Value), nil
		case *ast.RationalLiteral:
			return runtime.NewRational(e.Numerator, e.Denominator)
		case *ast.ComplexLiteral:
			return runtime.NewComplex(e.Real, e.Imag), nil
		case *ast.VariableReference:
			return state.Lookup(e.Name)
		case *ast.AdditionExpression:
			l, err := eval(e.Left, state)
			if err != nil {
				return nil, err
			}
			r, err := eval(e.Right, state)
			if err != nil {
				return nil, err
			}
			return arith.Add(l, r)
		case *ast.NegationExpression:
			v, err := eval(e.Operand, state)
			if err != nil {
				return nil, err
			}
			return arith.Negate(v)
		}
		return nil, errors.New("unsupported expression")
	}
	return eval
}

func newExecutor() Executor {
	var arith runtime.Arithmetic
	return Executor{Eval: literalEvaluator(arith), Arith: arith}
}

func TestForwardThenBackwardRestoresState(t *testing.T) {
	x := newExecutor()
	state := runtime.StateFrom(map[string]runtime.Value{
		"x": runtime.Int64(10),
		"y": runtime.Int64(4),
	})
	block := ast.Reverse(ast.AddTo("x", ast.Var("y")))

	trace, err := x.Forward(block, state)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if got, _ := state.Get("x"); got.String() != "14" {
		t.Fatalf("x after forward = %v, want 14", got)
	}
	if err := x.Backward(trace, state); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got, _ := state.Get("x"); got.String() != "10" {
		t.Fatalf("x after backward = %v, want 10", got)
	}
	if !trace.Replayed {
		t.Fatalf("trace should be marked replayed")
	}
}

func TestTargetInExpressionIsRejectedBeforeExecution(t *testing.T) {
	x := newExecutor()
	state := runtime.StateFrom(map[string]runtime.Value{"x": runtime.Int64(3), "y": runtime.Int64(1)})
	block := ast.Reverse(
		ast.AddTo("y", ast.Int(1)),
		ast.AddTo("x", ast.Add(ast.Var("x"), ast.Int(1))),
	)
	_, err := x.Forward(block, state)
	var revErr Error
	if !errors.As(err, &revErr) {
		t.Fatalf("expected reversible.Error, got %v", err)
	}
	if revErr.Kind != TargetInExpression || revErr.Variable != "x" {
		t.Fatalf("unexpected error %+v", revErr)
	}
	if got, _ := state.Get("y"); got.String() != "1" {
		t.Fatalf("y = %v; the block must not partially execute", got)
	}
}

func TestCheckProgramFindsNestedBlocks(t *testing.T) {
	fn := ast.Fn("f", ast.PurityTotal, []*ast.Parameter{ast.Param("a", ast.TypeInt)}, ast.TypeInt,
		ast.Reverse(ast.SubFrom("a", ast.Neg(ast.Var("a")))),
		ast.Ret(ast.Var("a")),
	)
	errs := CheckProgram(ast.Prog(fn, ast.Reverse(ast.AddTo("x", ast.Var("x")))))
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}

func TestTraceCapturesValuesAtExecutionTime(t *testing.T) {
	x := newExecutor()
	state := runtime.StateFrom(map[string]runtime.Value{"x": runtime.Int64(0), "y": runtime.Int64(5)})
	block := ast.Reverse(
		ast.AddTo("x", ast.Var("y")),
		ast.SubFrom("y", ast.Int(2)),
		ast.AddTo("x", ast.Var("y")),
	)
	trace, err := x.Forward(block, state)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	want := []string{"x += 5", "y -= 2", "x += 3"}
	entries := trace.Entries()
	if len(entries) != len(want) {
		t.Fatalf("trace length = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.String() != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, e.String(), want[i])
		}
	}
	inverse := trace.Inverse()
	if inverse[0].String() != "x -= 3" || inverse[2].String() != "x -= 5" {
		t.Fatalf("inverse = %v", inverse)
	}
	if got := trace.Touched(); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("Touched = %v", got)
	}
	if !strings.Contains(trace.String(), "y -= 2") {
		t.Fatalf("String() = %q", trace.String())
	}
	if err := x.Backward(trace, state); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got, _ := state.Get("x"); got.String() != "0" {
		t.Fatalf("x = %v, want 0", got)
	}
	if got, _ := state.Get("y"); got.String() != "5" {
		t.Fatalf("y = %v, want 5", got)
	}
}

// randomOperand returns a literal whose kind coerces into target, sometimes
// narrower than target.
func randomOperand(rng *rand.Rand, target runtime.Kind, span int64) ast.DataExpr {
	if target != runtime.KindInteger && rng.Intn(3) == 0 {
		return ast.Int(rng.Int63n(2*span) - span)
	}
	switch target {
	case runtime.KindInteger:
		return ast.Int(rng.Int63n(2*span) - span)
	case runtime.KindRational:
		return ast.Rat(rng.Int63n(40)-20, rng.Int63n(9)+1)
	default:
		// integral components keep complex addition exact
		return ast.Cplx(float64(rng.Intn(50)-25), float64(rng.Intn(50)-25))
	}
}

func randomValue(rng *rand.Rand, kind runtime.Kind, span int64) runtime.Value {
	switch kind {
	case runtime.KindInteger:
		return runtime.Int64(rng.Int63n(2*span) - span)
	case runtime.KindRational:
		return runtime.Ratio(rng.Int63n(100), rng.Int63n(7)+1)
	default:
		return runtime.NewComplex(float64(rng.Intn(20)), float64(rng.Intn(20)))
	}
}

func randomBlock(rng *rand.Rand, vars []string, kinds map[string]runtime.Kind, span int64) *ast.ReverseBlock {
	var ops []*ast.ReversibleOp
	for i := 0; i < 1+rng.Intn(5); i++ {
		targetIdx := rng.Intn(len(vars))
		target := vars[targetIdx]
		operand := randomOperand(rng, kinds[target], span)
		other := vars[(targetIdx+1+rng.Intn(len(vars)-1))%len(vars)]
		if rng.Intn(2) == 0 && exactInto(kinds[other], kinds[target]) {
			operand = ast.Add(operand, ast.Var(other))
		}
		if rng.Intn(2) == 0 {
			ops = append(ops, ast.AddTo(target, operand))
		} else {
			ops = append(ops, ast.SubFrom(target, operand))
		}
	}
	return ast.Reverse(ops...)
}

// exactInto reports whether from widens to to without rounding.
func exactInto(from, to runtime.Kind) bool {
	if to == runtime.KindComplex && from == runtime.KindRational {
		return false
	}
	return runtime.CoercesTo(from, to)
}

func requireSameState(t *testing.T, label string, names []string, got, want *runtime.State) {
	t.Helper()
	for _, name := range names {
		g, _ := got.Get(name)
		w, _ := want.Get(name)
		if !runtime.Identical(g, w) {
			t.Fatalf("%s: %s = %v (%s), want %v (%s)", label, name, g, g.Kind(), w, w.Kind())
		}
	}
}

func TestRoundTripIsExactForExactKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vars := []string{"a", "b", "c"}
	kinds := []runtime.Kind{runtime.KindInteger, runtime.KindRational, runtime.KindComplex}
	for iter := 0; iter < 300; iter++ {
		state := runtime.NewState()
		varKinds := map[string]runtime.Kind{}
		for _, name := range vars {
			varKinds[name] = kinds[rng.Intn(len(kinds))]
			state.Set(name, randomValue(rng, varKinds[name], 100))
		}
		block := randomBlock(rng, vars, varKinds, 100)
		before := state.Clone()
		x := newExecutor()
		trace, err := x.Forward(block, state)
		if err != nil {
			t.Fatalf("iteration %d: Forward: %v", iter, err)
		}
		if err := x.Backward(trace, state); err != nil {
			t.Fatalf("iteration %d: Backward: %v", iter, err)
		}
		requireSameState(t, fmt.Sprintf("iteration %d", iter), vars, state, before)
	}
}

func TestRoundTripUnderIntegerWidth(t *testing.T) {
	arith := runtime.Arithmetic{IntegerBits: 8}
	x := Executor{Eval: literalEvaluator(arith), Arith: arith}

	cases := []struct {
		start int64
		op    *ast.ReversibleOp
		want  string
	}{
		{0, ast.AddTo("x", ast.Int(-128)), "-128"},
		{-1, ast.SubFrom("x", ast.Int(-128)), "127"},
		{127, ast.AddTo("x", ast.Int(-128)), "-1"},
	}
	for _, tc := range cases {
		state := runtime.StateFrom(map[string]runtime.Value{"x": runtime.Int64(tc.start)})
		trace, err := x.Forward(ast.Reverse(tc.op), state)
		if err != nil {
			t.Fatalf("x = %d; %s: Forward: %v", tc.start, tc.op.Operator, err)
		}
		if got, _ := state.Get("x"); got.String() != tc.want {
			t.Fatalf("x = %v after forward, want %s", got, tc.want)
		}
		if err := x.Backward(trace, state); err != nil {
			t.Fatalf("Backward from %s: %v", tc.want, err)
		}
		if got, _ := state.Get("x"); got.String() != fmt.Sprint(tc.start) {
			t.Fatalf("x = %v after backward, want %d", got, tc.start)
		}
	}

	rng := rand.New(rand.NewSource(8))
	vars := []string{"a", "b", "c"}
	kinds := map[string]runtime.Kind{"a": runtime.KindInteger, "b": runtime.KindInteger, "c": runtime.KindInteger}
	for iter := 0; iter < 300; iter++ {
		state := runtime.NewState()
		for _, name := range vars {
			state.Set(name, randomValue(rng, runtime.KindInteger, 128))
		}
		before := state.Clone()
		trace, err := x.Forward(randomBlock(rng, vars, kinds, 128), state)
		if err != nil {
			var overflow runtime.OverflowError
			if !errors.As(err, &overflow) {
				t.Fatalf("iteration %d: Forward: %v", iter, err)
			}
			requireSameState(t, fmt.Sprintf("iteration %d rollback", iter), vars, state, before)
			continue
		}
		if err := x.Backward(trace, state); err != nil {
			t.Fatalf("iteration %d: Backward: %v", iter, err)
		}
		requireSameState(t, fmt.Sprintf("iteration %d", iter), vars, state, before)
	}
}

func TestWideningUpdateIsRefused(t *testing.T) {
	x := newExecutor()
	state := runtime.StateFrom(map[string]runtime.Value{"x": runtime.Int64(10), "y": runtime.Int64(1)})
	_, err := x.Forward(ast.Reverse(
		ast.AddTo("y", ast.Int(1)),
		ast.AddTo("x", ast.Rat(1, 2)),
	), state)
	var widening WideningError
	if !errors.As(err, &widening) {
		t.Fatalf("expected WideningError, got %v", err)
	}
	if widening.Target != runtime.KindInteger || widening.Operand != runtime.KindRational {
		t.Fatalf("unexpected error %+v", widening)
	}
	if got, _ := state.Get("x"); !runtime.Identical(got, runtime.Int64(10)) {
		t.Fatalf("x = %v (%s), want Int 10", got, got.Kind())
	}
	if got, _ := state.Get("y"); got.String() != "1" {
		t.Fatalf("y = %v, want rollback to 1", got)
	}
}

func TestFloatRoundTripOnlyWithinTolerance(t *testing.T) {
	x := newExecutor()
	state := runtime.StateFrom(map[string]runtime.Value{"x": runtime.NewFloat(0.1)})
	trace, err := x.Run(ast.Reverse(ast.AddTo("x", ast.Flt(0.2))), state)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, _ := state.Get("x")
	f := got.(runtime.FloatValue).Val
	if math.Abs(f-0.1) > 1e-12 {
		t.Fatalf("x = %v, want 0.1 within tolerance", f)
	}
	if runtime.Identical(got, runtime.NewFloat(0.1)) {
		t.Fatalf("expected rounding to leave x inexact, got exactly 0.1")
	}
	if trace.Len() != 1 {
		t.Fatalf("trace length = %d, want 1", trace.Len())
	}
}

func TestFailedOpRollsBackEarlierOps(t *testing.T) {
	arith := runtime.Arithmetic{IntegerBits: 8}
	x := Executor{Eval: literalEvaluator(arith), Arith: arith}
	state := runtime.StateFrom(map[string]runtime.Value{"a": runtime.Int64(1), "b": runtime.Int64(120)})
	_, err := x.Forward(ast.Reverse(
		ast.AddTo("a", ast.Int(5)),
		ast.AddTo("b", ast.Int(100)),
	), state)
	var overflow runtime.OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if got, _ := state.Get("a"); got.String() != "1" {
		t.Fatalf("a = %v, want rollback to 1", got)
	}

	_, err = x.Forward(ast.Reverse(ast.AddTo("missing", ast.Int(1))), state)
	var unbound UnboundTargetError
	if !errors.As(err, &unbound) || unbound.Variable != "missing" {
		t.Fatalf("expected UnboundTargetError, got %v", err)
	}
}
