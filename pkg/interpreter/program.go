package interpreter

import (
	"context"
	"errors"
	"fmt"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/purity"
	"jtv/interpreter-go/pkg/reversible"
	"jtv/interpreter-go/pkg/runtime"
	"jtv/interpreter-go/pkg/typechecker"
)

// Analysis is the outcome of the static checks.
type Analysis struct {
	Types  *typechecker.Info
	Purity *purity.Info
}

// Check runs the type, purity and reversibility checks. Every check runs
// even when an earlier one fails; a non-nil *CheckError carries them all.
func Check(program *ast.Program) (*Analysis, error) {
	if program == nil {
		return nil, fmt.Errorf("interpreter: nil program")
	}
	types, diags, err := typechecker.Check(program)
	if err != nil {
		return nil, err
	}
	levels, purityErrs := purity.Check(program)
	revErrs := reversible.CheckProgram(program)

	analysis := &Analysis{Types: types, Purity: levels}
	checkErr := &CheckError{Type: diags, Purity: purityErrs, Reversibility: revErrs}
	if checkErr.Len() > 0 {
		return analysis, checkErr
	}
	return analysis, nil
}

// Result is what a completed run leaves behind.
type Result struct {
	State  *runtime.State
	Output []string
	Traces []*reversible.Trace
	// Value is set when the program ends with a top-level return.
	Value    runtime.Value
	Steps    int
	Analysis *Analysis
}

// ProgramEvaluationOptions adjusts Execute.
type ProgramEvaluationOptions struct {
	// SkipChecks runs the program without the static checks. Runtime
	// backstops still apply.
	SkipChecks bool
	// Initial seeds the state. It is cloned, never mutated.
	Initial *runtime.State
}

// Run checks and executes program with cfg.
func Run(ctx context.Context, program *ast.Program, cfg Config) (*Result, error) {
	return New(cfg).Execute(ctx, program, ProgramEvaluationOptions{})
}

// Execute checks program and, if it is clean, runs its top-level body. A
// static error means nothing executes and nothing is printed. On a runtime
// error the partial result is returned alongside the error.
func (i *Interpreter) Execute(ctx context.Context, program *ast.Program, opts ProgramEvaluationOptions) (*Result, error) {
	if program == nil {
		return nil, fmt.Errorf("interpreter: nil program")
	}
	var analysis *Analysis
	if !opts.SkipChecks {
		a, err := Check(program)
		if err != nil {
			return &Result{Analysis: a}, err
		}
		analysis = a
	}

	i.reset(ctx)
	i.Load(program)
	state := runtime.NewState()
	if opts.Initial != nil {
		state = opts.Initial.Clone()
	}

	result := &Result{State: state, Analysis: analysis}
	var runErr error
	for _, stmt := range program.Body {
		if err := i.ExecControl(stmt, state); err != nil {
			var ret returnSignal
			if errors.As(err, &ret) {
				result.Value = ret.value
				break
			}
			runErr = err
			break
		}
	}
	result.Output = i.Output()
	result.Traces = i.Traces()
	result.Steps = i.steps
	return result, runErr
}
