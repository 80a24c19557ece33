package interpreter

import (
	"context"
	"fmt"
	"strings"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/purity"
	"jtv/interpreter-go/pkg/reversible"
	"jtv/interpreter-go/pkg/runtime"
)

// Interpreter executes one program at a time. It is not safe for
// concurrent use.
type Interpreter struct {
	config    Config
	arith     runtime.Arithmetic
	reverser  reversible.Executor
	functions map[string]*ast.FunctionDeclaration
	purity    *purity.Info

	ctx    context.Context
	steps  int
	depth  int
	output []string
	traces []*reversible.Trace
}

// New returns an interpreter with the given limits. Zero limits take the
// package defaults.
func New(cfg Config) *Interpreter {
	cfg = cfg.withDefaults()
	i := &Interpreter{
		config:    cfg,
		arith:     runtime.Arithmetic{IntegerBits: cfg.IntegerBits},
		functions: make(map[string]*ast.FunctionDeclaration),
		ctx:       context.Background(),
	}
	i.reverser = reversible.Executor{Eval: i, Arith: i.arith}
	return i
}

// Config returns the effective configuration.
func (i *Interpreter) Config() Config { return i.config }

// Load registers the program's function declarations, including nested
// ones. The first declaration of a name wins.
func (i *Interpreter) Load(program *ast.Program) {
	for _, fn := range program.Functions() {
		if _, exists := i.functions[fn.Name]; !exists {
			i.functions[fn.Name] = fn
		}
	}
	// Errors were reported by Check; with SkipChecks the levels still back
	// the data-context guard in EvalData.
	i.purity, _ = purity.Check(program)
}

// Steps reports how many loop iterations have run.
func (i *Interpreter) Steps() int { return i.steps }

// Output returns the lines printed so far.
func (i *Interpreter) Output() []string {
	return append([]string(nil), i.output...)
}

// Traces returns the trace of every top-level reverse block executed so far.
func (i *Interpreter) Traces() []*reversible.Trace {
	return append([]*reversible.Trace(nil), i.traces...)
}

// Undo replays the most recent top-level reverse block backward against
// state.
func (i *Interpreter) Undo(state *runtime.State) error {
	for idx := len(i.traces) - 1; idx >= 0; idx-- {
		trace := i.traces[idx]
		if trace.Replayed {
			continue
		}
		return convertError(i.reverser.Backward(trace, state), nil)
	}
	return fmt.Errorf("interpreter: no reverse block to undo")
}

func (i *Interpreter) reset(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	i.ctx = ctx
	i.functions = make(map[string]*ast.FunctionDeclaration)
	i.purity = nil
	i.steps = 0
	i.depth = 0
	i.output = nil
	i.traces = nil
}

// tick accounts for one loop iteration.
func (i *Interpreter) tick(node ast.Node) error {
	if err := i.ctx.Err(); err != nil {
		return convertError(err, node)
	}
	if i.steps >= i.config.MaxSteps {
		return &RuntimeError{
			Kind:    IterationLimitExceeded,
			Node:    node,
			Limit:   i.config.MaxSteps,
			Steps:   i.steps,
			Message: fmt.Sprintf("iteration limit of %d steps exceeded", i.config.MaxSteps),
		}
	}
	i.steps++
	return nil
}

func (i *Interpreter) emit(values []runtime.Value) error {
	parts := make([]string, len(values))
	for idx, v := range values {
		parts[idx] = v.String()
	}
	line := strings.Join(parts, " ")
	i.output = append(i.output, line)
	if i.config.Output != nil {
		if _, err := fmt.Fprintln(i.config.Output, line); err != nil {
			return fmt.Errorf("interpreter: write output: %w", err)
		}
	}
	return nil
}
