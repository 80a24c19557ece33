// Package purity classifies function bodies as total, pure or impure and
// validates declared annotations and data-context calls.
package purity

import (
	"sort"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// Info is the purity-annotated view of a program.
type Info struct {
	// Levels holds each function's computed purity.
	Levels map[string]Level
	// Declared holds each function's annotated purity.
	Declared map[string]Level
	// Passes is the number of fixpoint rounds taken to converge.
	Passes int
}

// Level returns a function's computed purity. Builtins are Total.
func (i *Info) Level(name string) (Level, bool) {
	if _, ok := runtime.LookupBuiltin(name); ok {
		return Total, true
	}
	if i == nil {
		return Impure, false
	}
	l, ok := i.Levels[name]
	return l, ok
}

// summary is what a body requires on its own, before callees are known.
type summary struct {
	decl      *ast.FunctionDeclaration
	hasLoop   bool
	hasIO     bool
	// recursive is set when the function can reach itself through calls.
	// Totality needs structural termination, so recursion counts as a loop.
	recursive bool
	callees   []string
}

func (s summary) loops() bool { return s.hasLoop || s.recursive }

func (s summary) local() Level {
	level := Total
	if s.loops() {
		level = Max(level, Pure)
	}
	if s.hasIO {
		level = Impure
	}
	return level
}

// Check computes every function's purity as a least fixed point over the
// call graph, then validates annotations and data-context calls.
func Check(program *ast.Program) (*Info, []Error) {
	info := &Info{Levels: map[string]Level{}, Declared: map[string]Level{}}
	if program == nil {
		return info, nil
	}

	var order []string
	summaries := map[string]summary{}
	for _, fn := range program.Functions() {
		if _, dup := summaries[fn.Name]; dup {
			continue
		}
		order = append(order, fn.Name)
		summaries[fn.Name] = summarize(fn)
		info.Declared[fn.Name] = FromAnnotation(fn.DeclaredPurity())
		info.Levels[fn.Name] = Total
	}
	markRecursion(order, summaries)

	for changed := true; changed; {
		changed = false
		info.Passes++
		for _, name := range order {
			s := summaries[name]
			next := s.local()
			for _, callee := range s.callees {
				next = Max(next, calleeLevel(info, callee))
			}
			if next != info.Levels[name] {
				info.Levels[name] = next
				changed = true
			}
		}
	}

	var errs []Error
	for _, name := range order {
		if err, bad := validate(summaries[name], info); bad {
			errs = append(errs, err)
		}
	}
	errs = append(errs, checkDataCalls(program, info)...)
	return info, errs
}

// Effective is what callers may rely on: the computed level, raised to the
// declared one. Undefined functions are impure; the typechecker reports
// them separately.
func (i *Info) Effective(name string) Level {
	computed, ok := i.Level(name)
	if !ok {
		return Impure
	}
	if declared, ok := i.Declared[name]; ok {
		return Max(computed, declared)
	}
	return computed
}

func calleeLevel(info *Info, name string) Level {
	return info.Effective(name)
}

func summarize(fn *ast.FunctionDeclaration) summary {
	s := summary{decl: fn}
	seen := map[string]struct{}{}
	addCallee := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		s.callees = append(s.callees, name)
	}
	walkBody(fn.Body, func(n ast.Node) {
		switch node := n.(type) {
		case *ast.WhileLoop, *ast.ForRangeLoop:
			s.hasLoop = true
		case *ast.PrintStatement:
			s.hasIO = true
		case *ast.PureCall:
			addCallee(node.Callee)
		case *ast.CallStatement:
			addCallee(node.Callee)
		}
	})
	sort.Strings(s.callees)
	return s
}

func markRecursion(order []string, summaries map[string]summary) {
	for _, name := range order {
		visited := map[string]bool{}
		stack := append([]string(nil), summaries[name].callees...)
		for len(stack) > 0 {
			next := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if next == name {
				s := summaries[name]
				s.recursive = true
				summaries[name] = s
				break
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			stack = append(stack, summaries[next].callees...)
		}
	}
}

// walkBody visits a function body without entering nested declarations,
// which are summarized on their own.
func walkBody(body ast.ControlStmt, visit func(ast.Node)) {
	ast.Inspect(body, func(n ast.Node) bool {
		if _, nested := n.(*ast.FunctionDeclaration); nested {
			return false
		}
		visit(n)
		return true
	})
}

func validate(s summary, info *Info) (Error, bool) {
	name := s.decl.Name
	declared := info.Declared[name]
	required := info.Levels[name]
	base := Error{Function: name, Declared: declared, Required: required, Node: s.decl}
	switch {
	case declared == Total && s.loops():
		base.Kind = LoopInTotal
		return base, true
	case declared <= Pure && s.hasIO:
		base.Kind = IOInPure
		return base, true
	case required > declared:
		base.Kind = AnnotationTooOptimistic
		return base, true
	}
	return Error{}, false
}

// checkDataCalls rejects Data-context calls to impure functions. It must run
// after the fixpoint so forward and mutually recursive references resolve.
// Every PureCall sits inside a Data expression, so visiting them is enough.
func checkDataCalls(program *ast.Program, info *Info) []Error {
	var errs []Error
	check := func(caller string) func(ast.Node) {
		return func(n ast.Node) {
			call, ok := n.(*ast.PureCall)
			if !ok {
				return
			}
			level := calleeLevel(info, call.Callee)
			if level.DataContextAllowed() {
				return
			}
			errs = append(errs, Error{
				Kind:     ImpureCallInDataContext,
				Function: call.Callee,
				Required: level,
				Declared: Pure,
				Caller:   caller,
				Node:     call,
			})
		}
	}

	for _, stmt := range program.Body {
		walkBody(stmt, check(""))
	}
	seen := map[string]struct{}{}
	for _, fn := range program.Functions() {
		if _, dup := seen[fn.Name]; dup {
			continue
		}
		seen[fn.Name] = struct{}{}
		walkBody(fn.Body, check(fn.Name))
	}
	return errs
}
