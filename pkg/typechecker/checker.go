package typechecker

import (
	"fmt"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// InferenceMap records the inferred type of each expression and condition.
type InferenceMap map[ast.Node]Type

func (m InferenceMap) set(node ast.Node, typ Type) {
	if node == nil || typ == nil {
		return
	}
	m[node] = typ
}

// Checker traverses a program and records diagnostics.
type Checker struct {
	infer           InferenceMap
	functions       map[string]*FunctionSignature
	returnTypeStack []Type
	globals         *Environment
}

// Info is the type-annotated view of a checked program.
type Info struct {
	Types     InferenceMap
	Functions map[string]*FunctionSignature
	// Globals holds the variables definitely bound at the end of the
	// program's top level.
	Globals *Environment
}

// TypeOf returns the inferred type of an expression or condition.
func (i *Info) TypeOf(node ast.Node) (Type, bool) {
	if i == nil {
		return nil, false
	}
	typ, ok := i.Types[node]
	return typ, ok
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{
		infer:     make(InferenceMap),
		functions: make(map[string]*FunctionSignature),
	}
}

// Check is a convenience wrapper around New().CheckProgram.
func Check(program *ast.Program) (*Info, []Diagnostic, error) {
	c := New()
	diags, err := c.CheckProgram(program)
	if err != nil {
		return nil, nil, err
	}
	return c.Info(), diags, nil
}

// CheckProgram typechecks every function and top-level statement. Function
// declarations are hoisted so calls may precede definitions.
func (c *Checker) CheckProgram(program *ast.Program) ([]Diagnostic, error) {
	if program == nil {
		return nil, fmt.Errorf("typechecker: program is nil")
	}
	c.infer = make(InferenceMap)
	c.functions = make(map[string]*FunctionSignature)
	c.returnTypeStack = nil

	diagnostics := c.collectDeclarations(program)
	for _, fn := range program.Functions() {
		sig := c.functions[fn.Name]
		if sig == nil || sig.Decl != fn {
			continue
		}
		diagnostics = append(diagnostics, c.checkFunctionBody(sig)...)
	}

	env := NewEnvironment()
	for _, stmt := range program.Body {
		_, stDiags := c.checkStatement(env, stmt)
		diagnostics = append(diagnostics, stDiags...)
	}
	c.globals = env
	return diagnostics, nil
}

// Info returns the annotations from the last CheckProgram call.
func (c *Checker) Info() *Info {
	return &Info{Types: c.infer, Functions: c.functions, Globals: c.globals}
}

func (c *Checker) collectDeclarations(program *ast.Program) []Diagnostic {
	var diags []Diagnostic
	for _, fn := range program.Functions() {
		if _, exists := c.functions[fn.Name]; exists {
			diags = append(diags, duplicateFunction(fn, fn.Name))
			continue
		}
		if _, builtin := runtime.LookupBuiltin(fn.Name); builtin {
			diags = append(diags, duplicateFunction(fn, fn.Name))
			continue
		}
		sig := &FunctionSignature{Name: fn.Name, Decl: fn}
		seen := make(map[string]struct{}, len(fn.Params))
		for _, p := range fn.Params {
			if _, dup := seen[p.Name]; dup {
				diags = append(diags, Diagnostic{
					Kind:    DuplicateFunction,
					Message: fmt.Sprintf("typechecker: function '%s' declares parameter '%s' twice", fn.Name, p.Name),
					Node:    p,
					Name:    p.Name,
				})
			}
			seen[p.Name] = struct{}{}
			typ, ok := FromAnnotation(p.Type)
			if !ok {
				diags = append(diags, typeMismatch(p, fmt.Sprintf("parameter '%s'", p.Name), "a numeric type", string(p.Type)))
			}
			sig.Params = append(sig.Params, typ)
		}
		ret, ok := FromAnnotation(fn.ReturnType)
		if !ok {
			diags = append(diags, typeMismatch(fn, fmt.Sprintf("function '%s' return type", fn.Name), "a numeric type", string(fn.ReturnType)))
		}
		sig.Return = ret
		c.functions[fn.Name] = sig
	}
	return diags
}

func duplicateFunction(node ast.Node, name string) Diagnostic {
	return Diagnostic{
		Kind:    DuplicateFunction,
		Message: fmt.Sprintf("typechecker: function '%s' is already defined", name),
		Node:    node,
		Name:    name,
	}
}

func (c *Checker) checkFunctionBody(sig *FunctionSignature) []Diagnostic {
	env := NewEnvironment()
	for i, p := range sig.Decl.Params {
		env.Define(p.Name, sig.Params[i])
	}
	c.pushReturnType(sig.Return)
	defer c.popReturnType()
	_, diags := c.checkStatement(env, sig.Decl.Body)
	return diags
}
