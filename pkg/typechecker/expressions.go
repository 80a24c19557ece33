package typechecker

import (
	"fmt"
	"strings"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// inferExpression computes the type of a Data expression.
func (c *Checker) inferExpression(env *Environment, expr ast.DataExpr) ([]Diagnostic, Type) {
	var (
		diags []Diagnostic
		typ   Type
	)
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		typ = intType
	case *ast.FloatLiteral:
		typ = floatType
	case *ast.RationalLiteral:
		typ = rationalType
		if e.Denominator == nil || e.Denominator.Sign() == 0 {
			diags = append(diags, Diagnostic{
				Kind:    InvalidLiteral,
				Message: "typechecker: rational literal has a zero denominator",
				Node:    e,
			})
		}
	case *ast.ComplexLiteral:
		typ = complexType
	case *ast.SymbolicLiteral:
		typ = symbolicType
	case *ast.VariableReference:
		if t, ok := env.Lookup(e.Name); ok {
			typ = t
		} else {
			diags = append(diags, unboundVariable(e, e.Name))
			typ = UnknownType{}
		}
	case *ast.AdditionExpression:
		diags, typ = c.checkAddition(env, e)
	case *ast.NegationExpression:
		var operand Type
		diags, operand = c.inferExpression(env, e.Operand)
		// Every numeric kind, including Symbolic, is signed.
		typ = operand
	case *ast.PureCall:
		diags, typ = c.checkCall(env, e, e.Callee, e.Args)
	case nil:
		return []Diagnostic{{Kind: TypeMismatch, Message: "typechecker: missing expression", Expected: "expression", Found: "nothing"}}, UnknownType{}
	default:
		return []Diagnostic{{Kind: TypeMismatch, Message: fmt.Sprintf("typechecker: unsupported expression %T", expr), Node: expr}}, UnknownType{}
	}
	c.infer.set(expr, typ)
	return diags, typ
}

func (c *Checker) checkAddition(env *Environment, expr *ast.AdditionExpression) ([]Diagnostic, Type) {
	leftDiags, left := c.inferExpression(env, expr.Left)
	rightDiags, right := c.inferExpression(env, expr.Right)
	diags := append(leftDiags, rightDiags...)
	joined, ok := joinTypes(left, right)
	if !ok {
		diags = append(diags, typeMismatch(expr, "addition", left.Name(), right.Name()))
		return diags, UnknownType{}
	}
	return diags, joined
}

// checkCall resolves a call from either Data or Control context and checks
// its arguments. The result is the declared return type.
func (c *Checker) checkCall(env *Environment, node ast.Node, callee string, args []ast.DataExpr) ([]Diagnostic, Type) {
	var diags []Diagnostic
	argTypes := make([]Type, len(args))
	for i, arg := range args {
		argDiags, t := c.inferExpression(env, arg)
		diags = append(diags, argDiags...)
		argTypes[i] = t
	}

	if builtin, ok := runtime.LookupBuiltin(callee); ok {
		if len(args) != builtin.Arity {
			return append(diags, arityMismatch(node, callee, builtin.Arity, len(args))), UnknownType{}
		}
		return c.checkBuiltinArgs(node, builtin, argTypes, diags)
	}

	sig, ok := c.functions[callee]
	if !ok {
		return append(diags, undefinedFunction(node, callee)), UnknownType{}
	}
	if len(args) != len(sig.Params) {
		return append(diags, arityMismatch(node, callee, len(sig.Params), len(args))), sig.Return
	}
	for i, param := range sig.Params {
		if !assignable(argTypes[i], param) {
			ctx := fmt.Sprintf("argument %d to '%s'", i+1, callee)
			diags = append(diags, typeMismatch(args[i], ctx, param.Name(), argTypes[i].Name()))
		}
	}
	return diags, sig.Return
}

func (c *Checker) checkBuiltinArgs(node ast.Node, builtin runtime.Builtin, argTypes []Type, diags []Diagnostic) ([]Diagnostic, Type) {
	kinds := make([]runtime.Kind, 0, len(argTypes))
	unknown := false
	for i, t := range argTypes {
		kind, ok := numericKind(t)
		if !ok {
			unknown = true
			continue
		}
		if !builtin.AcceptsKind(kind) {
			ctx := fmt.Sprintf("argument %d to '%s'", i+1, builtin.Name)
			diags = append(diags, typeMismatch(node, ctx, acceptsName(builtin), t.Name()))
			unknown = true
			continue
		}
		kinds = append(kinds, kind)
	}
	if builtin.JoinsArgs && unknown {
		return diags, UnknownType{}
	}
	result, ok := builtin.ResultKind(kinds)
	if !ok {
		names := make([]string, len(argTypes))
		for i, t := range argTypes {
			names[i] = t.Name()
		}
		diags = append(diags, typeMismatch(node, fmt.Sprintf("arguments to '%s'", builtin.Name), "kinds with a join", strings.Join(names, ", ")))
		return diags, UnknownType{}
	}
	return diags, NumericType{Kind: result}
}

func acceptsName(b runtime.Builtin) string {
	out := ""
	for i, k := range b.Accepts {
		switch {
		case i == 0:
		case i == len(b.Accepts)-1:
			out += " or "
		default:
			out += ", "
		}
		out += k.String()
	}
	return out
}

// checkCondition types a branch or loop condition.
func (c *Checker) checkCondition(env *Environment, cond ast.Condition) []Diagnostic {
	switch cd := cond.(type) {
	case *ast.BooleanLiteral:
		c.infer.set(cd, BoolType{})
		return nil
	case *ast.ComparisonExpression:
		leftDiags, left := c.inferExpression(env, cd.Left)
		rightDiags, right := c.inferExpression(env, cd.Right)
		diags := append(leftDiags, rightDiags...)
		c.infer.set(cd, BoolType{})
		if cd.Operator.Ordering() {
			for _, t := range []Type{left, right} {
				if k, ok := numericKind(t); ok && !k.Ordered() {
					return append(diags, typeMismatch(cd, fmt.Sprintf("comparison '%s'", cd.Operator), "an ordered type (Int, Float or Rational)", t.Name()))
				}
			}
		}
		if _, ok := joinTypes(left, right); !ok {
			diags = append(diags, typeMismatch(cd, fmt.Sprintf("comparison '%s'", cd.Operator), left.Name(), right.Name()))
		}
		return diags
	case *ast.LogicalExpression:
		diags := c.checkCondition(env, cd.Left)
		diags = append(diags, c.checkCondition(env, cd.Right)...)
		c.infer.set(cd, BoolType{})
		return diags
	case *ast.NotExpression:
		diags := c.checkCondition(env, cd.Operand)
		c.infer.set(cd, BoolType{})
		return diags
	case ast.DataExpr:
		diags, t := c.inferExpression(env, cd)
		if k, ok := numericKind(t); ok && k == runtime.KindSymbolic {
			diags = append(diags, typeMismatch(cd, "condition", "a numeric type with a zero", t.Name()))
		}
		return diags
	case nil:
		return []Diagnostic{{Kind: TypeMismatch, Message: "typechecker: missing condition", Expected: "condition", Found: "nothing"}}
	default:
		return []Diagnostic{{Kind: TypeMismatch, Message: fmt.Sprintf("typechecker: unsupported condition %T", cond), Node: cond}}
	}
}
