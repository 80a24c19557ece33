package typechecker

import (
	"fmt"

	"jtv/interpreter-go/pkg/ast"
)

// maxLoopPasses bounds the loop fixpoint. Each pass can only raise a type,
// and no chain in the lattice is longer than this.
const maxLoopPasses = 4

// checkStatement checks stmt, updating env in place with the bindings that
// hold afterwards. returns reports that every path through stmt returns.
func (c *Checker) checkStatement(env *Environment, stmt ast.ControlStmt) (returns bool, diags []Diagnostic) {
	switch s := stmt.(type) {
	case *ast.SkipStatement:
		return false, nil
	case *ast.AssignStatement:
		diags, typ := c.inferExpression(env, s.Value)
		env.Define(s.Target, typ)
		return false, diags
	case *ast.SequenceStatement:
		firstReturns, diags := c.checkStatement(env, s.First)
		secondReturns, more := c.checkStatement(env, s.Second)
		return firstReturns || secondReturns, append(diags, more...)
	case *ast.IfStatement:
		return c.checkIf(env, s)
	case *ast.WhileLoop:
		return false, c.checkLoop(env, s, func(body *Environment) []Diagnostic {
			diags := c.checkCondition(body, s.Condition)
			_, more := c.checkStatement(body, s.Body)
			return append(diags, more...)
		})
	case *ast.ForRangeLoop:
		return false, c.checkForRange(env, s)
	case *ast.ReturnStatement:
		return true, c.checkReturn(env, s)
	case *ast.PrintStatement:
		for _, v := range s.Values {
			more, _ := c.inferExpression(env, v)
			diags = append(diags, more...)
		}
		return false, diags
	case *ast.ReverseBlock:
		return false, c.checkReverseBlock(env, s)
	case *ast.FunctionDeclaration:
		// Bodies are checked once, from CheckProgram.
		return false, nil
	case *ast.CallStatement:
		diags, typ := c.checkCall(env, s, s.Callee, s.Args)
		if s.Target != "" {
			env.Define(s.Target, typ)
		}
		return false, diags
	case nil:
		return false, []Diagnostic{{Kind: TypeMismatch, Message: "typechecker: missing statement", Expected: "statement", Found: "nothing"}}
	default:
		return false, []Diagnostic{{Kind: TypeMismatch, Message: fmt.Sprintf("typechecker: unsupported statement %T", stmt), Node: stmt}}
	}
}

func (c *Checker) checkIf(env *Environment, s *ast.IfStatement) (bool, []Diagnostic) {
	diags := c.checkCondition(env, s.Condition)

	thenEnv := env.Clone()
	thenReturns, more := c.checkStatement(thenEnv, s.Then)
	diags = append(diags, more...)

	elseEnv := env.Clone()
	elseReturns := false
	if s.Else != nil {
		elseReturns, more = c.checkStatement(elseEnv, s.Else)
		diags = append(diags, more...)
	}

	var merged *Environment
	var conflicts []string
	switch {
	case thenReturns && elseReturns:
		merged = env.Clone()
	case thenReturns:
		merged = elseEnv
	case elseReturns:
		merged = thenEnv
	default:
		merged, conflicts = merge(thenEnv, elseEnv)
	}
	for _, name := range conflicts {
		t, _ := thenEnv.Lookup(name)
		e, _ := elseEnv.Lookup(name)
		diags = append(diags, typeMismatch(s, fmt.Sprintf("variable '%s' after if", name), typeName(t), typeName(e)))
	}
	replace(env, merged)
	return thenReturns && elseReturns, diags
}

// checkLoop iterates body until the entry environment is stable, discarding
// diagnostics from the trial passes, then runs one reporting pass. Only
// variables bound before the loop survive it, since the body may not run.
func (c *Checker) checkLoop(env *Environment, node ast.Node, body func(*Environment) []Diagnostic) []Diagnostic {
	entry := env.Clone()
	for pass := 0; pass < maxLoopPasses; pass++ {
		trial := entry.Clone()
		body(trial)
		next, _ := merge(entry, trial)
		if next.equal(entry) {
			break
		}
		entry = next
	}

	final := entry.Clone()
	diags := body(final)
	merged, _ := merge(entry, final)
	// Widening to Unknown hides a conflict from the fixpoint, so compare the
	// final pass with the bindings from before the loop.
	_, conflicts := merge(env, final)
	for _, name := range conflicts {
		before, _ := env.Lookup(name)
		after, _ := final.Lookup(name)
		diags = append(diags, typeMismatch(node, fmt.Sprintf("variable '%s' across loop iterations", name), typeName(before), typeName(after)))
	}
	replace(env, merged)
	return diags
}

func (c *Checker) checkForRange(env *Environment, s *ast.ForRangeLoop) []Diagnostic {
	var diags []Diagnostic
	for _, bound := range []ast.DataExpr{s.Start, s.End} {
		more, t := c.inferExpression(env, bound)
		diags = append(diags, more...)
		if !isUnknown(t) && !sameType(t, intType) {
			diags = append(diags, typeMismatch(bound, "range bound", intType.Name(), t.Name()))
		}
	}

	outer, hadOuter := env.Lookup(s.Variable)
	diags = append(diags, c.checkLoop(env, s, func(body *Environment) []Diagnostic {
		body.Define(s.Variable, intType)
		_, more := c.checkStatement(body, s.Body)
		return more
	})...)
	if hadOuter {
		env.Define(s.Variable, outer)
	} else {
		env.remove(s.Variable)
	}
	return diags
}

func (c *Checker) checkReturn(env *Environment, s *ast.ReturnStatement) []Diagnostic {
	expected, inFunction := c.currentReturnType()
	if s.Value == nil {
		if inFunction && !isUnknown(expected) {
			return []Diagnostic{typeMismatch(s, "return", expected.Name(), "nothing")}
		}
		return nil
	}
	diags, typ := c.inferExpression(env, s.Value)
	if inFunction && !assignable(typ, expected) {
		diags = append(diags, typeMismatch(s, "return", expected.Name(), typ.Name()))
	}
	return diags
}

// checkReverseBlock requires each target to be bound already, and the
// operand to coerce into the target's type. A widening update could not be
// undone back to the original kind.
func (c *Checker) checkReverseBlock(env *Environment, block *ast.ReverseBlock) []Diagnostic {
	var diags []Diagnostic
	for _, op := range block.Ops {
		more, valueType := c.inferExpression(env, op.Value)
		diags = append(diags, more...)
		current, ok := env.Lookup(op.Target)
		if !ok {
			diags = append(diags, unboundVariable(op, op.Target))
			continue
		}
		joined, ok := joinTypes(current, valueType)
		if !ok || !isUnknown(joined) && !sameType(joined, current) {
			diags = append(diags, typeMismatch(op, fmt.Sprintf("'%s %s'", op.Target, op.Operator), current.Name(), valueType.Name()))
		}
	}
	return diags
}

func replace(dst, src *Environment) {
	dst.symbols = src.Clone().symbols
}
