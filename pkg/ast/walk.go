package ast

import "sort"

// Inspect traverses node depth first, calling fn for each node. Children are
// skipped when fn returns false.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range children(node) {
		Inspect(child, fn)
	}
}

func children(node Node) []Node {
	switch n := node.(type) {
	case *AdditionExpression:
		return []Node{n.Left, n.Right}
	case *NegationExpression:
		return []Node{n.Operand}
	case *PureCall:
		return dataNodes(n.Args)
	case *ComparisonExpression:
		return []Node{n.Left, n.Right}
	case *LogicalExpression:
		return []Node{n.Left, n.Right}
	case *NotExpression:
		return []Node{n.Operand}
	case *AssignStatement:
		return []Node{n.Value}
	case *SequenceStatement:
		return []Node{n.First, n.Second}
	case *IfStatement:
		out := []Node{n.Condition, n.Then}
		if n.Else != nil {
			out = append(out, n.Else)
		}
		return out
	case *WhileLoop:
		return []Node{n.Condition, n.Body}
	case *ForRangeLoop:
		return []Node{n.Start, n.End, n.Body}
	case *ReturnStatement:
		if n.Value == nil {
			return nil
		}
		return []Node{n.Value}
	case *PrintStatement:
		return dataNodes(n.Values)
	case *ReverseBlock:
		out := make([]Node, 0, len(n.Ops))
		for _, op := range n.Ops {
			out = append(out, op)
		}
		return out
	case *ReversibleOp:
		return []Node{n.Value}
	case *FunctionDeclaration:
		out := make([]Node, 0, len(n.Params)+1)
		for _, p := range n.Params {
			out = append(out, p)
		}
		return append(out, n.Body)
	case *CallStatement:
		return dataNodes(n.Args)
	case *Program:
		out := make([]Node, 0, len(n.Body))
		for _, stmt := range n.Body {
			out = append(out, stmt)
		}
		return out
	default:
		return nil
	}
}

func dataNodes(exprs []DataExpr) []Node {
	out := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, e)
	}
	return out
}

// FreeVariables returns the sorted, de-duplicated variable names read by
// expr. Data expressions have no binders, so every reference is free.
func FreeVariables(expr Condition) []string {
	seen := map[string]struct{}{}
	Inspect(expr, func(n Node) bool {
		if ref, ok := n.(*VariableReference); ok {
			seen[ref.Name] = struct{}{}
		}
		return true
	})
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ContainsVariable reports whether name occurs free in expr.
func ContainsVariable(expr Condition, name string) bool {
	found := false
	Inspect(expr, func(n Node) bool {
		if found {
			return false
		}
		if ref, ok := n.(*VariableReference); ok && ref.Name == name {
			found = true
		}
		return !found
	})
	return found
}

// PureCalls returns every PureCall reachable from node, in traversal order.
func PureCalls(node Node) []*PureCall {
	var out []*PureCall
	Inspect(node, func(n Node) bool {
		if call, ok := n.(*PureCall); ok {
			out = append(out, call)
		}
		return true
	})
	return out
}
