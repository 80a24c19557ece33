package driver

import (
	"encoding/json"
	"fmt"

	"jtv/interpreter-go/pkg/ast"
)

func decodeLiteralNodes(node map[string]any, typ ast.NodeType) (ast.Node, bool, error) {
	switch typ {
	case ast.NodeIntegerLiteral:
		value, err := parseBigInt(node["value"])
		if err != nil {
			return nil, true, err
		}
		base := 10
		if n, ok := node["base"].(json.Number); ok {
			b, err := n.Int64()
			if err != nil {
				return nil, true, fmt.Errorf("base: %w", err)
			}
			base = int(b)
		}
		switch base {
		case 2, 10, 16:
		default:
			return nil, true, fmt.Errorf("unsupported base %d", base)
		}
		return ast.NewIntegerLiteral(value, base), true, nil
	case ast.NodeFloatLiteral:
		value, err := parseFloat(node["value"])
		if err != nil {
			return nil, true, err
		}
		return ast.NewFloatLiteral(value), true, nil
	case ast.NodeRationalLiteral:
		num, err := parseBigInt(node["numerator"])
		if err != nil {
			return nil, true, fmt.Errorf("numerator: %w", err)
		}
		den, err := parseBigInt(node["denominator"])
		if err != nil {
			return nil, true, fmt.Errorf("denominator: %w", err)
		}
		return ast.NewRationalLiteral(num, den), true, nil
	case ast.NodeComplexLiteral:
		re, err := parseFloat(node["real"])
		if err != nil {
			return nil, true, fmt.Errorf("real: %w", err)
		}
		im, err := parseFloat(node["imag"])
		if err != nil {
			return nil, true, fmt.Errorf("imag: %w", err)
		}
		return ast.NewComplexLiteral(re, im), true, nil
	case ast.NodeSymbolicLiteral:
		name, err := requiredString(node, "name")
		if err != nil {
			return nil, true, err
		}
		return ast.NewSymbolicLiteral(name), true, nil
	case ast.NodeBooleanLiteral:
		value, ok := node["value"].(bool)
		if !ok {
			return nil, true, fmt.Errorf("value must be a boolean")
		}
		return ast.NewBooleanLiteral(value), true, nil
	}
	return nil, false, nil
}

func decodeExpressionNodes(node map[string]any, typ ast.NodeType) (ast.Node, bool, error) {
	switch typ {
	case ast.NodeVariableReference:
		name, err := requiredString(node, "name")
		if err != nil {
			return nil, true, err
		}
		return ast.NewVariableReference(name), true, nil
	case ast.NodeAdditionExpression:
		left, err := dataField(node, "left")
		if err != nil {
			return nil, true, err
		}
		right, err := dataField(node, "right")
		if err != nil {
			return nil, true, err
		}
		return ast.NewAdditionExpression(left, right), true, nil
	case ast.NodeNegationExpression:
		operand, err := dataField(node, "operand")
		if err != nil {
			return nil, true, err
		}
		return ast.NewNegationExpression(operand), true, nil
	case ast.NodePureCall:
		callee, err := requiredString(node, "callee")
		if err != nil {
			return nil, true, err
		}
		items, err := listField(node, "args")
		if err != nil {
			return nil, true, err
		}
		args, err := decodeDataList(items)
		if err != nil {
			return nil, true, fmt.Errorf("args: %w", err)
		}
		return ast.NewPureCall(callee, args), true, nil
	}
	return nil, false, nil
}

func decodeConditionNodes(node map[string]any, typ ast.NodeType) (ast.Node, bool, error) {
	switch typ {
	case ast.NodeComparisonExpression:
		op := ast.ComparisonOperator(stringField(node, "operator"))
		switch op {
		case ast.CompareEqual, ast.CompareNotEqual, ast.CompareLess, ast.CompareLessEqual, ast.CompareGreater, ast.CompareGreaterEqual:
		default:
			return nil, true, fmt.Errorf("unknown comparison operator %q", op)
		}
		left, err := dataField(node, "left")
		if err != nil {
			return nil, true, err
		}
		right, err := dataField(node, "right")
		if err != nil {
			return nil, true, err
		}
		return ast.NewComparisonExpression(op, left, right), true, nil
	case ast.NodeLogicalExpression:
		op := ast.LogicalOperator(stringField(node, "operator"))
		if op != ast.LogicalAnd && op != ast.LogicalOr {
			return nil, true, fmt.Errorf("unknown logical operator %q", op)
		}
		left, err := conditionField(node, "left")
		if err != nil {
			return nil, true, err
		}
		right, err := conditionField(node, "right")
		if err != nil {
			return nil, true, err
		}
		return ast.NewLogicalExpression(op, left, right), true, nil
	case ast.NodeNotExpression:
		operand, err := conditionField(node, "operand")
		if err != nil {
			return nil, true, err
		}
		return ast.NewNotExpression(operand), true, nil
	}
	return nil, false, nil
}

func decodeStatementNodes(node map[string]any, typ ast.NodeType) (ast.Node, bool, error) {
	switch typ {
	case ast.NodeSkipStatement:
		return ast.NewSkipStatement(), true, nil
	case ast.NodeAssignStatement:
		target, err := requiredString(node, "target")
		if err != nil {
			return nil, true, err
		}
		value, err := dataField(node, "value")
		if err != nil {
			return nil, true, err
		}
		return ast.NewAssignStatement(target, value), true, nil
	case ast.NodeSequenceStatement:
		first, err := requiredControl(node, "first")
		if err != nil {
			return nil, true, err
		}
		second, err := requiredControl(node, "second")
		if err != nil {
			return nil, true, err
		}
		return ast.NewSequenceStatement(first, second), true, nil
	case ast.NodeIfStatement:
		cond, err := conditionField(node, "condition")
		if err != nil {
			return nil, true, err
		}
		then, err := requiredControl(node, "then")
		if err != nil {
			return nil, true, err
		}
		els, err := optionalControl(node, "else")
		if err != nil {
			return nil, true, err
		}
		return ast.NewIfStatement(cond, then, els), true, nil
	case ast.NodeWhileLoop:
		cond, err := conditionField(node, "condition")
		if err != nil {
			return nil, true, err
		}
		body, err := optionalControl(node, "body")
		if err != nil {
			return nil, true, err
		}
		return ast.NewWhileLoop(cond, orSkip(body)), true, nil
	case ast.NodeForRangeLoop:
		variable, err := requiredString(node, "variable")
		if err != nil {
			return nil, true, err
		}
		start, err := dataField(node, "start")
		if err != nil {
			return nil, true, err
		}
		end, err := dataField(node, "end")
		if err != nil {
			return nil, true, err
		}
		body, err := optionalControl(node, "body")
		if err != nil {
			return nil, true, err
		}
		return ast.NewForRangeLoop(variable, start, end, orSkip(body)), true, nil
	case ast.NodeReturnStatement:
		var value ast.DataExpr
		if raw, ok := node["value"]; ok && raw != nil {
			expr, err := decodeData(raw)
			if err != nil {
				return nil, true, fmt.Errorf("value: %w", err)
			}
			value = expr
		}
		return ast.NewReturnStatement(value), true, nil
	case ast.NodePrintStatement:
		items, err := listField(node, "values")
		if err != nil {
			return nil, true, err
		}
		values, err := decodeDataList(items)
		if err != nil {
			return nil, true, fmt.Errorf("values: %w", err)
		}
		if len(values) == 0 {
			return nil, true, fmt.Errorf("print needs at least one value")
		}
		return ast.NewPrintStatement(values), true, nil
	case ast.NodeReverseBlock:
		items, err := listField(node, "ops")
		if err != nil {
			return nil, true, err
		}
		ops := make([]*ast.ReversibleOp, 0, len(items))
		for idx, item := range items {
			op, err := decodeReversibleOp(item)
			if err != nil {
				return nil, true, fmt.Errorf("op %d: %w", idx, err)
			}
			ops = append(ops, op)
		}
		return ast.NewReverseBlock(ops), true, nil
	case ast.NodeReversibleOp:
		return nil, true, fmt.Errorf("reversible op outside a reverse block")
	}
	return nil, false, nil
}

func decodeReversibleOp(raw any) (*ast.ReversibleOp, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected op object, got %T", raw)
	}
	if typ := stringField(node, "type"); typ != "" && typ != string(ast.NodeReversibleOp) {
		return nil, fmt.Errorf("%s is not allowed in a reverse block", typ)
	}
	op := ast.ReversibleOpKind(stringField(node, "operator"))
	if op != ast.AddAssign && op != ast.SubAssign {
		return nil, fmt.Errorf("unknown operator %q", op)
	}
	target, err := requiredString(node, "target")
	if err != nil {
		return nil, err
	}
	value, err := dataField(node, "value")
	if err != nil {
		return nil, err
	}
	return ast.NewReversibleOp(op, target, value), nil
}

func decodeDeclarationNodes(node map[string]any, typ ast.NodeType) (ast.Node, bool, error) {
	switch typ {
	case ast.NodeFunctionDeclaration:
		name, err := requiredString(node, "name")
		if err != nil {
			return nil, true, err
		}
		items, err := listField(node, "params")
		if err != nil {
			return nil, true, err
		}
		params := make([]*ast.Parameter, 0, len(items))
		for idx, item := range items {
			p, ok := item.(map[string]any)
			if !ok {
				return nil, true, fmt.Errorf("param %d: expected object, got %T", idx, item)
			}
			pname, err := requiredString(p, "name")
			if err != nil {
				return nil, true, fmt.Errorf("param %d: %w", idx, err)
			}
			params = append(params, ast.NewParameter(pname, ast.TypeAnnotation(stringField(p, "paramType"))))
		}
		purity := ast.PurityAnnotation(stringField(node, "purity"))
		switch purity {
		case "", ast.PurityTotal, ast.PurityPure, ast.PurityImpure:
		default:
			return nil, true, fmt.Errorf("unknown purity %q", purity)
		}
		body, err := requiredControl(node, "body")
		if err != nil {
			return nil, true, err
		}
		return ast.NewFunctionDeclaration(name, params, ast.TypeAnnotation(stringField(node, "returnType")), purity, body), true, nil
	case ast.NodeCallStatement:
		callee, err := requiredString(node, "callee")
		if err != nil {
			return nil, true, err
		}
		items, err := listField(node, "args")
		if err != nil {
			return nil, true, err
		}
		args, err := decodeDataList(items)
		if err != nil {
			return nil, true, fmt.Errorf("args: %w", err)
		}
		return ast.NewCallStatement(stringField(node, "target"), callee, args), true, nil
	}
	return nil, false, nil
}

func orSkip(stmt ast.ControlStmt) ast.ControlStmt {
	if stmt == nil {
		return ast.NewSkipStatement()
	}
	return stmt
}
