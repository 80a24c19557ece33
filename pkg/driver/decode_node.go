package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"strconv"

	"jtv/interpreter-go/pkg/ast"
)

type nodeCategoryDecoder func(map[string]any, ast.NodeType) (ast.Node, bool, error)

var nodeDecoders []nodeCategoryDecoder

func init() {
	nodeDecoders = []nodeCategoryDecoder{
		decodeLiteralNodes,
		decodeExpressionNodes,
		decodeConditionNodes,
		decodeStatementNodes,
		decodeDeclarationNodes,
	}
}

// LoadProgram reads a JSON-encoded program from disk.
func LoadProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	program, err := DecodeProgram(data)
	if err != nil {
		return nil, fmt.Errorf("program: %s: %w", path, err)
	}
	return program, nil
}

// DecodeProgram decodes the JSON form a parser emits. The top level may be
// a Program node or a bare list of statements.
func DecodeProgram(data []byte) (*ast.Program, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	switch v := raw.(type) {
	case []any:
		body, err := decodeControlList(v)
		if err != nil {
			return nil, err
		}
		return ast.NewProgram(body), nil
	case map[string]any:
		if typ, _ := v["type"].(string); typ != string(ast.NodeProgram) {
			return nil, fmt.Errorf("decode: top-level node is %q, want %s", typ, ast.NodeProgram)
		}
		items, err := listField(v, "body")
		if err != nil {
			return nil, err
		}
		body, err := decodeControlList(items)
		if err != nil {
			return nil, err
		}
		return ast.NewProgram(body), nil
	default:
		return nil, fmt.Errorf("decode: unexpected top-level %T", raw)
	}
}

func decodeNode(node map[string]any) (ast.Node, error) {
	typ, _ := node["type"].(string)
	for _, decoder := range nodeDecoders {
		decoded, handled, err := decoder(node, ast.NodeType(typ))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", typ, err)
		}
		if handled {
			return decoded, nil
		}
	}
	return nil, fmt.Errorf("decode %q: %w", typ, fs.ErrInvalid)
}

func decodeAny(raw any) (ast.Node, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected node object, got %T", raw)
	}
	return decodeNode(node)
}

func decodeData(raw any) (ast.DataExpr, error) {
	node, err := decodeAny(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(ast.DataExpr)
	if !ok {
		return nil, fmt.Errorf("%s is not a data expression", node.NodeType())
	}
	return expr, nil
}

func decodeCondition(raw any) (ast.Condition, error) {
	node, err := decodeAny(raw)
	if err != nil {
		return nil, err
	}
	cond, ok := node.(ast.Condition)
	if !ok {
		return nil, fmt.Errorf("%s is not a condition", node.NodeType())
	}
	return cond, nil
}

func decodeControl(raw any) (ast.ControlStmt, error) {
	node, err := decodeAny(raw)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(ast.ControlStmt)
	if !ok {
		return nil, fmt.Errorf("%s is not a statement", node.NodeType())
	}
	return stmt, nil
}

func decodeDataList(items []any) ([]ast.DataExpr, error) {
	out := make([]ast.DataExpr, 0, len(items))
	for idx, item := range items {
		expr, err := decodeData(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", idx, err)
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeControlList(items []any) ([]ast.ControlStmt, error) {
	out := make([]ast.ControlStmt, 0, len(items))
	for idx, item := range items {
		stmt, err := decodeControl(item)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", idx, err)
		}
		out = append(out, stmt)
	}
	return out, nil
}

// optionalControl decodes a statement field that may be absent. A list is
// folded into a sequence.
func optionalControl(node map[string]any, key string) (ast.ControlStmt, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return nil, nil
	}
	if items, isList := raw.([]any); isList {
		stmts, err := decodeControlList(items)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return ast.Seq(stmts...), nil
	}
	stmt, err := decodeControl(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return stmt, nil
}

func requiredControl(node map[string]any, key string) (ast.ControlStmt, error) {
	stmt, err := optionalControl(node, key)
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, fmt.Errorf("missing %q", key)
	}
	return stmt, nil
}

func dataField(node map[string]any, key string) (ast.DataExpr, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing %q", key)
	}
	expr, err := decodeData(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return expr, nil
}

func conditionField(node map[string]any, key string) (ast.Condition, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing %q", key)
	}
	cond, err := decodeCondition(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return cond, nil
}

func listField(node map[string]any, key string) ([]any, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%q must be a list, got %T", key, raw)
	}
	return items, nil
}

func stringField(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}

func requiredString(node map[string]any, key string) (string, error) {
	s := stringField(node, key)
	if s == "" {
		return "", fmt.Errorf("missing %q", key)
	}
	return s, nil
}

// parseBigInt accepts a JSON number or a decimal string of any size.
func parseBigInt(value any) (*big.Int, error) {
	var text string
	switch v := value.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = v
	case nil:
		return nil, fmt.Errorf("missing integer")
	default:
		return nil, fmt.Errorf("expected integer, got %T", value)
	}
	bi, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", text)
	}
	return bi, nil
}

// parseFloat accepts a JSON number, or a string for the non-finite values
// JSON cannot spell.
func parseFloat(value any) (float64, error) {
	switch v := value.(type) {
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	case nil:
		return 0, fmt.Errorf("missing number")
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}
