package ast

import "math/big"

type NodeType string

const (
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeRationalLiteral      NodeType = "RationalLiteral"
	NodeComplexLiteral       NodeType = "ComplexLiteral"
	NodeSymbolicLiteral      NodeType = "SymbolicLiteral"
	NodeVariableReference    NodeType = "VariableReference"
	NodeAdditionExpression   NodeType = "AdditionExpression"
	NodeNegationExpression   NodeType = "NegationExpression"
	NodePureCall             NodeType = "PureCall"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeComparisonExpression NodeType = "ComparisonExpression"
	NodeLogicalExpression    NodeType = "LogicalExpression"
	NodeNotExpression        NodeType = "NotExpression"
	NodeSkipStatement        NodeType = "SkipStatement"
	NodeAssignStatement      NodeType = "AssignStatement"
	NodeSequenceStatement    NodeType = "SequenceStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeWhileLoop            NodeType = "WhileLoop"
	NodeForRangeLoop         NodeType = "ForRangeLoop"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodePrintStatement       NodeType = "PrintStatement"
	NodeReverseBlock         NodeType = "ReverseBlock"
	NodeReversibleOp         NodeType = "ReversibleOp"
	NodeFunctionDeclaration  NodeType = "FunctionDeclaration"
	NodeCallStatement        NodeType = "CallStatement"
	NodeParameter            NodeType = "Parameter"
	NodeProgram              NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl { return nodeImpl{Type: kind} }

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Condition is anything If and While may test. Every DataExpr is a
// Condition; comparisons and logical connectives are Conditions only.
type Condition interface {
	Node
	conditionNode()
}

// DataExpr is the Data language. Implementations live in this package only,
// and none of them holds a ControlStmt in any field.
type DataExpr interface {
	Condition
	dataExprNode()
}

// ControlStmt is the Control language.
type ControlStmt interface {
	Node
	controlStmtNode()
}

type dataMarker struct{}

func (dataMarker) dataExprNode()  {}
func (dataMarker) conditionNode() {}

type conditionMarker struct{}

func (conditionMarker) conditionNode() {}

type controlMarker struct{}

func (controlMarker) controlStmtNode() {}

// Data language

type IntegerLiteral struct {
	nodeImpl
	dataMarker

	Value *big.Int `json:"value"`
	// Base records the source spelling (10, 16 or 2). It has no effect on
	// the value.
	Base int `json:"base,omitempty"`
}

func NewIntegerLiteral(value *big.Int, base int) *IntegerLiteral {
	if value == nil {
		value = new(big.Int)
	}
	if base == 0 {
		base = 10
	}
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value, Base: base}
}

type FloatLiteral struct {
	nodeImpl
	dataMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type RationalLiteral struct {
	nodeImpl
	dataMarker

	Numerator   *big.Int `json:"numerator"`
	Denominator *big.Int `json:"denominator"`
}

func NewRationalLiteral(num, den *big.Int) *RationalLiteral {
	return &RationalLiteral{nodeImpl: newNodeImpl(NodeRationalLiteral), Numerator: num, Denominator: den}
}

type ComplexLiteral struct {
	nodeImpl
	dataMarker

	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

func NewComplexLiteral(re, im float64) *ComplexLiteral {
	return &ComplexLiteral{nodeImpl: newNodeImpl(NodeComplexLiteral), Real: re, Imag: im}
}

type SymbolicLiteral struct {
	nodeImpl
	dataMarker

	Name string `json:"name"`
}

func NewSymbolicLiteral(name string) *SymbolicLiteral {
	return &SymbolicLiteral{nodeImpl: newNodeImpl(NodeSymbolicLiteral), Name: name}
}

type VariableReference struct {
	nodeImpl
	dataMarker

	Name string `json:"name"`
}

func NewVariableReference(name string) *VariableReference {
	return &VariableReference{nodeImpl: newNodeImpl(NodeVariableReference), Name: name}
}

type AdditionExpression struct {
	nodeImpl
	dataMarker

	Left  DataExpr `json:"left"`
	Right DataExpr `json:"right"`
}

func NewAdditionExpression(left, right DataExpr) *AdditionExpression {
	return &AdditionExpression{nodeImpl: newNodeImpl(NodeAdditionExpression), Left: left, Right: right}
}

type NegationExpression struct {
	nodeImpl
	dataMarker

	Operand DataExpr `json:"operand"`
}

func NewNegationExpression(operand DataExpr) *NegationExpression {
	return &NegationExpression{nodeImpl: newNodeImpl(NodeNegationExpression), Operand: operand}
}

// PureCall is a call from Data context. The callee must be Total or Pure.
type PureCall struct {
	nodeImpl
	dataMarker

	Callee string     `json:"callee"`
	Args   []DataExpr `json:"args"`
}

func NewPureCall(callee string, args []DataExpr) *PureCall {
	return &PureCall{nodeImpl: newNodeImpl(NodePureCall), Callee: callee, Args: args}
}

// Conditions

type ComparisonOperator string

const (
	CompareEqual        ComparisonOperator = "=="
	CompareNotEqual     ComparisonOperator = "!="
	CompareLess         ComparisonOperator = "<"
	CompareLessEqual    ComparisonOperator = "<="
	CompareGreater      ComparisonOperator = ">"
	CompareGreaterEqual ComparisonOperator = ">="
)

// Ordering reports whether the operator needs a total order on its operands.
func (op ComparisonOperator) Ordering() bool {
	switch op {
	case CompareLess, CompareLessEqual, CompareGreater, CompareGreaterEqual:
		return true
	default:
		return false
	}
}

type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and"
	LogicalOr  LogicalOperator = "or"
)

type BooleanLiteral struct {
	nodeImpl
	conditionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type ComparisonExpression struct {
	nodeImpl
	conditionMarker

	Operator ComparisonOperator `json:"operator"`
	Left     DataExpr           `json:"left"`
	Right    DataExpr           `json:"right"`
}

func NewComparisonExpression(op ComparisonOperator, left, right DataExpr) *ComparisonExpression {
	return &ComparisonExpression{nodeImpl: newNodeImpl(NodeComparisonExpression), Operator: op, Left: left, Right: right}
}

type LogicalExpression struct {
	nodeImpl
	conditionMarker

	Operator LogicalOperator `json:"operator"`
	Left     Condition       `json:"left"`
	Right    Condition       `json:"right"`
}

func NewLogicalExpression(op LogicalOperator, left, right Condition) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: op, Left: left, Right: right}
}

type NotExpression struct {
	nodeImpl
	conditionMarker

	Operand Condition `json:"operand"`
}

func NewNotExpression(operand Condition) *NotExpression {
	return &NotExpression{nodeImpl: newNodeImpl(NodeNotExpression), Operand: operand}
}

// Control language

type SkipStatement struct {
	nodeImpl
	controlMarker
}

func NewSkipStatement() *SkipStatement {
	return &SkipStatement{nodeImpl: newNodeImpl(NodeSkipStatement)}
}

type AssignStatement struct {
	nodeImpl
	controlMarker

	Target string   `json:"target"`
	Value  DataExpr `json:"value"`
}

func NewAssignStatement(target string, value DataExpr) *AssignStatement {
	return &AssignStatement{nodeImpl: newNodeImpl(NodeAssignStatement), Target: target, Value: value}
}

type SequenceStatement struct {
	nodeImpl
	controlMarker

	First  ControlStmt `json:"first"`
	Second ControlStmt `json:"second"`
}

func NewSequenceStatement(first, second ControlStmt) *SequenceStatement {
	return &SequenceStatement{nodeImpl: newNodeImpl(NodeSequenceStatement), First: first, Second: second}
}

type IfStatement struct {
	nodeImpl
	controlMarker

	Condition Condition   `json:"condition"`
	Then      ControlStmt `json:"then"`
	Else      ControlStmt `json:"else,omitempty"`
}

func NewIfStatement(cond Condition, then, els ControlStmt) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: cond, Then: then, Else: els}
}

type WhileLoop struct {
	nodeImpl
	controlMarker

	Condition Condition   `json:"condition"`
	Body      ControlStmt `json:"body"`
}

func NewWhileLoop(cond Condition, body ControlStmt) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: cond, Body: body}
}

// ForRangeLoop iterates Variable over the half-open integer range [Start, End).
type ForRangeLoop struct {
	nodeImpl
	controlMarker

	Variable string      `json:"variable"`
	Start    DataExpr    `json:"start"`
	End      DataExpr    `json:"end"`
	Body     ControlStmt `json:"body"`
}

func NewForRangeLoop(variable string, start, end DataExpr, body ControlStmt) *ForRangeLoop {
	return &ForRangeLoop{nodeImpl: newNodeImpl(NodeForRangeLoop), Variable: variable, Start: start, End: end, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	controlMarker

	Value DataExpr `json:"value,omitempty"`
}

func NewReturnStatement(value DataExpr) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

type PrintStatement struct {
	nodeImpl
	controlMarker

	Values []DataExpr `json:"values"`
}

func NewPrintStatement(values []DataExpr) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Values: values}
}

type ReversibleOpKind string

const (
	AddAssign ReversibleOpKind = "+="
	SubAssign ReversibleOpKind = "-="
)

// Inverse returns the operator that undoes op.
func (op ReversibleOpKind) Inverse() ReversibleOpKind {
	if op == AddAssign {
		return SubAssign
	}
	return AddAssign
}

type ReversibleOp struct {
	nodeImpl

	Operator ReversibleOpKind `json:"operator"`
	Target   string           `json:"target"`
	Value    DataExpr         `json:"value"`
}

func NewReversibleOp(op ReversibleOpKind, target string, value DataExpr) *ReversibleOp {
	return &ReversibleOp{nodeImpl: newNodeImpl(NodeReversibleOp), Operator: op, Target: target, Value: value}
}

type ReverseBlock struct {
	nodeImpl
	controlMarker

	Ops []*ReversibleOp `json:"ops"`
}

func NewReverseBlock(ops []*ReversibleOp) *ReverseBlock {
	return &ReverseBlock{nodeImpl: newNodeImpl(NodeReverseBlock), Ops: ops}
}

// TypeAnnotation names a numeric type in a signature. The empty annotation
// leaves the type unchecked.
type TypeAnnotation string

const (
	TypeUnannotated TypeAnnotation = ""
	TypeInt         TypeAnnotation = "Int"
	TypeFloat       TypeAnnotation = "Float"
	TypeRational    TypeAnnotation = "Rational"
	TypeComplex     TypeAnnotation = "Complex"
	TypeSymbolic    TypeAnnotation = "Symbolic"
	TypeHex         TypeAnnotation = "Hex"
	TypeBinary      TypeAnnotation = "Binary"
)

type PurityAnnotation string

const (
	PurityTotal  PurityAnnotation = "total"
	PurityPure   PurityAnnotation = "pure"
	PurityImpure PurityAnnotation = "impure"
)

type Parameter struct {
	nodeImpl

	Name string         `json:"name"`
	Type TypeAnnotation `json:"paramType,omitempty"`
}

func NewParameter(name string, typ TypeAnnotation) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, Type: typ}
}

type FunctionDeclaration struct {
	nodeImpl
	controlMarker

	Name       string           `json:"name"`
	Params     []*Parameter     `json:"params"`
	ReturnType TypeAnnotation   `json:"returnType,omitempty"`
	Purity     PurityAnnotation `json:"purity,omitempty"`
	Body       ControlStmt      `json:"body"`
}

func NewFunctionDeclaration(name string, params []*Parameter, returnType TypeAnnotation, purity PurityAnnotation, body ControlStmt) *FunctionDeclaration {
	return &FunctionDeclaration{
		nodeImpl:   newNodeImpl(NodeFunctionDeclaration),
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Purity:     purity,
		Body:       body,
	}
}

// DeclaredPurity treats a missing annotation as impure.
func (fn *FunctionDeclaration) DeclaredPurity() PurityAnnotation {
	if fn == nil || fn.Purity == "" {
		return PurityImpure
	}
	return fn.Purity
}

// CallStatement calls a function of any purity from Control context and
// optionally binds the result.
type CallStatement struct {
	nodeImpl
	controlMarker

	Target string     `json:"target,omitempty"`
	Callee string     `json:"callee"`
	Args   []DataExpr `json:"args"`
}

func NewCallStatement(target, callee string, args []DataExpr) *CallStatement {
	return &CallStatement{nodeImpl: newNodeImpl(NodeCallStatement), Target: target, Callee: callee, Args: args}
}

type Program struct {
	nodeImpl

	Body []ControlStmt `json:"body"`
}

func NewProgram(body []ControlStmt) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Functions returns every function declaration in the program, in source
// order, including ones nested inside other statements.
func (p *Program) Functions() []*FunctionDeclaration {
	if p == nil {
		return nil
	}
	var out []*FunctionDeclaration
	for _, stmt := range p.Body {
		Inspect(stmt, func(n Node) bool {
			if fn, ok := n.(*FunctionDeclaration); ok {
				out = append(out, fn)
			}
			return true
		})
	}
	return out
}
