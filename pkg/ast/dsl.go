package ast

import "math/big"

// Literal helpers.

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(big.NewInt(value), 10)
}

func IntBig(value *big.Int) *IntegerLiteral {
	return NewIntegerLiteral(new(big.Int).Set(value), 10)
}

func Hex(value int64) *IntegerLiteral {
	return NewIntegerLiteral(big.NewInt(value), 16)
}

func BinaryInt(value int64) *IntegerLiteral {
	return NewIntegerLiteral(big.NewInt(value), 2)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Rat(num, den int64) *RationalLiteral {
	return NewRationalLiteral(big.NewInt(num), big.NewInt(den))
}

func Cplx(re, im float64) *ComplexLiteral {
	return NewComplexLiteral(re, im)
}

func Sym(name string) *SymbolicLiteral {
	return NewSymbolicLiteral(name)
}

func Var(name string) *VariableReference {
	return NewVariableReference(name)
}

// Expression helpers.

func Add(left, right DataExpr) *AdditionExpression {
	return NewAdditionExpression(left, right)
}

// Sum folds terms left to right: Sum(a, b, c) is (a + b) + c.
func Sum(first DataExpr, rest ...DataExpr) DataExpr {
	out := first
	for _, term := range rest {
		out = NewAdditionExpression(out, term)
	}
	return out
}

func Neg(operand DataExpr) *NegationExpression {
	return NewNegationExpression(operand)
}

func Call(callee string, args ...DataExpr) *PureCall {
	return NewPureCall(callee, args)
}

// Condition helpers.

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Cmp(op ComparisonOperator, left, right DataExpr) *ComparisonExpression {
	return NewComparisonExpression(op, left, right)
}

func And(left, right Condition) *LogicalExpression {
	return NewLogicalExpression(LogicalAnd, left, right)
}

func Or(left, right Condition) *LogicalExpression {
	return NewLogicalExpression(LogicalOr, left, right)
}

func Not(operand Condition) *NotExpression {
	return NewNotExpression(operand)
}

// Statement helpers.

func Skip() *SkipStatement {
	return NewSkipStatement()
}

func Assign(target string, value DataExpr) *AssignStatement {
	return NewAssignStatement(target, value)
}

// Seq right-folds statements into nested SequenceStatements. An empty list
// is Skip.
func Seq(stmts ...ControlStmt) ControlStmt {
	switch len(stmts) {
	case 0:
		return NewSkipStatement()
	case 1:
		return stmts[0]
	}
	return NewSequenceStatement(stmts[0], Seq(stmts[1:]...))
}

func If(cond Condition, then ControlStmt, els ControlStmt) *IfStatement {
	return NewIfStatement(cond, then, els)
}

func While(cond Condition, body ...ControlStmt) *WhileLoop {
	return NewWhileLoop(cond, Seq(body...))
}

func For(variable string, start, end DataExpr, body ...ControlStmt) *ForRangeLoop {
	return NewForRangeLoop(variable, start, end, Seq(body...))
}

func Ret(value DataExpr) *ReturnStatement {
	return NewReturnStatement(value)
}

func Print(values ...DataExpr) *PrintStatement {
	return NewPrintStatement(values)
}

func Reverse(ops ...*ReversibleOp) *ReverseBlock {
	return NewReverseBlock(ops)
}

func AddTo(target string, value DataExpr) *ReversibleOp {
	return NewReversibleOp(AddAssign, target, value)
}

func SubFrom(target string, value DataExpr) *ReversibleOp {
	return NewReversibleOp(SubAssign, target, value)
}

func Param(name string, typ TypeAnnotation) *Parameter {
	return NewParameter(name, typ)
}

func Fn(name string, purity PurityAnnotation, params []*Parameter, returnType TypeAnnotation, body ...ControlStmt) *FunctionDeclaration {
	return NewFunctionDeclaration(name, params, returnType, purity, Seq(body...))
}

func CallStmt(target, callee string, args ...DataExpr) *CallStatement {
	return NewCallStatement(target, callee, args)
}

func Prog(body ...ControlStmt) *Program {
	return NewProgram(body)
}
