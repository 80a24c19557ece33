package runtime

import (
	"fmt"
	"math/big"
)

// Kind identifies the numeric value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindRational
	KindComplex
	KindSymbolic
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{KindInteger, KindFloat, KindRational, KindComplex, KindSymbolic}

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Int"
	case KindFloat:
		return "Float"
	case KindRational:
		return "Rational"
	case KindComplex:
		return "Complex"
	case KindSymbolic:
		return "Symbolic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Ordered reports whether values of the kind have a total order.
func (k Kind) Ordered() bool {
	return k == KindInteger || k == KindFloat || k == KindRational
}

// Value is a numeric runtime value. Implementations never mutate their
// contents after construction.
type Value interface {
	Kind() Kind
	String() string
}

type IntegerValue struct {
	Val *big.Int
}

func (IntegerValue) Kind() Kind { return KindInteger }

func NewInteger(v *big.Int) IntegerValue {
	if v == nil {
		return IntegerValue{Val: new(big.Int)}
	}
	return IntegerValue{Val: new(big.Int).Set(v)}
}

func Int64(v int64) IntegerValue { return IntegerValue{Val: big.NewInt(v)} }

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind { return KindFloat }

func NewFloat(v float64) FloatValue { return FloatValue{Val: v} }

// RationalValue wraps a big.Rat, which keeps itself in lowest terms with a
// positive denominator.
type RationalValue struct {
	Val *big.Rat
}

func (RationalValue) Kind() Kind { return KindRational }

// NewRational builds num/den in lowest terms.
func NewRational(num, den *big.Int) (RationalValue, error) {
	if den == nil || den.Sign() == 0 {
		return RationalValue{}, ErrZeroDenominator
	}
	if num == nil {
		num = new(big.Int)
	}
	return RationalValue{Val: new(big.Rat).SetFrac(num, den)}, nil
}

// Ratio is NewRational for small literals. It panics on a zero denominator.
func Ratio(num, den int64) RationalValue {
	r, err := NewRational(big.NewInt(num), big.NewInt(den))
	if err != nil {
		panic(err)
	}
	return r
}

func (r RationalValue) Num() *big.Int   { return new(big.Int).Set(r.Val.Num()) }
func (r RationalValue) Denom() *big.Int { return new(big.Int).Set(r.Val.Denom()) }

type ComplexValue struct {
	Val complex128
}

func (ComplexValue) Kind() Kind { return KindComplex }

func NewComplex(re, im float64) ComplexValue { return ComplexValue{Val: complex(re, im)} }

type SymbolicOp int

const (
	SymbolAtom SymbolicOp = iota
	SymbolSum
	SymbolNegation
)

// SymbolicValue is an opaque name or an unevaluated sum/negation tree.
type SymbolicValue struct {
	Op    SymbolicOp
	Name  string
	Left  *SymbolicValue
	Right *SymbolicValue
}

func (SymbolicValue) Kind() Kind { return KindSymbolic }

func Symbol(name string) SymbolicValue { return SymbolicValue{Op: SymbolAtom, Name: name} }

func symbolicSum(left, right SymbolicValue) SymbolicValue {
	return SymbolicValue{Op: SymbolSum, Left: &left, Right: &right}
}

func symbolicNegation(operand SymbolicValue) SymbolicValue {
	return SymbolicValue{Op: SymbolNegation, Left: &operand}
}

// Identical reports structural equality without coercion: the kinds must
// match and the payloads must be equal. Float comparison is bitwise, so
// NaN is identical to itself.
func Identical(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case IntegerValue:
		return av.Val.Cmp(b.(IntegerValue).Val) == 0
	case FloatValue:
		return floatBitsEqual(av.Val, b.(FloatValue).Val)
	case RationalValue:
		return av.Val.Cmp(b.(RationalValue).Val) == 0
	case ComplexValue:
		bv := b.(ComplexValue).Val
		return floatBitsEqual(real(av.Val), real(bv)) && floatBitsEqual(imag(av.Val), imag(bv))
	case SymbolicValue:
		return symbolsIdentical(&av, ptrSymbol(b.(SymbolicValue)))
	}
	return false
}

func ptrSymbol(v SymbolicValue) *SymbolicValue { return &v }

func symbolsIdentical(a, b *SymbolicValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Op != b.Op || a.Name != b.Name {
		return false
	}
	return symbolsIdentical(a.Left, b.Left) && symbolsIdentical(a.Right, b.Right)
}
