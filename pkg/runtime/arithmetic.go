package runtime

import "math/big"

// Arithmetic applies the per-kind addition and negation rules. IntegerBits
// bounds integer results to a signed width; zero leaves them unbounded.
type Arithmetic struct {
	IntegerBits int
}

// Add coerces both operands to their join and adds them with that kind's
// rule.
func (a Arithmetic) Add(left, right Value) (Value, error) {
	kind, ok := Join(left.Kind(), right.Kind())
	if !ok {
		return nil, MismatchError{Op: "addition", Left: left.Kind(), Right: right.Kind()}
	}
	l, err := Coerce(left, kind)
	if err != nil {
		return nil, err
	}
	r, err := Coerce(right, kind)
	if err != nil {
		return nil, err
	}
	switch lv := l.(type) {
	case IntegerValue:
		sum := new(big.Int).Add(lv.Val, r.(IntegerValue).Val)
		if err := a.ensureFits(sum); err != nil {
			return nil, err
		}
		return IntegerValue{Val: sum}, nil
	case FloatValue:
		return FloatValue{Val: lv.Val + r.(FloatValue).Val}, nil
	case RationalValue:
		return RationalValue{Val: new(big.Rat).Add(lv.Val, r.(RationalValue).Val)}, nil
	case ComplexValue:
		return ComplexValue{Val: lv.Val + r.(ComplexValue).Val}, nil
	case SymbolicValue:
		return symbolicSum(lv, r.(SymbolicValue)), nil
	}
	return nil, MismatchError{Op: "addition", Left: left.Kind(), Right: right.Kind()}
}

// Negate returns the additive inverse. Every kind is signed.
func (a Arithmetic) Negate(v Value) (Value, error) {
	switch val := v.(type) {
	case IntegerValue:
		neg := new(big.Int).Neg(val.Val)
		if err := a.ensureFits(neg); err != nil {
			return nil, err
		}
		return IntegerValue{Val: neg}, nil
	case FloatValue:
		return FloatValue{Val: -val.Val}, nil
	case RationalValue:
		return RationalValue{Val: new(big.Rat).Neg(val.Val)}, nil
	case ComplexValue:
		return ComplexValue{Val: -val.Val}, nil
	case SymbolicValue:
		return symbolicNegation(val), nil
	}
	return nil, ConversionError{From: v.Kind(), To: v.Kind(), Reason: "negation unsupported"}
}

// Subtract coerces both operands to their join and subtracts right from
// left. Integers are checked on the difference only, so the minimum value of
// a width can be subtracted as long as the result fits.
func (a Arithmetic) Subtract(left, right Value) (Value, error) {
	kind, ok := Join(left.Kind(), right.Kind())
	if !ok {
		return nil, MismatchError{Op: "subtraction", Left: left.Kind(), Right: right.Kind()}
	}
	l, err := Coerce(left, kind)
	if err != nil {
		return nil, err
	}
	r, err := Coerce(right, kind)
	if err != nil {
		return nil, err
	}
	switch lv := l.(type) {
	case IntegerValue:
		diff := new(big.Int).Sub(lv.Val, r.(IntegerValue).Val)
		if err := a.ensureFits(diff); err != nil {
			return nil, err
		}
		return IntegerValue{Val: diff}, nil
	case FloatValue:
		return FloatValue{Val: lv.Val - r.(FloatValue).Val}, nil
	case RationalValue:
		return RationalValue{Val: new(big.Rat).Sub(lv.Val, r.(RationalValue).Val)}, nil
	case ComplexValue:
		return ComplexValue{Val: lv.Val - r.(ComplexValue).Val}, nil
	case SymbolicValue:
		return symbolicSum(lv, symbolicNegation(r.(SymbolicValue))), nil
	}
	return nil, MismatchError{Op: "subtraction", Left: left.Kind(), Right: right.Kind()}
}

// CheckInteger validates a literal or converted integer against the width.
func (a Arithmetic) CheckInteger(v IntegerValue) error {
	return a.ensureFits(v.Val)
}

func (a Arithmetic) ensureFits(v *big.Int) error {
	if a.IntegerBits <= 0 {
		return nil
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(a.IntegerBits-1))
	minValue := new(big.Int).Neg(limit)
	maxValue := new(big.Int).Sub(limit, big.NewInt(1))
	if v.Cmp(minValue) < 0 || v.Cmp(maxValue) > 0 {
		return OverflowError{Bits: a.IntegerBits, Result: new(big.Int).Set(v)}
	}
	return nil
}
