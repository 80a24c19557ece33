package runtime

import (
	"math"
	"math/big"
)

// Compare orders two values after coercing them to their join. ok is false
// when a Float operand is NaN, in which case no ordering holds.
func Compare(left, right Value) (cmp int, ok bool, err error) {
	if !left.Kind().Ordered() {
		return 0, false, UnorderedError{Kind: left.Kind()}
	}
	if !right.Kind().Ordered() {
		return 0, false, UnorderedError{Kind: right.Kind()}
	}
	l, r, err := coercePair("comparison", left, right)
	if err != nil {
		return 0, false, err
	}
	switch lv := l.(type) {
	case IntegerValue:
		return lv.Val.Cmp(r.(IntegerValue).Val), true, nil
	case RationalValue:
		return lv.Val.Cmp(r.(RationalValue).Val), true, nil
	case FloatValue:
		a, b := lv.Val, r.(FloatValue).Val
		switch {
		case math.IsNaN(a) || math.IsNaN(b):
			return 0, false, nil
		case a < b:
			return -1, true, nil
		case a > b:
			return 1, true, nil
		default:
			return 0, true, nil
		}
	}
	return 0, false, UnorderedError{Kind: l.Kind()}
}

// Equal compares two values for numeric equality after coercion. It is
// defined for every pair that has a join, including Complex and Symbolic.
func Equal(left, right Value) (bool, error) {
	l, r, err := coercePair("equality", left, right)
	if err != nil {
		return false, err
	}
	switch lv := l.(type) {
	case IntegerValue:
		return lv.Val.Cmp(r.(IntegerValue).Val) == 0, nil
	case FloatValue:
		return lv.Val == r.(FloatValue).Val, nil
	case RationalValue:
		return lv.Val.Cmp(r.(RationalValue).Val) == 0, nil
	case ComplexValue:
		return lv.Val == r.(ComplexValue).Val, nil
	case SymbolicValue:
		return Identical(lv, r), nil
	}
	return false, nil
}

// IsZero reports whether v is the additive identity of its kind. Symbolic
// values have no truth value.
func IsZero(v Value) (bool, error) {
	switch val := v.(type) {
	case IntegerValue:
		return val.Val.Sign() == 0, nil
	case FloatValue:
		return val.Val == 0, nil
	case RationalValue:
		return val.Val.Sign() == 0, nil
	case ComplexValue:
		return val.Val == 0, nil
	}
	return false, ConversionError{From: v.Kind(), To: KindInteger, Reason: "no truth value"}
}

func coercePair(op string, left, right Value) (Value, Value, error) {
	kind, ok := Join(left.Kind(), right.Kind())
	if !ok {
		return nil, nil, MismatchError{Op: op, Left: left.Kind(), Right: right.Kind()}
	}
	l, err := Coerce(left, kind)
	if err != nil {
		return nil, nil, err
	}
	r, err := Coerce(right, kind)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// IntegerRange reports the values lo, lo+1, ..., hi-1 to fn in order and
// stops early when fn returns false.
func IntegerRange(lo, hi *big.Int, fn func(IntegerValue) bool) {
	one := big.NewInt(1)
	for i := new(big.Int).Set(lo); i.Cmp(hi) < 0; i.Add(i, one) {
		if !fn(IntegerValue{Val: new(big.Int).Set(i)}) {
			return
		}
	}
}
