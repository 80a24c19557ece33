package runtime

import (
	"math"
	"math/big"
)

// ToFloat converts an Integer, Float or Rational to Float. Rationals round to
// the nearest double, ties to even.
func ToFloat(v Value) (FloatValue, error) {
	switch val := v.(type) {
	case FloatValue:
		return val, nil
	case IntegerValue:
		return FloatValue{Val: bigIntToFloat(val.Val)}, nil
	case RationalValue:
		f, _ := val.Val.Float64()
		return FloatValue{Val: f}, nil
	}
	return FloatValue{}, ConversionError{From: v.Kind(), To: KindFloat}
}

// ToRational converts an Integer, Float or Rational to Rational. Finite
// floats convert exactly.
func ToRational(v Value) (RationalValue, error) {
	switch val := v.(type) {
	case RationalValue:
		return val, nil
	case IntegerValue:
		return RationalValue{Val: new(big.Rat).SetInt(val.Val)}, nil
	case FloatValue:
		if math.IsInf(val.Val, 0) || math.IsNaN(val.Val) {
			return RationalValue{}, ConversionError{From: KindFloat, To: KindRational, Reason: "value is not finite"}
		}
		return RationalValue{Val: new(big.Rat).SetFloat64(val.Val)}, nil
	}
	return RationalValue{}, ConversionError{From: v.Kind(), To: KindRational}
}
