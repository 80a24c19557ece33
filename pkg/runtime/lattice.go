package runtime

import (
	"math"
	"math/big"
)

// coercions holds the non-reflexive edges of the coercion lattice. The
// table is the whole definition; every other lattice query reads it.
var coercions = map[Kind][]Kind{
	KindInteger:  {KindFloat, KindRational, KindComplex},
	KindFloat:    {KindComplex},
	KindRational: {KindComplex},
}

// CoercesTo reports whether a value of kind from may be promoted to kind to
// implicitly.
func CoercesTo(from, to Kind) bool {
	if from == to {
		return true
	}
	for _, k := range coercions[from] {
		if k == to {
			return true
		}
	}
	return false
}

// Join returns the common type of a and b when one coerces to the other.
// Float and Rational share Complex as an upper bound, but joining them there
// would round the rational silently, so the pair has no join; callers must
// convert explicitly.
func Join(a, b Kind) (Kind, bool) {
	switch {
	case CoercesTo(a, b):
		return b, true
	case CoercesTo(b, a):
		return a, true
	default:
		return 0, false
	}
}

// Coerce promotes v to kind to along a lattice edge.
func Coerce(v Value, to Kind) (Value, error) {
	if v.Kind() == to {
		return v, nil
	}
	if !CoercesTo(v.Kind(), to) {
		return nil, ConversionError{From: v.Kind(), To: to, Reason: "not an implicit coercion"}
	}
	switch src := v.(type) {
	case IntegerValue:
		switch to {
		case KindFloat:
			return FloatValue{Val: bigIntToFloat(src.Val)}, nil
		case KindRational:
			return RationalValue{Val: new(big.Rat).SetInt(src.Val)}, nil
		case KindComplex:
			return ComplexValue{Val: complex(bigIntToFloat(src.Val), 0)}, nil
		}
	case FloatValue:
		return ComplexValue{Val: complex(src.Val, 0)}, nil
	case RationalValue:
		f, _ := src.Val.Float64()
		return ComplexValue{Val: complex(f, 0)}, nil
	}
	return nil, ConversionError{From: v.Kind(), To: to}
}

func bigIntToFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

func floatBitsEqual(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}
