package runtime

import (
	"math"
	"math/big"
	"sort"
)

// Builtin is a Total function provided by the engine. Every argument's kind
// must appear in Accepts.
type Builtin struct {
	Name    string
	Arity   int
	Accepts []Kind
	// Result is the result kind unless JoinsArgs is set, in which case the
	// result takes the join of the argument kinds.
	Result    Kind
	JoinsArgs bool
	Apply     func([]Value) (Value, error)
}

// AcceptsKind reports whether k is a valid argument kind.
func (b Builtin) AcceptsKind(k Kind) bool {
	for _, a := range b.Accepts {
		if a == k {
			return true
		}
	}
	return false
}

// ResultKind computes the result kind for the given argument kinds. ok is
// false when the arguments have no join.
func (b Builtin) ResultKind(args []Kind) (Kind, bool) {
	if !b.JoinsArgs {
		return b.Result, true
	}
	if len(args) == 0 {
		return 0, false
	}
	kind := args[0]
	for _, k := range args[1:] {
		joined, ok := Join(kind, k)
		if !ok {
			return 0, false
		}
		kind = joined
	}
	return kind, true
}

var orderedKinds = []Kind{KindInteger, KindFloat, KindRational}

var builtins = map[string]Builtin{
	"float": {
		Name: "float", Arity: 1, Accepts: orderedKinds, Result: KindFloat,
		Apply: func(args []Value) (Value, error) { return ToFloat(args[0]) },
	},
	"rational": {
		Name: "rational", Arity: 1, Accepts: orderedKinds, Result: KindRational,
		Apply: func(args []Value) (Value, error) { return ToRational(args[0]) },
	},
	"abs": {
		Name: "abs", Arity: 1, Accepts: orderedKinds, JoinsArgs: true,
		Apply: builtinAbs,
	},
	"sign": {
		Name: "sign", Arity: 1, Accepts: orderedKinds, Result: KindInteger,
		Apply: builtinSign,
	},
	"max": {
		Name: "max", Arity: 2, Accepts: orderedKinds, JoinsArgs: true,
		Apply: func(args []Value) (Value, error) { return extremum(args, 1) },
	},
	"min": {
		Name: "min", Arity: 2, Accepts: orderedKinds, JoinsArgs: true,
		Apply: func(args []Value) (Value, error) { return extremum(args, -1) },
	},
	"clamp": {
		Name: "clamp", Arity: 3, Accepts: orderedKinds, JoinsArgs: true,
		Apply: builtinClamp,
	},
	"floor": {
		Name: "floor", Arity: 1, Accepts: orderedKinds, Result: KindInteger,
		Apply: func(args []Value) (Value, error) { return toIntegral(args[0], "floor") },
	},
	"ceil": {
		Name: "ceil", Arity: 1, Accepts: orderedKinds, Result: KindInteger,
		Apply: func(args []Value) (Value, error) { return toIntegral(args[0], "ceil") },
	},
	"round": {
		Name: "round", Arity: 1, Accepts: orderedKinds, Result: KindInteger,
		Apply: func(args []Value) (Value, error) { return toIntegral(args[0], "round") },
	},
}

// LookupBuiltin resolves a builtin by name.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// BuiltinNames lists the builtins in sorted order.
func BuiltinNames() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func builtinAbs(args []Value) (Value, error) {
	switch v := args[0].(type) {
	case IntegerValue:
		return IntegerValue{Val: new(big.Int).Abs(v.Val)}, nil
	case FloatValue:
		return FloatValue{Val: math.Abs(v.Val)}, nil
	case RationalValue:
		return RationalValue{Val: new(big.Rat).Abs(v.Val)}, nil
	}
	return nil, UnorderedError{Kind: args[0].Kind()}
}

// sign of NaN is 0.
func builtinSign(args []Value) (Value, error) {
	switch v := args[0].(type) {
	case IntegerValue:
		return Int64(int64(v.Val.Sign())), nil
	case RationalValue:
		return Int64(int64(v.Val.Sign())), nil
	case FloatValue:
		switch {
		case v.Val > 0:
			return Int64(1), nil
		case v.Val < 0:
			return Int64(-1), nil
		}
		return Int64(0), nil
	}
	return nil, UnorderedError{Kind: args[0].Kind()}
}

// extremum returns the greatest (want 1) or least (want -1) argument,
// coerced to the join of all of them. A NaN operand wins.
func extremum(args []Value, want int) (Value, error) {
	best := args[0]
	for _, v := range args[1:] {
		cmp, ok, err := Compare(v, best)
		if err != nil {
			return nil, err
		}
		if !ok {
			if f, isFloat := v.(FloatValue); isFloat && math.IsNaN(f.Val) {
				best = v
			}
			continue
		}
		if cmp == want {
			best = v
		}
	}
	kinds := make([]Kind, len(args))
	for i, v := range args {
		kinds[i] = v.Kind()
	}
	kind, ok := Builtin{JoinsArgs: true}.ResultKind(kinds)
	if !ok {
		return nil, MismatchError{Op: "comparison", Left: args[0].Kind(), Right: args[1].Kind()}
	}
	return Coerce(best, kind)
}

// builtinClamp is min(max(x, lo), hi).
func builtinClamp(args []Value) (Value, error) {
	lower, err := extremum([]Value{args[0], args[1]}, 1)
	if err != nil {
		return nil, err
	}
	return extremum([]Value{lower, args[2]}, -1)
}

// toIntegral rounds to an Integer. round goes half away from zero.
func toIntegral(v Value, mode string) (Value, error) {
	switch val := v.(type) {
	case IntegerValue:
		return val, nil
	case FloatValue:
		if math.IsInf(val.Val, 0) || math.IsNaN(val.Val) {
			return nil, ConversionError{From: KindFloat, To: KindInteger, Reason: "value is not finite"}
		}
		var f float64
		switch mode {
		case "floor":
			f = math.Floor(val.Val)
		case "ceil":
			f = math.Ceil(val.Val)
		default:
			f = math.Round(val.Val)
		}
		n, _ := new(big.Float).SetFloat64(f).Int(nil)
		return IntegerValue{Val: n}, nil
	case RationalValue:
		return IntegerValue{Val: roundRat(val.Val, mode)}, nil
	}
	return nil, ConversionError{From: v.Kind(), To: KindInteger}
}

func roundRat(r *big.Rat, mode string) *big.Int {
	// Rat denominators are positive, so Euclidean Div is floor division.
	floor := func(x *big.Rat) *big.Int {
		return new(big.Int).Div(x.Num(), x.Denom())
	}
	switch mode {
	case "floor":
		return floor(r)
	case "ceil":
		return new(big.Int).Neg(floor(new(big.Rat).Neg(r)))
	}
	half := big.NewRat(1, 2)
	magnitude := floor(new(big.Rat).Add(new(big.Rat).Abs(r), half))
	if r.Sign() < 0 {
		magnitude.Neg(magnitude)
	}
	return magnitude
}
