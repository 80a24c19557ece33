package runtime

import (
	"math"
	"strconv"
	"strings"
)

func (v IntegerValue) String() string {
	if v.Val == nil {
		return "0"
	}
	return v.Val.String()
}

func (v FloatValue) String() string { return formatFloat(v.Val) }

func (v RationalValue) String() string {
	if v.Val == nil {
		return "0"
	}
	return v.Val.RatString()
}

func (v ComplexValue) String() string {
	re, im := real(v.Val), imag(v.Val)
	if im < 0 || (im == 0 && math.Signbit(im)) {
		return formatFloat(re) + "-" + formatFloat(-im) + "i"
	}
	return formatFloat(re) + "+" + formatFloat(im) + "i"
}

func (v SymbolicValue) String() string {
	var b strings.Builder
	writeSymbol(&b, &v)
	return b.String()
}

func writeSymbol(b *strings.Builder, v *SymbolicValue) {
	switch v.Op {
	case SymbolSum:
		writeSymbol(b, v.Left)
		b.WriteString(" + ")
		writeSymbol(b, v.Right)
	case SymbolNegation:
		b.WriteString("-(")
		writeSymbol(b, v.Left)
		b.WriteString(")")
	default:
		b.WriteString(v.Name)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
