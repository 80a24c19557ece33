package typechecker

import (
	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// Type represents a static type.
type Type interface {
	Name() string
}

// NumericType is one of the five numeric kinds.
type NumericType struct {
	Kind runtime.Kind
}

func (t NumericType) Name() string { return t.Kind.String() }

// UnknownType is the type of unannotated parameters and of anything derived
// from them. It is compatible with every other type.
type UnknownType struct{}

func (UnknownType) Name() string { return "Unknown" }

// BoolType is the type of comparisons and logical connectives. It never
// flows into a variable.
type BoolType struct{}

func (BoolType) Name() string { return "Bool" }

var (
	intType      Type = NumericType{Kind: runtime.KindInteger}
	floatType    Type = NumericType{Kind: runtime.KindFloat}
	rationalType Type = NumericType{Kind: runtime.KindRational}
	complexType  Type = NumericType{Kind: runtime.KindComplex}
	symbolicType Type = NumericType{Kind: runtime.KindSymbolic}
)

// FromAnnotation maps a signature annotation to a type. Hex and Binary are
// spellings of Int.
func FromAnnotation(a ast.TypeAnnotation) (Type, bool) {
	switch a {
	case ast.TypeUnannotated:
		return UnknownType{}, true
	case ast.TypeInt, ast.TypeHex, ast.TypeBinary:
		return intType, true
	case ast.TypeFloat:
		return floatType, true
	case ast.TypeRational:
		return rationalType, true
	case ast.TypeComplex:
		return complexType, true
	case ast.TypeSymbolic:
		return symbolicType, true
	default:
		return UnknownType{}, false
	}
}

func isUnknown(t Type) bool {
	_, ok := t.(UnknownType)
	return ok
}

func numericKind(t Type) (runtime.Kind, bool) {
	n, ok := t.(NumericType)
	return n.Kind, ok
}

// joinTypes returns the least upper bound of two value types.
func joinTypes(a, b Type) (Type, bool) {
	if isUnknown(a) || isUnknown(b) {
		return UnknownType{}, true
	}
	ak, aok := numericKind(a)
	bk, bok := numericKind(b)
	if !aok || !bok {
		return nil, false
	}
	k, ok := runtime.Join(ak, bk)
	if !ok {
		return nil, false
	}
	return NumericType{Kind: k}, true
}

// assignable reports whether a value of type from may be passed where to is
// expected.
func assignable(from, to Type) bool {
	if isUnknown(from) || isUnknown(to) {
		return true
	}
	fk, fok := numericKind(from)
	tk, tok := numericKind(to)
	return fok && tok && runtime.CoercesTo(fk, tk)
}

func sameType(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Name() == b.Name()
}

// FunctionSignature is the checked view of a declaration.
type FunctionSignature struct {
	Name   string
	Params []Type
	Return Type
	Decl   *ast.FunctionDeclaration
}

func typeName(t Type) string {
	if t == nil {
		return "nothing"
	}
	return t.Name()
}
