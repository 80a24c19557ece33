package runtime

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrZeroDenominator = errors.New("runtime: rational denominator is zero")

// OverflowError reports an integer result outside the configured width.
type OverflowError struct {
	Bits   int
	Result *big.Int
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("runtime: integer overflow: %s does not fit in %d bits", e.Result.String(), e.Bits)
}

// MismatchError reports two kinds with no common type in the lattice.
type MismatchError struct {
	Op    string
	Left  Kind
	Right Kind
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("runtime: %s has no common type for %s and %s", e.Op, e.Left, e.Right)
}

// UnorderedError reports an ordering comparison on an unordered kind.
type UnorderedError struct {
	Kind Kind
}

func (e UnorderedError) Error() string {
	return fmt.Sprintf("runtime: %s values are unordered", e.Kind)
}

// ConversionError reports an explicit conversion that cannot be performed.
type ConversionError struct {
	From   Kind
	To     Kind
	Reason string
}

func (e ConversionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("runtime: cannot convert %s to %s", e.From, e.To)
	}
	return fmt.Sprintf("runtime: cannot convert %s to %s: %s", e.From, e.To, e.Reason)
}
