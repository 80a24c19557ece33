// Package typechecker infers numeric types over a JtV program and reports
// type errors before anything executes.
//
// Typing is syntax-directed and flow-sensitive: an assignment may change a
// variable's type, branches merge by joining types in the coercion lattice,
// and loops are iterated until the environment stops changing, which takes
// at most a few passes because the lattice is shallow. A variable read is
// only accepted when the variable is bound on every path reaching it.
package typechecker
