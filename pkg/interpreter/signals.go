package interpreter

import "jtv/interpreter-go/pkg/runtime"

// returnSignal unwinds a function body to its call site. value is nil for a
// bare return.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string { return "return" }
