// Package interpreter executes checked JtV programs.
//
// Data expressions are evaluated by EvalData, which never writes to the state
// it reads. Control statements are executed by ExecControl against a state
// owned by one run. Loops and calls are bounded by explicit step and depth
// counters from Config, so runaway programs stop with a RuntimeError rather
// than exhausting the host.
package interpreter
