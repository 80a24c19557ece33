package reversible

import (
	"fmt"
	"strings"

	"jtv/interpreter-go/pkg/ast"
	"jtv/interpreter-go/pkg/runtime"
)

// Entry is one recorded mutation: the operator applied, its target, and the
// operand value captured at the time.
type Entry struct {
	Op       ast.ReversibleOpKind
	Variable string
	Value    runtime.Value
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s", e.Variable, e.Op, e.Value)
}

// Inverse is the entry that undoes e.
func (e Entry) Inverse() Entry {
	return Entry{Op: e.Op.Inverse(), Variable: e.Variable, Value: e.Value}
}

// Trace is the ordered record of a forward execution.
type Trace struct {
	entries []Entry
	// Replayed is set once Backward has been applied.
	Replayed bool
}

func (t *Trace) record(e Entry) {
	t.entries = append(t.entries, e)
}

// Entries returns a copy of the recorded entries in execution order.
func (t *Trace) Entries() []Entry {
	if t == nil {
		return nil
	}
	return append([]Entry(nil), t.entries...)
}

func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Inverse returns the entries Backward applies, in the order it applies
// them.
func (t *Trace) Inverse() []Entry {
	out := make([]Entry, 0, t.Len())
	for i := t.Len() - 1; i >= 0; i-- {
		out = append(out, t.entries[i].Inverse())
	}
	return out
}

// Touched returns the distinct variables the trace mutates, in first-touch
// order.
func (t *Trace) Touched() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, e := range t.Entries() {
		if _, ok := seen[e.Variable]; ok {
			continue
		}
		seen[e.Variable] = struct{}{}
		out = append(out, e.Variable)
	}
	return out
}

func (t *Trace) String() string {
	var b strings.Builder
	for i, e := range t.Entries() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.String())
	}
	return b.String()
}
