package typechecker

import "sort"

// Environment tracks the variables definitely bound at a program point and
// their current types. Assignment may change a variable's type.
type Environment struct {
	symbols map[string]Type
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{symbols: make(map[string]Type)}
}

// Define binds a name to a type.
func (e *Environment) Define(name string, typ Type) {
	e.symbols[name] = typ
}

// Lookup finds a binding.
func (e *Environment) Lookup(name string) (Type, bool) {
	typ, ok := e.symbols[name]
	return typ, ok
}

func (e *Environment) remove(name string) {
	delete(e.symbols, name)
}

// Clone copies the environment.
func (e *Environment) Clone() *Environment {
	out := NewEnvironment()
	for k, v := range e.symbols {
		out.symbols[k] = v
	}
	return out
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	out := make([]string, 0, len(e.symbols))
	for k := range e.symbols {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (e *Environment) equal(other *Environment) bool {
	if len(e.symbols) != len(other.symbols) {
		return false
	}
	for k, v := range e.symbols {
		ov, ok := other.symbols[k]
		if !ok || !sameType(v, ov) {
			return false
		}
	}
	return true
}

// merge keeps the names bound in both environments, joining their types.
// Names whose types have no join are returned as conflicts and bound to
// UnknownType.
func merge(a, b *Environment) (*Environment, []string) {
	out := NewEnvironment()
	var conflicts []string
	for _, name := range a.Names() {
		bt, ok := b.symbols[name]
		if !ok {
			continue
		}
		joined, ok := joinTypes(a.symbols[name], bt)
		if !ok {
			conflicts = append(conflicts, name)
			joined = UnknownType{}
		}
		out.symbols[name] = joined
	}
	return out, conflicts
}
