package runtime

import (
	"fmt"
	"sort"
)

// State maps variable names to values for one execution. It is owned by that
// execution and only Control statements write to it.
type State struct {
	values map[string]Value
}

// NewState returns an empty state.
func NewState() *State {
	return &State{values: make(map[string]Value)}
}

// StateFrom builds a state from an initial binding set.
func StateFrom(bindings map[string]Value) *State {
	s := NewState()
	for k, v := range bindings {
		s.values[k] = v
	}
	return s
}

// Get retrieves a binding.
func (s *State) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Lookup is Get with an error for a missing name.
func (s *State) Lookup(name string) (Value, error) {
	if v, ok := s.values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("runtime: undefined variable '%s'", name)
}

// Set inserts or replaces a binding.
func (s *State) Set(name string, value Value) {
	s.values[name] = value
}

// Delete removes a binding if present.
func (s *State) Delete(name string) {
	delete(s.values, name)
}

func (s *State) Len() int { return len(s.values) }

// Names returns the bound names in sorted order.
func (s *State) Names() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current bindings.
func (s *State) Snapshot() map[string]Value {
	out := make(map[string]Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Clone copies the state. Values are immutable, so sharing them is safe.
func (s *State) Clone() *State {
	return StateFrom(s.values)
}

// Equal reports whether both states bind the same names to identical values.
func (s *State) Equal(other *State) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k, v := range s.values {
		ov, ok := other.values[k]
		if !ok || !Identical(v, ov) {
			return false
		}
	}
	return true
}
