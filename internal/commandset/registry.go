package commandset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSet is returned when a set name is not registered.
var ErrUnknownSet = errors.New("unknown command set")

// Registry holds command sets in registration order.
type Registry struct {
	sets  []CommandSet
	index map[string]int
}

// Builtin returns a registry holding the demo and label sets.
func Builtin() *Registry {
	r := &Registry{}
	r.Register(Demo())
	r.Register(Labeled())
	return r
}

// Register adds set, replacing any set with the same name in place.
// It reports whether a set was replaced.
func (r *Registry) Register(set CommandSet) bool {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	name := set.Name()
	if i, ok := r.index[name]; ok {
		r.sets[i] = set
		return true
	}
	r.index[name] = len(r.sets)
	r.sets = append(r.sets, set)
	return false
}

// Lookup returns the set registered under name.
func (r *Registry) Lookup(name string) (CommandSet, error) {
	i, ok := r.index[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownSet, name, strings.Join(r.Names(), ", "))
	}
	return r.sets[i], nil
}

// Names returns registered set names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sets))
	for _, set := range r.sets {
		names = append(names, set.Name())
	}
	return names
}

// Sets returns registered sets in registration order.
func (r *Registry) Sets() []CommandSet {
	return append([]CommandSet(nil), r.sets...)
}
