// Package depmap provides an order-preserving inverse dependency map along
// with decoders for the JSON and YAML documents an evaluator emits.
package depmap

import (
	"sort"
)

// Map is an inverse dependency map that remembers the order in which keys
// were first added. The zero value is not usable; construct it with New.
type Map struct {
	keys []string
	deps map[string][]string
}

// New returns an empty map.
func New() *Map {
	return &Map{deps: make(map[string][]string)}
}

// FromMap builds a Map from a plain Go map. Since Go maps carry no order,
// keys are inserted in lexical order.
func FromMap(src map[string][]string) *Map {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := New()
	for _, k := range keys {
		m.Add(k, src[k]...)
	}
	return m
}

// Add appends dependents to key, registering key if it is new. Adding a key
// with no dependents still records the key.
func (m *Map) Add(key string, dependents ...string) {
	existing, ok := m.deps[key]
	if !ok {
		m.keys = append(m.keys, key)
		existing = make([]string, 0, len(dependents))
	}
	m.deps[key] = append(existing, dependents...)
}

// Dependents returns the dependents recorded for id. The returned slice is
// owned by the map and must not be modified.
func (m *Map) Dependents(id string) ([]string, bool) {
	deps, ok := m.deps[id]
	return deps, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	return append([]string{}, m.keys...)
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Each calls fn for every key in insertion order.
func (m *Map) Each(fn func(key string, dependents []string)) {
	for _, k := range m.keys {
		fn(k, m.deps[k])
	}
}

// Merge appends every entry of other to m, in other's order.
func (m *Map) Merge(other *Map) {
	if other == nil {
		return
	}
	other.Each(func(key string, dependents []string) {
		m.Add(key, dependents...)
	})
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	c := New()
	c.Merge(m)
	return c
}

// ToMap returns the entries as a plain Go map, losing key order.
func (m *Map) ToMap() map[string][]string {
	out := make(map[string][]string, len(m.keys))
	m.Each(func(key string, dependents []string) {
		out[key] = append([]string{}, dependents...)
	})
	return out
}
