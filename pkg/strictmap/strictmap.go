// Package strictmap provides a map wrapper whose lookups fail loudly.
//
// A missing key is a programming or data-integrity error in this codebase (seat
// indexes, view metadata), so Get returns an error instead of a zero value that
// would silently propagate.
package strictmap

import (
	"fmt"

	dErrors "boxoffice/pkg/domain-errors"
)

// Map is an insertion-ordered map with a strict Get.
type Map[K comparable, V any] struct {
	order  []K
	values map[K]V
}

// New creates an empty strict map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Set stores a value, preserving first-insertion order for iteration.
func (m *Map[K, V]) Set(key K, value V) *Map[K, V] {
	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value for key; a missing key is an invalid-state error.
func (m *Map[K, V]) Get(key K) (V, error) {
	v, ok := m.values[key]
	if !ok {
		var zero V
		return zero, dErrors.Newf(dErrors.CodeInvalidState, "strictmap: key %v does not exist", key)
	}
	return v, nil
}

// MustGet returns the value for key and panics when absent. Reserve for code
// paths where the key was just inserted.
func (m *Map[K, V]) MustGet(key K) V {
	v, err := m.Get(key)
	if err != nil {
		panic(fmt.Sprintf("strictmap: MustGet(%v): %v", key, err))
	}
	return v
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.values)
}

// Entry is a key/value pair returned by ToArray.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// ToArray returns the entries in insertion order.
func (m *Map[K, V]) ToArray() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, len(m.order))
	for _, k := range m.order {
		entries = append(entries, Entry[K, V]{Key: k, Value: m.values[k]})
	}
	return entries
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.order))
	copy(keys, m.order)
	return keys
}
