// SPDX-License-Identifier: MPL-2.0

package properties

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jlaunch/jlaunch/pkg/types"
)

const (
	// OriginDefault marks a value written with SetDefault. It is kept only
	// until an explicit value arrives for the same name.
	OriginDefault Origin = iota + 1
	// OriginExplicit marks a value written with Set. Later defaults never
	// replace it.
	OriginExplicit
)

type (
	// Origin records which write mode produced an entry.
	Origin uint8

	// Entry is a property value tagged with its origin.
	Entry struct {
		Name   string
		Value  Value
		Origin Origin
	}

	// Resolved is a realized property: name and rendered value.
	Resolved struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	// Set maps property names to tagged values and keeps insertion order.
	// Removing a name and writing it again moves it to the end.
	//
	// The zero value is an empty set ready to use. A Set is not safe for
	// concurrent mutation.
	Set struct {
		entries map[string]Entry
		order   []string
	}
)

// New creates an empty Set.
func New() *Set {
	return &Set{entries: make(map[string]Entry)}
}

// Set writes value for name unconditionally and marks it explicit.
func (s *Set) Set(name string, value Value) error {
	if err := checkArgs(name, value); err != nil {
		return err
	}
	s.put(Entry{Name: name, Value: value, Origin: OriginExplicit})
	return nil
}

// SetDefault writes value for name only if name has no value of any origin.
// It reports whether the value was applied.
func (s *Set) SetDefault(name string, value Value) (bool, error) {
	if err := checkArgs(name, value); err != nil {
		return false, err
	}
	if _, exists := s.entries[name]; exists {
		return false, nil
	}
	s.put(Entry{Name: name, Value: value, Origin: OriginDefault})
	return true, nil
}

// Remove deletes name regardless of origin. Removing an absent name is a no-op.
func (s *Set) Remove(name string) {
	if _, exists := s.entries[name]; !exists {
		return
	}
	delete(s.entries, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
}

// Merge copies the entries of other into s in other's order. Explicit
// entries overwrite; default entries apply only where s has no value. The
// origin of every copied entry is preserved. A nil other is a no-op.
func (s *Set) Merge(other *Set) {
	if other == nil || other == s {
		return
	}
	for _, name := range other.order {
		e := other.entries[name]
		if e.Origin == OriginExplicit {
			s.put(e)
			continue
		}
		if _, exists := s.entries[name]; !exists {
			s.put(e)
		}
	}
}

// Get returns the value for name.
func (s *Set) Get(name string) (Value, bool) {
	e, ok := s.entries[name]
	return e.Value, ok
}

// Lookup returns the tagged entry for name.
func (s *Set) Lookup(name string) (Entry, bool) {
	e, ok := s.entries[name]
	return e, ok
}

// Has reports whether name has a value of any origin.
func (s *Set) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// IsExplicit reports whether name holds an explicitly set value.
func (s *Set) IsExplicit(name string) bool {
	e, ok := s.entries[name]
	return ok && e.Origin == OriginExplicit
}

// Len returns the number of entries.
func (s *Set) Len() int { return len(s.order) }

// Names returns the property names in insertion order.
func (s *Set) Names() []string { return slices.Clone(s.order) }

// All iterates over entries in insertion order.
func (s *Set) All() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		for _, name := range s.order {
			if !yield(name, s.entries[name]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of s. Port sources are shared.
func (s *Set) Clone() *Set {
	out := New()
	for name, e := range s.All() {
		out.entries[name] = e
	}
	out.order = slices.Clone(s.order)
	return out
}

// Resolve renders every entry in insertion order. Each port-backed value is
// resolved exactly once per call.
func (s *Set) Resolve() ([]Resolved, error) {
	out := make([]Resolved, 0, len(s.order))
	for name, e := range s.All() {
		v, err := e.Value.Resolve()
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		out = append(out, Resolved{Name: name, Value: v})
	}
	return out, nil
}

// String returns the name of the origin.
func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

func (s *Set) put(e Entry) {
	if s.entries == nil {
		s.entries = make(map[string]Entry)
	}
	if _, exists := s.entries[e.Name]; !exists {
		s.order = append(s.order, e.Name)
	}
	s.entries[e.Name] = e
}

func checkArgs(name string, value Value) error {
	if err := types.PropertyName(name).Validate(); err != nil {
		return err
	}
	if !value.IsValid() {
		return &UnsupportedValueError{Type: "invalid properties.Value"}
	}
	return nil
}
