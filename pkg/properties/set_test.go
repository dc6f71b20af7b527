// SPDX-License-Identifier: MPL-2.0

package properties

import (
	"errors"
	"slices"
	"testing"

	"github.com/jlaunch/jlaunch/pkg/ports"
	"github.com/jlaunch/jlaunch/pkg/types"
)

func mustGet(t *testing.T, s *Set, name string) Entry {
	t.Helper()
	e, ok := s.Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) = missing, want present", name)
	}
	return e
}

func TestSet_ExplicitAlwaysWins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		apply func(s *Set)
	}{
		{
			name: "default then explicit",
			apply: func(s *Set) {
				_, _ = s.SetDefault("k", String("v1"))
				_ = s.Set("k", String("v2"))
			},
		},
		{
			name: "explicit then default",
			apply: func(s *Set) {
				_ = s.Set("k", String("v2"))
				_, _ = s.SetDefault("k", String("v1"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New()
			tt.apply(s)
			e := mustGet(t, s, "k")
			if got, _ := e.Value.AsString(); got != "v2" {
				t.Errorf("value = %q, want %q", got, "v2")
			}
			if e.Origin != OriginExplicit {
				t.Errorf("origin = %v, want explicit", e.Origin)
			}
		})
	}
}

func TestSet_SetDefaultDoesNotReplaceDefault(t *testing.T) {
	t.Parallel()

	s := New()
	applied, err := s.SetDefault("k", Int(1))
	if err != nil || !applied {
		t.Fatalf("first SetDefault() = %v, %v; want true, nil", applied, err)
	}
	applied, err = s.SetDefault("k", Int(2))
	if err != nil || applied {
		t.Fatalf("second SetDefault() = %v, %v; want false, nil", applied, err)
	}
	if got, _ := mustGet(t, s, "k").Value.AsInt(); got != 1 {
		t.Errorf("value = %d, want 1", got)
	}
	if s.IsExplicit("k") {
		t.Error("IsExplicit() = true for a default entry")
	}
}

func TestSet_ExplicitOverwritesExplicit(t *testing.T) {
	t.Parallel()

	s := New()
	_ = s.Set("k", Bool(true))
	_ = s.Set("k", Bool(false))
	if got, _ := mustGet(t, s, "k").Value.AsBool(); got {
		t.Error("value = true, want false")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSet_InvalidArguments(t *testing.T) {
	t.Parallel()

	s := New()
	if err := s.Set("", String("v")); !errors.Is(err, types.ErrInvalidPropertyName) {
		t.Errorf("Set(\"\") error = %v, want ErrInvalidPropertyName", err)
	}
	if _, err := s.SetDefault("  ", String("v")); !errors.Is(err, types.ErrInvalidPropertyName) {
		t.Errorf("SetDefault(\"  \") error = %v, want ErrInvalidPropertyName", err)
	}
	if err := s.Set("k", Value{}); !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("Set(zero Value) error = %v, want ErrUnsupportedValue", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after rejected writes, want 0", s.Len())
	}
}

func TestSet_Remove(t *testing.T) {
	t.Parallel()

	s := New()
	_ = s.Set("a", String("1"))
	_, _ = s.SetDefault("b", String("2"))
	_ = s.Set("c", String("3"))

	s.Remove("a")
	s.Remove("b")
	s.Remove("missing")

	if got := s.Names(); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Names() = %q, want [c]", got)
	}

	// A removed name goes to the back when written again.
	_ = s.Set("a", String("again"))
	if got := s.Names(); !slices.Equal(got, []string{"c", "a"}) {
		t.Errorf("Names() = %q, want [c a]", got)
	}
}

func TestSet_MergePreservesOrigin(t *testing.T) {
	t.Parallel()

	src := New()
	_ = src.Set("explicit", String("from-src"))
	_, _ = src.SetDefault("default", String("from-src"))
	_, _ = src.SetDefault("taken", String("from-src"))
	_ = src.Set("override", String("from-src"))

	dst := New()
	_ = dst.Set("taken", String("dst"))
	_, _ = dst.SetDefault("override", String("dst"))

	dst.Merge(src)

	tests := []struct {
		name       string
		wantValue  string
		wantOrigin Origin
	}{
		{"explicit", "from-src", OriginExplicit},
		{"default", "from-src", OriginDefault},
		{"taken", "dst", OriginExplicit},
		{"override", "from-src", OriginExplicit},
	}
	for _, tt := range tests {
		e := mustGet(t, dst, tt.name)
		if got, _ := e.Value.AsString(); got != tt.wantValue {
			t.Errorf("%s value = %q, want %q", tt.name, got, tt.wantValue)
		}
		if e.Origin != tt.wantOrigin {
			t.Errorf("%s origin = %v, want %v", tt.name, e.Origin, tt.wantOrigin)
		}
	}

	// A default merged in is still overridable afterwards.
	_ = dst.Set("default", String("later"))
	if got, _ := mustGet(t, dst, "default").Value.AsString(); got != "later" {
		t.Errorf("default after Set = %q, want %q", got, "later")
	}

	dst.Merge(nil)
	dst.Merge(dst)
	if dst.Len() != 4 {
		t.Errorf("Len() = %d after no-op merges, want 4", dst.Len())
	}
}

func TestSet_ZeroValueUsable(t *testing.T) {
	t.Parallel()

	var s Set
	if s.Has("k") {
		t.Error("zero Set should be empty")
	}
	s.Remove("k")
	if err := s.Set("k", String("v")); err != nil {
		t.Fatalf("Set() on zero Set: %v", err)
	}
	if !s.Has("k") {
		t.Error("Has(\"k\") = false after Set")
	}
}

func TestSet_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	s := New()
	_ = s.Set("a", String("1"))
	c := s.Clone()
	_ = c.Set("b", String("2"))
	c.Remove("a")

	if !s.Has("a") || s.Has("b") {
		t.Errorf("original mutated through clone: names = %q", s.Names())
	}
}

func TestSet_ResolveResolvesPortsOnce(t *testing.T) {
	t.Parallel()

	counter := &countingSource{src: ports.Fixed(9000)}

	s := New()
	_ = s.Set("name", String("demo"))
	_ = s.Set("flag", Bool(false))
	_ = s.Set("count", Int(-3))
	_ = s.Set("port", Port(counter))
	_ = s.Set("empty", String(""))

	got, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if counter.calls != 1 {
		t.Errorf("port source called %d times, want 1", counter.calls)
	}

	want := []string{"name=demo", "flag=false", "count=-3", "port=9000", "empty="}
	var flat []string
	for _, r := range got {
		flat = append(flat, r.Name+"="+r.Value)
	}
	if !slices.Equal(flat, want) {
		t.Errorf("Resolve() = %q, want %q", flat, want)
	}
}

func TestSet_ResolvePropagatesPortError(t *testing.T) {
	t.Parallel()

	s := New()
	_ = s.Set("port", Port(failingSource{}))
	if _, err := s.Resolve(); !errors.Is(err, ports.ErrNoAvailablePort) {
		t.Errorf("Resolve() error = %v, want ErrNoAvailablePort", err)
	}
}

type countingSource struct {
	src   ports.Source
	calls int
}

func (c *countingSource) Next() (types.ListenPort, error) {
	c.calls++
	return c.src.Next()
}

type failingSource struct{}

func (failingSource) Next() (types.ListenPort, error) { return 0, ports.ErrNoAvailablePort }

func TestSet_RejectsNilPortSource(t *testing.T) {
	t.Parallel()

	s := New()
	if err := s.Set("jmx.port", Port(nil)); !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("Set(Port(nil)) error = %v, want ErrUnsupportedValue", err)
	}
	if _, err := s.SetDefault("jmx.port", Port((*ports.AvailablePortIterator)(nil))); !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("SetDefault(typed nil port) error = %v, want ErrUnsupportedValue", err)
	}
	if s.Has("jmx.port") {
		t.Error("nil port source was stored")
	}
}
