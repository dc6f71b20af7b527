// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"slices"
	"strings"
	"testing"
)

func join(entries ...string) string { return strings.Join(entries, Separator) }

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "app.jar", []string{"app.jar"}},
		{"ordered", join("a", "b", "c"), []string{"a", "b", "c"}},
		{"drops empty segments", join("a", "", "b", ""), []string{"a", "b"}},
		{"trims whitespace", join(" a ", "\tb"), []string{"a", "b"}},
		{"strips quotes", join(`"lib/my dir"`, "'x.jar'"), []string{"lib/my dir", "x.jar"}},
		{"keeps duplicates", join("a", "a"), []string{"a", "a"}},
		{"keeps wildcard", join("lib/*", "classes"), []string{"lib/*", "classes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := New(tt.in).Entries()
			if !slices.Equal(got, tt.want) {
				t.Errorf("New(%q).Entries() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassPath_String_RoundTrips(t *testing.T) {
	t.Parallel()

	in := join("a.jar", "b.jar", "classes")
	if got := New(in).String(); got != in {
		t.Errorf("String() = %q, want %q", got, in)
	}
	if got := (ClassPath{}).String(); got != "" {
		t.Errorf("zero ClassPath String() = %q, want empty", got)
	}
}

func TestClassPath_ReplacementDoesNotAccumulate(t *testing.T) {
	t.Parallel()

	cp := New(join("a", "b", "c"))
	cp = New(join("d", "e"))
	if !cp.Equal(New(join("d", "e"))) {
		t.Errorf("replaced class path = %q, want %q", cp.String(), join("d", "e"))
	}
}

func TestClassPath_Join(t *testing.T) {
	t.Parallel()

	base := Of("a", "b")
	got := base.Join(Of("b", "c"), Of("d"))
	want := []string{"a", "b", "c", "d"}
	if !slices.Equal(got.Entries(), want) {
		t.Errorf("Join() = %q, want %q", got.Entries(), want)
	}
	if base.Len() != 2 {
		t.Errorf("Join() mutated receiver: Len() = %d, want 2", base.Len())
	}
}

func TestClassPath_EntriesIsCopy(t *testing.T) {
	t.Parallel()

	cp := Of("a", "b")
	e := cp.Entries()
	e[0] = "mutated"
	if cp.Entries()[0] != "a" {
		t.Error("Entries() should return a copy")
	}
}

func TestClassPath_Contains(t *testing.T) {
	t.Parallel()

	cp := Of("lib/*", "app.jar")
	if !cp.Contains(" app.jar ") {
		t.Error("Contains(\" app.jar \") = false, want true")
	}
	if cp.Contains("other.jar") {
		t.Error("Contains(\"other.jar\") = true, want false")
	}
	if !(ClassPath{}).IsEmpty() {
		t.Error("zero ClassPath should be empty")
	}
}

func TestCurrent(t *testing.T) {
	t.Setenv(EnvVar, join("x.jar", "y.jar"))

	got := Current().Entries()
	want := []string{"x.jar", "y.jar"}
	if !slices.Equal(got, want) {
		t.Errorf("Current() = %q, want %q", got, want)
	}
}
