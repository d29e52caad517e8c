package egstring

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func FuzzInsert(f *testing.F) {
	f.Add("hello", 5, ", world")
	f.Add("", 0, "x")
	f.Add("abc", -1, "")
	f.Add("abc", 100, "def")
	f.Fuzz(func(t *testing.T, base string, off int, ins string) {
		s := From(base)
		keep := s.Clone()
		s.Insert(off, ins)

		at := off
		if at < 0 || at > len(base) {
			at = len(base)
		}
		want := base[:at] + ins + base[at:]
		if got := s.String(); got != want {
			t.Fatalf("insert %q at %d into %q: got %q, want %q", ins, off, base, got, want)
		}
		if keep.String() != base {
			t.Fatalf("shared copy changed to %q", keep.String())
		}
		if c := s.CStr(); c[len(c)-1] != 0 {
			t.Fatal("missing terminator")
		}
	})
}

func FuzzRemove(f *testing.F) {
	f.Add("hello world", 5, 6)
	f.Add("", 0, 1)
	f.Fuzz(func(t *testing.T, base string, off, n int) {
		if off < 0 || n < 0 {
			return
		}
		s := From(base)
		s.Remove(off, n)
		want := base
		if off < len(base) {
			want = base[:off] + base[off+min(n, len(base)-off):]
		}
		if s.String() != want {
			t.Fatalf("remove %d at %d from %q: got %q, want %q", n, off, base, s.String(), want)
		}
	})
}

func TestStringProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("round trip keeps bytes", prop.ForAll(
		func(v string) bool {
			s := From(v)
			c := s.CStr()
			return s.String() == v && s.Len() == len(v) && c[len(v)] == 0
		},
		gen.AnyString(),
	))

	properties.Property("writing a clone leaves the source alone", prop.ForAll(
		func(base, extra string) bool {
			a := From(base)
			b := a.Clone()
			b.Append(extra)
			b.Prepend(extra)
			return a.String() == base && b.String() == extra+base+extra &&
				(extra == "" || a.r != b.r)
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
