package egbase

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestArrayProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Positive steps push that many elements, negative steps pop.
	properties.Property("length equals pushes minus pops", prop.ForAll(
		func(steps []int) bool {
			a := New[int]()
			want := 0
			for _, s := range steps {
				switch {
				case s > 0:
					if s%2 == 0 {
						a.PushBackN(s)
					} else {
						for i := 0; i < s; i++ {
							a.PushBack(i)
						}
					}
					want += s
				case s < 0:
					n := min(-s, a.Len())
					if n == 1 {
						a.PopBack()
					} else {
						a.PopBackN(n)
					}
					want -= n
				}
				if a.Len() != want || a.Len() > a.Cap() {
					return false
				}
			}
			a.Clear()
			return a.Len() == 0
		},
		gen.SliceOf(gen.IntRange(-6, 6)),
	))

	properties.Property("remove shuffle drops exactly one element", prop.ForAll(
		func(vals []int, idx int) bool {
			if len(vals) == 0 {
				return true
			}
			i := idx % len(vals)
			a := FromSlice(vals)
			a.RemoveShuffle(i)

			want := slices.Clone(vals)
			want = slices.Delete(want, i, i+1)
			got := slices.Clone(a.Data())
			slices.Sort(want)
			slices.Sort(got)
			return a.Len() == len(vals)-1 && slices.Equal(want, got)
		},
		gen.SliceOf(gen.IntRange(-1000, 1000)),
		gen.IntRange(0, 1<<16),
	))

	properties.Property("inline storage holds up to N without spilling", prop.ForAll(
		func(n int) bool {
			a := NewInline[int, [8]int]()
			for i := 0; i < n; i++ {
				a.PushBack(i)
			}
			if n <= 8 {
				return a.IsInline() && a.Cap() == 8
			}
			return !a.IsInline() && a.Cap() >= n
		},
		gen.IntRange(0, 40),
	))

	properties.Property("moving out of inline storage relocates every element", prop.ForAll(
		func(n int) bool {
			l := &ledger{}
			a := NewInline[tracked, [8]tracked]()
			for i := 0; i < n; i++ {
				a.PushBack(newTracked(l, i))
			}
			l.moves = 0
			b := a.Take()
			return l.moves == n && l.clones == 0 && b.Len() == n && len(l.destroyed) == 0
		},
		gen.IntRange(0, 8),
	))

	properties.Property("moving an owning array relocates nothing", prop.ForAll(
		func(n int) bool {
			l := &ledger{}
			a := New[tracked]()
			for i := 0; i < n; i++ {
				a.PushBack(newTracked(l, i))
			}
			l.moves = 0
			b := a.Take()
			return l.moves == 0 && b.Len() == n
		},
		gen.IntRange(0, 64),
	))

	properties.Property("clone equals source", prop.ForAll(
		func(vals []int) bool {
			a := FromSlice(vals)
			return Equal(a, a.Clone())
		},
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}
