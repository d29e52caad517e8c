package egbase

import "testing"

func BenchmarkPushBackInt(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a := New[int]()
		for j := 0; j < 1024; j++ {
			a.PushBack(j)
		}
	}
}

func BenchmarkPushBackSliceBuiltin(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var s []int
		for j := 0; j < 1024; j++ {
			s = append(s, j)
		}
		_ = s
	}
}

func BenchmarkInlineWithinCapacity(b *testing.B) {
	a := NewInline[int, [16]int]()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.Clear()
		for j := 0; j < 16; j++ {
			a.PushBack(j)
		}
	}
}

func BenchmarkRelocateTrivial(b *testing.B) {
	src := make([]point, 4096)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a := FromSlice(src)
		a.ReserveBack(a.Cap())
	}
}

func BenchmarkRelocateNonTrivial(b *testing.B) {
	l := &ledger{}
	src := make([]tracked, 4096)
	for i := range src {
		src[i] = newTracked(l, i)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a := New[tracked]()
		a.PushBackSlice(src)
		a.ReserveBack(a.Cap())
	}
}
