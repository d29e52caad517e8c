package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rawbytedev/egbase"
	"github.com/rawbytedev/egbase/internal/config"
	"github.com/rawbytedev/egbase/pkg/egstring"
	"github.com/rawbytedev/egbase/pkg/snapshot"
)

// inlineSlots is the inline capacity of the arrays the driver exercises.
const inlineSlots = 64

// Stats summarizes one run.
type Stats struct {
	Rounds        int
	Pushes        int
	Pops          int
	Removes       int
	Strings       int
	CloneWrites   int
	FinalLen      int
	FinalCap      int
	InlineSpilled bool
	SnapshotBytes int
	Elapsed       time.Duration
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("rounds", s.Rounds),
		slog.Int("pushes", s.Pushes),
		slog.Int("pops", s.Pops),
		slog.Int("removes", s.Removes),
		slog.Int("strings", s.Strings),
		slog.Int("clone_writes", s.CloneWrites),
		slog.Int("final_len", s.FinalLen),
		slog.Int("final_cap", s.FinalCap),
		slog.Bool("inline_spilled", s.InlineSpilled),
		slog.Int("snapshot_bytes", s.SnapshotBytes),
		slog.Duration("elapsed", s.Elapsed),
	)
}

type runner struct {
	w     *config.Workload
	rng   *rand.Rand
	stats Stats
}

// run executes the workload and returns its statistics. It stops between
// rounds when ctx is cancelled.
func run(ctx context.Context, w *config.Workload, log *slog.Logger) (Stats, error) {
	r := &runner{
		w:   w,
		rng: rand.New(rand.NewPCG(uint64(w.Seed), uint64(w.Seed)^0x9E3779B97F4A7C15)),
	}
	start := time.Now()

	heap := egbase.New[int64]()
	inline := egbase.NewInline[int64, [inlineSlots]int64]()
	table := egbase.NewInline[egstring.String, [16]egstring.String]()
	defer table.Clear()

	for round := 0; round < w.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return r.stats, err
		}
		r.arrayRound(heap)
		if w.Array.Inline {
			r.arrayRound(inline.Base())
		}
		if err := r.stringRound(table, round); err != nil {
			return r.stats, err
		}
		r.stats.Rounds++
		if round%max(1, w.Rounds/10) == 0 {
			log.Debug("round done", "round", round, "len", heap.Len(), "cap", heap.Cap(), "strings", table.Len())
		}
	}

	r.stats.FinalLen = heap.Len()
	r.stats.FinalCap = heap.Cap()
	r.stats.InlineSpilled = !inline.IsInline()

	if w.Snapshot.Path != "" {
		n, err := writeSnapshot(heap, w.Snapshot)
		if err != nil {
			return r.stats, err
		}
		r.stats.SnapshotBytes = n
	}
	r.stats.Elapsed = time.Since(start)
	return r.stats, nil
}

func (r *runner) arrayRound(a *egbase.Array[int64]) {
	load := r.w.Array
	for i := 0; i < load.Push; i++ {
		a.PushBack(r.rng.Int64())
	}
	r.stats.Pushes += load.Push

	n := min(load.Pop, a.Len())
	a.PopBackN(n)
	r.stats.Pops += n

	for i := 0; i < load.RemoveShuffle && !a.IsEmpty(); i++ {
		a.RemoveShuffle(r.rng.IntN(a.Len()))
		r.stats.Removes++
	}
}

// stringRound builds a table of strings, writes to shared copies of each and
// checks that the originals are untouched.
func (r *runner) stringRound(table *egbase.Inline[egstring.String, [16]egstring.String], round int) error {
	load := r.w.Strings
	table.Clear()
	for i := 0; i < load.Count; i++ {
		s := egstring.Sprintf("r%d/s%d:", round, i)
		for j := 0; j < load.AppendLen; j++ {
			s.AppendRune(rune('a' + r.rng.IntN(26)))
		}
		table.PushBack(s)
	}
	r.stats.Strings += load.Count

	for i := 0; i < table.Len() && load.Clones > 0; i++ {
		orig := table.Ref(i)
		want := orig.Len()
		for c := 0; c < load.Clones; c++ {
			cl := orig.Clone()
			cl.AppendU32(uint32(c))
			cl.Destroy()
			r.stats.CloneWrites++
		}
		if orig.Len() != want || !orig.Unique() {
			return fmt.Errorf("round %d: string %d changed through a clone", round, i)
		}
	}
	return nil
}

func writeSnapshot(a *egbase.Array[int64], cfg config.SnapshotConfig) (int, error) {
	var flags byte
	if cfg.Compress {
		flags |= snapshot.FlagZstd
	}
	frame, err := snapshot.EncodeArray(a, flags)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(cfg.Path, frame, 0o644); err != nil {
		return 0, err
	}

	check := egbase.New[int64]()
	if err := snapshot.DecodeArray(frame, check); err != nil {
		return 0, fmt.Errorf("snapshot did not read back: %w", err)
	}
	if !egbase.Equal(a, check) {
		return 0, fmt.Errorf("snapshot read back %d elements that differ from %d written", check.Len(), a.Len())
	}
	return len(frame), nil
}
