package egbase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// ledger records lifecycle calls made on tracked elements.
type ledger struct {
	moves     int
	clones    int
	destroyed []int
}

// tracked is not trivially relocatable: it has move, clone and destroy hooks.
type tracked struct {
	id   int
	live bool
	l    *ledger
}

func newTracked(l *ledger, id int) tracked {
	return tracked{id: id, live: true, l: l}
}

func (t *tracked) MoveTo(dst *tracked) {
	*dst = *t
	t.live = false
	if t.l != nil {
		t.l.moves++
	}
}

func (t *tracked) Clone() tracked {
	if t.l != nil {
		t.l.clones++
	}
	return *t
}

func (t *tracked) Destroy() {
	if t.l != nil && t.live {
		t.l.destroyed = append(t.l.destroyed, t.id)
	}
	t.live = false
}

// pinned opts into byte-copy relocation despite its Destroy hook.
type pinned struct {
	n int
	l *ledger
}

func (p *pinned) TriviallyRelocatable() {}

func (p *pinned) Destroy() {
	if p.l != nil {
		p.l.destroyed = append(p.l.destroyed, p.n)
	}
}

// cloneOnly has a deep-copy hook and nothing else.
type cloneOnly struct {
	buf []byte
}

func (c *cloneOnly) Clone() cloneOnly {
	return cloneOnly{buf: append([]byte(nil), c.buf...)}
}

func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "got %v, want %v", err, target)
	}()
	fn()
}

func ids(s []tracked) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = v.id
	}
	return out
}
