package index

import (
	"bytes"
	"testing"
)

func TestProbe_KindByLength(t *testing.T) {
	t.Parallel()

	idx := New[int](Options[int]{})
	tests := []struct {
		n    int
		kind probeKind
	}{
		{0, probeInline},
		{10, probeInline},
		{InlineKeyMax, probeInline},
		{InlineKeyMax + 1, probeHeap},
		{2000, probeHeap},
	}
	for _, tt := range tests {
		key := bytes.Repeat([]byte{'k'}, tt.n)
		p := idx.newProbe(key)
		if p.kind != tt.kind {
			t.Fatalf("len=%d: kind %d, want %d", tt.n, p.kind, tt.kind)
		}
		if Compare(key, p.record().Key()) != 0 {
			t.Fatalf("len=%d: probe key differs from input", tt.n)
		}
		idx.releaseProbe(p)
		if p.record().Key() != nil {
			t.Fatalf("len=%d: key kept after release", tt.n)
		}
	}
}

// The probe owns a copy: mutating the caller's buffer after building the
// probe must not change what is searched for.
func TestProbe_CopiesKey(t *testing.T) {
	t.Parallel()

	idx := New[int](Options[int]{})
	for _, n := range []int{3, 2000} {
		key := bytes.Repeat([]byte{'a'}, n)
		p := idx.newProbe(key)
		key[0] = 'b'
		if got := p.record().Key()[0]; got != 'a' {
			t.Fatalf("len=%d: probe saw caller mutation %q", n, got)
		}
		idx.releaseProbe(p)
	}
}

// A pooled probe reused for a shorter key must not carry the old tail.
func TestProbe_ReuseShorterKey(t *testing.T) {
	t.Parallel()

	idx := New[int](Options[int]{})
	p := idx.newProbe([]byte("longer-key"))
	idx.releaseProbe(p)

	p = idx.newProbe([]byte("ab"))
	defer idx.releaseProbe(p)
	if got := string(p.record().Key()); got != "ab" {
		t.Fatalf("want %q, got %q", "ab", got)
	}
}

// Inline probes come from the pool; building one must not allocate.
func TestProbe_InlineDoesNotAllocate(t *testing.T) {
	idx := New[int](Options[int]{})
	key := []byte("steady-state-key")
	idx.releaseProbe(idx.newProbe(key)) // warm the pool

	allocs := testing.AllocsPerRun(100, func() {
		idx.releaseProbe(idx.newProbe(key))
	})
	if allocs != 0 {
		t.Fatalf("inline probe allocated %.1f times per lookup", allocs)
	}
}
