package index

import "bytes"

// InlineKeyMax is the largest key copied into a pooled fixed-size probe when
// building a lookup record. Such lookups do not allocate for the probe.
// Longer keys get a one-off heap copy. Both kinds of probe compare identically.
const InlineKeyMax = 1024

type probeKind uint8

const (
	probeInline probeKind = iota
	probeHeap
)

// probe is a transient entry-shaped record used only to drive a search.
// It is never inserted.
type probe[V any] struct {
	kind probeKind
	rec  Entry[V]
	buf  *[InlineKeyMax]byte // set for probeInline only
}

func newInlineProbe[V any]() any {
	return &probe[V]{kind: probeInline, buf: new([InlineKeyMax]byte)}
}

// newProbe builds a probe for key; inline probes come from the index pool.
func (x *Index[V]) newProbe(key []byte) *probe[V] {
	if len(key) > InlineKeyMax {
		p := &probe[V]{kind: probeHeap}
		p.rec.key = bytes.Clone(key)
		return p
	}
	p := x.probes.Get().(*probe[V])
	p.rec.key = p.buf[:copy(p.buf[:], key)]
	return p
}

// record returns the comparator-compatible view of the probe.
func (p *probe[V]) record() *Entry[V] { return &p.rec }

// releaseProbe drops the probe's key. The probe must not be used afterwards.
func (x *Index[V]) releaseProbe(p *probe[V]) {
	p.rec.key = nil
	if p.kind == probeInline {
		x.probes.Put(p)
	}
}
