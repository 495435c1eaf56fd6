package index

import "sync/atomic"

// Ref is a counted reference to an entry handed out by Get.
// The entry stays alive until Release is called; Release is idempotent,
// so the usual pattern is
//
//	ref, ok := idx.Get(key)
//	if !ok {
//	    return
//	}
//	defer ref.Release()
type Ref[V any] struct {
	x        *Index[V]
	e        *Entry[V]
	released atomic.Bool
}

// Entry returns the referenced entry. It must not be used after Release.
func (r *Ref[V]) Entry() *Entry[V] { return r.e }

// Key is shorthand for r.Entry().Key().
func (r *Ref[V]) Key() []byte { return r.e.key }

// Value is shorthand for r.Entry().Value().
func (r *Ref[V]) Value() V { return r.e.value }

// Release drops the reference. Only the first call has an effect.
func (r *Ref[V]) Release() {
	if r.released.CompareAndSwap(false, true) {
		r.x.Release(r.e)
	}
}
