package index

import (
	"bytes"
	"sync/atomic"
)

// State is the lifecycle stage of an Entry.
//
//	Unindexed --Insert--> Indexed --Remove--> Detached --last Release--> Finalized
type State uint32

const (
	// Unindexed: built by the cache engine, not yet inserted.
	Unindexed State = iota
	// Indexed: reachable through the index; refcount >= 1.
	Indexed
	// Detached: removed from the index, possibly still held by readers.
	Detached
	// Finalized: refcount reached zero, OnFinalize has run. Terminal.
	Finalized
)

func (s State) String() string {
	switch s {
	case Unindexed:
		return "unindexed"
	case Indexed:
		return "indexed"
	case Detached:
		return "detached"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Entry is the indexed record: an immutable key, a reference count and an
// opaque value handle owned by the value store.
//
// refs and state change only under the owning Index's lock. They are stored
// atomically so RefCount and State may be read without it.
type Entry[V any] struct {
	key   []byte
	value V

	refs  atomic.Int64
	state atomic.Uint32
}

// NewEntry builds an unindexed entry. The key is copied.
func NewEntry[V any](key []byte, value V) *Entry[V] {
	return &Entry[V]{key: bytes.Clone(key), value: value}
}

// Key returns the entry key. Callers must not modify it.
func (e *Entry[V]) Key() []byte { return e.key }

// Size returns the key length in bytes.
func (e *Entry[V]) Size() int { return len(e.key) }

// Value returns the value handle.
func (e *Entry[V]) Value() V { return e.value }

// RefCount returns the current number of holders, the index included.
// Zero for an entry that was never inserted or has been finalized.
func (e *Entry[V]) RefCount() int64 { return e.refs.Load() }

// State returns the lifecycle stage.
func (e *Entry[V]) State() State { return State(e.state.Load()) }

func (e *Entry[V]) setState(s State) { e.state.Store(uint32(s)) }
