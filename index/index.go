package index

import (
	"log/slog"
	"sync"

	"github.com/IvanBrykalov/vmindex/internal/ordered"
	"github.com/IvanBrykalov/vmindex/internal/util"
)

// Index maps byte-string keys to entries and serializes every structural
// change and every refcount change through one lock owned by the instance.
// All methods are safe for concurrent use, but none may be called from
// inside OnFinalize or an Ascend callback: the lock is not reentrant.
type Index[V any] struct {
	// ---- guarded by mu ----
	mu     sync.Mutex
	tree   *ordered.Tree[*Entry[V]]
	closed bool

	opt    Options[V]
	log    *slog.Logger
	probes sync.Pool // *probe[V], inline kind

	// ---- hot counters ----
	_         util.CacheLinePad
	hits      util.PaddedAtomicUint64
	misses    util.PaddedAtomicUint64
	finalized util.PaddedAtomicUint64
}

// Stats is a point-in-time snapshot of index counters.
type Stats struct {
	Entries   int
	Hits      uint64
	Misses    uint64
	Finalized uint64
}

// New returns an empty index.
func New[V any](opt Options[V]) *Index[V] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	x := &Index[V]{
		tree: ordered.New[*Entry[V]](opt.Degree, lessEntry[V]),
		opt:  opt,
		log:  log,
	}
	x.probes.New = newInlineProbe[V]
	return x
}

// Close tears the index down. Every indexed entry is detached and the index
// reference to it dropped; entries nobody else holds are finalized here, the
// rest when their last Ref is released. Close must not race with other
// operations on the index. A second Close is a no-op.
func (x *Index[V]) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return nil
	}
	x.closed = true

	all := make([]*Entry[V], 0, x.tree.Len())
	x.tree.Ascend(func(e *Entry[V]) bool {
		all = append(all, e)
		return true
	})
	x.tree.Clear()
	for _, e := range all {
		e.setState(Detached)
		x.releaseLocked(e)
	}
	x.opt.Metrics.Size(0)
	return nil
}

// Insert makes e reachable by its key. On success the index holds the only
// reference (refcount 1); no caller can observe the entry before that.
// It fails with ErrDuplicateKey if an equal key is indexed, and with
// ErrInvalidState if e was inserted before, into this or any other index;
// nothing is changed on failure.
func (x *Index[V]) Insert(e *Entry[V]) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return ErrClosed
	}
	// Claim e atomically: another Index may be racing to insert it.
	if !e.state.CompareAndSwap(uint32(Unindexed), uint32(Indexed)) {
		x.log.Warn("insert of non-fresh entry", slog.Int("ksize", e.Size()), slog.String("state", e.State().String()))
		return ErrInvalidState
	}
	if !x.tree.Insert(e) {
		e.setState(Unindexed)
		x.log.Warn("inserting to the index failed", slog.Int("ksize", e.Size()))
		return ErrDuplicateKey
	}

	// The index reference is the first and only one.
	e.refs.Store(1)

	x.opt.Metrics.Insert()
	x.opt.Metrics.Size(x.tree.Len())
	return nil
}

// Get looks key up and, if found, returns a Ref that keeps the entry alive
// until released. A miss is reported as (nil, false), as is any lookup on a
// closed index.
func (x *Index[V]) Get(key []byte) (*Ref[V], bool) {
	p := x.newProbe(key)

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		x.releaseProbe(p)
		return nil, false
	}

	e, ok := x.tree.Find(p.record())
	x.releaseProbe(p)
	if !ok {
		x.misses.Add(1)
		x.opt.Metrics.Miss()
		x.log.Debug("cannot find an element with the given key in the index", slog.Int("ksize", len(key)))
		return nil, false
	}

	// Acquire before unlocking so a concurrent Remove cannot finalize e
	// between the search and the reference.
	x.acquireLocked(e)
	x.hits.Add(1)
	x.opt.Metrics.Hit()
	return &Ref[V]{x: x, e: e}, true
}

// Remove detaches e from the index and drops the index reference.
// e is finalized now if nobody else holds it, otherwise on the last Release.
// It fails with ErrNotIndexed if e's key is absent or indexed to a different
// entry.
func (x *Index[V]) Remove(e *Entry[V]) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return ErrClosed
	}
	found, ok := x.tree.Find(e)
	if !ok || found != e {
		x.log.Warn("cannot find an element with the given key in the index", slog.Int("ksize", e.Size()))
		return ErrNotIndexed
	}
	x.detachLocked(e)
	return nil
}

// RemoveKey is Remove for callers that hold only the key.
func (x *Index[V]) RemoveKey(key []byte) error {
	p := x.newProbe(key)

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		x.releaseProbe(p)
		return ErrClosed
	}
	e, ok := x.tree.Find(p.record())
	x.releaseProbe(p)
	if !ok {
		x.log.Warn("cannot find an element with the given key in the index", slog.Int("ksize", len(key)))
		return ErrNotIndexed
	}
	x.detachLocked(e)
	return nil
}

// Acquire adds a reference to e and reports whether it did. It is meant for
// collaborators (such as an evictor) that reached e through Ascend; each
// successful Acquire needs a Release. It returns false when e was finalized
// in the meantime, which is a normal outcome of racing a Remove. Acquiring an
// entry that was never inserted panics.
func (x *Index[V]) Acquire(e *Entry[V]) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if e.State() == Finalized {
		return false
	}
	x.acquireLocked(e)
	return true
}

// Release drops a reference to e and finalizes it when the count hits zero.
// Releasing more references than were taken panics.
func (x *Index[V]) Release(e *Entry[V]) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.releaseLocked(e)
}

// Len returns the number of indexed entries.
func (x *Index[V]) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.Len()
}

// Ascend calls fn for each indexed entry in key order until fn returns false.
// fn runs under the index lock: it must not call any Index method. To keep
// an entry beyond the callback, collect it and Acquire it once Ascend has
// returned; a false result means a concurrent Remove finalized it first.
// To evict, call Remove once Ascend has returned and treat ErrNotIndexed as
// having lost the race.
func (x *Index[V]) Ascend(fn func(e *Entry[V]) bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return
	}
	x.tree.Ascend(fn)
}

// Stats returns a snapshot of the index counters.
func (x *Index[V]) Stats() Stats {
	return Stats{
		Entries:   x.Len(),
		Hits:      x.hits.Load(),
		Misses:    x.misses.Load(),
		Finalized: x.finalized.Load(),
	}
}

// -------------------- internals (mu held) --------------------

func (x *Index[V]) acquireLocked(e *Entry[V]) {
	switch e.State() {
	case Unindexed:
		panic("index: acquire of an entry that was never inserted")
	case Finalized:
		panic("index: acquire of a finalized entry")
	}
	e.refs.Add(1)
}

// detachLocked unlinks an indexed e and drops the index reference.
func (x *Index[V]) detachLocked(e *Entry[V]) {
	x.tree.Remove(e)
	e.setState(Detached)
	x.opt.Metrics.Remove()
	x.opt.Metrics.Size(x.tree.Len())
	x.releaseLocked(e)
}

func (x *Index[V]) releaseLocked(e *Entry[V]) {
	n := e.refs.Load()
	switch {
	case e.State() == Unindexed || e.State() == Finalized || n <= 0:
		panic("index: release of an entry holding no references")
	case n == 1 && e.State() == Indexed:
		// Only the index's own reference is left; dropping it here would
		// leave a zero-count entry reachable by lookup.
		panic("index: release of the index reference outside Remove")
	}

	if n = e.refs.Add(-1); n > 0 {
		return
	}
	x.finalizeLocked(e)
}

func (x *Index[V]) finalizeLocked(e *Entry[V]) {
	e.setState(Finalized)
	x.finalized.Add(1)
	x.opt.Metrics.Finalize()
	x.log.Debug("entry finalized", slog.Int("ksize", e.Size()))
	if fn := x.opt.OnFinalize; fn != nil {
		fn(e)
	}
}
