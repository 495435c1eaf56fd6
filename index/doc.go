// Package index is the key index of a refcounted cache: it maps variable-length
// byte-string keys to entries and hands out references that stay valid while
// an evictor may be removing the same entries concurrently.
//
// Design
//
//   - Ordering: entries live in a B-tree ordered by key length first and key
//     bytes second (see Compare). The same comparator drives Insert, Get and
//     Remove.
//
//   - Concurrency: one mutex per Index serializes all structural changes and
//     all refcount changes. Every operation is linearized through it. Separate
//     Index instances never contend.
//
//   - Lifecycle: Insert sets refcount to 1 (the index reference) in the same
//     critical section that links the entry. Get acquires a reference before
//     unlocking. Remove unlinks the entry and drops the index reference. When
//     the count reaches zero the entry is finalized exactly once and
//     Options.OnFinalize releases its value handle.
//
//	Unindexed --Insert--> Indexed --Remove--> Detached --last Release--> Finalized
//
//   - Probes: Get builds a transient probe record for the search. Keys up to
//     InlineKeyMax bytes are copied into a pooled fixed-size probe; longer
//     keys into a one-off heap buffer dropped right after the search.
//
// Basic usage
//
//	idx := index.New[Handle](index.Options[Handle]{
//	    OnFinalize: func(e *index.Entry[Handle]) { store.Free(e.Value()) },
//	})
//	defer idx.Close()
//
//	if err := idx.Insert(index.NewEntry([]byte("foo"), h)); err != nil {
//	    // errors.Is(err, index.ErrDuplicateKey)
//	}
//	if ref, ok := idx.Get([]byte("foo")); ok {
//	    defer ref.Release()
//	    use(ref.Value())
//	}
//
// Eviction
//
// The index does not choose victims. An evictor walks entries with Ascend,
// then calls Remove (or RemoveKey) outside the callback. Readers that already
// hold a Ref keep the entry alive until they release it.
//
// Reentrancy
//
// The lock is not reentrant. Calling any Index method from OnFinalize, from an
// Ascend callback or from a Metrics hook deadlocks.
package index
