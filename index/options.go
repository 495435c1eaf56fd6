package index

import "log/slog"

// Metrics exposes index-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
// Hooks are called under the index lock; keep them cheap.
type Metrics interface {
	Hit()
	Miss()
	Insert()
	Remove()
	Finalize()
	Size(entries int)
}

// Options configures an Index. Zero values are safe; defaults are applied
// in New():
//   - Degree < 2    => ordered.DefaultDegree
//   - nil Metrics   => NoopMetrics
//   - nil Logger    => discard
type Options[V any] struct {
	// Degree is the branching factor of the underlying B-tree.
	Degree int

	// OnFinalize releases the value-store handle of an entry whose refcount
	// reached zero. It runs exactly once per entry, synchronously, under the
	// index lock, and must not call back into the index.
	OnFinalize func(e *Entry[V])

	// Observability
	Metrics Metrics
	Logger  *slog.Logger
}
