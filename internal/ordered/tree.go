// Package ordered wraps a B-tree as the ordered container behind the key index.
package ordered

import "github.com/google/btree"

// DefaultDegree is used when New is called with a non-positive degree.
const DefaultDegree = 32

// Tree is an ordered set of records under a caller-supplied strict total order.
// Two records are equal when neither is less than the other.
//
// Concurrency: Tree is NOT safe for concurrent use; the owner serializes access.
type Tree[T any] struct {
	bt *btree.BTreeG[T]
}

// New builds an empty tree. less is captured for the lifetime of the tree and
// must be deterministic and side-effect free.
func New[T any](degree int, less func(a, b T) bool) *Tree[T] {
	if degree < 2 {
		degree = DefaultDegree
	}
	return &Tree[T]{bt: btree.NewG[T](degree, less)}
}

// Insert adds item. It returns false, leaving the tree untouched, if an equal
// record is already present.
func (t *Tree[T]) Insert(item T) bool {
	if t.bt.Has(item) {
		return false
	}
	t.bt.ReplaceOrInsert(item)
	return true
}

// Find returns the stored record equal to probe.
func (t *Tree[T]) Find(probe T) (T, bool) {
	return t.bt.Get(probe)
}

// Remove detaches the stored record equal to item and returns it.
func (t *Tree[T]) Remove(item T) (T, bool) {
	return t.bt.Delete(item)
}

// Ascend calls fn for every record in ascending order until fn returns false.
// fn must not mutate the tree.
func (t *Tree[T]) Ascend(fn func(T) bool) {
	t.bt.Ascend(btree.ItemIteratorG[T](fn))
}

// Len returns the number of stored records.
func (t *Tree[T]) Len() int { return t.bt.Len() }

// Clear drops every record.
func (t *Tree[T]) Clear() { t.bt.Clear(false) }
