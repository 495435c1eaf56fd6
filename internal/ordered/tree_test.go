package ordered

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type rec struct {
	k int
	v string
}

func byKey(a, b rec) bool { return a.k < b.k }

func TestTree_InsertRejectsDuplicate(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	tr := New[rec](0, byKey)
	require.True(tr.Insert(rec{1, "one"}))
	require.False(tr.Insert(rec{1, "uno"}))
	require.Equal(1, tr.Len())

	got, ok := tr.Find(rec{k: 1})
	require.True(ok)
	require.Equal("one", got.v, "failed insert must not replace the stored record")
}

func TestTree_FindRemove(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	tr := New[rec](4, byKey)
	for i := 0; i < 100; i++ {
		require.True(tr.Insert(rec{k: i}))
	}

	_, ok := tr.Find(rec{k: 100})
	require.False(ok)

	got, ok := tr.Remove(rec{k: 42})
	require.True(ok)
	require.Equal(42, got.k)

	_, ok = tr.Find(rec{k: 42})
	require.False(ok)
	_, ok = tr.Remove(rec{k: 42})
	require.False(ok)
	require.Equal(99, tr.Len())
}

func TestTree_AscendOrderAndStop(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	tr := New[rec](0, byKey)
	for _, k := range []int{5, 3, 9, 1, 7} {
		tr.Insert(rec{k: k})
	}

	var seen []int
	tr.Ascend(func(r rec) bool {
		seen = append(seen, r.k)
		return r.k < 5
	})
	require.Equal([]int{1, 3, 5}, seen)

	tr.Clear()
	require.Zero(tr.Len())
}
