package index

import "bytes"

// Compare orders keys by length first and by byte content second.
// It returns -1, 0 or +1. Keys are equal only if they have the same length
// and the same bytes.
func Compare(a, b []byte) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return bytes.Compare(a, b)
}

// Less reports whether a orders strictly before b under Compare.
func Less(a, b []byte) bool { return Compare(a, b) < 0 }

// lessEntry is the comparator handed to the ordered container.
func lessEntry[V any](a, b *Entry[V]) bool { return Less(a.key, b.key) }
