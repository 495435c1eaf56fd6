package index

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the class of caller-contract violations.
	ErrInvalidArgument = errors.New("index: invalid argument")

	// ErrDuplicateKey is returned by Insert when an equal key is already indexed.
	ErrDuplicateKey = errors.New("index: duplicate key")

	// ErrNotIndexed is returned by Remove and RemoveKey when the key is absent
	// or maps to a different entry. errors.Is(err, ErrInvalidArgument) holds.
	ErrNotIndexed = fmt.Errorf("%w: entry not in index", ErrInvalidArgument)

	// ErrInvalidState is returned by Insert for an entry that is not Unindexed.
	ErrInvalidState = fmt.Errorf("%w: entry already inserted", ErrInvalidArgument)

	// ErrClosed is returned by mutating operations on a closed index.
	ErrClosed = errors.New("index: closed")
)
