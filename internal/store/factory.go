package store

import (
	"github.com/xtxerr/tsmap/internal/errors"
)

// Backend identifies one of the interchangeable storage strategies.
type Backend string

const (
	// BackendHash is the hash-indexed backend (MapStore).
	BackendHash Backend = "hash"
	// BackendTree is the ordered-tree backend (TreeStore).
	BackendTree Backend = "tree"
	// BackendSeq is the insertion-ordered backend (SeqStore).
	BackendSeq Backend = "seq"
)

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendHash, BackendTree, BackendSeq:
		return true
	}
	return false
}

// New constructs an unwrapped backend of the given kind.
func New[V any](kind Backend) (Store[V], error) {
	switch kind {
	case BackendHash:
		return NewMapStore[V](), nil
	case BackendTree:
		return NewTreeStore[V](), nil
	case BackendSeq:
		return NewSeqStore[V](), nil
	default:
		return nil, errors.NewUnknownBackend(string(kind))
	}
}

// NewShared constructs a backend of the given kind wrapped in Concurrent,
// ready for use by parallel producers and consumers.
func NewShared[V any](kind Backend) (*Concurrent[V], error) {
	backend, err := New[V](kind)
	if err != nil {
		return nil, err
	}
	return NewConcurrent(backend), nil
}
