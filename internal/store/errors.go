package store

import (
	"github.com/xtxerr/tsmap/internal/errors"
)

var (
	ErrDuplicateTimestamp = errors.ErrDuplicateTimestamp
	ErrUnknownBackend     = errors.ErrUnknownBackend
)
