package db

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

var (
	// ErrUnavailable wraps connection and transaction failures. The
	// surrounding batch is rolled back; no partial writes are visible.
	ErrUnavailable = errors.New("store unavailable")

	// ErrConstraint wraps a uniqueness conflict that insert-or-ignore was
	// not expected to absorb.
	ErrConstraint = errors.New("store constraint violation")

	// ErrInvariant means a name or URL expected to exist after its insert
	// was missing on re-query. That is a bug, not a user error; callers
	// should abort rather than continue.
	ErrInvariant = errors.New("store invariant violation")
)

// StoreErr tags a storage failure with the matching taxonomy sentinel while
// keeping the underlying chain inspectable with errors.Is/As.
func StoreErr(op string, err error) error {
	kind := ErrUnavailable
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
		kind = ErrConstraint
	}
	return fmt.Errorf("%s: %w", op, errors.Join(kind, err))
}

// InvariantErr reports a normalizer/store desynchronization.
func InvariantErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
