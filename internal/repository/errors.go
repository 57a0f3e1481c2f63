package repository

import (
	"errors"
	"fmt"
)

// Kind classifies a storage failure.
type Kind int

const (
	// KindOther is any engine failure without a more specific mapping
	KindOther Kind = iota
	// KindUnique is a uniqueness constraint violation
	KindUnique
	// KindForeignKey is a referential integrity violation
	KindForeignKey
)

// String returns the kind name for logs
func (k Kind) String() string {
	switch k {
	case KindUnique:
		return "unique"
	case KindForeignKey:
		return "foreign_key"
	default:
		return "other"
	}
}

// StorageError wraps an engine failure with a classified kind and the
// operation that produced it.
type StorageError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError reports user input rejected before reaching storage.
// Field names the first failing field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsKind reports whether err is a *StorageError of the given kind
func IsKind(err error, kind Kind) bool {
	var serr *StorageError
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Kind == kind
}
