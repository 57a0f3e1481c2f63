package sqlite

import (
	"errors"
	"strings"

	"meusgastos/internal/repository"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// mapError classifies an engine failure into the repository error
// taxonomy. Extended result codes are tried first; the message text is
// consulted whenever the code alone does not classify the error. This is
// the one place error text is ever inspected.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	kind := repository.KindOther

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			kind = repository.KindUnique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_TRIGGER:
			// Immediate FK enforcement on DELETE runs through internal
			// triggers, so a blocked delete reports CONSTRAINT_TRIGGER
			// rather than CONSTRAINT_FOREIGNKEY.
			kind = repository.KindForeignKey
		}
	}

	// Unmapped codes and untyped errors both fall back to the message.
	if kind == repository.KindOther {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			kind = repository.KindUnique
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			kind = repository.KindForeignKey
		}
	}

	return &repository.StorageError{Kind: kind, Op: op, Err: err}
}
