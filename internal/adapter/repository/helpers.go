// Package repository implements the domain repositories on the typed
// store adapter. Membership-style operations share one state machine:
// NotMember -> Member and back only, idempotent in both directions, with
// every aggregate count re-derived from its list inside the same batch.
package repository

import (
	stderrors "errors"

	"github.com/google/uuid"

	"sparin/internal/store"
	"sparin/pkg/errors"
)

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

func newDocumentID() string {
	return uuid.New().String()
}

// batchErr maps a failed atomic commit onto the error taxonomy.
// Application errors raised inside the batch callback pass through
// untouched; a missing update target means the batch was built against
// stale state.
func batchErr(op string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	if err == store.ErrNotFound {
		return errors.Conflict("Stale state while trying to " + op)
	}
	return errors.StoreFault("Failed to "+op, err)
}
