package state

import (
	"errors"
	"fmt"

	"github.com/hy4ri/tasklist/internal/api"
)

// FailureKind categorizes a failed remote operation.
type FailureKind int

const (
	LoadFailure FailureKind = iota
	CreateFailure
	UpdateFailure // toggle and edit-save
	DeleteFailure
	BulkDeleteFailure
)

func (k FailureKind) String() string {
	switch k {
	case LoadFailure:
		return "load"
	case CreateFailure:
		return "create"
	case UpdateFailure:
		return "update"
	case DeleteFailure:
		return "delete"
	case BulkDeleteFailure:
		return "bulk_delete"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// Failure is a remote operation failure surfaced to the user.
type Failure struct {
	Kind FailureKind
	Err  error
}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("%s failed: %v", f.Kind, f.Err)
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error {
	return f.Err
}

// Message is the alert text shown to the user.
func (f Failure) Message() string {
	switch f.Kind {
	case LoadFailure:
		return "Failed to load tasks. Check that the server is running."
	case CreateFailure:
		return "Failed to create task."
	case UpdateFailure:
		return "Failed to update task."
	case DeleteFailure:
		return "Failed to delete task."
	case BulkDeleteFailure:
		var bulk *api.BulkDeleteError
		if errors.As(f.Err, &bulk) && len(bulk.Deleted) > 0 {
			return fmt.Sprintf("Failed to clear the list. %d of %d tasks were already deleted on the server; refresh to resync.",
				len(bulk.Deleted), len(bulk.Deleted)+len(bulk.Failed))
		}
		return "Failed to clear the list."
	}
	return "Request failed."
}
