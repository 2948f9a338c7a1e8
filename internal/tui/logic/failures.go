package logic

import (
	"errors"

	"github.com/hy4ri/tasklist/internal/api"
	"github.com/hy4ri/tasklist/internal/tui/state"
)

// handleFailure logs a failed remote call, raises the blocking alert and,
// when enabled, a desktop notification. State keeps its pre-operation value
// apart from ending a load.
func (h *Handler) handleFailure(f state.Failure) {
	if f.Kind == state.LoadFailure {
		h.State = h.State.LoadFailed()
	}

	attrs := []any{"kind", f.Kind.String(), "error", f.Err}
	if apiErr, ok := api.IsAPIError(f.Err); ok {
		attrs = append(attrs, "status", apiErr.StatusCode)
	}
	var bulk *api.BulkDeleteError
	if errors.As(f.Err, &bulk) {
		attrs = append(attrs, "deleted", len(bulk.Deleted), "failed", len(bulk.Failed))
	}
	h.log.Error("request failed", attrs...)

	alert := f
	h.Screen.Alert = &alert
	h.Screen.StatusMsg = ""

	if h.notifyErrors {
		if err := h.notifier.Notify("Task list", f.Message()); err != nil {
			h.log.Warn("desktop notification failed", "error", err)
		}
	}
}
