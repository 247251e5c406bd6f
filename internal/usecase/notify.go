package usecase

import (
	"context"
	"log/slog"

	"CompanyBrief/internal/ports"
)

// sendStatus emits a fire-and-forget status event. A nil notifier or an empty
// job id silently skips emission; delivery failures are logged, never raised.
func sendStatus(ctx context.Context, notifier ports.StatusNotifier, logger *slog.Logger, jobID, status, message string, result map[string]any) {
	if notifier == nil || jobID == "" {
		return
	}
	if err := notifier.SendStatusUpdate(ctx, jobID, status, message, result); err != nil && logger != nil {
		logger.Warn("status update failed", "status", status, "error", err)
	}
}
