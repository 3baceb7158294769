package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/birikimapp/birikim/internal/domain"
)

// AuditLogWriter appends exactly one history entry per investment mutation.
// It runs after the primary write; an append failure propagates to the caller
// unchanged and the primary write is not rolled back. There is no retry and
// no local queue, so a failure between the two writes can leave an
// investment without a matching entry.
type AuditLogWriter struct {
	history domain.HistoryRepository
}

func NewAuditLogWriter(history domain.HistoryRepository) *AuditLogWriter {
	return &AuditLogWriter{history: history}
}

func (w *AuditLogWriter) OnCreate(ctx context.Context, created domain.Investment) error {
	entry := domain.NewCreatedEntry(created)
	if err := w.history.Append(ctx, &entry); err != nil {
		slog.ErrorContext(ctx, "Failed to append created entry", "investment_id", created.ID, "error", err)
		return fmt.Errorf("appending created entry: %w", err)
	}
	return nil
}

func (w *AuditLogWriter) OnUpdate(ctx context.Context, old, updated domain.Investment) error {
	entry := domain.NewUpdatedEntry(old, updated)
	if err := w.history.Append(ctx, &entry); err != nil {
		slog.ErrorContext(ctx, "Failed to append updated entry", "investment_id", updated.ID, "error", err)
		return fmt.Errorf("appending updated entry: %w", err)
	}
	return nil
}

func (w *AuditLogWriter) OnDelete(ctx context.Context, old domain.Investment) error {
	entry := domain.NewDeletedEntry(old)
	if err := w.history.Append(ctx, &entry); err != nil {
		slog.ErrorContext(ctx, "Failed to append deleted entry", "investment_id", old.ID, "error", err)
		return fmt.Errorf("appending deleted entry: %w", err)
	}
	return nil
}
