package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/birikimapp/birikim/internal/domain"
)

type HistoryRepository struct {
	db *DB
}

func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := r.db.Dialect.InsertHistory(ctx, tx, entry); err != nil {
			slog.Error("Failed to append history entry", "investment_id", entry.InvestmentID, "action", entry.Action, "error", err)
			return fmt.Errorf("insert history entry: %w", err)
		}
		return nil
	})
}

func (r *HistoryRepository) FindAll(ctx context.Context) ([]domain.HistoryEntry, error) {
	query := rebind(r.db, `
        SELECT id, investment_id, action, entry_date, details, old_data, new_data
        FROM history_entries
        ORDER BY entry_date DESC
    `)
	return r.queryEntries(ctx, query)
}

func (r *HistoryRepository) FindByInvestmentID(ctx context.Context, investmentID string) ([]domain.HistoryEntry, error) {
	query := rebind(r.db, `
        SELECT id, investment_id, action, entry_date, details, old_data, new_data
        FROM history_entries
        WHERE investment_id = $1
        ORDER BY entry_date DESC
    `)
	return r.queryEntries(ctx, query, investmentID)
}

func (r *HistoryRepository) FindByAction(ctx context.Context, action domain.HistoryAction) ([]domain.HistoryEntry, error) {
	query := rebind(r.db, `
        SELECT id, investment_id, action, entry_date, details, old_data, new_data
        FROM history_entries
        WHERE action = $1
        ORDER BY entry_date DESC
    `)
	return r.queryEntries(ctx, query, string(action))
}

func (r *HistoryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("Failed to query history entries", "error", err)
		return nil, fmt.Errorf("querying history entries: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}(rows)

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var (
			id, investmentID, action, details string
			entryDate                         time.Time
			oldRaw, newRaw                    sql.NullString
		)

		if err := rows.Scan(&id, &investmentID, &action, &entryDate, &details, &oldRaw, &newRaw); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}

		oldData, err := unmarshalSnapshot(oldRaw)
		if err != nil {
			return nil, err
		}
		newData, err := unmarshalSnapshot(newRaw)
		if err != nil {
			return nil, err
		}

		entries = append(entries, domain.HistoryEntry{
			ID:           id,
			InvestmentID: investmentID,
			Action:       domain.HistoryAction(action),
			Date:         entryDate,
			Details:      details,
			OldData:      oldData,
			NewData:      newData,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
