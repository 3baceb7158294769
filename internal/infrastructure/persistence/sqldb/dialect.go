package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/birikimapp/birikim/internal/domain"
)

type Dialect interface {
	Name() string
	Migrate(ctx context.Context, db *sql.DB) error
	UpsertInvestment(ctx context.Context, tx *sql.Tx, i *domain.Investment) error
	InsertHistory(ctx context.Context, tx *sql.Tx, e *domain.HistoryEntry) error
}

// marshalSnapshot renders a snapshot as a JSON document column value.
// A nil snapshot becomes SQL NULL, which is how the per-action variants
// (created has no old data, deleted has no new data) survive storage.
func marshalSnapshot(snap *domain.InvestmentSnapshot) (any, error) {
	if snap == nil {
		return nil, nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}
	return string(data), nil
}

func unmarshalSnapshot(raw sql.NullString) (*domain.InvestmentSnapshot, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	snap := &domain.InvestmentSnapshot{}
	if err := json.Unmarshal([]byte(raw.String), snap); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return snap, nil
}
