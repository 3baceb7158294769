package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/birikimapp/birikim/internal/domain"
	"github.com/birikimapp/birikim/internal/infrastructure/persistence/sqldb/migrations"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.PostgresFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "postgres"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func (d *PostgresDialect) UpsertInvestment(ctx context.Context, tx *sql.Tx, i *domain.Investment) error {
	query := `
		INSERT INTO investments (id, type, buy_price, quantity, buy_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			buy_price = EXCLUDED.buy_price,
			quantity = EXCLUDED.quantity,
			buy_date = EXCLUDED.buy_date,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`
	_, err := tx.ExecContext(ctx, query, i.ID, string(i.Type), i.BuyPrice, i.Quantity, i.BuyDate, i.Notes, i.CreatedAt, i.UpdatedAt)
	return err
}

func (d *PostgresDialect) InsertHistory(ctx context.Context, tx *sql.Tx, e *domain.HistoryEntry) error {
	oldData, err := marshalSnapshot(e.OldData)
	if err != nil {
		return err
	}
	newData, err := marshalSnapshot(e.NewData)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO history_entries (id, investment_id, action, entry_date, details, old_data, new_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, query, e.ID, e.InvestmentID, string(e.Action), e.Date, e.Details, oldData, newData)
	return err
}
