package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/birikimapp/birikim/internal/domain"
	"github.com/birikimapp/birikim/internal/infrastructure/persistence/sqldb/migrations"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) Migrate(ctx context.Context, db *sql.DB) error {
	// Goose has no Oracle support that plays well with go-ora, so the
	// migration script is executed statement by statement.
	content, err := migrations.OracleFS.ReadFile("oracle/20240101000000_init.sql")
	if err != nil {
		return fmt.Errorf("reading migration file: %w", err)
	}

	// Oracle scripts separate statements with '/'.
	statements := strings.Split(string(content), "/")

	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// ORA-00955: name is already used by an existing object
			if !strings.Contains(err.Error(), "ORA-00955") {
				return fmt.Errorf("migrating: %s: %w", stmt, err)
			}
		}
	}
	return nil
}

func (d *OracleDialect) UpsertInvestment(ctx context.Context, tx *sql.Tx, i *domain.Investment) error {
	query := `MERGE INTO investments t
             USING (SELECT :1 as id_val FROM dual) s
             ON (t.id = s.id_val)
             WHEN MATCHED THEN
               UPDATE SET
                 type = :2,
                 buy_price = :3,
                 quantity = :4,
                 buy_date = :5,
                 notes = :6,
                 updated_at = :7
             WHEN NOT MATCHED THEN
               INSERT (id, type, buy_price, quantity, buy_date, notes, created_at, updated_at)
               VALUES (:8, :9, :10, :11, :12, :13, :14, :15)`

	_, err := tx.ExecContext(ctx, query,
		i.ID,           // 1 (s.id_val)
		string(i.Type), // 2 (UPDATE)
		i.BuyPrice,     // 3
		i.Quantity,     // 4
		i.BuyDate,      // 5
		i.Notes,        // 6
		i.UpdatedAt,    // 7
		i.ID,           // 8 (INSERT)
		string(i.Type), // 9
		i.BuyPrice,     // 10
		i.Quantity,     // 11
		i.BuyDate,      // 12
		i.Notes,        // 13
		i.CreatedAt,    // 14
		i.UpdatedAt,    // 15
	)
	return err
}

func (d *OracleDialect) InsertHistory(ctx context.Context, tx *sql.Tx, e *domain.HistoryEntry) error {
	oldData, err := marshalSnapshot(e.OldData)
	if err != nil {
		return err
	}
	newData, err := marshalSnapshot(e.NewData)
	if err != nil {
		return err
	}

	query := `INSERT INTO history_entries (id, investment_id, action, entry_date, details, old_data, new_data)
              VALUES (:1, :2, :3, :4, :5, :6, :7)`

	_, err = tx.ExecContext(ctx, query, e.ID, e.InvestmentID, string(e.Action), e.Date, e.Details, oldData, newData)
	return err
}
