package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/birikimapp/birikim/internal/domain"
)

type InvestmentRepository struct {
	db *DB
}

func NewInvestmentRepository(db *DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Save(ctx context.Context, investment *domain.Investment) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := r.db.Dialect.UpsertInvestment(ctx, tx, investment); err != nil {
			slog.Error("Failed to save investment", "investment_id", investment.ID, "error", err)
			return fmt.Errorf("upsert investment: %w", err)
		}
		return nil
	})
}

func (r *InvestmentRepository) FindByID(ctx context.Context, id string) (*domain.Investment, error) {
	query := rebind(r.db, `
        SELECT id, type, buy_price, quantity, buy_date, notes, created_at, updated_at
        FROM investments
        WHERE id = $1
    `)

	row := r.db.QueryRowContext(ctx, query, id)
	investment, err := scanInvestment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("Investment not found", "id", id)
			return nil, fmt.Errorf("%w: %s", domain.ErrInvestmentNotFound, id)
		}
		return nil, fmt.Errorf("querying investment: %w", err)
	}
	return investment, nil
}

func (r *InvestmentRepository) FindAll(ctx context.Context) ([]domain.Investment, error) {
	query := rebind(r.db, `
        SELECT id, type, buy_price, quantity, buy_date, notes, created_at, updated_at
        FROM investments
        ORDER BY created_at DESC
    `)
	return r.queryInvestments(ctx, query)
}

func (r *InvestmentRepository) FindByType(ctx context.Context, assetType domain.AssetType) ([]domain.Investment, error) {
	query := rebind(r.db, `
        SELECT id, type, buy_price, quantity, buy_date, notes, created_at, updated_at
        FROM investments
        WHERE type = $1
        ORDER BY created_at DESC
    `)
	return r.queryInvestments(ctx, query, string(assetType))
}

func (r *InvestmentRepository) Delete(ctx context.Context, id string) error {
	query := rebind(r.db, "DELETE FROM investments WHERE id = $1")

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Error("Failed to delete investment", "investment_id", id, "error", err)
		return fmt.Errorf("deleting investment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvestmentNotFound, id)
	}
	return nil
}

func (r *InvestmentRepository) queryInvestments(ctx context.Context, query string, args ...any) ([]domain.Investment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("Failed to query investments", "error", err)
		return nil, fmt.Errorf("querying investments: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}(rows)

	investments := make([]domain.Investment, 0)
	for rows.Next() {
		investment, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning investment row: %w", err)
		}
		investments = append(investments, *investment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return investments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvestment(row rowScanner) (*domain.Investment, error) {
	var (
		id, assetType        string
		buyPrice, quantity   domain.Decimal
		notes                sql.NullString
		buyDate              time.Time
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &assetType, &buyPrice, &quantity, &buyDate, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &domain.Investment{
		ID:        id,
		Type:      domain.AssetType(assetType),
		BuyPrice:  buyPrice,
		Quantity:  quantity,
		BuyDate:   buyDate,
		Notes:     notes.String,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// rebind swaps $n placeholders for Oracle's :n form when needed.
func rebind(db *DB, query string) string {
	if db.Dialect.Name() == "oracle" {
		for i := 10; i >= 1; i-- {
			query = strings.ReplaceAll(query, fmt.Sprintf("$%d", i), fmt.Sprintf(":%d", i))
		}
	}
	return query
}
