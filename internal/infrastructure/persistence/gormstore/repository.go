// Package gormstore is the ORM-backed alternative to sqldb for deployments
// that prefer schema management through AutoMigrate over versioned
// migrations. It maps the domain onto dedicated record structs instead of
// persisting domain types directly.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/birikimapp/birikim/internal/domain"
)

type investmentRecord struct {
	ID        string         `gorm:"primaryKey"`
	Type      string         `gorm:"index"`
	BuyPrice  domain.Decimal `gorm:"type:numeric"`
	Quantity  domain.Decimal `gorm:"type:numeric"`
	BuyDate   time.Time
	Notes     string
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (investmentRecord) TableName() string { return "investments" }

type historyRecord struct {
	ID           string    `gorm:"primaryKey"`
	InvestmentID string    `gorm:"index"`
	Action       string    `gorm:"index"`
	Date         time.Time `gorm:"column:entry_date;index"`
	Details      string
	OldData      *string
	NewData      *string
}

func (historyRecord) TableName() string { return "history_entries" }

// AutoMigrate creates or updates both tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&investmentRecord{}, &historyRecord{})
}

type InvestmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Save(ctx context.Context, investment *domain.Investment) error {
	record := toInvestmentRecord(investment)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		slog.Error("Failed to save investment", "investment_id", investment.ID, "error", err)
		return fmt.Errorf("failed to save investment: %w", err)
	}
	return nil
}

func (r *InvestmentRepository) FindByID(ctx context.Context, id string) (*domain.Investment, error) {
	var record investmentRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Debug("Investment not found", "id", id)
			return nil, fmt.Errorf("%w: %s", domain.ErrInvestmentNotFound, id)
		}
		slog.Error("Failed to find investment", "id", id, "error", err)
		return nil, err
	}
	investment := toDomainInvestment(record)
	return &investment, nil
}

func (r *InvestmentRepository) FindAll(ctx context.Context) ([]domain.Investment, error) {
	var records []investmentRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return toDomainInvestments(records), nil
}

func (r *InvestmentRepository) FindByType(ctx context.Context, assetType domain.AssetType) ([]domain.Investment, error) {
	var records []investmentRecord
	if err := r.db.WithContext(ctx).Where("type = ?", string(assetType)).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list investments by type: %w", err)
	}
	return toDomainInvestments(records), nil
}

func (r *InvestmentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&investmentRecord{}, "id = ?", id)
	if result.Error != nil {
		slog.Error("Failed to delete investment", "investment_id", id, "error", result.Error)
		return fmt.Errorf("failed to delete investment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvestmentNotFound, id)
	}
	return nil
}

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	record, err := toHistoryRecord(entry)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		slog.Error("Failed to append history entry", "entry_id", entry.ID, "error", err)
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

func (r *HistoryRepository) FindAll(ctx context.Context) ([]domain.HistoryEntry, error) {
	var records []historyRecord
	if err := r.db.WithContext(ctx).Order("entry_date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return toDomainEntries(records)
}

func (r *HistoryRepository) FindByInvestmentID(ctx context.Context, investmentID string) ([]domain.HistoryEntry, error) {
	var records []historyRecord
	if err := r.db.WithContext(ctx).Where("investment_id = ?", investmentID).Order("entry_date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list history for investment: %w", err)
	}
	return toDomainEntries(records)
}

func (r *HistoryRepository) FindByAction(ctx context.Context, action domain.HistoryAction) ([]domain.HistoryEntry, error) {
	var records []historyRecord
	if err := r.db.WithContext(ctx).Where("action = ?", string(action)).Order("entry_date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list history by action: %w", err)
	}
	return toDomainEntries(records)
}

func toInvestmentRecord(investment *domain.Investment) investmentRecord {
	return investmentRecord{
		ID:        investment.ID,
		Type:      string(investment.Type),
		BuyPrice:  investment.BuyPrice,
		Quantity:  investment.Quantity,
		BuyDate:   investment.BuyDate,
		Notes:     investment.Notes,
		CreatedAt: investment.CreatedAt,
		UpdatedAt: investment.UpdatedAt,
	}
}

func toDomainInvestment(record investmentRecord) domain.Investment {
	return domain.Investment{
		ID:        record.ID,
		Type:      domain.AssetType(record.Type),
		BuyPrice:  record.BuyPrice,
		Quantity:  record.Quantity,
		BuyDate:   record.BuyDate,
		Notes:     record.Notes,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func toDomainInvestments(records []investmentRecord) []domain.Investment {
	investments := make([]domain.Investment, 0, len(records))
	for _, record := range records {
		investments = append(investments, toDomainInvestment(record))
	}
	return investments
}

func toHistoryRecord(entry *domain.HistoryEntry) (historyRecord, error) {
	oldData, err := marshalSnapshot(entry.OldData)
	if err != nil {
		return historyRecord{}, fmt.Errorf("failed to encode old snapshot: %w", err)
	}
	newData, err := marshalSnapshot(entry.NewData)
	if err != nil {
		return historyRecord{}, fmt.Errorf("failed to encode new snapshot: %w", err)
	}
	return historyRecord{
		ID:           entry.ID,
		InvestmentID: entry.InvestmentID,
		Action:       string(entry.Action),
		Date:         entry.Date,
		Details:      entry.Details,
		OldData:      oldData,
		NewData:      newData,
	}, nil
}

func toDomainEntries(records []historyRecord) ([]domain.HistoryEntry, error) {
	entries := make([]domain.HistoryEntry, 0, len(records))
	for _, record := range records {
		oldData, err := unmarshalSnapshot(record.OldData)
		if err != nil {
			return nil, fmt.Errorf("failed to decode old snapshot: %w", err)
		}
		newData, err := unmarshalSnapshot(record.NewData)
		if err != nil {
			return nil, fmt.Errorf("failed to decode new snapshot: %w", err)
		}
		entries = append(entries, domain.HistoryEntry{
			ID:           record.ID,
			InvestmentID: record.InvestmentID,
			Action:       domain.HistoryAction(record.Action),
			Date:         record.Date,
			Details:      record.Details,
			OldData:      oldData,
			NewData:      newData,
		})
	}
	return entries, nil
}

func marshalSnapshot(snapshot *domain.InvestmentSnapshot) (*string, error) {
	if snapshot == nil {
		return nil, nil
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	encoded := string(raw)
	return &encoded, nil
}

func unmarshalSnapshot(raw *string) (*domain.InvestmentSnapshot, error) {
	if raw == nil {
		return nil, nil
	}
	var snapshot domain.InvestmentSnapshot
	if err := json.Unmarshal([]byte(*raw), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
